package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/gsarmaonline/modelloader/core"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var flags loadFlags

	cmd := &cobra.Command{
		Use:   "inspect [dir]",
		Short: "Load the models directory and print every registered model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir string
			if len(args) > 0 {
				dir = args[0]
			}

			a, err := newApp(cmd.Context(), dir, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			return printModels(cmd.OutOrStdout(), a.models)
		},
	}

	cmd.Flags().BoolVar(&flags.builtin, "builtin", false, "Load the built-in plans models instead of a directory")
	cmd.Flags().BoolVar(&flags.migrate, "migrate", false, "Create or update the table of every model")
	return cmd
}

func printModels(w io.Writer, models core.Registry) error {
	names := models.Names()
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tTABLE\tATTRIBUTES")
	for _, name := range names {
		m := models[name]
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Name(), m.TableName(), strings.Join(m.Attributes(), ","))
	}
	return tw.Flush()
}
