package main

import (
	"fmt"
	"os"

	"github.com/gsarmaonline/modelloader/config"
	"github.com/spf13/cobra"
)

var v = config.NewViper()

var rootCmd = &cobra.Command{
	Use:   "modelloader",
	Short: "Load model definitions into a gorm-backed registry",
	Long:  "modelloader discovers model definition files, registers every model with the ORM and exposes the resulting registry.",

	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pflags := rootCmd.PersistentFlags()

	pflags.String("config", "", "Path to the config file")
	pflags.String("env-file", "", "Path to the env file")
	pflags.String("environment", "", "Runtime environment (development, production, test)")

	v.BindPFlag("config_file", pflags.Lookup("config"))
	v.BindPFlag("env_file", pflags.Lookup("env-file"))
	v.BindPFlag("environment", pflags.Lookup("environment"))

	rootCmd.AddCommand(newInspectCmd(), newServeCmd(), newTokenCmd())
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}

func loadConfig() (*config.Config, error) {
	return config.Load(v, v.GetString("config_file"), v.GetString("env_file"))
}
