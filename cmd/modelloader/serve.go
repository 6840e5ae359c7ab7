package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/gsarmaonline/modelloader/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var flags loadFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the models and serve them over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, "", flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}

			srv, err := server.NewServer(ctx, &server.ServerConfig{
				Host:      a.cfg.Server.Host,
				Port:      a.cfg.Server.Port,
				JWTSecret: a.cfg.Auth.JWTSecret,
			}, a.models, a.log)
			if err != nil {
				return err
			}
			return srv.Run()
		},
	}

	cmd.Flags().BoolVar(&flags.builtin, "builtin", false, "Load the built-in plans models instead of a directory")
	cmd.Flags().BoolVar(&flags.migrate, "migrate", false, "Create or update the table of every model before serving")
	return cmd
}
