package commands

import (
	"os/signal"
	"syscall"

	"github.com/fineflow77/btcpowerlawsimulator/internal/buildinfo"
	"github.com/fineflow77/btcpowerlawsimulator/internal/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulators as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.assumptions(cmd)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.prefs.Server.Addr
			}

			a.logger.SetFormatter(&logrus.JSONFormatter{})
			if a.logger.GetLevel() < logrus.InfoLevel && !cmd.Flags().Changed("log-level") {
				a.logger.SetLevel(logrus.InfoLevel)
			}
			a.logger.WithField("version", buildinfo.String()).Info("btcsim server")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.New(a.engine, g, a.logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from preferences, :8080)")
	return cmd
}
