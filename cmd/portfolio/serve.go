package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the export HTTP server",
		Long:  "Start an HTTP server that compiles posted or stored resumes to PDF.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			ctx := cmd.Context()
			a := newApp(ctx, cfg, logger)
			defer a.Close()

			if err := a.service.Precheck(); err != nil {
				logger.Warn("template precheck failed, exports will fail until fixed", "err", err)
			}

			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			if st == nil {
				logger.Info("no resume store configured, stored exports disabled")
			}

			srv, err := server.New(cfg, a.service, st, logger)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on (overrides config)")
	return cmd
}
