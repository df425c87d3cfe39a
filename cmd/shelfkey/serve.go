package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/nainya/shelfkey/internal/logger"
	"github.com/nainya/shelfkey/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var grpcPort, metricsPort int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the shelfkey gRPC server",
		Long: `Start the gRPC ShelfKeyService and the observability HTTP server.

The observability server provides:
  - /metrics - Prometheus metrics
  - /health  - Basic server health check
  - /ready   - Readiness check

Both stop gracefully on Ctrl+C or SIGTERM.

Examples:
  shelfkey serve                      # gRPC on 50051, metrics on 9090
  shelfkey serve --port 6000          # Custom gRPC port
  SHELFKEY_LOG_LEVEL=debug shelfkey serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.GRPCPort = grpcPort
			}
			if cmd.Flags().Changed("metrics-port") {
				cfg.Server.MetricsPort = metricsPort
			}

			log := logger.InitGlobalLogger(logger.Config{
				Level:      cfg.Log.Level,
				Pretty:     cfg.Log.Pretty,
				WithCaller: cfg.Log.Caller,
			})
			log.LogServerStart(cfg.Server.GRPCPort, cfg.Server.MetricsPort)

			app, err := server.NewApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer app.Close()

			grpcLis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
			if err != nil {
				return fmt.Errorf("failed to listen: %w", err)
			}
			httpLis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.MetricsPort))
			if err != nil {
				grpcLis.Close()
				return fmt.Errorf("failed to listen: %w", err)
			}

			return app.Run(cmd.Context(), grpcLis, httpLis)
		},
	}
	cmd.Flags().IntVar(&grpcPort, "port", 50051, "gRPC port")
	cmd.Flags().IntVar(&metricsPort, "metrics-port", 9090, "observability HTTP port")
	return cmd
}
