package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ukaji3/missingplot-go/internal/metrics"
	transport "github.com/ukaji3/missingplot-go/internal/transport/http"
	"github.com/ukaji3/missingplot-go/pkg/missingplot"
	"github.com/ukaji3/missingplot-go/pkg/missingplot/output"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve estimation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, closer, err := setup(cmd, g)
			if err != nil {
				return err
			}
			defer closer.Close()

			if addr != "" {
				cfg.Server.Addr = addr
			}
			sameCol, err := missingplot.ParseSameColumnFormula(cfg.Estimation.SameColumnFormula)
			if err != nil {
				return err
			}

			m := metrics.New()
			router := transport.NewRouter(transport.Dependencies{
				Config: cfg.Server,
				Estimate: transport.NewEstimateHandler(
					missingplot.Options{SameColumnFormula: sameCol},
					output.SPSSOptions{Variable: cfg.Estimation.SPSSVariable, Precision: cfg.Estimation.SPSSPrecision},
					m, logger),
				Health:  transport.NewHealthHandler(version),
				Metrics: m,
				Logger:  logger,
			})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return transport.NewServer(cfg.Server, router, logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}
