package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/internal/metrics"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/internal/server"
)

// serveCommand runs the HTTP layout service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noCache   bool
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout service",
		Long: `Run the HTTP layout service.

Routes:
  POST /v1/layout   lay out a tree
  POST /v1/drag     move a talent and lay out the result
  GET  /healthz     liveness
  GET  /metrics     Prometheus metrics

The cache backend, timeouts and body limit come from the [cache] and
[server] sections of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts := []server.Option{
				server.WithLogger(c.Logger),
				server.WithDefaults(c.config.PipelineOptions()),
				server.WithMaxBodyBytes(cfg.MaxBodyBytes),
			}
			if !noMetrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				metrics.New(reg).Install()
				opts = append(opts, server.WithMetricsHandler(metrics.Handler(reg)))
			}

			printInfo("Serving on %s", StyleNumber.Render(cfg.Addr))
			printDetail("cache: %s", c.config.Cache.Backend)
			return server.New(runner, opts...).Run(ctx, cfg.Addr, cfg.ReadTimeout, cfg.WriteTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")
	return cmd
}
