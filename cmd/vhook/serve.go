package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vhook/internal/config"
	"github.com/vango-dev/vhook/internal/demo"
	"github.com/vango-dev/vhook/pkg/engine"
	"github.com/vango-dev/vhook/pkg/live"
	"github.com/vango-dev/vhook/pkg/render"
)

func serveCmd() *cobra.Command {
	var (
		app        string
		port       int
		host       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live preview server",
		Long: `Serve a demo app in the browser.

Events in the browser are sent to the server over WebSocket, dispatched
to the component's listeners, and every connected browser receives the
re-rendered HTML.

Examples:
  vhook serve
  vhook serve --app todo --port 8080
  vhook serve --config vhook.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Dev.Port = port
			}
			if host != "" {
				cfg.Dev.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, cfg, app)
		},
	}

	cmd.Flags().StringVarP(&app, "app", "a", demo.DefaultApp, "Demo app to serve")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to vhook.json or vhook.yaml")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config, app string) error {
	component, err := demo.Lookup(app)
	if err != nil {
		return err
	}

	opts := []live.Option{
		live.WithTitle("vhook · " + app),
		live.WithRendererConfig(render.RendererConfig{Pretty: cfg.Render.Pretty, Indent: cfg.Render.Indent}),
		live.WithEngineOptions(engine.WithHookOrderCheck(cfg.Debug)),
	}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		m := engine.NewMetrics(engine.WithRegistry(reg), engine.WithNamespace(cfg.Metrics.Namespace))
		opts = append(opts, live.WithMetrics(reg), live.WithEngineOptions(engine.WithMetrics(m)))
	}

	srv, err := live.New(component, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	success(out, "Serving %s", app)
	info(out, "Open %s", cfg.DevURL())
	if cfg.Metrics.Enabled {
		info(out, "Metrics at %s/metrics", cfg.DevURL())
	}
	return srv.ListenAndServe(ctx, cfg.DevAddress())
}
