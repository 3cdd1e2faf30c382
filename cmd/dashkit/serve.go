package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/davetashner/dashkit/internal/config"
	"github.com/davetashner/dashkit/internal/dashboard"
	"github.com/davetashner/dashkit/internal/server"
)

// Serve-specific flag values.
var (
	serveHost       string
	servePort       int
	serveAssetsHost string
)

// serveCmd runs the dashboard web server.
var serveCmd = &cobra.Command{
	Use:   "serve [dashboard...]",
	Short: "Serve dashboards over HTTP",
	Long: `Load every selected dashboard's dataset and serve the dashboards until
interrupted. With no arguments all enabled dashboards are served.

Dashboards share one listener at host:port unless their config sets a port of
their own. Each dashboard is at /d/<name>; / lists them and /healthz reports
liveness.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config, else 0.0.0.0)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config, else 8080)")
	serveCmd.Flags().StringVar(&serveAssetsHost, "assets-host", "", "base URL serving echarts.min.js")
}

func runServe(cmd *cobra.Command, args []string) error {
	flags := &config.Config{Host: serveHost, Port: servePort, AssetsHost: serveAssetsHost}
	cfg, ds, err := loadSelected(cmd.Context(), flags, args)
	if err != nil {
		return err
	}

	sites, err := buildSites(cfg, ds)
	if err != nil {
		return exitError(ExitConfigError, "dashkit: %v", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, sites); err != nil {
		return fmt.Errorf("dashkit: %w", err)
	}
	slog.Info("shut down")
	return nil
}

// buildSites groups dashboards by listen address and creates one server per
// address, ordered by address.
func buildSites(cfg *config.Config, ds []*dashboard.Dashboard) ([]server.Site, error) {
	byAddr := make(map[string][]*dashboard.Dashboard)
	for _, d := range ds {
		addr := cfg.Addr(d.Name)
		byAddr[addr] = append(byAddr[addr], d)
	}
	addrs := make([]string, 0, len(byAddr))
	for addr := range byAddr {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)

	sites := make([]server.Site, 0, len(addrs))
	for _, addr := range addrs {
		srv, err := server.New(byAddr[addr], server.Options{
			AssetsHost: cfg.AssetsHost,
			Logger:     slog.Default(),
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", addr, err)
		}
		for _, name := range srv.Names() {
			slog.Info("dashboard ready", "name", name, "url", fmt.Sprintf("http://%s/d/%s", addr, name))
		}
		sites = append(sites, server.Site{Addr: addr, Handler: srv.Handler()})
	}
	return sites, nil
}
