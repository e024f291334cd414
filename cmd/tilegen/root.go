package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/gogpu/tilegen"
	"github.com/gogpu/tilegen/internal/config"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath  string
	metricsAddr string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	root := &cobra.Command{
		Use:           "tilegen",
		Short:         "Render procedural tile documents",
		Long:          `tilegen evaluates the node graphs of a tile document and renders its layer to an image.`,
		SilenceUsage: true,
		Version:      tilegen.Version,
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "settings file (YAML or TOML)")
	root.PersistentFlags().StringVar(&g.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newInitCmd(),
		newValidateCmd(&g),
		newRenderCmd(&g),
		newWatchCmd(&g),
		newPreviewCmd(&g),
	)
	return root
}

// settings loads the configuration and installs the logger it describes.
func (g *globalFlags) settings() (config.Settings, error) {
	s, err := config.Load(g.configPath)
	if err != nil {
		return s, err
	}
	if g.metricsAddr != "" {
		s.Metrics.Addr = g.metricsAddr
	}
	if g.verbose {
		s.Log.Level = "debug"
	}
	logger := s.Logger()
	slog.SetDefault(logger)
	tilegen.SetLogger(logger)
	return s, nil
}

// serveMetrics exposes the default Prometheus registry on addr until ctx is
// done. An empty addr does nothing.
func serveMetrics(ctx context.Context, addr string) error {
	if addr == "" {
		return nil
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Warn("tilegen: metrics server stopped", slog.String("error", err.Error()))
		}
	}()
	slog.Info("tilegen: serving metrics", slog.String("addr", ln.Addr().String()))
	return nil
}
