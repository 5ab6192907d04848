package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-formframe"
	"github.com/goliatone/go-formframe/internal/config"
	"github.com/goliatone/go-formframe/internal/logging"
	"github.com/goliatone/go-formframe/pkg/address"
	"github.com/goliatone/go-formframe/pkg/apispec"
	"github.com/goliatone/go-formframe/pkg/renderers/frame"
	"github.com/goliatone/go-formframe/pkg/server"
	"github.com/goliatone/go-formframe/pkg/themes"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	level := flag.String("log-level", "", "debug, info, warn or error (overrides config)")
	grace := flag.Duration("grace", 0, "shutdown grace period (overrides config)")
	themeName := flag.String("theme", "", "theme name (overrides config)")
	variant := flag.String("variant", "", "theme variant (overrides config)")
	templates := flag.String("templates", "", "directory overriding the embedded templates")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "log-level":
			cfg.LogLevel = *level
		case "grace":
			cfg.Grace = *grace
		case "theme":
			cfg.Theme = *themeName
		case "variant":
			cfg.Variant = *variant
		case "templates":
			cfg.TemplatesDir = *templates
		}
	})

	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	logger := logging.New(lvl)

	selector, err := themes.NewDefaultSelector(cfg.Variant)
	if err != nil {
		log.Fatalf("Failed to build themes: %v", err)
	}
	selection, err := selector.Select(cfg.Theme, cfg.Variant)
	if err != nil {
		log.Fatalf("Failed to select theme: %v", err)
	}

	renderer, err := frame.New(
		frame.WithTheme(themes.RendererConfig(selection)),
		frame.WithTemplatesDir(cfg.TemplatesDir),
	)
	if err != nil {
		log.Fatalf("Failed to build renderer: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics, err := server.NewMetrics(prometheus.NewRegistry())
	if err != nil {
		log.Fatalf("Failed to build metrics: %v", err)
	}

	opts := []server.OptionFn{
		server.WithLogger(logger),
		server.WithMetrics(metrics),
		server.WithRenderer(renderer),
		server.WithStore(address.NewMemoryStore()),
		server.WithAssets(formframe.RuntimeAssetsFS()),
	}
	if cfg.Validate {
		doc, err := apispec.Load(ctx)
		if err != nil {
			log.Fatalf("Failed to load API description: %v", err)
		}
		validator, err := apispec.NewValidator(doc, apispec.WithLogger(logger))
		if err != nil {
			log.Fatalf("Failed to build validator: %v", err)
		}
		opts = append(opts, server.WithValidator(validator))
	}

	srv, err := server.New(opts...)
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.Addr, "theme", selection.Theme, "variant", selection.Variant)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "grace", cfg.Grace)
		if cfg.Grace <= 0 {
			return httpServer.Close()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Grace)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
