package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"startpage/internal/config"
	"startpage/internal/logging"
	"startpage/internal/server"
	"startpage/internal/suggest"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "suggestd: %v\n", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled or a signal arrives. Deferred cleanup
// runs before main exits.
func run(ctx context.Context, args []string) error {
	var configPath, addr string
	fs := flag.NewFlagSet("suggestd", flag.ContinueOnError)
	fs.StringVar(&configPath, "config", "", "Path to the config file")
	fs.StringVar(&addr, "addr", "", "Listen address, overrides the config")
	if err := fs.Parse(args); err != nil {
		return err
	}

	configSvc := config.NewConfigService()
	if configPath != "" {
		configSvc = config.NewConfigServiceAt(configPath)
	}
	cfg, loadErr := configSvc.Load()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, OutputPaths: []string{"stderr"}})
	if err != nil {
		return fmt.Errorf("invalid log config: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if loadErr != nil {
		logger.Warn("error loading config, using defaults",
			zap.String("path", configSvc.Path()), zap.Error(loadErr))
	}
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	provider := suggest.NewProvider(suggest.ProviderConfig{
		URL:     cfg.Suggest.ProviderURL,
		Timeout: cfg.Suggest.Timeout.D(),
	}, logger)

	srv := server.New(server.Config{
		Addr:            cfg.Server.Addr,
		RateLimitPerSec: cfg.Server.RateLimitPerSec,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
	}, provider, reg, logger)

	if err := srv.Run(ctx); err != nil {
		logger.Error("suggestion proxy stopped", zap.Error(err))
		return err
	}
	return nil
}
