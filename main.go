package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"startpage/internal/config"
	"startpage/internal/eventbus"
	"startpage/internal/history"
	"startpage/internal/logging"
	"startpage/internal/preferences"
	"startpage/internal/storage"
	"startpage/internal/suggest"
	"startpage/internal/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// run owns every deferred cleanup so the log is flushed and the store closed
// before main decides the exit code
func run(args []string) error {
	// Parse command line arguments
	var configPath string
	var ephemeral bool
	fs := flag.NewFlagSet("startpage", flag.ContinueOnError)
	fs.StringVar(&configPath, "config", "", "Path to the config file")
	fs.StringVar(&configPath, "c", "", "Path to the config file (shorthand)")
	fs.BoolVar(&ephemeral, "ephemeral", false, "Keep history and the engine choice in memory only")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Load configuration
	configSvc := config.NewConfigService()
	if configPath != "" {
		configSvc = config.NewConfigServiceAt(configPath)
	}
	cfg, loadErr := configSvc.Load()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// Set up logging; the terminal belongs to the UI
	logger := zap.NewNop()
	if cfg.Log.File != "" {
		logger = logging.NewOrNop(logging.FileConfig(cfg.Log.File, cfg.Log.Level))
	}
	defer func() { _ = logger.Sync() }()

	if loadErr != nil {
		logger.Warn("error loading config, using defaults",
			zap.String("path", configSvc.Path()), zap.Error(loadErr))
	}

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kv := openStore(cfg, ephemeral, logger)
	defer kv.Close()

	// Create event bus; closing it delivers anything still queued
	bus := eventbus.New(logger)
	defer bus.Close()
	logEvents(bus, logger)

	uiModel := ui.NewModel(cfg, ui.Dependencies{
		Bus:         bus,
		History:     history.New(kv, cfg.History.Cap, logger),
		Preferences: preferences.New(kv, cfg.DefaultEngine, logger),
		Fetcher:     newFetcher(cfg, logger),
		Logger:      logger,
	})

	p := tea.NewProgram(uiModel,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	uiModel.SetProgram(p)

	logger.Info("starting UI")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logger.Error("error running program", zap.Error(err))
		return err
	}
	logger.Info("UI exited normally")
	return nil
}

// openStore opens the SQLite store in the data dir. A store that cannot be
// opened degrades to memory so the page still works.
func openStore(cfg *config.Config, ephemeral bool, logger *zap.Logger) storage.KV {
	if ephemeral {
		return storage.NewMemoryKV()
	}
	path := filepath.Join(cfg.DataDir, "startpage.db")
	kv, err := storage.OpenSQLite(path)
	if err != nil {
		logger.Warn("storage unavailable, history will not persist",
			zap.String("path", path), zap.Error(err))
		return storage.NewMemoryKV()
	}
	return kv
}

// newFetcher prefers a running proxy and falls back to calling the
// provider in-process.
func newFetcher(cfg *config.Config, logger *zap.Logger) suggest.Fetcher {
	if cfg.Suggest.Endpoint != "" {
		logger.Info("using suggestion proxy", zap.String("endpoint", cfg.Suggest.Endpoint))
		return suggest.NewRemoteClient(cfg.Suggest.Endpoint, cfg.Suggest.Timeout.D())
	}
	return suggest.NewProvider(suggest.ProviderConfig{
		URL:     cfg.Suggest.ProviderURL,
		Timeout: cfg.Suggest.Timeout.D(),
	}, logger)
}

func logEvents(bus eventbus.EventBus, logger *zap.Logger) {
	logger = logger.Named("events")
	bus.Subscribe(eventbus.EventSearchSubmitted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchSubmittedEvent); ok {
			logger.Info("search submitted",
				zap.String("engine", event.EngineID), zap.String("url", event.URL))
		}
	})
	bus.Subscribe(eventbus.EventEngineSelected, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.EngineSelectedEvent); ok {
			logger.Info("engine selected", zap.String("engine", event.EngineID))
		}
	})
	bus.Subscribe(eventbus.EventHistoryEntryRemoved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.HistoryEntryRemovedEvent); ok {
			logger.Debug("history entry removed", zap.String("query", event.Query))
		}
	})
	bus.Subscribe(eventbus.EventHistoryCleared, func(eventbus.DomainEvent) {
		logger.Info("history cleared")
	})
	bus.Subscribe(eventbus.EventSuggestionsFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SuggestionsFailedEvent); ok {
			logger.Warn("suggestions failed", zap.String("query", event.Query), zap.Error(event.Err))
		}
	})
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ErrorEvent); ok {
			logger.Error(event.Message, zap.Error(event.Err))
		}
	})
}
