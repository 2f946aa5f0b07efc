// Package setup builds the shared dependencies of the commands from a
// configuration.
package setup

import (
	"fmt"
	"time"

	"github.com/cours-de-latin/dupfinder"
	"github.com/cours-de-latin/dupfinder/internal/config"
	"github.com/cours-de-latin/dupfinder/internal/dict"
	"github.com/cours-de-latin/dupfinder/internal/logging"
	"github.com/cours-de-latin/dupfinder/internal/remote"
	"go.uber.org/zap"
)

// App bundles the dependencies needed to serve analysis requests.
type App struct {
	Config   *config.Config     // Application configuration
	Logger   *zap.Logger        // Main application logger
	Analyzer dupfinder.Analyzer // Shared, concurrency-limited analyzer handle
	Finder   *dupfinder.Finder  // Duplicate search pipeline
}

// InitializeApp validates cfg and builds the logger, the analyzer and the
// finder.
func InitializeApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	analyzer, err := NewAnalyzer(cfg.Analyzer, logger)
	if err != nil {
		logger.Error("Failed to initialize analyzer", zap.Error(err))
		return nil, err
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Analyzer: analyzer,
		Finder:   dupfinder.New(analyzer, dupfinder.WithLogger(logger.Named("finder"))),
	}, nil
}

// NewAnalyzer builds the configured analyzer backend, limited to
// cfg.MaxConcurrent simultaneous calls. A backend that cannot be initialized
// yields an error wrapping dupfinder.ErrAnalyzerUnavailable.
func NewAnalyzer(cfg config.Analyzer, logger *zap.Logger) (dupfinder.Analyzer, error) {
	var a dupfinder.Analyzer

	switch cfg.Backend {
	case config.BackendDict:
		start := time.Now()
		d, err := dict.Load(cfg.DictPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", dupfinder.ErrAnalyzerUnavailable, err)
		}
		logger.Info("Loaded lexicon",
			zap.String("path", cfg.DictPath),
			zap.Int("forms", d.Len()),
			zap.Int("rejectedLines", d.Rejected()),
			zap.Duration("took", time.Since(start)))
		a = d

	case config.BackendRemote:
		a = remote.New(cfg.RemoteURL,
			remote.WithRetry(remote.RetryOptions{
				MaxRetries:      cfg.Retry.MaxRetries,
				InitialInterval: time.Duration(cfg.Retry.InitialIntervalMS) * time.Millisecond,
				MaxInterval:     time.Duration(cfg.Retry.MaxIntervalMS) * time.Millisecond,
				MaxElapsedTime:  cfg.Timeout(),
			}),
			remote.WithLogger(logger.Named("remote")))
		logger.Info("Using remote analyzer", zap.String("url", cfg.RemoteURL))

	default:
		return nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalidConfig, cfg.Backend)
	}

	return dupfinder.Limit(a, cfg.MaxConcurrent), nil
}
