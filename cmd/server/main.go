// Command server exposes the duplicate finder as a JSON REST API.
//
// Endpoints:
//
//	POST /api/duplicates  body: {"text":"..."}
//	POST /api/analyze     body: {"text":"..."}
//	GET  /api/healthz
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cours-de-latin/dupfinder/internal/api"
	"github.com/cours-de-latin/dupfinder/internal/config"
	"github.com/cours-de-latin/dupfinder/internal/setup"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	app := &cli.Command{
		Name:  "dupfinder-server",
		Usage: "Serve the duplicate finder over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to dupfinder.toml"},
			&cli.StringFlag{Name: "addr", Usage: "listen address (overrides server.addr)"},
			&cli.StringFlag{Name: "dict", Usage: "lexicon path (selects the dict backend)"},
			&cli.StringFlag{Name: "remote", Usage: "analyzer service URL (selects the remote backend)"},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, configPath, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if addr := cmd.String("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	applyAnalyzerFlags(cfg, cmd.String("dict"), cmd.String("remote"))

	app, err := setup.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("failed to setup dependencies: %w", err)
	}
	defer func() { _ = app.Logger.Sync() }()

	if configPath != "" {
		app.Logger.Info("Loaded config", zap.String("path", configPath))
	}

	handler := api.NewHandler(app.Finder, app.Analyzer, app.Logger.Named("api"), api.Options{
		Timeout:        cfg.Analyzer.Timeout(),
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("Listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	app.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// applyAnalyzerFlags lets command-line flags select the analyzer backend.
func applyAnalyzerFlags(cfg *config.Config, dictPath, remoteURL string) {
	if dictPath != "" {
		cfg.Analyzer.Backend = config.BackendDict
		cfg.Analyzer.DictPath = dictPath
	}
	if remoteURL != "" {
		cfg.Analyzer.Backend = config.BackendRemote
		cfg.Analyzer.RemoteURL = remoteURL
	}
}
