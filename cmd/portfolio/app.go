package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/jonathan/portfolio/internal/archive"
	"github.com/jonathan/portfolio/internal/cache"
	"github.com/jonathan/portfolio/internal/compiler"
	"github.com/jonathan/portfolio/internal/config"
	"github.com/jonathan/portfolio/internal/export"
	"github.com/jonathan/portfolio/internal/store"
	"github.com/jonathan/portfolio/internal/types"
)

// closer releases a backend on exit.
type closer interface {
	Close() error
}

// app is the wired export pipeline plus the backends it opened.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	service *export.Service
	closers []closer
}

// newApp wires the compiler, cache, and archive described by cfg. Optional
// backends that fail to connect are logged and skipped.
func newApp(ctx context.Context, cfg *config.Config, logger *log.Logger) *app {
	a := &app{cfg: cfg, logger: logger}

	options := []export.Option{export.WithLogger(logger)}
	if cfg.Cache.RedisURL != "" {
		c, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			logger.Warn("artifact cache disabled", "err", err)
		} else {
			options = append(options, export.WithCache(c))
			a.closers = append(a.closers, c)
		}
	}
	if cfg.Archive.GCSBucket != "" {
		g := archive.NewGCS(cfg.Archive.GCSBucket, cfg.Archive.Prefix, logger)
		options = append(options, export.WithArchive(g))
		a.closers = append(a.closers, g)
	}

	a.service = export.NewService(newCompiler(cfg, logger), export.Options{
		MainTemplate:    cfg.MainTemplatePath(),
		IncludeTemplate: cfg.IncludeTemplatePath(),
		CacheTTL:        cfg.CacheTTL(),
	}, options...)
	return a
}

func newCompiler(cfg *config.Config, logger *log.Logger) *compiler.Orchestrator {
	var remote compiler.RemoteClient
	if !cfg.Compiler.DisableRemote && cfg.Compiler.RemoteURL != "" {
		remote = compiler.NewRemoteCompiler(cfg.Compiler.RemoteURL, cfg.Compiler.RemoteCompiler, cfg.Compiler.PreviewLimit)
	}
	return compiler.NewOrchestrator(
		compiler.NewExecCompiler(cfg.Compiler.Binary),
		remote,
		compiler.Options{
			TempDir:       cfg.Compiler.TempDir,
			LocalTimeout:  cfg.LocalTimeout(),
			RemoteTimeout: cfg.RemoteTimeout(),
		},
		logger,
	)
}

// openStore connects the resume store, or returns nil when none is configured.
func (a *app) openStore(ctx context.Context) (store.Store, error) {
	if a.cfg.Store.DatabaseURL == "" {
		return nil, nil
	}
	st, err := store.Open(ctx, a.cfg.Store.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume store: %w", err)
	}
	a.closers = append(a.closers, st)
	return st, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("close failed", "err", err)
		}
	}
}

// readResume loads and validates a resume JSON file. "-" reads stdin.
func readResume(stdin io.Reader, path string) (*types.Resume, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}

	var r types.Resume
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resume: %w", err)
	}
	return &r, nil
}

// diagnostic extracts the compiler diagnostic from err, if any.
func diagnostic(err error) *compiler.Diagnostic {
	var d *compiler.Diagnostic
	if errors.As(err, &d) {
		return d
	}
	return nil
}
