// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/bikeshare/internal/catalog"
	"github.com/vk/bikeshare/internal/ctxlog"
	"github.com/vk/bikeshare/internal/prompt"
	"github.com/vk/bikeshare/internal/publish"
	"github.com/vk/bikeshare/internal/stats"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	catalog   *catalog.Catalog
	prompter  *prompt.Prompter
	reporter  *stats.Reporter
	publisher publish.Publisher
}

// Option customizes an App built by NewApp.
type Option func(*App)

// WithPublisher replaces the publisher derived from the configuration.
func WithPublisher(p publish.Publisher) Option {
	return func(a *App) { a.publisher = p }
}

// NewApp wires an App reading answers from in, printing the session to outW
// and logging to logW.
func NewApp(ctx context.Context, in io.Reader, outW, logW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	var (
		cat *catalog.Catalog
		err error
	)
	if cfg.CitiesPath != "" {
		cat, err = catalog.Load(ctx, cfg.CitiesPath, cfg.DataDir)
	} else {
		cat, err = catalog.Default(ctx, cfg.DataDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load city catalog: %w", err)
	}
	logger.Debug("City catalog loaded.", "cities", cat.Names())

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		catalog:  cat,
		prompter: prompt.New(in, outW),
		reporter: stats.NewReporter(outW),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.publisher == nil {
		if cfg.PublishURL == "" {
			a.publisher = publish.Nop{}
		} else {
			p, err := publish.Dial(ctx, publish.Options{
				URL:                cfg.PublishURL,
				Namespace:          cfg.PublishNamespace,
				InsecureSkipVerify: cfg.PublishInsecure,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to start report publisher: %w", err)
			}
			a.publisher = p
		}
	}

	return a, nil
}

// Close releases the publisher connection.
func (a *App) Close() error {
	a.logger.Debug("Closing report publisher.")
	return a.publisher.Close()
}
