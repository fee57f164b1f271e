// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/bikeshare/internal/browser"
	"github.com/vk/bikeshare/internal/ctxlog"
	"github.com/vk/bikeshare/internal/prompt"
	"github.com/vk/bikeshare/internal/trip"
)

const restartQuestion = "\nWould you like to restart? Enter yes or no.\n"

// Run drives interactive sessions until the user declines to restart or the
// input is closed. Each iteration starts from scratch: new filters, a fresh
// load of the source and new reports. A data or source failure ends the run
// with an error.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	for iteration := 1; ; iteration++ {
		iterCtx := ctxlog.With(ctx, "iteration", iteration)

		err := a.session(iterCtx)
		if errors.Is(err, prompt.ErrInputClosed) {
			a.logger.Debug("Input closed, ending run.")
			return nil
		}
		if err != nil {
			return err
		}

		answer, err := a.prompter.Line(iterCtx, restartQuestion)
		if errors.Is(err, prompt.ErrInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.ToLower(answer) != "yes" {
			a.logger.Debug("App.Run method finished.", "iterations", iteration)
			return nil
		}
	}
}

// session runs one collect, load, report and browse cycle.
func (a *App) session(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	sel, err := a.prompter.Filters(ctx, a.catalog.Names())
	if err != nil {
		return err
	}
	city, err := a.catalog.Lookup(sel.City)
	if err != nil {
		return err
	}
	ctx = ctxlog.With(ctx, "city", city.Name)

	table, err := trip.Load(ctx, city.Source, sel)
	if err != nil {
		return fmt.Errorf("failed to load trips for %s: %w", city.Name, err)
	}

	report, err := a.reporter.All(ctx, sel, city.Demographics, table)
	if err != nil {
		return err
	}
	if err := a.publisher.Publish(ctx, report); err != nil {
		logger.Warn("Failed to publish report.", "error", err)
	}

	return browser.New(a.prompter, a.outW, table).Run(ctx)
}
