// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/bikeshare/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("bikeshare", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
Bikeshare - explore bicycle-share trip data from the terminal.

Usage:
  bikeshare [options] [DATA_DIR]

Arguments:
  DATA_DIR
    Directory holding chicago.csv, new_york_city.csv and washington.csv.
    Defaults to the current directory.

Options:
`)
		flagSet.PrintDefaults()
	}

	dataDirFlag := flagSet.String("data-dir", "", "Directory holding the city CSV files.")
	citiesFlag := flagSet.String("cities", "", "Path to an .hcl city catalog file or directory. Defaults to the built-in catalog.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	publishURLFlag := flagSet.String("publish-url", "", "socket.io server that receives every report. Empty disables publishing.")
	publishNSFlag := flagSet.String("publish-namespace", "/", "socket.io namespace used for publishing.")
	publishInsecureFlag := flagSet.Bool("publish-insecure", false, "Skip TLS certificate verification when publishing.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one DATA_DIR argument, got %d", flagSet.NArg())}
	}

	dataDir := *dataDirFlag
	if dataDir == "" && flagSet.NArg() == 1 {
		dataDir = flagSet.Arg(0)
	}
	slog.Debug("Data directory determined.", "path", dataDir)

	config, err := app.NewConfig(app.Config{
		DataDir:          dataDir,
		CitiesPath:       *citiesFlag,
		LogFormat:        strings.ToLower(*logFormatFlag),
		LogLevel:         strings.ToLower(*logLevelFlag),
		PublishURL:       *publishURLFlag,
		PublishNamespace: *publishNSFlag,
		PublishInsecure:  *publishInsecureFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
