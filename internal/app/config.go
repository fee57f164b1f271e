// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"fmt"
	"net/url"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DataDir    string // directory holding the city CSV files
	CitiesPath string // optional .hcl catalog file or directory

	LogFormat string
	LogLevel  string

	PublishURL       string
	PublishNamespace string
	PublishInsecure  bool
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	if cfg.PublishURL != "" {
		u, err := url.Parse(cfg.PublishURL)
		if err != nil {
			return nil, fmt.Errorf("invalid publish URL: %w", err)
		}
		switch u.Scheme {
		case "http", "https", "ws", "wss":
		default:
			return nil, fmt.Errorf("invalid publish URL %q: scheme must be http, https, ws or wss", cfg.PublishURL)
		}
	}
	if cfg.PublishNamespace == "" {
		cfg.PublishNamespace = "/"
	}

	return &cfg, nil
}
