// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/bikeshare/internal/ctxlog"
	"github.com/vk/bikeshare/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

//go:embed cities.hcl
var defaultCatalog []byte

// ErrUnknownCity is returned by Lookup for names missing from the catalog.
var ErrUnknownCity = errors.New("unknown city")

// City is one entry of the catalog.
type City struct {
	Name         string
	Source       string
	Demographics bool
}

// Catalog is an ordered, read-only set of cities.
type Catalog struct {
	cities []City
	byName map[string]int
}

// hclCity is the decoding target for a `city` block.
type hclCity struct {
	Name         string `hcl:"name,label"`
	Source       string `hcl:"source"`
	Demographics bool   `hcl:"demographics,optional"`
}

// hclCatalogFile represents the top-level structure of a catalog file.
type hclCatalogFile struct {
	Cities []*hclCity `hcl:"city,block"`
}

// Default returns the built-in catalog with sources resolved against dataDir.
func Default(ctx context.Context, dataDir string) (*Catalog, error) {
	parser := hclparse.NewParser()
	cities, err := parseFile(parser, defaultCatalog, "cities.hcl", evalContext(dataDir))
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Using built-in city catalog.", "cities", len(cities))
	return New(cities...)
}

// Load reads every .hcl file under path (a file or a directory) into a
// single catalog. Cities keep the order in which they are declared, files
// being visited in lexical order.
func Load(ctx context.Context, path, dataDir string) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading city catalog.", "path", path)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find catalog files in %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl catalog files found in %s", path)
	}

	parser := hclparse.NewParser()
	evalCtx := evalContext(dataDir)
	var cities []City
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file %s: %w", file, err)
		}
		parsed, err := parseFile(parser, src, file, evalCtx)
		if err != nil {
			return nil, err
		}
		logger.Debug("Catalog file parsed.", "file", file, "cities", len(parsed))
		cities = append(cities, parsed...)
	}

	return New(cities...)
}

// New builds a catalog from explicit entries. Names must be non-empty,
// lower case and unique, and every city needs a source.
func New(cities ...City) (*Catalog, error) {
	if len(cities) == 0 {
		return nil, errors.New("catalog must declare at least one city")
	}

	c := &Catalog{
		cities: make([]City, 0, len(cities)),
		byName: make(map[string]int, len(cities)),
	}
	for _, city := range cities {
		switch {
		case city.Name == "":
			return nil, errors.New("city name must not be empty")
		case city.Name != strings.ToLower(city.Name):
			return nil, fmt.Errorf("city %q: name must be lower case", city.Name)
		case city.Source == "":
			return nil, fmt.Errorf("city %q: source must not be empty", city.Name)
		}
		if _, dup := c.byName[city.Name]; dup {
			return nil, fmt.Errorf("city %q is declared more than once", city.Name)
		}
		c.byName[city.Name] = len(c.cities)
		c.cities = append(c.cities, city)
	}
	return c, nil
}

// Names returns the city names in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.cities))
	for i, city := range c.cities {
		names[i] = city.Name
	}
	return names
}

// Lookup returns the city registered under name.
func (c *Catalog) Lookup(name string) (City, error) {
	i, ok := c.byName[name]
	if !ok {
		return City{}, fmt.Errorf("%w: %q", ErrUnknownCity, name)
	}
	return c.cities[i], nil
}

func evalContext(dataDir string) *hcl.EvalContext {
	if dataDir == "" {
		dataDir = "."
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"data_dir": cty.StringVal(dataDir),
		},
	}
}

// parseFile parses a single catalog document and returns its cities.
func parseFile(parser *hclparse.Parser, src []byte, filename string, evalCtx *hcl.EvalContext) ([]City, error) {
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", filename, diags)
	}

	var parsed hclCatalogFile
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", filename, diags)
	}

	cities := make([]City, 0, len(parsed.Cities))
	for _, c := range parsed.Cities {
		cities = append(cities, City{
			Name:         c.Name,
			Source:       filepath.Clean(c.Source),
			Demographics: c.Demographics,
		})
	}
	return cities, nil
}
