// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package catalog defines the set of cities the explorer can load and where
// each city's trip data lives.
//
// The catalog is written in HCL. A built-in catalog covering chicago,
// new york city and washington is embedded in the binary; a different one can
// be supplied as a single .hcl file or a directory of them. Every `source`
// attribute is evaluated with a `data_dir` variable, so the same catalog can
// point at data stored anywhere.
package catalog
