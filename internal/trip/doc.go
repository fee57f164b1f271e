// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package trip holds the in-memory trip table and the loader that builds it
// from a city's CSV export.
//
// A table is read once per session iteration. While reading, the loader parses
// the start and end timestamps and derives the month number and weekday name
// of every trip. The table is then narrowed by the month and day the user
// selected. Nothing is ever written back to the source.
package trip
