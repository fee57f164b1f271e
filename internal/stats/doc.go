// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package stats computes the descriptive statistics shown after a trip table
// is loaded: popular travel times, popular stations, trip durations and rider
// demographics.
//
// Every reporter is split in two halves. A pure function (TimeStats,
// StationStats, DurationStats, UserStats) computes a summary from a table,
// and a Reporter method prints that summary together with the time it took.
// When several values are equally frequent, the smallest one wins.
package stats
