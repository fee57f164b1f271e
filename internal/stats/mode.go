// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package stats

import (
	"cmp"
	"slices"
)

// Count is the number of occurrences of a single value.
type Count[T cmp.Ordered] struct {
	Value T   `json:"value"`
	N     int `json:"count"`
}

// ValueCounts tallies values, most frequent first. Equal counts are ordered
// by value.
func ValueCounts[T cmp.Ordered](values []T) []Count[T] {
	tally := make(map[T]int, len(values))
	for _, v := range values {
		tally[v]++
	}

	counts := make([]Count[T], 0, len(tally))
	for v, n := range tally {
		counts = append(counts, Count[T]{Value: v, N: n})
	}
	slices.SortFunc(counts, func(a, b Count[T]) int {
		if c := cmp.Compare(b.N, a.N); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return counts
}

// Mode returns the most frequent value. ok is false when values is empty.
func Mode[T cmp.Ordered](values []T) (mode T, ok bool) {
	counts := ValueCounts(values)
	if len(counts) == 0 {
		return mode, false
	}
	return counts[0].Value, true
}
