// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package trip

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MonthNumber converts a month name from Months to its calendar number.
func MonthNumber(name string) (int, error) {
	i := slices.Index(Months, name)
	if i < 0 {
		return 0, fmt.Errorf("unknown month %q", name)
	}
	return i + 1, nil
}

// FilterMonth keeps the trips that started in the named month. All returns
// the table unchanged.
func FilterMonth(t *Table, month string) (*Table, error) {
	if month == All {
		return t, nil
	}
	n, err := MonthNumber(month)
	if err != nil {
		return nil, err
	}
	return t.where(func(tr Trip) bool { return tr.Month == n }), nil
}

// FilterDay keeps the trips that started on the named weekday. The name is
// matched case-insensitively against the derived weekday. All returns the
// table unchanged.
func FilterDay(t *Table, day string) (*Table, error) {
	if day == All {
		return t, nil
	}
	if !slices.Contains(Days, strings.ToLower(day)) {
		return nil, fmt.Errorf("unknown day %q", day)
	}
	want := cases.Title(language.English).String(day)
	return t.where(func(tr Trip) bool { return tr.DayOfWeek == want }), nil
}

// Apply narrows t by the month and day of sel.
func Apply(t *Table, sel Selection) (*Table, error) {
	t, err := FilterMonth(t, sel.Month)
	if err != nil {
		return nil, err
	}
	return FilterDay(t, sel.Day)
}
