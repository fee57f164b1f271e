// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package trip

import "time"

// TimeLayout is the exact layout of the Start Time and End Time columns.
const TimeLayout = "2006-01-02 15:04:05"

// All selects every month or every day.
const All = "all"

// Months lists the month names that can be selected, in calendar order.
var Months = []string{"january", "february", "march", "april", "may", "june"}

// Days lists the weekday names that can be selected.
var Days = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Selection is the (city, month, day) triple chosen for one session iteration.
// Month and Day are lower case and either All or a member of Months/Days.
type Selection struct {
	City  string
	Month string
	Day   string
}

// Trip is a single bicycle rental.
type Trip struct {
	// Row is the zero-based position of the trip in its source file.
	Row    int
	Fields []string

	StartTime    time.Time
	EndTime      time.Time
	StartStation string
	EndStation   string
	UserType     string

	// Gender and BirthYear are only populated for sources that publish them.
	// Blank cells leave Gender empty and HasBirthYear false.
	Gender       string
	BirthYear    int
	HasBirthYear bool

	// Derived from StartTime by the loader.
	Month     int
	DayOfWeek string
}

// Hour returns the hour of day the trip started.
func (t Trip) Hour() int {
	return t.StartTime.Hour()
}

// Duration returns the time between start and end.
func (t Trip) Duration() time.Duration {
	return t.EndTime.Sub(t.StartTime)
}

// Table is an ordered collection of trips read from one source.
type Table struct {
	Header       []string
	Trips        []Trip
	HasGender    bool
	HasBirthYear bool
}

// Len returns the number of trips in the table.
func (t *Table) Len() int {
	return len(t.Trips)
}

// Window returns the trips in [offset, offset+size). Windows reaching past
// the end are truncated; an offset past the end yields an empty window.
func (t *Table) Window(offset, size int) []Trip {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(t.Trips) || size <= 0 {
		return nil
	}
	end := offset + size
	if end > len(t.Trips) {
		end = len(t.Trips)
	}
	return t.Trips[offset:end]
}

// where returns a table holding the trips that satisfy keep, in order.
func (t *Table) where(keep func(Trip) bool) *Table {
	out := &Table{
		Header:       t.Header,
		HasGender:    t.HasGender,
		HasBirthYear: t.HasBirthYear,
		Trips:        make([]Trip, 0, len(t.Trips)),
	}
	for _, tr := range t.Trips {
		if keep(tr) {
			out.Trips = append(out.Trips, tr)
		}
	}
	return out
}
