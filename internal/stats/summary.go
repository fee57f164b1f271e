// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/vk/bikeshare/internal/trip"
)

// ErrMissingColumn is returned when a table lacks a demographic column its
// city is expected to publish.
var ErrMissingColumn = errors.New("missing demographic column")

// TimeSummary holds the most frequent times of travel.
type TimeSummary struct {
	Month int    `json:"month"`
	Day   string `json:"day"`
	Hour  int    `json:"hour"`
}

// StationSummary holds the most popular stations and trip.
type StationSummary struct {
	Start string `json:"start_station"`
	End   string `json:"end_station"`
	Trip  string `json:"trip"`
}

// DurationSummary holds total and mean trip duration in minutes.
type DurationSummary struct {
	TotalMinutes int     `json:"total_minutes"`
	MeanMinutes  float64 `json:"mean_minutes"`
}

// UserSummary holds rider statistics. Genders and the birth year fields are
// only set when Demographics is true; the birth year fields additionally
// require HasBirthYears.
type UserSummary struct {
	UserTypes         []Count[string] `json:"user_types"`
	Demographics      bool            `json:"demographics"`
	Genders           []Count[string] `json:"genders,omitempty"`
	HasBirthYears     bool            `json:"has_birth_years"`
	LatestBirthYear   int             `json:"latest_birth_year,omitempty"`
	EarliestBirthYear int             `json:"earliest_birth_year,omitempty"`
	CommonBirthYear   int             `json:"common_birth_year,omitempty"`
}

// TripLabel joins a start and end station into a single trip label.
func TripLabel(start, end string) string {
	return start + " to " + end
}

// TimeStats returns the most common month, weekday and start hour. ok is
// false for an empty table.
func TimeStats(t *trip.Table) (s TimeSummary, ok bool) {
	if t.Len() == 0 {
		return s, false
	}
	months := make([]int, 0, t.Len())
	days := make([]string, 0, t.Len())
	hours := make([]int, 0, t.Len())
	for _, tr := range t.Trips {
		months = append(months, tr.Month)
		days = append(days, tr.DayOfWeek)
		hours = append(hours, tr.Hour())
	}
	s.Month, _ = Mode(months)
	s.Day, _ = Mode(days)
	s.Hour, _ = Mode(hours)
	return s, true
}

// StationStats returns the most common start station, end station and
// start-to-end trip. ok is false for an empty table.
func StationStats(t *trip.Table) (s StationSummary, ok bool) {
	if t.Len() == 0 {
		return s, false
	}
	starts := make([]string, 0, t.Len())
	ends := make([]string, 0, t.Len())
	trips := make([]string, 0, t.Len())
	for _, tr := range t.Trips {
		starts = append(starts, tr.StartStation)
		ends = append(ends, tr.EndStation)
		trips = append(trips, TripLabel(tr.StartStation, tr.EndStation))
	}
	s.Start, _ = Mode(starts)
	s.End, _ = Mode(ends)
	s.Trip, _ = Mode(trips)
	return s, true
}

// DurationStats returns the total travel time truncated to whole minutes and
// the mean travel time rounded to two decimals. ok is false for an empty
// table.
func DurationStats(t *trip.Table) (s DurationSummary, ok bool) {
	if t.Len() == 0 {
		return s, false
	}
	var total float64
	for _, tr := range t.Trips {
		total += tr.Duration().Minutes()
	}
	s.TotalMinutes = int(total)
	s.MeanMinutes = math.Round(total/float64(t.Len())*100) / 100
	return s, true
}

// UserStats counts user types and, when demographics is set, genders and
// birth years. Blank cells are left out of every count. Gender and Birth
// Year columns are never consulted when demographics is false.
func UserStats(t *trip.Table, demographics bool) (UserSummary, error) {
	s := UserSummary{Demographics: demographics}

	userTypes := make([]string, 0, t.Len())
	for _, tr := range t.Trips {
		if tr.UserType != "" {
			userTypes = append(userTypes, tr.UserType)
		}
	}
	s.UserTypes = ValueCounts(userTypes)

	if !demographics {
		return s, nil
	}
	if !t.HasGender {
		return s, fmt.Errorf("%w: %q", ErrMissingColumn, trip.ColGender)
	}
	if !t.HasBirthYear {
		return s, fmt.Errorf("%w: %q", ErrMissingColumn, trip.ColBirthYear)
	}

	genders := make([]string, 0, t.Len())
	years := make([]int, 0, t.Len())
	for _, tr := range t.Trips {
		if tr.Gender != "" {
			genders = append(genders, tr.Gender)
		}
		if tr.HasBirthYear {
			years = append(years, tr.BirthYear)
		}
	}
	s.Genders = ValueCounts(genders)

	if len(years) == 0 {
		return s, nil
	}
	s.HasBirthYears = true
	s.LatestBirthYear, s.EarliestBirthYear = years[0], years[0]
	for _, y := range years[1:] {
		s.LatestBirthYear = max(s.LatestBirthYear, y)
		s.EarliestBirthYear = min(s.EarliestBirthYear, y)
	}
	s.CommonBirthYear, _ = Mode(years)
	return s, nil
}
