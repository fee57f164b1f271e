// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package stats

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/vk/bikeshare/internal/ctxlog"
	"github.com/vk/bikeshare/internal/trip"
)

const noTripsNotice = "No trips match the selected filters."

var rule = strings.Repeat("-", 40)

// Report gathers every summary produced for one session iteration.
type Report struct {
	City      string           `json:"city"`
	Month     string           `json:"month"`
	Day       string           `json:"day"`
	Trips     int              `json:"trips"`
	Time      *TimeSummary     `json:"time,omitempty"`
	Stations  *StationSummary  `json:"stations,omitempty"`
	Durations *DurationSummary `json:"durations,omitempty"`
	Users     *UserSummary     `json:"users,omitempty"`
}

// Reporter prints summaries to a writer, each followed by the time it took
// to compute.
type Reporter struct {
	out io.Writer
	now func() time.Time
}

// NewReporter returns a Reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out, now: time.Now}
}

// All runs the four reporters in order: time, stations, durations, users.
// demographics tells whether the city publishes gender and birth year.
func (r *Reporter) All(ctx context.Context, sel trip.Selection, demographics bool, t *trip.Table) (*Report, error) {
	report := &Report{City: sel.City, Month: sel.Month, Day: sel.Day, Trips: t.Len()}

	if s, ok := r.Time(ctx, t); ok {
		report.Time = &s
	}
	if s, ok := r.Stations(ctx, t); ok {
		report.Stations = &s
	}
	if s, ok := r.Durations(ctx, t); ok {
		report.Durations = &s
	}
	users, err := r.Users(ctx, sel.City, demographics, t)
	if err != nil {
		return nil, err
	}
	report.Users = &users
	return report, nil
}

// Time prints the most frequent times of travel.
func (r *Reporter) Time(ctx context.Context, t *trip.Table) (TimeSummary, bool) {
	start := r.begin("Calculating The Most Frequent Times of Travel...")
	s, ok := TimeStats(t)
	if ok {
		fmt.Fprintln(r.out, "Most Popular Month:", s.Month)
		fmt.Fprintln(r.out, "Most Popular Day:", s.Day)
		fmt.Fprintln(r.out, "Most Popular Start Hour:", s.Hour)
	} else {
		fmt.Fprintln(r.out, noTripsNotice)
	}
	r.end(ctx, "time", start)
	return s, ok
}

// Stations prints the most popular stations and trip.
func (r *Reporter) Stations(ctx context.Context, t *trip.Table) (StationSummary, bool) {
	start := r.begin("Calculating The Most Popular Stations and Trip...")
	s, ok := StationStats(t)
	if ok {
		fmt.Fprintln(r.out, "Most Popular Start station:", s.Start)
		fmt.Fprintln(r.out, "Most Popular End station:", s.End)
		fmt.Fprintln(r.out, "Most Popular Trip is from", s.Trip)
	} else {
		fmt.Fprintln(r.out, noTripsNotice)
	}
	r.end(ctx, "stations", start)
	return s, ok
}

// Durations prints total and mean trip duration.
func (r *Reporter) Durations(ctx context.Context, t *trip.Table) (DurationSummary, bool) {
	start := r.begin("Calculating Trip Duration...")
	s, ok := DurationStats(t)
	if ok {
		fmt.Fprintf(r.out, "Total travel time is %d minutes\n", s.TotalMinutes)
		fmt.Fprintf(r.out, "Mean travel time is %.2f minutes\n", s.MeanMinutes)
	} else {
		fmt.Fprintln(r.out, noTripsNotice)
	}
	r.end(ctx, "durations", start)
	return s, ok
}

// Users prints user type counts and, for cities that publish them, gender
// counts and birth year statistics.
func (r *Reporter) Users(ctx context.Context, city string, demographics bool, t *trip.Table) (UserSummary, error) {
	start := r.begin("Calculating User Stats...")
	s, err := UserStats(t, demographics)
	if err != nil {
		return s, fmt.Errorf("user stats for %s: %w", city, err)
	}

	if t.Len() == 0 {
		fmt.Fprintln(r.out, noTripsNotice)
		r.end(ctx, "users", start)
		return s, nil
	}

	r.printCounts(trip.ColUserType, s.UserTypes)
	if !demographics {
		fmt.Fprintf(r.out, "There is no gender or birth year data for %s\n", city)
	} else {
		r.printCounts(trip.ColGender, s.Genders)
		if s.HasBirthYears {
			fmt.Fprintln(r.out, "Most Recent Birth Year is", s.LatestBirthYear)
			fmt.Fprintln(r.out, "Earliest Birth Year is", s.EarliestBirthYear)
			fmt.Fprintln(r.out, "Most Common Birth Year is", s.CommonBirthYear)
		} else {
			fmt.Fprintln(r.out, "No birth year data for the selected trips.")
		}
	}
	r.end(ctx, "users", start)
	return s, nil
}

func (r *Reporter) printCounts(column string, counts []Count[string]) {
	fmt.Fprintf(r.out, "%s counts:\n", column)
	tw := tabwriter.NewWriter(r.out, 0, 0, 4, ' ', 0)
	for _, c := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Value, c.N)
	}
	tw.Flush()
}

func (r *Reporter) begin(title string) time.Time {
	fmt.Fprintf(r.out, "\n%s\n\n", title)
	return r.now()
}

func (r *Reporter) end(ctx context.Context, name string, start time.Time) {
	elapsed := r.now().Sub(start)
	fmt.Fprintf(r.out, "\nThis took %v seconds.\n", elapsed.Seconds())
	fmt.Fprintln(r.out, rule)
	ctxlog.FromContext(ctx).Debug("Report printed.", "report", name, "elapsed", elapsed)
}
