// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package trip

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vk/bikeshare/internal/ctxlog"
)

// Column names as published in the trip exports.
const (
	ColStartTime    = "Start Time"
	ColEndTime      = "End Time"
	ColStartStation = "Start Station"
	ColEndStation   = "End Station"
	ColUserType     = "User Type"
	ColGender       = "Gender"
	ColBirthYear    = "Birth Year"
)

var requiredColumns = []string{ColStartTime, ColEndTime, ColStartStation, ColEndStation, ColUserType}

// Load reads the trips stored at source and narrows them by the month and day
// of sel.
func Load(ctx context.Context, source string, sel Selection) (*Table, error) {
	logger := ctxlog.FromContext(ctx).With("source", source)
	logger.Debug("Opening trip source.")

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open trip source: %w", err)
	}
	defer f.Close()

	start := time.Now()
	table, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	logger.Debug("Trip source parsed.", "rows", table.Len(), "duration", time.Since(start))

	filtered, err := Apply(table, sel)
	if err != nil {
		return nil, err
	}
	logger.Info("Trips loaded.", "rows", table.Len(), "matching", filtered.Len(), "month", sel.Month, "day", sel.Day)
	return filtered, nil
}

// Read parses a CSV trip export. Columns are located by header name; extra
// columns are kept in Trip.Fields but otherwise ignored.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("source is empty")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	genderIdx, hasGender := index[ColGender]
	birthIdx, hasBirthYear := index[ColBirthYear]

	table := &Table{
		Header:       header,
		HasGender:    hasGender,
		HasBirthYear: hasBirthYear,
	}

	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		tr := Trip{
			Row:          row,
			Fields:       record,
			StartStation: record[index[ColStartStation]],
			EndStation:   record[index[ColEndStation]],
			UserType:     record[index[ColUserType]],
		}

		if tr.StartTime, err = time.Parse(TimeLayout, record[index[ColStartTime]]); err != nil {
			return nil, fmt.Errorf("row %d: invalid %s: %w", row, ColStartTime, err)
		}
		if tr.EndTime, err = time.Parse(TimeLayout, record[index[ColEndTime]]); err != nil {
			return nil, fmt.Errorf("row %d: invalid %s: %w", row, ColEndTime, err)
		}
		tr.Month = int(tr.StartTime.Month())
		tr.DayOfWeek = tr.StartTime.Weekday().String()

		if hasGender {
			tr.Gender = record[genderIdx]
		}
		if hasBirthYear {
			year, ok, err := parseBirthYear(record[birthIdx])
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid %s: %w", row, ColBirthYear, err)
			}
			tr.BirthYear, tr.HasBirthYear = year, ok
		}

		table.Trips = append(table.Trips, tr)
	}

	return table, nil
}

// parseBirthYear accepts integer or float renderings ("1989", "1989.0").
// A blank cell reports ok=false.
func parseBirthYear(s string) (year int, ok bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsNaN(f) {
		return 0, false, nil
	}
	return int(f), true, nil
}
