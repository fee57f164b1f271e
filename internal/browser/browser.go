// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package browser pages through the raw rows of a trip table on request.
package browser

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/vk/bikeshare/internal/ctxlog"
	"github.com/vk/bikeshare/internal/trip"
)

// PageSize is the number of rows shown per answer.
const PageSize = 5

const (
	firstQuestion = "Do you want to see 5 rows of raw data? Enter 'yes' or 'no': "
	moreQuestion  = "Do you want to see 5 more rows of raw data? Enter 'yes' or 'no': "
)

// Asker asks a yes/no question, re-asking on invalid answers.
type Asker interface {
	YesNo(ctx context.Context, question string) (bool, error)
}

type state int

const (
	awaitingAnswer state = iota
	done
)

// Browser shows successive windows of a table.
type Browser struct {
	asker  Asker
	out    io.Writer
	table  *trip.Table
	offset int
	state  state
}

// New returns a Browser positioned at the first row of t.
func New(asker Asker, out io.Writer, t *trip.Table) *Browser {
	return &Browser{asker: asker, out: out, table: t}
}

// Run asks whether to show the next window until the user answers "no".
// Windows past the end of the table are short or empty.
func (b *Browser) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	for b.state == awaitingAnswer {
		question := firstQuestion
		if b.offset > 0 {
			question = moreQuestion
		}

		show, err := b.asker.YesNo(ctx, question)
		if err != nil {
			return err
		}
		if !show {
			b.state = done
			break
		}

		rows := b.table.Window(b.offset, PageSize)
		logger.Debug("Showing raw rows.", "offset", b.offset, "rows", len(rows))
		b.print(rows)
		b.offset += PageSize
	}
	return nil
}

func (b *Browser) print(rows []trip.Trip) {
	if len(rows) == 0 {
		fmt.Fprintln(b.out, "No more rows to display.")
		return
	}

	tw := tabwriter.NewWriter(b.out, 0, 0, 2, ' ', 0)
	header := append([]string{""}, b.table.Header...)
	header = append(header, "month", "day_of_week")
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, tr := range rows {
		cols := append([]string{strconv.Itoa(tr.Row)}, tr.Fields...)
		cols = append(cols, strconv.Itoa(tr.Month), tr.DayOfWeek)
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	}
	tw.Flush()
}
