// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package prompt implements the interactive question/answer loops of the
// explorer. Answers are validated against fixed allow-lists by the pure
// Validate function; the Prompter only handles the reading, echoing and
// re-asking.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/vk/bikeshare/internal/ctxlog"
	"github.com/vk/bikeshare/internal/trip"
)

// ErrInputClosed is returned when the input stream ends before an answer
// could be read.
var ErrInputClosed = errors.New("input closed")

const (
	yes = "yes"
	no  = "no"
)

// Validate lower-cases value and reports whether the result is one of
// allowed. Surrounding whitespace is significant.
func Validate(value string, allowed []string) (string, bool) {
	v := strings.ToLower(value)
	return v, slices.Contains(allowed, v)
}

// Prompter asks questions on out and reads answers from in, one per line.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Line prints question and returns the next line of input without its line
// terminator.
func (p *Prompter) Line(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		if line == "" {
			return "", ErrInputClosed
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// Choose asks question until the answer is one of allowed and returns the
// lower-cased answer. Every attempt is echoed back using noun to name the
// kind of value requested. There is no limit on the number of attempts.
func (p *Prompter) Choose(ctx context.Context, question, noun string, allowed []string) (string, error) {
	logger := ctxlog.FromContext(ctx)
	for {
		line, err := p.Line(ctx, question)
		if err != nil {
			return "", err
		}
		value, ok := Validate(line, allowed)
		if ok {
			fmt.Fprintf(p.out, "Your chosen %s is %s!\n", noun, value)
			return value, nil
		}
		fmt.Fprintf(p.out, "%s is not a valid %s\n", value, noun)
		logger.Debug("Rejected answer.", "kind", noun, "answer", line)
	}
}

// YesNo asks question until the answer is "yes" or "no".
func (p *Prompter) YesNo(ctx context.Context, question string) (bool, error) {
	allowed := []string{yes, no}
	for {
		line, err := p.Line(ctx, question)
		if err != nil {
			return false, err
		}
		value, ok := Validate(line, allowed)
		if !ok {
			fmt.Fprintf(p.out, "%s is not a valid value\n", value)
			continue
		}
		fmt.Fprintf(p.out, "You selected %s!\n", value)
		return value == yes, nil
	}
}

// Filters asks for a city out of cities, a month and a day, in that order.
func (p *Prompter) Filters(ctx context.Context, cities []string) (trip.Selection, error) {
	var sel trip.Selection
	var err error

	if sel.City, err = p.Choose(ctx, cityQuestion(cities), "city", cities); err != nil {
		return sel, err
	}

	months := append([]string{trip.All}, trip.Months...)
	if sel.Month, err = p.Choose(ctx, "Please enter the month of interest from january to june or 'all': ", "month", months); err != nil {
		return sel, err
	}

	days := append([]string{trip.All}, trip.Days...)
	if sel.Day, err = p.Choose(ctx, "Please enter the day of the week of interest (eg. 'monday') or 'all': ", "day", days); err != nil {
		return sel, err
	}

	ctxlog.FromContext(ctx).Debug("Filters selected.", "city", sel.City, "month", sel.Month, "day", sel.Day)
	return sel, nil
}

// cityQuestion renders "Please enter 'a', 'b' or 'c': ".
func cityQuestion(cities []string) string {
	quoted := make([]string, len(cities))
	for i, c := range cities {
		quoted[i] = "'" + c + "'"
	}
	list := quoted[len(quoted)-1]
	if len(quoted) > 1 {
		list = strings.Join(quoted[:len(quoted)-1], ", ") + " or " + list
	}
	return "Please enter " + list + ": "
}
