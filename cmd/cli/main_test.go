package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_FullSession(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dataDir := t.TempDir()
	csv := ",Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year\n" +
		"0,2017-01-01 00:00:00,2017-01-01 00:30:00,1800,Canal St,Clark St,Subscriber,Male,1990.0\n"
	err := os.WriteFile(filepath.Join(dataDir, "chicago.csv"), []byte(csv), 0600)
	require.NoError(t, err, "failed to set up test file")

	in := strings.NewReader("chicago\nall\nall\nno\nno\n")
	out := &bytes.Buffer{}
	errW := &bytes.Buffer{}

	// --- Act ---
	runErr := run(in, out, errW, []string{"-data-dir", dataDir})

	// --- Assert ---
	require.NoError(t, runErr)
	require.Contains(t, out.String(), "Total travel time is 30 minutes")
	require.Contains(t, out.String(), "Mean travel time is 30.00 minutes")
	require.Contains(t, out.String(), "Most Common Birth Year is 1990")
}

func TestRun_MissingSource(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	in := strings.NewReader("washington\nall\nall\n")
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(in, out, &bytes.Buffer{}, []string{"-data-dir", t.TempDir()})

	// --- Assert ---
	require.Error(t, err, "run() should fail when the city source is missing")
	require.Contains(t, err.Error(), "failed to load trips for washington")
}

func TestRun_BadCatalog(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	catalogPath := filepath.Join(t.TempDir(), "cities.hcl")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`city "x" {`), 0600))

	// --- Act ---
	err := run(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, []string{"-cities", catalogPath})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "application startup failed")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(strings.NewReader(""), out, &bytes.Buffer{}, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"--this-is-not-a-valid-flag"}

	// --- Act ---
	err := run(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
