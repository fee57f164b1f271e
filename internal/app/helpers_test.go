package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/bikeshare/internal/stats"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// recordingPublisher keeps every report it is given.
type recordingPublisher struct {
	reports []*stats.Report
	err     error
	closed  bool
}

func (p *recordingPublisher) Publish(_ context.Context, r *stats.Report) error {
	p.reports = append(p.reports, r)
	return p.err
}

func (p *recordingPublisher) Close() error {
	p.closed = true
	return nil
}

var errPublish = errors.New("listener unavailable")

const testChicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1,2017-01-01 08:00:00,2017-01-01 08:30:00,1800,Canal St,Clark St,Subscriber,Male,1992.0
2,2017-01-02 09:00:00,2017-01-02 09:10:00,600,Canal St,Clark St,Subscriber,Female,1985.0
3,2017-01-09 09:00:00,2017-01-09 09:20:00,1200,Canal St,State St,Customer,,
4,2017-02-06 17:00:00,2017-02-06 17:10:00,600,Clark St,Canal St,Subscriber,Male,1992.0
5,2017-03-13 12:00:00,2017-03-13 12:05:00,300,State St,Canal St,Subscriber,Male,1976.0
6,2017-03-14 12:00:00,2017-03-14 12:05:00,300,State St,Canal St,Subscriber,Male,1976.0
7,2017-03-15 12:00:00,2017-03-15 12:05:00,300,State St,Canal St,Subscriber,Male,1976.0
`

const testWashingtonCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type
1,2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber
2,2017-06-22 09:00:00,2017-06-22 09:30:00,1800,15th & K St NW,14th & Belmont St NW,Customer
`

// writeTestData creates a data directory holding the chicago and washington
// sources. new york city is deliberately left out.
func writeTestData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chicago.csv"), []byte(testChicagoCSV), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "washington.csv"), []byte(testWashingtonCSV), 0o600))
	return dir
}

// SetupAppTest creates an App answering the given lines, with debug logs
// captured in a SafeBuffer.
func SetupAppTest(t *testing.T, cfg Config, lines []string, opts ...Option) (*App, *bytes.Buffer, *SafeBuffer) {
	t.Helper()

	if cfg.DataDir == "" {
		cfg.DataDir = writeTestData(t)
	}
	cfg.LogLevel = "debug"
	config, err := NewConfig(cfg)
	require.NoError(t, err)

	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	out := &bytes.Buffer{}
	logs := &SafeBuffer{}

	testApp, err := NewApp(context.Background(), in, out, logs, config, opts...)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("BIKESHARE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return testApp, out, logs
}
