// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package publish forwards finished reports to an external listener. The
// only transport is socket.io; when no URL is configured the Nop publisher
// is used and reports stay on the terminal.
package publish

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/vk/bikeshare/internal/ctxlog"
	"github.com/vk/bikeshare/internal/stats"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// ReportEvent is the socket.io event name reports are emitted under.
const ReportEvent = "bikeshare:report"

const (
	connectTimeout    = 15 * time.Second
	defaultAckTimeout = 10 * time.Second
)

// Publisher delivers reports.
type Publisher interface {
	Publish(ctx context.Context, r *stats.Report) error
	Close() error
}

// Nop discards every report.
type Nop struct{}

// Publish drops r.
func (Nop) Publish(context.Context, *stats.Report) error { return nil }

// Close is a no-op.
func (Nop) Close() error { return nil }

// Options configures a socket.io publisher.
type Options struct {
	URL string
	// Namespace defaults to "/".
	Namespace          string
	InsecureSkipVerify bool
	// AckTimeout bounds the wait for the server to acknowledge a report.
	// Zero means 10s.
	AckTimeout time.Duration
}

// SocketIO emits each report as a ReportEvent on a connected socket and
// waits for the server to acknowledge it.
type SocketIO struct {
	client     *socket.Socket
	ackTimeout time.Duration

	// mu guards the emit flags of client, which Timeout mutates.
	mu      sync.Mutex
	pending sync.WaitGroup
}

// Dial connects to the socket.io server described by opts and waits for the
// connection to be acknowledged.
func Dial(ctx context.Context, opts Options) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("publisher", "socketio", "url", opts.URL)
	logger.Debug("Connecting report publisher...")

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse publish URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("publish URL %q must include a scheme and host", opts.URL)
	}

	if opts.Namespace == "" {
		opts.Namespace = "/"
	}
	if opts.AckTimeout <= 0 {
		opts.AckTimeout = defaultAckTimeout
	}

	ioOpts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		ioOpts.SetPath(parsedURL.Path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		ioOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	ioOpts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, ioOpts)
	io := manager.Socket(opts.Namespace, ioOpts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Report publisher connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) == 0 {
			connectChan <- fmt.Errorf("connect_error without details")
			return
		}
		err, ok := errs[0].(error)
		if !ok {
			err = fmt.Errorf("%v", errs[0])
		}
		connectChan <- err
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &SocketIO{client: io, ackTimeout: opts.AckTimeout}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection")
	case <-time.After(connectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", connectTimeout)
	}
}

// Publish emits r as a ReportEvent and blocks until the server acknowledges
// it, the ack timeout elapses or ctx is done.
func (s *SocketIO) Publish(ctx context.Context, r *stats.Report) error {
	logger := ctxlog.FromContext(ctx)
	if !s.client.Connected() {
		return fmt.Errorf("report publisher is not connected")
	}

	payload, err := Payload(r)
	if err != nil {
		return err
	}
	logger.Debug("Emitting report", "event", ReportEvent, "sid", s.client.Id(), "city", r.City)

	acked := make(chan error, 1)
	s.pending.Add(1)
	s.mu.Lock()
	err = s.client.Timeout(s.ackTimeout).Emit(ReportEvent, payload, func(_ []any, err error) {
		defer s.pending.Done()
		acked <- err
	})
	s.mu.Unlock()
	if err != nil {
		s.pending.Done()
		return fmt.Errorf("failed to emit report: %w", err)
	}

	select {
	case err := <-acked:
		if err != nil {
			return fmt.Errorf("report for %s was not acknowledged: %w", r.City, err)
		}
		logger.Debug("Report acknowledged", "city", r.City)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while waiting for report acknowledgement: %w", ctx.Err())
	}
}

// Close waits for outstanding reports to be acknowledged or to time out,
// then disconnects the socket.
func (s *SocketIO) Close() error {
	s.pending.Wait()
	s.client.Disconnect()
	return nil
}

// Payload renders r as the generic JSON object that is put on the wire.
func Payload(r *stats.Report) (map[string]any, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode report payload: %w", err)
	}
	return payload, nil
}
