// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the JSON-over-HTTP call used by service
// backends and classifies its failures.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

var (
	// ErrTransport wraps failures before a response was received.
	ErrTransport = errors.New("transport failure")

	// ErrStatus is wrapped by StatusError.
	ErrStatus = errors.New("unexpected HTTP status")

	// ErrDecode wraps a 2xx response whose body could not be decoded.
	ErrDecode = errors.New("undecodable response")
)

// MaxExcerpt bounds how much of an error body is kept.
const MaxExcerpt = 512

// StatusError reports a non-2xx response.
type StatusError struct {
	Code    int
	Excerpt string
}

func (e *StatusError) Error() string {
	if e.Excerpt == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Excerpt)
}

func (e *StatusError) Unwrap() error { return ErrStatus }

// Temporary reports whether the same request may succeed later (rate
// limiting, overload, server errors). Callers decide whether to tell the
// user; nothing here retries.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// Check returns nil for a 2xx response and a *StatusError otherwise. The
// body is read (up to MaxExcerpt bytes) but not closed.
func Check(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxExcerpt*4))
	return &StatusError{Code: resp.StatusCode, Excerpt: Excerpt(string(body), MaxExcerpt)}
}

// Excerpt shortens s to at most n bytes on a rune boundary, collapsing
// whitespace runs.
func Excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}

// PostJSON marshals in, POSTs it to url with the given headers, and decodes
// a 2xx body into out. Errors wrap ErrTransport, ErrStatus, or ErrDecode.
func PostJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if err := Check(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
