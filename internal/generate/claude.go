// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/pdiddy/lexdraft/internal/httputil"
)

// claudeAPIURL is the Claude API endpoint. Package-level var for test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

const (
	anthropicVersion = "2023-06-01"
	defaultMaxTokens = 8192
)

// ClaudeBackend sends completions to the Claude Messages API. Each call is a
// single request; failures are classified into ServiceError kinds and never
// retried.
type ClaudeBackend struct {
	APIKey    string
	Model     string
	MaxTokens int
	// Endpoint overrides claudeAPIURL when set.
	Endpoint string
	Client   *http.Client
}

type claudeRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
}

type claudeResponse struct {
	Content    []claudeContent `json:"content"`
	StopReason string          `json:"stop_reason"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Complete implements Backend.
func (c *ClaudeBackend) Complete(ctx context.Context, comp Completion) (string, error) {
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	url := claudeAPIURL
	if c.Endpoint != "" {
		url = c.Endpoint
	}

	var resp claudeResponse
	err := httputil.PostJSON(ctx, c.Client, url, map[string]string{
		"x-api-key":         c.APIKey,
		"anthropic-version": anthropicVersion,
	}, claudeRequest{
		Model:     c.Model,
		MaxTokens: maxTokens,
		System:    comp.System,
		Messages:  comp.Messages,
	}, &resp)
	if err != nil {
		return "", classify(err)
	}

	if resp.StopReason == "max_tokens" {
		return "", malformed("response truncated at %d tokens", maxTokens)
	}
	var parts []string
	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return "", malformed("no text content in Claude API response")
	}
	return strings.Join(parts, ""), nil
}

func classify(err error) error {
	var se *httputil.StatusError
	switch {
	case errors.As(err, &se):
		return &ServiceError{Kind: KindStatus, StatusCode: se.Code, Err: err}
	case errors.Is(err, httputil.ErrTransport):
		return &ServiceError{Kind: KindNetwork, Err: err}
	case errors.Is(err, httputil.ErrDecode):
		return &ServiceError{Kind: KindMalformed, Err: err}
	}
	return &ServiceError{Kind: KindNetwork, Err: err}
}
