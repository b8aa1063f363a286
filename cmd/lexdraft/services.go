// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lexdraft/internal/archive"
	"github.com/pdiddy/lexdraft/internal/generate"
	"github.com/pdiddy/lexdraft/internal/template"
	"github.com/pdiddy/lexdraft/pkg/types"
)

// loadRequest reads a generation request from a YAML (or JSON) file. A
// non-empty lang overrides the file's language.
func loadRequest(path, lang string) (types.GenerationRequest, error) {
	var req types.GenerationRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("reading request: %w", err)
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("parsing request %s: %w", path, err)
	}
	if lang != "" {
		l, err := types.ParseLanguage(lang)
		if err != nil {
			return req, err
		}
		req.Language = l
	}
	return req, nil
}

func openTemplates() (*template.Store, error) {
	return template.OpenStore(cfg.Templates.Dir)
}

func newOrchestrator(store *template.Store) (*generate.Orchestrator, error) {
	key, err := apiKey()
	if err != nil {
		return nil, err
	}
	backend := &generate.ClaudeBackend{
		APIKey:    key,
		Model:     cfg.AI.Model,
		MaxTokens: cfg.AI.MaxTokens,
		Endpoint:  cfg.AI.Endpoint,
		Client:    &http.Client{},
	}
	return generate.New(backend, store, logger), nil
}

// callContext bounds one generation or edit call by the configured timeout.
func callContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.AI.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.AI.Timeout)
}

func openArchive() (*archive.Store, error) {
	return archive.Open(cfg.Archive.Path)
}
