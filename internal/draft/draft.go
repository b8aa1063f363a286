// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package draft holds the working copy of a generated legal document and its
// linear version history, and persists drafts as YAML files between CLI
// invocations.
package draft

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lexdraft/pkg/types"
)

// Draft is the current working document.
type Draft struct {
	Content      string
	DocumentType types.DocumentType
	Language     types.Language
	Title        string
	History      *History
}

// New creates a draft whose history holds content as its only version.
func New(docType types.DocumentType, lang types.Language, title, content string) *Draft {
	return &Draft{
		Content:      content,
		DocumentType: docType,
		Language:     lang,
		Title:        title,
		History:      NewHistory(content),
	}
}

// Replace sets the content and resets the history to that single version.
func (d *Draft) Replace(content string) {
	d.Content = content
	if d.History == nil {
		d.History = NewHistory(content)
		return
	}
	d.History.Reset(content)
}

// file is the on-disk shape of a saved draft. The originating request is
// kept so later stages (export, regeneration) see the same parties and
// jurisdiction.
type file struct {
	DocumentType types.DocumentType      `yaml:"document_type"`
	Language     types.Language          `yaml:"language"`
	Title        string                  `yaml:"title"`
	Request      types.GenerationRequest `yaml:"request"`
	Content      string                  `yaml:"content"`
}

// Save writes d and the request that produced it to path, creating parent
// directories as needed.
func Save(path string, d *Draft, req types.GenerationRequest) error {
	data, err := yaml.Marshal(file{
		DocumentType: d.DocumentType,
		Language:     d.Language,
		Title:        d.Title,
		Request:      req,
		Content:      d.Content,
	})
	if err != nil {
		return fmt.Errorf("marshaling draft: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating draft directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing draft: %w", err)
	}
	return nil
}

// Load reads a draft saved by Save. The returned draft starts a fresh
// history at the saved content.
func Load(path string) (*Draft, types.GenerationRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.GenerationRequest{}, fmt.Errorf("reading draft: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, types.GenerationRequest{}, fmt.Errorf("parsing draft: %w", err)
	}
	if f.Content == "" {
		return nil, types.GenerationRequest{}, fmt.Errorf("draft %s has no content", path)
	}
	return New(f.DocumentType, f.Language, f.Title, f.Content), f.Request, nil
}
