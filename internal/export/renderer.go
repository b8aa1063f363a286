// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lexdraft/pkg/types"
)

// Renderer hands a document description to the PDF rendering collaborator.
type Renderer interface {
	Render(ctx context.Context, doc *Document) error
}

// FileRenderer writes each description to Dir as <reference>.json or
// <reference>.yaml, where the PDF service picks it up.
type FileRenderer struct {
	Dir    string
	Format types.ExportFormat
}

// PathFor returns the file a document is written to.
func (r FileRenderer) PathFor(doc *Document) string {
	ext := ".json"
	if r.Format == types.ExportYAML {
		ext = ".yaml"
	}
	return filepath.Join(r.Dir, doc.Reference+ext)
}

// Render implements Renderer.
func (r FileRenderer) Render(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch r.Format {
	case types.ExportYAML:
		data, err = yaml.Marshal(doc)
	case types.ExportJSON, "":
		data, err = json.MarshalIndent(doc, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unsupported export format %q", r.Format)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", doc.Reference, err)
	}

	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	if err := os.WriteFile(r.PathFor(doc), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", doc.Reference, err)
	}
	return nil
}
