// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lexdraft/internal/draft"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft a document from a request with the AI service",
	Long: `Generate validates the request, sends one drafting call to the AI
service, and writes the draft (content plus request) to a YAML file that the
edit and export commands read. Failed calls are reported, never retried.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	reqPath, _ := cmd.Flags().GetString("request")
	lang, _ := cmd.Flags().GetString("lang")
	out, _ := cmd.Flags().GetString("out")

	req, err := loadRequest(reqPath, lang)
	if err != nil {
		return err
	}
	store, err := openTemplates()
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(store)
	if err != nil {
		return err
	}

	ctx, cancel := callContext(cmd)
	defer cancel()
	start := time.Now()
	d, err := orch.Generate(ctx, req)
	if err != nil {
		return err
	}

	if out == "" {
		out = filepath.Join("drafts", fmt.Sprintf("%s-%s.yaml", req.DocumentType, time.Now().Format("20060102-150405")))
	}
	if err := draft.Save(out, d, req); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Drafted %q (%s, %d chars) in %s\n", d.Title, d.Language, len([]rune(d.Content)), time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", out)
	return nil
}

func init() {
	generateCmd.Flags().String("request", "request.yaml", "generation request file (YAML or JSON)")
	generateCmd.Flags().String("lang", "", "override the request language: en, ar, or bilingual")
	generateCmd.Flags().String("out", "", "draft file to write (default drafts/<type>-<time>.yaml)")

	rootCmd.AddCommand(generateCmd)
}
