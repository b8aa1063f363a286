// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lexdraft/internal/generate"
	"github.com/pdiddy/lexdraft/internal/template"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a template against a request without calling the AI service",
	Long: `Render fills the template for the request's document type with the
party, jurisdiction, and detail fields of the request and prints the result.
Unbound placeholders render empty and are reported on stderr; fields named
with --require (and the template's own required fields) fail the render.`,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	reqPath, _ := cmd.Flags().GetString("request")
	lang, _ := cmd.Flags().GetString("lang")
	required, _ := cmd.Flags().GetStringSlice("require")

	req, err := loadRequest(reqPath, lang)
	if err != nil {
		return err
	}
	store, err := openTemplates()
	if err != nil {
		return err
	}
	b, err := generate.BindingsFor(req, req.Language)
	if err != nil {
		return err
	}
	res, err := store.Render(req.DocumentType, req.Language, b, template.Require(required...))
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	return nil
}

func init() {
	renderCmd.Flags().String("request", "request.yaml", "generation request file (YAML or JSON)")
	renderCmd.Flags().String("lang", "", "override the request language: en, ar, or bilingual")
	renderCmd.Flags().StringSlice("require", nil, "placeholders that must be bound")

	rootCmd.AddCommand(renderCmd)
}
