// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lexdraft/internal/archive"
	"github.com/pdiddy/lexdraft/internal/draft"
	"github.com/pdiddy/lexdraft/internal/export"
	"github.com/pdiddy/lexdraft/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export <draft.yaml>",
	Short: "Assemble a draft into a page description for the PDF renderer",
	Long: `Export assembles a saved draft into a document description: reference
number, localized labels, text direction, party, signature, and witness
blocks, and the content split into pages. The description is written to the
export directory, where the PDF renderer picks it up.

With --final the draft watermark is omitted and the document is stored in
the local archive under its reference number.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	final, _ := cmd.Flags().GetBool("final")
	noArchive, _ := cmd.Flags().GetBool("no-archive")
	format, _ := cmd.Flags().GetString("format")
	outDir, _ := cmd.Flags().GetString("out-dir")
	if format == "" {
		format = string(cfg.Export.Format)
	}
	if outDir == "" {
		outDir = cfg.Export.OutputDir
	}

	d, req, err := draft.Load(args[0])
	if err != nil {
		return err
	}
	doc, err := export.Assemble(d, req, export.Options{
		LinesPerPage: cfg.Export.LinesPerPage,
		CharsPerLine: cfg.Export.CharsPerLine,
		Final:        final,
	})
	if err != nil {
		return err
	}

	r := export.FileRenderer{Dir: outDir, Format: types.ExportFormat(format)}
	if err := r.Render(cmd.Context(), doc); err != nil {
		return err
	}
	logger.Info("export written", "reference", doc.Reference, "pages", len(doc.Pages), "path", r.PathFor(doc))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d pages) to %s\n", doc.Reference, len(doc.Pages), r.PathFor(doc))

	if !final || noArchive {
		return nil
	}
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Save(cmd.Context(), archive.Record{
		Reference:    doc.Reference,
		DocumentType: d.DocumentType,
		Language:     d.Language,
		Title:        d.Title,
		Content:      d.Content,
		Request:      req,
		CreatedAt:    doc.GeneratedAt,
	}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Archived %s\n", doc.Reference)
	return nil
}

func init() {
	exportCmd.Flags().Bool("final", false, "omit the draft watermark and archive the document")
	exportCmd.Flags().Bool("no-archive", false, "do not archive a final document")
	exportCmd.Flags().String("format", "", "description format: json or yaml (default from config)")
	exportCmd.Flags().String("out-dir", "", "export directory (default from config)")

	rootCmd.AddCommand(exportCmd)
}
