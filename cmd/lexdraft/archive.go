// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lexdraft/internal/archive"
	"github.com/pdiddy/lexdraft/pkg/types"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Browse and search finalized documents",
	Long: `Archive reads the local SQLite store that export --final writes to.
Search uses full-text matching over titles, party names, and content.`,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived documents, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		docType, _ := cmd.Flags().GetString("type")
		country, _ := cmd.Flags().GetString("country")
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		recs, err := store.List(cmd.Context(), archive.ListOptions{
			DocumentType: types.DocumentType(docType),
			Country:      country,
			Limit:        limit,
		})
		if err != nil {
			return err
		}
		return printRecords(cmd, recs)
	},
}

var archiveSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over archived documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		recs, err := store.Search(cmd.Context(), strings.Join(args, " "), limit)
		if err != nil {
			return err
		}
		return printRecords(cmd, recs)
	},
}

var archiveShowCmd = &cobra.Command{
	Use:   "show <reference>",
	Short: "Print an archived document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		rec, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return writeJSON(cmd.OutOrStdout(), rec)
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s  %s\n", rec.Reference, rec.Title)
		fmt.Fprintf(w, "%s / %s / %s  %s\n", rec.DocumentType, rec.Language, rec.Country, rec.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Fprintf(w, "Parties: %s, %s\n\n", rec.PartyA, rec.PartyB)
		fmt.Fprintln(w, rec.Content)
		return nil
	},
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete <reference>",
	Short: "Remove a document from the archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

func printRecords(cmd *cobra.Command, recs []archive.Record) error {
	w := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(w, recs)
	}
	if len(recs) == 0 {
		fmt.Fprintln(w, "No documents found.")
		return nil
	}

	fmt.Fprintf(w, "%-32s  %-20s  %-9s  %-30s  %s\n", "Reference", "Type", "Language", "Title", "Created")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, r := range recs {
		fmt.Fprintf(w, "%-32s  %-20s  %-9s  %-30s  %s\n",
			r.Reference, r.DocumentType, r.Language, clip(r.Title, 30), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(w, "\n%d documents\n", len(recs))
	return nil
}

// clip shortens s to n runes.
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	archiveCmd.PersistentFlags().Bool("json", false, "output as JSON")
	archiveCmd.PersistentFlags().Int("limit", 20, "maximum number of results")
	archiveListCmd.Flags().String("type", "", "filter by document type")
	archiveListCmd.Flags().String("country", "", "filter by country code")

	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveSearchCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveDeleteCmd)
	rootCmd.AddCommand(archiveCmd)
}
