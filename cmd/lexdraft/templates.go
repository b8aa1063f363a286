// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lexdraft/pkg/types"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List and inspect document templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available document types",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openTemplates()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-22s  %-10s  %s\n", "Type", "Languages", "Title")
		fmt.Fprintln(w, strings.Repeat("-", 70))
		for _, dt := range store.Types() {
			t, err := store.Get(dt)
			if err != nil {
				return err
			}
			var langs []string
			for _, l := range t.Languages() {
				langs = append(langs, string(l))
			}
			fmt.Fprintf(w, "%-22s  %-10s  %s\n", dt, strings.Join(langs, ","), t.Title(types.LangEnglish))
		}
		return nil
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <document-type>",
	Short: "Print the raw body of a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		langFlag, _ := cmd.Flags().GetString("lang")
		lang, err := types.ParseLanguage(langFlag)
		if err != nil {
			return err
		}
		store, err := openTemplates()
		if err != nil {
			return err
		}
		t, err := store.Get(types.DocumentType(args[0]))
		if err != nil {
			return err
		}
		body, ok := t.Body(lang)
		if !ok {
			return fmt.Errorf("%s has no %s variant", args[0], lang)
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "# %s\n", t.Title(lang))
		if len(t.Required) > 0 {
			fmt.Fprintf(w, "# required: %s\n", strings.Join(t.Required, ", "))
		}
		fmt.Fprintln(w, body)
		return nil
	},
}

func init() {
	templatesShowCmd.Flags().String("lang", "en", "template language: en or ar")

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesShowCmd)
	rootCmd.AddCommand(templatesCmd)
}
