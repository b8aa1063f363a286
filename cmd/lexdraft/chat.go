// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lexdraft/internal/draft"
	"github.com/pdiddy/lexdraft/internal/generate"
	"github.com/pdiddy/lexdraft/pkg/types"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Describe a custom document in conversation, then draft it",
	Long: `Chat starts a drafting conversation for a document that has no template.
Each line you type is sent with the whole conversation so far; the assistant
asks clarifying questions. Type /draft to generate the document from the
conversation, or /quit to leave without drafting.`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	req, err := chatRequest(cmd)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")

	store, err := openTemplates()
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(store)
	if err != nil {
		return err
	}
	conv := generate.NewConversation(req)

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Describe the document you need. /draft to generate, /quit to leave.")
	sc := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(w, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "/quit":
			return nil
		case "/draft":
			d, err := draftConversation(cmd, orch, conv)
			if err != nil {
				fmt.Fprintln(w, "error:", err)
				continue
			}
			if out == "" {
				out = filepath.Join("drafts", fmt.Sprintf("custom-%s.yaml", time.Now().Format("20060102-150405")))
			}
			if err := draft.Save(out, d, conv.Request()); err != nil {
				return err
			}
			fmt.Fprintf(w, "Drafted %q, saved %s\n", d.Title, out)
			return nil
		}

		ctx, cancel := callContext(cmd)
		reply, err := orch.Converse(ctx, conv, line)
		cancel()
		if err != nil {
			fmt.Fprintln(w, "error:", err)
			continue
		}
		fmt.Fprintln(w, reply.Content)
	}
}

func draftConversation(cmd *cobra.Command, orch *generate.Orchestrator, conv *generate.Conversation) (*draft.Draft, error) {
	ctx, cancel := callContext(cmd)
	defer cancel()
	return orch.Generate(ctx, conv.Request())
}

// chatRequest builds the base request from --request or the inline flags.
func chatRequest(cmd *cobra.Command) (types.GenerationRequest, error) {
	reqPath, _ := cmd.Flags().GetString("request")
	lang, _ := cmd.Flags().GetString("lang")
	if reqPath != "" {
		return loadRequest(reqPath, lang)
	}

	if lang == "" {
		lang = string(types.LangEnglish)
	}
	l, err := types.ParseLanguage(lang)
	if err != nil {
		return types.GenerationRequest{}, err
	}
	country, _ := cmd.Flags().GetString("country")
	sub, _ := cmd.Flags().GetString("sub-jurisdiction")
	title, _ := cmd.Flags().GetString("title")
	desc, _ := cmd.Flags().GetString("description")
	return types.GenerationRequest{
		DocumentType:      types.DocCustom,
		Language:          l,
		Jurisdiction:      types.Jurisdiction{Country: country, SubJurisdiction: sub},
		CustomTitle:       title,
		CustomDescription: desc,
	}, nil
}

func init() {
	chatCmd.Flags().String("request", "", "base request file; overrides the inline flags")
	chatCmd.Flags().String("lang", "", "document language: en, ar, or bilingual")
	chatCmd.Flags().String("country", "AE", "jurisdiction country code")
	chatCmd.Flags().String("sub-jurisdiction", "", "emirate, region, or free zone")
	chatCmd.Flags().String("title", "", "working title of the document")
	chatCmd.Flags().String("description", "", "short description of the document")
	chatCmd.Flags().String("out", "", "draft file to write (default drafts/custom-<time>.yaml)")

	rootCmd.AddCommand(chatCmd)
}
