// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lexdraft/internal/draft"
	"github.com/pdiddy/lexdraft/internal/session"
)

var editCmd = &cobra.Command{
	Use:   "edit <draft.yaml>",
	Short: "Edit a draft interactively with undo, redo, and AI assistance",
	Long: `Edit opens an editing session on a saved draft. In direct mode each
line you type is appended to the document; in AI mode each line is an
instruction for the AI service. Commands:

  :mode ai|direct   switch editing mode
  :ai <text>        run an AI edit regardless of mode
  :quick [name]     list quick actions, or run one
  :type <file>      replace the content with the contents of file
  :undo, :redo      step through versions
  :show             print the current content
  :log              print the assistant conversation
  :apply            keep the changes, save the draft, and exit
  :cancel           discard the changes and exit`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	path := args[0]
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = path
	}

	d, req, err := draft.Load(path)
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

	s := session.New(d, orch, session.Options{CommitThreshold: cfg.Editing.CommitThreshold}, logger)
	applied, err := repl(s, cmd.InOrStdin(), cmd.OutOrStdout(), func() (context.Context, context.CancelFunc) {
		return callContext(cmd)
	})
	if err != nil {
		return err
	}
	if !applied {
		fmt.Fprintln(cmd.OutOrStdout(), "Changes discarded.")
		return nil
	}
	if err := draft.Save(out, d, req); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", out)
	return nil
}

// repl drives s from line input until :apply, :cancel, or end of input.
// End of input cancels. It reports whether the edits were applied.
func repl(s *session.Session, in io.Reader, w io.Writer, callCtx func() (context.Context, context.CancelFunc)) (bool, error) {
	if err := s.Begin(); err != nil {
		return false, err
	}
	printLastMessage(s, w)

	aiEdit := func(instruction string) {
		ctx, cancel := callCtx()
		defer cancel()
		if _, err := s.AIEdit(ctx, instruction); err != nil {
			fmt.Fprintln(w, "error:", err)
		}
		printLastMessage(s, w)
		printStatus(s, w)
	}

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprintf(w, "[%s] > ", s.Mode())
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return false, err
			}
			return false, s.Cancel()
		}
		line := sc.Text()
		cmdName, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)

		switch cmdName {
		case ":apply":
			if err := s.Apply(); err != nil {
				fmt.Fprintln(w, "error:", err)
				continue
			}
			return true, nil
		case ":cancel":
			if err := s.Cancel(); err != nil {
				fmt.Fprintln(w, "error:", err)
				continue
			}
			return false, nil
		case ":mode":
			var mode session.Mode
			switch arg {
			case "ai":
				mode = session.ModeAI
			case "direct":
				mode = session.ModeDirect
			default:
				fmt.Fprintf(w, "error: unknown mode %q: use ai or direct\n", arg)
				continue
			}
			if err := s.SetMode(mode); err != nil {
				fmt.Fprintln(w, "error:", err)
			}
		case ":ai":
			aiEdit(arg)
		case ":quick":
			if arg == "" {
				for _, a := range session.QuickActions() {
					fmt.Fprintf(w, "  %-16s %s\n", a.Name, a.Label)
				}
				continue
			}
			instruction, ok := session.QuickActionInstruction(arg)
			if !ok {
				fmt.Fprintf(w, "error: unknown quick action %q\n", arg)
				continue
			}
			aiEdit(instruction)
		case ":type":
			data, err := os.ReadFile(arg)
			if err != nil {
				fmt.Fprintln(w, "error:", err)
				continue
			}
			if err := s.Type(string(data)); err != nil {
				fmt.Fprintln(w, "error:", err)
				continue
			}
			if _, err := s.Flush(); err != nil {
				fmt.Fprintln(w, "error:", err)
				continue
			}
			printStatus(s, w)
		case ":undo":
			if !s.Undo() {
				fmt.Fprintln(w, "Nothing to undo.")
			}
			printStatus(s, w)
		case ":redo":
			if !s.Redo() {
				fmt.Fprintln(w, "Nothing to redo.")
			}
			printStatus(s, w)
		case ":show":
			fmt.Fprintln(w, s.Content())
		case ":log":
			for _, m := range s.Transcript() {
				fmt.Fprintf(w, "%s: %s\n", m.Role, m.Content)
			}
		case "":
			continue
		default:
			if strings.HasPrefix(cmdName, ":") {
				fmt.Fprintf(w, "error: unknown command %s\n", cmdName)
				continue
			}
			if s.Mode() == session.ModeAI {
				aiEdit(line)
				continue
			}
			content := strings.TrimRight(s.Content(), "\n")
			if err := s.Type(content + "\n\n" + line); err != nil {
				fmt.Fprintln(w, "error:", err)
			}
		}
	}
}

func printStatus(s *session.Session, w io.Writer) {
	fmt.Fprintf(w, "version %d of %d", s.Index()+1, s.Len())
	if s.Dirty() {
		fmt.Fprint(w, " (unsaved edits)")
	}
	fmt.Fprintln(w)
}

func printLastMessage(s *session.Session, w io.Writer) {
	msgs := s.Transcript()
	if len(msgs) > 0 {
		fmt.Fprintln(w, msgs[len(msgs)-1].Content)
	}
}

func init() {
	editCmd.Flags().String("out", "", "file to save the edited draft to (default: overwrite the input)")

	rootCmd.AddCommand(editCmd)
}
