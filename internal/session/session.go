// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session implements interactive editing of a draft. A session
// keeps its own version history over the draft's content, accepts direct
// edits and AI-assisted edits, and either applies the result back to the
// draft or discards it.
//
// Direct edits accumulate in a buffer and become an undo step only once the
// buffer differs in length from the last committed version by more than the
// commit threshold, so small keystrokes do not flood the history. AI edits
// always become an undo step. A failed AI edit leaves the content and the
// history exactly as they were.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pdiddy/lexdraft/internal/chat"
	"github.com/pdiddy/lexdraft/internal/draft"
	"github.com/pdiddy/lexdraft/pkg/types"
)

var (
	ErrNotEditing       = errors.New("no editing session in progress")
	ErrAlreadyEditing   = errors.New("editing session already in progress")
	ErrEditInFlight     = errors.New("an AI edit is still in progress")
	ErrEmptyInstruction = errors.New("instruction is empty")
)

// DefaultCommitThreshold is the size change, in runes, that turns a direct
// edit into an undo step.
const DefaultCommitThreshold = 40

// Editor revises a document on request. generate.Orchestrator implements it.
type Editor interface {
	Edit(ctx context.Context, req types.EditRequest) (string, error)
}

// State is the lifecycle state of a session.
type State int

const (
	StateIdle State = iota
	StateEditing
)

func (s State) String() string {
	if s == StateEditing {
		return "editing"
	}
	return "idle"
}

// Mode selects how edits are made while editing.
type Mode int

const (
	ModeDirect Mode = iota
	ModeAI
)

func (m Mode) String() string {
	if m == ModeAI {
		return "ai"
	}
	return "direct"
}

// Options configure a session.
type Options struct {
	// CommitThreshold defaults to DefaultCommitThreshold when zero or less.
	CommitThreshold int
}

// Session edits one draft. Methods are safe for concurrent use; AIEdit does
// not hold the lock while the editor call is outstanding, and content changes
// are refused until it returns.
type Session struct {
	mu     sync.Mutex
	d      *draft.Draft
	editor Editor
	opts   Options
	logger *slog.Logger

	state      State
	mode       Mode
	history    *draft.History
	buffer     string
	dirty      bool
	transcript *chat.Transcript
	inFlight   bool
}

// New creates an idle session over d.
func New(d *draft.Draft, editor Editor, opts Options, logger *slog.Logger) *Session {
	if opts.CommitThreshold <= 0 {
		opts.CommitThreshold = DefaultCommitThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{d: d, editor: editor, opts: opts, logger: logger}
}

// Begin starts editing: the history holds the draft content as its only
// version and the AI transcript holds a greeting. No service call is made.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateEditing {
		return ErrAlreadyEditing
	}
	s.state = StateEditing
	s.mode = ModeDirect
	s.history = draft.NewHistory(s.d.Content)
	s.buffer = s.d.Content
	s.dirty = false
	s.transcript = chat.New(nil)
	s.transcript.Assistant(messagesFor(s.d.Language).intro)
	s.logger.Info("editing started", "document_type", s.d.DocumentType, "chars", utf8.RuneCountInString(s.d.Content))
	return nil
}

// SetMode switches between direct and AI-assisted editing. The content is
// kept as is.
func (s *Session) SetMode(m Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing {
		return ErrNotEditing
	}
	s.mode = m
	return nil
}

// Type replaces the edit buffer with text. The buffer is committed as a new
// version once its length differs from the current version by more than the
// commit threshold. Direct edits are refused while an AI edit is outstanding,
// since its result replaces the content it was computed from.
func (s *Session) Type(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing {
		return ErrNotEditing
	}
	if s.inFlight {
		return ErrEditInFlight
	}
	s.buffer = text
	s.dirty = text != s.history.Current()
	if s.dirty && s.sizeDelta() > s.opts.CommitThreshold {
		s.commit()
	}
	return nil
}

// Flush commits a pending direct edit regardless of its size and reports
// whether there was one.
func (s *Session) Flush() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing {
		return false, ErrNotEditing
	}
	if s.inFlight {
		return false, ErrEditInFlight
	}
	if !s.dirty {
		return false, nil
	}
	s.commit()
	return true, nil
}

// Undo steps back one version. A pending direct edit is committed first so
// it stays reachable with Redo. Reports false at the oldest version, when
// not editing, or while an AI edit is outstanding.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing || s.inFlight {
		return false
	}
	if s.dirty {
		s.commit()
	}
	content, ok := s.history.Undo()
	s.buffer = content
	return ok
}

// Redo steps forward one version. A pending direct edit is committed first,
// which discards the versions after the cursor. Reports false at the newest
// version, when not editing, or while an AI edit is outstanding.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing || s.inFlight {
		return false
	}
	if s.dirty {
		s.commit()
	}
	content, ok := s.history.Redo()
	s.buffer = content
	return ok
}

// AIEdit asks the editor to apply instruction to the current content. On
// success the result becomes a new version (after any pending direct edit)
// and an acknowledgement is added to the transcript. On failure only an
// apology is added; content and history are untouched.
func (s *Session) AIEdit(ctx context.Context, instruction string) (string, error) {
	instruction = strings.TrimSpace(instruction)

	s.mu.Lock()
	switch {
	case s.state != StateEditing:
		s.mu.Unlock()
		return "", ErrNotEditing
	case instruction == "":
		s.mu.Unlock()
		return "", ErrEmptyInstruction
	case s.inFlight:
		s.mu.Unlock()
		return "", ErrEditInFlight
	}
	s.inFlight = true
	req := types.EditRequest{
		Content:      s.content(),
		Instruction:  instruction,
		DocumentType: s.d.DocumentType,
		Language:     s.d.Language,
	}
	s.transcript.User(instruction)
	msgs := messagesFor(s.d.Language)
	s.mu.Unlock()

	result, err := s.editor.Edit(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		s.transcript.Assistant(msgs.apology)
		s.logger.Warn("ai edit failed", "error", err)
		return "", err
	}
	if s.dirty {
		s.commit()
	}
	s.history.Push(result)
	s.buffer = result
	s.transcript.Assistant(msgs.ack)
	s.logger.Info("ai edit applied", "version", s.history.Index(), "chars", utf8.RuneCountInString(result))
	return result, nil
}

// Apply writes the current content into the draft, resets the draft's
// history to that content, and ends the session.
func (s *Session) Apply() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.canEnd(); err != nil {
		return err
	}
	content := s.content()
	s.d.Replace(content)
	s.logger.Info("edits applied", "document_type", s.d.DocumentType, "versions", s.history.Len())
	s.reset()
	return nil
}

// Cancel discards the session's history and transcript. The draft is left
// as it was before Begin.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.canEnd(); err != nil {
		return err
	}
	s.logger.Info("edits discarded", "document_type", s.d.DocumentType, "versions", s.history.Len())
	s.reset()
	return nil
}

func (s *Session) canEnd() error {
	if s.state != StateEditing {
		return ErrNotEditing
	}
	if s.inFlight {
		return ErrEditInFlight
	}
	return nil
}

func (s *Session) reset() {
	s.state = StateIdle
	s.mode = ModeDirect
	s.history = nil
	s.buffer = ""
	s.dirty = false
	s.transcript = nil
}

func (s *Session) commit() {
	s.history.Push(s.buffer)
	s.dirty = false
}

func (s *Session) sizeDelta() int {
	d := utf8.RuneCountInString(s.buffer) - utf8.RuneCountInString(s.history.Current())
	if d < 0 {
		return -d
	}
	return d
}

// content returns the buffer while editing, otherwise the draft content.
func (s *Session) content() string {
	if s.state != StateEditing {
		return s.d.Content
	}
	return s.buffer
}

// Content returns the text being edited, including any uncommitted direct
// edit. When idle it is the draft content.
func (s *Session) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Index returns the history cursor, or -1 when idle.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history == nil {
		return -1
	}
	return s.history.Index()
}

// Len returns the number of committed versions, or 0 when idle.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history == nil {
		return 0
	}
	return s.history.Len()
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history != nil && (s.dirty || s.history.CanUndo())
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history != nil && !s.dirty && s.history.CanRedo()
}

// Dirty reports whether a direct edit is waiting to be committed.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// InFlight reports whether an AI edit is outstanding.
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Transcript returns a copy of the AI-edit conversation, or nil when idle.
func (s *Session) Transcript() []types.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transcript == nil {
		return nil
	}
	return s.transcript.Messages()
}
