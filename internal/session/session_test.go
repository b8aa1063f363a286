// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lexdraft/internal/draft"
	"github.com/pdiddy/lexdraft/pkg/types"
)

// --- mock editor ---

type mockEditor struct {
	replies []string
	err     error
	reqs    []types.EditRequest
}

func (m *mockEditor) Edit(_ context.Context, req types.EditRequest) (string, error) {
	m.reqs = append(m.reqs, req)
	if m.err != nil {
		return "", m.err
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

// blockingEditor holds each call until release is closed.
type blockingEditor struct {
	started chan struct{}
	release chan struct{}
	reply   string
}

func (b *blockingEditor) Edit(ctx context.Context, _ types.EditRequest) (string, error) {
	close(b.started)
	select {
	case <-b.release:
		return b.reply, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func newSession(t *testing.T, content string, editor Editor, threshold int) (*Session, *draft.Draft) {
	t.Helper()
	d := draft.New(types.DocNDA, types.LangEnglish, "Non-Disclosure Agreement", content)
	s := New(d, editor, Options{CommitThreshold: threshold}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, s.Begin())
	return s, d
}

func TestBegin(t *testing.T) {
	s, _ := newSession(t, "v0", nil, 0)

	assert.Equal(t, StateEditing, s.State())
	assert.Equal(t, ModeDirect, s.Mode())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, "v0", s.Content())

	tr := s.Transcript()
	require.Len(t, tr, 1)
	assert.Equal(t, types.RoleAssistant, tr[0].Role)

	assert.ErrorIs(t, s.Begin(), ErrAlreadyEditing)
}

func TestIdleSessionRejectsEdits(t *testing.T) {
	d := draft.New(types.DocNDA, types.LangEnglish, "NDA", "v0")
	s := New(d, &mockEditor{}, Options{}, nil)

	assert.ErrorIs(t, s.Type("x"), ErrNotEditing)
	assert.ErrorIs(t, s.SetMode(ModeAI), ErrNotEditing)
	assert.ErrorIs(t, s.Apply(), ErrNotEditing)
	assert.ErrorIs(t, s.Cancel(), ErrNotEditing)
	_, err := s.AIEdit(context.Background(), "formal")
	assert.ErrorIs(t, err, ErrNotEditing)
	assert.False(t, s.Undo())
	assert.False(t, s.Redo())
	assert.Equal(t, "v0", s.Content())
	assert.Equal(t, -1, s.Index())
	assert.Nil(t, s.Transcript())
}

func TestTypeCommitThreshold(t *testing.T) {
	s, _ := newSession(t, "base", nil, 10)

	require.NoError(t, s.Type("base+small"))
	assert.Equal(t, 1, s.Len(), "six runes added is under the threshold")
	assert.True(t, s.Dirty())
	assert.Equal(t, "base+small", s.Content())

	require.NoError(t, s.Type("base+a much larger change"))
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Dirty())

	// Arabic text counts runes, not bytes: 6 runes is 12 bytes.
	require.NoError(t, s.Type("base+a much larger change"+"أبجدهو"))
	assert.Equal(t, 2, s.Len())

	committed, err := s.Flush()
	require.NoError(t, err)
	assert.True(t, committed)
	assert.Equal(t, 3, s.Len())

	committed, err = s.Flush()
	require.NoError(t, err)
	assert.False(t, committed)
}

func TestTypeBackToCommittedIsClean(t *testing.T) {
	s, _ := newSession(t, "v0", nil, 40)
	require.NoError(t, s.Type("v0 edited"))
	require.NoError(t, s.Type("v0"))
	assert.False(t, s.Dirty())
}

func TestUndoRedoWalk(t *testing.T) {
	editor := &mockEditor{replies: []string{"v1", "v2"}}
	s, _ := newSession(t, "v0", editor, 40)
	require.NoError(t, s.SetMode(ModeAI))

	_, err := s.AIEdit(context.Background(), "first change")
	require.NoError(t, err)
	_, err = s.AIEdit(context.Background(), "second change")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Index())
	assert.Equal(t, "v2", s.Content())

	assert.True(t, s.Undo())
	assert.Equal(t, "v1", s.Content())
	assert.True(t, s.Undo())
	assert.Equal(t, "v0", s.Content())
	assert.False(t, s.Undo(), "undo at index 0 is a no-op")
	assert.Equal(t, "v0", s.Content())
	assert.True(t, s.Redo())
	assert.Equal(t, "v1", s.Content())
}

func TestUndoCommitsPendingEdit(t *testing.T) {
	s, _ := newSession(t, "contract", nil, 40)
	require.NoError(t, s.Type("contract."))
	assert.True(t, s.CanUndo())

	assert.True(t, s.Undo())
	assert.Equal(t, "contract", s.Content())

	assert.True(t, s.Redo())
	assert.Equal(t, "contract.", s.Content(), "typed text survives the undo")
}

func TestTypingAfterUndoTruncatesRedo(t *testing.T) {
	editor := &mockEditor{replies: []string{"v1", "v2"}}
	s, _ := newSession(t, "v0", editor, 0)
	_, _ = s.AIEdit(context.Background(), "one")
	_, _ = s.AIEdit(context.Background(), "two")
	s.Undo()
	s.Undo()

	require.NoError(t, s.Type("v0 with a long manual rewrite that exceeds the default threshold"))
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.CanRedo())
	assert.False(t, s.Redo())
}

func TestAIEditSendsBuffer(t *testing.T) {
	editor := &mockEditor{replies: []string{"rewritten"}}
	s, _ := newSession(t, "v0", editor, 40)
	require.NoError(t, s.Type("v0 typed"))

	got, err := s.AIEdit(context.Background(), "  make it formal  ")
	require.NoError(t, err)
	assert.Equal(t, "rewritten", got)

	require.Len(t, editor.reqs, 1)
	assert.Equal(t, "v0 typed", editor.reqs[0].Content)
	assert.Equal(t, "make it formal", editor.reqs[0].Instruction)
	assert.Equal(t, types.DocNDA, editor.reqs[0].DocumentType)

	assert.Equal(t, 3, s.Len(), "pending edit committed before the AI result")
	assert.True(t, s.Undo())
	assert.Equal(t, "v0 typed", s.Content())

	tr := s.Transcript()
	require.Len(t, tr, 3)
	assert.Equal(t, types.RoleUser, tr[1].Role)
	assert.Equal(t, "make it formal", tr[1].Content)
	assert.Equal(t, types.RoleAssistant, tr[2].Role)
}

func TestAIEditFailureLeavesContent(t *testing.T) {
	editor := &mockEditor{replies: []string{"v1"}}
	s, _ := newSession(t, "v0", editor, 40)
	_, err := s.AIEdit(context.Background(), "first")
	require.NoError(t, err)
	require.NoError(t, s.Type("v1 plus typing"))

	content, index, length := s.Content(), s.Index(), s.Len()
	transcriptLen := len(s.Transcript())

	editor.err = errors.New("service unavailable")
	_, err = s.AIEdit(context.Background(), "second")
	require.Error(t, err)

	assert.Equal(t, content, s.Content())
	assert.Equal(t, index, s.Index())
	assert.Equal(t, length, s.Len())
	assert.True(t, s.Dirty(), "pending edit is still pending")

	tr := s.Transcript()
	require.Len(t, tr, transcriptLen+2)
	assert.Equal(t, messages[types.LangEnglish].apology, tr[len(tr)-1].Content)
	assert.False(t, s.InFlight())
}

func TestAIEditEmptyInstruction(t *testing.T) {
	editor := &mockEditor{}
	s, _ := newSession(t, "v0", editor, 40)

	_, err := s.AIEdit(context.Background(), " \n\t")
	assert.ErrorIs(t, err, ErrEmptyInstruction)
	assert.Empty(t, editor.reqs)
	assert.Len(t, s.Transcript(), 1)
}

func TestAIEditInFlight(t *testing.T) {
	editor := &blockingEditor{
		started: make(chan struct{}),
		release: make(chan struct{}),
		reply:   "ai result",
	}
	s, d := newSession(t, "v0", editor, 40)

	done := make(chan error, 1)
	go func() {
		_, err := s.AIEdit(context.Background(), "rewrite")
		done <- err
	}()
	<-editor.started

	assert.True(t, s.InFlight())
	_, err := s.AIEdit(context.Background(), "another")
	assert.ErrorIs(t, err, ErrEditInFlight)
	assert.ErrorIs(t, s.Apply(), ErrEditInFlight)
	assert.ErrorIs(t, s.Cancel(), ErrEditInFlight)

	typed := "v0 plus a long paragraph typed while the assistant was still working"
	assert.ErrorIs(t, s.Type(typed), ErrEditInFlight)
	_, err = s.Flush()
	assert.ErrorIs(t, err, ErrEditInFlight)
	assert.False(t, s.Undo())
	assert.False(t, s.Redo())
	assert.Equal(t, "v0", s.Content(), "buffer unchanged while the edit is outstanding")

	close(editor.release)
	require.NoError(t, <-done)

	assert.Equal(t, "ai result", s.Content())
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Dirty())
	assert.True(t, s.Undo())
	assert.Equal(t, "v0", s.Content())
	assert.Equal(t, "v0", d.Content, "draft untouched until Apply")

	require.NoError(t, s.Type(typed), "direct edits resume once the edit returns")
	assert.Equal(t, typed, s.Content())
}

func TestApply(t *testing.T) {
	editor := &mockEditor{replies: []string{"final text"}}
	s, d := newSession(t, "v0", editor, 40)
	_, err := s.AIEdit(context.Background(), "finish it")
	require.NoError(t, err)

	require.NoError(t, s.Apply())

	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, "final text", d.Content)
	assert.Equal(t, []string{"final text"}, d.History.Entries())
	assert.Nil(t, s.Transcript())
	assert.Equal(t, 0, s.Len())
}

func TestApplyIncludesPendingEdit(t *testing.T) {
	s, d := newSession(t, "v0", nil, 40)
	require.NoError(t, s.Type("v0!"))
	require.NoError(t, s.Apply())
	assert.Equal(t, "v0!", d.Content)
}

func TestCancel(t *testing.T) {
	editor := &mockEditor{replies: []string{"changed"}}
	s, d := newSession(t, "v0", editor, 40)
	_, err := s.AIEdit(context.Background(), "change")
	require.NoError(t, err)

	require.NoError(t, s.Cancel())

	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, "v0", d.Content)
	assert.Equal(t, []string{"v0"}, d.History.Entries())

	require.NoError(t, s.Begin(), "a new session can start after cancel")
	assert.Equal(t, 1, s.Len())
	assert.Len(t, s.Transcript(), 1, "transcript starts fresh")
}

func TestSetModeKeepsBuffer(t *testing.T) {
	s, _ := newSession(t, "v0", nil, 40)
	require.NoError(t, s.Type("v0 typed"))
	require.NoError(t, s.SetMode(ModeAI))
	assert.Equal(t, ModeAI, s.Mode())
	assert.Equal(t, "v0 typed", s.Content())
	require.NoError(t, s.SetMode(ModeDirect))
	assert.Equal(t, "v0 typed", s.Content())
}

func TestArabicMessages(t *testing.T) {
	d := draft.New(types.DocRental, types.LangArabic, "عقد", "نص")
	s := New(d, nil, Options{}, nil)
	require.NoError(t, s.Begin())
	assert.Equal(t, messages[types.LangArabic].intro, s.Transcript()[0].Content)
}

func TestQuickActions(t *testing.T) {
	actions := QuickActions()
	require.NotEmpty(t, actions)

	for _, a := range actions {
		instr, ok := QuickActionInstruction(a.Name)
		assert.True(t, ok, a.Name)
		assert.Equal(t, a.Instruction, instr)
		assert.NotEmpty(t, strings.TrimSpace(a.Label))
	}

	_, ok := QuickActionInstruction("nonexistent")
	assert.False(t, ok)

	actions[0].Instruction = "mutated"
	assert.NotEqual(t, "mutated", QuickActions()[0].Instruction)
}

func TestQuickActionRunsThroughAIEdit(t *testing.T) {
	editor := &mockEditor{replies: []string{"formal text"}}
	s, _ := newSession(t, "casual text", editor, 40)

	instr, ok := QuickActionInstruction("formal")
	require.True(t, ok)
	_, err := s.AIEdit(context.Background(), instr)
	require.NoError(t, err)
	assert.Equal(t, instr, editor.reqs[0].Instruction)
}
