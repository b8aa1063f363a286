// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package draft

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lexdraft/pkg/types"
)

func TestHistoryUndoRedoWalk(t *testing.T) {
	h := NewHistory("v0")
	h.Push("v1")
	h.Push("v2")

	got, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "v1", got)

	got, ok = h.Undo()
	require.True(t, ok)
	assert.Equal(t, "v0", got)

	got, ok = h.Undo()
	assert.False(t, ok, "undo at the oldest entry is a no-op")
	assert.Equal(t, "v0", got)
	assert.Equal(t, 0, h.Index())

	got, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, "v1", got)

	got, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, "v2", got)

	_, ok = h.Redo()
	assert.False(t, ok, "redo at the newest entry is a no-op")
	assert.Equal(t, 2, h.Index())
}

func TestHistoryInverseLaw(t *testing.T) {
	entries := []string{"a", "b", "c", "d"}

	for pos := range entries {
		h := NewHistory(entries[0])
		for _, e := range entries[1:] {
			h.Push(e)
		}
		for h.Index() > pos {
			h.Undo()
		}
		before := h.Current()

		if h.CanUndo() {
			h.Undo()
			h.Redo()
			assert.Equal(t, before, h.Current(), "undo then redo at %d", pos)
			assert.Equal(t, pos, h.Index())
		}
		if h.CanRedo() {
			h.Redo()
			h.Undo()
			assert.Equal(t, before, h.Current(), "redo then undo at %d", pos)
			assert.Equal(t, pos, h.Index())
		}
	}
}

func TestHistoryPushTruncates(t *testing.T) {
	h := NewHistory("v0")
	h.Push("v1")
	h.Push("v2")
	h.Undo()
	h.Undo()

	h.Push("v1'")

	assert.Equal(t, []string{"v0", "v1'"}, h.Entries())
	assert.Equal(t, 1, h.Index())
	assert.False(t, h.CanRedo())
	assert.Equal(t, "v1'", h.Current())
}

func TestHistoryEntriesIsCopy(t *testing.T) {
	h := NewHistory("v0")
	entries := h.Entries()
	entries[0] = "mutated"
	assert.Equal(t, "v0", h.Current())
}

func TestDraftReplace(t *testing.T) {
	d := New(types.DocNDA, types.LangEnglish, "NDA", "first")
	d.History.Push("second")

	d.Replace("final")

	assert.Equal(t, "final", d.Content)
	assert.Equal(t, []string{"final"}, d.History.Entries())
	assert.Equal(t, 0, d.History.Index())
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "draft.yaml")

	d := New(types.DocRental, types.LangArabic, "عقد إيجار سكني", "نص العقد")
	req := types.GenerationRequest{
		DocumentType: types.DocRental,
		Language:     types.LangArabic,
		Jurisdiction: types.Jurisdiction{Country: "AE", SubJurisdiction: "Dubai"},
		Parties: [2]types.Party{
			{Name: "أحمد", IDNumber: "784-1"},
			{Name: "سارة", IDNumber: "784-2"},
		},
	}
	require.NoError(t, Save(path, d, req))

	got, gotReq, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, d.Content, got.Content)
	assert.Equal(t, d.Title, got.Title)
	assert.Equal(t, types.LangArabic, got.Language)
	assert.Equal(t, 1, got.History.Len())
	assert.Equal(t, "AE", gotReq.Jurisdiction.Country)
	assert.Equal(t, "سارة", gotReq.Parties[1].Name)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("title: x\n"), 0o644))
	_, _, err = Load(empty)
	assert.ErrorContains(t, err, "no content")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(":::bad\n"), 0o644))
	_, _, err = Load(bad)
	assert.ErrorContains(t, err, "parsing draft")
}
