// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package draft

// History is an append-only list of document versions with a cursor. The
// cursor always points at a valid entry. Pushing while the cursor is behind
// the newest entry discards everything after the cursor first.
type History struct {
	entries []string
	cursor  int
}

// NewHistory starts a history at initial.
func NewHistory(initial string) *History {
	return &History{entries: []string{initial}}
}

// Push truncates the entries after the cursor, appends content, and moves
// the cursor to it.
func (h *History) Push(content string) {
	h.entries = append(h.entries[:h.cursor+1], content)
	h.cursor = len(h.entries) - 1
}

// Undo moves the cursor back one entry and returns it. At the oldest entry
// it does nothing and reports false.
func (h *History) Undo() (string, bool) {
	if !h.CanUndo() {
		return h.Current(), false
	}
	h.cursor--
	return h.Current(), true
}

// Redo moves the cursor forward one entry and returns it. At the newest
// entry it does nothing and reports false.
func (h *History) Redo() (string, bool) {
	if !h.CanRedo() {
		return h.Current(), false
	}
	h.cursor++
	return h.Current(), true
}

func (h *History) CanUndo() bool { return h.cursor > 0 }
func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Current returns the entry at the cursor.
func (h *History) Current() string { return h.entries[h.cursor] }

// Index returns the cursor position.
func (h *History) Index() int { return h.cursor }

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Reset discards every entry and starts over at content.
func (h *History) Reset(content string) {
	h.entries = []string{content}
	h.cursor = 0
}
