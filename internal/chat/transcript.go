// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chat keeps an ordered, append-only conversation transcript.
package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/lexdraft/pkg/types"
)

// Transcript is an append-only list of chat turns. The zero value is ready
// to use. A Transcript is not safe for concurrent use.
type Transcript struct {
	messages []types.ChatMessage
	now      func() time.Time
}

// New returns an empty transcript stamped with the given clock. A nil clock
// uses time.Now.
func New(now func() time.Time) *Transcript {
	return &Transcript{now: now}
}

// FromMessages rebuilds a transcript from saved turns, preserving order.
// Turns without an ID are given one.
func FromMessages(msgs []types.ChatMessage) *Transcript {
	t := &Transcript{}
	for _, m := range msgs {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		t.messages = append(t.messages, m)
	}
	return t
}

// Append adds a turn and returns it with its ID and timestamp filled in.
func (t *Transcript) Append(role types.ChatRole, content string) types.ChatMessage {
	now := time.Now
	if t.now != nil {
		now = t.now
	}
	m := types.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: now().UTC(),
	}
	t.messages = append(t.messages, m)
	return m
}

// User appends a user turn.
func (t *Transcript) User(content string) types.ChatMessage {
	return t.Append(types.RoleUser, content)
}

// Assistant appends an assistant turn.
func (t *Transcript) Assistant(content string) types.ChatMessage {
	return t.Append(types.RoleAssistant, content)
}

// Messages returns a copy of the turns in order.
func (t *Transcript) Messages() []types.ChatMessage {
	return append([]types.ChatMessage(nil), t.messages...)
}

// Len returns the number of turns.
func (t *Transcript) Len() int { return len(t.messages) }

// Last returns the most recent turn.
func (t *Transcript) Last() (types.ChatMessage, bool) {
	if len(t.messages) == 0 {
		return types.ChatMessage{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// truncate drops turns beyond n. Only used to roll back a turn whose reply
// never arrived.
func (t *Transcript) truncate(n int) {
	if n < len(t.messages) {
		t.messages = t.messages[:n]
	}
}

// Rollback removes the most recent turn if it has the given ID, reporting
// whether it did.
func (t *Transcript) Rollback(id string) bool {
	last, ok := t.Last()
	if !ok || last.ID != id {
		return false
	}
	t.truncate(len(t.messages) - 1)
	return true
}
