// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate drafts and revises legal documents through an external
// generative-text service. It validates requests, builds prompts from
// party, jurisdiction, and template data, makes exactly one service call per
// operation, and normalizes the reply into plain document text.
package generate

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/pdiddy/lexdraft/internal/chat"
	"github.com/pdiddy/lexdraft/internal/draft"
	"github.com/pdiddy/lexdraft/internal/template"
	"github.com/pdiddy/lexdraft/pkg/types"
)

// Backend abstracts the generative-text service so tests can supply a mock.
// Errors should be *ServiceError; anything else is treated as KindNetwork.
type Backend interface {
	Complete(ctx context.Context, comp Completion) (string, error)
}

// Orchestrator turns generation and edit requests into service calls.
type Orchestrator struct {
	backend Backend
	store   *template.Store
	logger  *slog.Logger
}

// New creates an orchestrator. store may be nil, in which case no template
// skeleton is offered to the service.
func New(backend Backend, store *template.Store, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{backend: backend, store: store, logger: logger}
}

// Generate validates req, sends one generation call, and returns a draft
// whose history holds the generated content as its only version. Nothing
// is retried.
func (o *Orchestrator) Generate(ctx context.Context, req types.GenerationRequest) (*draft.Draft, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	title := o.Title(req)
	skeleton := o.skeleton(req)
	comp, err := BuildPrompt(req, title, skeleton)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	o.logger.Info("generation requested",
		"document_type", req.DocumentType,
		"language", req.Language,
		"country", req.Jurisdiction.Country,
		"skeleton", skeleton != "",
		"turns", len(req.ChatHistory),
	)

	content, err := o.call(ctx, comp)
	if err != nil {
		o.logger.Warn("generation failed", "document_type", req.DocumentType, "error", err)
		return nil, err
	}

	o.logger.Info("generation complete",
		"document_type", req.DocumentType,
		"chars", len(content),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return draft.New(req.DocumentType, req.Language, title, content), nil
}

// Edit sends the full current content with the instruction and returns the
// complete revised document.
func (o *Orchestrator) Edit(ctx context.Context, req types.EditRequest) (string, error) {
	if err := validateEdit(req); err != nil {
		return "", err
	}
	comp, err := buildEditPrompt(req)
	if err != nil {
		return "", err
	}

	o.logger.Info("edit requested", "document_type", req.DocumentType, "instruction_chars", len(req.Instruction))
	content, err := o.call(ctx, comp)
	if err != nil {
		o.logger.Warn("edit failed", "error", err)
		return "", err
	}
	return content, nil
}

// Title returns the document title for req: the custom title, the template
// title, or the document type itself.
func (o *Orchestrator) Title(req types.GenerationRequest) string {
	if req.DocumentType.IsCustom() && req.CustomTitle != "" {
		return req.CustomTitle
	}
	if o.store != nil {
		if t, err := o.store.Get(req.DocumentType); err == nil {
			if title := t.Title(req.Language); title != "" {
				return title
			}
		}
	}
	return strings.ReplaceAll(string(req.DocumentType), "_", " ")
}

// skeleton renders the template for req if one exists. Rendering problems
// drop the skeleton rather than fail the generation.
func (o *Orchestrator) skeleton(req types.GenerationRequest) string {
	if o.store == nil || req.DocumentType.IsCustom() {
		return ""
	}
	b, err := BindingsFor(req, req.Language)
	if err != nil {
		return ""
	}
	res, err := o.store.Render(req.DocumentType, req.Language, b)
	if err != nil {
		if !errors.Is(err, template.ErrTemplateNotFound) {
			o.logger.Warn("template skeleton skipped", "document_type", req.DocumentType, "error", err)
		}
		return ""
	}
	for _, w := range res.Warnings {
		o.logger.Debug("template warning", "document_type", req.DocumentType, "warning", w.String())
	}
	return res.Text
}

// call makes one backend call and normalizes the reply.
func (o *Orchestrator) call(ctx context.Context, comp Completion) (string, error) {
	raw, err := o.backend.Complete(ctx, comp)
	if err != nil {
		var se *ServiceError
		if errors.As(err, &se) {
			return "", err
		}
		return "", &ServiceError{Kind: KindNetwork, Err: err}
	}
	return Normalize(raw)
}

// Converse sends one clarifying turn of a custom-document conversation. The
// user message is appended, the whole transcript is sent, and the reply is
// appended. On failure the user message is removed again so the transcript
// is unchanged.
func (o *Orchestrator) Converse(ctx context.Context, conv *Conversation, message string) (types.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return types.ChatMessage{}, ErrEmptyMessage
	}

	user := conv.transcript.User(message)
	comp, err := buildConversationPrompt(conv.Request())
	if err != nil {
		conv.transcript.Rollback(user.ID)
		return types.ChatMessage{}, err
	}

	reply, err := o.call(ctx, comp)
	if err != nil {
		conv.transcript.Rollback(user.ID)
		o.logger.Warn("conversation turn failed", "turns", conv.transcript.Len(), "error", err)
		return types.ChatMessage{}, err
	}
	o.logger.Debug("conversation turn", "turns", conv.transcript.Len()+1)
	return conv.transcript.Assistant(reply), nil
}

// Conversation is a custom-document drafting chat. Its transcript is
// independent of any editing session transcript.
type Conversation struct {
	base       types.GenerationRequest
	transcript *chat.Transcript
}

// NewConversation starts a conversation for a custom document. Any chat
// history already in req is kept in order.
func NewConversation(req types.GenerationRequest) *Conversation {
	req.DocumentType = types.DocCustom
	history := req.ChatHistory
	req.ChatHistory = nil
	return &Conversation{base: req, transcript: chat.FromMessages(history)}
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []types.ChatMessage {
	return c.transcript.Messages()
}

// Request returns the generation request with the transcript as its chat
// history.
func (c *Conversation) Request() types.GenerationRequest {
	req := c.base
	req.ChatHistory = c.transcript.Messages()
	return req
}
