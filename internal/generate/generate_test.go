// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lexdraft/internal/template"
	"github.com/pdiddy/lexdraft/pkg/types"
)

// --- mock backend ---

type mockBackend struct {
	reply string
	err   error
	calls []Completion
}

func (m *mockBackend) Complete(_ context.Context, comp Completion) (string, error) {
	m.calls = append(m.calls, comp)
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rentalRequest() types.GenerationRequest {
	return types.GenerationRequest{
		DocumentType: types.DocRental,
		Language:     types.LangEnglish,
		Jurisdiction: types.Jurisdiction{Country: "AE", SubJurisdiction: "Dubai"},
		Parties: [2]types.Party{
			{Name: "Ahmed Al Mansoori", IDNumber: "784-1980-1234567-1", Address: "Villa 12, Jumeirah"},
			{Name: "Sara Khan", IDNumber: "P1234567"},
		},
		Details: map[string]string{
			"rent_amount":    "120000",
			"has_deposit":    "yes",
			"deposit_amount": "5000",
			"start_date":     "2026-02-01",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*types.GenerationRequest)
		wantField string
	}{
		{name: "valid", mutate: func(*types.GenerationRequest) {}},
		{name: "missing type", mutate: func(r *types.GenerationRequest) { r.DocumentType = "" }, wantField: "document_type"},
		{name: "missing language", mutate: func(r *types.GenerationRequest) { r.Language = "" }, wantField: "language"},
		{name: "bad language", mutate: func(r *types.GenerationRequest) { r.Language = "fr" }, wantField: "language"},
		{name: "unknown country", mutate: func(r *types.GenerationRequest) { r.Jurisdiction.Country = "US" }, wantField: "jurisdiction"},
		{name: "party b name blank", mutate: func(r *types.GenerationRequest) { r.Parties[1].Name = "  " }, wantField: "parties"},
		{name: "party a id missing", mutate: func(r *types.GenerationRequest) { r.Parties[0].IDNumber = "" }, wantField: "parties"},
		{name: "custom without user turn", mutate: func(r *types.GenerationRequest) {
			r.DocumentType = types.DocCustom
			r.ChatHistory = []types.ChatMessage{{Role: types.RoleAssistant, Content: "Hello"}}
		}, wantField: "chat_history"},
		{name: "custom with user turn needs no parties", mutate: func(r *types.GenerationRequest) {
			r.DocumentType = types.DocCustom
			r.Parties = [2]types.Party{}
			r.ChatHistory = []types.ChatMessage{{Role: types.RoleUser, Content: "A partnership deed"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := rentalRequest()
			tt.mutate(&req)
			err := Validate(req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRequest)

			var verrs validation.Errors
			require.True(t, errors.As(err, &verrs), "error %v carries field errors", err)
			assert.Contains(t, verrs, tt.wantField)
		})
	}
}

func TestValidatePartyKeys(t *testing.T) {
	req := rentalRequest()
	req.Parties[1].IDNumber = ""

	var verrs validation.Errors
	require.True(t, errors.As(Validate(req), &verrs))
	parties, ok := verrs["parties"].(validation.Errors)
	require.True(t, ok)
	assert.Contains(t, parties, "party_b")
	assert.NotContains(t, parties, "party_a")
}

func TestGenerate(t *testing.T) {
	store, err := template.DefaultStore()
	require.NoError(t, err)
	backend := &mockBackend{reply: "```\nRESIDENTIAL TENANCY AGREEMENT\r\n\r\nTerms.\n```"}
	o := New(backend, store, discardLogger())

	d, err := o.Generate(context.Background(), rentalRequest())
	require.NoError(t, err)

	assert.Equal(t, "RESIDENTIAL TENANCY AGREEMENT\n\nTerms.", d.Content)
	assert.Equal(t, "Residential Tenancy Agreement", d.Title)
	assert.Equal(t, types.DocRental, d.DocumentType)
	assert.Equal(t, []string{d.Content}, d.History.Entries())

	require.Len(t, backend.calls, 1)
	prompt := backend.calls[0].Messages[0].Content
	assert.Contains(t, prompt, "Ahmed Al Mansoori")
	assert.Contains(t, prompt, "SECURITY DEPOSIT", "the rendered skeleton is offered")
	assert.Contains(t, prompt, "AED 5,000.00")
	assert.Contains(t, backend.calls[0].System, "as applied in Dubai")
}

func TestGenerateInvalidMakesNoCall(t *testing.T) {
	backend := &mockBackend{reply: "unused"}
	o := New(backend, nil, discardLogger())

	req := rentalRequest()
	req.Parties[0].Name = ""
	_, err := o.Generate(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, backend.calls)
}

func TestGenerateServiceFailure(t *testing.T) {
	tests := []struct {
		name     string
		backend  *mockBackend
		wantKind ErrorKind
	}{
		{name: "status", backend: &mockBackend{err: &ServiceError{Kind: KindStatus, StatusCode: 503, Err: errors.New("overloaded")}}, wantKind: KindStatus},
		{name: "plain error becomes network", backend: &mockBackend{err: errors.New("dial tcp: refused")}, wantKind: KindNetwork},
		{name: "empty reply", backend: &mockBackend{reply: "  \n "}, wantKind: KindMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New(tt.backend, nil, discardLogger())
			d, err := o.Generate(context.Background(), rentalRequest())
			assert.Nil(t, d)
			require.ErrorIs(t, err, ErrService)

			var se *ServiceError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.wantKind, se.Kind)
			assert.Len(t, tt.backend.calls, 1, "never retried")
		})
	}
}

func TestGenerateCustomReplaysHistory(t *testing.T) {
	backend := &mockBackend{reply: "PARTNERSHIP DEED"}
	o := New(backend, nil, discardLogger())

	req := types.GenerationRequest{
		DocumentType: types.DocCustom,
		Language:     types.LangArabic,
		Jurisdiction: types.Jurisdiction{Country: "QA"},
		CustomTitle:  "Partnership Deed",
		ChatHistory: []types.ChatMessage{
			{Role: types.RoleUser, Content: "I need a partnership deed."},
			{Role: types.RoleAssistant, Content: "Who are the partners?"},
			{Role: types.RoleUser, Content: "Two partners, 50/50."},
		},
	}
	d, err := o.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Partnership Deed", d.Title)

	msgs := backend.calls[0].Messages
	require.Len(t, msgs, 5)
	assert.Contains(t, msgs[0].Content, `titled "Partnership Deed"`)
	assert.Equal(t, Message{Role: roleUser, Content: "I need a partnership deed."}, msgs[1])
	assert.Equal(t, Message{Role: roleAssistant, Content: "Who are the partners?"}, msgs[2])
	assert.Equal(t, Message{Role: roleUser, Content: "Two partners, 50/50."}, msgs[3])
	assert.Equal(t, customDraftInstruction, msgs[4].Content)
	assert.Contains(t, backend.calls[0].System, "Modern Standard Arabic")
}

func TestEdit(t *testing.T) {
	backend := &mockBackend{reply: "Full revised document."}
	o := New(backend, nil, discardLogger())

	got, err := o.Edit(context.Background(), types.EditRequest{
		Content:     "Original document.",
		Instruction: "Make it formal.",
		Language:    types.LangEnglish,
	})
	require.NoError(t, err)
	assert.Equal(t, "Full revised document.", got)

	require.Len(t, backend.calls, 1)
	user := backend.calls[0].Messages[0].Content
	assert.Contains(t, user, "Original document.")
	assert.Contains(t, user, "Make it formal.")
	assert.Contains(t, backend.calls[0].System, "COMPLETE updated document")
}

func TestEditRejectsBlankInstruction(t *testing.T) {
	backend := &mockBackend{}
	o := New(backend, nil, discardLogger())

	_, err := o.Edit(context.Background(), types.EditRequest{Content: "x", Instruction: "   "})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, backend.calls)
}

func TestConverse(t *testing.T) {
	backend := &mockBackend{reply: "Who are the partners?"}
	o := New(backend, nil, discardLogger())
	conv := NewConversation(types.GenerationRequest{
		Language:     types.LangEnglish,
		Jurisdiction: types.Jurisdiction{Country: "BH"},
		CustomTitle:  "Partnership Deed",
	})

	reply, err := o.Converse(context.Background(), conv, "I need a partnership deed.")
	require.NoError(t, err)
	assert.Equal(t, types.RoleAssistant, reply.Role)

	msgs := conv.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "I need a partnership deed.", msgs[0].Content)
	assert.Equal(t, "Who are the partners?", msgs[1].Content)

	req := conv.Request()
	assert.Equal(t, types.DocCustom, req.DocumentType)
	assert.True(t, req.HasUserTurn())
	assert.NoError(t, Validate(req))
}

func TestConverseFailureLeavesTranscript(t *testing.T) {
	backend := &mockBackend{reply: "First answer."}
	o := New(backend, nil, discardLogger())
	conv := NewConversation(types.GenerationRequest{
		Language:     types.LangEnglish,
		Jurisdiction: types.Jurisdiction{Country: "OM"},
	})
	_, err := o.Converse(context.Background(), conv, "hello")
	require.NoError(t, err)
	before := conv.Messages()

	backend.err = &ServiceError{Kind: KindNetwork, Err: errors.New("timeout")}
	_, err = o.Converse(context.Background(), conv, "second")
	require.ErrorIs(t, err, ErrService)
	assert.Equal(t, before, conv.Messages())

	_, err = o.Converse(context.Background(), conv, " ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestTitleFallback(t *testing.T) {
	o := New(&mockBackend{}, nil, discardLogger())
	assert.Equal(t, "lease of land", o.Title(types.GenerationRequest{DocumentType: "lease_of_land"}))
	assert.True(t, strings.HasPrefix(o.Title(types.GenerationRequest{DocumentType: types.DocCustom, CustomTitle: "Deed"}), "Deed"))
}
