// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DocumentType identifies a kind of legal document. The set is extensible:
// any type with a template asset is usable, and DocCustom drafts free-form
// documents from a chat transcript.
type DocumentType string

const (
	DocRental       DocumentType = "rental_agreement"
	DocEmployment   DocumentType = "employment_contract"
	DocNDA          DocumentType = "nda"
	DocService      DocumentType = "service_agreement"
	DocSale         DocumentType = "sale_agreement"
	DocDemandLetter DocumentType = "demand_letter"
	DocCustom       DocumentType = "custom"
)

// IsCustom reports whether the type is the free-form kind.
func (t DocumentType) IsCustom() bool {
	return t == DocCustom
}

// Party is one side of a legal document.
type Party struct {
	// Name is the legal name of the person or company.
	Name string `json:"name" yaml:"name"`

	// IDNumber is the Emirates ID, Iqama, passport, or trade licence number.
	IDNumber string `json:"id_number" yaml:"id_number"`

	Address     string `json:"address,omitempty" yaml:"address,omitempty"`
	Nationality string `json:"nationality,omitempty" yaml:"nationality,omitempty"`
	Phone       string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`

	// Role describes the party's capacity (e.g. "landlord", "employee").
	Role string `json:"role,omitempty" yaml:"role,omitempty"`
}

// Jurisdiction locates the governing law of a document.
type Jurisdiction struct {
	// Country is the ISO 3166-1 alpha-2 code (e.g. "AE", "SA").
	Country string `json:"country" yaml:"country"`

	// SubJurisdiction is an emirate, free zone, or region (e.g. "Dubai", "DIFC").
	SubJurisdiction string `json:"sub_jurisdiction,omitempty" yaml:"sub_jurisdiction,omitempty"`
}

// ChatRole identifies the author of a chat turn.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn in a drafting or editing conversation.
type ChatMessage struct {
	ID        string    `json:"id,omitempty" yaml:"id,omitempty"`
	Role      ChatRole  `json:"role" yaml:"role"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// GenerationRequest carries everything the generative-text service needs to
// draft a document. ChatHistory is append-only and is replayed in order on
// every call because the service keeps no state between calls.
type GenerationRequest struct {
	DocumentType DocumentType      `json:"document_type" yaml:"document_type"`
	Language     Language          `json:"language" yaml:"language"`
	Jurisdiction Jurisdiction      `json:"jurisdiction" yaml:"jurisdiction"`
	Parties      [2]Party          `json:"parties" yaml:"parties"`
	Details      map[string]string `json:"details,omitempty" yaml:"details,omitempty"`

	ChatHistory       []ChatMessage `json:"chat_history,omitempty" yaml:"chat_history,omitempty"`
	CustomTitle       string        `json:"custom_title,omitempty" yaml:"custom_title,omitempty"`
	CustomDescription string        `json:"custom_description,omitempty" yaml:"custom_description,omitempty"`
}

// HasUserTurn reports whether the chat history holds at least one user turn
// with content.
func (r GenerationRequest) HasUserTurn() bool {
	for _, m := range r.ChatHistory {
		if m.Role == RoleUser && m.Content != "" {
			return true
		}
	}
	return false
}

// EditRequest asks the generative-text service to revise a document. The
// reply is always the complete updated document, never a diff.
type EditRequest struct {
	Content      string       `json:"content" yaml:"content"`
	Instruction  string       `json:"instruction" yaml:"instruction"`
	DocumentType DocumentType `json:"document_type" yaml:"document_type"`
	Language     Language     `json:"language" yaml:"language"`
}
