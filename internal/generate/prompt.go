// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/pdiddy/lexdraft/internal/jurisdiction"
	"github.com/pdiddy/lexdraft/pkg/types"
)

// Role values used in Completion messages.
const (
	roleUser      = "user"
	roleAssistant = "assistant"
)

// Message is one turn sent to the service.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completion is one request to the generative-text service.
type Completion struct {
	System   string
	Messages []Message
}

var languageInstructions = map[types.Language]string{
	types.LangEnglish:   "Write the entire document in formal legal English.",
	types.LangArabic:    "Write the entire document in formal Modern Standard Arabic legal language.",
	types.LangBilingual: "Write the document bilingually: each heading and clause in English, immediately followed by its Arabic translation.",
}

var systemTmpl = template.Must(template.New("system").Parse(`You are a legal drafting assistant for the Gulf Cooperation Council (GCC) region.
{{.LanguageInstruction}}
The document is governed by {{.GoverningLaw}}. Use terminology and clauses customary in {{.CountryName}}.
Output the complete document as plain text only: no Markdown, no HTML, no commentary before or after the document.
Never invent party details that were not provided; leave a clearly marked blank line instead.`))

var draftTmpl = template.Must(template.New("draft").Parse(`Draft a {{.Title}}.

Jurisdiction: {{.CountryName}}{{if .Sub}}, {{.Sub}}{{end}}
Governing law: {{.GoverningLaw}}
Currency: {{.Currency}}
{{range .Parties}}
{{.Label}}:
  Name: {{.Name}}
  ID number: {{.IDNumber}}{{if .Address}}
  Address: {{.Address}}{{end}}{{if .Nationality}}
  Nationality: {{.Nationality}}{{end}}{{if .Role}}
  Role: {{.Role}}{{end}}
{{end}}{{if .Details}}
Contract details:
{{range .Details}}  {{.Key}}: {{.Value}}
{{end}}{{end}}{{if .Skeleton}}
Use the following skeleton as the basis of the document. Keep its structure, complete any blank fields from the details above, and expand clauses where the jurisdiction requires it:

{{.Skeleton}}
{{end}}`))

var customContextTmpl = template.Must(template.New("custom").Parse(`I want to draft a custom legal document{{if .Title}} titled "{{.Title}}"{{end}}.{{if .Description}}

Description: {{.Description}}{{end}}

Jurisdiction: {{.CountryName}}{{if .Sub}}, {{.Sub}}{{end}}
{{range .Parties}}{{if .Name}}
{{.Label}}: {{.Name}}{{if .IDNumber}} (ID {{.IDNumber}}){{end}}{{end}}{{end}}`))

const customDraftInstruction = "Based on everything above, draft the complete document now."

const conversationSystem = `You are helping a user specify a custom legal document before it is drafted.
Ask short, focused questions about missing terms, parties, obligations, and dates. Do not draft the full document yet.
Reply in the language the user writes in.`

const editSystem = `You are revising an existing legal document at the user's request.
Apply the instruction and return the COMPLETE updated document as plain text: never a diff, a summary, or only the changed parts.
Keep the document's language, structure, and numbering unless the instruction says otherwise. Do not add commentary.`

var editTmpl = template.Must(template.New("edit").Parse(`Instruction: {{.Instruction}}

Current document:
<<<
{{.Content}}
>>>`))

type promptParty struct {
	types.Party
	Label string
}

type promptDetail struct {
	Key, Value string
}

type promptData struct {
	Title               string
	Description         string
	LanguageInstruction string
	CountryName         string
	Sub                 string
	GoverningLaw        string
	Currency            string
	Parties             []promptParty
	Details             []promptDetail
	Skeleton            string
}

func newPromptData(req types.GenerationRequest, title, skeleton string) (promptData, error) {
	country, err := jurisdiction.Lookup(req.Jurisdiction.Country)
	if err != nil {
		return promptData{}, err
	}
	// Prompts are written in English; the language instruction selects the
	// output language.
	d := promptData{
		Title:               title,
		Description:         req.CustomDescription,
		LanguageInstruction: languageInstructions[req.Language],
		CountryName:         country.Name(types.LangEnglish),
		Sub:                 req.Jurisdiction.SubJurisdiction,
		GoverningLaw:        country.GoverningLaw(types.LangEnglish, req.Jurisdiction.SubJurisdiction),
		Currency:            country.CurrencyCode(),
		Skeleton:            strings.TrimSpace(skeleton),
	}
	for i, p := range req.Parties {
		d.Parties = append(d.Parties, promptParty{Party: p, Label: fmt.Sprintf("Party %c", 'A'+i)})
	}
	keys := make([]string, 0, len(req.Details))
	for k := range req.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		d.Details = append(d.Details, promptDetail{Key: k, Value: req.Details[k]})
	}
	return d, nil
}

// BuildPrompt assembles the completion for a generation request. Template
// documents get one user message describing parties, jurisdiction, details,
// and the optional skeleton. Custom documents replay the chat history in
// order after a context message, then ask for the document.
func BuildPrompt(req types.GenerationRequest, title, skeleton string) (Completion, error) {
	data, err := newPromptData(req, title, skeleton)
	if err != nil {
		return Completion{}, err
	}
	system, err := execute(systemTmpl, data)
	if err != nil {
		return Completion{}, err
	}

	if !req.DocumentType.IsCustom() {
		user, err := execute(draftTmpl, data)
		if err != nil {
			return Completion{}, err
		}
		return Completion{System: system, Messages: []Message{{Role: roleUser, Content: user}}}, nil
	}

	msgs, err := customMessages(data, req.ChatHistory)
	if err != nil {
		return Completion{}, err
	}
	msgs = append(msgs, Message{Role: roleUser, Content: customDraftInstruction})
	return Completion{System: system, Messages: msgs}, nil
}

// buildConversationPrompt is the completion for one clarifying chat turn.
func buildConversationPrompt(req types.GenerationRequest) (Completion, error) {
	data, err := newPromptData(req, req.CustomTitle, "")
	if err != nil {
		return Completion{}, err
	}
	msgs, err := customMessages(data, req.ChatHistory)
	if err != nil {
		return Completion{}, err
	}
	return Completion{System: conversationSystem, Messages: msgs}, nil
}

func customMessages(data promptData, history []types.ChatMessage) ([]Message, error) {
	ctxMsg, err := execute(customContextTmpl, data)
	if err != nil {
		return nil, err
	}
	msgs := []Message{{Role: roleUser, Content: ctxMsg}}
	for _, m := range history {
		role := roleUser
		if m.Role == types.RoleAssistant {
			role = roleAssistant
		}
		msgs = append(msgs, Message{Role: role, Content: m.Content})
	}
	return msgs, nil
}

func buildEditPrompt(req types.EditRequest) (Completion, error) {
	user, err := execute(editTmpl, req)
	if err != nil {
		return Completion{}, err
	}
	system := editSystem
	if instr, ok := languageInstructions[req.Language]; ok {
		system += "\n" + instr
	}
	return Completion{System: system, Messages: []Message{{Role: roleUser, Content: user}}}, nil
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", t.Name(), err)
	}
	return buf.String(), nil
}
