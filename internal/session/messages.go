// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import "github.com/pdiddy/lexdraft/pkg/types"

type assistantMessages struct {
	intro, ack, apology string
}

var messages = map[types.Language]assistantMessages{
	types.LangEnglish: {
		intro:   "I can help you revise this document. Describe the change you want, or pick a quick action.",
		ack:     "I've updated the document. You can undo this change if you prefer the previous version.",
		apology: "Sorry, I couldn't apply that change. Your document has not been modified; please try again.",
	},
	types.LangArabic: {
		intro:   "يمكنني مساعدتك في تعديل هذا المستند. صف التغيير المطلوب أو اختر إجراءً سريعاً.",
		ack:     "تم تحديث المستند. يمكنك التراجع عن هذا التغيير إذا فضّلت النسخة السابقة.",
		apology: "عذراً، تعذّر تطبيق هذا التغيير. لم يتم تعديل المستند؛ يرجى المحاولة مرة أخرى.",
	},
}

func messagesFor(lang types.Language) assistantMessages {
	if m, ok := messages[lang]; ok {
		return m
	}
	return messages[types.LangEnglish]
}

// QuickAction is a preset instruction for AI-assisted editing. Selecting
// one only fills in the instruction; it runs through AIEdit like any other.
type QuickAction struct {
	Name        string
	Label       string
	Instruction string
}

var quickActions = []QuickAction{
	{Name: "formal", Label: "Make more formal", Instruction: "Rewrite the document in a more formal legal register without changing its substance."},
	{Name: "simplify", Label: "Simplify language", Instruction: "Simplify the wording so a non-lawyer can understand it, keeping every obligation intact."},
	{Name: "grammar", Label: "Fix grammar", Instruction: "Correct grammar, spelling, and punctuation. Do not change the meaning of any clause."},
	{Name: "confidentiality", Label: "Add confidentiality clause", Instruction: "Add a confidentiality clause binding both parties, numbered consistently with the existing clauses."},
	{Name: "termination", Label: "Add termination clause", Instruction: "Add a termination clause covering notice, termination for breach, and the effect of termination."},
	{Name: "dispute", Label: "Add dispute resolution", Instruction: "Add a dispute resolution clause naming the competent courts of the governing jurisdiction, with amicable settlement first."},
}

// QuickActions returns the available presets.
func QuickActions() []QuickAction {
	return append([]QuickAction(nil), quickActions...)
}

// QuickActionInstruction returns the instruction text for a preset name.
func QuickActionInstruction(name string) (string, bool) {
	for _, a := range quickActions {
		if a.Name == name {
			return a.Instruction, true
		}
	}
	return "", false
}
