// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/pdiddy/lexdraft/internal/jurisdiction"
	"github.com/pdiddy/lexdraft/pkg/types"
)

// Validate checks a generation request. Template documents need both
// parties' names and ID numbers; custom documents need at least one user
// turn in the chat history. The error is a *ValidationError.
func Validate(req types.GenerationRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.DocumentType, validation.Required),
		validation.Field(&req.Language, validation.Required, validation.By(supportedLanguage)),
		validation.Field(&req.Jurisdiction, validation.By(knownJurisdiction)),
		validation.Field(&req.Parties, validation.When(!req.DocumentType.IsCustom(), validation.By(partiesComplete))),
		validation.Field(&req.ChatHistory, validation.When(req.DocumentType.IsCustom(), validation.By(hasUserTurn))),
	)
	if err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

func validateEdit(req types.EditRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Content, validation.By(notBlank)),
		validation.Field(&req.Instruction, validation.By(notBlank)),
	)
	if err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

func supportedLanguage(value any) error {
	lang, _ := value.(types.Language)
	if lang != "" && !lang.Valid() {
		return fmt.Errorf("unsupported language %q", lang)
	}
	return nil
}

func knownJurisdiction(value any) error {
	j, _ := value.(types.Jurisdiction)
	if j.Country == "" {
		return errors.New("country is required")
	}
	_, err := jurisdiction.Lookup(j.Country)
	return err
}

func partiesComplete(value any) error {
	parties, _ := value.([2]types.Party)
	errs := validation.Errors{}
	for i := range parties {
		p := parties[i]
		if err := validation.ValidateStruct(&p,
			validation.Field(&p.Name, validation.By(notBlank)),
			validation.Field(&p.IDNumber, validation.By(notBlank)),
		); err != nil {
			errs[partyKey(i)] = err
		}
	}
	return errs.Filter()
}

func hasUserTurn(value any) error {
	history, _ := value.([]types.ChatMessage)
	if (types.GenerationRequest{ChatHistory: history}).HasUserTurn() {
		return nil
	}
	return errors.New("custom documents need at least one user message")
}

func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

func partyKey(i int) string {
	return fmt.Sprintf("party_%c", 'a'+i)
}
