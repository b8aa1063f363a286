//go:build mage

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pdiddy/lexdraft/internal/template"
	"github.com/pdiddy/lexdraft/pkg/types"
)

// localTemplates is the directory of project templates layered over the
// embedded set.
const localTemplates = "templates"

// TemplateLint loads the embedded templates and any in templates/, checking
// syntax and that every language variant uses the same fields.
func TemplateLint() error {
	dir := localTemplates
	if _, err := os.Stat(dir); err != nil {
		dir = ""
	}
	store, err := template.OpenStore(dir)
	if err != nil {
		return err
	}
	for _, dt := range store.Types() {
		t, err := store.Get(dt)
		if err != nil {
			return err
		}
		fmt.Printf("  %-22s %v\n", dt, t.Languages())
	}

	// A bilingual render exercises both single-language variants together.
	for _, dt := range store.Types() {
		t, _ := store.Get(dt)
		if len(t.Languages()) < 2 {
			continue
		}
		_, err := t.Render(types.LangBilingual, template.Bindings{})
		if err != nil && !errors.Is(err, template.ErrMissingField) {
			return fmt.Errorf("%s: %w", dt, err)
		}
	}
	fmt.Printf("%d templates OK.\n", len(store.Types()))
	return nil
}
