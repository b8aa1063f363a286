// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package template

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lexdraft/pkg/types"
)

var (
	// ErrTemplateNotFound is returned for an unknown document type or a
	// language the template has no variant for.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInconsistentVariants is returned at load time when the language
	// variants of one template reference different placeholders or flags.
	ErrInconsistentVariants = errors.New("template variants are inconsistent")
)

// bilingualDivider separates the English and Arabic halves of a bilingual
// document rendered from the two single-language variants.
const bilingualDivider = "\n\n* * *\n\n"

//go:embed assets/*.yaml
var assets embed.FS

// asset is the on-disk YAML shape of a template.
type asset struct {
	DocumentType types.DocumentType        `yaml:"document_type"`
	Titles       map[types.Language]string `yaml:"titles"`
	Description  string                    `yaml:"description"`
	Required     []string                  `yaml:"required"`
	Variants     map[types.Language]string `yaml:"variants"`
}

// Template is a document template with one body per language. Templates are
// immutable once loaded.
type Template struct {
	DocumentType types.DocumentType
	Description  string
	Required     []string

	titles   map[types.Language]string
	bodies   map[types.Language]string
	programs map[types.Language]*Program
}

// Languages returns the languages the template has a variant for.
func (t *Template) Languages() []types.Language {
	langs := make([]types.Language, 0, len(t.bodies))
	for l := range t.bodies {
		langs = append(langs, l)
	}
	slices.Sort(langs)
	return langs
}

// Title returns the document title in lang. Bilingual titles join the
// English and Arabic titles.
func (t *Template) Title(lang types.Language) string {
	if title, ok := t.titles[lang]; ok {
		return title
	}
	if lang == types.LangBilingual {
		en, ar := t.titles[types.LangEnglish], t.titles[types.LangArabic]
		switch {
		case en != "" && ar != "":
			return en + " / " + ar
		case en != "":
			return en
		}
		return ar
	}
	return t.titles[types.LangEnglish]
}

// Body returns the raw template body for lang.
func (t *Template) Body(lang types.Language) (string, bool) {
	b, ok := t.bodies[lang]
	return b, ok
}

// Render renders the variant for lang. A bilingual render without a
// dedicated variant renders English then Arabic. Fields listed in Required
// fail the render when unbound.
func (t *Template) Render(lang types.Language, b Bindings, opts ...RenderOption) (Result, error) {
	opts = append([]RenderOption{Require(t.Required...)}, opts...)

	if prog, ok := t.programs[lang]; ok {
		return prog.Render(b, opts...)
	}
	if lang != types.LangBilingual {
		return Result{}, fmt.Errorf("%w: %s has no %q variant", ErrTemplateNotFound, t.DocumentType, lang)
	}

	en, okEN := t.programs[types.LangEnglish]
	ar, okAR := t.programs[types.LangArabic]
	if !okEN || !okAR {
		return Result{}, fmt.Errorf("%w: %s cannot be rendered bilingually", ErrTemplateNotFound, t.DocumentType)
	}
	enRes, err := en.Render(b, opts...)
	if err != nil {
		return Result{}, err
	}
	arRes, err := ar.Render(b, opts...)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Text:     enRes.Text + bilingualDivider + arRes.Text,
		Warnings: mergeWarnings(enRes.Warnings, arRes.Warnings),
	}, nil
}

func mergeWarnings(a, b []Warning) []Warning {
	seen := make(map[string]bool, len(a))
	out := make([]Warning, 0, len(a)+len(b))
	for _, w := range append(append([]Warning{}, a...), b...) {
		if seen[w.Placeholder] {
			continue
		}
		seen[w.Placeholder] = true
		out = append(out, w)
	}
	return out
}

// Store holds the templates known to the process, keyed by document type.
type Store struct {
	templates map[types.DocumentType]*Template
}

// DefaultStore loads the templates embedded in the binary.
func DefaultStore() (*Store, error) {
	return OpenStore("")
}

// OpenStore loads the embedded templates and then, when dir is set, the
// templates in dir, which override embedded ones of the same type.
func OpenStore(dir string) (*Store, error) {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		return nil, fmt.Errorf("opening embedded templates: %w", err)
	}
	if dir == "" {
		return LoadStore(sub)
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("opening template directory: %w", err)
	}
	return LoadStore(sub, os.DirFS(dir))
}

// LoadStore reads every *.yaml file at the root of each source. A template
// in a later source replaces one of the same document type from an earlier
// source.
func LoadStore(sources ...fs.FS) (*Store, error) {
	s := &Store{templates: make(map[types.DocumentType]*Template)}
	for _, fsys := range sources {
		names, err := fs.Glob(fsys, "*.yaml")
		if err != nil {
			return nil, fmt.Errorf("listing templates: %w", err)
		}
		sort.Strings(names)
		for _, name := range names {
			t, err := loadTemplate(fsys, name)
			if err != nil {
				return nil, err
			}
			s.templates[t.DocumentType] = t
		}
	}
	return s, nil
}

func loadTemplate(fsys fs.FS, name string) (*Template, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}
	var a asset
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	if a.DocumentType == "" {
		a.DocumentType = types.DocumentType(trimExt(name))
	}
	if len(a.Variants) == 0 {
		return nil, fmt.Errorf("template %s: no language variants", name)
	}

	t := &Template{
		DocumentType: a.DocumentType,
		Description:  a.Description,
		Required:     a.Required,
		titles:       a.Titles,
		bodies:       make(map[types.Language]string, len(a.Variants)),
		programs:     make(map[types.Language]*Program, len(a.Variants)),
	}
	for lang, body := range a.Variants {
		if !lang.Valid() {
			return nil, fmt.Errorf("template %s: unsupported language %q", name, lang)
		}
		prog, err := Parse(body)
		if err != nil {
			return nil, fmt.Errorf("template %s (%s): %w", name, lang, err)
		}
		t.bodies[lang] = body
		t.programs[lang] = prog
	}
	if err := checkVariants(t); err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	return t, nil
}

// checkVariants enforces that every variant references the same
// placeholders and flags, so one binding set renders them all.
func checkVariants(t *Template) error {
	langs := t.Languages()
	first := langs[0]
	wantPH, wantFlags := t.programs[first].Placeholders(), t.programs[first].Flags()
	for _, lang := range langs[1:] {
		ph, flags := t.programs[lang].Placeholders(), t.programs[lang].Flags()
		if !slices.Equal(ph, wantPH) {
			return fmt.Errorf("%w: %s placeholders %v, %s placeholders %v", ErrInconsistentVariants, first, wantPH, lang, ph)
		}
		if !slices.Equal(flags, wantFlags) {
			return fmt.Errorf("%w: %s flags %v, %s flags %v", ErrInconsistentVariants, first, wantFlags, lang, flags)
		}
	}
	return nil
}

func trimExt(name string) string {
	return name[:len(name)-len(path.Ext(name))]
}

// Get returns the template for docType.
func (s *Store) Get(docType types.DocumentType) (*Template, error) {
	t, ok := s.templates[docType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, docType)
	}
	return t, nil
}

// Types returns the document types in the store, sorted.
func (s *Store) Types() []types.DocumentType {
	out := make([]types.DocumentType, 0, len(s.templates))
	for t := range s.templates {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Render renders the docType template in lang.
func (s *Store) Render(docType types.DocumentType, lang types.Language, b Bindings, opts ...RenderOption) (Result, error) {
	t, err := s.Get(docType)
	if err != nil {
		return Result{}, err
	}
	return t.Render(lang, b, opts...)
}
