// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package template

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingField is wrapped by MissingFieldError.
var ErrMissingField = errors.New("required field missing")

// Bindings supplies values for placeholders and flags for conditional
// blocks. Values are pre-formatted strings: dates and amounts are formatted
// when bindings are built, never by the renderer.
type Bindings struct {
	Values map[string]string `json:"values,omitempty" yaml:"values,omitempty"`
	Flags  map[string]bool   `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// truthy reports whether a conditional block guarded by flag is rendered.
// An explicit boolean wins; otherwise a non-empty value of the same name
// counts as true.
func (b Bindings) truthy(flag string) bool {
	if v, ok := b.Flags[flag]; ok {
		return v
	}
	return b.Values[flag] != ""
}

// Warning is a non-fatal rendering problem the caller may surface.
type Warning struct {
	Placeholder string `json:"placeholder" yaml:"placeholder"`
}

func (w Warning) String() string {
	return fmt.Sprintf("unbound placeholder {{%s}} rendered empty", w.Placeholder)
}

// Result is the output of a render.
type Result struct {
	Text     string
	Warnings []Warning
}

// MissingFieldError is returned when a field marked as required has no
// binding in the rendered portion of a template.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field(s) missing: %s", strings.Join(e.Fields, ", "))
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

type renderConfig struct {
	required map[string]bool
}

// RenderOption adjusts a single render.
type RenderOption func(*renderConfig)

// Require turns an unbound placeholder with one of the given names into a
// MissingFieldError instead of a warning.
func Require(names ...string) RenderOption {
	return func(c *renderConfig) {
		if c.required == nil {
			c.required = make(map[string]bool)
		}
		for _, n := range names {
			c.required[n] = true
		}
	}
}

// Render expands the program against b. Unbound placeholders render as the
// empty string and are reported once each, in order of first occurrence.
func (p *Program) Render(b Bindings, opts ...RenderOption) (Result, error) {
	var cfg renderConfig
	for _, o := range opts {
		o(&cfg)
	}

	r := &renderer{bindings: b, cfg: cfg, warned: make(map[string]bool)}
	r.render(p.Nodes)

	if len(r.missing) > 0 {
		return Result{}, &MissingFieldError{Fields: r.missing}
	}
	return Result{Text: r.out.String(), Warnings: r.warnings}, nil
}

// Render parses body and renders it in one step.
func Render(body string, b Bindings, opts ...RenderOption) (Result, error) {
	prog, err := Parse(body)
	if err != nil {
		return Result{}, err
	}
	return prog.Render(b, opts...)
}

type renderer struct {
	bindings Bindings
	cfg      renderConfig
	out      strings.Builder
	warnings []Warning
	missing  []string
	warned   map[string]bool
}

func (r *renderer) render(nodes []Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case TextNode:
			r.out.WriteString(n.Text)
		case PlaceholderNode:
			v, ok := r.bindings.Values[n.Name]
			if !ok || (v == "" && r.cfg.required[n.Name]) {
				r.unbound(n.Name)
			}
			r.out.WriteString(v)
		case ConditionalNode:
			if r.bindings.truthy(n.Flag) {
				r.render(n.Children)
			}
		}
	}
}

func (r *renderer) unbound(name string) {
	if r.warned[name] {
		return
	}
	r.warned[name] = true
	if r.cfg.required[name] {
		r.missing = append(r.missing, name)
		return
	}
	r.warnings = append(r.warnings, Warning{Placeholder: name})
}
