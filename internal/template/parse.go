// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package template parses and renders legal-document templates. A template
// body is literal text with {{name}} placeholders and {{#if flag}}...{{/if}}
// conditional blocks. Parse turns a body into a typed tree of nodes; Render
// walks the tree against a set of bindings. Both are pure functions and a
// parsed Program is safe for concurrent use.
package template

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// ErrSyntax is wrapped by every SyntaxError.
var ErrSyntax = errors.New("template syntax error")

// SyntaxError reports malformed template markup. Offset is the byte offset
// of the offending tag in the template body.
type SyntaxError struct {
	Offset int
	Line   int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template syntax error at line %d (offset %d): %s", e.Line, e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// Node is one element of a parsed template.
type Node interface {
	node()
}

// TextNode is literal text copied to the output unchanged.
type TextNode struct {
	Text string
}

// PlaceholderNode is replaced by the bound value of Name.
type PlaceholderNode struct {
	Name string
}

// ConditionalNode renders Children only when Flag is truthy.
type ConditionalNode struct {
	Flag     string
	Children []Node
}

func (TextNode) node()        {}
func (PlaceholderNode) node() {}
func (ConditionalNode) node() {}

// Program is a parsed template.
type Program struct {
	Nodes []Node
}

// Parse builds the node tree for body. Conditional blocks may nest to any
// depth.
func Parse(body string) (*Program, error) {
	p := &parser{src: body}
	nodes, err := p.parseBlock("", -1)
	if err != nil {
		return nil, err
	}
	return &Program{Nodes: nodes}, nil
}

// MustParse is like Parse but panics on error. Intended for literals in tests
// and package-level variables.
func MustParse(body string) *Program {
	prog, err := Parse(body)
	if err != nil {
		panic(err)
	}
	return prog
}

type parser struct {
	src string
	pos int
}

// parseBlock consumes nodes until the end of input or, when flag is set,
// until the {{/if}} that closes the block opened at openAt.
func (p *parser) parseBlock(flag string, openAt int) ([]Node, error) {
	var nodes []Node
	for {
		i := strings.Index(p.src[p.pos:], openDelim)
		if i < 0 {
			if rest := p.src[p.pos:]; rest != "" {
				nodes = append(nodes, TextNode{Text: rest})
			}
			p.pos = len(p.src)
			if openAt >= 0 {
				return nil, p.errorf(openAt, "unterminated {{#if %s}}", flag)
			}
			return nodes, nil
		}

		start := p.pos + i
		if i > 0 {
			nodes = append(nodes, TextNode{Text: p.src[p.pos:start]})
		}

		end := strings.Index(p.src[start+len(openDelim):], closeDelim)
		if end < 0 {
			return nil, p.errorf(start, "unclosed %q", openDelim)
		}
		inner := p.src[start+len(openDelim) : start+len(openDelim)+end]
		p.pos = start + len(openDelim) + end + len(closeDelim)

		tag := strings.TrimSpace(inner)
		switch {
		case tag == "":
			return nil, p.errorf(start, "empty tag")

		case strings.HasPrefix(tag, "#"):
			keyword, arg := splitTag(tag[1:])
			if keyword != "if" {
				return nil, p.errorf(start, "unknown block {{#%s}}", keyword)
			}
			if arg == "" {
				return nil, p.errorf(start, "{{#if}} without a flag")
			}
			if !validName(arg) {
				return nil, p.errorf(start, "invalid flag name %q", arg)
			}
			children, err := p.parseBlock(arg, start)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, ConditionalNode{Flag: arg, Children: children})

		case strings.HasPrefix(tag, "/"):
			if keyword := strings.TrimSpace(tag[1:]); keyword != "if" {
				return nil, p.errorf(start, "unknown closing tag {{/%s}}", keyword)
			}
			if openAt < 0 {
				return nil, p.errorf(start, "{{/if}} without matching {{#if}}")
			}
			return nodes, nil

		default:
			if !validName(tag) {
				return nil, p.errorf(start, "invalid placeholder name %q", tag)
			}
			nodes = append(nodes, PlaceholderNode{Name: tag})
		}
	}
}

func (p *parser) errorf(offset int, format string, args ...any) error {
	return &SyntaxError{
		Offset: offset,
		Line:   strings.Count(p.src[:offset], "\n") + 1,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// splitTag splits "if flag" into keyword and argument.
func splitTag(s string) (keyword, arg string) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// validName accepts letters, digits, underscore, dot, and hyphen.
func validName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
		case r == '_', r == '.', r == '-':
		default:
			return false
		}
	}
	return true
}

// Placeholders returns the sorted, distinct placeholder names referenced
// anywhere in the program, including inside conditional blocks.
func (p *Program) Placeholders() []string {
	seen := make(map[string]bool)
	walk(p.Nodes, func(n Node) {
		if ph, ok := n.(PlaceholderNode); ok {
			seen[ph.Name] = true
		}
	})
	return sortedKeys(seen)
}

// Flags returns the sorted, distinct flag names of all conditional blocks.
func (p *Program) Flags() []string {
	seen := make(map[string]bool)
	walk(p.Nodes, func(n Node) {
		if c, ok := n.(ConditionalNode); ok {
			seen[c.Flag] = true
		}
	})
	return sortedKeys(seen)
}

func walk(nodes []Node, fn func(Node)) {
	for _, n := range nodes {
		fn(n)
		if c, ok := n.(ConditionalNode); ok {
			walk(c.Children, fn)
		}
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
