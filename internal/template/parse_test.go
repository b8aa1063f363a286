// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package template

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []Node
	}{
		{
			name: "plain text",
			body: "No tokens here.",
			want: []Node{TextNode{Text: "No tokens here."}},
		},
		{
			name: "empty body",
			body: "",
			want: nil,
		},
		{
			name: "placeholder with padding",
			body: "Party: {{ partyName }}.",
			want: []Node{
				TextNode{Text: "Party: "},
				PlaceholderNode{Name: "partyName"},
				TextNode{Text: "."},
			},
		},
		{
			name: "conditional",
			body: "{{#if flag}}X{{/if}}Y",
			want: []Node{
				ConditionalNode{Flag: "flag", Children: []Node{TextNode{Text: "X"}}},
				TextNode{Text: "Y"},
			},
		},
		{
			name: "nested conditionals",
			body: "{{#if a}}A{{#if b}}B{{name}}{{/if}}{{/if}}",
			want: []Node{
				ConditionalNode{Flag: "a", Children: []Node{
					TextNode{Text: "A"},
					ConditionalNode{Flag: "b", Children: []Node{
						TextNode{Text: "B"},
						PlaceholderNode{Name: "name"},
					}},
				}},
			},
		},
		{
			name: "empty conditional",
			body: "{{#if a}}{{/if}}",
			want: []Node{ConditionalNode{Flag: "a"}},
		},
		{
			name: "arabic placeholder name",
			body: "{{الاسم}}",
			want: []Node{PlaceholderNode{Name: "الاسم"}},
		},
		{
			name: "single braces are text",
			body: "a { b } c",
			want: []Node{TextNode{Text: "a { b } c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := Parse(tt.body)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, prog.Nodes); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOffset int
		wantLine   int
	}{
		{name: "unterminated if", body: "A {{#if flag}} B", wantOffset: 2, wantLine: 1},
		{name: "unterminated nested if", body: "{{#if a}}\n{{#if b}}{{/if}}", wantOffset: 0, wantLine: 1},
		{name: "inner unterminated", body: "{{#if a}}x\n{{#if b}}y", wantOffset: 11, wantLine: 2},
		{name: "stray close", body: "x{{/if}}", wantOffset: 1, wantLine: 1},
		{name: "unclosed delimiter", body: "Party: {{name", wantOffset: 7, wantLine: 1},
		{name: "empty tag", body: "{{ }}", wantOffset: 0, wantLine: 1},
		{name: "if without flag", body: "{{#if}}x{{/if}}", wantOffset: 0, wantLine: 1},
		{name: "unknown block", body: "{{#each items}}x{{/each}}", wantOffset: 0, wantLine: 1},
		{name: "unknown closing tag", body: "{{#if a}}x{{/each}}", wantOffset: 10, wantLine: 1},
		{name: "invalid name", body: "{{party name}}", wantOffset: 0, wantLine: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.body)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("error %v does not wrap ErrSyntax", err)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error %T is not a *SyntaxError", err)
			}
			if se.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", se.Offset, tt.wantOffset)
			}
			if se.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", se.Line, tt.wantLine)
			}
		})
	}
}

func TestProgramNames(t *testing.T) {
	prog := MustParse("{{b}} {{#if f2}}{{a}}{{#if f1}}{{b}}{{/if}}{{/if}}")

	if diff := cmp.Diff([]string{"a", "b"}, prog.Placeholders()); diff != "" {
		t.Errorf("Placeholders() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"f1", "f2"}, prog.Flags()); diff != "" {
		t.Errorf("Flags() mismatch (-want +got):\n%s", diff)
	}
}
