// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// htmlTag matches markup tags by name. Attributes must carry a value,
	// so text such as "<Landlord Name>" or "a<b and c>d" is not a tag.
	htmlTag = regexp.MustCompile(`(?i)</?(?:html|head|body|title|meta|style|script|p|br|hr|div|span|h[1-6]|ul|ol|li|table|thead|tbody|tr|td|th|strong|em|b|i|u|blockquote|pre|code|section|article)` +
		`(?:\s+[a-z-]+=(?:"[^"]*"|'[^']*'|[^\s"'<>]+))*\s*/?>`)
	breakTag   = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|h[1-6]|li|tr)>`)
	blankRuns  = regexp.MustCompile(`\n{3,}`)
	fenceOpen  = regexp.MustCompile("^```[a-zA-Z0-9_-]*\n")
	strictHTML = bluemonday.StrictPolicy()
	trailingWS = regexp.MustCompile(`[ \t]+\n`)
)

// escapeText escapes every "<" that does not open one of the tag spans, so
// the sanitizer keeps it as text.
func escapeText(s string, tags [][]int) string {
	var b strings.Builder
	last := 0
	for _, t := range tags {
		b.WriteString(strings.ReplaceAll(s[last:t[0]], "<", "&lt;"))
		b.WriteString(s[t[0]:t[1]])
		last = t[1]
	}
	b.WriteString(strings.ReplaceAll(s[last:], "<", "&lt;"))
	return b.String()
}

// Normalize turns a raw service reply into document text: line endings are
// unified, a wrapping Markdown code fence is removed, HTML markup is
// stripped when the reply contains known HTML tags (other angle-bracket text
// such as "<Landlord Name>" is kept), and surrounding whitespace is trimmed. An empty result is a
// KindMalformed ServiceError.
func Normalize(raw string) (string, error) {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSpace(s)

	if loc := fenceOpen.FindStringIndex(s); loc != nil && strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(s[loc[1] : len(s)-3])
	}

	if tags := htmlTag.FindAllStringIndex(s, -1); tags != nil {
		s = breakTag.ReplaceAllString(escapeText(s, tags), "$0\n")
		s = html.UnescapeString(strictHTML.Sanitize(s))
	}

	s = trailingWS.ReplaceAllString(s, "\n")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	s = strings.TrimSpace(s)
	if s == "" {
		return "", malformed("response contained no document text")
	}
	return s, nil
}
