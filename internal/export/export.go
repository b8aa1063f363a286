// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export assembles a finished draft into a paginated document
// description for the external PDF renderer. The description carries the
// reference number, localized labels, text direction, party and signature
// blocks, and the content split into pages.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pdiddy/lexdraft/internal/draft"
	"github.com/pdiddy/lexdraft/internal/jurisdiction"
	"github.com/pdiddy/lexdraft/pkg/types"
)

// ErrEmptyDraft is returned when there is no content to export.
var ErrEmptyDraft = errors.New("draft has no content")

const (
	DefaultLinesPerPage = 45
	DefaultCharsPerLine = 90
)

// BlockKind identifies a section of the document description.
type BlockKind string

const (
	BlockHeader       BlockKind = "header"
	BlockParties      BlockKind = "parties"
	BlockContent      BlockKind = "content"
	BlockJurisdiction BlockKind = "jurisdiction"
	BlockLanguage     BlockKind = "language_notice"
	BlockSignatures   BlockKind = "signatures"
	BlockWitnesses    BlockKind = "witnesses"
)

// Column is one side of a parties, signature, or witness block.
type Column struct {
	Label string   `json:"label" yaml:"label"`
	Lines []string `json:"lines,omitempty" yaml:"lines,omitempty"`
}

// Block is one section of the document.
type Block struct {
	Kind    BlockKind `json:"kind" yaml:"kind"`
	Title   string    `json:"title,omitempty" yaml:"title,omitempty"`
	Lines   []string  `json:"lines,omitempty" yaml:"lines,omitempty"`
	Columns []Column  `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// Page holds the content paragraphs placed on one page.
type Page struct {
	Number     int      `json:"number" yaml:"number"`
	Paragraphs []string `json:"paragraphs" yaml:"paragraphs"`
}

// Document is the description handed to the PDF renderer.
type Document struct {
	Reference   string          `json:"reference" yaml:"reference"`
	Title       string          `json:"title" yaml:"title"`
	Language    types.Language  `json:"language" yaml:"language"`
	Locale      string          `json:"locale" yaml:"locale"`
	Direction   types.Direction `json:"direction" yaml:"direction"`
	Align       string          `json:"align" yaml:"align"`
	Watermark   string          `json:"watermark,omitempty" yaml:"watermark,omitempty"`
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	Blocks      []Block         `json:"blocks" yaml:"blocks"`
	Pages       []Page          `json:"pages" yaml:"pages"`
}

// Options tune assembly. Zero values select the defaults.
type Options struct {
	Clock        func() time.Time
	LinesPerPage int
	CharsPerLine int
	// Final omits the draft watermark.
	Final bool
}

// Assemble builds the document description for d. The parties and
// jurisdiction come from req.
func Assemble(d *draft.Draft, req types.GenerationRequest, opts Options) (*Document, error) {
	if d == nil || strings.TrimSpace(d.Content) == "" {
		return nil, ErrEmptyDraft
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.LinesPerPage <= 0 {
		opts.LinesPerPage = DefaultLinesPerPage
	}
	if opts.CharsPerLine <= 0 {
		opts.CharsPerLine = DefaultCharsPerLine
	}

	country, err := jurisdiction.Lookup(req.Jurisdiction.Country)
	if err != nil {
		return nil, fmt.Errorf("assembling %s: %w", d.DocumentType, err)
	}

	lang := d.Language
	now := opts.Clock().UTC()
	doc := &Document{
		Reference:   Reference(d.DocumentType, country.Code, now),
		Title:       d.Title,
		Language:    lang,
		Locale:      lang.Locale(country.Code),
		Direction:   lang.Direction(),
		Align:       "left",
		GeneratedAt: now,
	}
	if lang.RTL() {
		doc.Align = "right"
	}
	if !opts.Final {
		doc.Watermark = text(lang, lblWatermark)
	}

	paragraphs := splitParagraphs(d.Content)
	sub := req.Jurisdiction.SubJurisdiction
	doc.Blocks = []Block{
		{
			Kind:  BlockHeader,
			Title: d.Title,
			Lines: []string{
				text(lang, lblReference) + ": " + doc.Reference,
				text(lang, lblDate) + ": " + now.Format(time.DateOnly),
			},
		},
		{
			Kind:    BlockParties,
			Title:   text(lang, lblParties),
			Columns: []Column{partyColumn(lang, lblPartyA, req.Parties[0]), partyColumn(lang, lblPartyB, req.Parties[1])},
		},
		{Kind: BlockContent, Lines: paragraphs},
		{
			Kind:  BlockJurisdiction,
			Title: text(lang, lblGoverningLaw),
			Lines: []string{textf(lang, lblGovernedBy,
				country.GoverningLaw(types.LangEnglish, sub),
				country.GoverningLaw(types.LangArabic, sub))},
		},
		{Kind: BlockLanguage, Title: text(lang, lblLanguage), Lines: strings.Split(languageNotice(lang), "\n")},
		{
			Kind:  BlockSignatures,
			Title: text(lang, lblSignatures),
			Columns: mirror(lang, []Column{
				signatureColumn(lang, lblPartyA, req.Parties[0].Name),
				signatureColumn(lang, lblPartyB, req.Parties[1].Name),
			}),
		},
		{
			Kind:  BlockWitnesses,
			Title: text(lang, lblWitnesses),
			Columns: mirror(lang, []Column{
				signatureColumn(lang, lblWitness1, ""),
				signatureColumn(lang, lblWitness2, ""),
			}),
		},
	}
	doc.Pages = Paginate(paragraphs, opts.LinesPerPage, opts.CharsPerLine)
	return doc, nil
}

// Reference builds a document reference such as
// RNT-AE-20260301093000-3F2A. The suffix is random, so references are
// unique in practice but not guaranteed.
func Reference(docType types.DocumentType, country string, at time.Time) string {
	if country == "" {
		country = "XX"
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("%s-%s-%s-%s", typeCode(docType), strings.ToUpper(country), at.Format("20060102150405"), suffix)
}

var typeCodes = map[types.DocumentType]string{
	types.DocRental:       "RNT",
	types.DocEmployment:   "EMP",
	types.DocNDA:          "NDA",
	types.DocService:      "SRV",
	types.DocSale:         "SAL",
	types.DocDemandLetter: "DML",
	types.DocCustom:       "CST",
}

func typeCode(t types.DocumentType) string {
	if code, ok := typeCodes[t]; ok {
		return code
	}
	r := []rune(strings.ToUpper(strings.ReplaceAll(string(t), "_", "")))
	if len(r) > 3 {
		r = r[:3]
	}
	if len(r) == 0 {
		return "DOC"
	}
	return string(r)
}

func partyColumn(lang types.Language, k labelKey, p types.Party) Column {
	c := Column{Label: text(lang, k)}
	c.Lines = append(c.Lines, text(lang, lblName)+": "+p.Name)
	c.Lines = append(c.Lines, text(lang, lblIDNumber)+": "+p.IDNumber)
	if p.Address != "" {
		c.Lines = append(c.Lines, text(lang, lblAddress)+": "+p.Address)
	}
	if p.Nationality != "" {
		c.Lines = append(c.Lines, text(lang, lblNationality)+": "+p.Nationality)
	}
	return c
}

func signatureColumn(lang types.Language, k labelKey, name string) Column {
	return Column{
		Label: text(lang, k),
		Lines: []string{
			text(lang, lblName) + ": " + name,
			text(lang, lblSignature) + ": ",
			text(lang, lblDate) + ": ",
		},
	}
}

// mirror reverses column order for right-to-left layouts so the first party
// stays on the reading-start side.
func mirror(lang types.Language, cols []Column) []Column {
	if !lang.RTL() {
		return cols
	}
	out := make([]Column, len(cols))
	for i, c := range cols {
		out[len(cols)-1-i] = c
	}
	return out
}

func splitParagraphs(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	var out []string
	for _, p := range strings.Split(content, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Paginate places paragraphs on pages by estimated line count. Each line of
// a paragraph takes ceil(runes/charsPerLine) lines (at least one), and
// paragraphs are separated by a blank line. A paragraph that does not fit
// the remaining space starts a new page; one longer than a page gets a page
// to itself.
func Paginate(paragraphs []string, linesPerPage, charsPerLine int) []Page {
	var pages []Page
	cur := Page{Number: 1}
	used := 0
	for _, p := range paragraphs {
		n := estimateLines(p, charsPerLine)
		need := n
		if used > 0 {
			need++
		}
		if used > 0 && used+need > linesPerPage {
			pages = append(pages, cur)
			cur = Page{Number: cur.Number + 1}
			used, need = 0, n
		}
		cur.Paragraphs = append(cur.Paragraphs, p)
		used += need
	}
	if len(cur.Paragraphs) > 0 {
		pages = append(pages, cur)
	}
	return pages
}

func estimateLines(p string, charsPerLine int) int {
	total := 0
	for _, line := range strings.Split(p, "\n") {
		n := utf8.RuneCountInString(line)
		lines := (n + charsPerLine - 1) / charsPerLine
		if lines < 1 {
			lines = 1
		}
		total += lines
	}
	return total
}
