// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language identifies the language a document is drafted in.
type Language string

const (
	LangEnglish   Language = "en"
	LangArabic    Language = "ar"
	LangBilingual Language = "bilingual"
)

// Direction is the horizontal text direction of a rendered document.
type Direction string

const (
	DirLTR Direction = "ltr"
	DirRTL Direction = "rtl"
)

// rtlScripts lists ISO 15924 scripts written right to left.
var rtlScripts = map[string]bool{
	"Arab": true,
	"Hebr": true,
	"Syrc": true,
	"Thaa": true,
	"Nkoo": true,
}

// ParseLanguage accepts a BCP 47 tag ("ar", "ar-AE", "en-GB") or the
// literal "bilingual" and returns the supported Language it maps to.
func ParseLanguage(s string) (Language, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return "", fmt.Errorf("language is empty")
	case string(LangBilingual), "en-ar", "ar-en":
		return LangBilingual, nil
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parsing language %q: %w", s, err)
	}
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return LangEnglish, nil
	case "ar":
		return LangArabic, nil
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	switch l {
	case LangEnglish, LangArabic, LangBilingual:
		return true
	}
	return false
}

// Tag returns the BCP 47 tag of the primary language. Bilingual documents
// lead with English.
func (l Language) Tag() language.Tag {
	if l == LangArabic {
		return language.Arabic
	}
	return language.English
}

// Locale combines the language with an ISO 3166 region (e.g. "ar-AE").
// An unknown region yields the bare language tag.
func (l Language) Locale(country string) string {
	tag := l.Tag()
	region, err := language.ParseRegion(country)
	if err != nil {
		return tag.String()
	}
	loc, err := language.Compose(tag, region)
	if err != nil {
		return tag.String()
	}
	return loc.String()
}

// Direction derives the layout direction from the script of the language.
// Bilingual documents are laid out left to right.
func (l Language) Direction() Direction {
	if l == LangBilingual {
		return DirLTR
	}
	script, _ := l.Tag().Script()
	if rtlScripts[script.String()] {
		return DirRTL
	}
	return DirLTR
}

// RTL reports whether the language is laid out right to left.
func (l Language) RTL() bool {
	return l.Direction() == DirRTL
}
