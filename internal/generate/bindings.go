// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/lexdraft/internal/jurisdiction"
	"github.com/pdiddy/lexdraft/internal/template"
	"github.com/pdiddy/lexdraft/pkg/types"
)

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// BindingsFor builds template bindings for req in lang. Party fields become
// party_a_* and party_b_*; jurisdiction fields are localized; details are
// copied with amounts and ISO dates formatted. Detail values that read as
// booleans ("yes", "false") become flags instead of values.
func BindingsFor(req types.GenerationRequest, lang types.Language) (template.Bindings, error) {
	country, err := jurisdiction.Lookup(req.Jurisdiction.Country)
	if err != nil {
		return template.Bindings{}, err
	}

	b := template.Bindings{
		Values: make(map[string]string),
		Flags:  make(map[string]bool),
	}
	for i, p := range req.Parties {
		prefix := partyKey(i) + "_"
		set(b.Values, prefix+"name", p.Name)
		set(b.Values, prefix+"id", p.IDNumber)
		set(b.Values, prefix+"address", p.Address)
		set(b.Values, prefix+"nationality", p.Nationality)
		set(b.Values, prefix+"phone", p.Phone)
		set(b.Values, prefix+"email", p.Email)
		set(b.Values, prefix+"role", p.Role)
	}

	b.Values["country_name"] = country.Name(lang)
	set(b.Values, "sub_jurisdiction", jurisdiction.SubName(lang, req.Jurisdiction.SubJurisdiction))
	b.Values["governing_law"] = country.GoverningLaw(lang, req.Jurisdiction.SubJurisdiction)
	if lang == types.LangArabic {
		b.Values["currency"] = country.CurrencyName(lang)
	} else {
		b.Values["currency"] = country.CurrencyCode()
	}

	for k, v := range req.Details {
		v = strings.TrimSpace(v)
		if flag, ok := parseFlag(v); ok {
			b.Flags[k] = flag
			continue
		}
		switch {
		case isAmountKey(k):
			v = jurisdiction.FormatAmount(v)
		case isDateKey(k):
			v = formatDate(lang, v)
		}
		set(b.Values, k, v)
	}
	return b, nil
}

func set(m map[string]string, k, v string) {
	if v = strings.TrimSpace(v); v != "" {
		m[k] = v
	}
}

// parseFlag accepts only the words yes, no, true, and false, in any case.
func parseFlag(v string) (bool, bool) {
	switch strings.ToLower(v) {
	case "yes", "true":
		return true, true
	case "no", "false":
		return false, true
	}
	return false, false
}

func isAmountKey(k string) bool {
	return strings.HasSuffix(k, "_amount") || strings.HasPrefix(k, "amount_") || k == "salary" || k == "price"
}

func isDateKey(k string) bool {
	return strings.HasSuffix(k, "_date") || k == "deadline"
}

// formatDate renders an ISO date (2026-01-02) as "2 January 2026" or
// "2 يناير 2026". Anything else is returned unchanged.
func formatDate(lang types.Language, v string) string {
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return v
	}
	en := t.Format("2 January 2006")
	ar := fmt.Sprintf("%d %s %d", t.Day(), arabicMonths[t.Month()-1], t.Year())
	switch lang {
	case types.LangArabic:
		return ar
	case types.LangBilingual:
		return en + " / " + ar
	}
	return en
}
