// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jurisdiction describes the GCC countries documents can be drafted
// for: localized country and sub-jurisdiction names, the governing-law
// phrase, and the national currency.
package jurisdiction

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/pdiddy/lexdraft/pkg/types"
)

// ErrUnknownCountry is returned for a country code outside the GCC table.
var ErrUnknownCountry = errors.New("unknown jurisdiction")

// Country is one GCC member state.
type Country struct {
	Code     string
	Currency currency.Unit

	name map[types.Language]string
	// laws is the body of law named in a governing-law clause.
	laws map[types.Language]string
	// currencyName is the localized currency name.
	currencyName map[types.Language]string
}

var countries = map[string]Country{
	"AE": {
		Code:         "AE",
		name:         bi("United Arab Emirates", "الإمارات العربية المتحدة"),
		laws:         bi("the laws of the United Arab Emirates", "قوانين دولة الإمارات العربية المتحدة"),
		currencyName: bi("UAE Dirham", "درهم إماراتي"),
	},
	"SA": {
		Code:         "SA",
		name:         bi("Kingdom of Saudi Arabia", "المملكة العربية السعودية"),
		laws:         bi("the laws of the Kingdom of Saudi Arabia", "أنظمة المملكة العربية السعودية"),
		currencyName: bi("Saudi Riyal", "ريال سعودي"),
	},
	"QA": {
		Code:         "QA",
		name:         bi("State of Qatar", "دولة قطر"),
		laws:         bi("the laws of the State of Qatar", "قوانين دولة قطر"),
		currencyName: bi("Qatari Riyal", "ريال قطري"),
	},
	"KW": {
		Code:         "KW",
		name:         bi("State of Kuwait", "دولة الكويت"),
		laws:         bi("the laws of the State of Kuwait", "قوانين دولة الكويت"),
		currencyName: bi("Kuwaiti Dinar", "دينار كويتي"),
	},
	"BH": {
		Code:         "BH",
		name:         bi("Kingdom of Bahrain", "مملكة البحرين"),
		laws:         bi("the laws of the Kingdom of Bahrain", "قوانين مملكة البحرين"),
		currencyName: bi("Bahraini Dinar", "دينار بحريني"),
	},
	"OM": {
		Code:         "OM",
		name:         bi("Sultanate of Oman", "سلطنة عمان"),
		laws:         bi("the laws of the Sultanate of Oman", "قوانين سلطنة عمان"),
		currencyName: bi("Omani Rial", "ريال عماني"),
	},
}

// freeZones have their own civil and commercial law, which replaces the
// national law in a governing-law clause.
var freeZones = map[string]map[types.Language]string{
	"DIFC": bi("the laws of the Dubai International Financial Centre", "قوانين مركز دبي المالي العالمي"),
	"ADGM": bi("the laws of the Abu Dhabi Global Market", "قوانين سوق أبوظبي العالمي"),
	"QFC":  bi("the laws and regulations of the Qatar Financial Centre", "قوانين ولوائح مركز قطر للمال"),
}

// subNames holds Arabic names of common emirates, cities, and free zones.
var subNames = map[string]string{
	"abu dhabi":      "أبوظبي",
	"dubai":          "دبي",
	"sharjah":        "الشارقة",
	"ajman":          "عجمان",
	"ras al khaimah": "رأس الخيمة",
	"fujairah":       "الفجيرة",
	"umm al quwain":  "أم القيوين",
	"difc":           "مركز دبي المالي العالمي",
	"adgm":           "سوق أبوظبي العالمي",
	"riyadh":         "الرياض",
	"jeddah":         "جدة",
	"dammam":         "الدمام",
	"doha":           "الدوحة",
	"qfc":            "مركز قطر للمال",
	"kuwait city":    "مدينة الكويت",
	"manama":         "المنامة",
	"muscat":         "مسقط",
}

func bi(en, ar string) map[types.Language]string {
	return map[types.Language]string{types.LangEnglish: en, types.LangArabic: ar}
}

// Lookup returns the country for an ISO 3166-1 alpha-2 code.
func Lookup(code string) (Country, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	c, ok := countries[code]
	if !ok {
		return Country{}, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownCountry, code, strings.Join(Codes(), ", "))
	}
	region, err := language.ParseRegion(code)
	if err != nil {
		return Country{}, fmt.Errorf("parsing region %s: %w", code, err)
	}
	unit, ok := currency.FromRegion(region)
	if !ok {
		return Country{}, fmt.Errorf("no currency for region %s", code)
	}
	c.Currency = unit
	return c, nil
}

// Codes returns the supported country codes, sorted.
func Codes() []string {
	codes := make([]string, 0, len(countries))
	for code := range countries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Name returns the country name in lang.
func (c Country) Name(lang types.Language) string {
	return localized(c.name, lang)
}

// CurrencyName returns the localized currency name.
func (c Country) CurrencyName(lang types.Language) string {
	return localized(c.currencyName, lang)
}

// CurrencyCode returns the ISO 4217 code (e.g. "AED").
func (c Country) CurrencyCode() string {
	return c.Currency.String()
}

// GoverningLaw returns the body of law for a governing-law clause. A free
// zone sub-jurisdiction replaces the national law; any other sub-jurisdiction
// qualifies it.
func (c Country) GoverningLaw(lang types.Language, sub string) string {
	if zone, ok := freeZones[strings.ToUpper(strings.TrimSpace(sub))]; ok {
		return localized(zone, lang)
	}
	if sub == "" {
		return localized(c.laws, lang)
	}
	en := c.laws[types.LangEnglish] + " as applied in " + sub
	ar := c.laws[types.LangArabic] + " المعمول بها في " + SubName(types.LangArabic, sub)
	return localized(bi(en, ar), lang)
}

// SubName localizes a sub-jurisdiction name. Unknown names are returned
// unchanged.
func SubName(lang types.Language, sub string) string {
	ar, ok := subNames[strings.ToLower(strings.TrimSpace(sub))]
	if !ok || sub == "" {
		return sub
	}
	switch lang {
	case types.LangArabic:
		return ar
	case types.LangBilingual:
		return sub + " / " + ar
	}
	return sub
}

func localized(m map[types.Language]string, lang types.Language) string {
	if lang == types.LangBilingual {
		return m[types.LangEnglish] + " / " + m[types.LangArabic]
	}
	if v, ok := m[lang]; ok {
		return v
	}
	return m[types.LangEnglish]
}

// FormatAmount groups digits and fixes two decimal places ("5000" becomes
// "5,000.00"). Values that are not plain numbers are returned unchanged.
// Latin digits are used in every language, as is usual in GCC contracts.
func FormatAmount(s string) string {
	raw := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return s
	}
	p := message.NewPrinter(language.English)
	return p.Sprint(number.Decimal(v, number.Scale(2)))
}
