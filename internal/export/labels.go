// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"

	"github.com/pdiddy/lexdraft/pkg/types"
)

type labelKey int

const (
	lblReference labelKey = iota
	lblDate
	lblParties
	lblPartyA
	lblPartyB
	lblName
	lblIDNumber
	lblAddress
	lblNationality
	lblGoverningLaw
	lblGovernedBy
	lblLanguage
	lblSignatures
	lblWitnesses
	lblWitness1
	lblWitness2
	lblSignature
	lblWatermark
)

type label struct{ en, ar string }

var labels = map[labelKey]label{
	lblReference:    {"Reference", "الرقم المرجعي"},
	lblDate:         {"Date", "التاريخ"},
	lblParties:      {"Parties", "الأطراف"},
	lblPartyA:       {"Party A", "الطرف الأول"},
	lblPartyB:       {"Party B", "الطرف الثاني"},
	lblName:         {"Name", "الاسم"},
	lblIDNumber:     {"ID Number", "رقم الهوية"},
	lblAddress:      {"Address", "العنوان"},
	lblNationality:  {"Nationality", "الجنسية"},
	lblGoverningLaw: {"Governing Law", "القانون الواجب التطبيق"},
	lblGovernedBy:   {"This document is governed by %s.", "يخضع هذا المستند إلى %s."},
	lblLanguage:     {"Language", "لغة المستند"},
	lblSignatures:   {"Signatures", "التوقيعات"},
	lblWitnesses:    {"Witnesses", "الشهود"},
	lblWitness1:     {"Witness 1", "الشاهد الأول"},
	lblWitness2:     {"Witness 2", "الشاهد الثاني"},
	lblSignature:    {"Signature", "التوقيع"},
	lblWatermark:    {"DRAFT", "مسودة"},
}

var languageNotices = map[types.Language]label{
	types.LangEnglish: {en: "This document is drafted in English."},
	types.LangArabic:  {ar: "حُرر هذا المستند باللغة العربية."},
	types.LangBilingual: {
		en: "This document is drafted in English and Arabic. In case of any discrepancy, the Arabic text prevails.",
		ar: "حُرر هذا المستند باللغتين الإنجليزية والعربية، وفي حال وجود أي تعارض يُعتمد النص العربي.",
	},
}

// text returns the label in lang. Bilingual labels show both, English first.
func text(lang types.Language, k labelKey) string {
	l := labels[k]
	return pick(lang, l.en, l.ar)
}

func textf(lang types.Language, k labelKey, en, ar string) string {
	l := labels[k]
	return pick(lang, fmt.Sprintf(l.en, en), fmt.Sprintf(l.ar, ar))
}

func pick(lang types.Language, en, ar string) string {
	switch lang {
	case types.LangArabic:
		return ar
	case types.LangBilingual:
		return en + " / " + ar
	}
	return en
}

func languageNotice(lang types.Language) string {
	n := languageNotices[lang]
	switch lang {
	case types.LangArabic:
		return n.ar
	case types.LangBilingual:
		return n.en + "\n" + n.ar
	}
	return n.en
}
