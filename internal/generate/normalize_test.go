// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: "  AGREEMENT\n\nTerms.  ", want: "AGREEMENT\n\nTerms."},
		{name: "crlf", raw: "A\r\nB\rC", want: "A\nB\nC"},
		{name: "fenced", raw: "```text\nAGREEMENT\n```", want: "AGREEMENT"},
		{name: "inner fence kept", raw: "See ```code``` here", want: "See ```code``` here"},
		{name: "html paragraphs", raw: "<p>First &amp; foremost</p><p>Second</p>", want: "First & foremost\nSecond"},
		{name: "html break", raw: "Line one<br/>Line two", want: "Line one\nLine two"},
		{name: "script dropped", raw: "Text<script>alert(1)</script>", want: "Text"},
		{name: "quotes survive sanitizing", raw: `<b>the "Tenant"</b>`, want: `the "Tenant"`},
		{name: "arabic", raw: "<p>عقد إيجار</p>", want: "عقد إيجار"},
		{name: "blank runs collapsed", raw: "A\n\n\n\nB", want: "A\n\nB"},
		{name: "trailing spaces", raw: "A   \nB", want: "A\nB"},
		{name: "comparison is not a tag", raw: "if a < b then", want: "if a < b then"},
		{name: "blank marker kept", raw: "Rent is payable to <Landlord Name> monthly.", want: "Rent is payable to <Landlord Name> monthly."},
		{name: "lowercase marker kept", raw: "The Tenant pays AED <amount> upon signing.", want: "The Tenant pays AED <amount> upon signing."},
		{name: "comparisons without spaces", raw: "Clause 3 applies if a<b and c>d.", want: "Clause 3 applies if a<b and c>d."},
		{name: "marker inside html", raw: "<p>Payable to <Landlord Name></p><p>Clause a<b and c>d</p>", want: "Payable to <Landlord Name>\nClause a<b and c>d"},
		{name: "html with attributes", raw: `<div class="clause">One</div>`, want: "One"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "```\n```", "<p></p>"} {
		_, err := Normalize(raw)
		require.Error(t, err, "%q", raw)

		var se *ServiceError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, KindMalformed, se.Kind)
	}
}
