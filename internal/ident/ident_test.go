package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceID_DNPrefix(t *testing.T) {
	assert.Equal(t, "DN26693", SourceID("Invoice_DN26693_CAD.pdf", PolicyDNPrefix))
	assert.Equal(t, "DN26693A", SourceID("Invoice_DN26693A_CAD.pdf", PolicyDNPrefix))
	// Internal whitespace is stripped, lowercase input is canonicalized.
	assert.Equal(t, "DN26693", SourceID("dn 26693 march.pdf", PolicyDNPrefix))
}

func TestSourceID_DNPrefixFallback(t *testing.T) {
	assert.Equal(t, "scan-001.pdf", SourceID("scan-001.pdf", PolicyDNPrefix))
}

func TestSourceID_Numeric(t *testing.T) {
	assert.Equal(t, "26693", SourceID("KLN 26693 final.pdf", PolicyNumeric))
	assert.Equal(t, "26693A", SourceID("KLN 26693A.pdf", PolicyNumeric))
	// Too short and too long runs do not qualify.
	assert.Equal(t, "invoice 123.pdf", SourceID("invoice 123.pdf", PolicyNumeric))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("dn-prefix")
	assert.NoError(t, err)
	assert.Equal(t, PolicyDNPrefix, p)

	p, err = ParsePolicy("numeric")
	assert.NoError(t, err)
	assert.Equal(t, PolicyNumeric, p)

	_, err = ParsePolicy("uuid")
	assert.Error(t, err)
	_, err = ParsePolicy("")
	assert.Error(t, err)
}

func TestCurrencyFromFilename(t *testing.T) {
	c, ok := CurrencyFromFilename("KLN CAD 26693.pdf")
	assert.True(t, ok)
	assert.Equal(t, "CAD", c)

	c, ok = CurrencyFromFilename("kln usd 1.pdf")
	assert.True(t, ok)
	assert.Equal(t, "USD", c)

	// The token must stand alone; joined forms do not count.
	_, ok = CurrencyFromFilename("Invoice_DN26693A_CAD.pdf")
	assert.False(t, ok)

	_, ok = CurrencyFromFilename("CAD.pdf")
	assert.False(t, ok)
}
