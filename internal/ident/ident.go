// Package ident derives the canonical invoice identifier shown to users from
// the original filename, and hosts the filename-based currency policy.
package ident

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/freightdocs/invoice-extractor/constants"
)

// Policy selects how identifiers are recognized in filenames. Exactly one
// policy is active per deployment.
type Policy string

const (
	// PolicyDNPrefix matches DN-prefixed codes like "DN26693" or "DN 26693A".
	PolicyDNPrefix Policy = "dn-prefix"
	// PolicyNumeric matches bare 4-6 digit codes with an optional trailing letter.
	PolicyNumeric Policy = "numeric"
)

var (
	reDNPrefix = regexp.MustCompile(`DN\s*\d+[A-Z]?`)
	reNumeric  = regexp.MustCompile(`\b\d{4,6}[A-Z]?\b`)
)

// ParsePolicy validates an externally supplied policy name.
func ParsePolicy(name string) (Policy, error) {
	switch Policy(name) {
	case PolicyDNPrefix, PolicyNumeric:
		return Policy(name), nil
	default:
		return "", fmt.Errorf("unknown identifier policy %q", name)
	}
}

// SourceID extracts the canonical invoice identifier from filename under the
// given policy. Internal whitespace is stripped from DN codes. If nothing
// matches, the raw filename is returned unchanged.
func SourceID(filename string, policy Policy) string {
	upper := strings.ToUpper(filename)
	switch policy {
	case PolicyNumeric:
		if m := reNumeric.FindString(upper); m != "" {
			return m
		}
	default:
		if m := reDNPrefix.FindString(upper); m != "" {
			return strings.ReplaceAll(m, " ", "")
		}
	}
	return filename
}

// CurrencyFromFilename scans name for a space-delimited USD/CAD/EUR token.
// The match is exact per token: "KLN CAD 1234.pdf" carries CAD, while
// "Invoice_CAD.pdf" does not. Used only by profiles whose currency source is
// the filename; those profiles never read currency from document text.
func CurrencyFromFilename(name string) (string, bool) {
	for _, tok := range strings.Fields(name) {
		t := strings.ToUpper(tok)
		if constants.IsCurrency(t) {
			return t, true
		}
	}
	return "", false
}
