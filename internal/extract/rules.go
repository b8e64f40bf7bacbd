package extract

import (
	"regexp"
	"strings"
)

// Field names one extractable invoice field.
type Field string

const (
	FieldInvoiceDate    Field = "invoice_date"
	FieldCurrency       Field = "currency"
	FieldShipper        Field = "shipper"
	FieldPieces         Field = "pieces"
	FieldGrossWeightKG  Field = "gross_weight_kg"
	FieldVolumeWeightKG Field = "volume_weight_kg"
	FieldFreightRate    Field = "freight_rate"
	FieldSubtotal       Field = "subtotal"
)

// Extractor maps normalized document text to an optional raw value.
// Extractors are independent of each other; a non-match is a normal
// condition, never an error.
type Extractor func(doc string) (string, bool)

// patternExtractor returns the given capture group of the first match.
func patternExtractor(re *regexp.Regexp, group int) Extractor {
	return func(doc string) (string, bool) {
		m := re.FindStringSubmatch(doc)
		if len(m) <= group || m[group] == "" {
			return "", false
		}
		return m[group], true
	}
}

// lastOnLineExtractor finds the first line that contains token
// (case-insensitive) together with at least one valueRe match, and returns
// the last match on that line. Used for layouts where the amount column is
// the rightmost figure on a charge line. Token lines without a figure are
// skipped: the letterhead mentions the phrase too.
func lastOnLineExtractor(token string, valueRe *regexp.Regexp) Extractor {
	token = strings.ToUpper(token)
	return func(doc string) (string, bool) {
		for _, line := range strings.Split(doc, "\n") {
			if !strings.Contains(strings.ToUpper(line), token) {
				continue
			}
			all := valueRe.FindAllString(line, -1)
			if len(all) == 0 {
				continue
			}
			return all[len(all)-1], true
		}
		return "", false
	}
}

// Shared patterns across both template profiles.
var (
	// Label and date may be separated by a short run of arbitrary text
	// (words, punctuation, newlines); the window is bounded and non-greedy.
	reInvoiceDate = regexp.MustCompile(`(?is)\bdate\b.{0,40}?(\d{4}-\d{2}-\d{2})`)

	reCurrency = regexp.MustCompile(`(?i)\b(USD|CAD|EUR)\b`)

	// Bilingual label as printed on the layout family. The capture greedily
	// runs over name-like characters, so it can over-capture trailing words
	// or stop short at unusual punctuation. Known limitation of the layout,
	// kept as-is.
	reShipper = regexp.MustCompile(`(?i)shipper\s*(?:/\s*exp[ée]diteur)?\s*[:：]?\s*([\w .,&()'-]+)`)

	rePieces = regexp.MustCompile(`(?i)(\d+)\s*PACKAGE`)

	reGrossWeight  = regexp.MustCompile(`(?i)gross\s+weight\s*[:：]?\s*([\d,.]+)\s*KG`)
	reVolumeWeight = regexp.MustCompile(`(?i)volume\s+weight\s*[:：]?\s*([\d,.]+)\s*KG`)

	// A money figure with exactly two fraction digits, thousands commas allowed.
	reMoney = regexp.MustCompile(`\d[\d,]*\.\d{2}`)
)

// Template-specific patterns.
var (
	// template-a: subtotal sits near a "Total Charges" label, optionally
	// followed by its currency code.
	reSubtotalA = regexp.MustCompile(`(?is)total\s*charges?\b.{0,60}?(\d[\d,]*\.\d{2})(?:\s*(?:USD|CAD|EUR))?`)

	// template-b: amount directly after the charge label, before the currency.
	reFreightB = regexp.MustCompile(`(?i)AIR\s+FREIGHT\s*[:：]?\s*(\d[\d,]*\.?\d*)\s*(?:USD|CAD|EUR)`)

	// template-b: amount directly before a "USD Total" phrase.
	reSubtotalB = regexp.MustCompile(`(?i)(\d[\d,]*\.?\d*)\s*USD\s+Total`)
)
