package extract

import (
	"fmt"

	"github.com/freightdocs/invoice-extractor/internal/ident"
)

// CurrencySource says where a profile reads the currency from. The two
// sources are mutually exclusive; a profile never consults both.
type CurrencySource int

const (
	CurrencyFromDocument CurrencySource = iota
	CurrencyFromFilename
)

// Profile is one named, fixed rule-set variant of the invoice layout family.
// A deployment selects exactly one profile at startup and never mixes them.
type Profile struct {
	Name           string
	CurrencySource CurrencySource
	IdentPolicy    ident.Policy

	rules map[Field]Extractor
}

// Extract runs the profile's recognizer for field against doc. Absence of a
// rule or of a match both report not-found.
func (p *Profile) Extract(field Field, doc string) (string, bool) {
	ex, ok := p.rules[field]
	if !ok {
		return "", false
	}
	return ex(doc)
}

// TemplateA is the layout variant with the currency code printed in the
// document body, DN-prefixed invoice numbers, the freight amount as the
// rightmost figure on the "AIR FREIGHT" charge line, and the subtotal next to
// a "Total Charges" label.
func TemplateA() *Profile {
	return &Profile{
		Name:           "template-a",
		CurrencySource: CurrencyFromDocument,
		IdentPolicy:    ident.PolicyDNPrefix,
		rules: map[Field]Extractor{
			FieldInvoiceDate:    patternExtractor(reInvoiceDate, 1),
			FieldCurrency:       patternExtractor(reCurrency, 1),
			FieldShipper:        patternExtractor(reShipper, 1),
			FieldPieces:         patternExtractor(rePieces, 1),
			FieldGrossWeightKG:  patternExtractor(reGrossWeight, 1),
			FieldVolumeWeightKG: patternExtractor(reVolumeWeight, 1),
			FieldFreightRate:    lastOnLineExtractor("AIR FREIGHT", reMoney),
			FieldSubtotal:       patternExtractor(reSubtotalA, 1),
		},
	}
}

// TemplateB is the layout variant that carries no usable currency in the
// body (it is read from the filename instead), uses bare numeric invoice
// codes, prints the freight amount directly after its label, and totals as
// "<amount> USD Total".
func TemplateB() *Profile {
	return &Profile{
		Name:           "template-b",
		CurrencySource: CurrencyFromFilename,
		IdentPolicy:    ident.PolicyNumeric,
		rules: map[Field]Extractor{
			FieldInvoiceDate:    patternExtractor(reInvoiceDate, 1),
			FieldShipper:        patternExtractor(reShipper, 1),
			FieldPieces:         patternExtractor(rePieces, 1),
			FieldGrossWeightKG:  patternExtractor(reGrossWeight, 1),
			FieldVolumeWeightKG: patternExtractor(reVolumeWeight, 1),
			FieldFreightRate:    patternExtractor(reFreightB, 1),
			FieldSubtotal:       patternExtractor(reSubtotalB, 1),
		},
	}
}

// ProfileByName resolves a configured template name.
func ProfileByName(name string) (*Profile, error) {
	switch name {
	case "template-a", "":
		return TemplateA(), nil
	case "template-b":
		return TemplateB(), nil
	default:
		return nil, fmt.Errorf("unknown invoice template %q", name)
	}
}
