package constants

import "strings"

// Currencies holds the currency codes that appear on this invoice layout
// family. Anything else matched by a currency pattern is rejected.
var Currencies = map[string]struct{}{
	"USD": {},
	"CAD": {},
	"EUR": {},
}

// IsCurrency reports whether code (any case) is a supported currency.
func IsCurrency(code string) bool {
	_, ok := Currencies[strings.ToUpper(code)]
	return ok
}
