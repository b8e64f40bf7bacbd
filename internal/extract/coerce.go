package extract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/freightdocs/invoice-extractor/constants"
)

// CoercionError marks a matched raw value that could not be converted to its
// typed form. Unlike a non-match this is a defect in the document or the
// pattern, so it aborts the whole document instead of recording an absence.
type CoercionError struct {
	Field Field
	Raw   string
	Cause error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("coerce %s from %q: %v", e.Field, e.Raw, e.Cause)
}

func (e *CoercionError) Unwrap() error {
	return e.Cause
}

// coerceDecimal parses a decimal after stripping thousands-separator commas.
func coerceDecimal(field Field, raw string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &CoercionError{Field: field, Raw: raw, Cause: err}
	}
	return v, nil
}

// coerceInt requires an unbroken digit run.
func coerceInt(field Field, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &CoercionError{Field: field, Raw: raw, Cause: err}
	}
	return v, nil
}

// coerceDate validates the ISO form and keeps it as a string.
func coerceDate(field Field, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", &CoercionError{Field: field, Raw: raw, Cause: err}
	}
	return s, nil
}

// coerceCurrency uppercases and checks the enumerated codes.
func coerceCurrency(field Field, raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if !constants.IsCurrency(s) {
		return "", &CoercionError{Field: field, Raw: raw, Cause: fmt.Errorf("not a supported currency")}
	}
	return s, nil
}
