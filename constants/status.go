package constants

// DocStatus is the canonical outcome for one processed document.
type DocStatus string

// Stable values (stored as-is in the batch store).
const (
	DocStatusOK           DocStatus = "OK"            // record assembled
	DocStatusDecodeFailed DocStatus = "DECODE_FAILED" // source bytes unreadable as a PDF
	DocStatusParseFailed  DocStatus = "PARSE_FAILED"  // a matched value could not be coerced
)
