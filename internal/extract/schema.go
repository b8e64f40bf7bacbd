package extract

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/freightdocs/invoice-extractor/internal/entity"
)

// recordSchema pins the assembled record to the fixed 13-key contract:
// every key present, absences as null, numbers typed. A violation here is a
// programming defect, surfaced before the record leaves the parser.
const recordSchema = `{
	"type": "object",
	"additionalProperties": false,
	"required": [
		"timestamp", "filename", "invoice_date", "currency", "shipper",
		"weight_kg", "volume_m3", "chargeable_kg", "chargeable_cbm",
		"pieces", "subtotal", "freight_mode", "freight_rate"
	],
	"properties": {
		"timestamp":      {"type": "string"},
		"filename":       {"type": "string"},
		"invoice_date":   {"type": ["string", "null"], "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
		"currency":       {"enum": ["USD", "CAD", "EUR", null]},
		"shipper":        {"type": ["string", "null"], "minLength": 1},
		"weight_kg":      {"type": ["number", "null"]},
		"volume_m3":      {"type": ["number", "null"]},
		"chargeable_kg":  {"type": ["number", "null"]},
		"chargeable_cbm": {"type": ["number", "null"]},
		"pieces":         {"type": ["integer", "null"], "minimum": 0},
		"subtotal":       {"type": ["number", "null"]},
		"freight_mode":   {"enum": ["Air", null]},
		"freight_rate":   {"type": ["number", "null"]}
	}
}`

var compiledRecordSchema = jsonschema.MustCompileString("record.schema.json", recordSchema)

// ValidateRecord checks rec against the record schema.
func ValidateRecord(rec *entity.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	return compiledRecordSchema.Validate(doc)
}
