package entity

import (
	"time"
)

// Record is the assembled output for one invoice document. Every field of the
// export schema is represented; pointer fields distinguish "not found" from a
// found-but-zero value. A nil pointer renders as a blank cell on export.
type Record struct {
	Timestamp     time.Time `json:"timestamp"`
	Filename      string    `json:"filename"`
	InvoiceDate   *string   `json:"invoice_date"`
	Currency      *string   `json:"currency"`
	Shipper       *string   `json:"shipper"`
	WeightKG      *float64  `json:"weight_kg"`
	VolumeM3      *float64  `json:"volume_m3"`
	ChargeableKG  *float64  `json:"chargeable_kg"`
	ChargeableCBM *float64  `json:"chargeable_cbm"`
	Pieces        *int      `json:"pieces"`
	Subtotal      *float64  `json:"subtotal"`
	FreightMode   *string   `json:"freight_mode"`
	FreightRate   *float64  `json:"freight_rate"`
}

// Values returns the record's cell values in the canonical header order
// (constants.Headers). Absent fields are nil.
func (r *Record) Values() []any {
	return []any{
		r.Timestamp.Format("2006-01-02 15:04:05"),
		r.Filename,
		strPtr(r.InvoiceDate),
		strPtr(r.Currency),
		strPtr(r.Shipper),
		floatPtr(r.WeightKG),
		floatPtr(r.VolumeM3),
		floatPtr(r.ChargeableKG),
		floatPtr(r.ChargeableCBM),
		intPtr(r.Pieces),
		floatPtr(r.Subtotal),
		strPtr(r.FreightMode),
		floatPtr(r.FreightRate),
	}
}

func strPtr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func floatPtr(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func intPtr(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
