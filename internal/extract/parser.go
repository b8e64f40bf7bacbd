package extract

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/freightdocs/invoice-extractor/internal/entity"
	"github.com/freightdocs/invoice-extractor/internal/ident"
)

// Parser turns normalized document text into one invoice record using a
// fixed profile. It is stateless across documents and safe for concurrent
// use by batch callers.
type Parser struct {
	logger  *slog.Logger
	profile *Profile
}

func NewParser(logger *slog.Logger, profile *Profile) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger, profile: profile}
}

func (p *Parser) Profile() *Profile {
	return p.profile
}

// Parse extracts, coerces, derives and assembles one record for the document.
// Fields whose patterns do not match stay absent. A matched value that fails
// coercion aborts the document: no partial record is ever returned.
func (p *Parser) Parse(documentText, sourceID string) (*entity.Record, error) {
	return p.ParseWithFilename(documentText, sourceID, sourceID)
}

// ParseWithFilename is Parse with the original filename kept alongside the
// derived identifier. Profiles whose currency source is the filename scan the
// original name, since identifier derivation may strip the currency token.
func (p *Parser) ParseWithFilename(documentText, sourceID, filename string) (*entity.Record, error) {
	rec := &entity.Record{
		Timestamp: time.Now(),
		Filename:  sourceID,
	}

	if raw, ok := p.profile.Extract(FieldInvoiceDate, documentText); ok {
		d, err := coerceDate(FieldInvoiceDate, raw)
		if err != nil {
			return nil, err
		}
		rec.InvoiceDate = &d
	}

	switch p.profile.CurrencySource {
	case CurrencyFromFilename:
		if c, ok := ident.CurrencyFromFilename(filename); ok {
			rec.Currency = &c
		}
	default:
		if raw, ok := p.profile.Extract(FieldCurrency, documentText); ok {
			c, err := coerceCurrency(FieldCurrency, raw)
			if err != nil {
				return nil, err
			}
			rec.Currency = &c
		}
	}

	if raw, ok := p.profile.Extract(FieldShipper, documentText); ok {
		s := strings.TrimSpace(raw)
		if s != "" {
			rec.Shipper = &s
		}
	}

	if raw, ok := p.profile.Extract(FieldPieces, documentText); ok {
		n, err := coerceInt(FieldPieces, raw)
		if err != nil {
			return nil, err
		}
		rec.Pieces = &n
	}

	if raw, ok := p.profile.Extract(FieldGrossWeightKG, documentText); ok {
		w, err := coerceDecimal(FieldGrossWeightKG, raw)
		if err != nil {
			return nil, err
		}
		rec.WeightKG = &w
	}

	if raw, ok := p.profile.Extract(FieldVolumeWeightKG, documentText); ok {
		vw, err := coerceDecimal(FieldVolumeWeightKG, raw)
		if err != nil {
			return nil, err
		}
		v := volumeM3(vw)
		rec.VolumeM3 = &v
	}

	if raw, ok := p.profile.Extract(FieldFreightRate, documentText); ok {
		r, err := coerceDecimal(FieldFreightRate, raw)
		if err != nil {
			return nil, err
		}
		mode := "Air"
		rec.FreightRate = &r
		rec.FreightMode = &mode
	}

	if raw, ok := p.profile.Extract(FieldSubtotal, documentText); ok {
		s, err := coerceDecimal(FieldSubtotal, raw)
		if err != nil {
			return nil, err
		}
		rec.Subtotal = &s
	}

	// Chargeable weight needs both figures; chargeable volume only the volume.
	if rec.WeightKG != nil && rec.VolumeM3 != nil {
		c := chargeableKG(*rec.WeightKG, *rec.VolumeM3)
		rec.ChargeableKG = &c
	}
	if rec.VolumeM3 != nil {
		cbm := *rec.VolumeM3
		rec.ChargeableCBM = &cbm
	}

	if err := ValidateRecord(rec); err != nil {
		return nil, fmt.Errorf("record validation: %w", err)
	}

	p.logger.Debug("extract.parse.ok",
		"source_id", sourceID,
		"template", p.profile.Name,
		"has_weight", rec.WeightKG != nil,
		"has_volume", rec.VolumeM3 != nil,
	)
	return rec, nil
}
