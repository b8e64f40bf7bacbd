// Package export renders batches of invoice records as XLSX workbooks.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/freightdocs/invoice-extractor/constants"
	"github.com/freightdocs/invoice-extractor/internal/entity"
)

const sheetName = "Invoices"

// Service writes the fixed 13-column invoice sheet. Column order comes from
// constants.Headers, the same list the record assembler uses.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WriteXLSX returns a workbook with the header row and one row per record.
// Absent values render as blank cells. Zero records still yields a valid
// header-only workbook.
func (s *Service) WriteXLSX(records []*entity.Record) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range constants.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for rowIdx, rec := range records {
		for colIdx, v := range rec.Values() {
			if v == nil {
				continue // blank cell marks an absent field
			}
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// Widen the text-heavy columns
	_ = f.SetColWidth(sheetName, "A", "A", 20) // timestamp
	_ = f.SetColWidth(sheetName, "B", "B", 18) // invoice id
	_ = f.SetColWidth(sheetName, "E", "E", 32) // shipper
	_ = f.SetColWidth(sheetName, "F", "M", 14) // figures

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
