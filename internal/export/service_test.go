package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/freightdocs/invoice-extractor/constants"
	"github.com/freightdocs/invoice-extractor/internal/entity"
)

func TestWriteXLSX_HeaderOnly(t *testing.T) {
	data, err := NewService(nil).WriteXLSX(nil)
	require.NoError(t, err)

	rows := readRows(t, data)
	require.Len(t, rows, 1)
	assert.Equal(t, constants.Headers, rows[0])
}

func TestWriteXLSX_RecordRow(t *testing.T) {
	date := "2024-03-15"
	currency := "CAD"
	shipper := "ACME FORWARDING LTD"
	weight := 120.5
	volume := 60.0
	chargeable := 10020.0
	pieces := 5
	mode := "Air"
	rate := 980.0

	rec := &entity.Record{
		Timestamp:     time.Date(2024, 3, 16, 9, 30, 0, 0, time.UTC),
		Filename:      "DN26693",
		InvoiceDate:   &date,
		Currency:      &currency,
		Shipper:       &shipper,
		WeightKG:      &weight,
		VolumeM3:      &volume,
		ChargeableKG:  &chargeable,
		ChargeableCBM: &volume,
		Pieces:        &pieces,
		FreightMode:   &mode,
		FreightRate:   &rate,
	}

	data, err := NewService(nil).WriteXLSX([]*entity.Record{rec})
	require.NoError(t, err)

	rows := readRows(t, data)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "2024-03-16 09:30:00", row[0])
	assert.Equal(t, "DN26693", row[1])
	assert.Equal(t, "2024-03-15", row[2])
	assert.Equal(t, "CAD", row[3])
	assert.Equal(t, "ACME FORWARDING LTD", row[4])
	assert.Equal(t, "120.5", row[5])
	assert.Equal(t, "60", row[6])
	assert.Equal(t, "10020", row[7])
	assert.Equal(t, "60", row[8])
	assert.Equal(t, "5", row[9])
	// Subtotal was absent: blank cell, not zero.
	if len(row) > 10 {
		assert.Equal(t, "", row[10])
	}
}

func TestWriteXLSX_AbsentValuesBlank(t *testing.T) {
	rec := &entity.Record{
		Timestamp: time.Date(2024, 3, 16, 9, 30, 0, 0, time.UTC),
		Filename:  "DN1",
	}

	data, err := NewService(nil).WriteXLSX([]*entity.Record{rec})
	require.NoError(t, err)

	rows := readRows(t, data)
	require.Len(t, rows, 2)
	// Only the first two cells carry values.
	for i, cell := range rows[1] {
		if i < 2 {
			assert.NotEmpty(t, cell)
		} else {
			assert.Empty(t, cell)
		}
	}
}

func readRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	return rows
}
