package constants

// Headers is the canonical column order for invoice exports. The record
// assembler and the XLSX exporter both consume this list; it is never
// duplicated elsewhere.
var Headers = []string{
	"Timestamp",
	"Filename",
	"Invoice_Date",
	"Currency",
	"Shipper",
	"Weight_KG",
	"Volume_M3",
	"Chargeable_KG",
	"Chargeable_CBM",
	"Pieces",
	"Subtotal",
	"Freight_Mode",
	"Freight_Rate",
}
