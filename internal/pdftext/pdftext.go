// Package pdftext is the boundary to the PDF layer: it turns source bytes
// into per-page text and normalizes the pages into one document string. The
// rest of the pipeline never touches PDF structure.
package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Extractor lets the batch driver and server stub out PDF decoding in tests.
type Extractor interface {
	DocumentText(data []byte) (string, error)
}

// Reader extracts text with ledongthuc/pdf after a structural pdfcpu
// validation pass. A failure at either step means the document cannot be
// decoded at all; the caller aborts that document.
type Reader struct {
	conf *model.Configuration
}

func NewReader() *Reader {
	return &Reader{conf: model.NewDefaultConfiguration()}
}

// PageTexts returns one string per page, in page order. A page that yields
// no extractable text contributes an empty string, not an error.
func (r *Reader) PageTexts(data []byte) ([]string, error) {
	if err := api.Validate(bytes.NewReader(data), r.conf); err != nil {
		return nil, fmt.Errorf("validate pdf: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	total := reader.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			pages = append(pages, "")
			continue
		}
		var b strings.Builder
		for _, row := range rows {
			for j, word := range row.Content {
				if j > 0 {
					b.WriteString(" ")
				}
				b.WriteString(word.S)
			}
			b.WriteString("\n")
		}
		pages = append(pages, strings.TrimRight(b.String(), "\n"))
	}
	return pages, nil
}

// DocumentText is PageTexts followed by Normalize.
func (r *Reader) DocumentText(data []byte) (string, error) {
	pages, err := r.PageTexts(data)
	if err != nil {
		return "", err
	}
	return Normalize(pages), nil
}

// Normalize joins page texts with newline separators. Empty entries stand in
// for pages with no extractable text, so page order is preserved.
func Normalize(pages []string) string {
	return strings.Join(pages, "\n")
}
