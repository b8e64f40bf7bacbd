package batch

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/freightdocs/invoice-extractor/constants"
	"github.com/freightdocs/invoice-extractor/internal/entity"
	"github.com/freightdocs/invoice-extractor/internal/extract"
	"github.com/freightdocs/invoice-extractor/internal/ident"
	"github.com/freightdocs/invoice-extractor/internal/pdftext"
)

// Source is one uploaded or ingested document.
type Source struct {
	Filename string
	Data     []byte
}

// Result collects everything one batch run produced. Failed documents never
// contribute partial records; they are listed by source identifier instead.
type Result struct {
	BatchID  uuid.UUID
	Template string
	Records  []*entity.Record
	Failures []entity.Failure
	Stats    entity.BatchSummary
}

// Driver runs the per-document pipeline (decode, normalize, parse) over a
// batch. Documents are independent; one failed document never halts the rest.
type Driver struct {
	logger *slog.Logger
	pdf    pdftext.Extractor
	parser *extract.Parser
}

func NewDriver(logger *slog.Logger, pdf pdftext.Extractor, parser *extract.Parser) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{logger: logger, pdf: pdf, parser: parser}
}

// Run processes sources in order and returns the aggregate result.
func (d *Driver) Run(ctx context.Context, sources []Source) Result {
	res := Result{
		BatchID:  uuid.New(),
		Template: d.parser.Profile().Name,
	}
	for _, src := range sources {
		if ctx.Err() != nil {
			break
		}
		res.Stats.Total++

		sourceID := ident.SourceID(src.Filename, d.parser.Profile().IdentPolicy)
		rec, failure := d.processOne(src, sourceID)
		if failure != nil {
			res.Failures = append(res.Failures, *failure)
			res.Stats.Failed++
			d.logger.Warn("batch.file.failed",
				"batch_id", res.BatchID,
				"source_id", failure.SourceID,
				"status", string(failure.Status),
				"reason", failure.Reason,
			)
			continue
		}
		res.Records = append(res.Records, rec)
		res.Stats.Succeeded++
		d.logger.Info("batch.file.ok", "batch_id", res.BatchID, "source_id", sourceID)
	}
	d.logger.Info("batch.done",
		"batch_id", res.BatchID,
		"template", res.Template,
		"total", res.Stats.Total,
		"succeeded", res.Stats.Succeeded,
		"failed", res.Stats.Failed,
	)
	return res
}

// processOne contains failures to the single document: a decode or coercion
// error yields a typed Failure, never a partial record.
func (d *Driver) processOne(src Source, sourceID string) (*entity.Record, *entity.Failure) {
	text, err := d.pdf.DocumentText(src.Data)
	if err != nil {
		return nil, &entity.Failure{
			SourceID: sourceID,
			Status:   constants.DocStatusDecodeFailed,
			Reason:   err.Error(),
		}
	}
	rec, err := d.parser.ParseWithFilename(text, sourceID, src.Filename)
	if err != nil {
		return nil, &entity.Failure{
			SourceID: sourceID,
			Status:   constants.DocStatusParseFailed,
			Reason:   err.Error(),
		}
	}
	return rec, nil
}
