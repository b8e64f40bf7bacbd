// Package store persists batch runs in SQLite so past extractions can be
// audited without re-parsing the source documents.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/freightdocs/invoice-extractor/internal/batch"
)

const schema = `
CREATE TABLE IF NOT EXISTS batches (
	id         TEXT PRIMARY KEY,
	template   TEXT NOT NULL,
	started_at TEXT NOT NULL,
	total      INTEGER NOT NULL,
	succeeded  INTEGER NOT NULL,
	failed     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS records (
	id             TEXT PRIMARY KEY,
	batch_id       TEXT NOT NULL REFERENCES batches(id),
	ts             TEXT NOT NULL,
	filename       TEXT NOT NULL,
	invoice_date   TEXT,
	currency       TEXT,
	shipper        TEXT,
	weight_kg      REAL,
	volume_m3      REAL,
	chargeable_kg  REAL,
	chargeable_cbm REAL,
	pieces         INTEGER,
	subtotal       REAL,
	freight_mode   TEXT,
	freight_rate   REAL
);
CREATE TABLE IF NOT EXISTS failures (
	id        TEXT PRIMARY KEY,
	batch_id  TEXT NOT NULL REFERENCES batches(id),
	source_id TEXT NOT NULL,
	status    TEXT NOT NULL,
	reason    TEXT NOT NULL
);
`

// Store wraps the SQLite handle used for batch history.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the database at path and applies the schema.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("opening batch store", "path", path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database handle.
func (s *Store) Close() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("failed to close batch store", "error", err)
	}
}

// SaveBatch writes one batch run with all its records and failures in a
// single transaction.
func (s *Store) SaveBatch(ctx context.Context, res batch.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO batches (id, template, started_at, total, succeeded, failed) VALUES (?, ?, ?, ?, ?, ?)`,
		res.BatchID.String(), res.Template, time.Now().UTC().Format(time.RFC3339),
		res.Stats.Total, res.Stats.Succeeded, res.Stats.Failed,
	); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	for _, rec := range res.Records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records
			 (id, batch_id, ts, filename, invoice_date, currency, shipper,
			  weight_kg, volume_m3, chargeable_kg, chargeable_cbm,
			  pieces, subtotal, freight_mode, freight_rate)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), res.BatchID.String(),
			rec.Timestamp.UTC().Format(time.RFC3339), rec.Filename,
			rec.InvoiceDate, rec.Currency, rec.Shipper,
			rec.WeightKG, rec.VolumeM3, rec.ChargeableKG, rec.ChargeableCBM,
			rec.Pieces, rec.Subtotal, rec.FreightMode, rec.FreightRate,
		); err != nil {
			return fmt.Errorf("insert record %s: %w", rec.Filename, err)
		}
	}

	for _, f := range res.Failures {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO failures (id, batch_id, source_id, status, reason) VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), res.BatchID.String(), f.SourceID, string(f.Status), f.Reason,
		); err != nil {
			return fmt.Errorf("insert failure %s: %w", f.SourceID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	s.logger.Info("store.batch.saved",
		"batch_id", res.BatchID,
		"records", len(res.Records),
		"failures", len(res.Failures),
	)
	return nil
}
