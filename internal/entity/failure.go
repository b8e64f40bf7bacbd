package entity

import (
	"fmt"

	"github.com/freightdocs/invoice-extractor/constants"
)

// Failure describes why one document produced no record. The batch continues
// past failures; the caller reports them by source identifier.
type Failure struct {
	SourceID string              `json:"source_id"`
	Status   constants.DocStatus `json:"status"`
	Reason   string              `json:"reason"`
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %s: %s", f.SourceID, f.Status, f.Reason)
}

// BatchSummary aggregates one batch run.
type BatchSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}
