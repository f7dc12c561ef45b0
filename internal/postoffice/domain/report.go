package domain

import "github.com/hkopendata/mobile-post-services/api/internal/apperr"

// Irregularity reason labels. Validation failures reuse the taxonomy code of
// the validator that rejected the row; ReasonDuplicate and ReasonOvernight
// cover the dedup and schedule flags.
const (
	ReasonDuplicate = "duplicate"
	ReasonOvernight = "overnight_schedule"
	ReasonRejected  = "validation_failed"
)

// ImportIrregularity records one rejected or flagged input row.
type ImportIrregularity struct {
	Row     int         `json:"row"`
	Field   string      `json:"field,omitempty"`
	Reason  string      `json:"reason"`
	Code    apperr.Code `json:"code,omitempty"`
	Message string      `json:"message"`
}

// ImportReport is the write-once outcome of a single import run.
type ImportReport struct {
	Total          int                  `json:"total"`
	Imported       int                  `json:"imported"`
	Skipped        int                  `json:"skipped"`
	Duplicates     int                  `json:"duplicates"`
	Irregularities []ImportIrregularity `json:"irregularities"`
}
