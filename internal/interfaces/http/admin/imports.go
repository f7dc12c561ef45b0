package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/hkopendata/mobile-post-services/api/internal/apperr"
	"github.com/hkopendata/mobile-post-services/api/internal/interfaces/http/common"
	"github.com/hkopendata/mobile-post-services/api/internal/observability/metrics"
)

// importHandler runs one bulk import against the configured upstream feed
// and returns the full report. The run is synchronous; directory batches
// are small enough that a job queue would be overhead.
func (h *Handler) importHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.source == nil {
			common.WriteError(h.logger, w, apperr.New(apperr.CodeServerError, "no import feed configured"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
		defer cancel()

		report, err := h.importer.Run(ctx, h.source)
		if err != nil {
			h.logger.Printf("import run failed: %v", err)
			common.WriteError(h.logger, w, err)
			return
		}

		metrics.ObserveImport(report.Imported, report.Skipped, report.Duplicates)
		common.WriteSuccess(h.logger, w, http.StatusOK, "import completed", report, nil)
	}
}
