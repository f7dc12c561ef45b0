package application

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/hkopendata/mobile-post-services/api/internal/apperr"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

// importService runs the batch pipeline:
// received -> validated -> deduplicated -> persisted -> reported.
// Rows are processed sequentially so "first occurrence wins" is
// deterministic; runs are serialized because the storage layer's duplicate
// pre-check gives no isolation across concurrent batches.
type importService struct {
	repo   PostRepository
	logger *log.Logger
	mu     sync.Mutex
}

// NewImportService returns the bulk-import use-case over repo.
func NewImportService(repo PostRepository, logger *log.Logger) ImportService {
	return &importService{repo: repo, logger: logger}
}

func (s *importService) Run(ctx context.Context, source Source) (*domain.ImportReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := source.Rows(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeServerError, "batch source unavailable", err)
	}

	report := &domain.ImportReport{
		Total:          len(rows),
		Irregularities: []domain.ImportIrregularity{},
	}
	accepted := make(map[string]int, len(rows))

	for i, row := range rows {
		rowNum := i + 1

		post, field, err := buildCandidate(row)
		if err != nil {
			report.Skipped++
			report.Irregularities = append(report.Irregularities, irregularityFrom(rowNum, field, err))
			continue
		}

		key := post.DedupKey()
		if firstRow, seen := accepted[key]; seen {
			report.Duplicates++
			report.Irregularities = append(report.Irregularities, domain.ImportIrregularity{
				Row:     rowNum,
				Reason:  domain.ReasonDuplicate,
				Code:    apperr.CodeDuplicateRecord,
				Message: "duplicates row " + strconv.Itoa(firstRow) + " of this batch",
			})
			continue
		}

		if err := s.repo.Insert(ctx, post); err != nil {
			if apperr.IsCode(err, apperr.CodeDuplicateRecord) {
				report.Duplicates++
				report.Irregularities = append(report.Irregularities, domain.ImportIrregularity{
					Row:     rowNum,
					Reason:  domain.ReasonDuplicate,
					Code:    apperr.CodeDuplicateRecord,
					Message: "record already persisted",
				})
				continue
			}
			// Storage faults abort the run; partial-failure semantics only
			// cover malformed rows.
			return nil, err
		}

		accepted[key] = rowNum
		report.Imported++

		if post.Overnight() {
			report.Irregularities = append(report.Irregularities, domain.ImportIrregularity{
				Row:     rowNum,
				Field:   "closeHour",
				Reason:  domain.ReasonOvernight,
				Message: "closeHour is not after openHour; openAt queries will never match this record",
			})
		}
	}

	if s.logger != nil {
		s.logger.Printf("import run finished: total=%d imported=%d skipped=%d duplicates=%d",
			report.Total, report.Imported, report.Skipped, report.Duplicates)
	}
	return report, nil
}

// buildCandidate parses and validates one loosely-typed row. It returns
// either an accepted record or the offending field with its typed failure,
// never panicking on malformed input.
func buildCandidate(row SourceRow) (*domain.MobilePost, string, error) {
	post := &domain.MobilePost{
		MobileCode: strings.TrimSpace(row.MobileCode),
		NameEN:     strings.TrimSpace(row.NameEN),
		NameTC:     strings.TrimSpace(row.NameTC),
		NameSC:     strings.TrimSpace(row.NameSC),
		DistrictEN: strings.TrimSpace(row.DistrictEN),
		DistrictTC: strings.TrimSpace(row.DistrictTC),
		DistrictSC: strings.TrimSpace(row.DistrictSC),
		LocationEN: strings.TrimSpace(row.LocationEN),
		LocationTC: strings.TrimSpace(row.LocationTC),
		LocationSC: strings.TrimSpace(row.LocationSC),
		AddressEN:  strings.TrimSpace(row.AddressEN),
		AddressTC:  strings.TrimSpace(row.AddressTC),
		AddressSC:  strings.TrimSpace(row.AddressSC),
	}

	if raw := strings.TrimSpace(row.Seq); raw != "" {
		seq, err := strconv.Atoi(raw)
		if err != nil {
			return nil, "seq", apperr.Newf(apperr.CodeInvalidNumeric, "seq %q is not an integer", raw)
		}
		post.Seq = &seq
	}

	if !domain.HasAnyName(*post) {
		return nil, "name", apperr.New(apperr.CodeMissingRequiredField, "at least one name field is required")
	}
	if !domain.HasAnyDistrict(*post) {
		return nil, "district", apperr.New(apperr.CodeMissingRequiredField, "at least one district field is required")
	}

	openHour, err := domain.NormalizeFeedTime(row.OpenHour)
	if err != nil {
		return nil, "openHour", err
	}
	post.OpenHour = openHour

	closeHour, err := domain.NormalizeFeedTime(row.CloseHour)
	if err != nil {
		return nil, "closeHour", err
	}
	post.CloseHour = closeHour

	day, err := strconv.Atoi(strings.TrimSpace(row.DayOfWeek))
	if err != nil {
		return nil, "dayOfWeekCode", apperr.Newf(apperr.CodeInvalidNumeric, "dayOfWeekCode %q is not an integer", row.DayOfWeek)
	}
	if err := domain.ValidateDayOfWeek(day); err != nil {
		return nil, "dayOfWeekCode", err
	}
	post.DayOfWeekCode = day

	if raw := strings.TrimSpace(row.Latitude); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, "latitude", apperr.Newf(apperr.CodeInvalidNumeric, "latitude %q is not a number", raw)
		}
		post.Latitude = &lat
	}
	if raw := strings.TrimSpace(row.Longitude); raw != "" {
		lon, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, "longitude", apperr.Newf(apperr.CodeInvalidNumeric, "longitude %q is not a number", raw)
		}
		post.Longitude = &lon
	}
	if err := domain.ValidateCoordinates(post.Latitude, post.Longitude); err != nil {
		return nil, "latitude/longitude", err
	}

	return post, "", nil
}

func irregularityFrom(row int, field string, err error) domain.ImportIrregularity {
	appErr := apperr.From(err)
	return domain.ImportIrregularity{
		Row:     row,
		Field:   field,
		Reason:  domain.ReasonRejected,
		Code:    appErr.Code,
		Message: appErr.Message,
	}
}
