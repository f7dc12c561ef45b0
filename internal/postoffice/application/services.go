// Package application wires the query/command/import use-cases around the
// repository and batch-source ports. All request-shape validation happens
// here or earlier; repositories only see well-formed queries.
package application

import (
	"context"

	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

// PostRepository abstracts storage for mobile posts. Find must apply the
// filter before counting and window the sorted result; the returned total is
// the filtered count, not the window size.
type PostRepository interface {
	Find(ctx context.Context, filter Filter, sortSpec SortSpec, paging Paging) ([]domain.MobilePost, int, error)
	FindByID(ctx context.Context, id string) (*domain.MobilePost, error)
	Insert(ctx context.Context, post *domain.MobilePost) error
	Update(ctx context.Context, id string, patch domain.Patch) (*domain.MobilePost, error)
	Delete(ctx context.Context, id string) error
}

// SourceRow is one loosely-typed input row from a batch source. Everything
// arrives as strings; the import pipeline owns parsing and validation.
type SourceRow struct {
	MobileCode string
	Seq        string
	NameEN     string
	NameTC     string
	NameSC     string
	DistrictEN string
	DistrictTC string
	DistrictSC string
	LocationEN string
	LocationTC string
	LocationSC string
	AddressEN  string
	AddressTC  string
	AddressSC  string
	OpenHour   string
	CloseHour  string
	DayOfWeek  string
	Latitude   string
	Longitude  string
}

// Source supplies an ordered, finite batch of raw rows.
type Source interface {
	Rows(ctx context.Context) ([]SourceRow, error)
}

// QueryService exposes read use-cases.
type QueryService interface {
	List(ctx context.Context, query ListQuery) ([]domain.MobilePost, PageMeta, error)
	Detail(ctx context.Context, id string) (*domain.MobilePost, error)
}

// CommandService exposes write use-cases.
type CommandService interface {
	Create(ctx context.Context, cmd CreateCommand) (*domain.MobilePost, error)
	Update(ctx context.Context, id string, patch domain.Patch) (*domain.MobilePost, error)
	Delete(ctx context.Context, id string) error
}

// ImportService runs one bulk import against a batch source.
type ImportService interface {
	Run(ctx context.Context, source Source) (*domain.ImportReport, error)
}

// ListQuery is the validated description of one list request.
type ListQuery struct {
	Filter Filter
	Sort   SortSpec
	Paging Paging
}

// CreateCommand carries the fields accepted at creation time. Audit fields
// are always storage-assigned.
type CreateCommand struct {
	MobileCode string
	Seq        *int

	NameEN     string
	NameTC     string
	NameSC     string
	DistrictEN string
	DistrictTC string
	DistrictSC string
	LocationEN string
	LocationTC string
	LocationSC string
	AddressEN  string
	AddressTC  string
	AddressSC  string

	OpenHour      string
	CloseHour     string
	DayOfWeekCode int

	Latitude  *float64
	Longitude *float64
}
