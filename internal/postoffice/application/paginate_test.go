package application

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hkopendata/mobile-post-services/api/internal/apperr"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

func TestNewPaging(t *testing.T) {
	paging, err := NewPaging(3, 25)
	if err != nil {
		t.Fatalf("NewPaging: %v", err)
	}
	if paging.Offset() != 50 {
		t.Errorf("Offset() = %d, want 50", paging.Offset())
	}

	for _, tt := range []struct{ page, limit int }{{0, 20}, {1, 0}, {1, 201}} {
		if _, err := NewPaging(tt.page, tt.limit); !apperr.IsCode(err, apperr.CodeInvalidParameter) {
			t.Errorf("NewPaging(%d, %d) err = %v, want code 0103", tt.page, tt.limit, err)
		}
	}
}

func TestNewPageMeta(t *testing.T) {
	tests := []struct {
		name   string
		total  int
		paging Paging
		want   PageMeta
	}{
		{name: "exact multiple", total: 40, paging: Paging{Page: 1, Limit: 20}, want: PageMeta{Total: 40, Page: 1, Limit: 20, TotalPages: 2}},
		{name: "partial last page rounds up", total: 41, paging: Paging{Page: 2, Limit: 20}, want: PageMeta{Total: 41, Page: 2, Limit: 20, TotalPages: 3}},
		{name: "empty result has zero pages", total: 0, paging: Paging{Page: 1, Limit: 20}, want: PageMeta{Total: 0, Page: 1, Limit: 20, TotalPages: 0}},
		{name: "single record", total: 1, paging: Paging{Page: 1, Limit: 200}, want: PageMeta{Total: 1, Page: 1, Limit: 200, TotalPages: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPageMeta(tt.total, tt.paging)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NewPageMeta mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	posts := []domain.MobilePost{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}, {ID: "5"}}

	tests := []struct {
		name   string
		paging Paging
		want   []string
	}{
		{name: "first page", paging: Paging{Page: 1, Limit: 2}, want: []string{"1", "2"}},
		{name: "middle page", paging: Paging{Page: 2, Limit: 2}, want: []string{"3", "4"}},
		{name: "last page clipped", paging: Paging{Page: 3, Limit: 2}, want: []string{"5"}},
		{name: "past the end is empty not error", paging: Paging{Page: 4, Limit: 2}, want: []string{}},
		{name: "limit beyond length", paging: Paging{Page: 1, Limit: 100}, want: []string{"1", "2", "3", "4", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Window(posts, tt.paging))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Window mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
