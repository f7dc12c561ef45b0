package application

import (
	"testing"

	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

func intPtr(v int) *int { return &v }

func samplePost() domain.MobilePost {
	return domain.MobilePost{
		ID:         "00000001",
		MobileCode: "MPO1",
		Seq:        intPtr(3),
		NameEN:     "Mobile Office 1",
		NameTC:     "流動郵政局一",
		DistrictEN: "Central and Western",
		DistrictTC: "中西區",
		LocationEN: "Star Ferry Pier",
		AddressEN:  "Edinburgh Place",

		OpenHour:      "09:00",
		CloseHour:     "17:00",
		DayOfWeekCode: 3,
	}
}

func TestFilterMatches(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		mutate func(*domain.MobilePost)
		want   bool
	}{
		{name: "zero filter matches everything", filter: Filter{}, want: true},
		{name: "search hits english name", filter: Filter{Search: "office 1"}, want: true},
		{name: "search hits chinese district", filter: Filter{Search: "中西"}, want: true},
		{name: "search hits address", filter: Filter{Search: "edinburgh"}, want: true},
		{name: "search miss", filter: Filter{Search: "kowloon"}, want: false},
		{name: "district clause only scans district columns", filter: Filter{District: "central"}, want: true},
		{name: "district clause ignores name columns", filter: Filter{District: "office"}, want: false},
		{name: "day match", filter: Filter{DayOfWeek: intPtr(3)}, want: true},
		{name: "day mismatch", filter: Filter{DayOfWeek: intPtr(4)}, want: false},
		{name: "mobile code exact match", filter: Filter{MobileCode: "MPO1"}, want: true},
		{name: "mobile code is case-sensitive", filter: Filter{MobileCode: "mpo1"}, want: false},
		{name: "mobile code is not substring", filter: Filter{MobileCode: "MPO"}, want: false},
		{name: "seq match", filter: Filter{Seq: intPtr(3)}, want: true},
		{name: "seq mismatch", filter: Filter{Seq: intPtr(4)}, want: false},
		{
			name:   "seq clause excludes records without seq",
			filter: Filter{Seq: intPtr(3)},
			mutate: func(p *domain.MobilePost) { p.Seq = nil },
			want:   false,
		},
		{name: "openAt inside window", filter: Filter{OpenAt: "12:00"}, want: true},
		{name: "openAt at opening is inclusive", filter: Filter{OpenAt: "09:00"}, want: true},
		{name: "openAt at closing is exclusive", filter: Filter{OpenAt: "17:00"}, want: false},
		{name: "openAt before opening", filter: Filter{OpenAt: "08:59"}, want: false},
		{
			name:   "openAt never matches overnight record",
			filter: Filter{OpenAt: "23:00"},
			mutate: func(p *domain.MobilePost) { p.OpenHour = "22:00"; p.CloseHour = "02:00" },
			want:   false,
		},
		{name: "clauses combine with AND", filter: Filter{Search: "office", DayOfWeek: intPtr(4)}, want: false},
		{name: "all clauses satisfied", filter: Filter{Search: "office", District: "central", DayOfWeek: intPtr(3), OpenAt: "10:00", MobileCode: "MPO1", Seq: intPtr(3)}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := samplePost()
			if tt.mutate != nil {
				tt.mutate(&post)
			}
			if got := tt.filter.Matches(post); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterIsZero(t *testing.T) {
	if !(Filter{}).IsZero() {
		t.Error("empty filter should be zero")
	}
	if (Filter{Search: "x"}).IsZero() {
		t.Error("filter with search should not be zero")
	}
	if (Filter{DayOfWeek: intPtr(1)}).IsZero() {
		t.Error("filter with dayOfWeek should not be zero")
	}
}
