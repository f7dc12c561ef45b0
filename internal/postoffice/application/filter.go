package application

import (
	"strings"

	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

// Filter holds the optional list clauses. Clauses combine with AND; inside
// the search and district clauses the language variants combine with OR.
type Filter struct {
	Search     string
	District   string
	DayOfWeek  *int
	OpenAt     string
	MobileCode string
	Seq        *int
}

// IsZero reports whether no clause is set.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.District == "" && f.DayOfWeek == nil &&
		f.OpenAt == "" && f.MobileCode == "" && f.Seq == nil
}

// Matches evaluates the filter against one record. The Mongo repository
// translates the same clauses to BSON; this predicate is the reference
// semantics and serves the in-memory repository.
func (f Filter) Matches(p domain.MobilePost) bool {
	if f.Search != "" && !containsAny(f.Search,
		p.NameEN, p.NameTC, p.NameSC,
		p.DistrictEN, p.DistrictTC, p.DistrictSC,
		p.LocationEN, p.LocationTC, p.LocationSC,
		p.AddressEN, p.AddressTC, p.AddressSC,
	) {
		return false
	}
	if f.District != "" && !containsAny(f.District, p.DistrictEN, p.DistrictTC, p.DistrictSC) {
		return false
	}
	if f.DayOfWeek != nil && p.DayOfWeekCode != *f.DayOfWeek {
		return false
	}
	if f.MobileCode != "" && p.MobileCode != f.MobileCode {
		return false
	}
	if f.Seq != nil && (p.Seq == nil || *p.Seq != *f.Seq) {
		return false
	}
	if f.OpenAt != "" && !openAtMatches(f.OpenAt, p) {
		return false
	}
	return true
}

// openAtMatches checks openHour <= t < closeHour on same-day minute offsets.
// Overnight records (closeHour <= openHour) never match.
func openAtMatches(t string, p domain.MobilePost) bool {
	at, err := domain.MinutesOfDay(t)
	if err != nil {
		return false
	}
	open, errOpen := domain.MinutesOfDay(p.OpenHour)
	closing, errClose := domain.MinutesOfDay(p.CloseHour)
	if errOpen != nil || errClose != nil {
		return false
	}
	return open <= at && at < closing
}

func containsAny(term string, fields ...string) bool {
	needle := strings.ToLower(term)
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
