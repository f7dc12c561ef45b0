// Package domain holds the mobile post office aggregate and the pure rules
// around it: field validation, language resolution and deduplication keys.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// MobilePost represents one mobile post office stop. Text attributes are
// language-grouped: three parallel columns per logical field (EN/TC/SC).
type MobilePost struct {
	ID         string
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

	ImportedAt time.Time
	UpdatedAt  time.Time
}

// DedupKey identifies a post for duplicate detection. When both mobileCode
// and seq are present the pair is authoritative; otherwise the normalized
// (nameEN, districtEN, openHour, dayOfWeekCode) tuple stands in.
func (p MobilePost) DedupKey() string {
	if p.MobileCode != "" && p.Seq != nil {
		return fmt.Sprintf("code:%s/%d", strings.ToLower(strings.TrimSpace(p.MobileCode)), *p.Seq)
	}
	return fmt.Sprintf("tuple:%s|%s|%s|%d",
		NormalizeDedupText(p.NameEN),
		NormalizeDedupText(p.DistrictEN),
		strings.TrimSpace(p.OpenHour),
		p.DayOfWeekCode,
	)
}

// NormalizeDedupText folds a tuple field for duplicate comparison:
// lowercased, internal whitespace collapsed to single spaces. Storage
// engines matching stored columns against the tuple must honor the same
// folding.
func NormalizeDedupText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Overnight reports whether the schedule wraps past midnight. Such rows are
// stored as-is but can never match an openAt query (same-day contract).
func (p MobilePost) Overnight() bool {
	openMin, errOpen := MinutesOfDay(p.OpenHour)
	closeMin, errClose := MinutesOfDay(p.CloseHour)
	if errOpen != nil || errClose != nil {
		return false
	}
	return closeMin <= openMin
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	MobileCode *string
	Seq        *int

	NameEN     *string
	NameTC     *string
	NameSC     *string
	DistrictEN *string
	DistrictTC *string
	DistrictSC *string
	LocationEN *string
	LocationTC *string
	LocationSC *string
	AddressEN  *string
	AddressTC  *string
	AddressSC  *string

	OpenHour      *string
	CloseHour     *string
	DayOfWeekCode *int

	Latitude  *float64
	Longitude *float64
}

// IsEmpty reports whether the patch updates nothing.
func (p Patch) IsEmpty() bool {
	return p.MobileCode == nil && p.Seq == nil &&
		p.NameEN == nil && p.NameTC == nil && p.NameSC == nil &&
		p.DistrictEN == nil && p.DistrictTC == nil && p.DistrictSC == nil &&
		p.LocationEN == nil && p.LocationTC == nil && p.LocationSC == nil &&
		p.AddressEN == nil && p.AddressTC == nil && p.AddressSC == nil &&
		p.OpenHour == nil && p.CloseHour == nil && p.DayOfWeekCode == nil &&
		p.Latitude == nil && p.Longitude == nil
}

// Apply overwrites the supplied fields on post.
func (p Patch) Apply(post *MobilePost) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&post.MobileCode, p.MobileCode)
	if p.Seq != nil {
		seq := *p.Seq
		post.Seq = &seq
	}
	setString(&post.NameEN, p.NameEN)
	setString(&post.NameTC, p.NameTC)
	setString(&post.NameSC, p.NameSC)
	setString(&post.DistrictEN, p.DistrictEN)
	setString(&post.DistrictTC, p.DistrictTC)
	setString(&post.DistrictSC, p.DistrictSC)
	setString(&post.LocationEN, p.LocationEN)
	setString(&post.LocationTC, p.LocationTC)
	setString(&post.LocationSC, p.LocationSC)
	setString(&post.AddressEN, p.AddressEN)
	setString(&post.AddressTC, p.AddressTC)
	setString(&post.AddressSC, p.AddressSC)
	setString(&post.OpenHour, p.OpenHour)
	setString(&post.CloseHour, p.CloseHour)
	if p.DayOfWeekCode != nil {
		post.DayOfWeekCode = *p.DayOfWeekCode
	}
	if p.Latitude != nil {
		lat := *p.Latitude
		post.Latitude = &lat
	}
	if p.Longitude != nil {
		lon := *p.Longitude
		post.Longitude = &lon
	}
}
