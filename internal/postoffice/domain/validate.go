package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hkopendata/mobile-post-services/api/internal/apperr"
)

// Pagination bounds enforced by ValidatePagination.
const (
	MinPage  = 1
	MinLimit = 1
	MaxLimit = 200
)

// ValidateTime checks an HH:MM time-of-day string. Both the hour and the
// minute must be exactly two digits; anything outside 00:00–23:59 is
// rejected. Feed rows with unpadded hours go through NormalizeFeedTime.
func ValidateTime(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return "", apperr.Newf(apperr.CodeInvalidTimeFormat, "time %q must be HH:MM", raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", apperr.Newf(apperr.CodeInvalidTimeFormat, "time %q must be HH:MM", raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", apperr.Newf(apperr.CodeInvalidTimeFormat, "time %q must be HH:MM", raw)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", apperr.Newf(apperr.CodeInvalidTimeFormat, "time %q is outside 00:00-23:59", raw)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// NormalizeFeedTime zero-pads a single-digit hour before validating. The
// upstream feed carries times like "9:30"; API input stays strict HH:MM.
func NormalizeFeedTime(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if len(s) == 4 && s[1] == ':' {
		s = "0" + s
	}
	return ValidateTime(s)
}

// MinutesOfDay converts a validated HH:MM string to its minute offset.
func MinutesOfDay(s string) (int, error) {
	normalized, err := ValidateTime(s)
	if err != nil {
		return 0, err
	}
	hour, _ := strconv.Atoi(normalized[:2])
	minute, _ := strconv.Atoi(normalized[3:])
	return hour*60 + minute, nil
}

// ValidateDayOfWeek checks the 1–7 (Mon–Sun) day code.
func ValidateDayOfWeek(code int) error {
	if code < 1 || code > 7 {
		return apperr.Newf(apperr.CodeInvalidParameter, "dayOfWeekCode %d must be between 1 and 7", code)
	}
	return nil
}

// ValidateCoordinates enforces that latitude and longitude appear together
// and sit inside their numeric ranges.
func ValidateCoordinates(lat, lon *float64) error {
	if (lat == nil) != (lon == nil) {
		return apperr.New(apperr.CodeInvalidParameter, "latitude and longitude must be supplied together")
	}
	if lat == nil {
		return nil
	}
	if *lat < -90 || *lat > 90 {
		return apperr.Newf(apperr.CodeInvalidParameter, "latitude %v is outside [-90, 90]", *lat)
	}
	if *lon < -180 || *lon > 180 {
		return apperr.Newf(apperr.CodeInvalidParameter, "longitude %v is outside [-180, 180]", *lon)
	}
	return nil
}

// HasAnyName reports whether any of the three name variants is non-empty.
func HasAnyName(p MobilePost) bool {
	return strings.TrimSpace(p.NameEN) != "" ||
		strings.TrimSpace(p.NameTC) != "" ||
		strings.TrimSpace(p.NameSC) != ""
}

// HasAnyDistrict reports whether any of the three district variants is
// non-empty.
func HasAnyDistrict(p MobilePost) bool {
	return strings.TrimSpace(p.DistrictEN) != "" ||
		strings.TrimSpace(p.DistrictTC) != "" ||
		strings.TrimSpace(p.DistrictSC) != ""
}

// ValidateRequiredGroups checks the creation invariant: at least one name
// variant and at least one district variant must be non-empty.
func ValidateRequiredGroups(p MobilePost) error {
	if !HasAnyName(p) {
		return apperr.New(apperr.CodeMissingRequiredField, "at least one name field is required")
	}
	if !HasAnyDistrict(p) {
		return apperr.New(apperr.CodeMissingRequiredField, "at least one district field is required")
	}
	return nil
}

// ValidatePagination bounds the list window.
func ValidatePagination(page, limit int) error {
	if page < MinPage {
		return apperr.Newf(apperr.CodeInvalidParameter, "page %d must be at least %d", page, MinPage)
	}
	if limit < MinLimit || limit > MaxLimit {
		return apperr.Newf(apperr.CodeInvalidParameter, "limit %d must be between %d and %d", limit, MinLimit, MaxLimit)
	}
	return nil
}

// Validate runs the field validators relevant to a full record (creation and
// import both require every group), normalizing the schedule in place.
func (p *MobilePost) Validate() error {
	if err := ValidateRequiredGroups(*p); err != nil {
		return err
	}
	openHour, err := ValidateTime(p.OpenHour)
	if err != nil {
		return err
	}
	closeHour, err := ValidateTime(p.CloseHour)
	if err != nil {
		return err
	}
	if err := ValidateDayOfWeek(p.DayOfWeekCode); err != nil {
		return err
	}
	if err := ValidateCoordinates(p.Latitude, p.Longitude); err != nil {
		return err
	}
	p.OpenHour = openHour
	p.CloseHour = closeHour
	return nil
}
