package admin

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hkopendata/mobile-post-services/api/internal/apperr"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/application"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

// postCreateRequest is the creation payload. The validate tags reject the
// grossly malformed shapes up front; the domain validators then enforce the
// taxonomy-coded field rules.
type postCreateRequest struct {
	MobileCode string `json:"mobileCode"`
	Seq        *int   `json:"seq"`

	NameEN     string `json:"nameEN"`
	NameTC     string `json:"nameTC"`
	NameSC     string `json:"nameSC"`
	DistrictEN string `json:"districtEN"`
	DistrictTC string `json:"districtTC"`
	DistrictSC string `json:"districtSC"`
	LocationEN string `json:"locationEN"`
	LocationTC string `json:"locationTC"`
	LocationSC string `json:"locationSC"`
	AddressEN  string `json:"addressEN"`
	AddressTC  string `json:"addressTC"`
	AddressSC  string `json:"addressSC"`

	OpenHour      string `json:"openHour" validate:"required"`
	CloseHour     string `json:"closeHour" validate:"required"`
	DayOfWeekCode int    `json:"dayOfWeekCode" validate:"required"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r postCreateRequest) toCommand() application.CreateCommand {
	return application.CreateCommand{
		MobileCode: r.MobileCode,
		Seq:        r.Seq,

		NameEN:     r.NameEN,
		NameTC:     r.NameTC,
		NameSC:     r.NameSC,
		DistrictEN: r.DistrictEN,
		DistrictTC: r.DistrictTC,
		DistrictSC: r.DistrictSC,
		LocationEN: r.LocationEN,
		LocationTC: r.LocationTC,
		LocationSC: r.LocationSC,
		AddressEN:  r.AddressEN,
		AddressTC:  r.AddressTC,
		AddressSC:  r.AddressSC,

		OpenHour:      r.OpenHour,
		CloseHour:     r.CloseHour,
		DayOfWeekCode: r.DayOfWeekCode,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
	}
}

// postUpdateRequest is the partial-update payload: only supplied fields are
// applied, so every field is a pointer.
type postUpdateRequest struct {
	MobileCode *string `json:"mobileCode"`
	Seq        *int    `json:"seq"`

	NameEN     *string `json:"nameEN"`
	NameTC     *string `json:"nameTC"`
	NameSC     *string `json:"nameSC"`
	DistrictEN *string `json:"districtEN"`
	DistrictTC *string `json:"districtTC"`
	DistrictSC *string `json:"districtSC"`
	LocationEN *string `json:"locationEN"`
	LocationTC *string `json:"locationTC"`
	LocationSC *string `json:"locationSC"`
	AddressEN  *string `json:"addressEN"`
	AddressTC  *string `json:"addressTC"`
	AddressSC  *string `json:"addressSC"`

	OpenHour      *string `json:"openHour"`
	CloseHour     *string `json:"closeHour"`
	DayOfWeekCode *int    `json:"dayOfWeekCode"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r postUpdateRequest) toPatch() domain.Patch {
	return domain.Patch{
		MobileCode: r.MobileCode,
		Seq:        r.Seq,

		NameEN:     r.NameEN,
		NameTC:     r.NameTC,
		NameSC:     r.NameSC,
		DistrictEN: r.DistrictEN,
		DistrictTC: r.DistrictTC,
		DistrictSC: r.DistrictSC,
		LocationEN: r.LocationEN,
		LocationTC: r.LocationTC,
		LocationSC: r.LocationSC,
		AddressEN:  r.AddressEN,
		AddressTC:  r.AddressTC,
		AddressSC:  r.AddressSC,

		OpenHour:      r.OpenHour,
		CloseHour:     r.CloseHour,
		DayOfWeekCode: r.DayOfWeekCode,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
	}
}

// adminPostResponse returns every stored column; admin consumers always see
// the raw language variants.
type adminPostResponse struct {
	ID         string `json:"id"`
	MobileCode string `json:"mobileCode,omitempty"`
	Seq        *int   `json:"seq,omitempty"`

	NameEN     string `json:"nameEN"`
	NameTC     string `json:"nameTC"`
	NameSC     string `json:"nameSC"`
	DistrictEN string `json:"districtEN"`
	DistrictTC string `json:"districtTC"`
	DistrictSC string `json:"districtSC"`
	LocationEN string `json:"locationEN"`
	LocationTC string `json:"locationTC"`
	LocationSC string `json:"locationSC"`
	AddressEN  string `json:"addressEN"`
	AddressTC  string `json:"addressTC"`
	AddressSC  string `json:"addressSC"`

	OpenHour      string `json:"openHour"`
	CloseHour     string `json:"closeHour"`
	DayOfWeekCode int    `json:"dayOfWeekCode"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	ImportedAt time.Time `json:"importedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func buildAdminPostResponse(p domain.MobilePost) adminPostResponse {
	return adminPostResponse{
		ID:         p.ID,
		MobileCode: p.MobileCode,
		Seq:        p.Seq,

		NameEN:     p.NameEN,
		NameTC:     p.NameTC,
		NameSC:     p.NameSC,
		DistrictEN: p.DistrictEN,
		DistrictTC: p.DistrictTC,
		DistrictSC: p.DistrictSC,
		LocationEN: p.LocationEN,
		LocationTC: p.LocationTC,
		LocationSC: p.LocationSC,
		AddressEN:  p.AddressEN,
		AddressTC:  p.AddressTC,
		AddressSC:  p.AddressSC,

		OpenHour:      p.OpenHour,
		CloseHour:     p.CloseHour,
		DayOfWeekCode: p.DayOfWeekCode,

		Latitude:  p.Latitude,
		Longitude: p.Longitude,

		ImportedAt: p.ImportedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// mapValidationErr translates validator/v10 failures into taxonomy errors:
// missing required fields are 0101, everything else 0103.
func mapValidationErr(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		if first.Tag() == "required" {
			return apperr.Newf(apperr.CodeMissingRequiredField, "%s is required", first.Field())
		}
		return apperr.Newf(apperr.CodeInvalidParameter, "%s is invalid", first.Field())
	}
	return apperr.New(apperr.CodeInvalidParameter, "request payload is invalid")
}
