package public

import (
	"time"

	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

// postView is the single-language projection: only the resolved scalars plus
// the language-neutral fields are exposed.
type postView struct {
	ID         string `json:"id"`
	MobileCode string `json:"mobileCode,omitempty"`
	Seq        *int   `json:"seq,omitempty"`

	Name     string `json:"name"`
	District string `json:"district"`
	Location string `json:"location"`
	Address  string `json:"address"`

	OpenHour      string `json:"openHour"`
	CloseHour     string `json:"closeHour"`
	DayOfWeekCode int    `json:"dayOfWeekCode"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	ImportedAt time.Time `json:"importedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// postAllView exposes every raw language column regardless of emptiness plus
// the English-resolved name/district aliases kept for single-language
// consumers.
type postAllView struct {
	ID         string `json:"id"`
	MobileCode string `json:"mobileCode,omitempty"`
	Seq        *int   `json:"seq,omitempty"`

	Name     string `json:"name"`
	District string `json:"district"`

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

// BuildPostView projects one record for the requested language.
func BuildPostView(p domain.MobilePost, lang domain.Language) any {
	if lang == domain.LangAll {
		resolved := p.Localize(domain.LangEN)
		return postAllView{
			ID:         p.ID,
			MobileCode: p.MobileCode,
			Seq:        p.Seq,

			Name:     resolved.Name,
			District: resolved.District,

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

	resolved := p.Localize(lang)
	return postView{
		ID:         p.ID,
		MobileCode: p.MobileCode,
		Seq:        p.Seq,

		Name:     resolved.Name,
		District: resolved.District,
		Location: resolved.Location,
		Address:  resolved.Address,

		OpenHour:      p.OpenHour,
		CloseHour:     p.CloseHour,
		DayOfWeekCode: p.DayOfWeekCode,

		Latitude:  p.Latitude,
		Longitude: p.Longitude,

		ImportedAt: p.ImportedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// BuildPostViews projects a page of records.
func BuildPostViews(posts []domain.MobilePost, lang domain.Language) []any {
	views := make([]any, 0, len(posts))
	for _, p := range posts {
		views = append(views, BuildPostView(p, lang))
	}
	return views
}
