package mongo

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

// buildPatchSet expands the non-nil patch fields into a $set document.
func buildPatchSet(patch domain.Patch) bson.M {
	set := bson.M{}
	if patch.MobileCode != nil {
		set["mobileCode"] = *patch.MobileCode
	}
	if patch.Seq != nil {
		set["seq"] = *patch.Seq
	}
	if patch.NameEN != nil {
		set["nameEN"] = *patch.NameEN
	}
	if patch.NameTC != nil {
		set["nameTC"] = *patch.NameTC
	}
	if patch.NameSC != nil {
		set["nameSC"] = *patch.NameSC
	}
	if patch.DistrictEN != nil {
		set["districtEN"] = *patch.DistrictEN
	}
	if patch.DistrictTC != nil {
		set["districtTC"] = *patch.DistrictTC
	}
	if patch.DistrictSC != nil {
		set["districtSC"] = *patch.DistrictSC
	}
	if patch.LocationEN != nil {
		set["locationEN"] = *patch.LocationEN
	}
	if patch.LocationTC != nil {
		set["locationTC"] = *patch.LocationTC
	}
	if patch.LocationSC != nil {
		set["locationSC"] = *patch.LocationSC
	}
	if patch.AddressEN != nil {
		set["addressEN"] = *patch.AddressEN
	}
	if patch.AddressTC != nil {
		set["addressTC"] = *patch.AddressTC
	}
	if patch.AddressSC != nil {
		set["addressSC"] = *patch.AddressSC
	}
	if patch.OpenHour != nil {
		set["openHour"] = *patch.OpenHour
	}
	if patch.CloseHour != nil {
		set["closeHour"] = *patch.CloseHour
	}
	if patch.DayOfWeekCode != nil {
		set["dayOfWeekCode"] = *patch.DayOfWeekCode
	}
	if patch.Latitude != nil {
		set["latitude"] = *patch.Latitude
	}
	if patch.Longitude != nil {
		set["longitude"] = *patch.Longitude
	}
	return set
}
