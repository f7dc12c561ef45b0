// Package feed supplies batch sources for the import pipeline. Every source
// yields loosely-typed rows: values arrive as strings no matter how the
// upstream encodes them, and the pipeline owns all parsing and validation.
package feed

import (
	"encoding/json"
	"strings"

	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/application"
)

// column names recognized in JSON keys and XLSX headers, matched
// case-insensitively.
const (
	colMobileCode = "mobilecode"
	colSeq        = "seq"
	colNameEN     = "nameen"
	colNameTC     = "nametc"
	colNameSC     = "namesc"
	colDistrictEN = "districten"
	colDistrictTC = "districttc"
	colDistrictSC = "districtsc"
	colLocationEN = "locationen"
	colLocationTC = "locationtc"
	colLocationSC = "locationsc"
	colAddressEN  = "addressen"
	colAddressTC  = "addresstc"
	colAddressSC  = "addresssc"
	colOpenHour   = "openhour"
	colCloseHour  = "closehour"
	colDayOfWeek  = "dayofweekcode"
	colLatitude   = "latitude"
	colLongitude  = "longitude"
)

// rowFromValues maps lowercase column name → raw string value onto a row.
func rowFromValues(values map[string]string) application.SourceRow {
	return application.SourceRow{
		MobileCode: values[colMobileCode],
		Seq:        values[colSeq],
		NameEN:     values[colNameEN],
		NameTC:     values[colNameTC],
		NameSC:     values[colNameSC],
		DistrictEN: values[colDistrictEN],
		DistrictTC: values[colDistrictTC],
		DistrictSC: values[colDistrictSC],
		LocationEN: values[colLocationEN],
		LocationTC: values[colLocationTC],
		LocationSC: values[colLocationSC],
		AddressEN:  values[colAddressEN],
		AddressTC:  values[colAddressTC],
		AddressSC:  values[colAddressSC],
		OpenHour:   values[colOpenHour],
		CloseHour:  values[colCloseHour],
		DayOfWeek:  values[colDayOfWeek],
		Latitude:   values[colLatitude],
		Longitude:  values[colLongitude],
	}
}

// decodeRows turns a JSON array of objects into rows. Numbers keep their
// literal form via json.Number so "7" and 7 read identically.
func decodeRows(decoder *json.Decoder) ([]application.SourceRow, error) {
	decoder.UseNumber()
	var raw []map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	rows := make([]application.SourceRow, 0, len(raw))
	for _, obj := range raw {
		values := make(map[string]string, len(obj))
		for key, value := range obj {
			values[strings.ToLower(strings.TrimSpace(key))] = stringify(value)
		}
		rows = append(rows, rowFromValues(values))
	}
	return rows, nil
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}
