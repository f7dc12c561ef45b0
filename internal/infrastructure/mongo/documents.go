package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

// PostDocument 對應 posts collection 的 MongoDB schema。
// 語言欄位以三個平行欄位儲存（EN/TC/SC），與上游資料源的欄位一一對應。
type PostDocument struct {
	ID         primitive.ObjectID `bson:"_id"`
	MobileCode string             `bson:"mobileCode,omitempty"`
	Seq        *int               `bson:"seq,omitempty"`

	// 語言欄位不可加 omitempty：去重查詢與 $or 搜尋需要以空字串比對，
	// 欄位缺漏時 $regex 永遠不會命中。
	NameEN     string `bson:"nameEN"`
	NameTC     string `bson:"nameTC"`
	NameSC     string `bson:"nameSC"`
	DistrictEN string `bson:"districtEN"`
	DistrictTC string `bson:"districtTC"`
	DistrictSC string `bson:"districtSC"`
	LocationEN string `bson:"locationEN"`
	LocationTC string `bson:"locationTC"`
	LocationSC string `bson:"locationSC"`
	AddressEN  string `bson:"addressEN"`
	AddressTC  string `bson:"addressTC"`
	AddressSC  string `bson:"addressSC"`

	OpenHour      string `bson:"openHour"`
	CloseHour     string `bson:"closeHour"`
	DayOfWeekCode int    `bson:"dayOfWeekCode"`

	Latitude  *float64 `bson:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty"`

	ImportedAt time.Time `bson:"importedAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

func mapPostDocument(doc PostDocument) domain.MobilePost {
	return domain.MobilePost{
		ID:         doc.ID.Hex(),
		MobileCode: doc.MobileCode,
		Seq:        doc.Seq,

		NameEN:     doc.NameEN,
		NameTC:     doc.NameTC,
		NameSC:     doc.NameSC,
		DistrictEN: doc.DistrictEN,
		DistrictTC: doc.DistrictTC,
		DistrictSC: doc.DistrictSC,
		LocationEN: doc.LocationEN,
		LocationTC: doc.LocationTC,
		LocationSC: doc.LocationSC,
		AddressEN:  doc.AddressEN,
		AddressTC:  doc.AddressTC,
		AddressSC:  doc.AddressSC,

		OpenHour:      doc.OpenHour,
		CloseHour:     doc.CloseHour,
		DayOfWeekCode: doc.DayOfWeekCode,

		Latitude:  doc.Latitude,
		Longitude: doc.Longitude,

		ImportedAt: doc.ImportedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

func buildPostDocument(post *domain.MobilePost, id primitive.ObjectID) PostDocument {
	return PostDocument{
		ID:         id,
		MobileCode: post.MobileCode,
		Seq:        post.Seq,

		NameEN:     post.NameEN,
		NameTC:     post.NameTC,
		NameSC:     post.NameSC,
		DistrictEN: post.DistrictEN,
		DistrictTC: post.DistrictTC,
		DistrictSC: post.DistrictSC,
		LocationEN: post.LocationEN,
		LocationTC: post.LocationTC,
		LocationSC: post.LocationSC,
		AddressEN:  post.AddressEN,
		AddressTC:  post.AddressTC,
		AddressSC:  post.AddressSC,

		OpenHour:      post.OpenHour,
		CloseHour:     post.CloseHour,
		DayOfWeekCode: post.DayOfWeekCode,

		Latitude:  post.Latitude,
		Longitude: post.Longitude,

		ImportedAt: post.ImportedAt,
		UpdatedAt:  post.UpdatedAt,
	}
}
