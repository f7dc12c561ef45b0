// Package mongo implements the PostRepository port on MongoDB.
package mongo

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hkopendata/mobile-post-services/api/internal/apperr"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/application"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

// PostRepository 以 MongoDB collection 實作 application.PostRepository。
type PostRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewPostRepository binds the repository to db's collection.
func NewPostRepository(db *mongo.Database, collectionName string) *PostRepository {
	return &PostRepository{
		collection: db.Collection(collectionName),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Find filters server-side, then sorts and windows in Go. Sorting stays in
// Go because name/district order on the language-resolved value, which has
// no single stored column; keeping one code path makes Mongo and memory
// results identical. The returned total counts all filtered records.
func (r *PostRepository) Find(ctx context.Context, filter application.Filter, sortSpec application.SortSpec, paging application.Paging) ([]domain.MobilePost, int, error) {
	cursor, err := r.collection.Find(ctx, buildFilter(filter))
	if err != nil {
		return nil, 0, wrapStorageErr(err)
	}
	defer cursor.Close(ctx)

	posts := make([]domain.MobilePost, 0)
	for cursor.Next(ctx) {
		var doc PostDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, wrapStorageErr(err)
		}
		posts = append(posts, mapPostDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, wrapStorageErr(err)
	}

	application.SortPosts(posts, sortSpec)
	total := len(posts)
	if paging.Limit <= 0 {
		return posts, total, nil
	}
	return application.Window(posts, paging), total, nil
}

// FindByID returns a single record by its ObjectID hex.
func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.MobilePost, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.CodeNotFound, "")
	}
	var doc PostDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.CodeNotFound, "")
		}
		return nil, wrapStorageErr(err)
	}
	post := mapPostDocument(doc)
	return &post, nil
}

// Insert 先以去重鍵檢查既有紀錄，再寫入並回填 id 與稽核時間戳。
func (r *PostRepository) Insert(ctx context.Context, post *domain.MobilePost) error {
	if err := r.collection.FindOne(ctx, dedupFilter(post)).Err(); err == nil {
		return apperr.New(apperr.CodeDuplicateRecord, "")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return wrapStorageErr(err)
	}

	now := r.now()
	post.ImportedAt = now
	post.UpdatedAt = now
	objectID := primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, buildPostDocument(post, objectID)); err != nil {
		return wrapStorageErr(err)
	}
	post.ID = objectID.Hex()
	return nil
}

// Update applies $set for the supplied fields only and returns the updated
// record.
func (r *PostRepository) Update(ctx context.Context, id string, patch domain.Patch) (*domain.MobilePost, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.CodeNotFound, "")
	}

	set := buildPatchSet(patch)
	set["updatedAt"] = r.now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc PostDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.CodeNotFound, "")
		}
		return nil, wrapStorageErr(err)
	}
	post := mapPostDocument(doc)
	return &post, nil
}

// Delete removes the record permanently; there is no soft delete.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.CodeNotFound, "")
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return wrapStorageErr(err)
	}
	if result.DeletedCount == 0 {
		return apperr.New(apperr.CodeNotFound, "")
	}
	return nil
}

// buildFilter translates the clauses into BSON. AND across clauses, OR
// across language variants inside the search and district clauses; openAt
// relies on zero-padded HH:MM strings comparing lexicographically in minute
// order.
func buildFilter(filter application.Filter) bson.M {
	clauses := make([]bson.M, 0)
	if filter.Search != "" {
		regex := containsRegex(filter.Search)
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"nameEN": regex}, bson.M{"nameTC": regex}, bson.M{"nameSC": regex},
			bson.M{"districtEN": regex}, bson.M{"districtTC": regex}, bson.M{"districtSC": regex},
			bson.M{"locationEN": regex}, bson.M{"locationTC": regex}, bson.M{"locationSC": regex},
			bson.M{"addressEN": regex}, bson.M{"addressTC": regex}, bson.M{"addressSC": regex},
		}})
	}
	if filter.District != "" {
		regex := containsRegex(filter.District)
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"districtEN": regex}, bson.M{"districtTC": regex}, bson.M{"districtSC": regex},
		}})
	}
	if filter.DayOfWeek != nil {
		clauses = append(clauses, bson.M{"dayOfWeekCode": *filter.DayOfWeek})
	}
	if filter.OpenAt != "" {
		clauses = append(clauses, bson.M{
			"openHour":  bson.M{"$lte": filter.OpenAt},
			"closeHour": bson.M{"$gt": filter.OpenAt},
		})
	}
	if filter.MobileCode != "" {
		clauses = append(clauses, bson.M{"mobileCode": filter.MobileCode})
	}
	if filter.Seq != nil {
		clauses = append(clauses, bson.M{"seq": *filter.Seq})
	}

	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	default:
		return bson.M{"$and": clauses}
	}
}

// dedupFilter mirrors domain.MobilePost.DedupKey on the stored columns.
func dedupFilter(post *domain.MobilePost) bson.M {
	if post.MobileCode != "" && post.Seq != nil {
		return bson.M{
			"mobileCode": exactRegex(post.MobileCode),
			"seq":        *post.Seq,
		}
	}
	return bson.M{
		"nameEN":        tupleRegex(post.NameEN),
		"districtEN":    tupleRegex(post.DistrictEN),
		"openHour":      post.OpenHour,
		"dayOfWeekCode": post.DayOfWeekCode,
	}
}

func containsRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

func exactRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(term) + "$", Options: "i"}
}

// tupleRegex matches a stored column against a dedup tuple field under
// domain.NormalizeDedupText folding: case-insensitive, whitespace runs
// equivalent to single spaces.
func tupleRegex(term string) primitive.Regex {
	fields := strings.Fields(domain.NormalizeDedupText(term))
	if len(fields) == 0 {
		return primitive.Regex{Pattern: `^\s*$`}
	}
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = regexp.QuoteMeta(f)
	}
	return primitive.Regex{Pattern: `^\s*` + strings.Join(quoted, `\s+`) + `\s*$`, Options: "i"}
}

// wrapStorageErr maps connectivity faults to the transient 0401 variant so
// the boundary degrades to 503 instead of 500.
func wrapStorageErr(err error) error {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded) {
		return apperr.TransientStorage(err)
	}
	return apperr.Wrap(apperr.CodeServerError, "", err)
}
