package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mcoot/blogadmin/internal/model"
)

// Categories

func (s *Store) CreateCategory(ctx context.Context, category *model.Category) error {
	oid, err := idOrNew(string(category.ID))
	if err != nil {
		return fmt.Errorf("mongostore: category id: %w", err)
	}
	doc := &categoryDoc{
		ID:           oid,
		Name:         category.Name,
		ProfileImage: category.ProfileImage,
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}
	if _, err := s.col(ColCategories).InsertOne(ctx, doc); err != nil {
		return err
	}
	category.ID = model.CategoryID(oid.Hex())
	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]*model.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	docs, err := findMany[categoryDoc](ctx, s.col(ColCategories), bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Category, len(docs))
	for i, d := range docs {
		out[i] = d.toModel()
	}
	return out, nil
}

func (s *Store) CategoryNames(ctx context.Context, ids []model.CategoryID) (map[model.CategoryID]string, error) {
	names := make(map[model.CategoryID]string, len(ids))
	oids := make(bson.A, 0, len(ids))
	for _, id := range ids {
		if oid, err := bson.ObjectIDFromHex(string(id)); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return names, nil
	}

	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}}
	opts := options.Find().SetProjection(bson.D{{Key: "name", Value: 1}})
	docs, err := findMany[categoryDoc](ctx, s.col(ColCategories), filter, opts)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		names[model.CategoryID(d.ID.Hex())] = d.Name
	}
	return names, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id model.CategoryID) error {
	oid, err := parseID(string(id), model.ErrCategoryNotFound)
	if err != nil {
		return err
	}
	return deleteByID(ctx, s.col(ColCategories), oid, model.ErrCategoryNotFound)
}

func (s *Store) CountCategories(ctx context.Context) (int64, error) {
	return s.col(ColCategories).CountDocuments(ctx, bson.D{})
}

// Blogs

func (s *Store) CreateBlog(ctx context.Context, blog *model.Blog) error {
	oid, err := idOrNew(string(blog.ID))
	if err != nil {
		return fmt.Errorf("mongostore: blog id: %w", err)
	}
	if _, err := s.col(ColBlogs).InsertOne(ctx, blogFromModel(oid, blog)); err != nil {
		return err
	}
	blog.ID = model.BlogID(oid.Hex())
	return nil
}

func (s *Store) CountListedBlogs(ctx context.Context) (int64, error) {
	filter := bson.D{{Key: "status", Value: bson.D{{Key: "$in", Value: bson.A{
		string(model.BlogPublished), string(model.BlogScheduled),
	}}}}}
	return s.col(ColBlogs).CountDocuments(ctx, filter)
}

type dayBucket struct {
	Start bson.RawValue `bson:"_id"`
	Count int           `bson:"count"`
}

func (s *Store) CountVisibleByDay(ctx context.Context, q model.DayCountQuery) (map[string]int, error) {
	bounds := dayBoundaries(q)
	rows, err := aggregate[dayBucket](ctx, s.col(ColBlogs), dayCountPipeline(q, bounds))
	if err != nil {
		return nil, err
	}

	labels := make(map[int64]string, len(bounds))
	for _, b := range bounds[:len(bounds)-1] {
		labels[b.UnixMilli()] = b.Format("2006-01-02")
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		ms, ok := r.Start.DateTimeOK()
		if !ok {
			continue
		}
		if label, ok := labels[ms]; ok {
			counts[label] += r.Count
		}
	}
	return counts, nil
}

type categoryGroup struct {
	Category bson.RawValue `bson:"_id"`
	Count    int           `bson:"count"`
}

func (s *Store) CountVisibleByCategory(ctx context.Context, now time.Time) ([]model.CategoryCount, error) {
	rows, err := aggregate[categoryGroup](ctx, s.col(ColBlogs), categoryCountPipeline(now))
	if err != nil {
		return nil, err
	}

	// Null, missing and non-ObjectID references all land on the empty id.
	merged := make(map[model.CategoryID]int, len(rows))
	for _, r := range rows {
		var id model.CategoryID
		if oid, ok := r.Category.ObjectIDOK(); ok {
			id = model.CategoryID(oid.Hex())
		}
		merged[id] += r.Count
	}

	out := make([]model.CategoryCount, 0, len(merged))
	for id, n := range merged {
		out = append(out, model.CategoryCount{CategoryID: id, Count: n})
	}
	return out, nil
}

// visibleFilter matches published posts and scheduled posts whose publish
// date has passed.
func visibleFilter(now time.Time) bson.D {
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "status", Value: string(model.BlogPublished)}},
		bson.D{
			{Key: "status", Value: string(model.BlogScheduled)},
			{Key: "publishDate", Value: bson.D{{Key: "$lte", Value: now}}},
		},
	}}}
}

// effectiveDateRange matches posts whose publish date, or creation time when
// there is no publish date, lies in [since, until].
func effectiveDateRange(since, until time.Time) bson.D {
	between := bson.D{{Key: "$gte", Value: since}, {Key: "$lte", Value: until}}
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "publishDate", Value: between}},
		bson.D{
			{Key: "publishDate", Value: nil},
			{Key: "createdAt", Value: between},
		},
	}}}
}

// dayBoundaries returns the local midnights from the day containing q.Since
// through the midnight after q.Until. Consecutive boundaries are one
// calendar day apart, which is not always 24 hours.
func dayBoundaries(q model.DayCountQuery) []time.Time {
	loc := q.Location
	if loc == nil {
		loc = time.Local
	}
	since := q.Since.In(loc)
	y, m, d := since.Date()

	var bounds []time.Time
	for i := 0; ; i++ {
		b := time.Date(y, m, d+i, 0, 0, 0, 0, loc)
		bounds = append(bounds, b)
		if b.After(q.Until) {
			return bounds
		}
	}
}

// outOfRange is the $bucket default for dates outside the boundaries
const outOfRange = "out-of-range"

func dayCountPipeline(q model.DayCountQuery, bounds []time.Time) mongo.Pipeline {
	match := bson.D{{Key: "$and", Value: bson.A{
		visibleFilter(q.Now),
		effectiveDateRange(q.Since, q.Until),
	}}}

	boundaries := make(bson.A, len(bounds))
	for i, b := range bounds {
		boundaries[i] = b
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$bucket", Value: bson.D{
			{Key: "groupBy", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$publishDate", "$createdAt"}}}},
			{Key: "boundaries", Value: boundaries},
			{Key: "default", Value: outOfRange},
			{Key: "output", Value: bson.D{{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}},
		}}},
	}
}

func categoryCountPipeline(now time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: visibleFilter(now)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
}
