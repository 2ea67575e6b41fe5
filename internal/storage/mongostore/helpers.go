package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// wrapError maps a missing document onto notFound, the sentinel for the
// collection being queried.
func wrapError(err, notFound error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFound
	}
	return err
}

// parseID converts a hex id to an ObjectID. A malformed id can never match a
// document, so it is reported as notFound.
func parseID(id string, notFound error) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, notFound
	}
	return oid, nil
}

// idOrNew parses id when set and allocates a fresh ObjectID otherwise
func idOrNew(id string) (bson.ObjectID, error) {
	if id == "" {
		return bson.NewObjectID(), nil
	}
	return bson.ObjectIDFromHex(id)
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.D, notFound error) (*T, error) {
	var result T
	if err := col.FindOne(ctx, filter).Decode(&result); err != nil {
		return nil, wrapError(err, notFound)
	}
	return &result, nil
}

func findMany[T any](ctx context.Context, col *mongo.Collection, filter bson.D, opts ...options.Lister[options.FindOptions]) ([]*T, error) {
	cursor, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []*T{}
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		results = append(results, &item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// insertOne reports a unique index violation as duplicate
func insertOne(ctx context.Context, col *mongo.Collection, doc any, duplicate error) error {
	_, err := col.InsertOne(ctx, doc)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return duplicate
	}
	return err
}

func deleteByID(ctx context.Context, col *mongo.Collection, id bson.ObjectID, notFound error) error {
	res, err := col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return wrapError(err, notFound)
	}
	if res.DeletedCount == 0 {
		return notFound
	}
	return nil
}

// updateFields applies a $set of the given fields to one document. Nothing
// else on the document is touched and no schema validation runs.
func updateFields(ctx context.Context, col *mongo.Collection, id bson.ObjectID, fields bson.D, notFound error) error {
	res, err := col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: fields}})
	if err != nil {
		return wrapError(err, notFound)
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}

func aggregate[T any](ctx context.Context, col *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
