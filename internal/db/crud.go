package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yigit/studentreg/internal/pkg/apperrors"
	"github.com/yigit/studentreg/internal/pkg/validation"
)

// Collection names
const (
	CollectionStudents = "students"
)

// FindOptions narrows a FindMany query. The cursor applies Sort, then Skip,
// then Limit. Zero values leave the corresponding step out.
type FindOptions struct {
	Sort  bson.D
	Skip  int64
	Limit int64
}

// CreateOne validates input and inserts it. Nothing is written when
// validation fails. The returned document carries the assigned _id.
func CreateOne[T any](ctx context.Context, s *Store, collection string, input T, schema *validation.Schema[T]) (T, error) {
	var zero T

	doc, err := schema.Parse(input)
	if err != nil {
		return zero, err
	}

	coll, err := s.Collection(collection)
	if err != nil {
		return zero, err
	}

	raw, err := withObjectID(doc)
	if err != nil {
		return zero, fmt.Errorf("encode %s: %w", schema.Name(), err)
	}

	if _, err := coll.InsertOne(ctx, raw); err != nil {
		return zero, apperrors.NewDatabaseError("insert into "+collection, err)
	}

	var created T
	if err := bson.Unmarshal(raw, &created); err != nil {
		return zero, apperrors.NewDatabaseError("decode inserted "+collection, err)
	}
	return created, nil
}

// FindOne returns the first document matching filter, re-validated, or nil
// when nothing matches.
func FindOne[T any](ctx context.Context, s *Store, collection string, filter interface{}, schema *validation.Schema[T]) (*T, error) {
	coll, err := s.Collection(collection)
	if err != nil {
		return nil, err
	}

	var doc T
	err = coll.FindOne(ctx, normalizeFilter(filter)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("find in "+collection, err)
	}

	valid, err := schema.Parse(doc)
	if err != nil {
		return nil, err
	}
	return &valid, nil
}

// FindMany returns every document matching filter, re-validated. The result
// is empty, never nil, when nothing matches.
func FindMany[T any](ctx context.Context, s *Store, collection string, filter interface{}, schema *validation.Schema[T], opts FindOptions) ([]T, error) {
	coll, err := s.Collection(collection)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find()
	if len(opts.Sort) > 0 {
		findOpts.SetSort(opts.Sort)
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := coll.Find(ctx, normalizeFilter(filter), findOpts)
	if err != nil {
		return nil, apperrors.NewDatabaseError("find in "+collection, err)
	}

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.NewDatabaseError("read cursor of "+collection, err)
	}

	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		valid, err := schema.Parse(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, valid)
	}
	return out, nil
}

// UpdateOne applies update to the first document matching filter and returns
// the document as it is after the update, re-validated. It returns nil when
// nothing matches.
func UpdateOne[T any](ctx context.Context, s *Store, collection string, filter interface{}, update Update, schema *validation.Schema[T]) (*T, error) {
	updateDoc, err := update.document()
	if err != nil {
		return nil, err
	}

	coll, err := s.Collection(collection)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc T
	err = coll.FindOneAndUpdate(ctx, normalizeFilter(filter), updateDoc, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("update in "+collection, err)
	}

	valid, err := schema.Parse(doc)
	if err != nil {
		return nil, err
	}
	return &valid, nil
}

// DeleteOne removes the first document matching filter and reports whether
// one was removed.
func DeleteOne(ctx context.Context, s *Store, collection string, filter interface{}) (bool, error) {
	coll, err := s.Collection(collection)
	if err != nil {
		return false, err
	}

	res, err := coll.DeleteOne(ctx, normalizeFilter(filter))
	if err != nil {
		return false, apperrors.NewDatabaseError("delete from "+collection, err)
	}
	return res.DeletedCount == 1, nil
}

// DeleteMany removes every document matching filter and returns the count.
// An empty filter empties the collection.
func DeleteMany(ctx context.Context, s *Store, collection string, filter interface{}) (int64, error) {
	coll, err := s.Collection(collection)
	if err != nil {
		return 0, err
	}

	f := normalizeFilter(filter)
	if isEmptyFilter(f) {
		s.logger.Warn().Str("collection", collection).Msg("DeleteMany called with an empty filter, removing every document")
	}

	res, err := coll.DeleteMany(ctx, f)
	if err != nil {
		return 0, apperrors.NewDatabaseError("delete from "+collection, err)
	}
	return res.DeletedCount, nil
}

// CountDocuments counts documents matching filter; a nil filter counts the
// whole collection.
func CountDocuments(ctx context.Context, s *Store, collection string, filter interface{}) (int64, error) {
	coll, err := s.Collection(collection)
	if err != nil {
		return 0, err
	}

	n, err := coll.CountDocuments(ctx, normalizeFilter(filter))
	if err != nil {
		return 0, apperrors.NewDatabaseError("count "+collection, err)
	}
	return n, nil
}

// withObjectID encodes doc and makes sure it carries an _id, generating one
// when the document does not set it.
func withObjectID(doc interface{}) (bson.Raw, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if _, err := bson.Raw(raw).LookupErr("_id"); err == nil {
		return raw, nil
	}

	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	d = append(bson.D{{Key: "_id", Value: primitive.NewObjectID()}}, d...)
	return bson.Marshal(d)
}

func normalizeFilter(filter interface{}) interface{} {
	if filter == nil {
		return bson.D{}
	}
	return filter
}

func isEmptyFilter(filter interface{}) bool {
	switch f := filter.(type) {
	case bson.D:
		return len(f) == 0
	case bson.M:
		return len(f) == 0
	case map[string]interface{}:
		return len(f) == 0
	}
	return false
}
