package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	recorderrors "travelog/internal/records/errors"
	"travelog/pkg/config"
	"travelog/pkg/model"
)

const (
	CollectionName = "Records"
)

type RecordRepository interface {
	Find(ctx context.Context, query model.ListQuery) ([]model.Record, error)
	FindByID(ctx context.Context, id string) (model.Record, error)
	CountByID(ctx context.Context, id string) (int64, error)
	Insert(ctx context.Context, record model.Record) (string, error)
	Replace(ctx context.Context, id string, record model.Record) (bool, error)
	SetFields(ctx context.Context, id string, fields model.Record) (bool, error)
	Delete(ctx context.Context, id string) error
}

type mongoRecordRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRecordRepository(cfg *config.Config) RecordRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRecordRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout bounds a store call without extending a deadline the request
// already carries.
func (r *mongoRecordRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			return context.WithTimeout(ctx, remaining)
		}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoRecordRepository) Find(ctx context.Context, query model.ListQuery) ([]model.Record, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(sortSpec(query.Sort)).
		SetSkip(query.Skip()).
		SetLimit(int64(query.Limit))

	cursor, err := r.collection.Find(ctx, filterSpec(query.Filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find records: %w", err)
	}
	defer cursor.Close(ctx)

	records := []model.Record{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	return records, nil
}

func (r *mongoRecordRepository) FindByID(ctx context.Context, id string) (model.Record, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", recorderrors.ErrInvalidID, id)
	}

	var record model.Record
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, recorderrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find record: %w", err)
	}

	return record, nil
}

func (r *mongoRecordRepository) CountByID(ctx context.Context, id string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", recorderrors.ErrInvalidID, id)
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objectID})
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

func (r *mongoRecordRepository) Insert(ctx context.Context, record model.Record) (string, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, record.WithoutID())
	if err != nil {
		return "", fmt.Errorf("failed to insert record: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted ID type %T", result.InsertedID)
	}
	return oid.Hex(), nil
}

// Replace swaps the full document while keeping its identifier. Returns false
// when no document matched.
func (r *mongoRecordRepository) Replace(ctx context.Context, id string, record model.Record) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("%w: %s", recorderrors.ErrInvalidID, id)
	}

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": objectID}, record.WithoutID())
	if err != nil {
		return false, fmt.Errorf("failed to replace record: %w", err)
	}

	return result.MatchedCount > 0, nil
}

// SetFields applies a shallow $set of the named fields to at most one document.
func (r *mongoRecordRepository) SetFields(ctx context.Context, id string, fields model.Record) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("%w: %s", recorderrors.ErrInvalidID, id)
	}

	update := bson.M{"$set": bson.M(fields.WithoutID())}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return false, fmt.Errorf("failed to update record: %w", err)
	}

	return result.MatchedCount > 0, nil
}

func (r *mongoRecordRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", recorderrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	if result.DeletedCount == 0 {
		return recorderrors.ErrNotFound
	}
	return nil
}

func filterSpec(filter map[string]string) bson.M {
	spec := bson.M{}
	for field, value := range filter {
		spec[field] = value
	}
	return spec
}

// sortSpec builds a deterministic sort document; map iteration order would
// otherwise vary between requests.
func sortSpec(sortBy map[string]int) bson.D {
	fields := make([]string, 0, len(sortBy))
	for field := range sortBy {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	spec := bson.D{}
	for _, field := range fields {
		spec = append(spec, bson.E{Key: field, Value: sortBy[field]})
	}
	return spec
}
