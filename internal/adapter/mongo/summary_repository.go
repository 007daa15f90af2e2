package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

type SummaryRepository struct {
	collection *mongo.Collection
}

var _ ports.SummaryRepository = (*SummaryRepository)(nil)

func NewSummaryRepository(db *mongo.Database) *SummaryRepository {
	return &SummaryRepository{collection: db.Collection(summariesCollection)}
}

func (r *SummaryRepository) ListRecent(ctx context.Context, userID string, limit int) ([]domain.Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{"userId": userID}, opts)
}

func (r *SummaryRepository) GetByDate(ctx context.Context, userID, date string) (domain.Summary, error) {
	var doc summaryDocument
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "date": date}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Summary{}, domain.ErrSummaryNotFound
		}
		return domain.Summary{}, err
	}
	return doc.toDomain(), nil
}

// Upsert is a single FindOneAndUpdate against the unique (userId, date)
// index; the last write wins and createdAt survives replacement.
func (r *SummaryRepository) Upsert(ctx context.Context, summary domain.Summary) (domain.Summary, error) {
	filter := bson.M{"userId": summary.UserID, "date": summary.Date}
	update := bson.M{
		"$set": bson.M{
			"summary":        summary.Summary,
			"taskCount":      summary.TaskCount,
			"categories":     summary.Categories,
			"completedTasks": newCompletedTaskDocuments(summary.CompletedTasks),
			"updatedAt":      summary.UpdatedAt,
		},
		"$setOnInsert": bson.M{"createdAt": summary.CreatedAt},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc summaryDocument
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Summary{}, domain.ErrSummaryConflict
		}
		return domain.Summary{}, err
	}
	return doc.toDomain(), nil
}

func (r *SummaryRepository) DeleteByDate(ctx context.Context, userID, date string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "date": date})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrSummaryNotFound
	}
	return nil
}

func (r *SummaryRepository) ListRange(ctx context.Context, userID, startDate, endDate string) ([]domain.Summary, error) {
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": startDate, "$lte": endDate},
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
}

func (r *SummaryRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Summary, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var docs []summaryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	summaries := make([]domain.Summary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, doc.toDomain())
	}
	return summaries, nil
}
