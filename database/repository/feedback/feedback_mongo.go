package feedbackRepo

import (
	"context"
	"fmt"
	"time"

	"glowdesk/database"
	"glowdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFeedbackRepo implements FeedbackRepository using MongoDB.
type MongoFeedbackRepo struct {
	coll *mongo.Collection
}

// NewMongoFeedbackRepo creates a new instance of FeedbackRepository using MongoDB.
func NewMongoFeedbackRepo() FeedbackRepository {
	repo := &MongoFeedbackRepo{coll: database.Collection("feedback")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoFeedbackRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new feedback document.
func (r *MongoFeedbackRepo) Create(feedback *models.Feedback) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	feedback.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, feedback); err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// GetByID retrieves feedback by its unique ID.
func (r *MongoFeedbackRepo) GetByID(id string) (*models.Feedback, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var feedback models.Feedback
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&feedback); err != nil {
		return nil, fmt.Errorf("failed to fetch feedback with id %s: %w", id, err)
	}
	return &feedback, nil
}

// GetByTenant retrieves a tenant's feedback narrowed by the filter, newest first.
func (r *MongoFeedbackRepo) GetByTenant(tenantID string, filter models.FeedbackFilter) ([]models.Feedback, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{"tenantId": tenantID}
	if filter.StaffID != "" {
		query["staffId"] = filter.StaffID
	}
	if filter.MinRating > 0 {
		query["rating"] = bson.M{"$gte": filter.MinRating}
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		rangeQuery := bson.M{}
		if filter.StartDate != nil {
			rangeQuery["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			rangeQuery["$lt"] = *filter.EndDate
		}
		query["createdAt"] = rangeQuery
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve feedback: %w", err)
	}
	defer cursor.Close(ctx)

	var feedback []models.Feedback
	if err := cursor.All(ctx, &feedback); err != nil {
		return nil, fmt.Errorf("failed to decode feedback: %w", err)
	}
	return feedback, nil
}

// AverageRating returns a tenant's mean rating and the rating count.
func (r *MongoFeedbackRepo) AverageRating(tenantID string) (float64, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"tenantId": tenantID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to average ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Average float64 `bson:"average"`
		Count   int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, 0, fmt.Errorf("failed to decode rating aggregate: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].Average, results[0].Count, nil
}
