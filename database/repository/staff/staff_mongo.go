package staffRepo

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

// MongoStaffRepo implements StaffRepository using MongoDB.
type MongoStaffRepo struct {
	coll *mongo.Collection
}

// NewMongoStaffRepo creates a new instance of StaffRepository using MongoDB.
func NewMongoStaffRepo() StaffRepository {
	repo := &MongoStaffRepo{coll: database.Collection("staff")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoStaffRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "isActive", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new staff document.
func (r *MongoStaffRepo) Create(staff *models.Staff) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	staff.CreatedAt = now
	staff.UpdatedAt = now
	if staff.JoiningDate.IsZero() {
		staff.JoiningDate = now
	}

	if _, err := r.coll.InsertOne(ctx, staff); err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return nil
}

// GetByID retrieves a staff member by its unique ID.
func (r *MongoStaffRepo) GetByID(id string) (*models.Staff, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var staff models.Staff
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&staff); err != nil {
		return nil, fmt.Errorf("failed to fetch staff with id %s: %w", id, err)
	}
	return &staff, nil
}

// GetByIDs retrieves staff members matching any of the given IDs.
func (r *MongoStaffRepo) GetByIDs(ids []string) ([]models.Staff, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve staff by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var staff []models.Staff
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, fmt.Errorf("failed to decode staff: %w", err)
	}
	return staff, nil
}

// GetByTenant retrieves all staff of a tenant.
func (r *MongoStaffRepo) GetByTenant(tenantID string) ([]models.Staff, error) {
	return r.find(bson.M{"tenantId": tenantID})
}

// GetActiveByTenant retrieves all active staff of a tenant.
func (r *MongoStaffRepo) GetActiveByTenant(tenantID string) ([]models.Staff, error) {
	return r.find(bson.M{"tenantId": tenantID, "isActive": true})
}

func (r *MongoStaffRepo) find(filter bson.M) ([]models.Staff, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve staff: %w", err)
	}
	defer cursor.Close(ctx)

	var staff []models.Staff
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, fmt.Errorf("failed to decode staff: %w", err)
	}
	return staff, nil
}

// Update modifies an existing staff document.
func (r *MongoStaffRepo) Update(staff *models.Staff) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	staff.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": staff.ID}, bson.M{"$set": staff})
	if err != nil {
		return fmt.Errorf("failed to update staff with id %s: %w", staff.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("staff with id %s not found", staff.ID)
	}
	return nil
}

// RecordCompletion bumps the performance counters after a completed service.
func (r *MongoStaffRepo) RecordCompletion(staffID string, revenue float64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{
			"performance.servicesCompleted": 1,
			"performance.revenueGenerated":  revenue,
		},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": staffID}, update); err != nil {
		return fmt.Errorf("failed to record completion for staff %s: %w", staffID, err)
	}
	return nil
}

// RecordRating folds a new rating into the rolling average.
func (r *MongoStaffRepo) RecordRating(staffID string, rating int) error {
	staff, err := r.GetByID(staffID)
	if err != nil {
		return err
	}

	perf := staff.Performance
	newTotal := perf.TotalRatings + 1
	perf.AverageRating = (perf.AverageRating*float64(perf.TotalRatings) + float64(rating)) / float64(newTotal)
	perf.TotalRatings = newTotal

	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"performance": perf, "updatedAt": time.Now()}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": staffID}, update); err != nil {
		return fmt.Errorf("failed to record rating for staff %s: %w", staffID, err)
	}
	return nil
}
