package clientRepo

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

// MongoClientRepo implements ClientRepository using MongoDB.
type MongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo creates a new instance of ClientRepository using MongoDB.
func NewMongoClientRepo() ClientRepository {
	repo := &MongoClientRepo{coll: database.Collection("clients")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoClientRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// One client per phone number within a tenant.
		{Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new client document.
func (r *MongoClientRepo) Create(client *models.Client) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	client.CreatedAt = now
	client.UpdatedAt = now
	if client.LoyaltyTier == "" {
		client.LoyaltyTier = models.TierSilver
	}

	if _, err := r.coll.InsertOne(ctx, client); err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// GetByID retrieves a client by its unique ID.
func (r *MongoClientRepo) GetByID(id string) (*models.Client, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var client models.Client
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&client); err != nil {
		return nil, fmt.Errorf("failed to fetch client with id %s: %w", id, err)
	}
	return &client, nil
}

// GetByPhone retrieves a client by tenant and phone number. Returns (nil, nil)
// when no client exists.
func (r *MongoClientRepo) GetByPhone(tenantID, phone string) (*models.Client, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var client models.Client
	err := r.coll.FindOne(ctx, bson.M{"tenantId": tenantID, "phone": phone}).Decode(&client)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch client with phone %s: %w", phone, err)
	}
	return &client, nil
}

// GetByTenant retrieves a page of clients matching the query, plus the total count.
func (r *MongoClientRepo) GetByTenant(tenantID string, q ClientQuery) ([]models.Client, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"tenantId": tenantID}
	if q.Search != "" {
		pattern := bson.M{"$regex": q.Search, "$options": "i"}
		filter["$or"] = []bson.M{
			{"name": pattern},
			{"phone": bson.M{"$regex": q.Search}},
			{"email": pattern},
		}
	}
	if q.LoyaltyTier != "" {
		filter["loyaltyTier"] = q.LoyaltyTier
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve clients: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []models.Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, 0, fmt.Errorf("failed to decode clients: %w", err)
	}
	return clients, total, nil
}

// Update modifies an existing client document.
func (r *MongoClientRepo) Update(client *models.Client) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	client.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": client.ID}, bson.M{"$set": client})
	if err != nil {
		return fmt.Errorf("failed to update client with id %s: %w", client.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("client with id %s not found", client.ID)
	}
	return nil
}

// IncrementVisits bumps the visit counter after a booking.
func (r *MongoClientRepo) IncrementVisits(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$inc": bson.M{"totalVisits": 1}, "$set": bson.M{"updatedAt": time.Now()}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("failed to increment visits for client %s: %w", id, err)
	}
	return nil
}

// AddSpend adds an invoice total to the client's running spend.
func (r *MongoClientRepo) AddSpend(id string, amount float64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$inc": bson.M{"totalSpend": amount}, "$set": bson.M{"updatedAt": time.Now()}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("failed to add spend for client %s: %w", id, err)
	}
	return nil
}

// SetLoyalty writes a recomputed loyalty tier and paid-spend total.
func (r *MongoClientRepo) SetLoyalty(id, tier string, totalSpend float64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"loyaltyTier": tier, "totalSpend": totalSpend, "updatedAt": time.Now()}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("failed to set loyalty for client %s: %w", id, err)
	}
	return nil
}

// CountByVisits counts clients with exactly one visit (new) or more (repeat).
func (r *MongoClientRepo) CountByVisits(tenantID string, repeat bool) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"tenantId": tenantID}
	if repeat {
		filter["totalVisits"] = bson.M{"$gt": 1}
	} else {
		filter["totalVisits"] = 1
	}

	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count clients by visits: %w", err)
	}
	return count, nil
}

// GetWithBirthdays retrieves all clients that have a date of birth on record.
func (r *MongoClientRepo) GetWithBirthdays() ([]models.Client, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"dateOfBirth": bson.M{"$ne": nil}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve clients with birthdays: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []models.Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("failed to decode clients: %w", err)
	}
	return clients, nil
}
