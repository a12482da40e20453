package appointmentRepo

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

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &MongoAppointmentRepo{coll: database.Collection("appointments")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "scheduledAt", Value: 1}}},
		// Conflict lookups hit staff + branch + time.
		{Keys: bson.D{{Key: "staffId", Value: 1}, {Key: "branchId", Value: 1}, {Key: "scheduledAt", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new appointment document.
func (r *MongoAppointmentRepo) Create(appointment *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now
	if appointment.Status == "" {
		appointment.Status = models.StatusBooked
	}

	if _, err := r.coll.InsertOne(ctx, appointment); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its unique ID.
func (r *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appointment models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appointment); err != nil {
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &appointment, nil
}

// GetByTenant retrieves a tenant's appointments narrowed by the filter,
// newest first.
func (r *MongoAppointmentRepo) GetByTenant(tenantID string, filter models.AppointmentFilter) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{"tenantId": tenantID}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.StaffID != "" {
		query["staffId"] = filter.StaffID
	}
	if filter.ClientID != "" {
		query["clientId"] = filter.ClientID
	}
	if filter.BranchID != "" {
		query["branchId"] = filter.BranchID
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		rangeQuery := bson.M{}
		if filter.StartDate != nil {
			rangeQuery["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			rangeQuery["$lt"] = *filter.EndDate
		}
		query["scheduledAt"] = rangeQuery
	}

	opts := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appointments, nil
}

// Update modifies an existing appointment document.
func (r *MongoAppointmentRepo) Update(appointment *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	appointment.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": appointment.ID}, bson.M{"$set": appointment})
	if err != nil {
		return fmt.Errorf("failed to update appointment with id %s: %w", appointment.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment with id %s not found", appointment.ID)
	}
	return nil
}

// UpdateStatus transitions an appointment, stamping completedAt when given.
func (r *MongoAppointmentRepo) UpdateStatus(id, status string, completedAt *time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"status": status, "updatedAt": time.Now()}
	if completedAt != nil {
		set["completedAt"] = *completedAt
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update status of appointment %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment with id %s not found", id)
	}
	return nil
}

// HasConflict checks for a booked or ongoing appointment for the same staff
// and branch within the conflict window around at.
func (r *MongoAppointmentRepo) HasConflict(staffID, branchID string, at time.Time) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"staffId":  staffID,
		"branchId": branchID,
		"status":   bson.M{"$in": []string{models.StatusBooked, models.StatusOngoing}},
		"scheduledAt": bson.M{
			"$gte": at.Add(-models.ConflictWindow),
			"$lte": at.Add(models.ConflictWindow),
		},
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check appointment conflicts: %w", err)
	}
	return count > 0, nil
}

// GetForStaffOnDay retrieves a staff member's booked and ongoing appointments
// for the calendar day containing day.
func (r *MongoAppointmentRepo) GetForStaffOnDay(staffID string, day time.Time) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	filter := bson.M{
		"staffId":     staffID,
		"status":      bson.M{"$in": []string{models.StatusBooked, models.StatusOngoing}},
		"scheduledAt": bson.M{"$gte": start, "$lt": end},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve staff appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appointments, nil
}

// GetBetween retrieves all of a tenant's appointments scheduled in [from, to).
func (r *MongoAppointmentRepo) GetBetween(tenantID string, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"tenantId":    tenantID,
		"scheduledAt": bson.M{"$gte": from, "$lt": to},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appointments, nil
}

// CountByStatus counts a tenant's appointments with the given status in [from, to).
func (r *MongoAppointmentRepo) CountByStatus(tenantID, status string, from, to time.Time) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"tenantId":    tenantID,
		"status":      status,
		"scheduledAt": bson.M{"$gte": from, "$lt": to},
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}
