package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/botica/citas-api/internal/core/domain"
	"github.com/botica/citas-api/internal/core/ports"
)

const auditCollection = "cita_events"

// AuditRepository implements ports.AuditRepository on the cita_events
// collection.
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository creates an AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// EnsureIndexes creates the index History sorts on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(auditCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "cita_id", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("mongo index %s: %w", auditCollection, err)
	}
	return nil
}

// Record appends a status change. An empty EventID gets a fresh UUID.
func (r *AuditRepository) Record(ctx context.Context, change domain.StatusChange) error {
	if change.EventID == "" {
		change.EventID = uuid.NewString()
	}
	change.Timestamp = change.Timestamp.UTC()
	if _, err := r.coll.InsertOne(ctx, change); err != nil {
		return fmt.Errorf("insert status change: %w", err)
	}
	return nil
}

// History returns the status changes of an appointment, oldest first.
func (r *AuditRepository) History(ctx context.Context, citaID int64) ([]domain.StatusChange, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"cita_id": citaID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find status changes: %w", err)
	}
	defer cur.Close(ctx)

	out := []domain.StatusChange{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode status changes: %w", err)
	}
	return out, nil
}
