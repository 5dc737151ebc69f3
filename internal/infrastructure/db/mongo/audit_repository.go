package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
)

const collectionAccountEvents = "account_events"

// AuditRepository writes the account audit trail.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAccountEvents)}
}

// InsertRoleChange appends a role edit to the account_events collection.
func (r *AuditRepository) InsertRoleChange(ctx context.Context, change domain.RoleChange) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"type":        "role_changed",
		"username":    change.Username,
		"role":        string(change.Role),
		"changed_by":  change.ChangedBy,
		"changed_at":  change.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}
