package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
)

const collectionVehicles = "cars"

type VehicleRepository struct {
	col *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	return &VehicleRepository{col: db.Collection(collectionVehicles)}
}

// vehicleFilter translates the query's search term into a brand-or-model
// match. The term is escaped so it matches literally.
func vehicleFilter(q domain.VehicleQuery) bson.M {
	if !q.Filtered() {
		return bson.M{}
	}
	rx := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"brand": rx},
		bson.M{"model": rx},
	}}
}

// FindAll returns matching records in natural order. No sort is sent to the
// server; ordering is applied by the caller with a stable sort.
func (r *VehicleRepository) FindAll(ctx context.Context, q domain.VehicleQuery) ([]domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, vehicleFilter(q))
	if err != nil {
		return nil, fmt.Errorf("find vehicles: %w", err)
	}

	out := []domain.Vehicle{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("find vehicles: decode: %w", err)
	}
	return out, nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id int) (*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.Vehicle
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return &v, nil
}

// InsertMany writes records in order; the first failure stops the batch.
func (r *VehicleRepository) InsertMany(ctx context.Context, vs []domain.Vehicle) error {
	if len(vs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	docs := make([]interface{}, len(vs))
	for i := range vs {
		docs[i] = vs[i]
	}
	_, err := r.col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		return fmt.Errorf("insert vehicles: %w", err)
	}
	return nil
}

func (r *VehicleRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates necessary indexes on the vehicles collection.
func (r *VehicleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "brand", Value: 1}}},
		{Keys: bson.D{{Key: "model", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
