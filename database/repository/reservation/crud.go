package reservationRepo

import (
	"context"
	"time"

	"wingman/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Append inserts a confirmed reservation into the ledger.
func (r *mongoLedger) Append(ctx context.Context, res models.Reservation) error {
	if res.ID == "" {
		res.ID = uuid.New().String()[:8]
	}
	res.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, res)
	return err
}

// GetByID returns a reservation by its ID.
func (r *mongoLedger) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

// List returns all reservations, newest first.
func (r *mongoLedger) List(ctx context.Context) ([]models.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Reservation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
