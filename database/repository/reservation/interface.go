package reservationRepo

import (
	"context"

	"wingman/database"
	"wingman/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Ledger is the durable store confirmed reservations are appended to.
type Ledger interface {
	Append(ctx context.Context, res models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	List(ctx context.Context) ([]models.Reservation, error)
}

type mongoLedger struct {
	coll *mongo.Collection
}

// NewMongoLedger returns a new Ledger instance using MongoDB.
func NewMongoLedger() Ledger {
	db := database.MongoClient.Database("wingman")
	return &mongoLedger{
		coll: db.Collection("reservations"),
	}
}
