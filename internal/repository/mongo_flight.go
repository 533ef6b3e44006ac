package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/startlistclub/flightjournal/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlightRepository reads the start list's flights. Ids are UUID strings
// issued by the start list, not object ids.
type MongoFlightRepository struct {
	collection *mongo.Collection
}

func NewMongoFlightRepository(db *mongo.Database) *MongoFlightRepository {
	coll := db.Collection("flights")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "pilot_id", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "club_id", Value: 1}}},
	})

	return &MongoFlightRepository{
		collection: coll,
	}
}

func (r *MongoFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	if flight.ID == "" {
		return domain.ErrInvalidID
	}
	if _, err := r.collection.InsertOne(ctx, flight); err != nil {
		return fmt.Errorf("failed to create flight: %w", err)
	}
	return nil
}

func (r *MongoFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	var flight domain.Flight
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&flight)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &flight, nil
}

func (r *MongoFlightRepository) GetByPilot(ctx context.Context, pilotID string) ([]*domain.Flight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"pilot_id": pilotID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	flights := []*domain.Flight{}
	if err := cursor.All(ctx, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}
