package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/startlistclub/flightjournal/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAnnotationRepository stores one instructor annotation per flight
type MongoAnnotationRepository struct {
	collection *mongo.Collection
}

func NewMongoAnnotationRepository(db *mongo.Database) *MongoAnnotationRepository {
	coll := db.Collection("flight_annotations")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mod := mongo.IndexModel{
		Keys:    bson.M{"flight_id": 1},
		Options: options.Index().SetUnique(true),
	}
	coll.Indexes().CreateOne(ctx, mod)

	return &MongoAnnotationRepository{
		collection: coll,
	}
}

func (r *MongoAnnotationRepository) GetByFlightIDs(ctx context.Context, flightIDs []string) ([]*domain.TrainingFlightAnnotation, error) {
	annotations := []*domain.TrainingFlightAnnotation{}
	if len(flightIDs) == 0 {
		return annotations, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"flight_id": bson.M{"$in": flightIDs}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &annotations); err != nil {
		return nil, err
	}
	return annotations, nil
}

// Upsert replaces the annotation of annotation.FlightID, creating it if needed
func (r *MongoAnnotationRepository) Upsert(ctx context.Context, annotation *domain.TrainingFlightAnnotation) error {
	now := time.Now()
	annotation.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"note":                annotation.Note,
			"start_annotation":    annotation.StartAnnotation,
			"flight_annotation":   annotation.FlightAnnotation,
			"approach_annotation": annotation.ApproachAnnotation,
			"landing_annotation":  annotation.LandingAnnotation,
			"maneuvers":           annotation.Maneuvers,
			"weather":             annotation.Weather,
			"updated_at":          now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var stored domain.TrainingFlightAnnotation
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"flight_id": annotation.FlightID}, update, opts).Decode(&stored)
	if err != nil {
		return fmt.Errorf("failed to upsert annotation: %w", err)
	}

	annotation.ID = stored.ID
	annotation.CreatedAt = stored.CreatedAt
	return nil
}
