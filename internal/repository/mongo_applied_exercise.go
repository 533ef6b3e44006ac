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

type MongoAppliedExerciseRepository struct {
	collection *mongo.Collection
}

func NewMongoAppliedExerciseRepository(db *mongo.Database) *MongoAppliedExerciseRepository {
	coll := db.Collection("applied_exercises")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "client_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "flight_id", Value: 1}, {Key: "created_at", Value: 1}}},
	})

	return &MongoAppliedExerciseRepository{
		collection: coll,
	}
}

// Create inserts the record. A retried request carrying an already stored
// client_id gets the stored record back instead of a duplicate.
func (r *MongoAppliedExerciseRepository) Create(ctx context.Context, applied *domain.AppliedExercise) error {
	applied.CreatedAt = time.Now()
	objID := primitive.NewObjectID()

	doc := bson.M{
		"_id":         objID,
		"client_id":   applied.ClientID,
		"flight_id":   applied.FlightID,
		"program_id":  applied.ProgramID,
		"lesson_id":   applied.LessonID,
		"exercise_id": applied.ExerciseID,
		"action":      applied.Action,
		"created_at":  applied.CreatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			existing, getErr := r.getByClientID(ctx, applied.ClientID)
			if getErr != nil {
				return fmt.Errorf("failed to load existing applied exercise: %w", getErr)
			}
			*applied = *existing
			return nil
		}
		return fmt.Errorf("failed to create applied exercise: %w", err)
	}

	applied.ID = objID.Hex()
	return nil
}

func (r *MongoAppliedExerciseRepository) getByClientID(ctx context.Context, clientID string) (*domain.AppliedExercise, error) {
	var applied domain.AppliedExercise
	err := r.collection.FindOne(ctx, bson.M{"client_id": clientID}).Decode(&applied)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &applied, nil
}

func (r *MongoAppliedExerciseRepository) GetByFlightIDs(ctx context.Context, flightIDs []string) ([]*domain.AppliedExercise, error) {
	applied := []*domain.AppliedExercise{}
	if len(flightIDs) == 0 {
		return applied, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"flight_id": bson.M{"$in": flightIDs}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &applied); err != nil {
		return nil, err
	}
	return applied, nil
}
