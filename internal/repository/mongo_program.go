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

// MongoProgramRepository stores training programs with their lessons and
// exercises embedded
type MongoProgramRepository struct {
	collection *mongo.Collection
}

func NewMongoProgramRepository(db *mongo.Database) *MongoProgramRepository {
	coll := db.Collection("training_programs")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mod := mongo.IndexModel{
		Keys:    bson.M{"short_name": 1},
		Options: options.Index().SetUnique(true),
	}
	coll.Indexes().CreateOne(ctx, mod)

	return &MongoProgramRepository{
		collection: coll,
	}
}

func (r *MongoProgramRepository) List(ctx context.Context) ([]*domain.TrainingProgram, error) {
	opts := options.Find().SetSort(bson.D{{Key: "short_name", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	programs := []*domain.TrainingProgram{}
	if err := cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

func (r *MongoProgramRepository) GetByID(ctx context.Context, id string) (*domain.TrainingProgram, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var program domain.TrainingProgram
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&program)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProgramNotFound
		}
		return nil, err
	}
	return &program, nil
}

// Upsert creates the program when ID is empty, otherwise replaces it
func (r *MongoProgramRepository) Upsert(ctx context.Context, program *domain.TrainingProgram) error {
	now := time.Now()
	program.UpdatedAt = now

	var oid primitive.ObjectID
	if program.ID == "" {
		oid = primitive.NewObjectID()
		program.ID = oid.Hex()
	} else {
		var err error
		if oid, err = primitive.ObjectIDFromHex(program.ID); err != nil {
			return domain.ErrInvalidID
		}
	}

	lessons := program.Lessons
	if lessons == nil {
		lessons = []domain.TrainingLesson{}
	}

	update := bson.M{
		"$set": bson.M{
			"short_name": program.ShortName,
			"name":       program.Name,
			"lessons":    lessons,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var stored domain.TrainingProgram
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&stored)
	if err != nil {
		return fmt.Errorf("failed to upsert training program: %w", err)
	}

	program.CreatedAt = stored.CreatedAt
	return nil
}
