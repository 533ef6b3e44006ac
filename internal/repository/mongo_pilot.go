package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/startlistclub/flightjournal/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPilotRepository implements domain.PilotRepository
type MongoPilotRepository struct {
	collection *mongo.Collection
}

func NewMongoPilotRepository(db *mongo.Database) *MongoPilotRepository {
	coll := db.Collection("pilots")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "club_id", Value: 1}}},
	})

	return &MongoPilotRepository{
		collection: coll,
	}
}

func (r *MongoPilotRepository) Create(ctx context.Context, pilot *domain.Pilot) error {
	pilot.CreatedAt = time.Now()
	pilot.UpdatedAt = time.Now()
	objID := primitive.NewObjectID()
	pilot.ID = objID.Hex()

	doc := bson.M{
		"_id":          objID,
		"club_id":      pilot.ClubID,
		"name":         pilot.Name,
		"mobile_phone": pilot.MobilePhone,
		"created_at":   pilot.CreatedAt,
		"updated_at":   pilot.UpdatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create pilot: %w", err)
	}
	return nil
}

func (r *MongoPilotRepository) GetByID(ctx context.Context, id string) (*domain.Pilot, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var pilot domain.Pilot
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&pilot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPilotNotFound
		}
		return nil, err
	}
	return &pilot, nil
}

// GetByIDs skips ids that are not valid object ids
func (r *MongoPilotRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Pilot, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*domain.Pilot{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	pilots := []*domain.Pilot{}
	if err := cursor.All(ctx, &pilots); err != nil {
		return nil, err
	}
	return pilots, nil
}

func objectIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	return oids
}
