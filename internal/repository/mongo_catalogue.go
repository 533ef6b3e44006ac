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

const catalogueDocumentID = "default"

// MongoCatalogueRepository keeps the reference catalogue in a single document
type MongoCatalogueRepository struct {
	collection *mongo.Collection
}

func NewMongoCatalogueRepository(db *mongo.Database) *MongoCatalogueRepository {
	return &MongoCatalogueRepository{
		collection: db.Collection("reference_catalogue"),
	}
}

func (r *MongoCatalogueRepository) Get(ctx context.Context) (*domain.ReferenceCatalogue, error) {
	var catalogue domain.ReferenceCatalogue
	err := r.collection.FindOne(ctx, bson.M{"_id": catalogueDocumentID}).Decode(&catalogue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &domain.ReferenceCatalogue{
				ID:             catalogueDocumentID,
				Maneuvers:      []domain.FlightManeuver{},
				WindDirections: []int{},
				WindSpeeds:     []int{},
			}, nil
		}
		return nil, err
	}
	return &catalogue, nil
}

func (r *MongoCatalogueRepository) Save(ctx context.Context, catalogue *domain.ReferenceCatalogue) error {
	catalogue.ID = catalogueDocumentID
	catalogue.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": catalogueDocumentID}, catalogue, opts); err != nil {
		return fmt.Errorf("failed to save reference catalogue: %w", err)
	}
	return nil
}
