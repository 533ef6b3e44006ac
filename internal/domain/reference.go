package domain

import (
	"context"
	"time"
)

// ReferenceCatalogue holds the static lookup lists used to populate
// selection controls. It is not pilot specific.
type ReferenceCatalogue struct {
	ID             string           `json:"-" bson:"_id"`
	Maneuvers      []FlightManeuver `json:"maneuvers" bson:"maneuvers"`
	WindDirections []int            `json:"wind_directions" bson:"wind_directions"` // degrees
	WindSpeeds     []int            `json:"wind_speeds" bson:"wind_speeds"`         // knots
	UpdatedAt      time.Time        `json:"updated_at" bson:"updated_at"`
}

// DefaultReferenceCatalogue returns the catalogue the seed command installs:
// every maneuver, wind directions in 45° steps and wind speeds in 5kn steps
func DefaultReferenceCatalogue() *ReferenceCatalogue {
	c := &ReferenceCatalogue{Maneuvers: AllFlightManeuvers()}
	for v := 0; v < 360; v += 45 {
		c.WindDirections = append(c.WindDirections, v)
	}
	for v := 0; v < 30; v += 5 {
		c.WindSpeeds = append(c.WindSpeeds, v)
	}
	return c
}

type CatalogueRepository interface {
	// Get returns the catalogue; a missing catalogue yields empty lists
	Get(ctx context.Context) (*ReferenceCatalogue, error)
	Save(ctx context.Context, catalogue *ReferenceCatalogue) error
}
