package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrFlightNotFound     = errors.New("flight not found")
	ErrFlightNotInHistory = errors.New("flight is not part of the pilot's flight history")
)

// Flight is a single start-list entry. Flights are owned by the start list,
// the journal only reads them.
type Flight struct {
	ID              string     `json:"id" bson:"_id"` // UUID issued by the start list
	ClubID          string     `json:"club_id" bson:"club_id"`
	PilotID         string     `json:"pilot_id" bson:"pilot_id"`
	BackseatPilotID string     `json:"backseat_pilot_id,omitempty" bson:"backseat_pilot_id,omitempty"`
	Date            time.Time  `json:"date" bson:"date"`
	Departure       *time.Time `json:"departure,omitempty" bson:"departure,omitempty"`
	Landing         *time.Time `json:"landing,omitempty" bson:"landing,omitempty"`
}

// FlightTime returns landing minus departure, or zero while either is unknown
func (f *Flight) FlightTime() time.Duration {
	if f.Departure == nil || f.Landing == nil || f.Landing.Before(*f.Departure) {
		return 0
	}
	return f.Landing.Sub(*f.Departure)
}

type FlightRepository interface {
	Create(ctx context.Context, flight *Flight) error
	GetByID(ctx context.Context, id string) (*Flight, error)
	// GetByPilot returns every flight of the pilot sorted by date ascending
	GetByPilot(ctx context.Context, pilotID string) ([]*Flight, error)
}
