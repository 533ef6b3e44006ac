package service

import (
	"context"

	"github.com/startlistclub/flightjournal/internal/domain"
)

// ClubAccess keeps instructors inside their own club. Pilots and flights of
// another club are reported as ErrForbidden.
type ClubAccess struct {
	pilots  domain.PilotRepository
	flights domain.FlightRepository
}

func NewClubAccess(pilots domain.PilotRepository, flights domain.FlightRepository) *ClubAccess {
	return &ClubAccess{pilots: pilots, flights: flights}
}

// Pilot fails unless the pilot exists and belongs to clubID
func (a *ClubAccess) Pilot(ctx context.Context, clubID, pilotID string) error {
	pilot, err := a.pilots.GetByID(ctx, pilotID)
	if err != nil {
		return err
	}
	return sameClub(clubID, pilot.ClubID)
}

// Flight fails unless the flight exists and was flown in clubID
func (a *ClubAccess) Flight(ctx context.Context, clubID, flightID string) error {
	flight, err := a.flights.GetByID(ctx, flightID)
	if err != nil {
		return err
	}
	return sameClub(clubID, flight.ClubID)
}

// A token without a club never matches, not even an unassigned record.
func sameClub(caller, owner string) error {
	if caller == "" || caller != owner {
		return domain.ErrForbidden
	}
	return nil
}
