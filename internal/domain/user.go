package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrPilotNotFound = errors.New("pilot not found")
	ErrNoMobilePhone = errors.New("pilot has no mobile phone number")
)

// Roles carried in the access token
const (
	RolePilot      = "pilot"
	RoleInstructor = "instructor"
	RoleClubAdmin  = "club_admin"
)

// Pilot is a club member who flies training flights
type Pilot struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	ClubID      string    `json:"club_id" bson:"club_id"`
	Name        string    `json:"name" bson:"name"`
	MobilePhone string    `json:"mobile_phone,omitempty" bson:"mobile_phone,omitempty"` // E.164, used for SMS
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// DisplayName returns the pilot's name, or the fallback when the pilot is unknown
func (p *Pilot) DisplayName(fallback string) string {
	if p == nil || p.Name == "" {
		return fallback
	}
	return p.Name
}

type PilotRepository interface {
	Create(ctx context.Context, pilot *Pilot) error
	GetByID(ctx context.Context, id string) (*Pilot, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Pilot, error)
}
