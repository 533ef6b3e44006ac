package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrAnnotationNotFound = errors.New("flight annotation not found")

// FlightPhaseAnnotation is the instructor's verdict on one phase of a flight
type FlightPhaseAnnotation int

const (
	PhaseOk FlightPhaseAnnotation = iota
	PhaseAlmostOk
	PhaseInstructorGuidanceNeeded
	PhaseInstructorTakeoverNeeded
	PhaseUnstableDirection
	PhaseUnstableSpeed
	PhaseSpeedTooHigh
	PhaseSpeedTooLow
	PhaseUnstablePosition
	PhasePositionTooHigh
	PhasePositionTooLow
	PhaseFlareTooHigh
	PhaseFlareTooLow
	PhaseSkull
)

var phaseAnnotationNames = [...]string{
	"Ok",
	"AlmostOk",
	"InstructorGuidanceNeeded",
	"InstructorTakeoverNeeded",
	"UnstableDirection",
	"UnstableSpeed",
	"SpeedTooHigh",
	"SpeedTooLow",
	"UnstablePosition",
	"PositionTooHigh",
	"PositionTooLow",
	"FlareTooHigh",
	"FlareTooLow",
	"Skull",
}

// AllFlightPhaseAnnotations lists every annotation in declaration order
func AllFlightPhaseAnnotations() []FlightPhaseAnnotation {
	out := make([]FlightPhaseAnnotation, len(phaseAnnotationNames))
	for i := range phaseAnnotationNames {
		out[i] = FlightPhaseAnnotation(i)
	}
	return out
}

func (a FlightPhaseAnnotation) String() string {
	if a < 0 || int(a) >= len(phaseAnnotationNames) {
		return fmt.Sprintf("FlightPhaseAnnotation(%d)", int(a))
	}
	return phaseAnnotationNames[a]
}

// FlightManeuver is a maneuver flown during a training flight
type FlightManeuver int

const (
	ManeuverLeft90 FlightManeuver = iota
	ManeuverRight90
	ManeuverLeft180
	ManeuverRight180
	ManeuverLeft360
	ManeuverRight360
	ManeuverFigureEight
	ManeuverBank30
	ManeuverBank45
	ManeuverBank60
	ManeuverAbortedStartLowAltitude
	ManeuverAbortedStartMediumAltitude
	ManeuverAbortedStartHighAltitude
	ManeuverSTurn
	ManeuverLeftCircuit
	ManeuverRightCircuit
	ManeuverStall
	ManeuverSpin
	ManeuverSideSlip
)

var maneuverNames = [...]string{
	"Left90",
	"Right90",
	"Left180",
	"Right180",
	"Left360",
	"Right360",
	"FigureEight",
	"Bank30",
	"Bank45",
	"Bank60",
	"AbortedStartLowAltitude",
	"AbortedStartMediumAltitude",
	"AbortedStartHighAltitude",
	"STurn",
	"LeftCircuit",
	"RightCircuit",
	"Stall",
	"Spin",
	"SideSlip",
}

// AllFlightManeuvers lists every maneuver in declaration order
func AllFlightManeuvers() []FlightManeuver {
	out := make([]FlightManeuver, len(maneuverNames))
	for i := range maneuverNames {
		out[i] = FlightManeuver(i)
	}
	return out
}

func (m FlightManeuver) String() string {
	if m < 0 || int(m) >= len(maneuverNames) {
		return fmt.Sprintf("FlightManeuver(%d)", int(m))
	}
	return maneuverNames[m]
}

// Weather observed during the flight
type Weather struct {
	WindDirection int `json:"wind_direction" bson:"wind_direction"` // degrees
	WindSpeed     int `json:"wind_speed" bson:"wind_speed"`         // knots
}

// TrainingFlightAnnotation holds instructor commentary for a flight that does
// not refer to a specific exercise. One per flight is expected but not enforced.
type TrainingFlightAnnotation struct {
	ID                 string                  `json:"id" bson:"_id,omitempty"`
	FlightID           string                  `json:"flight_id" bson:"flight_id"`
	Note               string                  `json:"note" bson:"note"`
	StartAnnotation    []FlightPhaseAnnotation `json:"start_annotation" bson:"start_annotation"`
	FlightAnnotation   []FlightPhaseAnnotation `json:"flight_annotation" bson:"flight_annotation"` // the flight in general, maneuvers included
	ApproachAnnotation []FlightPhaseAnnotation `json:"approach_annotation" bson:"approach_annotation"`
	LandingAnnotation  []FlightPhaseAnnotation `json:"landing_annotation" bson:"landing_annotation"`
	Maneuvers          []FlightManeuver        `json:"maneuvers" bson:"maneuvers"`
	Weather            *Weather                `json:"weather,omitempty" bson:"weather,omitempty"`
	CreatedAt          time.Time               `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at" bson:"updated_at"`
}

type AnnotationRepository interface {
	// GetByFlightIDs returns annotations for any of the given flights
	GetByFlightIDs(ctx context.Context, flightIDs []string) ([]*TrainingFlightAnnotation, error)
	// Upsert replaces the annotation of annotation.FlightID
	Upsert(ctx context.Context, annotation *TrainingFlightAnnotation) error
}

var ErrInvalidAnnotation = errors.New("invalid flight annotation")

// Validate checks enum ranges and the weather values
func (a *TrainingFlightAnnotation) Validate() error {
	for _, phases := range [][]FlightPhaseAnnotation{a.StartAnnotation, a.FlightAnnotation, a.ApproachAnnotation, a.LandingAnnotation} {
		for _, p := range phases {
			if p < 0 || int(p) >= len(phaseAnnotationNames) {
				return fmt.Errorf("%w: unknown phase annotation %d", ErrInvalidAnnotation, int(p))
			}
		}
	}
	for _, m := range a.Maneuvers {
		if m < 0 || int(m) >= len(maneuverNames) {
			return fmt.Errorf("%w: unknown maneuver %d", ErrInvalidAnnotation, int(m))
		}
	}
	if w := a.Weather; w != nil {
		if w.WindDirection < 0 || w.WindDirection >= 360 {
			return fmt.Errorf("%w: wind direction must be within 0-359", ErrInvalidAnnotation)
		}
		if w.WindSpeed < 0 {
			return fmt.Errorf("%w: wind speed cannot be negative", ErrInvalidAnnotation)
		}
	}
	return nil
}
