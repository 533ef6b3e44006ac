package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrainingFlightAnnotation_Validate(t *testing.T) {
	tests := []struct {
		name       string
		annotation TrainingFlightAnnotation
		wantErr    bool
	}{
		{"empty", TrainingFlightAnnotation{}, false},
		{"valid", TrainingFlightAnnotation{
			StartAnnotation: []FlightPhaseAnnotation{PhaseOk, PhaseSkull},
			Maneuvers:       []FlightManeuver{ManeuverSTurn, ManeuverSideSlip},
			Weather:         &Weather{WindDirection: 359, WindSpeed: 0},
		}, false},
		{"phase out of range", TrainingFlightAnnotation{LandingAnnotation: []FlightPhaseAnnotation{PhaseSkull + 1}}, true},
		{"negative phase", TrainingFlightAnnotation{ApproachAnnotation: []FlightPhaseAnnotation{-1}}, true},
		{"maneuver out of range", TrainingFlightAnnotation{Maneuvers: []FlightManeuver{ManeuverSideSlip + 1}}, true},
		{"wind direction 360", TrainingFlightAnnotation{Weather: &Weather{WindDirection: 360}}, true},
		{"negative wind speed", TrainingFlightAnnotation{Weather: &Weather{WindSpeed: -5}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.annotation.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAnnotation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTrainingProgram_Validate(t *testing.T) {
	lesson := func(id string, exerciseIDs ...string) TrainingLesson {
		l := TrainingLesson{ID: id}
		for _, e := range exerciseIDs {
			l.Exercises = append(l.Exercises, TrainingExercise{ID: e})
		}
		return l
	}

	tests := []struct {
		name    string
		program TrainingProgram
		wantErr bool
	}{
		{"valid", TrainingProgram{ShortName: "SPL", Lessons: []TrainingLesson{lesson("1", "1.1", "1.2"), lesson("2", "1.1")}}, false},
		{"no lessons", TrainingProgram{ShortName: "SPL"}, false},
		{"missing short name", TrainingProgram{}, true},
		{"empty lesson id", TrainingProgram{ShortName: "SPL", Lessons: []TrainingLesson{lesson("")}}, true},
		{"duplicate lesson", TrainingProgram{ShortName: "SPL", Lessons: []TrainingLesson{lesson("1"), lesson("1")}}, true},
		{"duplicate exercise", TrainingProgram{ShortName: "SPL", Lessons: []TrainingLesson{lesson("1", "1.1", "1.1")}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.program.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidProgram)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnumNames(t *testing.T) {
	assert.Len(t, AllFlightPhaseAnnotations(), 14)
	assert.Len(t, AllFlightManeuvers(), 19)
	assert.Equal(t, "AbortedStartLowAltitude", ManeuverAbortedStartLowAltitude.String())
	assert.Equal(t, "FlightManeuver(42)", FlightManeuver(42).String())
	assert.Equal(t, "InstructorTakeoverNeeded", PhaseInstructorTakeoverNeeded.String())
}

func TestDefaultReferenceCatalogue(t *testing.T) {
	c := DefaultReferenceCatalogue()
	assert.Equal(t, []int{0, 45, 90, 135, 180, 225, 270, 315}, c.WindDirections)
	assert.Equal(t, []int{0, 5, 10, 15, 20, 25}, c.WindSpeeds)
	assert.Equal(t, AllFlightManeuvers(), c.Maneuvers)
}

func TestPilotDisplayName(t *testing.T) {
	var missing *Pilot
	assert.Equal(t, "Unknown", missing.DisplayName("Unknown"))
	assert.Equal(t, "Unknown", (&Pilot{}).DisplayName("Unknown"))
	assert.Equal(t, "Anna", (&Pilot{Name: "Anna"}).DisplayName("Unknown"))
}
