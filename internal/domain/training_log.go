package domain

import "time"

// TrainingLog is the training page for one pilot and the flight being logged
type TrainingLog struct {
	Date             time.Time               `json:"date"`
	Pilot            string                  `json:"pilot"`
	BackseatPilot    string                  `json:"backseat_pilot"`
	FlightLog        []FlightLogEntry        `json:"flight_log"`
	ThisFlight       FlightLogEntry          `json:"this_flight"`
	TotalFlightTime  string                  `json:"total_flight_time"`
	TrainingProgram  ProgramStatus           `json:"training_program"`
	TrainingPrograms []ProgramSelector       `json:"training_programs"`
	Maneuvers        []ManeuverOption        `json:"maneuvers"`
	WindDirections   []WindOption            `json:"wind_directions"`
	WindSpeeds       []WindOption            `json:"wind_speeds"`
	Annotations      []PhaseAnnotationOption `json:"annotations"`
}

// FlightLogEntry is one flight of the pilot's history with its annotations
// flattened into display strings
type FlightLogEntry struct {
	FlightID            string                `json:"flight_id"`
	Date                time.Time             `json:"date"`
	FlightTime          string                `json:"flight_time"`
	Notes               string                `json:"notes"`
	Maneuvers           string                `json:"maneuvers"`
	StartAnnotations    string                `json:"start_annotations"`
	FlightAnnotations   string                `json:"flight_annotations"`
	ApproachAnnotations string                `json:"approach_annotations"`
	LandingAnnotations  string                `json:"landing_annotations"`
	Wind                string                `json:"wind"`
	ExercisesWithStatus []AppliedExerciseView `json:"exercises_with_status"`
}

// AppliedExerciseView describes one applied exercise of a flight
type AppliedExerciseView struct {
	Description string         `json:"description"`
	Action      ExerciseAction `json:"action"`
}

// ProgramStatus is the curriculum tree annotated with the pilot's progress
type ProgramStatus struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Lessons []LessonStatus `json:"lessons"`
}

type LessonStatus struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Description          string           `json:"description"`
	Precondition         string           `json:"precondition"`
	Exercises            []ExerciseStatus `json:"exercises"`
	ExercisesTotal       int              `json:"exercises_total"`
	ExercisesCompleted   int              `json:"exercises_completed"`
	ExercisesInProgress  int              `json:"exercises_in_progress"`
	ExercisesNotStarted  int              `json:"exercises_not_started"`
	ExercisesBriefedOnly int              `json:"exercises_briefed_only"` // non-zero only under InProgressTrainedOnly
	StatusSummary        string           `json:"status_summary"`
	Status               TrainingStatus   `json:"status"`
	StatusText           string           `json:"status_text"`
}

type ExerciseStatus struct {
	ID                   string         `json:"id"`
	Description          string         `json:"description"`
	LongDescription      string         `json:"long_description"`
	BriefingOnlyRequired bool           `json:"briefing_only_required"`
	Status               TrainingStatus `json:"status"`
	StatusText           string         `json:"status_text"`
	IsBriefed            bool           `json:"is_briefed"`
	IsTrained            bool           `json:"is_trained"`
	IsCompleted          bool           `json:"is_completed"`
}

// ManeuverOption is a maneuver prepared for a selection control
type ManeuverOption struct {
	Value FlightManeuver `json:"value"`
	Name  string         `json:"name"`
	Icon  string         `json:"icon,omitempty"`
}

// WindOption is a wind direction or speed prepared for a selection control
type WindOption struct {
	Value int    `json:"value"`
	Text  string `json:"text"`
}

type PhaseAnnotationOption struct {
	Value FlightPhaseAnnotation `json:"value"`
	Name  string                `json:"name"`
	Icon  string                `json:"icon,omitempty"`
}

// ReferenceOptions is the pilot independent part of the training page
type ReferenceOptions struct {
	Maneuvers      []ManeuverOption        `json:"maneuvers"`
	WindDirections []WindOption            `json:"wind_directions"`
	WindSpeeds     []WindOption            `json:"wind_speeds"`
	Annotations    []PhaseAnnotationOption `json:"annotations"`
}
