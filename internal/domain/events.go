package domain

import (
	"context"
	"time"
)

// ExerciseAppliedEvent is published after an applied exercise is recorded
type ExerciseAppliedEvent struct {
	AppliedExerciseID string         `json:"applied_exercise_id"`
	PilotID           string         `json:"pilot_id"`
	FlightID          string         `json:"flight_id"`
	ProgramID         string         `json:"program_id"`
	LessonID          string         `json:"lesson_id"`
	ExerciseID        string         `json:"exercise_id"`
	Action            ExerciseAction `json:"action"`
	RecordedBy        string         `json:"recorded_by"`
	OccurredAt        time.Time      `json:"occurred_at"`
}

// EventPublisher fans training progress out to other club systems
type EventPublisher interface {
	PublishExerciseApplied(ctx context.Context, event *ExerciseAppliedEvent) error
}

// SMSSender delivers a text message and returns the provider's message id
type SMSSender interface {
	SendSMS(ctx context.Context, to string, body string) (string, error)
}
