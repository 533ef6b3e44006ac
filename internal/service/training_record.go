package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/startlistclub/flightjournal/internal/domain"
)

// RecordExerciseInput is an instructor's report of an exercise flown on a flight
type RecordExerciseInput struct {
	ClientID   string
	FlightID   string
	ProgramID  string
	LessonID   string
	ExerciseID string
	Action     domain.ExerciseAction
	RecordedBy string
}

// TrainingRecordService writes instructor input back to the journal
type TrainingRecordService struct {
	flightRepo     domain.FlightRepository
	programRepo    domain.ProgramRepository
	appliedRepo    domain.AppliedExerciseRepository
	annotationRepo domain.AnnotationRepository
	publisher      domain.EventPublisher
}

func NewTrainingRecordService(
	flightRepo domain.FlightRepository,
	programRepo domain.ProgramRepository,
	appliedRepo domain.AppliedExerciseRepository,
	annotationRepo domain.AnnotationRepository,
	publisher domain.EventPublisher,
) *TrainingRecordService {
	return &TrainingRecordService{
		flightRepo:     flightRepo,
		programRepo:    programRepo,
		appliedRepo:    appliedRepo,
		annotationRepo: annotationRepo,
		publisher:      publisher,
	}
}

// generateULID creates a new ULID string
func generateULID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// RecordAppliedExercise stores the applied exercise after checking that the
// exercise belongs to the referenced program and lesson
func (s *TrainingRecordService) RecordAppliedExercise(ctx context.Context, in RecordExerciseInput) (*domain.AppliedExercise, error) {
	if !in.Action.Valid() {
		return nil, domain.ErrInvalidExerciseAction
	}

	flight, err := s.flightRepo.GetByID(ctx, in.FlightID)
	if err != nil {
		return nil, err
	}

	program, err := s.programRepo.GetByID(ctx, in.ProgramID)
	if err != nil {
		return nil, err
	}
	lesson, ok := program.Lesson(in.LessonID)
	if !ok {
		return nil, domain.ErrUnknownExercise
	}
	if _, ok := lesson.Exercise(in.ExerciseID); !ok {
		return nil, domain.ErrUnknownExercise
	}

	clientID := in.ClientID
	if clientID == "" {
		clientID = generateULID()
	}

	applied := &domain.AppliedExercise{
		ClientID:   clientID,
		FlightID:   flight.ID,
		ProgramID:  program.ID,
		LessonID:   lesson.ID,
		ExerciseID: in.ExerciseID,
		Action:     in.Action,
	}
	if err := s.appliedRepo.Create(ctx, applied); err != nil {
		return nil, fmt.Errorf("failed to record applied exercise: %w", err)
	}

	event := &domain.ExerciseAppliedEvent{
		AppliedExerciseID: applied.ID,
		PilotID:           flight.PilotID,
		FlightID:          flight.ID,
		ProgramID:         applied.ProgramID,
		LessonID:          applied.LessonID,
		ExerciseID:        applied.ExerciseID,
		Action:            applied.Action,
		RecordedBy:        in.RecordedBy,
		OccurredAt:        applied.CreatedAt,
	}
	// The record is stored; a lost event must not fail the request
	if err := s.publisher.PublishExerciseApplied(ctx, event); err != nil {
		log.Printf("Warning: failed to publish exercise applied event: %v", err)
	}

	return applied, nil
}

// UpsertAnnotation replaces the instructor annotation of a flight
func (s *TrainingRecordService) UpsertAnnotation(ctx context.Context, flightID string, annotation *domain.TrainingFlightAnnotation) error {
	if err := annotation.Validate(); err != nil {
		return err
	}
	if _, err := s.flightRepo.GetByID(ctx, flightID); err != nil {
		return err
	}
	annotation.FlightID = flightID
	if err := s.annotationRepo.Upsert(ctx, annotation); err != nil {
		return fmt.Errorf("failed to save annotation: %w", err)
	}
	return nil
}
