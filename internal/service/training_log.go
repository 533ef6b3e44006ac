package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/startlistclub/flightjournal/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// TrainingLogRequest selects the pilot, the flight being logged and the program to show
type TrainingLogRequest struct {
	PilotID   string
	FlightID  string
	ProgramID string
	Date      time.Time
	Locale    string
}

// TrainingLogService composes the training page
type TrainingLogService struct {
	loader    *TrainingDataLoader
	pilotRepo domain.PilotRepository
	policy    domain.InProgressPolicy
	localizer func(locale string) Localizer

	builds   metric.Int64Counter
	duration metric.Float64Histogram
}

func NewTrainingLogService(
	loader *TrainingDataLoader,
	pilotRepo domain.PilotRepository,
	policy domain.InProgressPolicy,
	localizer func(locale string) Localizer,
) *TrainingLogService {
	meter := otel.Meter("flightjournal/training-log")
	builds, _ := meter.Int64Counter("training_log.builds",
		metric.WithDescription("Training logs built"))
	duration, _ := meter.Float64Histogram("training_log.build_duration",
		metric.WithDescription("Time spent building a training log"),
		metric.WithUnit("ms"))

	return &TrainingLogService{
		loader:    loader,
		pilotRepo: pilotRepo,
		policy:    policy,
		localizer: localizer,
		builds:    builds,
		duration:  duration,
	}
}

// Build loads the pilot's snapshot and projects the complete training log
func (s *TrainingLogService) Build(ctx context.Context, req TrainingLogRequest) (*domain.TrainingLog, error) {
	started := time.Now()
	trainingLog, err := s.build(ctx, req)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	s.builds.Add(ctx, 1, attrs)
	s.duration.Record(ctx, float64(time.Since(started).Milliseconds()), attrs)

	return trainingLog, err
}

func (s *TrainingLogService) build(ctx context.Context, req TrainingLogRequest) (*domain.TrainingLog, error) {
	data, err := s.loader.Load(ctx, req.PilotID, req.FlightID, req.ProgramID)
	if err != nil {
		return nil, err
	}

	thisFlight, ok := data.Flight(req.FlightID)
	if !ok {
		return nil, domain.ErrFlightNotInHistory
	}

	pilotName, err := s.pilotName(ctx, req.PilotID)
	if err != nil {
		return nil, err
	}
	backseatName := ""
	if thisFlight.BackseatPilotID != "" {
		if backseatName, err = s.pilotName(ctx, thisFlight.BackseatPilotID); err != nil {
			return nil, err
		}
	}

	projector := NewProjector(s.policy, s.localizer(req.Locale))

	flightLog := make([]domain.FlightLogEntry, 0, len(data.PilotFlights))
	var total time.Duration
	for _, f := range data.PilotFlights {
		flightLog = append(flightLog, projector.FlightLogEntry(f, data))
		total += domain.RoundDuration(f.FlightTime(), 1, domain.RoundNearest)
	}

	options := projector.ReferenceOptions(data.Catalogue)

	date := req.Date
	if date.IsZero() {
		date = thisFlight.Date
	}

	return &domain.TrainingLog{
		Date:             date,
		Pilot:            pilotName,
		BackseatPilot:    backseatName,
		FlightLog:        flightLog,
		ThisFlight:       projector.FlightLogEntry(thisFlight, data),
		TotalFlightTime:  domain.FormatTotalHours(total),
		TrainingProgram:  projector.Program(data),
		TrainingPrograms: data.TrainingPrograms,
		Maneuvers:        options.Maneuvers,
		WindDirections:   options.WindDirections,
		WindSpeeds:       options.WindSpeeds,
		Annotations:      options.Annotations,
	}, nil
}

// pilotName falls back to the id for pilots the journal does not know
func (s *TrainingLogService) pilotName(ctx context.Context, id string) (string, error) {
	pilot, err := s.pilotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPilotNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return id, nil
		}
		return "", fmt.Errorf("failed to get pilot: %w", err)
	}
	return pilot.DisplayName(id), nil
}
