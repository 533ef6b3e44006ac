package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/startlistclub/flightjournal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrainingLogService(f *fixture, policy domain.InProgressPolicy) *TrainingLogService {
	return NewTrainingLogService(f.loader(), f.pilots, policy, echo)
}

func TestTrainingLogService_Build(t *testing.T) {
	f := progressFixture()
	svc := newTrainingLogService(f, domain.InProgressBriefedOrTrained)

	trainingLog, err := svc.Build(context.Background(), TrainingLogRequest{PilotID: "p1", FlightID: "f2", ProgramID: "spl"})
	require.NoError(t, err)

	assert.Equal(t, "Anna Student", trainingLog.Pilot)
	assert.Equal(t, "Ivan Instructor", trainingLog.BackseatPilot)
	assert.Equal(t, *at(2, 0, 0), trainingLog.Date)
	assert.Equal(t, "f2", trainingLog.ThisFlight.FlightID)

	var ids []string
	for _, entry := range trainingLog.FlightLog {
		ids = append(ids, entry.FlightID)
	}
	assert.Equal(t, []string{"f1", "f2", "f3"}, ids, "flight log is ascending by date and scoped to the pilot")

	// 20m + 65m + 45m
	assert.Equal(t, "2:10", trainingLog.TotalFlightTime)
	assert.Equal(t, "spl", trainingLog.TrainingProgram.ID)
	assert.Len(t, trainingLog.TrainingPrograms, 2)
	assert.Len(t, trainingLog.Maneuvers, len(domain.AllFlightManeuvers()))
	assert.Len(t, trainingLog.WindDirections, 8)
	assert.Len(t, trainingLog.Annotations, len(domain.AllFlightPhaseAnnotations()))
}

func TestTrainingLogService_BuildUsesRequestedDate(t *testing.T) {
	svc := newTrainingLogService(newFixture(), domain.InProgressBriefedOrTrained)
	date := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	trainingLog, err := svc.Build(context.Background(), TrainingLogRequest{PilotID: "p1", FlightID: "f1", Date: date})
	require.NoError(t, err)
	assert.Equal(t, date, trainingLog.Date)
	assert.Equal(t, "", trainingLog.BackseatPilot)
}

func TestTrainingLogService_FlightNotInHistory(t *testing.T) {
	svc := newTrainingLogService(newFixture(), domain.InProgressBriefedOrTrained)

	_, err := svc.Build(context.Background(), TrainingLogRequest{PilotID: "p1", FlightID: "other"})
	assert.ErrorIs(t, err, domain.ErrFlightNotInHistory)
}

func TestTrainingLogService_UnknownPilotFallsBackToID(t *testing.T) {
	f := newFixture()
	delete(f.pilots.pilots, "p1")
	svc := newTrainingLogService(f, domain.InProgressBriefedOrTrained)

	trainingLog, err := svc.Build(context.Background(), TrainingLogRequest{PilotID: "p1", FlightID: "f1"})
	require.NoError(t, err)
	assert.Equal(t, "p1", trainingLog.Pilot)
}

func TestTrainingLogService_PilotLookupFailure(t *testing.T) {
	f := newFixture()
	f.pilots.err = errors.New("connection reset")
	svc := newTrainingLogService(f, domain.InProgressBriefedOrTrained)

	_, err := svc.Build(context.Background(), TrainingLogRequest{PilotID: "p1", FlightID: "f1"})
	assert.ErrorContains(t, err, "connection reset")
}

func TestTrainingLogService_NoPrograms(t *testing.T) {
	f := newFixture()
	f.programs.programs = nil
	svc := newTrainingLogService(f, domain.InProgressBriefedOrTrained)

	_, err := svc.Build(context.Background(), TrainingLogRequest{PilotID: "p1", FlightID: "f1"})
	assert.ErrorIs(t, err, domain.ErrNoTrainingPrograms)
}

func TestTrainingDataLoader_LoadErrors(t *testing.T) {
	f := newFixture()
	f.annotations.err = errors.New("boom")

	_, err := f.loader().Load(context.Background(), "p1", "f1", "")
	assert.ErrorContains(t, err, "failed to get annotations")
}

func TestTrainingDataLoader_PilotWithoutFlights(t *testing.T) {
	f := newFixture()
	f.annotations.err = errors.New("must not be called")

	data, err := f.loader().Load(context.Background(), "nobody", "", "")
	require.NoError(t, err)
	assert.Empty(t, data.PilotFlights)
	assert.Empty(t, data.FlightAnnotations)
	assert.Empty(t, data.AppliedExercises)
	assert.Equal(t, "spl", data.TrainingProgram.ID)
}
