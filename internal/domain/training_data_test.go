package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.April, d, 0, 0, 0, 0, time.UTC)
}

func TestNewTrainingData_OrdersByFlightDate(t *testing.T) {
	flights := []*Flight{
		{ID: "c", Date: day(3)},
		{ID: "a", Date: day(1)},
		{ID: "b2", Date: day(2)},
		{ID: "b1", Date: day(2)},
	}
	annotations := []*TrainingFlightAnnotation{
		{FlightID: "c", Note: "third"},
		{FlightID: "a", Note: "first"},
		{FlightID: "unknown", Note: "dropped"},
	}
	applied := []*AppliedExercise{
		{FlightID: "c", ExerciseID: "1.1", Action: ActionCompleted},
		{FlightID: "b1", ExerciseID: "1.1", Action: ActionBriefed},
		{FlightID: "a", ExerciseID: "1.2", Action: ActionTrained},
		{FlightID: "elsewhere", ExerciseID: "1.1", Action: ActionCompleted},
	}
	programs := []*TrainingProgram{{ID: "p1", ShortName: "SPL"}}

	data, err := NewTrainingData("b1", flights, annotations, applied, programs, "p1", nil)
	require.NoError(t, err)

	var ids []string
	for _, f := range data.PilotFlights {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, ids)

	require.Len(t, data.FlightAnnotations, 2)
	assert.Equal(t, "first", data.FlightAnnotations[0].Note)
	assert.Equal(t, "third", data.FlightAnnotations[1].Note)

	require.Len(t, data.AppliedExercises, 3)
	assert.Equal(t, "a", data.AppliedExercises[0].FlightID)
	assert.Equal(t, "b1", data.AppliedExercises[1].FlightID)
	assert.Equal(t, "c", data.AppliedExercises[2].FlightID)

	// input slice is left untouched
	assert.Equal(t, "c", flights[0].ID)
	assert.NotNil(t, data.Catalogue)
}

func TestNewTrainingData_ProgramSelection(t *testing.T) {
	programs := []*TrainingProgram{
		{ID: "spl", ShortName: "SPL"},
		{ID: "sfil", ShortName: "SFIL"},
	}

	t.Run("exact match", func(t *testing.T) {
		data, err := NewTrainingData("", nil, nil, nil, programs, "sfil", nil)
		require.NoError(t, err)
		assert.Equal(t, "sfil", data.TrainingProgram.ID)
	})

	t.Run("unknown id falls back to first", func(t *testing.T) {
		data, err := NewTrainingData("", nil, nil, nil, programs, "missing", nil)
		require.NoError(t, err)
		assert.Equal(t, "spl", data.TrainingProgram.ID)
	})

	t.Run("selectors keep order", func(t *testing.T) {
		data, err := NewTrainingData("", nil, nil, nil, programs, "", nil)
		require.NoError(t, err)
		assert.Equal(t, []ProgramSelector{{ID: "spl", Name: "SPL"}, {ID: "sfil", Name: "SFIL"}}, data.TrainingPrograms)
	})

	t.Run("no programs", func(t *testing.T) {
		_, err := NewTrainingData("", nil, nil, nil, nil, "", nil)
		assert.ErrorIs(t, err, ErrNoTrainingPrograms)
	})
}

func TestTrainingData_Lookups(t *testing.T) {
	flights := []*Flight{{ID: "f1", Date: day(1)}, {ID: "f2", Date: day(2)}}
	applied := []*AppliedExercise{
		{FlightID: "f1", ProgramID: "p", LessonID: "1", ExerciseID: "1.1", Action: ActionBriefed},
		{FlightID: "f2", ProgramID: "p", LessonID: "1", ExerciseID: "1.1", Action: ActionCompleted},
		{FlightID: "f2", ProgramID: "p", LessonID: "1", ExerciseID: "1.2", Action: ActionTrained},
		{FlightID: "f2", ProgramID: "p", LessonID: "2", ExerciseID: "1.1", Action: ActionTrained},
		{FlightID: "f2", ProgramID: "other", LessonID: "1", ExerciseID: "1.1", Action: ActionTrained},
	}
	data, err := NewTrainingData("f2", flights, nil, applied, []*TrainingProgram{{ID: "p"}}, "p", nil)
	require.NoError(t, err)

	assert.Len(t, data.AppliedExercisesFor("f2"), 4)
	assert.Empty(t, data.AnnotationsFor("f2"))
	assert.Equal(t, map[string][]ExerciseAction{
		"1.1": {ActionBriefed, ActionCompleted},
		"1.2": {ActionTrained},
	}, data.ActionsForLesson("p", "1"))
	assert.Equal(t, map[string][]ExerciseAction{"1.1": {ActionTrained}}, data.ActionsForLesson("p", "2"))
	assert.Empty(t, data.ActionsForLesson("p", "3"))

	f, ok := data.Flight("f1")
	require.True(t, ok)
	assert.Equal(t, day(1), f.Date)
	_, ok = data.Flight("nope")
	assert.False(t, ok)
}
