package domain

import "sort"

// ProgramSelector is a program reduced to what a selection control needs
type ProgramSelector struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TrainingData is the read-only snapshot a training log is projected from:
// one pilot's flights and their records, the selected program and the
// reference catalogue.
type TrainingData struct {
	FlightID          string
	PilotFlights      []*Flight                   // ascending by date
	FlightAnnotations []*TrainingFlightAnnotation // ordered by the parent flight's date
	AppliedExercises  []*AppliedExercise          // ordered by the parent flight's date
	TrainingProgram   *TrainingProgram
	TrainingPrograms  []ProgramSelector
	Catalogue         *ReferenceCatalogue
}

// NewTrainingData orders and groups the raw records and resolves the selected
// program: an exact id match, otherwise the first program.
// Records whose flight is not among flights are dropped.
func NewTrainingData(
	flightID string,
	flights []*Flight,
	annotations []*TrainingFlightAnnotation,
	applied []*AppliedExercise,
	programs []*TrainingProgram,
	programID string,
	catalogue *ReferenceCatalogue,
) (*TrainingData, error) {
	if len(programs) == 0 {
		return nil, ErrNoTrainingPrograms
	}

	ordered := make([]*Flight, len(flights))
	copy(ordered, flights)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].Date.Before(ordered[j].Date)
	})

	position := make(map[string]int, len(ordered))
	for i, f := range ordered {
		position[f.ID] = i
	}

	// Bucket per flight, then flatten in flight order
	annotationsByFlight := make([][]*TrainingFlightAnnotation, len(ordered))
	for _, a := range annotations {
		if i, ok := position[a.FlightID]; ok {
			annotationsByFlight[i] = append(annotationsByFlight[i], a)
		}
	}
	appliedByFlight := make([][]*AppliedExercise, len(ordered))
	for _, a := range applied {
		if i, ok := position[a.FlightID]; ok {
			appliedByFlight[i] = append(appliedByFlight[i], a)
		}
	}

	data := &TrainingData{
		FlightID:          flightID,
		PilotFlights:      ordered,
		FlightAnnotations: []*TrainingFlightAnnotation{},
		AppliedExercises:  []*AppliedExercise{},
		TrainingPrograms:  make([]ProgramSelector, 0, len(programs)),
		Catalogue:         catalogue,
	}
	for i := range ordered {
		data.FlightAnnotations = append(data.FlightAnnotations, annotationsByFlight[i]...)
		data.AppliedExercises = append(data.AppliedExercises, appliedByFlight[i]...)
	}

	for _, p := range programs {
		if data.TrainingProgram == nil && p.ID == programID {
			data.TrainingProgram = p
		}
		data.TrainingPrograms = append(data.TrainingPrograms, ProgramSelector{ID: p.ID, Name: p.ShortName})
	}
	if data.TrainingProgram == nil {
		data.TrainingProgram = programs[0]
	}
	if data.Catalogue == nil {
		data.Catalogue = &ReferenceCatalogue{}
	}

	return data, nil
}

// AnnotationsFor returns the annotations of one flight in snapshot order
func (d *TrainingData) AnnotationsFor(flightID string) []*TrainingFlightAnnotation {
	var out []*TrainingFlightAnnotation
	for _, a := range d.FlightAnnotations {
		if a.FlightID == flightID {
			out = append(out, a)
		}
	}
	return out
}

// AppliedExercisesFor returns the applied exercises of one flight in snapshot order
func (d *TrainingData) AppliedExercisesFor(flightID string) []*AppliedExercise {
	var out []*AppliedExercise
	for _, a := range d.AppliedExercises {
		if a.FlightID == flightID {
			out = append(out, a)
		}
	}
	return out
}

// ActionsForLesson groups the actions recorded against one lesson of one
// program by exercise id. Exercise ids are only unique within their lesson.
func (d *TrainingData) ActionsForLesson(programID, lessonID string) map[string][]ExerciseAction {
	out := make(map[string][]ExerciseAction)
	for _, a := range d.AppliedExercises {
		if a.ProgramID != programID || a.LessonID != lessonID {
			continue
		}
		out[a.ExerciseID] = append(out[a.ExerciseID], a.Action)
	}
	return out
}

// Flight returns the flight with the given id from the pilot's history
func (d *TrainingData) Flight(id string) (*Flight, bool) {
	for _, f := range d.PilotFlights {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}
