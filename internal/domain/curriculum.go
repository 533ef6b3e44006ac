package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrProgramNotFound    = errors.New("training program not found")
	ErrNoTrainingPrograms = errors.New("no training programs defined")
)

// TrainingProgram is the top of the curriculum tree, e.g. "SPL" or "SFIL".
// Lessons and exercises are embedded and keep their array order.
type TrainingProgram struct {
	ID        string           `json:"id" bson:"_id,omitempty"`
	ShortName string           `json:"short_name" bson:"short_name"`
	Name      string           `json:"name" bson:"name"`
	Lessons   []TrainingLesson `json:"lessons" bson:"lessons"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" bson:"updated_at"`
}

type TrainingLesson struct {
	ID           string             `json:"id" bson:"id"`
	Name         string             `json:"name" bson:"name"`
	Purpose      string             `json:"purpose" bson:"purpose"`
	Precondition string             `json:"precondition" bson:"precondition"`
	Exercises    []TrainingExercise `json:"exercises" bson:"exercises"`
}

type TrainingExercise struct {
	ID             string `json:"id" bson:"id"`
	Name           string `json:"name" bson:"name"`
	Note           string `json:"note" bson:"note"`
	IsBriefingOnly bool   `json:"is_briefing_only" bson:"is_briefing_only"`
}

// Lesson returns the lesson with the given id
func (p *TrainingProgram) Lesson(id string) (*TrainingLesson, bool) {
	for i := range p.Lessons {
		if p.Lessons[i].ID == id {
			return &p.Lessons[i], true
		}
	}
	return nil, false
}

// Exercise returns the exercise with the given id
func (l *TrainingLesson) Exercise(id string) (*TrainingExercise, bool) {
	for i := range l.Exercises {
		if l.Exercises[i].ID == id {
			return &l.Exercises[i], true
		}
	}
	return nil, false
}

// ProgramRepository serves the curriculum catalogue
type ProgramRepository interface {
	// List returns all programs ordered by short name
	List(ctx context.Context) ([]*TrainingProgram, error)
	GetByID(ctx context.Context, id string) (*TrainingProgram, error)
	Upsert(ctx context.Context, program *TrainingProgram) error
}

var ErrInvalidProgram = errors.New("invalid training program")

// Validate checks that the program is addressable: a short name and unique,
// non-empty lesson and exercise ids
func (p *TrainingProgram) Validate() error {
	if p.ShortName == "" {
		return fmt.Errorf("%w: short name is required", ErrInvalidProgram)
	}
	lessons := make(map[string]bool, len(p.Lessons))
	for _, lesson := range p.Lessons {
		if lesson.ID == "" || lessons[lesson.ID] {
			return fmt.Errorf("%w: lesson id %q is empty or duplicated", ErrInvalidProgram, lesson.ID)
		}
		lessons[lesson.ID] = true

		exercises := make(map[string]bool, len(lesson.Exercises))
		for _, exercise := range lesson.Exercises {
			if exercise.ID == "" || exercises[exercise.ID] {
				return fmt.Errorf("%w: exercise id %q in lesson %q is empty or duplicated", ErrInvalidProgram, exercise.ID, lesson.ID)
			}
			exercises[exercise.ID] = true
		}
	}
	return nil
}
