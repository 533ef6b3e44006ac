package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidExerciseAction = errors.New("invalid exercise action (must be briefed, trained or completed)")
	ErrUnknownExercise       = errors.New("exercise is not part of the referenced program and lesson")
)

// ExerciseAction marks how far an exercise got during one flight
type ExerciseAction string

const (
	ActionBriefed   ExerciseAction = "briefed"
	ActionTrained   ExerciseAction = "trained"
	ActionCompleted ExerciseAction = "completed"
)

func (a ExerciseAction) Valid() bool {
	switch a {
	case ActionBriefed, ActionTrained, ActionCompleted:
		return true
	}
	return false
}

// Status maps the action to the training status it proves
func (a ExerciseAction) Status() TrainingStatus {
	switch a {
	case ActionCompleted:
		return StatusCompleted
	case ActionTrained:
		return StatusTrained
	case ActionBriefed:
		return StatusBriefed
	}
	return StatusNotStarted
}

// AppliedExercise records that an exercise was briefed, trained or completed
// during a specific flight
type AppliedExercise struct {
	ID         string         `json:"id" bson:"_id,omitempty"`
	ClientID   string         `json:"client_id" bson:"client_id"` // ULID, unique
	FlightID   string         `json:"flight_id" bson:"flight_id"`
	ProgramID  string         `json:"program_id" bson:"program_id"`
	LessonID   string         `json:"lesson_id" bson:"lesson_id"`
	ExerciseID string         `json:"exercise_id" bson:"exercise_id"`
	Action     ExerciseAction `json:"action" bson:"action"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
}

type AppliedExerciseRepository interface {
	// Create inserts the record; an existing ClientID returns the stored record instead
	Create(ctx context.Context, applied *AppliedExercise) error
	GetByFlightIDs(ctx context.Context, flightIDs []string) ([]*AppliedExercise, error)
}

// TrainingStatus is the per-pilot progress of an exercise or lesson.
// Values are ordered; a higher value supersedes a lower one.
type TrainingStatus int

const (
	StatusNotStarted TrainingStatus = iota
	StatusBriefed
	StatusTrained
	StatusCompleted
)

var trainingStatusNames = [...]string{"not_started", "briefed", "trained", "completed"}

func (s TrainingStatus) String() string {
	if s < 0 || int(s) >= len(trainingStatusNames) {
		return fmt.Sprintf("TrainingStatus(%d)", int(s))
	}
	return trainingStatusNames[s]
}

func (s TrainingStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *TrainingStatus) UnmarshalText(text []byte) error {
	for i, name := range trainingStatusNames {
		if name == string(text) {
			*s = TrainingStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown training status %q", string(text))
}

// Advance applies a newly observed action. Status never decreases, and a
// briefing-only exercise jumps straight to Completed once briefed or trained.
func (s TrainingStatus) Advance(action ExerciseAction, briefingOnly bool) TrainingStatus {
	next := s
	if observed := action.Status(); observed > next {
		next = observed
	}
	if briefingOnly && (next == StatusBriefed || next == StatusTrained) {
		next = StatusCompleted
	}
	return next
}

// ResolveTrainingStatus folds every observed action of one exercise into its
// effective status
func ResolveTrainingStatus(actions []ExerciseAction, briefingOnly bool) TrainingStatus {
	status := StatusNotStarted
	for _, action := range actions {
		status = status.Advance(action, briefingOnly)
	}
	return status
}

// InProgressPolicy decides which statuses count as "in progress" in a lesson rollup
type InProgressPolicy string

const (
	// InProgressBriefedOrTrained counts Briefed and Trained exercises
	InProgressBriefedOrTrained InProgressPolicy = "briefed_or_trained"
	// InProgressTrainedOnly counts Trained exercises; Briefed ones are reported separately
	InProgressTrainedOnly InProgressPolicy = "trained_only"
)

// ParseInProgressPolicy accepts the configuration spelling of a policy
func ParseInProgressPolicy(s string) (InProgressPolicy, error) {
	switch p := InProgressPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return InProgressBriefedOrTrained, nil
	case InProgressBriefedOrTrained, InProgressTrainedOnly:
		return p, nil
	}
	return "", fmt.Errorf("unknown in-progress policy %q", s)
}

// CountsAsInProgress reports whether status is in progress under the policy
func (p InProgressPolicy) CountsAsInProgress(status TrainingStatus) bool {
	if p == InProgressTrainedOnly {
		return status == StatusTrained
	}
	return status == StatusBriefed || status == StatusTrained
}
