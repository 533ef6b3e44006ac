package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/startlistclub/flightjournal/internal/domain"
)

// Localizer translates display strings
type Localizer interface {
	T(text string) string
	Tf(format string, args ...interface{}) (string, error)
}

// Projector turns a TrainingData snapshot into display view models.
// It never mutates the snapshot.
type Projector struct {
	policy domain.InProgressPolicy
	tr     Localizer
}

func NewProjector(policy domain.InProgressPolicy, tr Localizer) *Projector {
	return &Projector{policy: policy, tr: tr}
}

// FlightLogEntry flattens one flight's annotations and applied exercises
func (p *Projector) FlightLogEntry(flight *domain.Flight, data *domain.TrainingData) domain.FlightLogEntry {
	annotations := data.AnnotationsFor(flight.ID)
	applied := data.AppliedExercisesFor(flight.ID)

	notes := make([]string, len(annotations))
	maneuvers := make([]string, len(annotations))
	start := make([]string, len(annotations))
	inFlight := make([]string, len(annotations))
	approach := make([]string, len(annotations))
	landing := make([]string, len(annotations))
	wind := ""
	for i, a := range annotations {
		notes[i] = a.Note
		maneuvers[i] = joinNames(a.Maneuvers)
		start[i] = joinNames(a.StartAnnotation)
		inFlight[i] = joinNames(a.FlightAnnotation)
		approach[i] = joinNames(a.ApproachAnnotation)
		landing[i] = joinNames(a.LandingAnnotation)
		if wind == "" && a.Weather != nil {
			wind = fmt.Sprintf("%s %s", windDirectionText(a.Weather.WindDirection), windSpeedText(a.Weather.WindSpeed))
		}
	}

	exercises := make([]domain.AppliedExerciseView, 0, len(applied))
	for _, a := range applied {
		exercises = append(exercises, p.AppliedExercise(a, data.TrainingProgram))
	}

	return domain.FlightLogEntry{
		FlightID:            flight.ID,
		Date:                flight.Date,
		FlightTime:          formatFlightTime(flight.FlightTime()),
		Notes:               strings.Join(notes, "; "),
		Maneuvers:           strings.Join(maneuvers, ","),
		StartAnnotations:    strings.Join(start, ","),
		FlightAnnotations:   strings.Join(inFlight, ","),
		ApproachAnnotations: strings.Join(approach, ","),
		LandingAnnotations:  strings.Join(landing, ","),
		Wind:                wind,
		ExercisesWithStatus: exercises,
	}
}

// AppliedExercise describes an applied exercise by the names of its program,
// lesson and exercise. Parts that do not resolve are left out.
func (p *Projector) AppliedExercise(applied *domain.AppliedExercise, program *domain.TrainingProgram) domain.AppliedExerciseView {
	var parts []string
	if program != nil && program.ID == applied.ProgramID {
		parts = append(parts, program.Name)
		if lesson, ok := program.Lesson(applied.LessonID); ok {
			parts = append(parts, lesson.Name)
			if exercise, ok := lesson.Exercise(applied.ExerciseID); ok {
				parts = append(parts, exercise.Name)
			}
		}
	}
	return domain.AppliedExerciseView{
		Description: strings.Join(parts, " "),
		Action:      applied.Action,
	}
}

// Program walks the selected program and rolls up the pilot's status
func (p *Projector) Program(data *domain.TrainingData) domain.ProgramStatus {
	program := data.TrainingProgram

	lessons := make([]domain.LessonStatus, 0, len(program.Lessons))
	for i := range program.Lessons {
		lesson := &program.Lessons[i]
		lessons = append(lessons, p.Lesson(lesson, data.ActionsForLesson(program.ID, lesson.ID)))
	}
	return domain.ProgramStatus{
		ID:      program.ID,
		Name:    program.Name,
		Lessons: lessons,
	}
}

// Lesson computes per-exercise status and the lesson counters. actions must
// hold only records of this lesson, keyed by exercise id.
func (p *Projector) Lesson(lesson *domain.TrainingLesson, actions map[string][]domain.ExerciseAction) domain.LessonStatus {
	out := domain.LessonStatus{
		ID:           lesson.ID,
		Name:         lesson.Name,
		Description:  lesson.Purpose,
		Precondition: lesson.Precondition,
		Exercises:    make([]domain.ExerciseStatus, 0, len(lesson.Exercises)),
	}

	for i := range lesson.Exercises {
		ex := p.Exercise(&lesson.Exercises[i], actions[lesson.Exercises[i].ID])
		out.Exercises = append(out.Exercises, ex)

		switch {
		case ex.Status == domain.StatusCompleted:
			out.ExercisesCompleted++
		case ex.Status == domain.StatusNotStarted:
			out.ExercisesNotStarted++
		case p.policy.CountsAsInProgress(ex.Status):
			out.ExercisesInProgress++
		default:
			out.ExercisesBriefedOnly++
		}
	}
	out.ExercisesTotal = len(out.Exercises)

	switch out.ExercisesTotal {
	case out.ExercisesCompleted:
		out.Status = domain.StatusCompleted
	case out.ExercisesNotStarted:
		out.Status = domain.StatusNotStarted
	default:
		out.Status = domain.StatusTrained
	}
	out.StatusText = p.statusText(out.Status)
	out.StatusSummary = fmt.Sprintf("%d/%d/%d (%d)", out.ExercisesNotStarted, out.ExercisesInProgress, out.ExercisesCompleted, out.ExercisesTotal)
	return out
}

// Exercise resolves the status of one exercise from every action observed for it
func (p *Projector) Exercise(exercise *domain.TrainingExercise, actions []domain.ExerciseAction) domain.ExerciseStatus {
	status := domain.ResolveTrainingStatus(actions, exercise.IsBriefingOnly)
	return domain.ExerciseStatus{
		ID:                   exercise.ID,
		Description:          exercise.Name,
		LongDescription:      exercise.Note,
		BriefingOnlyRequired: exercise.IsBriefingOnly,
		Status:               status,
		StatusText:           p.statusText(status),
		IsBriefed:            status >= domain.StatusBriefed,
		IsTrained:            status >= domain.StatusTrained,
		IsCompleted:          status == domain.StatusCompleted,
	}
}

// ReferenceOptions prepares the catalogue and the phase annotations for
// selection controls
func (p *Projector) ReferenceOptions(catalogue *domain.ReferenceCatalogue) domain.ReferenceOptions {
	out := domain.ReferenceOptions{
		Maneuvers:      make([]domain.ManeuverOption, 0, len(catalogue.Maneuvers)),
		WindDirections: make([]domain.WindOption, 0, len(catalogue.WindDirections)),
		WindSpeeds:     make([]domain.WindOption, 0, len(catalogue.WindSpeeds)),
		Annotations:    make([]domain.PhaseAnnotationOption, 0),
	}
	for _, m := range catalogue.Maneuvers {
		out.Maneuvers = append(out.Maneuvers, p.Maneuver(m))
	}
	for _, d := range catalogue.WindDirections {
		out.WindDirections = append(out.WindDirections, domain.WindOption{Value: d, Text: windDirectionText(d)})
	}
	for _, s := range catalogue.WindSpeeds {
		out.WindSpeeds = append(out.WindSpeeds, domain.WindOption{Value: s, Text: windSpeedText(s)})
	}
	for _, a := range domain.AllFlightPhaseAnnotations() {
		out.Annotations = append(out.Annotations, PhaseAnnotation(a))
	}
	return out
}

// Maneuver labels a maneuver with its glyph and, for left/right turns, an icon
func (p *Projector) Maneuver(m domain.FlightManeuver) domain.ManeuverOption {
	opt := domain.ManeuverOption{Value: m}
	switch m {
	case domain.ManeuverLeft90, domain.ManeuverRight90:
		opt.Name = "90"
	case domain.ManeuverLeft180, domain.ManeuverRight180:
		opt.Name = "180"
	case domain.ManeuverLeft360, domain.ManeuverRight360:
		opt.Name = "360"
	case domain.ManeuverFigureEight:
		opt.Name = "∞"
	case domain.ManeuverBank30:
		opt.Name = "∠30°"
	case domain.ManeuverBank45:
		opt.Name = "∠45°"
	case domain.ManeuverBank60:
		opt.Name = "∠60°"
	case domain.ManeuverAbortedStartLowAltitude:
		opt.Name = "↷ " + p.tr.T("Aborted start low")
	case domain.ManeuverAbortedStartMediumAltitude:
		opt.Name = "↷ " + p.tr.T("Aborted start medium")
	case domain.ManeuverAbortedStartHighAltitude:
		opt.Name = "↷ " + p.tr.T("Aborted start high")
	case domain.ManeuverSTurn:
		opt.Name = "↝ " + p.tr.T("S-turn")
	case domain.ManeuverLeftCircuit:
		opt.Name = "↰ " + p.tr.T("Circuit")
	case domain.ManeuverRightCircuit:
		opt.Name = "↱ " + p.tr.T("Circuit")
	default:
		opt.Name = m.String()
	}

	switch m {
	case domain.ManeuverLeft90, domain.ManeuverLeft180, domain.ManeuverLeft360:
		opt.Icon = "fa fa-undo"
	case domain.ManeuverRight90, domain.ManeuverRight180, domain.ManeuverRight360:
		opt.Icon = "fa fa-repeat"
	}
	return opt
}

// PhaseAnnotation labels an annotation; values without a glyph use their name
func PhaseAnnotation(a domain.FlightPhaseAnnotation) domain.PhaseAnnotationOption {
	opt := domain.PhaseAnnotationOption{Value: a}
	switch a {
	case domain.PhaseOk:
		opt.Name = "✓"
	case domain.PhaseAlmostOk:
		opt.Name = "(✓)"
	case domain.PhaseSkull:
		opt.Name = "☠"
	default:
		opt.Name = a.String()
	}
	return opt
}

func (p *Projector) statusText(s domain.TrainingStatus) string {
	switch s {
	case domain.StatusCompleted:
		return p.tr.T("Completed")
	case domain.StatusTrained:
		return p.tr.T("Trained")
	case domain.StatusBriefed:
		return p.tr.T("Briefed")
	}
	return p.tr.T("Not started")
}

func windDirectionText(degrees int) string {
	return fmt.Sprintf("%d°", degrees)
}

func windSpeedText(knots int) string {
	return fmt.Sprintf("%dkn", knots)
}

// formatFlightTime rounds to the nearest minute before formatting
func formatFlightTime(d time.Duration) string {
	return domain.FormatTotalHours(domain.RoundDuration(d, 1, domain.RoundNearest))
}

func joinNames[T fmt.Stringer](items []T) string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.String()
	}
	return strings.Join(names, ", ")
}
