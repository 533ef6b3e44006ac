package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/startlistclub/flightjournal/internal/domain"
)

// In-memory repositories shared by the service tests

type fakeFlightRepo struct {
	flights map[string]*domain.Flight
}

func newFakeFlightRepo(flights ...*domain.Flight) *fakeFlightRepo {
	r := &fakeFlightRepo{flights: map[string]*domain.Flight{}}
	for _, f := range flights {
		r.flights[f.ID] = f
	}
	return r
}

func (r *fakeFlightRepo) Create(_ context.Context, f *domain.Flight) error {
	r.flights[f.ID] = f
	return nil
}

func (r *fakeFlightRepo) GetByID(_ context.Context, id string) (*domain.Flight, error) {
	f, ok := r.flights[id]
	if !ok {
		return nil, domain.ErrFlightNotFound
	}
	return f, nil
}

// GetByPilot deliberately returns map order; the loader must not rely on it
func (r *fakeFlightRepo) GetByPilot(_ context.Context, pilotID string) ([]*domain.Flight, error) {
	var out []*domain.Flight
	for _, f := range r.flights {
		if f.PilotID == pilotID {
			out = append(out, f)
		}
	}
	return out, nil
}

type fakeAnnotationRepo struct {
	annotations []*domain.TrainingFlightAnnotation
	err         error
}

func (r *fakeAnnotationRepo) GetByFlightIDs(_ context.Context, ids []string) ([]*domain.TrainingFlightAnnotation, error) {
	if r.err != nil {
		return nil, r.err
	}
	wanted := toSet(ids)
	var out []*domain.TrainingFlightAnnotation
	for _, a := range r.annotations {
		if wanted[a.FlightID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAnnotationRepo) Upsert(_ context.Context, a *domain.TrainingFlightAnnotation) error {
	for i, existing := range r.annotations {
		if existing.FlightID == a.FlightID {
			r.annotations[i] = a
			return nil
		}
	}
	r.annotations = append(r.annotations, a)
	return nil
}

type fakeAppliedRepo struct {
	mu      sync.Mutex
	applied []*domain.AppliedExercise
}

func (r *fakeAppliedRepo) Create(_ context.Context, a *domain.AppliedExercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.applied {
		if existing.ClientID == a.ClientID {
			*a = *existing
			return nil
		}
	}
	a.ID = fmt.Sprintf("applied-%d", len(r.applied)+1)
	a.CreatedAt = time.Now()
	r.applied = append(r.applied, a)
	return nil
}

func (r *fakeAppliedRepo) GetByFlightIDs(_ context.Context, ids []string) ([]*domain.AppliedExercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := toSet(ids)
	var out []*domain.AppliedExercise
	for _, a := range r.applied {
		if wanted[a.FlightID] {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeProgramRepo struct {
	programs []*domain.TrainingProgram
}

func (r *fakeProgramRepo) List(context.Context) ([]*domain.TrainingProgram, error) {
	return r.programs, nil
}

func (r *fakeProgramRepo) GetByID(_ context.Context, id string) (*domain.TrainingProgram, error) {
	for _, p := range r.programs {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrProgramNotFound
}

func (r *fakeProgramRepo) Upsert(_ context.Context, p *domain.TrainingProgram) error {
	r.programs = append(r.programs, p)
	return nil
}

type fakeCatalogueRepo struct {
	catalogue *domain.ReferenceCatalogue
}

func (r *fakeCatalogueRepo) Get(context.Context) (*domain.ReferenceCatalogue, error) {
	if r.catalogue == nil {
		return &domain.ReferenceCatalogue{}, nil
	}
	return r.catalogue, nil
}

func (r *fakeCatalogueRepo) Save(_ context.Context, c *domain.ReferenceCatalogue) error {
	r.catalogue = c
	return nil
}

type fakePilotRepo struct {
	pilots map[string]*domain.Pilot
	err    error
}

func (r *fakePilotRepo) Create(_ context.Context, p *domain.Pilot) error {
	r.pilots[p.ID] = p
	return nil
}

func (r *fakePilotRepo) GetByID(_ context.Context, id string) (*domain.Pilot, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.pilots[id]
	if !ok {
		return nil, domain.ErrPilotNotFound
	}
	return p, nil
}

func (r *fakePilotRepo) GetByIDs(ctx context.Context, ids []string) ([]*domain.Pilot, error) {
	var out []*domain.Pilot
	for _, id := range ids {
		if p, ok := r.pilots[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakePublisher struct {
	events []*domain.ExerciseAppliedEvent
	err    error
}

func (p *fakePublisher) PublishExerciseApplied(_ context.Context, e *domain.ExerciseAppliedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

type fakeSMS struct {
	to, body string
	err      error
}

func (s *fakeSMS) SendSMS(_ context.Context, to, body string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.to, s.body = to, body
	return "SM123", nil
}

type fakeUploader struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (u *fakeUploader) Upload(_ context.Context, file []byte, filename, contentType string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.key, u.contentType, u.body = filename, contentType, file
	return "https://files.example/" + filename, nil
}

// echoLocalizer returns texts untranslated
type echoLocalizer struct{}

func (echoLocalizer) T(text string) string { return text }

func (echoLocalizer) Tf(format string, args ...interface{}) (string, error) {
	if format == "" || args == nil {
		return "", errors.New("format and args are required")
	}
	return fmt.Sprintf(format, args...), nil
}

func echo(string) Localizer { return echoLocalizer{} }

func toSet(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

// fixture is a pilot with three flights against a two-lesson program
type fixture struct {
	flights     *fakeFlightRepo
	annotations *fakeAnnotationRepo
	applied     *fakeAppliedRepo
	programs    *fakeProgramRepo
	catalogue   *fakeCatalogueRepo
	pilots      *fakePilotRepo
}

func at(d, h, m int) *time.Time {
	t := time.Date(2024, time.May, d, h, m, 0, 0, time.UTC)
	return &t
}

func newFixture() *fixture {
	program := &domain.TrainingProgram{
		ID:        "spl",
		ShortName: "SPL",
		Name:      "Sailplane pilot licence",
		Lessons: []domain.TrainingLesson{
			{ID: "1", Name: "Lesson 1", Purpose: "Familiarisation", Exercises: []domain.TrainingExercise{
				{ID: "1.1", Name: "Cockpit check", IsBriefingOnly: true},
				{ID: "1.2", Name: "Effect of controls"},
				{ID: "1.3", Name: "Straight flight"},
			}},
			{ID: "2", Name: "Lesson 2", Exercises: []domain.TrainingExercise{
				{ID: "2.1", Name: "Turns"},
				{ID: "2.2", Name: "Stalls"},
			}},
		},
	}
	f := &fixture{
		flights: newFakeFlightRepo(
			&domain.Flight{ID: "f3", PilotID: "p1", Date: *at(3, 0, 0), Departure: at(3, 12, 0), Landing: at(3, 12, 45)},
			&domain.Flight{ID: "f1", PilotID: "p1", Date: *at(1, 0, 0), Departure: at(1, 10, 0), Landing: at(1, 10, 20)},
			&domain.Flight{ID: "f2", PilotID: "p1", BackseatPilotID: "i1", Date: *at(2, 0, 0), Departure: at(2, 9, 0), Landing: at(2, 10, 5)},
			&domain.Flight{ID: "other", PilotID: "p2", Date: *at(2, 0, 0)},
		),
		annotations: &fakeAnnotationRepo{},
		applied:     &fakeAppliedRepo{},
		programs:    &fakeProgramRepo{programs: []*domain.TrainingProgram{program, {ID: "sfil", ShortName: "SFIL", Name: "Instructor"}}},
		catalogue:   &fakeCatalogueRepo{catalogue: domain.DefaultReferenceCatalogue()},
		pilots: &fakePilotRepo{pilots: map[string]*domain.Pilot{
			"p1": {ID: "p1", Name: "Anna Student", MobilePhone: "+4520000000"},
			"i1": {ID: "i1", Name: "Ivan Instructor"},
		}},
	}
	return f
}

func (f *fixture) apply(flightID, lessonID, exerciseID string, action domain.ExerciseAction) {
	_ = f.applied.Create(context.Background(), &domain.AppliedExercise{
		ClientID:   fmt.Sprintf("%s-%s-%s", flightID, exerciseID, action),
		FlightID:   flightID,
		ProgramID:  "spl",
		LessonID:   lessonID,
		ExerciseID: exerciseID,
		Action:     action,
	})
}

func (f *fixture) loader() *TrainingDataLoader {
	return NewTrainingDataLoader(f.flights, f.annotations, f.applied, f.programs, f.catalogue)
}
