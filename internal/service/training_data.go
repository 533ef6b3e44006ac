package service

import (
	"context"
	"fmt"

	"github.com/startlistclub/flightjournal/internal/domain"
	"golang.org/x/sync/errgroup"
)

// TrainingDataLoader reads the snapshot a training log is projected from
type TrainingDataLoader struct {
	flightRepo     domain.FlightRepository
	annotationRepo domain.AnnotationRepository
	appliedRepo    domain.AppliedExerciseRepository
	programRepo    domain.ProgramRepository
	catalogueRepo  domain.CatalogueRepository
}

func NewTrainingDataLoader(
	flightRepo domain.FlightRepository,
	annotationRepo domain.AnnotationRepository,
	appliedRepo domain.AppliedExerciseRepository,
	programRepo domain.ProgramRepository,
	catalogueRepo domain.CatalogueRepository,
) *TrainingDataLoader {
	return &TrainingDataLoader{
		flightRepo:     flightRepo,
		annotationRepo: annotationRepo,
		appliedRepo:    appliedRepo,
		programRepo:    programRepo,
		catalogueRepo:  catalogueRepo,
	}
}

// Load fetches the pilot's flights first, then everything that hangs off them
// concurrently
func (l *TrainingDataLoader) Load(ctx context.Context, pilotID, flightID, programID string) (*domain.TrainingData, error) {
	flights, err := l.flightRepo.GetByPilot(ctx, pilotID)
	if err != nil {
		return nil, fmt.Errorf("failed to get flights: %w", err)
	}

	flightIDs := make([]string, len(flights))
	for i, f := range flights {
		flightIDs[i] = f.ID
	}

	var (
		annotations []*domain.TrainingFlightAnnotation
		applied     []*domain.AppliedExercise
		programs    []*domain.TrainingProgram
		catalogue   *domain.ReferenceCatalogue
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if len(flightIDs) == 0 {
			return nil
		}
		var err error
		annotations, err = l.annotationRepo.GetByFlightIDs(gCtx, flightIDs)
		if err != nil {
			return fmt.Errorf("failed to get annotations: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if len(flightIDs) == 0 {
			return nil
		}
		var err error
		applied, err = l.appliedRepo.GetByFlightIDs(gCtx, flightIDs)
		if err != nil {
			return fmt.Errorf("failed to get applied exercises: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		programs, err = l.programRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to get training programs: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		catalogue, err = l.catalogueRepo.Get(gCtx)
		if err != nil {
			return fmt.Errorf("failed to get reference catalogue: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return domain.NewTrainingData(flightID, flights, annotations, applied, programs, programID, catalogue)
}
