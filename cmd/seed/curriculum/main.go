// Command curriculum seeds the reference catalogue and the glider training
// program. With -demo it also creates a pilot with a short flight history and
// prints development tokens for the pilot and an instructor.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/startlistclub/flightjournal/internal/config"
	"github.com/startlistclub/flightjournal/internal/domain"
	"github.com/startlistclub/flightjournal/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	var demo bool
	var clubID string
	flag.BoolVar(&demo, "demo", false, "also create a demo pilot with flights, annotations and applied exercises")
	flag.StringVar(&clubID, "club", "demo-club", "club id for demo data and tokens")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to Mongo: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB.Database)

	catalogueRepo := repository.NewMongoCatalogueRepository(db)
	if err := catalogueRepo.Save(ctx, domain.DefaultReferenceCatalogue()); err != nil {
		log.Fatalf("Failed to seed reference catalogue: %v", err)
	}
	fmt.Println("✓ Reference catalogue")

	programRepo := repository.NewMongoProgramRepository(db)
	existing, err := programRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list programs: %v", err)
	}

	var seeded *domain.TrainingProgram
	for _, program := range programs() {
		// Re-running the seed updates programs in place, matched by short name
		for _, e := range existing {
			if e.ShortName == program.ShortName {
				program.ID = e.ID
			}
		}
		if err := program.Validate(); err != nil {
			log.Fatalf("Invalid seed program %s: %v", program.ShortName, err)
		}
		if err := programRepo.Upsert(ctx, program); err != nil {
			log.Fatalf("Failed to seed program %s: %v", program.ShortName, err)
		}
		fmt.Printf("✓ Program %s (%s), %d lessons\n", program.ShortName, program.ID, len(program.Lessons))
		if seeded == nil {
			seeded = program
		}
	}

	if demo {
		if err := seedDemo(ctx, db, cfg.JWT.Secret, clubID, seeded); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	fmt.Println("Seeding Curriculum Complete.")
}

func programs() []*domain.TrainingProgram {
	return []*domain.TrainingProgram{
		{
			ShortName: "SPL",
			Name:      "Sailplane Pilot Licence (UHB 530)",
			Lessons: []domain.TrainingLesson{
				{
					ID:      "1",
					Name:    "Familiarisation",
					Purpose: "Get to know the glider, the cockpit and the airfield routines",
					Exercises: []domain.TrainingExercise{
						{ID: "1.1", Name: "Cockpit layout and instruments", IsBriefingOnly: true},
						{ID: "1.2", Name: "Airfield procedures and signals", IsBriefingOnly: true},
						{ID: "1.3", Name: "Lookout", Note: "Scan pattern before every turn"},
					},
				},
				{
					ID:           "2",
					Name:         "Effects of controls",
					Purpose:      "Primary and secondary effects of elevator, aileron and rudder",
					Precondition: "Lesson 1",
					Exercises: []domain.TrainingExercise{
						{ID: "2.1", Name: "Primary effects"},
						{ID: "2.2", Name: "Secondary effects"},
						{ID: "2.3", Name: "Trim"},
						{ID: "2.4", Name: "Airbrakes"},
					},
				},
				{
					ID:           "3",
					Name:         "Straight flight and turns",
					Purpose:      "Coordinated turns at medium bank",
					Precondition: "Lesson 2",
					Exercises: []domain.TrainingExercise{
						{ID: "3.1", Name: "Straight flight at constant speed"},
						{ID: "3.2", Name: "Turns at 30° bank"},
						{ID: "3.3", Name: "Turns at 45° bank"},
						{ID: "3.4", Name: "Turning onto a heading"},
					},
				},
				{
					ID:           "4",
					Name:         "Launch",
					Purpose:      "Winch and aerotow launches including failures",
					Precondition: "Lesson 3",
					Exercises: []domain.TrainingExercise{
						{ID: "4.1", Name: "Launch failure briefing", IsBriefingOnly: true},
						{ID: "4.2", Name: "Winch launch"},
						{ID: "4.3", Name: "Launch failure, low altitude"},
						{ID: "4.4", Name: "Launch failure, medium altitude"},
						{ID: "4.5", Name: "Launch failure, high altitude"},
					},
				},
				{
					ID:           "5",
					Name:         "Circuit, approach and landing",
					Precondition: "Lesson 4",
					Exercises: []domain.TrainingExercise{
						{ID: "5.1", Name: "Circuit planning"},
						{ID: "5.2", Name: "Approach with airbrakes"},
						{ID: "5.3", Name: "Landing"},
						{ID: "5.4", Name: "Side slip"},
					},
				},
				{
					ID:           "6",
					Name:         "Stalls and spins",
					Precondition: "Lesson 5",
					Exercises: []domain.TrainingExercise{
						{ID: "6.1", Name: "Stall recognition and recovery"},
						{ID: "6.2", Name: "Spin entry and recovery"},
					},
				},
			},
		},
		{
			ShortName: "SFIL",
			Name:      "Sailplane Flight Instructor",
			Lessons: []domain.TrainingLesson{
				{
					ID:           "1",
					Name:         "Teaching from the back seat",
					Purpose:      "Demonstrate, talk through and hand over control",
					Precondition: "SPL and 100 hours as pilot in command",
					Exercises: []domain.TrainingExercise{
						{ID: "1.1", Name: "Pre-flight briefing technique", IsBriefingOnly: true},
						{ID: "1.2", Name: "Demonstration with patter"},
						{ID: "1.3", Name: "Handing over and taking over control"},
					},
				},
				{
					ID:           "2",
					Name:         "Launch failures from the back seat",
					Precondition: "Lesson 1",
					Exercises: []domain.TrainingExercise{
						{ID: "2.1", Name: "Simulated launch failure, low altitude"},
						{ID: "2.2", Name: "Simulated launch failure, high altitude"},
					},
				},
			},
		},
	}
}

func seedDemo(ctx context.Context, db *mongo.Database, secret, clubID string, program *domain.TrainingProgram) error {
	pilotRepo := repository.NewMongoPilotRepository(db)
	flightRepo := repository.NewMongoFlightRepository(db)
	annotationRepo := repository.NewMongoAnnotationRepository(db)
	appliedRepo := repository.NewMongoAppliedExerciseRepository(db)

	student := &domain.Pilot{ClubID: clubID, Name: "Demo Student"}
	instructor := &domain.Pilot{ClubID: clubID, Name: "Demo Instructor"}
	for _, p := range []*domain.Pilot{student, instructor} {
		if err := pilotRepo.Create(ctx, p); err != nil {
			return err
		}
	}
	fmt.Printf("✓ Pilots: student %s, instructor %s\n", student.ID, instructor.ID)

	day := time.Now().UTC().Truncate(24 * time.Hour)
	var flights []*domain.Flight
	for i := 0; i < 3; i++ {
		date := day.AddDate(0, 0, -7*(2-i))
		departure := date.Add(10*time.Hour + time.Duration(i)*time.Hour)
		landing := departure.Add(time.Duration(12+i*9) * time.Minute)
		flight := &domain.Flight{
			ID:              uuid.NewString(),
			ClubID:          clubID,
			PilotID:         student.ID,
			BackseatPilotID: instructor.ID,
			Date:            date,
			Departure:       &departure,
			Landing:         &landing,
		}
		if err := flightRepo.Create(ctx, flight); err != nil {
			return err
		}
		flights = append(flights, flight)
	}
	fmt.Printf("✓ %d flights, latest %s\n", len(flights), flights[len(flights)-1].ID)

	annotation := &domain.TrainingFlightAnnotation{
		FlightID:          flights[0].ID,
		Note:              "Good lookout, speed control needs work",
		StartAnnotation:   []domain.FlightPhaseAnnotation{domain.PhaseOk},
		FlightAnnotation:  []domain.FlightPhaseAnnotation{domain.PhaseUnstableSpeed},
		LandingAnnotation: []domain.FlightPhaseAnnotation{domain.PhaseInstructorGuidanceNeeded},
		Maneuvers:         []domain.FlightManeuver{domain.ManeuverLeft360, domain.ManeuverBank30},
		Weather:           &domain.Weather{WindDirection: 270, WindSpeed: 10},
	}
	if err := annotationRepo.Upsert(ctx, annotation); err != nil {
		return err
	}

	applied := []struct {
		flight   int
		lesson   string
		exercise string
		action   domain.ExerciseAction
	}{
		{0, "1", "1.1", domain.ActionBriefed},
		{0, "1", "1.2", domain.ActionBriefed},
		{0, "1", "1.3", domain.ActionTrained},
		{1, "1", "1.3", domain.ActionCompleted},
		{1, "2", "2.1", domain.ActionTrained},
		{2, "2", "2.1", domain.ActionCompleted},
		{2, "2", "2.2", domain.ActionBriefed},
	}
	for _, a := range applied {
		record := &domain.AppliedExercise{
			ClientID:   fmt.Sprintf("seed-%s-%s-%s", flights[a.flight].ID, a.exercise, a.action),
			FlightID:   flights[a.flight].ID,
			ProgramID:  program.ID,
			LessonID:   a.lesson,
			ExerciseID: a.exercise,
			Action:     a.action,
		}
		if err := appliedRepo.Create(ctx, record); err != nil {
			return err
		}
	}
	fmt.Printf("✓ %d applied exercises\n", len(applied))

	for _, p := range []struct {
		pilot *domain.Pilot
		roles []string
	}{
		{student, []string{domain.RolePilot}},
		{instructor, []string{domain.RoleInstructor, domain.RolePilot}},
	} {
		token, err := devToken(secret, p.pilot, clubID, p.roles)
		if err != nil {
			return err
		}
		fmt.Printf("Token for %s: %s\n", p.pilot.Name, token)
	}
	return nil
}

// devToken signs a week-long token for local testing
func devToken(secret string, pilot *domain.Pilot, clubID string, roles []string) (string, error) {
	claims := domain.JournalClaims{
		UserID: pilot.ID,
		Name:   pilot.Name,
		Roles:  roles,
		ClubID: clubID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   pilot.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
