package server

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/startlistclub/flightjournal/internal/config"
	"github.com/startlistclub/flightjournal/internal/domain"
	"github.com/startlistclub/flightjournal/internal/handler"
	"github.com/startlistclub/flightjournal/internal/i18n"
	"github.com/startlistclub/flightjournal/internal/middleware"
	"github.com/startlistclub/flightjournal/internal/repository"
	"github.com/startlistclub/flightjournal/internal/service"
	"github.com/startlistclub/flightjournal/internal/telemetry"
	"go.mongodb.org/mongo-driver/mongo"
)

const idempotencyTTL = 24 * time.Hour

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config      *config.Config
	MongoDB     *mongo.Database
	RedisClient *redis.Client
	Bundle      *i18n.Bundle
	SMSSender   domain.SMSSender
	Publisher   domain.EventPublisher
	ExportStore domain.ExportStore // nil disables training log export
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	// Repositories
	cacheRepo := repository.NewRedisCacheRepository(deps.RedisClient)
	pilotRepo := repository.NewMongoPilotRepository(deps.MongoDB)
	flightRepo := repository.NewMongoFlightRepository(deps.MongoDB)
	annotationRepo := repository.NewMongoAnnotationRepository(deps.MongoDB)
	appliedRepo := repository.NewMongoAppliedExerciseRepository(deps.MongoDB)
	catalogueRepo := repository.NewMongoCatalogueRepository(deps.MongoDB)
	programRepo := repository.NewCachedProgramRepository(
		repository.NewMongoProgramRepository(deps.MongoDB),
		cacheRepo,
		deps.Config.Training.ProgramCacheTTL,
	)

	localizer := func(locale string) service.Localizer {
		return deps.Bundle.Translator(locale)
	}
	policy := deps.Config.Training.InProgressPolicy

	// Services
	loader := service.NewTrainingDataLoader(flightRepo, annotationRepo, appliedRepo, programRepo, catalogueRepo)
	trainingLogService := service.NewTrainingLogService(loader, pilotRepo, policy, localizer)
	recordService := service.NewTrainingRecordService(flightRepo, programRepo, appliedRepo, annotationRepo, deps.Publisher)
	notifier := service.NewProgressNotifier(loader, pilotRepo, deps.SMSSender, policy, localizer)
	access := service.NewClubAccess(pilotRepo, flightRepo)

	var exportService *service.ExportService
	if deps.ExportStore != nil {
		exportService = service.NewExportService(trainingLogService, deps.ExportStore)
	} else {
		log.Println("Warning: no export store, training log export disabled")
	}

	// Handlers
	trainingLogHandler := handler.NewTrainingLogHandler(trainingLogService, exportService, notifier, access)
	recordHandler := handler.NewRecordHandler(recordService, access)
	programHandler := handler.NewProgramHandler(programRepo)
	referenceHandler := handler.NewReferenceHandler(catalogueRepo, policy, localizer)
	aboutHandler := handler.NewAboutHandler(deps.Bundle)

	app := fiber.New(fiber.Config{
		AppName:      "Flight Journal API",
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: deps.Config.Server.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Accept-Language, Authorization, X-Correlation-ID",
		AllowMethods: "GET, POST, PUT, OPTIONS",
	}))
	if deps.Config.OTEL.Enabled {
		app.Use(telemetry.FiberMiddleware())
	}
	app.Use(middleware.Locale(deps.Bundle))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "flightjournal",
		})
	})

	verify := middleware.VerifyToken(deps.Config.JWT.Secret)

	// ===========================================
	// ABOUT - /about/* (index and UHB 530 are public)
	// ===========================================
	about := app.Group("/about")
	about.Get("/", aboutHandler.Index())
	about.Get("/uhb530", aboutHandler.UHB530())
	about.Get("/administration", verify, aboutHandler.Administration())
	about.Get("/license", verify, aboutHandler.License())

	v1 := app.Group("/v1")
	v1.Get("/reference", referenceHandler.GetReference)

	// ===========================================
	// CURRICULUM - /v1/programs (any member, club_admin writes)
	// ===========================================
	programs := v1.Group("/programs")
	programs.Use(verify)
	programs.Get("/", programHandler.ListPrograms)
	programs.Get("/:id", programHandler.GetProgram)
	programs.Put("/:id", middleware.AuthorizeRole(domain.RoleClubAdmin), programHandler.UpsertProgram)

	// ===========================================
	// PILOT API - /v1/me/* (requires 'pilot' role)
	// ===========================================
	me := v1.Group("/me")
	me.Use(verify)
	me.Use(middleware.AuthorizeRole(domain.RolePilot))
	me.Get("/training-log", trainingLogHandler.GetMyTrainingLog)

	// ===========================================
	// INSTRUCTOR API - /v1/pro/* (requires 'instructor' role, own club only)
	// ===========================================
	pro := v1.Group("/pro")
	pro.Use(verify)
	pro.Use(middleware.AuthorizeRole(domain.RoleInstructor))
	pro.Use(middleware.IdempotencyMiddleware(deps.RedisClient, idempotencyTTL))

	pro.Get("/pilots/:id/training-log", trainingLogHandler.GetPilotTrainingLog)
	pro.Post("/pilots/:id/training-log/export", trainingLogHandler.ExportTrainingLog)
	pro.Post("/pilots/:id/progress-sms", trainingLogHandler.SendProgressSMS)
	pro.Post("/flights/:id/exercises", recordHandler.RecordExercise)
	pro.Put("/flights/:id/annotation", recordHandler.UpsertAnnotation)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("Error: %v", err)
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
