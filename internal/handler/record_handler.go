package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/startlistclub/flightjournal/internal/domain"
	"github.com/startlistclub/flightjournal/internal/middleware"
	"github.com/startlistclub/flightjournal/internal/service"
	"github.com/startlistclub/flightjournal/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type RecordHandler struct {
	recordService *service.TrainingRecordService
	access        *service.ClubAccess
}

func NewRecordHandler(recordService *service.TrainingRecordService, access *service.ClubAccess) *RecordHandler {
	return &RecordHandler{recordService: recordService, access: access}
}

type recordExerciseRequest struct {
	ClientID   string                `json:"client_id"`
	ProgramID  string                `json:"program_id"`
	LessonID   string                `json:"lesson_id"`
	ExerciseID string                `json:"exercise_id"`
	Action     domain.ExerciseAction `json:"action"`
}

// RecordExercise handles POST /v1/pro/flights/:id/exercises
func (h *RecordHandler) RecordExercise(c *fiber.Ctx) error {
	var body recordExerciseRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if body.ProgramID == "" || body.LessonID == "" || body.ExerciseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "program_id, lesson_id and exercise_id are required"})
	}
	if err := h.access.Flight(c.UserContext(), middleware.GetClubID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}

	applied, err := h.recordService.RecordAppliedExercise(c.UserContext(), service.RecordExerciseInput{
		ClientID:   body.ClientID,
		FlightID:   c.Params("id"),
		ProgramID:  body.ProgramID,
		LessonID:   body.LessonID,
		ExerciseID: body.ExerciseID,
		Action:     body.Action,
		RecordedBy: middleware.GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}

	telemetry.AddSpanEvent(c, "exercise.applied",
		attribute.String("flight.id", applied.FlightID),
		attribute.String("exercise.id", applied.ExerciseID),
		attribute.String("exercise.action", string(applied.Action)),
	)
	return c.Status(fiber.StatusCreated).JSON(applied)
}

// UpsertAnnotation handles PUT /v1/pro/flights/:id/annotation
func (h *RecordHandler) UpsertAnnotation(c *fiber.Ctx) error {
	var annotation domain.TrainingFlightAnnotation
	if err := c.BodyParser(&annotation); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if err := h.access.Flight(c.UserContext(), middleware.GetClubID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}

	if err := h.recordService.UpsertAnnotation(c.UserContext(), c.Params("id"), &annotation); err != nil {
		return respondError(c, err)
	}
	return c.JSON(annotation)
}
