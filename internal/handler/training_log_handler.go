package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/startlistclub/flightjournal/internal/middleware"
	"github.com/startlistclub/flightjournal/internal/service"
	"github.com/startlistclub/flightjournal/internal/telemetry"
)

type TrainingLogHandler struct {
	trainingLogService *service.TrainingLogService
	exportService      *service.ExportService
	notifier           *service.ProgressNotifier
	access             *service.ClubAccess
}

func NewTrainingLogHandler(
	trainingLogService *service.TrainingLogService,
	exportService *service.ExportService,
	notifier *service.ProgressNotifier,
	access *service.ClubAccess,
) *TrainingLogHandler {
	return &TrainingLogHandler{
		trainingLogService: trainingLogService,
		exportService:      exportService,
		notifier:           notifier,
		access:             access,
	}
}

// parseRequest reads flight_id, program_id and date (YYYY-MM-DD) from the query
func parseRequest(c *fiber.Ctx, pilotID string) (service.TrainingLogRequest, error) {
	req := service.TrainingLogRequest{
		PilotID:   pilotID,
		FlightID:  c.Query("flight_id"),
		ProgramID: c.Query("program_id"),
		Locale:    middleware.GetLocale(c),
	}
	if req.FlightID == "" {
		return req, fiber.NewError(fiber.StatusBadRequest, "flight_id is required")
	}
	if date := c.Query("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return req, fiber.NewError(fiber.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		}
		req.Date = parsed
	}
	return req, nil
}

// GetMyTrainingLog handles GET /v1/me/training-log
func (h *TrainingLogHandler) GetMyTrainingLog(c *fiber.Ctx) error {
	return h.trainingLog(c, middleware.GetUserID(c))
}

// GetPilotTrainingLog handles GET /v1/pro/pilots/:id/training-log
func (h *TrainingLogHandler) GetPilotTrainingLog(c *fiber.Ctx) error {
	if err := h.access.Pilot(c.UserContext(), middleware.GetClubID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return h.trainingLog(c, c.Params("id"))
}

func (h *TrainingLogHandler) trainingLog(c *fiber.Ctx, pilotID string) error {
	req, err := parseRequest(c, pilotID)
	if err != nil {
		return err
	}
	telemetry.SetSpanAttribute(c, "pilot.id", pilotID)
	telemetry.SetSpanAttribute(c, "flight.id", req.FlightID)

	trainingLog, err := h.trainingLogService.Build(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(trainingLog)
}

// ExportTrainingLog handles POST /v1/pro/pilots/:id/training-log/export
func (h *TrainingLogHandler) ExportTrainingLog(c *fiber.Ctx) error {
	if h.exportService == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Export storage is not configured"})
	}

	req, err := parseRequest(c, c.Params("id"))
	if err != nil {
		return err
	}
	if err := h.access.Pilot(c.UserContext(), middleware.GetClubID(c), req.PilotID); err != nil {
		return respondError(c, err)
	}

	result, err := h.exportService.ExportTrainingLog(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// SendProgressSMS handles POST /v1/pro/pilots/:id/progress-sms
func (h *TrainingLogHandler) SendProgressSMS(c *fiber.Ctx) error {
	if err := h.access.Pilot(c.UserContext(), middleware.GetClubID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	summary, err := h.notifier.SendProgressSummary(c.UserContext(), c.Params("id"), c.Query("program_id"), middleware.GetLocale(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
