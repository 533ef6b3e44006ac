package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/startlistclub/flightjournal/internal/domain"
	"github.com/startlistclub/flightjournal/internal/i18n"
)

// statusFor maps domain sentinels to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidExerciseAction),
		errors.Is(err, domain.ErrInvalidAnnotation),
		errors.Is(err, domain.ErrInvalidProgram),
		errors.Is(err, i18n.ErrMissingFormatArgs):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrFlightNotInHistory),
		errors.Is(err, domain.ErrPilotNotFound),
		errors.Is(err, domain.ErrProgramNotFound),
		errors.Is(err, domain.ErrAnnotationNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnknownExercise),
		errors.Is(err, domain.ErrNoMobilePhone),
		errors.Is(err, domain.ErrNoTrainingPrograms):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code == fiber.StatusInternalServerError {
		log.Printf("Error: %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
