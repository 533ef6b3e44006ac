package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/startlistclub/flightjournal/internal/domain"
)

type ProgramHandler struct {
	programRepo domain.ProgramRepository
}

func NewProgramHandler(programRepo domain.ProgramRepository) *ProgramHandler {
	return &ProgramHandler{programRepo: programRepo}
}

// ListPrograms returns the program selector list
func (h *ProgramHandler) ListPrograms(c *fiber.Ctx) error {
	programs, err := h.programRepo.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	selectors := make([]domain.ProgramSelector, 0, len(programs))
	for _, p := range programs {
		selectors = append(selectors, domain.ProgramSelector{ID: p.ID, Name: p.ShortName})
	}
	return c.JSON(selectors)
}

func (h *ProgramHandler) GetProgram(c *fiber.Ctx) error {
	program, err := h.programRepo.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(program)
}

// UpsertProgram replaces the curriculum tree of a program
func (h *ProgramHandler) UpsertProgram(c *fiber.Ctx) error {
	var program domain.TrainingProgram
	if err := c.BodyParser(&program); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	program.ID = c.Params("id")

	if err := program.Validate(); err != nil {
		return respondError(c, err)
	}
	if err := h.programRepo.Upsert(c.UserContext(), &program); err != nil {
		return respondError(c, err)
	}
	return c.JSON(program)
}
