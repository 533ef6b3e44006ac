package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/startlistclub/flightjournal/internal/domain"
	"github.com/startlistclub/flightjournal/internal/middleware"
	"github.com/startlistclub/flightjournal/internal/service"
)

type ReferenceHandler struct {
	catalogueRepo domain.CatalogueRepository
	policy        domain.InProgressPolicy
	localizer     func(locale string) service.Localizer
}

func NewReferenceHandler(
	catalogueRepo domain.CatalogueRepository,
	policy domain.InProgressPolicy,
	localizer func(locale string) service.Localizer,
) *ReferenceHandler {
	return &ReferenceHandler{
		catalogueRepo: catalogueRepo,
		policy:        policy,
		localizer:     localizer,
	}
}

// GetReference returns the localized selection lists of the training page
func (h *ReferenceHandler) GetReference(c *fiber.Ctx) error {
	catalogue, err := h.catalogueRepo.Get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	projector := service.NewProjector(h.policy, h.localizer(middleware.GetLocale(c)))
	return c.JSON(projector.ReferenceOptions(catalogue))
}
