package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/startlistclub/flightjournal/internal/i18n"
	"github.com/startlistclub/flightjournal/internal/middleware"
)

// AboutPage describes one of the static information pages
type AboutPage struct {
	Page   string `json:"page"`
	Title  string `json:"title"`
	Locale string `json:"locale"`
}

type AboutHandler struct {
	bundle *i18n.Bundle
}

func NewAboutHandler(bundle *i18n.Bundle) *AboutHandler {
	return &AboutHandler{bundle: bundle}
}

func (h *AboutHandler) page(name, title string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tr := h.bundle.Translator(middleware.GetLocale(c))
		return c.JSON(AboutPage{
			Page:   name,
			Title:  tr.T(title),
			Locale: tr.Locale(),
		})
	}
}

// Index and UHB530 are public, the other pages need a token
func (h *AboutHandler) Index() fiber.Handler {
	return h.page("about", "About")
}

func (h *AboutHandler) Administration() fiber.Handler {
	return h.page("administration", "Administration")
}

func (h *AboutHandler) License() fiber.Handler {
	return h.page("license", "License")
}

func (h *AboutHandler) UHB530() fiber.Handler {
	return h.page("uhb530", "UHB 530 glider training manual")
}
