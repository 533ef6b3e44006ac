package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/startlistclub/flightjournal/internal/i18n"
)

const LocaleKey = "locale"

// Locale resolves Accept-Language against the loaded catalogs. An explicit
// ?lang= query parameter wins over the header.
func Locale(bundle *i18n.Bundle) fiber.Handler {
	return func(c *fiber.Ctx) error {
		locale := ""
		if lang := c.Query("lang"); lang != "" {
			locale = bundle.Match(lang)
		} else {
			locale = bundle.Match(c.Get(fiber.HeaderAcceptLanguage))
		}
		c.Locals(LocaleKey, locale)
		c.Set(fiber.HeaderContentLanguage, locale)
		return c.Next()
	}
}

// GetLocale returns the locale chosen by Locale, falling back to the base locale
func GetLocale(c *fiber.Ctx) string {
	if locale, ok := c.Locals(LocaleKey).(string); ok && locale != "" {
		return locale
	}
	return i18n.BaseLocale
}
