package i18n

import (
	"errors"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrMissingFormatArgs = errors.New("i18n: format and args are required")

// Translator translates for one locale
type Translator struct {
	bundle  *Bundle
	locale  string
	printer *message.Printer
}

// Translator returns a translator for locale; unknown locales use BaseLocale
func (b *Bundle) Translator(locale string) *Translator {
	if !b.HasLocale(locale) {
		locale = BaseLocale
	}
	tag, ok := b.tags[locale]
	if !ok {
		tag = language.MustParse(BaseLocale)
	}
	return &Translator{
		bundle:  b,
		locale:  locale,
		printer: message.NewPrinter(tag, message.Catalog(b.builder)),
	}
}

// Locale is the locale the translator serves
func (t *Translator) Locale() string {
	return t.locale
}

// T translates text. Untranslated text is returned as is.
func (t *Translator) T(text string) string {
	if value, ok := t.bundle.Message(t.locale, text); ok {
		return value
	}
	return text
}

// Quoted translates text and wraps it in double quotes, for attribute values
func (t *Translator) Quoted(text string) string {
	return "\"" + t.T(text) + "\""
}

// Tf translates a format string and formats args into it
func (t *Translator) Tf(format string, args ...interface{}) (string, error) {
	if format == "" || args == nil {
		return "", ErrMissingFormatArgs
	}
	return t.printer.Sprintf(format, args...), nil
}
