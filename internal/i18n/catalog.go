// Package i18n serves the server side translations. Catalogs are keyed by
// the English source text, so a missing translation falls back to the key.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the source locale of every catalog
const BaseLocale = "en-US"

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds the messages of every locale
type Bundle struct {
	locales  map[string]map[string]string
	tags     map[string]language.Tag
	builder  *catalog.Builder
	matcher  language.Matcher
	supports []string // BaseLocale first
}

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

// LoadEmbedded loads the catalogs shipped with the binary
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads every locales/<locale>/<namespace>.yaml file of catalogFS
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{
		locales: map[string]map[string]string{},
		tags:    map[string]language.Tag{},
		builder: catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale))),
	}
	for _, path := range paths {
		data, err := fs.ReadFile(catalogFS, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		if err := b.add(path, file); err != nil {
			return nil, err
		}
	}

	if _, ok := b.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	b.supports = append(b.supports, BaseLocale)
	others := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		if locale != BaseLocale {
			others = append(others, locale)
		}
	}
	sort.Strings(others)
	b.supports = append(b.supports, others...)

	tags := make([]language.Tag, len(b.supports))
	for i, locale := range b.supports {
		tags[i] = b.tags[locale]
	}
	b.matcher = language.NewMatcher(tags)

	return b, nil
}

func (b *Bundle) add(path string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", path)
	}
	if dir := filepath.Base(filepath.Dir(path)); locale != dir {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", path, locale, dir)
	}
	if strings.TrimSpace(file.Namespace) == "" {
		return fmt.Errorf("catalog %s: namespace is required", path)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages map is required", path)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("catalog %s: parse locale tag %q: %w", path, locale, err)
	}
	b.tags[locale] = tag

	messages, ok := b.locales[locale]
	if !ok {
		messages = map[string]string{}
		b.locales[locale] = messages
	}
	for key, value := range file.Messages {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", path)
		}
		if _, exists := messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", path, key, locale)
		}
		messages[key] = value
		if err := b.builder.SetString(tag, key, value); err != nil {
			return fmt.Errorf("catalog %s: register %q: %w", path, key, err)
		}
	}
	return nil
}

// Locales returns the supported locales, base locale first
func (b *Bundle) Locales() []string {
	out := make([]string, len(b.supports))
	copy(out, b.supports)
	return out
}

// HasLocale reports whether the locale has a catalog
func (b *Bundle) HasLocale(locale string) bool {
	_, ok := b.locales[locale]
	return ok
}

// Match picks the best supported locale for an Accept-Language header
func (b *Bundle) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return BaseLocale
	}
	_, index, confidence := b.matcher.Match(tags...)
	if confidence == language.No {
		return BaseLocale
	}
	return b.supports[index]
}

// Message returns the translation of text, falling back to the base locale
func (b *Bundle) Message(locale, text string) (string, bool) {
	if messages, ok := b.locales[locale]; ok {
		if value, ok := messages[text]; ok {
			return value, true
		}
	}
	if value, ok := b.locales[BaseLocale][text]; ok {
		return value, true
	}
	return "", false
}
