package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogFS(files map[string]string) fstest.MapFS {
	out := fstest.MapFS{}
	for path, content := range files {
		out[path] = &fstest.MapFile{Data: []byte(content)}
	}
	return out
}

func TestLoadEmbedded(t *testing.T) {
	bundle, err := LoadEmbedded()
	require.NoError(t, err)

	assert.Equal(t, []string{"en-US", "da-DK"}, bundle.Locales())
	assert.True(t, bundle.HasLocale("da-DK"))
	assert.False(t, bundle.HasLocale("de-DE"))
}

func TestLoadFromFS_Errors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"no files", map[string]string{}, "no catalog files"},
		{"locale mismatch", map[string]string{
			"locales/en-US/a.yaml": "locale: da-DK\nnamespace: a\nmessages:\n  x: y\n",
		}, "must match path locale"},
		{"missing namespace", map[string]string{
			"locales/en-US/a.yaml": "locale: en-US\nmessages:\n  x: y\n",
		}, "namespace is required"},
		{"empty messages", map[string]string{
			"locales/en-US/a.yaml": "locale: en-US\nnamespace: a\n",
		}, "messages map is required"},
		{"duplicate key across namespaces", map[string]string{
			"locales/en-US/a.yaml": "locale: en-US\nnamespace: a\nmessages:\n  x: y\n",
			"locales/en-US/b.yaml": "locale: en-US\nnamespace: b\nmessages:\n  x: z\n",
		}, "duplicate key"},
		{"base locale missing", map[string]string{
			"locales/da-DK/a.yaml": "locale: da-DK\nnamespace: a\nmessages:\n  x: y\n",
		}, "base locale"},
		{"bad yaml", map[string]string{
			"locales/en-US/a.yaml": "locale: [",
		}, "parse catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFS(catalogFS(tt.files))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBundle_Match(t *testing.T) {
	bundle, err := LoadEmbedded()
	require.NoError(t, err)

	tests := []struct {
		header string
		want   string
	}{
		{"", "en-US"},
		{"da", "da-DK"},
		{"da-DK,da;q=0.9,en;q=0.8", "da-DK"},
		{"en-GB", "en-US"},
		{"not a header;;;", "en-US"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, bundle.Match(tt.header))
		})
	}
}

func TestTranslator(t *testing.T) {
	bundle, err := LoadFromFS(catalogFS(map[string]string{
		"locales/en-US/t.yaml": "locale: en-US\nnamespace: t\nmessages:\n  Briefed: Briefed\n  Only base: Only base\n  \"%d of %d\": \"%d of %d\"\n",
		"locales/da-DK/t.yaml": "locale: da-DK\nnamespace: t\nmessages:\n  Briefed: Briefet\n  \"%d of %d\": \"%d af %d\"\n",
	}))
	require.NoError(t, err)

	da := bundle.Translator("da-DK")
	assert.Equal(t, "da-DK", da.Locale())
	assert.Equal(t, "Briefet", da.T("Briefed"))
	assert.Equal(t, "Only base", da.T("Only base"))
	assert.Equal(t, "Unknown text", da.T("Unknown text"))
	assert.Equal(t, `"Briefet"`, da.Quoted("Briefed"))

	got, err := da.Tf("%d of %d", 3, 7)
	require.NoError(t, err)
	assert.Equal(t, "3 af 7", got)

	en := bundle.Translator("fr-FR")
	assert.Equal(t, BaseLocale, en.Locale())
	got, err = en.Tf("%d of %d", 3, 7)
	require.NoError(t, err)
	assert.Equal(t, "3 of 7", got)
}

func TestTranslator_TfRequiresArgs(t *testing.T) {
	bundle, err := LoadEmbedded()
	require.NoError(t, err)
	tr := bundle.Translator("en-US")

	_, err = tr.Tf("%d lessons")
	assert.ErrorIs(t, err, ErrMissingFormatArgs)

	_, err = tr.Tf("", 1)
	assert.ErrorIs(t, err, ErrMissingFormatArgs)
}
