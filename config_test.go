package streamstats

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig_Empty(t *testing.T) {
	config, err := ParseConfig(strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), config)
}

func TestParseConfig(t *testing.T) {
	config, err := ParseConfig(strings.NewReader(`
locale: de-DE
sections:
  - session-stats
flags:
  disableLatencyTest: true
codecProfiles: true
`))
	require.NoError(t, err)

	assert.Equal(t, "de-DE", config.Locale)
	assert.Equal(t, []Section{SectionSessionStats}, config.Sections)
	assert.True(t, config.Flags.DisableLatencyTest)
	assert.True(t, config.CodecProfiles)
	assert.Equal(t, DefaultConfig().Listen, config.Listen)

	sections := config.SectionConfig()
	assert.True(t, sections.IsEnabled(SectionSessionStats))
	assert.False(t, sections.IsEnabled(SectionLatencyTest))
}

func TestParseConfig_NoneDisablesEverySection(t *testing.T) {
	config, err := ParseConfig(strings.NewReader("sections: [none]\n"))
	require.NoError(t, err)

	for _, section := range AllSections {
		assert.False(t, config.SectionConfig().IsEnabled(section))
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	_, err := ParseConfig(strings.NewReader("unknownKey: 1\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseConfig(strings.NewReader("sections: {a: b}\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "streamstats.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: 127.0.0.1:9000\n"), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", config.Listen)
	assert.Equal(t, DefaultLocale, config.Locale)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigOptions(t *testing.T) {
	config := DefaultConfig()
	config.Sections = []Section{SectionLatencyTest}
	config.CodecProfiles = true

	opts := defaultEngineOptions()
	for _, option := range config.Options() {
		option(&opts)
	}

	assert.Equal(t, DefaultLocale, opts.Locale)
	assert.Equal(t, NewSectionConfig(SectionLatencyTest), opts.Sections)
	assert.True(t, opts.CodecProfiles)
}
