package streamstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEnabled(t *testing.T) {
	config := NewSectionConfig(SectionSessionStats)

	assert.True(t, IsEnabled(config, SectionSessionStats))
	assert.False(t, IsEnabled(config, SectionLatencyTest))
	assert.False(t, config.IsEnabled(Section("unknown")))
	assert.False(t, IsEnabled(SectionConfig{}, SectionSessionStats))
}

func TestDefaultSectionConfig(t *testing.T) {
	config := DefaultSectionConfig()

	for _, section := range AllSections {
		assert.True(t, config.IsEnabled(section), section)
	}
}
