package streamstats

// Section names a category of stats or interactive features that can be
// switched on or off by configuration.
type Section string

const (
	SectionSessionStats           Section = "session-stats"
	SectionLatencyTest            Section = "latency-test"
	SectionDataChannelLatencyTest Section = "data-channel-latency-test"
)

// AllSections lists the known sections in display order.
var AllSections = []Section{
	SectionSessionStats,
	SectionLatencyTest,
	SectionDataChannelLatencyTest,
}

// SectionConfig is the set of enabled sections.
type SectionConfig struct {
	Enabled []Section `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// NewSectionConfig returns a config enabling exactly the given sections.
func NewSectionConfig(sections ...Section) SectionConfig {
	return SectionConfig{Enabled: append([]Section(nil), sections...)}
}

// DefaultSectionConfig enables every known section.
func DefaultSectionConfig() SectionConfig {
	return NewSectionConfig(AllSections...)
}

// IsEnabled reports whether section is in the enabled set of config. Unknown
// sections are disabled.
func IsEnabled(config SectionConfig, section Section) bool {
	for _, enabled := range config.Enabled {
		if enabled == section {
			return true
		}
	}
	return false
}

func (c SectionConfig) IsEnabled(section Section) bool {
	return IsEnabled(c, section)
}
