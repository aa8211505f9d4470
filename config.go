package streamstats

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/imdario/mergo"
	"gopkg.in/yaml.v3"
)

// PlatformFlags are startup switches set by the hosting application.
type PlatformFlags struct {
	// DisableLatencyTest turns off both latency test triggers regardless of
	// the section config.
	DisableLatencyTest bool `json:"disableLatencyTest,omitempty" yaml:"disableLatencyTest,omitempty"`
}

// Config is the file backed configuration of the stats panel.
type Config struct {
	// Locale is the BCP 47 tag used for digit grouping. Default "en-US".
	Locale string `yaml:"locale,omitempty"`

	// Sections lists the enabled sections. Omitted or empty enables all of
	// them; unknown names are ignored, so a list holding only "none" disables
	// every section.
	Sections []Section `yaml:"sections,omitempty"`

	// Flags are the platform switches applied by Engine.Configure.
	Flags PlatformFlags `yaml:"flags,omitempty"`

	// CodecProfiles appends the H264 profile and level to the video codec stat.
	CodecProfiles bool `yaml:"codecProfiles,omitempty"`

	// Listen is the address of the ingest HTTP server. Default ":8090".
	Listen string `yaml:"listen,omitempty"`
}

// DefaultConfig returns the configuration used for unset fields.
func DefaultConfig() Config {
	return Config{
		Locale:   DefaultLocale,
		Sections: append([]Section(nil), AllSections...),
		Listen:   ":8090",
	}
}

// SectionConfig returns the enabled section set.
func (c Config) SectionConfig() SectionConfig {
	return NewSectionConfig(c.Sections...)
}

// Options converts the config to engine options.
func (c Config) Options() []Option {
	return []Option{
		WithLocale(c.Locale),
		WithSections(c.SectionConfig()),
		WithCodecProfiles(c.CodecProfiles),
	}
}

// LoadConfig reads a YAML config file and fills unset fields from
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	return ParseConfig(f)
}

// ParseConfig decodes YAML config from r. An empty document yields
// DefaultConfig.
func ParseConfig(r io.Reader) (Config, error) {
	var config Config

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := mergo.Merge(&config, DefaultConfig()); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return config, nil
}
