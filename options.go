package streamstats

import "github.com/go-logr/logr"

// EngineOptions configures an Engine.
type EngineOptions struct {
	// Locale is the BCP 47 tag used for digit grouping. Default "en-US".
	Locale string

	// Sections lists the enabled sections. Default all of them; an empty
	// config disables every section.
	Sections SectionConfig

	// CodecProfiles appends the H264 profile and level to the video codec stat.
	CodecProfiles bool

	// Numbers overrides the locale based number formatter.
	Numbers NumberFormatter

	// Sinks receive every upsert, in order.
	Sinks []RenderSink

	// Logger sets the engine logger. Default NewLogger("Engine").
	Logger *logr.Logger
}

type Option func(*EngineOptions)

func WithLocale(locale string) Option {
	return func(o *EngineOptions) {
		o.Locale = locale
	}
}

func WithSections(sections SectionConfig) Option {
	return func(o *EngineOptions) {
		o.Sections = sections
	}
}

func WithCodecProfiles(enabled bool) Option {
	return func(o *EngineOptions) {
		o.CodecProfiles = enabled
	}
}

func WithNumberFormatter(numbers NumberFormatter) Option {
	return func(o *EngineOptions) {
		o.Numbers = numbers
	}
}

// WithSink adds a render sink. It may be given several times.
func WithSink(sink RenderSink) Option {
	return func(o *EngineOptions) {
		o.Sinks = append(o.Sinks, sink)
	}
}

func WithLogger(logger logr.Logger) Option {
	return func(o *EngineOptions) {
		o.Logger = &logger
	}
}

func defaultEngineOptions() EngineOptions {
	return EngineOptions{
		Locale:   DefaultLocale,
		Sections: DefaultSectionConfig(),
	}
}
