package streamstats

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestDebugEnabled(t *testing.T) {
	assert.False(t, debugEnabled("", "Engine"))
	assert.True(t, debugEnabled("*", "Engine"))
	assert.True(t, debugEnabled("Engine, Trigger", "Trigger"))
	assert.False(t, debugEnabled("*,-Engine", "Engine"))
	assert.True(t, debugEnabled("*,-Engine", "StatRegistry"))
	assert.True(t, debugEnabled("Stat*", "StatRegistry"))
}

func TestNewLogger(t *testing.T) {
	t.Setenv("DEBUG", "Engine")

	buf := &bytes.Buffer{}
	impl := defaultLoggerImpl
	defaultLoggerImpl = zerolog.New(buf)
	defer func() { defaultLoggerImpl = impl }()

	NewLogger("Engine").V(1).Info("engine debug")
	NewLogger("Trigger").V(1).Info("trigger debug")
	NewLogger("Trigger").Info("trigger info")

	output := buf.String()
	assert.Contains(t, output, "engine debug")
	assert.NotContains(t, output, "trigger debug")
	assert.Contains(t, output, "trigger info")
}
