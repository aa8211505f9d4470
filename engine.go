package streamstats

import (
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

// Engine owns the stat registry of a streaming session and feeds it from
// telemetry deliveries. Deliveries are handled one at a time: each one is
// fully applied, and its sinks notified, before the next is accepted. Sinks
// may read the engine from Notify but must not deliver to it.
type Engine struct {
	delivery               sync.Mutex
	mu                     sync.RWMutex
	logger                 logr.Logger
	processor              StatsProcessor
	sinks                  *sinkSet
	sessionId              string
	registry               *StatRegistry
	latencyTest            *Trigger
	dataChannelLatencyTest *Trigger
}

// NewEngine creates an engine with an empty registry and a fresh session id.
func NewEngine(options ...Option) *Engine {
	opts := defaultEngineOptions()
	for _, option := range options {
		option(&opts)
	}

	logger := NewLogger("Engine")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	numbers := opts.Numbers
	if numbers == nil {
		numbers = NewNumberFormatter(opts.Locale)
	}

	engine := &Engine{
		logger: logger,
		processor: StatsProcessor{
			Sections:      opts.Sections,
			Numbers:       numbers,
			CodecProfiles: opts.CodecProfiles,
		},
		sinks:                  newSinkSet(logger, opts.Sinks...),
		latencyTest:            newTrigger(SectionLatencyTest, opts.Sections),
		dataChannelLatencyTest: newTrigger(SectionDataChannelLatencyTest, opts.Sections),
	}
	engine.resetSession()

	logger.V(1).Info("constructor()", "sessionId", engine.sessionId, "sections", opts.Sections.Enabled)

	return engine
}

// HandleStats applies a connection/media snapshot.
func (e *Engine) HandleStats(stats *AggregatedStats) {
	e.apply("stats", e.processor.Connection(stats))
}

// HandleLatencyInfo applies the result of a latency test.
func (e *Engine) HandleLatencyInfo(info *LatencyBreakdown) {
	e.apply("latency", e.processor.Latency(info))
}

// HandlePlayerCount applies the current participant count.
func (e *Engine) HandlePlayerCount(count uint32) {
	e.apply("players", e.processor.Players(count))
}

func (e *Engine) apply(kind string, stats []Stat) {
	e.delivery.Lock()
	defer e.delivery.Unlock()

	e.mu.RLock()
	registry := e.registry
	e.mu.RUnlock()

	created := 0

	for _, stat := range stats {
		if registry.Upsert(stat.Id, stat.Title, stat.Value) {
			created++
		}
	}

	e.logger.V(1).Info("applied", "kind", kind, "upserts", len(stats), "created", created)
}

// Entries returns the current stats in first-insertion order.
func (e *Engine) Entries() []Stat {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.registry.Entries()
}

// SessionId returns the id of the current registry lifetime.
func (e *Engine) SessionId() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.sessionId
}

// NewSession discards every stat and starts a new session. Sinks that
// implement ResettableSink are reset first.
func (e *Engine) NewSession() string {
	e.delivery.Lock()
	defer e.delivery.Unlock()

	e.sinks.Reset()

	e.mu.Lock()
	e.resetSession()
	sessionId := e.sessionId
	e.mu.Unlock()

	e.logger.Info("new session", "sessionId", sessionId)

	return sessionId
}

func (e *Engine) resetSession() {
	e.sessionId = uuid.NewString()
	e.registry = NewStatRegistry(e.sinks)
}

// AddSink registers another render sink. It only sees upserts made after the
// call.
func (e *Engine) AddSink(sink RenderSink) {
	e.sinks.Add(sink)
}

// LatencyTest returns the latency test trigger.
func (e *Engine) LatencyTest() *Trigger {
	return e.latencyTest
}

// DataChannelLatencyTest returns the data channel latency test trigger.
func (e *Engine) DataChannelLatencyTest() *Trigger {
	return e.dataChannelLatencyTest
}

// Trigger returns the trigger gated by section, or nil.
func (e *Engine) Trigger(section Section) *Trigger {
	switch section {
	case SectionLatencyTest:
		return e.latencyTest
	case SectionDataChannelLatencyTest:
		return e.dataChannelLatencyTest
	default:
		return nil
	}
}

// Configure applies the platform switches set at startup. DisableLatencyTest
// disables both latency test triggers.
func (e *Engine) Configure(flags PlatformFlags) {
	if flags.DisableLatencyTest {
		e.logger.V(1).Info("latency tests disabled by platform flag")
		e.latencyTest.disable()
		e.dataChannelLatencyTest.disable()
	}
}

// OnDisconnect drops the interactive wiring of both triggers. The stats stay
// on display until NewSession is called.
func (e *Engine) OnDisconnect() {
	e.logger.V(1).Info("OnDisconnect()")

	e.latencyTest.reset()
	e.dataChannelLatencyTest.reset()
}
