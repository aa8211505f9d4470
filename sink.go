package streamstats

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/go-logr/logr"
)

// RenderSink turns stat updates into something visible. Notify is called once
// per upsert, in emission order, with the stat's current title and value.
type RenderSink interface {
	Notify(id, title, value string)
}

// RenderSinkFunc adapts a function to RenderSink.
type RenderSinkFunc func(id, title, value string)

func (f RenderSinkFunc) Notify(id, title, value string) {
	f(id, title, value)
}

// sinkSet fans notifications out to the registered sinks in the order they
// were added. A panicking sink is recovered and logged so the remaining sinks
// still see the update.
type sinkSet struct {
	mu     sync.Mutex
	sinks  []RenderSink
	logger logr.Logger
}

func newSinkSet(logger logr.Logger, sinks ...RenderSink) *sinkSet {
	set := &sinkSet{logger: logger}
	for _, sink := range sinks {
		set.Add(sink)
	}
	return set
}

// Add appends sink. Nil sinks are ignored.
func (s *sinkSet) Add(sink RenderSink) {
	if sink == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sinks = append(s.sinks, sink)
}

func (s *sinkSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sinks)
}

func (s *sinkSet) Notify(id, title, value string) {
	s.mu.Lock()
	sinks := s.sinks
	s.mu.Unlock()

	for _, sink := range sinks {
		s.safeNotify(sink, id, title, value)
	}
}

func (s *sinkSet) safeNotify(sink RenderSink, id, title, value string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(fmt.Errorf("%v", r), "render sink panic", "id", id, "stack", string(debug.Stack()))
		}
	}()

	sink.Notify(id, title, value)
}

// NewLogSink returns a sink writing every update to logger at debug verbosity.
func NewLogSink(logger logr.Logger) RenderSink {
	return RenderSinkFunc(func(id, title, value string) {
		logger.V(1).Info("stat", "id", id, "title", title, "value", value)
	})
}

// ResettableSink is a RenderSink that can drop everything it displays, which
// the engine asks for when a new session starts.
type ResettableSink interface {
	RenderSink
	Reset()
}

func (s *sinkSet) Reset() {
	s.mu.Lock()
	sinks := s.sinks
	s.mu.Unlock()

	for _, sink := range sinks {
		if resettable, ok := sink.(ResettableSink); ok {
			resettable.Reset()
		}
	}
}
