package streamstats

import (
	"sync"

	"github.com/go-logr/logr"
)

// Trigger is the core side of a user initiated test (the latency test or the
// data channel latency test). The collaborator owning the test installs the
// start action; anyone may subscribe to the started notification.
type Trigger struct {
	mu              sync.RWMutex
	section         Section
	logger          logr.Logger
	startAction     func()
	startedHandlers []func()
	sectionOff      bool
	disabled        bool
}

func newTrigger(section Section, sections SectionConfig) *Trigger {
	return &Trigger{
		section:    section,
		logger:     NewLogger("Trigger").WithValues("section", section),
		sectionOff: !sections.IsEnabled(section),
	}
}

// Section returns the section that gates the trigger.
func (t *Trigger) Section() Section {
	return t.section
}

// Enabled reports whether the trigger may be started: its section is enabled
// and no platform switch disabled it.
func (t *Trigger) Enabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return !t.sectionOff && !t.disabled
}

// SetStartAction installs the function that actually runs the test.
func (t *Trigger) SetStartAction(action func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.startAction = action
}

// OnStarted subscribes handler to the test started notification.
func (t *Trigger) OnStarted(handler func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.startedHandlers = append(t.startedHandlers, handler)
}

// Start runs the start action and then notifies the started handlers.
func (t *Trigger) Start() error {
	t.mu.RLock()
	enabled := !t.sectionOff && !t.disabled
	action := t.startAction
	handlers := t.startedHandlers
	t.mu.RUnlock()

	if !enabled {
		return ErrTriggerDisabled
	}
	if action == nil {
		return ErrNoStartAction
	}

	t.logger.V(1).Info("start()")

	action()

	for _, handler := range handlers {
		handler()
	}

	return nil
}

func (t *Trigger) disable() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.disabled = true
}

// reset drops the start action and every started subscriber.
func (t *Trigger) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.startAction = nil
	t.startedHandlers = nil
}
