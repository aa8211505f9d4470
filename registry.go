package streamstats

import (
	"sync"

	"github.com/go-logr/logr"
)

// Stat is one labelled display value.
type Stat struct {
	Id    string `json:"id"`
	Title string `json:"title"`
	Value string `json:"value"`
}

// StatRegistry keeps stats keyed by id and iterates them in first-insertion
// order. Ids are never removed; a new session gets a new registry.
type StatRegistry struct {
	mu     sync.RWMutex
	index  map[string]int
	stats  []Stat
	sink   RenderSink
	logger logr.Logger
}

// NewStatRegistry creates an empty registry. Every upsert is forwarded to sink
// when it is not nil.
func NewStatRegistry(sink RenderSink) *StatRegistry {
	return &StatRegistry{
		index:  make(map[string]int),
		sink:   sink,
		logger: NewLogger("StatRegistry"),
	}
}

// Upsert stores title and value under id. A new id is appended to the end of
// the iteration order and created is true; a known id is updated in place.
func (r *StatRegistry) Upsert(id, title, value string) (created bool) {
	stat := Stat{Id: id, Title: title, Value: value}

	r.mu.Lock()
	if i, ok := r.index[id]; ok {
		r.stats[i] = stat
	} else {
		r.index[id] = len(r.stats)
		r.stats = append(r.stats, stat)
		created = true
	}
	r.mu.Unlock()

	if created {
		r.logger.V(1).Info("stat created", "id", id)
	}
	if r.sink != nil {
		r.sink.Notify(id, title, value)
	}

	return created
}

// Get returns the stat stored under id.
func (r *StatRegistry) Get(id string) (Stat, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return Stat{}, false
	}
	return r.stats[i], true
}

// Entries returns a copy of the stats in insertion order.
func (r *StatRegistry) Entries() []Stat {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Stat, len(r.stats))
	copy(entries, r.stats)
	return entries
}

// Len returns the number of distinct ids seen.
func (r *StatRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.stats)
}
