package streamstats

import "sync"

// RecordingSink remembers every notification it receives, in order.
type RecordingSink struct {
	mu     sync.Mutex
	stats  []Stat
	resets int
}

func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (s *RecordingSink) Notify(id, title, value string) {
	stat := Stat{Id: id, Title: title, Value: value}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats = append(s.stats, stat)
}

func (s *RecordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats = nil
	s.resets++
}

func (s *RecordingSink) Stats() []Stat {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Stat(nil), s.stats...)
}

func (s *RecordingSink) Ids() []string {
	var ids []string
	for _, stat := range s.Stats() {
		ids = append(ids, stat.Id)
	}
	return ids
}

func (s *RecordingSink) CalledTimes() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.stats)
}

func (s *RecordingSink) Resets() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.resets
}

func statIds(stats []Stat) []string {
	ids := make([]string, 0, len(stats))
	for _, stat := range stats {
		ids = append(ids, stat.Id)
	}
	return ids
}

func statValues(stats []Stat) map[string]string {
	values := make(map[string]string, len(stats))
	for _, stat := range stats {
		values[stat.Id] = stat.Value
	}
	return values
}
