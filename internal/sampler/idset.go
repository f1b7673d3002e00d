package sampler

import "sync"

// idSet records identifiers and reports repeats. Safe for concurrent use.
type idSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func newIDSet(capacity int) *idSet {
	return &idSet{seen: make(map[string]struct{}, capacity)}
}

// SeenAndRecord reports whether id was already recorded, recording it if not.
func (s *idSet) SeenAndRecord(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[id]; ok {
		return true
	}
	s.seen[id] = struct{}{}
	return false
}

// Size returns the number of recorded ids.
func (s *idSet) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
