package connector

import "sort"

// ProcessedSet records which classes, keyed per owning entity, have had
// their ancestor chain resolved. Keys are opaque: a class name, a
// connection-factory interface, or an AdminObject.Key. The set only grows.
type ProcessedSet struct {
	keys map[string]struct{}
}

func (s *ProcessedSet) Contains(key string) bool {
	_, ok := s.keys[key]
	return ok
}

func (s *ProcessedSet) Add(key string) {
	if s.keys == nil {
		s.keys = make(map[string]struct{})
	}
	s.keys[key] = struct{}{}
}

func (s *ProcessedSet) Len() int {
	return len(s.keys)
}

// Keys returns the keys in sorted order.
func (s *ProcessedSet) Keys() []string {
	keys := make([]string, 0, len(s.keys))
	for k := range s.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
