package maps

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/ShieldBattery/ShieldBattery-sub010/internal/engine"
)

type MemoryStore struct {
	mu   sync.RWMutex
	maps map[string]engine.Map
}

func NewMemoryStore(seed ...engine.Map) *MemoryStore {
	s := &MemoryStore{maps: make(map[string]engine.Map, len(seed))}
	for _, m := range seed {
		s.maps[m.Name] = m
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, name string) (engine.Map, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.maps[name]
	if !ok {
		return engine.Map{}, ErrMapNotFound
	}
	return m, nil
}

func (s *MemoryStore) Put(_ context.Context, m engine.Map) error {
	if err := validate(m); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.maps[m.Name]; ok {
		return ErrMapExists
	}
	s.maps[m.Name] = m
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]engine.Map, error) {
	s.mu.RLock()
	out := make([]engine.Map, 0, len(s.maps))
	for _, m := range s.maps {
		out = append(out, m)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b engine.Map) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}
