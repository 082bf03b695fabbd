package rest

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// Store errors.
var (
	ErrUnknownResource = errors.New("unknown resource")
	ErrNotFound        = errors.New("not found")
	ErrExists          = errors.New("exist already")
	ErrIDMismatch      = errors.New("id's mismatch")
)

// Place is a trail or a city.
type Place struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Location    string `json:"location" yaml:"location"`
}

// Store holds places per resource name ("trails", "cities").
type Store struct {
	mu        sync.RWMutex
	resources map[string]map[int]Place
}

// NewStore creates a store with the given, empty resources.
func NewStore(resources ...string) *Store {
	s := &Store{resources: make(map[string]map[int]Place, len(resources))}
	for _, r := range resources {
		s.resources[r] = make(map[int]Place)
	}
	return s
}

// LoadStore parses a YAML document mapping resource names to place lists.
func LoadStore(data []byte) (*Store, error) {
	var doc map[string][]Place
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing seed data: %w", err)
	}

	s := NewStore()
	for resource, places := range doc {
		s.resources[resource] = make(map[int]Place, len(places))
		for _, p := range places {
			if _, dup := s.resources[resource][p.ID]; dup {
				return nil, fmt.Errorf("seed %s: duplicate id %d", resource, p.ID)
			}
			s.resources[resource][p.ID] = p
		}
	}
	return s, nil
}

// SeedStore returns a store filled with the built-in demo places.
func SeedStore() *Store {
	s, err := LoadStore(seedYAML)
	if err != nil {
		panic(err)
	}
	return s
}

// Resources returns the sorted resource names.
func (s *Store) Resources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.resources))
	for name := range s.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns the places of resource ordered by id.
func (s *Store) List(resource string) ([]Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	places, ok := s.resources[resource]
	if !ok {
		return nil, ErrUnknownResource
	}

	out := make([]Place, 0, len(places))
	for _, p := range places {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns one place.
func (s *Store) Get(resource string, id int) (Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	places, ok := s.resources[resource]
	if !ok {
		return Place{}, ErrUnknownResource
	}
	p, ok := places[id]
	if !ok {
		return Place{}, fmt.Errorf("%w (%d)", ErrNotFound, id)
	}
	return p, nil
}

// Create adds p; the id must be unused.
func (s *Store) Create(resource string, p Place) (Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	places, ok := s.resources[resource]
	if !ok {
		return Place{}, ErrUnknownResource
	}
	if _, exists := places[p.ID]; exists {
		return Place{}, fmt.Errorf("%w (%d)", ErrExists, p.ID)
	}
	places[p.ID] = p
	return p, nil
}

// Update replaces the place with id; p.ID must equal id.
func (s *Store) Update(resource string, id int, p Place) (Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	places, ok := s.resources[resource]
	if !ok {
		return Place{}, ErrUnknownResource
	}
	if _, exists := places[id]; !exists {
		return Place{}, fmt.Errorf("%w (%d)", ErrNotFound, id)
	}
	if id != p.ID {
		return Place{}, fmt.Errorf("%w (%d != %d)", ErrIDMismatch, id, p.ID)
	}
	places[id] = p
	return p, nil
}

// Delete removes and returns the place with id.
func (s *Store) Delete(resource string, id int) (Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	places, ok := s.resources[resource]
	if !ok {
		return Place{}, ErrUnknownResource
	}
	p, exists := places[id]
	if !exists {
		return Place{}, fmt.Errorf("%w (%d)", ErrNotFound, id)
	}
	delete(places, id)
	return p, nil
}
