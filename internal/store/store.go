// Package store holds the portal's process-local content state. There
// is no database behind it; everything lives in memory and is reseeded
// on restart.
package store

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rahmasleam/NexusMenaV2/internal/models"
)

var (
	ErrNotFound          = errors.New("store: item not found")
	ErrUnknownCollection = errors.New("store: unknown collection")
)

// ContentStore is a mutex-guarded set of content collections.
type ContentStore struct {
	mu    sync.RWMutex
	items map[models.Collection][]models.ContentItem
}

// New creates an empty store with all known collections initialized.
func New() *ContentStore {
	s := &ContentStore{items: make(map[models.Collection][]models.ContentItem)}
	for _, c := range models.Collections {
		s.items[c] = []models.ContentItem{}
	}
	return s
}

// NewSeeded creates a store pre-populated with the portal's seed content.
func NewSeeded() *ContentStore {
	s := New()
	s.seed()
	return s
}

// List returns a copy of a collection, newest date first.
func (s *ContentStore) List(collection models.Collection) ([]models.ContentItem, error) {
	if !collection.Valid() {
		return nil, ErrUnknownCollection
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ContentItem, len(s.items[collection]))
	copy(out, s.items[collection])
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// Get returns one item by id.
func (s *ContentStore) Get(collection models.Collection, id string) (models.ContentItem, error) {
	if !collection.Valid() {
		return models.ContentItem{}, ErrUnknownCollection
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items[collection] {
		if item.ID == id {
			return item, nil
		}
	}
	return models.ContentItem{}, ErrNotFound
}

// Add inserts an item, assigning an id when absent.
func (s *ContentStore) Add(collection models.Collection, item models.ContentItem) (models.ContentItem, error) {
	if !collection.Valid() {
		return models.ContentItem{}, ErrUnknownCollection
	}
	if strings.TrimSpace(item.ID) == "" {
		item.ID = uuid.New().String()
	}

	s.mu.Lock()
	s.items[collection] = append(s.items[collection], item)
	s.mu.Unlock()
	return item, nil
}

// Update replaces an item by id.
func (s *ContentStore) Update(collection models.Collection, item models.ContentItem) error {
	if !collection.Valid() {
		return ErrUnknownCollection
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.items[collection] {
		if existing.ID == item.ID {
			s.items[collection][i] = item
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes an item by id.
func (s *ContentStore) Delete(collection models.Collection, id string) error {
	if !collection.Valid() {
		return ErrUnknownCollection
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.items[collection]
	for i, existing := range list {
		if existing.ID == id {
			s.items[collection] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Count returns the number of items per collection.
func (s *ContentStore) Count() map[models.Collection]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[models.Collection]int, len(s.items))
	for c, list := range s.items {
		out[c] = len(list)
	}
	return out
}
