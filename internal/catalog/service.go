package catalog

import (
	"fmt"
	"sync"

	"drinkjoy/backend/internal/domain"
	"drinkjoy/backend/internal/store"
)

// Service manages catalog persistence and serves an in-memory snapshot to
// the matching engine. The snapshot is rebuilt after every write so request
// handlers never hit the database for the full catalog.
type Service struct {
	db      *store.Database
	cacheMu sync.RWMutex
	cache   []domain.Drink
	loaded  bool
}

// NewService wraps the database in a caching catalog service.
func NewService(db *store.Database) *Service {
	return &Service{db: db}
}

// All returns the full catalog snapshot, loading it on first use.
func (s *Service) All() ([]domain.Drink, error) {
	s.cacheMu.RLock()
	if s.loaded {
		snapshot := s.cache
		s.cacheMu.RUnlock()
		return snapshot, nil
	}
	s.cacheMu.RUnlock()
	return s.Refresh()
}

// Refresh rebuilds the snapshot from the store.
func (s *Service) Refresh() ([]domain.Drink, error) {
	rows, err := s.db.AllDrinks()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	drinks := make([]domain.Drink, 0, len(rows))
	for _, row := range rows {
		drinks = append(drinks, row.ToDomain())
	}
	s.cacheMu.Lock()
	s.cache = drinks
	s.loaded = true
	s.cacheMu.Unlock()
	return drinks, nil
}

// Replace swaps the stored catalog and refreshes the snapshot.
func (s *Service) Replace(drinks []domain.Drink) (int, error) {
	records := make([]store.DrinkRecord, 0, len(drinks))
	for _, d := range drinks {
		records = append(records, store.FromDomain(d))
	}
	if err := s.db.ReplaceCatalog(records); err != nil {
		return 0, err
	}
	if _, err := s.Refresh(); err != nil {
		return 0, err
	}
	return len(records), nil
}

// Save upserts one drink and refreshes the snapshot.
func (s *Service) Save(drink domain.Drink) error {
	rec := store.FromDomain(drink)
	if err := s.db.UpsertDrink(&rec); err != nil {
		return err
	}
	_, err := s.Refresh()
	return err
}

// Delete removes one drink and refreshes the snapshot.
func (s *Service) Delete(id string) error {
	if err := s.db.DeleteDrink(id); err != nil {
		return err
	}
	_, err := s.Refresh()
	return err
}

// Count returns the catalog size.
func (s *Service) Count() int {
	if s == nil {
		return 0
	}
	count, err := s.db.CountDrinks()
	if err != nil {
		return 0
	}
	return int(count)
}
