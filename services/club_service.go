package services

import (
	"sync"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// DefaultNamespace is the snapshot key used when no user id is supplied.
const DefaultNamespace = "default"

// ClubService hands out one ClubEngine per user namespace and owns the
// sweep scheduler. Engines are created on first use and cached for the
// lifetime of the process.
type ClubService struct {
	DB      *gorm.DB
	Catalog *CatalogService

	store   *StateStore
	sweeper gocron.Scheduler
	mu      sync.Mutex
	engines map[string]*ClubEngine
}

func NewClubService(db *gorm.DB, catalog *CatalogService) *ClubService {
	return &ClubService{
		DB:      db,
		Catalog: catalog,
		store:   NewStateStore(db, catalog),
		engines: make(map[string]*ClubEngine),
	}
}

// Engine returns the engine for userID, loading its snapshot on first use.
// An empty id falls back to the shared default namespace.
func (s *ClubService) Engine(userID string) *ClubEngine {
	if userID == "" {
		userID = DefaultNamespace
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if engine, ok := s.engines[userID]; ok {
		return engine
	}
	engine := newClubEngine(userID, s.store, s.Catalog)
	s.engines[userID] = engine
	return engine
}

// liveEngines snapshots the registry so the sweep iterates without holding
// the registry lock across engine mutexes.
func (s *ClubService) liveEngines() map[string]*ClubEngine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]*ClubEngine, len(s.engines))
	for id, engine := range s.engines {
		out[id] = engine
	}
	return out
}
