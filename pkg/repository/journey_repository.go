package repository

import (
	"sync"
	"time"

	"github.com/finddreams/find-dreams/pkg/domain"
	"github.com/finddreams/find-dreams/pkg/wizard"
)

const journeyTTL = time.Hour

// journeyRepository keeps in-flight question journeys in memory. A
// restart simply sends the user back to the first question.
type journeyRepository struct {
	mu       sync.RWMutex
	journeys map[string]*wizard.Journey
}

func NewJourneyRepository() *journeyRepository {
	return &journeyRepository{
		journeys: make(map[string]*wizard.Journey),
	}
}

func (r *journeyRepository) Save(journey *wizard.Journey) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, j := range r.journeys {
		if time.Since(j.CreatedAt) > journeyTTL {
			delete(r.journeys, id)
		}
	}
	r.journeys[journey.ID] = journey
}

func (r *journeyRepository) Get(id string) (*wizard.Journey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	journey, ok := r.journeys[id]
	if !ok || time.Since(journey.CreatedAt) > journeyTTL {
		return nil, domain.ErrNotFound
	}
	return journey, nil
}

func (r *journeyRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.journeys, id)
}
