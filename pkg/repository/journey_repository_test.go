package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/finddreams/find-dreams/pkg/domain"
	"github.com/finddreams/find-dreams/pkg/wizard"
)

func TestJourneyRepository_SaveAndGet(t *testing.T) {
	repo := NewJourneyRepository()
	journey := wizard.NewJourney()

	repo.Save(journey)

	got, err := repo.Get(journey.ID)
	require.NoError(t, err)
	require.Same(t, journey, got)
}

func TestJourneyRepository_UnknownID(t *testing.T) {
	repo := NewJourneyRepository()

	_, err := repo.Get("missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJourneyRepository_ExpiredJourneyNotReturned(t *testing.T) {
	repo := NewJourneyRepository()
	journey := wizard.NewJourney()
	journey.CreatedAt = time.Now().Add(-2 * time.Hour)

	repo.Save(journey)

	_, err := repo.Get(journey.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJourneyRepository_SaveSweepsExpired(t *testing.T) {
	repo := NewJourneyRepository()
	stale := wizard.NewJourney()
	stale.CreatedAt = time.Now().Add(-2 * time.Hour)
	repo.Save(stale)

	repo.Save(wizard.NewJourney())

	repo.mu.RLock()
	_, ok := repo.journeys[stale.ID]
	repo.mu.RUnlock()
	require.False(t, ok, "stale journey should be swept on save")
}

func TestJourneyRepository_ConcurrentAnswersOnSharedJourney(t *testing.T) {
	repo := NewJourneyRepository()
	journey := wizard.NewJourney()
	repo.Save(journey)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := repo.Get(journey.ID)
			if err != nil {
				return
			}
			_ = got.Advance("an answer")
		}()
	}
	wg.Wait()

	require.Equal(t, 2, journey.Index())
}

func TestJourneyRepository_Delete(t *testing.T) {
	repo := NewJourneyRepository()
	journey := wizard.NewJourney()
	repo.Save(journey)

	repo.Delete(journey.ID)

	_, err := repo.Get(journey.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
