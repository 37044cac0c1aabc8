// Package wellness fetches the daily wellness bundle and manages the user's
// locally saved tips. The bundle itself is opaque: displayed and replaced
// wholesale on every refresh.
package wellness

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MRaysa/medai-client/internal/cache"
	"github.com/MRaysa/medai-client/internal/flight"
	"github.com/MRaysa/medai-client/internal/gateway"
	"github.com/MRaysa/medai-client/pkg/logger"
)

// Category is one tip set. Only the tips themselves are interpreted; the
// category-specific extras ride along untouched for display.
type Category struct {
	Tips  []string        `json:"tips"`
	Extra json.RawMessage `json:"-"`
}

func (c *Category) UnmarshalJSON(data []byte) error {
	type plain struct {
		Tips []string `json:"tips"`
	}
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	c.Tips = p.Tips
	c.Extra = append(json.RawMessage(nil), data...)
	return nil
}

type Bundle struct {
	DailyTip          string              `json:"dailyTip"`
	Categories        map[string]Category `json:"categories"`
	WeeklyGoals       []string            `json:"weeklyGoals"`
	MotivationalQuote string              `json:"motivationalQuote"`
	HealthFact        string              `json:"healthFact"`
}

type SavedTip struct {
	ID       string    `json:"id"`
	Tip      string    `json:"tip"`
	Category string    `json:"category"`
	SavedAt  time.Time `json:"savedAt"`
}

const savedTipsKey = "saved_tips"

type Service struct {
	api   gateway.Caller
	store cache.Store
	guard flight.Guard

	mu     sync.Mutex
	bundle *Bundle
	saved  []SavedTip
}

// NewService restores saved tips from the shared cache scope.
func NewService(ctx context.Context, api gateway.Caller, store cache.Store) *Service {
	s := &Service{api: api, store: store}

	var saved []SavedTip
	ok, err := store.Load(ctx, cache.Shared(), savedTipsKey, &saved)
	if err != nil {
		logger.Warn("Failed to load saved tips", zap.Error(err))
	}
	if ok {
		s.saved = saved
	}

	return s
}

func (s *Service) Refresh(ctx context.Context) error {
	return s.guard.Do(func() error {
		env, err := s.api.Call(ctx, http.MethodGet, "/ai/wellness", nil)
		if err != nil {
			return err
		}

		var bundle Bundle
		if err := env.Decode(&bundle); err != nil {
			return err
		}

		s.mu.Lock()
		s.bundle = &bundle
		s.mu.Unlock()
		return nil
	})
}

func (s *Service) Bundle() *Bundle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bundle
}

func (s *Service) Busy() bool {
	return s.guard.Loading()
}

// SaveTip stores a tip for later. Saving the same tip of the same category
// twice keeps a single copy.
func (s *Service) SaveTip(ctx context.Context, category, tip string) SavedTip {
	s.mu.Lock()
	for _, st := range s.saved {
		if st.Category == category && st.Tip == tip {
			s.mu.Unlock()
			return st
		}
	}

	saved := SavedTip{
		ID:       uuid.NewString(),
		Tip:      tip,
		Category: category,
		SavedAt:  time.Now(),
	}
	s.saved = append(s.saved, saved)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return saved
}

func (s *Service) RemoveTip(ctx context.Context, id string) {
	s.mu.Lock()
	for i, st := range s.saved {
		if st.ID == id {
			s.saved = append(s.saved[:i], s.saved[i+1:]...)
			break
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
}

func (s *Service) SavedTips() []SavedTip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() []SavedTip {
	out := make([]SavedTip, len(s.saved))
	copy(out, s.saved)
	return out
}

func (s *Service) persist(ctx context.Context, tips []SavedTip) {
	if err := s.store.Save(ctx, cache.Shared(), savedTipsKey, tips); err != nil {
		logger.Warn("Failed to persist saved tips", zap.Error(err))
	}
}
