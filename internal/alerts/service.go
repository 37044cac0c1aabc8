// Package alerts fetches the user's health alerts and tracks which ones have
// been dismissed locally. Dismissals are optimistic: the alert disappears
// immediately and the server is told afterwards.
package alerts

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MRaysa/medai-client/internal/cache"
	"github.com/MRaysa/medai-client/internal/flight"
	"github.com/MRaysa/medai-client/internal/gateway"
	"github.com/MRaysa/medai-client/internal/metrics"
	"github.com/MRaysa/medai-client/pkg/logger"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Action struct {
	Label string `json:"label"`
	Link  string `json:"link"`
}

type Alert struct {
	ID       string     `json:"id"`
	Priority Priority   `json:"priority"`
	Type     string     `json:"type"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	DueDate  *time.Time `json:"dueDate,omitempty"`
	Action   *Action    `json:"action,omitempty"`
}

type Summary struct {
	Total  int `json:"total"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Alert types the backend emits; anything that is not a priority selector is
// matched against these.
const (
	TypeAppointment = "appointment"
	TypeLabTest     = "lab_test"
	TypeBilling     = "billing"
	TypeHealth      = "health"
	TypeWellness    = "wellness"
)

const dismissedKey = "dismissed_alerts"

type Service struct {
	api   gateway.Caller
	store cache.Store
	guard flight.Guard

	mu        sync.Mutex
	alerts    []Alert
	summary   Summary
	dismissed map[string]struct{}
}

// NewService restores the dismissed-id set from the shared cache scope.
func NewService(ctx context.Context, api gateway.Caller, store cache.Store) *Service {
	s := &Service{
		api:       api,
		store:     store,
		dismissed: make(map[string]struct{}),
	}

	var ids []string
	ok, err := store.Load(ctx, cache.Shared(), dismissedKey, &ids)
	if err != nil {
		logger.Warn("Failed to load dismissed alerts", zap.Error(err))
	}
	if ok {
		for _, id := range ids {
			s.dismissed[id] = struct{}{}
		}
	}

	return s
}

// Refresh fetches the current alert list and summary counts. Source order is
// kept as delivered.
func (s *Service) Refresh(ctx context.Context) error {
	return s.guard.Do(func() error {
		env, err := s.api.Call(ctx, http.MethodGet, "/ai/alerts", nil)
		if err != nil {
			return err
		}

		var payload struct {
			Alerts  []Alert `json:"alerts"`
			Summary Summary `json:"summary"`
		}
		if err := env.Decode(&payload); err != nil {
			return err
		}

		s.mu.Lock()
		s.alerts = payload.Alerts
		s.summary = payload.Summary
		s.mu.Unlock()
		return nil
	})
}

// Dismiss hides an alert locally (set semantics, safe to repeat), persists the
// set, then notifies the server. The local dismissal stands even when the
// server call fails.
func (s *Service) Dismiss(ctx context.Context, alertID string) error {
	s.mu.Lock()
	_, already := s.dismissed[alertID]
	if !already {
		s.dismissed[alertID] = struct{}{}
	}
	ids := s.dismissedIDs()
	s.mu.Unlock()

	if !already {
		metrics.AlertsDismissed.Inc()
		if err := s.store.Save(ctx, cache.Shared(), dismissedKey, ids); err != nil {
			logger.Warn("Failed to persist dismissed alerts", zap.Error(err))
		}
	}

	_, err := s.api.Call(ctx, http.MethodPost, "/ai/alerts/dismiss", map[string]string{"alertId": alertID})
	return err
}

func (s *Service) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

func (s *Service) Busy() bool {
	return s.guard.Loading()
}

// dismissedIDs snapshots the set in a stable order. Caller holds s.mu.
func (s *Service) dismissedIDs() []string {
	ids := make([]string, 0, len(s.dismissed))
	for id := range s.dismissed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
