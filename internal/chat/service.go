// Package chat drives the portal's AI assistant conversation: it owns the
// transcript, sends turns through the gateway, and persists the whole
// conversation per user so it survives a restart.
package chat

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MRaysa/medai-client/internal/cache"
	"github.com/MRaysa/medai-client/internal/flight"
	"github.com/MRaysa/medai-client/internal/gateway"
	"github.com/MRaysa/medai-client/internal/metrics"
	"github.com/MRaysa/medai-client/pkg/logger"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the transcript. Immutable once appended.
type Message struct {
	ID        int64     `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	IsError   bool      `json:"isError,omitempty"`
}

// UserContext is the optional profile summary sent along with each turn.
type UserContext struct {
	Name   string `json:"name,omitempty"`
	Age    int    `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

const (
	historyKey    = "chat_history"
	historyWindow = 10

	welcomeMessage = "Hello! I'm your MedAI health assistant. How can I help you today?"
	// Shown in the transcript when a turn cannot be delivered at all.
	transportErrorReply = "Sorry, I couldn't reach the assistant right now. Please try again."
)

type Service struct {
	api    gateway.Caller
	store  cache.Store
	userID string

	guard flight.Guard

	mu       sync.Mutex
	messages []Message
	userCtx  *UserContext
	lastID   int64
}

// NewService restores the user's transcript from the cache, seeding a welcome
// message for a fresh conversation.
func NewService(ctx context.Context, api gateway.Caller, store cache.Store, userID string) *Service {
	s := &Service{
		api:    api,
		store:  store,
		userID: userID,
	}

	var cached []Message
	ok, err := store.Load(ctx, cache.ForUser(userID), historyKey, &cached)
	if err != nil {
		logger.Warn("Failed to load chat history", zap.String("user_id", userID), zap.Error(err))
	}
	if ok && len(cached) > 0 {
		s.messages = cached
		s.lastID = cached[len(cached)-1].ID
	} else {
		s.messages = []Message{s.newMessage(RoleAssistant, welcomeMessage, false)}
		s.persist(ctx)
	}

	return s
}

func (s *Service) SetUserContext(uc UserContext) {
	s.mu.Lock()
	s.userCtx = &uc
	s.mu.Unlock()
}

// Messages returns a copy of the transcript in order.
func (s *Service) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Service) Busy() bool {
	return s.guard.Loading()
}

// Send submits one chat turn. Empty or whitespace-only text is ignored, and a
// turn while another is in flight is rejected with flight.ErrBusy; in both
// cases the transcript is untouched. A delivery failure never comes back as an
// error: it is appended as an error-flagged assistant message so the
// conversation keeps its flow.
func (s *Service) Send(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	return s.guard.Do(func() error {
		s.mu.Lock()
		history := s.trimmedHistory()
		userCtx := s.userCtx
		s.messages = append(s.messages, s.newMessage(RoleUser, trimmed, false))
		s.mu.Unlock()
		s.persist(ctx)

		body := map[string]interface{}{
			"message": trimmed,
			"history": history,
		}
		if userCtx != nil {
			body["userContext"] = userCtx
		}

		env, err := s.api.Call(ctx, http.MethodPost, "/ai/chat", body)

		var reply Message
		switch {
		case err != nil:
			content := transportErrorReply
			var apiErr *gateway.APIError
			if errors.As(err, &apiErr) {
				content = apiErr.Message
			}
			reply = s.newMessage(RoleAssistant, content, true)
			metrics.ChatMessagesSent.WithLabelValues("error").Inc()
			logger.Warn("Chat turn failed", zap.String("user_id", s.userID), zap.Error(err))
		default:
			content := env.Text()
			if content == "" {
				content = gateway.FallbackErrorMessage
			}
			reply = s.newMessage(RoleAssistant, content, false)
			metrics.ChatMessagesSent.WithLabelValues("success").Inc()
		}

		s.mu.Lock()
		s.messages = append(s.messages, reply)
		s.mu.Unlock()
		s.persist(ctx)

		return nil
	})
}

// Clear wipes the conversation and its cached copy, then reseeds the greeting.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.messages = []Message{s.newMessage(RoleAssistant, welcomeMessage, false)}
	s.mu.Unlock()

	if err := s.store.Clear(ctx, cache.ForUser(s.userID), historyKey); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

type historyTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// trimmedHistory returns the last few turns for the backend's context window.
// Caller holds s.mu.
func (s *Service) trimmedHistory() []historyTurn {
	start := 0
	if len(s.messages) > historyWindow {
		start = len(s.messages) - historyWindow
	}

	turns := make([]historyTurn, 0, len(s.messages)-start)
	for _, m := range s.messages[start:] {
		if m.IsError {
			continue
		}
		turns = append(turns, historyTurn{Role: m.Role, Content: m.Content})
	}
	return turns
}

// newMessage allocates a monotonic timestamp-derived id. Caller holds s.mu or
// has exclusive access.
func (s *Service) newMessage(role Role, content string, isError bool) Message {
	now := time.Now()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	return Message{
		ID:        id,
		Role:      role,
		Content:   content,
		Timestamp: now,
		IsError:   isError,
	}
}

func (s *Service) persist(ctx context.Context) {
	s.mu.Lock()
	snapshot := make([]Message, len(s.messages))
	copy(snapshot, s.messages)
	s.mu.Unlock()

	if err := s.store.Save(ctx, cache.ForUser(s.userID), historyKey, snapshot); err != nil {
		logger.Warn("Failed to persist chat history", zap.String("user_id", s.userID), zap.Error(err))
	}
}
