package chat

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/MRaysa/medai-client/internal/cache"
	"github.com/MRaysa/medai-client/internal/flight"
	"github.com/MRaysa/medai-client/internal/gateway"
)

type fakeAPI struct {
	calls    int
	lastPath string
	lastBody map[string]interface{}
	respond  func() (*gateway.Envelope, error)
}

func (f *fakeAPI) Call(ctx context.Context, method, path string, body interface{}) (*gateway.Envelope, error) {
	f.calls++
	f.lastPath = path
	f.lastBody = nil
	if body != nil {
		raw, _ := json.Marshal(body)
		json.Unmarshal(raw, &f.lastBody)
	}
	return f.respond()
}

func successEnvelope(message string) func() (*gateway.Envelope, error) {
	return func() (*gateway.Envelope, error) {
		raw, _ := json.Marshal(message)
		return &gateway.Envelope{Success: true, Message: raw}, nil
	}
}

func newTestService(t *testing.T, api *fakeAPI) *Service {
	t.Helper()
	return NewService(context.Background(), api, cache.NewMemory(), "user-1")
}

func TestNewServiceSeedsWelcomeMessage(t *testing.T) {
	svc := newTestService(t, &fakeAPI{})

	msgs := svc.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected seeded greeting, got %d messages", len(msgs))
	}
	if msgs[0].Role != RoleAssistant || msgs[0].IsError {
		t.Errorf("greeting should be a clean assistant message, got %+v", msgs[0])
	}
}

func TestSendAppendsUserAndAssistantMessages(t *testing.T) {
	api := &fakeAPI{respond: successEnvelope("You should rest and hydrate.")}
	svc := newTestService(t, api)
	before := len(svc.Messages())

	if err := svc.Send(context.Background(), "  I have a headache  "); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	msgs := svc.Messages()
	if len(msgs) != before+2 {
		t.Fatalf("expected exactly 2 appended messages, got %d", len(msgs)-before)
	}

	user := msgs[len(msgs)-2]
	if user.Role != RoleUser || user.Content != "I have a headache" {
		t.Errorf("expected trimmed user message, got %+v", user)
	}

	reply := msgs[len(msgs)-1]
	if reply.Role != RoleAssistant || reply.IsError {
		t.Errorf("expected clean assistant reply, got %+v", reply)
	}
	if reply.Content != "You should rest and hydrate." {
		t.Errorf("unexpected reply content %q", reply.Content)
	}

	if api.lastPath != "/ai/chat" {
		t.Errorf("expected POST /ai/chat, got %q", api.lastPath)
	}
	if api.lastBody["message"] != "I have a headache" {
		t.Errorf("expected trimmed message in body, got %v", api.lastBody["message"])
	}
}

func TestSendEmptyTextIsNoOp(t *testing.T) {
	api := &fakeAPI{respond: successEnvelope("unused")}
	svc := newTestService(t, api)
	before := len(svc.Messages())

	for _, text := range []string{"", "   ", "\n\t"} {
		if err := svc.Send(context.Background(), text); err != nil {
			t.Fatalf("Send(%q) failed: %v", text, err)
		}
	}

	if api.calls != 0 {
		t.Errorf("empty text must not issue a call, got %d calls", api.calls)
	}
	if len(svc.Messages()) != before {
		t.Error("empty text must not touch the transcript")
	}
}

func TestSendFailureAppendsErrorFlaggedReply(t *testing.T) {
	api := &fakeAPI{respond: func() (*gateway.Envelope, error) {
		return nil, errors.New("dial tcp: connection refused")
	}}
	svc := newTestService(t, api)
	before := len(svc.Messages())

	if err := svc.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("failures must stay in the transcript, got error %v", err)
	}

	msgs := svc.Messages()
	if len(msgs) != before+2 {
		t.Fatalf("expected user message plus error reply, got %d new", len(msgs)-before)
	}

	reply := msgs[len(msgs)-1]
	if reply.Role != RoleAssistant || !reply.IsError {
		t.Errorf("expected error-flagged assistant message, got %+v", reply)
	}
}

func TestSendAPIFailureUsesServerMessage(t *testing.T) {
	api := &fakeAPI{respond: func() (*gateway.Envelope, error) {
		return &gateway.Envelope{Success: false}, &gateway.APIError{Message: "The assistant is over capacity"}
	}}
	svc := newTestService(t, api)

	svc.Send(context.Background(), "hi")

	msgs := svc.Messages()
	reply := msgs[len(msgs)-1]
	if !reply.IsError || reply.Content != "The assistant is over capacity" {
		t.Errorf("expected server message in error reply, got %+v", reply)
	}
}

func TestSendWhileBusyIsRejected(t *testing.T) {
	svc := newTestService(t, &fakeAPI{})
	var inner error
	svc.api = &fakeAPI{respond: func() (*gateway.Envelope, error) {
		inner = svc.Send(context.Background(), "second")
		return successEnvelope("first reply")()
	}}
	before := len(svc.Messages())

	if err := svc.Send(context.Background(), "first"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if !errors.Is(inner, flight.ErrBusy) {
		t.Errorf("expected busy rejection for overlapping send, got %v", inner)
	}
	if len(svc.Messages()) != before+2 {
		t.Errorf("busy send must append nothing, transcript grew by %d", len(svc.Messages())-before)
	}
}

func TestHistoryIsTrimmedAndSent(t *testing.T) {
	api := &fakeAPI{respond: successEnvelope("ok")}
	svc := newTestService(t, api)

	for i := 0; i < 8; i++ {
		svc.Send(context.Background(), "turn")
	}

	history, ok := api.lastBody["history"].([]interface{})
	if !ok {
		t.Fatalf("expected history array in body, got %T", api.lastBody["history"])
	}
	if len(history) > historyWindow {
		t.Errorf("history must be trimmed to %d turns, got %d", historyWindow, len(history))
	}
}

func TestTranscriptSurvivesRestart(t *testing.T) {
	store := cache.NewMemory()
	ctx := context.Background()

	first := NewService(ctx, &fakeAPI{respond: successEnvelope("reply")}, store, "user-1")
	first.Send(ctx, "remember me")
	want := len(first.Messages())

	second := NewService(ctx, &fakeAPI{}, store, "user-1")
	if got := len(second.Messages()); got != want {
		t.Errorf("expected %d restored messages, got %d", want, got)
	}

	other := NewService(ctx, &fakeAPI{}, store, "user-2")
	if got := len(other.Messages()); got != 1 {
		t.Errorf("another user must start fresh, got %d messages", got)
	}
}

func TestClearResetsTranscript(t *testing.T) {
	store := cache.NewMemory()
	ctx := context.Background()

	svc := NewService(ctx, &fakeAPI{respond: successEnvelope("reply")}, store, "user-1")
	svc.Send(ctx, "hello")

	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got := len(svc.Messages()); got != 1 {
		t.Errorf("expected transcript reset to greeting, got %d messages", got)
	}

	restored := NewService(ctx, &fakeAPI{}, store, "user-1")
	if got := len(restored.Messages()); got != 1 {
		t.Errorf("cleared transcript must not come back, got %d messages", got)
	}
}

func TestMessageIDsAreMonotonic(t *testing.T) {
	svc := newTestService(t, &fakeAPI{})
	svc.api = &fakeAPI{respond: successEnvelope("r")}

	svc.Send(context.Background(), "a")
	svc.Send(context.Background(), "b")

	msgs := svc.Messages()
	for i := 1; i < len(msgs); i++ {
		if msgs[i].ID <= msgs[i-1].ID {
			t.Fatalf("ids not monotonic: %d then %d", msgs[i-1].ID, msgs[i].ID)
		}
	}
}
