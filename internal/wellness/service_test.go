package wellness

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/MRaysa/medai-client/internal/cache"
	"github.com/MRaysa/medai-client/internal/gateway"
)

type fakeAPI struct {
	respond func() (*gateway.Envelope, error)
}

func (f *fakeAPI) Call(ctx context.Context, method, path string, body interface{}) (*gateway.Envelope, error) {
	return f.respond()
}

func bundleAPI(t *testing.T) *fakeAPI {
	t.Helper()
	data := []byte(`{
		"dailyTip": "Drink a glass of water first thing in the morning.",
		"categories": {
			"nutrition": {"tips": ["Eat more greens"], "calorieTarget": 2000},
			"sleep": {"tips": ["Keep a fixed bedtime"], "idealHours": 8}
		},
		"weeklyGoals": ["Walk 10k steps daily"],
		"motivationalQuote": "Small steps, big change.",
		"healthFact": "Your heart beats about 100,000 times a day."
	}`)
	return &fakeAPI{respond: func() (*gateway.Envelope, error) {
		return &gateway.Envelope{Success: true, Data: data}, nil
	}}
}

func TestRefreshParsesBundle(t *testing.T) {
	svc := NewService(context.Background(), bundleAPI(t), cache.NewMemory())

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	b := svc.Bundle()
	if b == nil || b.DailyTip == "" {
		t.Fatal("expected a populated bundle")
	}
	if len(b.Categories["nutrition"].Tips) != 1 {
		t.Errorf("expected nutrition tips, got %+v", b.Categories["nutrition"])
	}

	// Category extras are carried opaquely.
	var extra map[string]interface{}
	json.Unmarshal(b.Categories["sleep"].Extra, &extra)
	if extra["idealHours"] != float64(8) {
		t.Errorf("expected category extras preserved, got %v", extra)
	}
}

func TestSaveTipIdempotent(t *testing.T) {
	svc := NewService(context.Background(), bundleAPI(t), cache.NewMemory())
	ctx := context.Background()

	first := svc.SaveTip(ctx, "nutrition", "Eat more greens")
	second := svc.SaveTip(ctx, "nutrition", "Eat more greens")

	if first.ID != second.ID {
		t.Error("saving the same tip twice must reuse the saved copy")
	}
	if len(svc.SavedTips()) != 1 {
		t.Errorf("expected a single saved tip, got %d", len(svc.SavedTips()))
	}
}

func TestSavedTipsSurviveRestart(t *testing.T) {
	store := cache.NewMemory()
	ctx := context.Background()

	first := NewService(ctx, bundleAPI(t), store)
	saved := first.SaveTip(ctx, "sleep", "Keep a fixed bedtime")

	second := NewService(ctx, bundleAPI(t), store)
	tips := second.SavedTips()
	if len(tips) != 1 || tips[0].ID != saved.ID {
		t.Errorf("expected restored tip, got %v", tips)
	}
}

func TestRemoveTip(t *testing.T) {
	store := cache.NewMemory()
	ctx := context.Background()

	svc := NewService(ctx, bundleAPI(t), store)
	saved := svc.SaveTip(ctx, "sleep", "Keep a fixed bedtime")
	svc.SaveTip(ctx, "nutrition", "Eat more greens")

	svc.RemoveTip(ctx, saved.ID)
	tips := svc.SavedTips()
	if len(tips) != 1 || tips[0].Category != "nutrition" {
		t.Errorf("expected only the nutrition tip, got %v", tips)
	}

	restored := NewService(ctx, bundleAPI(t), store)
	if len(restored.SavedTips()) != 1 {
		t.Error("removal must be persisted")
	}
}
