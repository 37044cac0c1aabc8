package flight

import (
	"errors"
	"testing"
)

func TestDoReturnsToIdleAfterSuccess(t *testing.T) {
	var g Guard

	err := g.Do(func() error { return nil })
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if g.Loading() {
		t.Error("guard should be idle after a successful call")
	}

	if err := g.Do(func() error { return nil }); err != nil {
		t.Errorf("second call should be accepted, got %v", err)
	}
}

func TestDoReturnsToIdleAfterFailure(t *testing.T) {
	var g Guard
	boom := errors.New("boom")

	if err := g.Do(func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if g.Loading() {
		t.Error("guard should be idle after a failed call")
	}
}

func TestDoRejectsWhileLoading(t *testing.T) {
	var g Guard

	err := g.Do(func() error {
		if !g.Loading() {
			t.Error("guard should report loading during the call")
		}
		inner := g.Do(func() error { return nil })
		if !errors.Is(inner, ErrBusy) {
			t.Errorf("expected ErrBusy for reentrant trigger, got %v", inner)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
}
