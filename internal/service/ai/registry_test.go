package ai

import (
	"testing"
	"time"
)

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	if len(reg.Models) == 0 {
		t.Fatal("registry lists no models")
	}
	for _, m := range reg.Models {
		if m.ID == "" {
			t.Error("model entry without an id")
		}
		if m.MaxAttempts < 1 {
			t.Errorf("model %s: MaxAttempts = %d, want >= 1", m.ID, m.MaxAttempts)
		}
	}
	if reg.InitialBackoff < time.Millisecond {
		t.Errorf("InitialBackoff = %v, want at least 1ms", reg.InitialBackoff)
	}
}
