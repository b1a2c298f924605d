package tomasulo

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig() should validate cleanly, got %v", err)
	}
}

func TestValidateRejectsMissingFamily(t *testing.T) {
	cfg := DefaultConfig()
	delete(cfg.RSCounts, FamilyMUL)
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for a missing RS family")
	}
}

func TestValidateRejectsNonPositiveLatency(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Latency[OpMUL] = Latency{Exec: 0, Commit: 1}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for a zero execute latency")
	}
}

func TestValidateRejectsNonPositiveSizes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ROBSize = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for a zero ROB size")
	}
}

func TestTotalRS(t *testing.T) {
	cfg := DefaultConfig()
	want := 2 + 1 + 2 + 4 + 2 + 1 + 1 + 1
	if got := cfg.totalRS(); got != want {
		t.Errorf("totalRS() = %d, want %d", got, want)
	}
}
