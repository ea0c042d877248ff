package types

import "testing"

func TestScalarProgressAdd(t *testing.T) {
	p := ScalarProgress(3)
	p = p.Add("", 2)
	if p.Kind != ProgressScalar {
		t.Fatalf("kind = %s, want scalar", p.Kind)
	}
	if p.Value != 5 || p.Total() != 5 {
		t.Errorf("value = %d, total = %d, want 5", p.Value, p.Total())
	}
}

func TestCompoundProgressAddBuckets(t *testing.T) {
	p := CompoundProgress(map[string]int64{"2026-03-13": 2})
	p = p.Add("2026-03-14", 1)
	p = p.Add("2026-03-14", 1)
	if p.Counters["2026-03-14"] != 2 {
		t.Errorf("today bucket = %d, want 2", p.Counters["2026-03-14"])
	}
	if p.Counters["2026-03-13"] != 2 {
		t.Errorf("yesterday bucket = %d, want untouched 2", p.Counters["2026-03-13"])
	}
	if p.Total() != 4 {
		t.Errorf("total = %d, want 4", p.Total())
	}
}

func TestCompoundAddEmptyKeyUsesDefaultBucket(t *testing.T) {
	p := CompoundProgress(nil).Add("", 3)
	if p.Counters["default"] != 3 {
		t.Errorf("default bucket = %d, want 3", p.Counters["default"])
	}
}

func TestAddDoesNotMutateReceiver(t *testing.T) {
	original := CompoundProgress(map[string]int64{"a": 1})
	_ = original.Add("a", 10)
	if original.Counters["a"] != 1 {
		t.Errorf("receiver mutated: a = %d, want 1", original.Counters["a"])
	}
}

func TestIsMet(t *testing.T) {
	tests := []struct {
		name     string
		progress Progress
		target   int64
		want     bool
	}{
		{"below", ScalarProgress(4), 5, false},
		{"exact", ScalarProgress(5), 5, true},
		{"above", ScalarProgress(9), 5, true},
		{"compound sum", CompoundProgress(map[string]int64{"a": 3, "b": 2}), 5, true},
		{"zero target", ScalarProgress(0), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.progress.IsMet(tt.target); got != tt.want {
				t.Errorf("IsMet(%d) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}
