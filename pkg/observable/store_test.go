package observable

import (
	"errors"
	"testing"
)

func TestComputedRecomputesOnSet(t *testing.T) {
	s := New(Config{
		Data: map[string]any{"count": 1},
		Computed: map[string]ComputedFunc{
			"doubled": func(s *Store) any { return s.MustGet("count").(int) * 2 },
		},
	})

	if got := s.MustGet("doubled"); got != 2 {
		t.Errorf("expected doubled=2, got %v", got)
	}

	if err := s.Set("count", 5); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := s.MustGet("doubled"); got != 10 {
		t.Errorf("expected doubled=10 after set, got %v", got)
	}
}

func TestSetIsSynchronous(t *testing.T) {
	s := New(Config{
		Data: map[string]any{"a": 1},
		Computed: map[string]ComputedFunc{
			"b": func(s *Store) any { return s.MustGet("a").(int) + 1 },
		},
	})

	// The dependent cache must already hold the new value when Set returns.
	if err := s.Set("a", 10); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := s.computed["b"]; got != 11 {
		t.Errorf("expected cache b=11 immediately after Set, got %v", got)
	}
}

func TestUndefinedKey(t *testing.T) {
	s := New(Config{Data: map[string]any{"a": 1}})

	_, err := s.Get("missing")
	if err == nil {
		t.Fatal("expected error for undefined key, got nil")
	}
	var uk *UndefinedKeyError
	if !errors.As(err, &uk) {
		t.Fatalf("expected *UndefinedKeyError, got %T", err)
	}
	if uk.Key != "missing" {
		t.Errorf("expected key %q, got %q", "missing", uk.Key)
	}
}

func TestComputedIsImmutable(t *testing.T) {
	s := New(Config{
		Data: map[string]any{"a": 1},
		Computed: map[string]ComputedFunc{
			"b": func(s *Store) any { return s.MustGet("a") },
		},
	})

	err := s.Set("b", 99)
	if err == nil {
		t.Fatal("expected error writing computed property, got nil")
	}
	var im *ComputedPropertyImmutableError
	if !errors.As(err, &im) {
		t.Fatalf("expected *ComputedPropertyImmutableError, got %T", err)
	}
	if got := s.MustGet("b"); got != 1 {
		t.Errorf("expected b unchanged at 1, got %v", got)
	}
}

func TestWatchHookRunsBeforeRecompute(t *testing.T) {
	var order []string
	s := New(Config{
		Data: map[string]any{"a": 1},
		Watch: map[string]WatchFunc{
			"a": func(s *Store, newValue any) {
				order = append(order, "watch")
				if newValue != 2 {
					t.Errorf("expected watch to see 2, got %v", newValue)
				}
			},
		},
		Computed: map[string]ComputedFunc{
			"b": func(s *Store) any {
				order = append(order, "derive")
				return s.MustGet("a")
			},
		},
	})

	order = order[:0] // drop the initial derivation
	if err := s.Set("a", 2); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if len(order) != 2 || order[0] != "watch" || order[1] != "derive" {
		t.Errorf("expected [watch derive], got %v", order)
	}
}

func TestWatchSeesStoredValue(t *testing.T) {
	s := New(Config{Data: map[string]any{"a": 1}})
	s.Watch("a", func(s *Store, newValue any) {
		if got := s.MustGet("a"); got != newValue {
			t.Errorf("expected store to hold %v during watch, got %v", newValue, got)
		}
	})
	if err := s.Set("a", 7); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
}

func TestTransitiveComputed(t *testing.T) {
	s := New(Config{
		Data: map[string]any{"base": 1},
		Computed: map[string]ComputedFunc{
			// Sorted registration: "doubled" before "quadrupled", so the
			// latter can read the former.
			"doubled": func(s *Store) any { return s.MustGet("base").(int) * 2 },
			"quadrupled": func(s *Store) any {
				return s.MustGet("doubled").(int) * 2
			},
		},
	})

	if got := s.MustGet("quadrupled"); got != 4 {
		t.Errorf("expected quadrupled=4, got %v", got)
	}
	if err := s.Set("base", 3); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := s.MustGet("doubled"); got != 6 {
		t.Errorf("expected doubled=6, got %v", got)
	}
	if got := s.MustGet("quadrupled"); got != 12 {
		t.Errorf("expected quadrupled=12, got %v", got)
	}
}

func TestDependenciesCapturedOnFirstRunOnly(t *testing.T) {
	s := New(Config{
		Data: map[string]any{"flag": true, "a": 1, "b": 100},
		Computed: map[string]ComputedFunc{
			"pick": func(s *Store) any {
				if s.MustGet("flag").(bool) {
					return s.MustGet("a")
				}
				return s.MustGet("b")
			},
		},
	})

	// First evaluation read flag and a, never b.
	if err := s.Set("flag", false); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := s.MustGet("pick"); got != 100 {
		t.Errorf("expected pick=100 after flag flip, got %v", got)
	}

	// b was not read during capture, so writing it does not recompute.
	if err := s.Set("b", 999); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := s.MustGet("pick"); got != 100 {
		t.Errorf("expected pick to stay 100 (b is not a dependency), got %v", got)
	}

	// a was captured, so it still triggers even on the false branch.
	if err := s.Set("a", 2); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := s.MustGet("pick"); got != 999 {
		t.Errorf("expected pick=999 after a triggers recompute, got %v", got)
	}
}

func TestRecomputeOrderIsRegistrationOrder(t *testing.T) {
	var runs []string
	s := New(Config{
		Data: map[string]any{"x": 1},
		Computed: map[string]ComputedFunc{
			"alpha": func(s *Store) any {
				runs = append(runs, "alpha")
				return s.MustGet("x")
			},
			"beta": func(s *Store) any {
				runs = append(runs, "beta")
				return s.MustGet("x")
			},
		},
	})

	runs = runs[:0]
	if err := s.Set("x", 2); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if len(runs) != 2 || runs[0] != "alpha" || runs[1] != "beta" {
		t.Errorf("expected [alpha beta], got %v", runs)
	}
}

func TestStoresAreIsolated(t *testing.T) {
	var aRuns, bRuns int
	a := New(Config{
		Data: map[string]any{"n": 1},
		Computed: map[string]ComputedFunc{
			"d": func(s *Store) any { aRuns++; return s.MustGet("n") },
		},
	})
	b := New(Config{
		Data: map[string]any{"n": 1},
		Computed: map[string]ComputedFunc{
			"d": func(s *Store) any { bRuns++; return s.MustGet("n") },
		},
	})

	aRuns, bRuns = 0, 0
	if err := a.Set("n", 2); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if aRuns != 1 {
		t.Errorf("expected store a to recompute once, got %d", aRuns)
	}
	if bRuns != 0 {
		t.Errorf("expected store b untouched, got %d recomputes", bRuns)
	}
	if got := b.MustGet("d"); got != 1 {
		t.Errorf("expected b.d=1, got %v", got)
	}
}

func TestSetInstallsNewSource(t *testing.T) {
	s := New(Config{})
	if err := s.Set("fresh", 42); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := s.MustGet("fresh"); got != 42 {
		t.Errorf("expected fresh=42, got %v", got)
	}
}

func TestDefineComputedRejectsCollisionAndNil(t *testing.T) {
	s := New(Config{Data: map[string]any{"a": 1}})

	if s.DefineComputed("a", func(s *Store) any { return 0 }) {
		t.Error("expected collision with source property to be rejected")
	}
	if s.DefineComputed("b", nil) {
		t.Error("expected nil derivation to be rejected")
	}
	if !s.DefineComputed("b", func(s *Store) any { return s.MustGet("a") }) {
		t.Error("expected valid definition to succeed")
	}
	if s.DefineComputed("b", func(s *Store) any { return 0 }) {
		t.Error("expected collision with computed property to be rejected")
	}
}

func TestDependents(t *testing.T) {
	s := New(Config{
		Data: map[string]any{"x": 1, "y": 2},
		Computed: map[string]ComputedFunc{
			"sum":  func(s *Store) any { return s.MustGet("x").(int) + s.MustGet("y").(int) },
			"xten": func(s *Store) any { return s.MustGet("x").(int) * 10 },
		},
	})

	deps := s.Dependents("x")
	if len(deps) != 2 || deps[0] != "sum" || deps[1] != "xten" {
		t.Errorf("expected x dependents [sum xten], got %v", deps)
	}
	if deps := s.Dependents("y"); len(deps) != 1 || deps[0] != "sum" {
		t.Errorf("expected y dependents [sum], got %v", deps)
	}
	if deps := s.Dependents("unused"); len(deps) != 0 {
		t.Errorf("expected no dependents, got %v", deps)
	}
}
