package recording

import (
	"errors"
	"sync"
	"testing"

	"recmgr/internal/recorded"
)

func TestRegistry_Cancel(t *testing.T) {
	t.Run("stops and forgets tracked recording", func(t *testing.T) {
		r := NewRegistry(recorded.NewNopLogger())

		var gotForce bool
		calls := 0
		r.Track("rsv-1", func(force bool) error {
			calls++
			gotForce = force
			return nil
		})

		if !r.HasReserve("rsv-1") {
			t.Fatal("HasReserve() = false, want true")
		}
		if err := r.Cancel("rsv-1", true); err != nil {
			t.Fatalf("Cancel() error = %v", err)
		}
		if calls != 1 || !gotForce {
			t.Errorf("stop called %d times with force=%v, want once with force=true", calls, gotForce)
		}
		if r.HasReserve("rsv-1") {
			t.Error("HasReserve() = true after Cancel")
		}
	})

	t.Run("unknown reservation", func(t *testing.T) {
		r := NewRegistry(recorded.NewNopLogger())

		err := r.Cancel("missing", true)
		if !errors.Is(err, recorded.ErrReserveNotFound) {
			t.Errorf("Cancel() error = %v, want ErrReserveNotFound", err)
		}
	})

	t.Run("nil stop func", func(t *testing.T) {
		r := NewRegistry(recorded.NewNopLogger())
		r.Track("rsv-1", nil)

		if err := r.Cancel("rsv-1", false); err != nil {
			t.Errorf("Cancel() error = %v", err)
		}
	})

	t.Run("stop error is wrapped and reservation is forgotten", func(t *testing.T) {
		r := NewRegistry(recorded.NewNopLogger())
		stopErr := errors.New("tuner busy")
		r.Track("rsv-1", func(bool) error { return stopErr })

		err := r.Cancel("rsv-1", true)
		if !errors.Is(err, stopErr) {
			t.Errorf("Cancel() error = %v, want %v", err, stopErr)
		}
		if r.HasReserve("rsv-1") {
			t.Error("HasReserve() = true after failed Cancel")
		}
	})
}

func TestRegistry_Active(t *testing.T) {
	r := NewRegistry(recorded.NewNopLogger())
	r.Track("b", nil)
	r.Track("a", nil)

	got := r.Active()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Active() = %v, want [a b]", got)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry(recorded.NewNopLogger())
	r.Track("rsv", nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.Cancel("rsv", false); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 {
		t.Errorf("%d cancels succeeded, want exactly 1", succeeded)
	}
}
