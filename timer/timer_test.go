package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduleFiresOnce(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	var fired int32
	m.Schedule(50*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&fired) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if atomic.LoadInt32(&fired) != 1 {
		t.Fatalf("fired %d times, want 1", atomic.LoadInt32(&fired))
	}

	time.Sleep(300 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 1 {
		t.Fatalf("one-shot fired %d times", atomic.LoadInt32(&fired))
	}
}

func TestScheduleOrdering(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	var first, second int32
	m.Schedule(400*time.Millisecond, func() {
		atomic.StoreInt32(&second, atomic.LoadInt32(&first)+1)
	})
	m.Schedule(50*time.Millisecond, func() {
		atomic.StoreInt32(&first, 1)
	})

	deadline := time.Now().Add(3 * time.Second)
	for atomic.LoadInt32(&second) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	// The later deadline must observe the earlier one already fired.
	if atomic.LoadInt32(&second) != 2 {
		t.Fatalf("second = %d, want 2 (earlier deadline fires first)", atomic.LoadInt32(&second))
	}
}

func TestCancelDropsPending(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	var fired int32
	id := m.Schedule(300*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})
	m.Cancel(id)
	m.Cancel(999) // unknown id is a no-op

	time.Sleep(800 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 0 {
		t.Fatal("cancelled deadline still fired")
	}
}

func TestStopDiscardsPending(t *testing.T) {
	m := NewManager()

	var fired int32
	m.Schedule(200*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})
	m.Stop()
	m.Stop() // idempotent

	time.Sleep(600 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 0 {
		t.Fatal("deadline fired after Stop")
	}
}
