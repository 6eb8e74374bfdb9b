package scheduler

import (
	"testing"
	"time"
)

func waitFired(t *testing.T, ch <-chan int64, want int64) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("fired id = %d, want %d", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timer for id %d never fired", want)
	}
}

func TestPastDueFiresImmediately(t *testing.T) {
	t.Parallel()
	fired := make(chan int64, 1)
	s := NewTimerScheduler(func(id int64) { fired <- id })
	defer s.Stop()

	s.Schedule(1, time.Now().Add(-time.Hour))
	waitFired(t, fired, 1)
}

func TestRescheduleReplacesTimer(t *testing.T) {
	t.Parallel()
	fired := make(chan int64, 2)
	s := NewTimerScheduler(func(id int64) { fired <- id })
	defer s.Stop()

	s.Schedule(1, time.Now().Add(time.Hour))
	s.Schedule(1, time.Now().Add(10*time.Millisecond))
	waitFired(t, fired, 1)

	select {
	case <-fired:
		t.Fatal("timer fired twice after reschedule")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCancelStopsTimer(t *testing.T) {
	t.Parallel()
	fired := make(chan int64, 1)
	s := NewTimerScheduler(func(id int64) { fired <- id })
	defer s.Stop()

	s.Schedule(1, time.Now().Add(20*time.Millisecond))
	s.Cancel(1)

	select {
	case <-fired:
		t.Fatal("cancelled timer fired")
	case <-time.After(100 * time.Millisecond):
	}
}
