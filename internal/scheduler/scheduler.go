// Package scheduler arms one-shot in-process reminder timers. Callers
// persist the notification record first, then schedule.
package scheduler

import (
	"sync"
	"time"
)

// Scheduler schedules a one-shot wake-up per notification id.
type Scheduler interface {
	Schedule(id int64, at time.Time)
	Cancel(id int64)
	Stop()
}

// TimerScheduler fires a callback via time.AfterFunc. Times already in
// the past fire immediately.
type TimerScheduler struct {
	mu     sync.Mutex
	timers map[int64]*time.Timer
	fire   func(id int64)
}

// NewTimerScheduler returns a scheduler invoking fire on its own
// goroutine when a reminder comes due.
func NewTimerScheduler(fire func(id int64)) *TimerScheduler {
	return &TimerScheduler{timers: make(map[int64]*time.Timer), fire: fire}
}

func (s *TimerScheduler) Schedule(id int64, at time.Time) {
	d := time.Until(at)
	if d < 0 {
		d = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
	}
	s.timers[id] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		s.fire(id)
	})
}

func (s *TimerScheduler) Cancel(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// Stop cancels all pending timers.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
