// Copyright (c) 2026 Datacore. All rights reserved.

package notes

import (
	"sync"
	"time"

	"github.com/datacore/datacore/internal/platform/clock"
)

// Scheduler runs one debounced task at a time. Scheduling again replaces the
// pending task and restarts the delay.
type Scheduler struct {
	clock clock.Clock
	delay time.Duration

	mu         sync.Mutex
	timer      clock.Timer
	generation uint64
}

func NewScheduler(c clock.Clock, delay time.Duration) *Scheduler {
	return &Scheduler{clock: c, delay: delay}
}

// Schedule arms task after the delay, cancelling whatever was pending.
func (scheduler *Scheduler) Schedule(task func()) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if scheduler.timer != nil {
		scheduler.timer.Stop()
	}
	scheduler.generation++
	generation := scheduler.generation

	scheduler.timer = scheduler.clock.AfterFunc(scheduler.delay, func() {
		scheduler.mu.Lock()
		if generation != scheduler.generation {
			// A Stop that lost the race with the timer goroutine.
			scheduler.mu.Unlock()
			return
		}
		scheduler.timer = nil
		scheduler.mu.Unlock()

		task()
	})
}

// Cancel drops the pending task. It reports whether one was pending.
func (scheduler *Scheduler) Cancel() bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	scheduler.generation++
	if scheduler.timer == nil {
		return false
	}
	scheduler.timer.Stop()
	scheduler.timer = nil
	return true
}

// Pending reports whether a task is armed.
func (scheduler *Scheduler) Pending() bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.timer != nil
}
