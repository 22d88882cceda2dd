// Copyright (c) 2026 Datacore. All rights reserved.

// Package clock abstracts wall time and scheduled callbacks so that
// debounce timers can be driven deterministically in tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already ran
	// or was already stopped.
	Stop() bool
}

// Clock schedules callbacks and reports the current time.
type Clock interface {
	Now() time.Time
	AfterFunc(delay time.Duration, callback func()) Timer
}

// # Real Clock

// Real is the production [Clock] backed by the time package.
type Real struct{}

// Now returns the current local time.
func (Real) Now() time.Time { return time.Now() }

// AfterFunc runs callback in its own goroutine after delay.
func (Real) AfterFunc(delay time.Duration, callback func()) Timer {
	return time.AfterFunc(delay, callback)
}

// # Fake Clock

// Fake is a manually advanced [Clock]. Callbacks run synchronously inside
// [Fake.Advance], in deadline order, on the caller's goroutine.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock    *Fake
	deadline time.Time
	seq      int
	callback func()
	done     bool
}

// NewFake returns a fake clock set to start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake current time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// AfterFunc registers callback to run once the clock has advanced by delay.
func (f *Fake) AfterFunc(delay time.Duration, callback func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	timer := &fakeTimer{clock: f, deadline: f.now.Add(delay), seq: f.seq, callback: callback}
	f.timers = append(f.timers, timer)
	return timer
}

// Advance moves the clock forward by delta, firing every timer that falls due.
// Timers scheduled by a firing callback run too if they fall due within delta.
func (f *Fake) Advance(delta time.Duration) {
	f.mu.Lock()
	target := f.now.Add(delta)
	f.mu.Unlock()

	for {
		f.mu.Lock()
		next := f.nextDueLocked(target)
		if next == nil {
			f.now = target
			f.mu.Unlock()
			return
		}
		next.done = true
		f.removeLocked(next)
		f.now = next.deadline
		f.mu.Unlock()

		next.callback()
	}
}

// Pending reports the number of timers that have neither fired nor been stopped.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.timers)
}

func (f *Fake) nextDueLocked(target time.Time) *fakeTimer {
	due := make([]*fakeTimer, 0, len(f.timers))
	for _, timer := range f.timers {
		if !timer.deadline.After(target) {
			due = append(due, timer)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	return due[0]
}

func (f *Fake) removeLocked(target *fakeTimer) {
	for i, timer := range f.timers {
		if timer == target {
			f.timers = append(f.timers[:i], f.timers[i+1:]...)
			return
		}
	}
}

// Stop cancels a pending fake timer.
func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.clock.removeLocked(t)
	return true
}
