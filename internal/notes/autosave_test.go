// Copyright (c) 2026 Datacore. All rights reserved.

package notes_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/datacore/datacore/internal/notes"
	"github.com/datacore/datacore/internal/platform/clock"
)

func newScheduler() (*notes.Scheduler, *clock.Fake) {
	fake := clock.NewFake(time.Unix(0, 0))
	return notes.NewScheduler(fake, notes.AutosaveDelay), fake
}

/*
TestScheduler_Debounces restarts the delay on every Schedule and runs only
the last task.
*/
func TestScheduler_Debounces(t *testing.T) {
	scheduler, fake := newScheduler()
	var ran []string

	scheduler.Schedule(func() { ran = append(ran, "first") })
	fake.Advance(1000 * time.Millisecond)
	scheduler.Schedule(func() { ran = append(ran, "second") })
	fake.Advance(1000 * time.Millisecond)

	assert.Empty(t, ran)
	assert.True(t, scheduler.Pending())

	fake.Advance(500 * time.Millisecond)
	assert.Equal(t, []string{"second"}, ran)
	assert.False(t, scheduler.Pending())
}

func TestScheduler_Cancel(t *testing.T) {
	scheduler, fake := newScheduler()
	ran := false

	assert.False(t, scheduler.Cancel())

	scheduler.Schedule(func() { ran = true })
	assert.True(t, scheduler.Cancel())
	fake.Advance(time.Hour)

	assert.False(t, ran)
	assert.Zero(t, fake.Pending())
}

/*
TestScheduler_RescheduleFromTask lets a running task arm the next one.
*/
func TestScheduler_RescheduleFromTask(t *testing.T) {
	scheduler, fake := newScheduler()
	runs := 0

	var task func()
	task = func() {
		runs++
		if runs < 3 {
			scheduler.Schedule(task)
		}
	}
	scheduler.Schedule(task)
	fake.Advance(10 * notes.AutosaveDelay)

	assert.Equal(t, 3, runs)
}
