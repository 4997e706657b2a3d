package game

// Timer is a one-shot scheduled task. Cancel is the cancellation token:
// a cancelled timer is dropped at fire time without running.
type Timer struct {
	At        float64
	fn        func()
	cancelled bool
	fired     bool
}

// Cancel stops the timer if it has not fired yet. Safe on nil.
func (t *Timer) Cancel() {
	if t != nil {
		t.cancelled = true
	}
}

// Pending reports whether the timer will still run.
func (t *Timer) Pending() bool {
	return t != nil && !t.cancelled && !t.fired
}

// Scheduler is a frame-clock timer queue. It never sleeps: Advance is
// called from the frame callback and runs whatever is due.
type Scheduler struct {
	timers []*Timer
}

// After schedules fn to run once the clock passes now+delay.
func (s *Scheduler) After(now, delay float64, fn func()) *Timer {
	t := &Timer{At: now + delay, fn: fn}
	// Keep the queue ordered by due time, FIFO among equal times.
	i := len(s.timers)
	for i > 0 && s.timers[i-1].At > t.At {
		i--
	}
	s.timers = append(s.timers, nil)
	copy(s.timers[i+1:], s.timers[i:])
	s.timers[i] = t
	return t
}

// Advance runs every timer due at or before now and returns how many ran.
// Timers scheduled by a callback are not run in the same pass.
func (s *Scheduler) Advance(now float64) int {
	if len(s.timers) == 0 {
		return 0
	}
	due := 0
	for due < len(s.timers) && s.timers[due].At <= now {
		due++
	}
	if due == 0 {
		return 0
	}
	batch := make([]*Timer, due)
	copy(batch, s.timers[:due])
	s.timers = append(s.timers[:0], s.timers[due:]...)

	ran := 0
	for _, t := range batch {
		if t.cancelled {
			continue
		}
		t.fired = true
		t.fn()
		ran++
	}
	return ran
}

// Len returns the number of queued timers, cancelled ones included.
func (s *Scheduler) Len() int { return len(s.timers) }
