package progress

import (
	"sync"
	"time"
)

// Reporter receives nested progress notifications.
type Reporter interface {
	// Push enters a sub-phase of the current unit of work.
	Push()
	// Report states that done of total units of the current phase are finished.
	Report(done, total int)
	// Pop leaves the current sub-phase.
	Pop()
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Push()           {}
func (Nop) Report(int, int) {}
func (Nop) Pop()            {}

// OrNop returns r, or Nop when r is nil.
func OrNop(r Reporter) Reporter {
	if r == nil {
		return Nop{}
	}

	return r
}

// part is one level of the phase stack.
type part struct {
	done, total int
}

// Tracker is a Reporter that keeps the nested phase stack and derives an
// overall completion fraction from it. Safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	parts    []part
	started  time.Time
	onChange func(*Tracker)
	now      func() time.Time
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithOnChange registers fn, called after every Report outside the lock.
func WithOnChange(fn func(*Tracker)) TrackerOption {
	return func(t *Tracker) {
		t.onChange = fn
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTracker returns a Tracker at depth 1 with nothing done; its clock starts now.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{parts: []part{{}}, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	t.started = t.now()

	return t
}

// Push enters a sub-phase.
func (t *Tracker) Push() {
	t.mu.Lock()
	t.parts = append(t.parts, part{})
	t.mu.Unlock()
}

// Pop leaves the current sub-phase. Popping the base level is ignored.
func (t *Tracker) Pop() {
	t.mu.Lock()
	if len(t.parts) > 1 {
		t.parts = t.parts[:len(t.parts)-1]
	}
	t.mu.Unlock()
}

// Report records progress of the innermost phase. done is clamped to [0,total].
func (t *Tracker) Report(done, total int) {
	if total < 0 {
		total = 0
	}
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}
	t.mu.Lock()
	t.parts[len(t.parts)-1] = part{done: done, total: total}
	fn := t.onChange
	t.mu.Unlock()

	if fn != nil {
		fn(t)
	}
}

// Depth returns the number of stacked phases, 1 at the base.
func (t *Tracker) Depth() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.parts)
}

// Part returns the last report of phase i, 0 <= i < Depth().
func (t *Tracker) Part(i int) (done, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i < 0 || i >= len(t.parts) {
		return 0, 0
	}

	return t.parts[i].done, t.parts[i].total
}

// Fraction returns overall completion in [0,1]. Each nested phase subdivides
// the unit of work its parent is currently on.
func (t *Tracker) Fraction() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.fractionLocked()
}

func (t *Tracker) fractionLocked() float64 {
	frac, scale := 0.0, 1.0
	for _, p := range t.parts {
		if p.total == 0 {
			break
		}
		frac += scale * float64(p.done) / float64(p.total)
		scale /= float64(p.total)
	}
	if frac > 1 {
		frac = 1
	}

	return frac
}

// Elapsed returns the time since the Tracker was created.
func (t *Tracker) Elapsed() time.Duration {
	return t.now().Sub(t.started)
}

// Remaining extrapolates the time left from Elapsed and Fraction; ok is false
// while nothing has been reported.
func (t *Tracker) Remaining() (d time.Duration, ok bool) {
	t.mu.Lock()
	frac := t.fractionLocked()
	t.mu.Unlock()
	if frac <= 0 {
		return 0, false
	}
	elapsed := t.Elapsed()

	return time.Duration(float64(elapsed) * (1 - frac) / frac), true
}
