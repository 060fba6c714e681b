package flash

import (
	"slices"
	"sync"
	"time"
)

// Dismisser hides every notice on a board once, a fixed delay after it is scheduled.
type Dismisser struct {
	board *Board
	delay time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	scheduled bool
	done      chan struct{}
	hidden    []Message
}

// NewDismisser creates a dismisser for board. A non-positive delay uses DefaultDelay.
func NewDismisser(board *Board, delay time.Duration) *Dismisser {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Dismisser{
		board: board,
		delay: delay,
		done:  make(chan struct{}),
	}
}

// Delay returns the configured dismissal delay.
func (d *Dismisser) Delay() time.Duration {
	return d.delay
}

// Schedule arms the timer. Only the first call has any effect.
func (d *Dismisser) Schedule() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.scheduled {
		return
	}
	d.scheduled = true
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Stop cancels a pending dismissal. It reports whether the timer was stopped
// before firing.
func (d *Dismisser) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	return d.timer.Stop()
}

// Done is closed after the notices have been hidden.
func (d *Dismisser) Done() <-chan struct{} {
	return d.done
}

// Hidden returns the notices hidden when the timer fired.
func (d *Dismisser) Hidden() []Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.hidden)
}

func (d *Dismisser) fire() {
	hidden := d.board.HideAll()

	d.mu.Lock()
	d.hidden = hidden
	d.mu.Unlock()

	close(d.done)
}
