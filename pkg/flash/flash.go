// Package flash models transient notices shown to a user and the one-shot
// timer that hides them after page load.
package flash

import (
	"sync"
	"time"
)

// Marker is the class carried by every rendered flash notice.
const Marker = "flash-message"

// DefaultDelay is how long notices stay visible after load.
const DefaultDelay = 3000 * time.Millisecond

// Message is a single flash notice.
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

type notice struct {
	msg    Message
	hidden bool
}

// Board holds the notices currently displayed on a page.
// A notice only ever moves from visible to hidden.
type Board struct {
	mu      sync.Mutex
	notices []*notice
}

// NewBoard creates a board showing the given messages.
func NewBoard(msgs ...Message) *Board {
	b := &Board{}
	for _, m := range msgs {
		b.Post(m)
	}
	return b
}

// Post adds a visible notice.
func (b *Board) Post(m Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notices = append(b.notices, &notice{msg: m})
}

// Visible returns the notices that have not been hidden, in posting order.
func (b *Board) Visible() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Message, 0, len(b.notices))
	for _, n := range b.notices {
		if !n.hidden {
			out = append(out, n.msg)
		}
	}
	return out
}

// Len returns the total number of notices, hidden or not.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.notices)
}

// HideAll hides every visible notice and returns the ones it hid.
// Already hidden notices are left alone.
func (b *Board) HideAll() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	var hidden []Message
	for _, n := range b.notices {
		if n.hidden {
			continue
		}
		n.hidden = true
		hidden = append(hidden, n.msg)
	}
	return hidden
}
