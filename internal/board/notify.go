package board

import (
	"sync"
	"time"
)

// notifier coalesces change notifications behind a fixed quiescence
// delay, so a burst of rapid mutations (or keystroke-driven refreshes)
// produces one delivery carrying the latest state.
type notifier struct {
	delay time.Duration
	fn    func(Change)

	mu      sync.Mutex
	timer   *time.Timer
	pending Change
}

func newNotifier(delay time.Duration, fn func(Change)) *notifier {
	return &notifier{delay: delay, fn: fn}
}

// publish schedules delivery of c, replacing any undelivered change.
// With no delay configured, delivery is synchronous.
func (n *notifier) publish(c Change) {
	if n.fn == nil {
		return
	}
	if n.delay <= 0 {
		n.fn(c)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.pending = c
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.delay, n.fire)
}

func (n *notifier) fire() {
	n.mu.Lock()
	c := n.pending
	n.timer = nil
	n.mu.Unlock()

	n.fn(c)
}

// stop flushes a pending delivery instead of dropping it.
func (n *notifier) stop() {
	if n.fn == nil {
		return
	}

	n.mu.Lock()
	hadPending := n.timer != nil
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	c := n.pending
	n.mu.Unlock()

	if hadPending {
		n.fn(c)
	}
}
