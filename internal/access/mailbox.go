package access

import (
	"sync"

	"github.com/galaxy4x/engine/internal/change"
)

// mailbox is an unbounded FIFO with a single consumer. push never blocks.
type mailbox struct {
	mu      sync.Mutex
	queue   []change.Change
	closed  bool // no new changes; the consumer drains what is left
	aborted bool // queue discarded; the consumer exits at its next pop
	ready   chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{ready: make(chan struct{}, 1)}
}

func (m *mailbox) push(c change.Change) error {
	m.mu.Lock()
	if m.closed || m.aborted {
		m.mu.Unlock()
		return ErrStopped
	}
	m.queue = append(m.queue, c)
	m.mu.Unlock()
	m.signal()
	return nil
}

// pop blocks until a change is available. It reports false once the mailbox
// is aborted, or closed and empty.
func (m *mailbox) pop() (change.Change, bool) {
	for {
		m.mu.Lock()
		switch {
		case m.aborted:
			m.mu.Unlock()
			return nil, false
		case len(m.queue) > 0:
			c := m.queue[0]
			m.queue[0] = nil
			m.queue = m.queue[1:]
			m.mu.Unlock()
			return c, true
		case m.closed:
			m.mu.Unlock()
			return nil, false
		}
		m.mu.Unlock()
		<-m.ready
	}
}

func (m *mailbox) close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.signal()
}

func (m *mailbox) abort() {
	m.mu.Lock()
	m.aborted = true
	m.queue = nil
	m.mu.Unlock()
	m.signal()
}

// ended reports whether the mailbox takes no more changes.
func (m *mailbox) ended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed || m.aborted
}

func (m *mailbox) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

func (m *mailbox) signal() {
	select {
	case m.ready <- struct{}{}:
	default:
	}
}
