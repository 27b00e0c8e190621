package access

import (
	"sync/atomic"

	"github.com/galaxy4x/engine/internal/change"
)

// Sender enqueues changes for one consumer session. Senders are counted: when
// the last one is closed the consumer applies what is queued and exits.
type Sender struct {
	run    *run
	closed atomic.Bool
}

// Send queues c. It never blocks and fails with ErrStopped once the consumer
// has been stopped or every sender closed.
func (s *Sender) Send(c change.Change) error {
	if s.closed.Load() {
		return ErrStopped
	}
	return s.run.box.push(c)
}

// Clone returns another sender for the same consumer.
func (s *Sender) Clone() *Sender {
	s.run.senders.Add(1)
	return &Sender{run: s.run}
}

// Close releases the sender. Closing twice is a no-op.
func (s *Sender) Close() {
	if s.closed.Swap(true) {
		return
	}
	if s.run.senders.Add(-1) <= 0 {
		s.run.box.close()
	}
}
