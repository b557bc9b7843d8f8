package event

import (
	"sync/atomic"

	"github.com/lixenwraith/skybastion/parameter"
)

// EventQueue is a bounded MPSC ring of combat events
// Producers (systems, host input goroutine) push concurrently via CAS on tail
// The scheduler is the sole consumer and drains once per tick
// A slot becomes readable only after its ready flag is set
// When full, the oldest unread events are dropped and counted
type EventQueue struct {
	slots   [parameter.EventQueueSize]GameEvent
	ready   [parameter.EventQueueSize]atomic.Bool
	head    atomic.Uint64
	tail    atomic.Uint64
	dropped atomic.Uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push enqueues an event, safe for concurrent producers
func (q *EventQueue) Push(ev GameEvent) {
	for {
		tail := q.tail.Load()
		if !q.tail.CompareAndSwap(tail, tail+1) {
			continue
		}
		idx := tail & parameter.EventBufferMask
		q.slots[idx] = ev
		q.ready[idx].Store(true)

		// Overwrote an unread slot: move head past it
		head := q.head.Load()
		if tail+1-head > parameter.EventQueueSize {
			if q.head.CompareAndSwap(head, tail+1-parameter.EventQueueSize) {
				q.dropped.Add(1)
			}
		}
		return
	}
}

// Emit is shorthand for pushing a typed payload
func (q *EventQueue) Emit(t EventType, payload any) {
	q.Push(GameEvent{Type: t, Payload: payload})
}

// Consume drains pending events in FIFO order
// Stops at the first slot whose writer has not finished; the rest are read next call
func (q *EventQueue) Consume() []GameEvent {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		if tail == head {
			return nil
		}

		n := tail - head
		if n > parameter.EventQueueSize {
			n = parameter.EventQueueSize
			head = tail - parameter.EventQueueSize
		}

		out := make([]GameEvent, 0, n)
		for i := uint64(0); i < n; i++ {
			idx := (head + i) & parameter.EventBufferMask
			if !q.ready[idx].Load() {
				break
			}
			out = append(out, q.slots[idx])
			q.ready[idx].Store(false)
		}

		if q.head.CompareAndSwap(head, head+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len returns the approximate number of pending events
func (q *EventQueue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	if d := tail - head; d < parameter.EventQueueSize {
		return int(d)
	}
	return parameter.EventQueueSize
}

// Dropped returns the count of events lost to overflow
func (q *EventQueue) Dropped() uint64 {
	return q.dropped.Load()
}

// Reset discards all pending events
func (q *EventQueue) Reset() {
	for i := range q.ready {
		q.ready[i].Store(false)
	}
	t := q.tail.Load()
	q.head.Store(t)
}
