package terminal

import "sync/atomic"

const (
	eventQueueSize = 256 // power of two
	eventQueueMask = eventQueueSize - 1
)

// eventQueue is a lock-free MPSC ring buffer for synthetic events.
// Timers and application code post from arbitrary goroutines; the event
// loop is the single consumer.
//
// Thread-safety:
//   - push: lock-free CAS, multiple producers OK
//   - pop: single consumer only
//   - published flags prevent reading partial writes
//
// Overflow: oldest events are overwritten when full, bounding memory
// under producer pressure instead of queueing stale backlog.
type eventQueue struct {
	events    [eventQueueSize]Event
	published [eventQueueSize]atomic.Bool
	head      atomic.Uint64 // read index
	tail      atomic.Uint64 // write index

	notify chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{notify: make(chan struct{}, 1)}
}

// push adds an event and wakes the consumer. Safe for concurrent
// producers.
func (q *eventQueue) push(ev Event) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & eventQueueMask

			q.events[idx] = ev
			q.published[idx].Store(true) // must follow the write

			// Advance head if overwriting unread events
			currentHead := q.head.Load()
			if nextTail-currentHead > eventQueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-eventQueueSize)
			}

			select {
			case q.notify <- struct{}{}:
			default:
			}
			return
		}
	}
}

// pop returns the next pending event in FIFO order, if any
func (q *eventQueue) pop() (Event, bool) {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return Event{}, false
		}

		if currentTail-currentHead > eventQueueSize {
			currentHead = currentTail - eventQueueSize
		}

		idx := currentHead & eventQueueMask
		if !q.published[idx].Load() {
			return Event{}, false // writer incomplete
		}

		ev := q.events[idx]
		if q.head.CompareAndSwap(currentHead, currentHead+1) {
			q.published[idx].Store(false)
			return ev, true
		}
	}
}

// wake returns the notification channel; it receives after a push
func (q *eventQueue) wake() <-chan struct{} {
	return q.notify
}
