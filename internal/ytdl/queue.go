// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ytdl

import "sync"

// eventQueue is an unbounded FIFO in front of a channel.
// push never blocks, so a slow or absent consumer cannot stall the pipe readers.
type eventQueue struct {
	mu      sync.Mutex
	pending []Event
	closed  bool

	wake chan struct{}
	stop chan struct{}
	out  chan Event

	stopOnce sync.Once
}

func newEventQueue() *eventQueue {
	q := &eventQueue{
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		out:  make(chan Event),
	}

	go q.run()

	return q
}

// push appends e. Events pushed after close are dropped.
func (q *eventQueue) push(e Event) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}

	q.pending = append(q.pending, e)
	q.mu.Unlock()

	q.signal()
}

// close ends the stream once the pending events have been delivered.
func (q *eventQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.signal()
}

// discard stops delivery immediately and closes the output channel.
func (q *eventQueue) discard() {
	q.stopOnce.Do(func() {
		close(q.stop)
	})
}

func (q *eventQueue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *eventQueue) run() {
	defer close(q.out)

	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		closed := q.closed
		q.mu.Unlock()

		if len(batch) == 0 {
			if closed {
				return
			}

			select {
			case <-q.wake:
				continue
			case <-q.stop:
				return
			}
		}

		for _, e := range batch {
			select {
			case q.out <- e:
			case <-q.stop:
				return
			}
		}
	}
}
