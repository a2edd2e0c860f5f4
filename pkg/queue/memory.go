// queue package

package queue

import (
	"context"
	"fmt"
)

const (
	// DefaultQueueBufferSize represents the default maximum size of a queue
	DefaultQueueBufferSize = 1024
)

// InMemoryQueue implements an in-memory queue.
type InMemoryQueue struct {
	ch chan interface{}
}

// NewInMemoryQueue creates a new queue holding at most size items.
// A size of zero or less uses DefaultQueueBufferSize.
func NewInMemoryQueue(size int) *InMemoryQueue {
	if size <= 0 {
		size = DefaultQueueBufferSize
	}
	return &InMemoryQueue{
		ch: make(chan interface{}, size),
	}
}

// Enqueue adds an item to the end of the queue without blocking.
func (q *InMemoryQueue) Enqueue(item interface{}) error {
	select {
	case q.ch <- item:
		return nil
	default:
		return fmt.Errorf("%w: %d items pending", ErrQueueFull, len(q.ch))
	}
}

// Dequeue removes and returns the item from the front of the queue,
// blocking until an item is available or ctx is done.
func (q *InMemoryQueue) Dequeue(ctx context.Context) (interface{}, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case item := <-q.ch:
		return item, nil
	}
}

// Size returns the current size of the queue.
func (q *InMemoryQueue) Size() int {
	return len(q.ch)
}

// ReadAllMessages reads all pending messages in the queue
func (q *InMemoryQueue) ReadAllMessages() ([]interface{}, error) {
	var messages []interface{}
	for {
		select {
		case item := <-q.ch:
			messages = append(messages, item)
		default:
			return messages, nil
		}
	}
}

// ClearQueue clears all messages from the queue.
func (q *InMemoryQueue) ClearQueue() {
	for {
		select {
		case <-q.ch:
		default:
			return
		}
	}
}
