package queue

import (
	"context"
	"errors"
)

// ErrQueueFull is returned by Enqueue when the buffer is at capacity.
var ErrQueueFull = errors.New("queue is full")

// Queue represents a basic queue.
type Queue interface {
	Enqueue(item interface{}) error
	Dequeue(ctx context.Context) (interface{}, error)
	Size() int
	ReadAllMessages() ([]interface{}, error)
	ClearQueue()
}
