package workers

import (
	"context"
	"errors"

	"github.com/cbodonnell/chatsnake/pkg/log"
	"github.com/cbodonnell/chatsnake/pkg/queue"
	"github.com/cbodonnell/chatsnake/pkg/transport"
)

type ChatEventWorker struct {
	eventQueue queue.Queue
	consumer   transport.EventConsumer
}

type NewChatEventWorkerOptions struct {
	EventQueue queue.Queue
	Consumer   transport.EventConsumer
}

// NewChatEventWorker creates a new ChatEventWorker.
// The worker drains chat events that transports write to a queue and
// hands them to the consumer one at a time, in the order they arrived.
func NewChatEventWorker(opts NewChatEventWorkerOptions) *ChatEventWorker {
	return &ChatEventWorker{
		eventQueue: opts.EventQueue,
		consumer:   opts.Consumer,
	}
}

// Start blocks until ctx is done.
func (w *ChatEventWorker) Start(ctx context.Context) {
	for {
		item, err := w.eventQueue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			log.Error("Failed to dequeue chat event: %v", err)
			continue
		}
		w.dispatch(ctx, item)
	}
}

func (w *ChatEventWorker) dispatch(ctx context.Context, item interface{}) {
	switch event := item.(type) {
	case transport.NewMessage:
		w.consumer.OnMessage(ctx, event)
	case transport.ReactionAdded:
		w.consumer.OnReactionAdded(ctx, event)
	default:
		log.Error("Unhandled chat event type: %T", event)
	}
}
