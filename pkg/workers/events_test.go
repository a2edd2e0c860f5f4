package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cbodonnell/chatsnake/pkg/queue"
	"github.com/cbodonnell/chatsnake/pkg/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConsumer struct {
	lock   sync.Mutex
	events []interface{}
	done   chan struct{}
	want   int
}

func (c *recordingConsumer) record(event interface{}) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.events = append(c.events, event)
	if len(c.events) == c.want {
		close(c.done)
	}
}

func (c *recordingConsumer) OnMessage(_ context.Context, msg transport.NewMessage) {
	c.record(msg)
}

func (c *recordingConsumer) OnReactionAdded(_ context.Context, event transport.ReactionAdded) {
	c.record(event)
}

func TestChatEventWorker_dispatchesInOrder(t *testing.T) {
	q := queue.NewInMemoryQueue(10)
	consumer := &recordingConsumer{done: make(chan struct{}), want: 3}
	worker := NewChatEventWorker(NewChatEventWorkerOptions{EventQueue: q, Consumer: consumer})

	events := []interface{}{
		transport.NewMessage{ChannelID: "games", Author: "alice", Text: "snake"},
		"not an event",
		transport.ReactionAdded{ActorID: "alice", ChannelID: "games", Symbol: "up"},
		transport.ReactionAdded{ActorID: "bob", ChannelID: "games", Symbol: "left"},
	}
	for _, e := range events {
		require.NoError(t, q.Enqueue(e))
	}

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(stopped)
	}()

	select {
	case <-consumer.done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for events")
	}
	cancel()
	<-stopped

	assert.Equal(t, []interface{}{events[0], events[2], events[3]}, consumer.events)
}
