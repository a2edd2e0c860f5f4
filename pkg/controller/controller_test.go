package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	mocks "github.com/cbodonnell/chatsnake/mocks/github.com/cbodonnell/chatsnake/pkg/transport"
	"github.com/cbodonnell/chatsnake/pkg/game"
	"github.com/cbodonnell/chatsnake/pkg/render"
	"github.com/cbodonnell/chatsnake/pkg/session"
	"github.com/cbodonnell/chatsnake/pkg/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const botID = "bot"

func newTestController(t *testing.T, mockTransport *mocks.Transport, store session.Store, tolerate bool) *Controller {
	t.Helper()
	return NewController(NewControllerOptions{
		Transport:              mockTransport,
		Store:                  store,
		MaxCells:               1024,
		TolerateReactionErrors: tolerate,
		RandFactory:            func() *rand.Rand { return rand.New(rand.NewSource(42)) },
	})
}

// postSequentially answers Post calls with handles m0, m1, ... that echo the posted text.
func postSequentially(mockTransport *mocks.Transport) *[]transport.MessageHandle {
	posted := &[]transport.MessageHandle{}
	mockTransport.EXPECT().Post(mock.Anything, mock.Anything, mock.Anything).RunAndReturn(
		func(_ context.Context, channelID string, text string) (transport.MessageHandle, error) {
			h := transport.MessageHandle{ChannelID: channelID, MessageID: fmt.Sprintf("m%d", len(*posted)), Content: text}
			*posted = append(*posted, h)
			return h, nil
		})
	return posted
}

func TestController_StartSession(t *testing.T) {
	ctx := context.Background()
	mockTransport := mocks.NewTransport(t)
	store := session.NewInMemoryStore()
	c := newTestController(t, mockTransport, store, false)

	posted := postSequentially(mockTransport)
	var reactions []string
	var reacted []string
	mockTransport.EXPECT().React(mock.Anything, mock.Anything, mock.Anything).RunAndReturn(
		func(_ context.Context, h transport.MessageHandle, symbol string) error {
			reacted = append(reacted, h.MessageID)
			reactions = append(reactions, symbol)
			return nil
		}).Times(4)

	s, err := c.StartSession(ctx, "games", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, game.Board{Width: 20, Height: 10}, s.State.Board())
	blocks := render.NewRenderer(render.NewRendererOptions{}).Render(s.State)
	require.Len(t, *posted, len(blocks))
	assert.Equal(t, *posted, s.Messages)
	for i, block := range blocks {
		assert.Equal(t, block, s.Messages[i].Content)
	}

	last := s.Messages[len(s.Messages)-1].MessageID
	assert.Equal(t, []string{last, last, last, last}, reacted, "controls go on the last board message")
	assert.Equal(t, []string{game.Left.Emoji(), game.Down.Emoji(), game.Up.Emoji(), game.Right.Emoji()}, reactions)

	stored, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.ID, stored.ID)
}

func TestController_StartSession_postFailure(t *testing.T) {
	ctx := context.Background()
	mockTransport := mocks.NewTransport(t)
	store := session.NewInMemoryStore()
	c := newTestController(t, mockTransport, store, false)

	mockTransport.EXPECT().Post(mock.Anything, "games", mock.Anything).
		Return(transport.MessageHandle{}, transport.NewTransportError("post", errors.New("forbidden"))).Once()

	_, err := c.StartSession(ctx, "games", 5, 5)
	assert.True(t, transport.IsTransportError(err))

	_, err = store.Get(ctx)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestController_StartSession_reactionFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("fatal by default", func(t *testing.T) {
		mockTransport := mocks.NewTransport(t)
		store := session.NewInMemoryStore()
		c := newTestController(t, mockTransport, store, false)

		postSequentially(mockTransport)
		mockTransport.EXPECT().React(mock.Anything, mock.Anything, mock.Anything).Return(errors.New("rate limited")).Once()

		_, err := c.StartSession(ctx, "games", 5, 5)
		assert.Error(t, err)
		_, err = store.Get(ctx)
		assert.ErrorIs(t, err, session.ErrNoSession)
	})

	t.Run("tolerated", func(t *testing.T) {
		mockTransport := mocks.NewTransport(t)
		store := session.NewInMemoryStore()
		c := newTestController(t, mockTransport, store, true)

		postSequentially(mockTransport)
		mockTransport.EXPECT().React(mock.Anything, mock.Anything, mock.Anything).Return(errors.New("rate limited")).Times(4)

		_, err := c.StartSession(ctx, "games", 5, 5)
		require.NoError(t, err)
		_, err = store.Get(ctx)
		assert.NoError(t, err)
	})
}

func TestController_StartSession_replacesPrevious(t *testing.T) {
	ctx := context.Background()
	mockTransport := mocks.NewTransport(t)
	store := session.NewInMemoryStore()
	c := newTestController(t, mockTransport, store, false)

	postSequentially(mockTransport)
	mockTransport.EXPECT().React(mock.Anything, mock.Anything, mock.Anything).Return(nil)

	first, err := c.StartSession(ctx, "games", 4, 4)
	require.NoError(t, err)
	second, err := c.StartSession(ctx, "other", 6, 3)
	require.NoError(t, err)

	stored, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, stored.ID)
	assert.NotEqual(t, first.ID, stored.ID)
	assert.Equal(t, "other", stored.ChannelID())
}

// storeLayout puts a session with a fixed layout in a fresh store, with its
// board already posted.
func storeLayout(t *testing.T, snake []game.Cell, food []game.Cell) (*session.InMemoryStore, *session.Session) {
	t.Helper()
	state, err := game.NewGameStateWithLayout(game.Board{Width: 5, Height: 5}, snake, food, game.Up, game.BoundsWrap, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	blocks := render.NewRenderer(render.NewRendererOptions{}).Render(state)
	handles := make([]transport.MessageHandle, len(blocks))
	for i, block := range blocks {
		handles[i] = transport.MessageHandle{ChannelID: "games", MessageID: fmt.Sprintf("m%d", i), Content: block}
	}
	s := session.New(state, handles)

	store := session.NewInMemoryStore()
	require.NoError(t, store.Set(context.Background(), s))
	return store, s
}

func TestController_HandleInput(t *testing.T) {
	ctx := context.Background()
	mockTransport := mocks.NewTransport(t)
	store, _ := storeLayout(t, []game.Cell{12}, []game.Cell{0})
	c := newTestController(t, mockTransport, store, false)

	event := transport.ReactionAdded{ActorID: "alice", ChannelID: "games", MessageID: "m0", Symbol: game.Up.Emoji()}
	mockTransport.EXPECT().SelfID().Return(botID)
	mockTransport.EXPECT().RemoveReaction(mock.Anything, event).Return(errors.New("missing permissions")).Once()
	mockTransport.EXPECT().Edit(mock.Anything, mock.Anything, mock.Anything).RunAndReturn(
		func(_ context.Context, h transport.MessageHandle, text string) error {
			assert.Equal(t, "m0", h.MessageID)
			assert.Contains(t, strings.Split(text, "\n")[1], ":regional_indicator_c:", "head moved to the second row")
			return nil
		}).Once()

	require.NoError(t, c.HandleInput(ctx, event))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []game.Cell{7}, got.State.Snake())
	assert.Equal(t, game.Up, got.State.Heading())
}

func TestController_HandleInput_boardGrows(t *testing.T) {
	ctx := context.Background()
	renderer := render.NewRenderer(render.NewRendererOptions{})
	board := game.Board{Width: 33, Height: 6}

	// the board as posted at the start: one head glyph and food on the last row
	start, err := game.NewGameStateWithLayout(board, []game.Cell{10}, []game.Cell{197}, game.Right, game.BoundsWrap, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	posted := renderer.Render(start)
	require.Len(t, posted, 2)
	handles := make([]transport.MessageHandle, len(posted))
	for i, block := range posted {
		handles[i] = transport.MessageHandle{ChannelID: "games", MessageID: fmt.Sprintf("m%d", i), Content: block}
	}

	// twelve lettered segments make the first row too long to share a block with two more
	snake := make([]game.Cell, 12)
	for i := range snake {
		snake[i] = game.Cell(i)
	}
	state, err := game.NewGameStateWithLayout(board, snake, []game.Cell{197}, game.Right, game.BoundsWrap, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	store := session.NewInMemoryStore()
	require.NoError(t, store.Set(ctx, session.New(state, handles)))

	mockTransport := mocks.NewTransport(t)
	c := newTestController(t, mockTransport, store, false)
	event := transport.ReactionAdded{ActorID: "alice", ChannelID: "games", MessageID: "m1", Symbol: game.Right.Emoji()}
	mockTransport.EXPECT().SelfID().Return(botID)
	mockTransport.EXPECT().RemoveReaction(mock.Anything, event).Return(nil)
	mockTransport.EXPECT().Post(mock.Anything, "games", mock.Anything).RunAndReturn(
		func(_ context.Context, channelID string, text string) (transport.MessageHandle, error) {
			return transport.MessageHandle{ChannelID: channelID, MessageID: "m2", Content: text}, nil
		}).Once()
	mockTransport.EXPECT().Edit(mock.Anything, mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, c.HandleInput(ctx, event))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	want := renderer.Render(got.State)
	require.Len(t, want, 3)
	require.Len(t, got.Messages, 3)
	shown := make([]string, len(got.Messages))
	for i, h := range got.Messages {
		shown[i] = h.Content
	}
	assert.Equal(t, want, shown)
	assert.Len(t, render.SplitRows(shown), board.Height)
	assert.Equal(t, "m2", got.Messages[2].MessageID)
}

func TestController_HandleInput_ignored(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		event transport.ReactionAdded
	}{
		{
			name:  "own reaction",
			event: transport.ReactionAdded{ActorID: botID, ChannelID: "games", Symbol: game.Up.Emoji()},
		},
		{
			name:  "unknown symbol",
			event: transport.ReactionAdded{ActorID: "alice", ChannelID: "games", Symbol: "\U0001F34B"},
		},
		{
			name:  "other channel",
			event: transport.ReactionAdded{ActorID: "alice", ChannelID: "elsewhere", Symbol: game.Up.Emoji()},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTransport := mocks.NewTransport(t)
			store, _ := storeLayout(t, []game.Cell{12}, []game.Cell{0})
			c := newTestController(t, mockTransport, store, false)
			mockTransport.EXPECT().SelfID().Return(botID)

			require.NoError(t, c.HandleInput(ctx, tt.event))

			got, err := store.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, got.State.Moves())
		})
	}
}

func TestController_HandleInput_noSession(t *testing.T) {
	mockTransport := mocks.NewTransport(t)
	c := newTestController(t, mockTransport, session.NewInMemoryStore(), false)
	mockTransport.EXPECT().SelfID().Return(botID)

	err := c.HandleInput(context.Background(), transport.ReactionAdded{ActorID: "alice", ChannelID: "games", Symbol: game.Left.Emoji()})
	assert.NoError(t, err)
}

func TestController_HandleInput_gameOver(t *testing.T) {
	ctx := context.Background()
	mockTransport := mocks.NewTransport(t)
	// head at 12 with the body wrapping around it; moving up hits the body
	store, _ := storeLayout(t, []game.Cell{8, 7, 6, 11, 12}, []game.Cell{0})
	c := newTestController(t, mockTransport, store, false)

	event := transport.ReactionAdded{ActorID: "alice", ChannelID: "games", Symbol: game.Up.Emoji()}
	mockTransport.EXPECT().SelfID().Return(botID)
	mockTransport.EXPECT().RemoveReaction(mock.Anything, mock.Anything).Return(nil)
	mockTransport.EXPECT().Post(mock.Anything, "games", mock.MatchedBy(func(text string) bool {
		return strings.HasPrefix(text, "Game over!")
	})).Return(transport.MessageHandle{}, nil).Once()

	require.NoError(t, c.HandleInput(ctx, event))

	// the board did not change, so a second reaction neither edits nor posts
	require.NoError(t, c.HandleInput(ctx, event))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.True(t, got.State.Over())
}

func TestController_OnMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("starts a game", func(t *testing.T) {
		mockTransport := mocks.NewTransport(t)
		store := session.NewInMemoryStore()
		c := newTestController(t, mockTransport, store, false)
		mockTransport.EXPECT().SelfID().Return(botID)
		postSequentially(mockTransport)
		mockTransport.EXPECT().React(mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(4)

		c.OnMessage(ctx, transport.NewMessage{ChannelID: "games", Author: "alice", Text: "snake 6 4"})

		got, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, game.Board{Width: 6, Height: 4}, got.State.Board())
	})

	t.Run("reports bad arguments", func(t *testing.T) {
		mockTransport := mocks.NewTransport(t)
		store := session.NewInMemoryStore()
		c := newTestController(t, mockTransport, store, false)
		mockTransport.EXPECT().SelfID().Return(botID)
		mockTransport.EXPECT().Post(mock.Anything, "games", mock.MatchedBy(func(text string) bool {
			return strings.Contains(text, Usage)
		})).Return(transport.MessageHandle{}, nil).Once()

		c.OnMessage(ctx, transport.NewMessage{ChannelID: "games", Author: "alice", Text: "snake big 4"})

		_, err := store.Get(ctx)
		assert.ErrorIs(t, err, session.ErrNoSession)
	})

	t.Run("reports oversized boards", func(t *testing.T) {
		mockTransport := mocks.NewTransport(t)
		c := newTestController(t, mockTransport, session.NewInMemoryStore(), false)
		mockTransport.EXPECT().SelfID().Return(botID)
		mockTransport.EXPECT().Post(mock.Anything, "games", mock.MatchedBy(func(text string) bool {
			return strings.Contains(text, game.ErrInvalidDimensions.Error())
		})).Return(transport.MessageHandle{}, nil).Once()

		c.OnMessage(ctx, transport.NewMessage{ChannelID: "games", Author: "alice", Text: "snake 100 100"})
	})

	t.Run("ignores chatter and its own messages", func(t *testing.T) {
		mockTransport := mocks.NewTransport(t)
		c := newTestController(t, mockTransport, session.NewInMemoryStore(), false)
		mockTransport.EXPECT().SelfID().Return(botID)

		c.OnMessage(ctx, transport.NewMessage{ChannelID: "games", Author: "alice", Text: "good game"})
		c.OnMessage(ctx, transport.NewMessage{ChannelID: "games", Author: botID, Text: "snake"})
	})
}
