package session

import (
	"time"

	"github.com/cbodonnell/chatsnake/pkg/game"
	"github.com/cbodonnell/chatsnake/pkg/transport"
	"github.com/google/uuid"
)

// Session is one game in progress and the messages its board is drawn in.
type Session struct {
	// ID is the opaque key of the game
	ID    uuid.UUID
	State *game.GameState
	// Messages are the board messages in render order. Their content is
	// what the chat currently shows.
	Messages  []transport.MessageHandle
	StartedAt time.Time
}

func New(state *game.GameState, messages []transport.MessageHandle) *Session {
	return &Session{
		ID:        uuid.New(),
		State:     state,
		Messages:  messages,
		StartedAt: time.Now(),
	}
}

// ChannelID returns the channel of the first board message, or "" when
// nothing has been posted.
func (s *Session) ChannelID() string {
	if len(s.Messages) == 0 {
		return ""
	}
	return s.Messages[0].ChannelID
}

// Copy returns a deep copy of the session.
func (s *Session) Copy() *Session {
	messages := make([]transport.MessageHandle, len(s.Messages))
	copy(messages, s.Messages)
	var state *game.GameState
	if s.State != nil {
		state = s.State.Copy()
	}
	return &Session{
		ID:        s.ID,
		State:     state,
		Messages:  messages,
		StartedAt: s.StartedAt,
	}
}
