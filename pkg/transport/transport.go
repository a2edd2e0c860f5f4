// Package transport defines what the game needs from a chat service.
package transport

import (
	"context"
)

// MessageHandle identifies a posted message and records the content it
// currently shows.
type MessageHandle struct {
	ChannelID string `json:"channelID"`
	MessageID string `json:"messageID"`
	Content   string `json:"content"`
}

// Poster posts new messages.
type Poster interface {
	Post(ctx context.Context, channelID string, text string) (MessageHandle, error)
}

// Editor replaces the content of a posted message.
type Editor interface {
	Edit(ctx context.Context, handle MessageHandle, text string) error
}

// Transport is a chat service the bot plays through.
// Implementations must be safe for concurrent use.
type Transport interface {
	Poster
	Editor
	// React attaches a reaction from the bot to a message.
	React(ctx context.Context, handle MessageHandle, symbol string) error
	// RemoveReaction removes the reaction described by an inbound event.
	RemoveReaction(ctx context.Context, event ReactionAdded) error
	// SelfID returns the bot's own user ID.
	SelfID() string
}

// NewMessage is delivered when a user posts a message.
type NewMessage struct {
	ChannelID string
	MessageID string
	Author    string
	Text      string
}

// ReactionAdded is delivered when a user reacts to a message.
type ReactionAdded struct {
	ActorID   string
	ChannelID string
	MessageID string
	Symbol    string
}

// EventConsumer receives inbound chat events. Transports are the only callers.
type EventConsumer interface {
	OnMessage(ctx context.Context, msg NewMessage)
	OnReactionAdded(ctx context.Context, event ReactionAdded)
}
