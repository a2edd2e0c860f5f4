// Package discord plays the game through a Discord bot account.
package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/cbodonnell/chatsnake/pkg/log"
	"github.com/cbodonnell/chatsnake/pkg/queue"
	"github.com/cbodonnell/chatsnake/pkg/transport"
)

// Intents are the gateway intents the bot needs to see commands and
// reactions.
const Intents = discordgo.IntentsGuildMessages |
	discordgo.IntentsGuildMessageReactions |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsDirectMessageReactions |
	discordgo.IntentsMessageContent

// restClient is the subset of *discordgo.Session the transport calls.
type restClient interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEdit(channelID, messageID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	MessageReactionRemove(channelID, messageID, emojiID, userID string, options ...discordgo.RequestOption) error
}

var _ transport.Transport = (*Transport)(nil)

type Transport struct {
	session    *discordgo.Session
	rest       restClient
	eventQueue queue.Queue
	logger     *log.Logger

	// selfID is written by gateway handlers and read by the event worker
	selfIDLock sync.RWMutex
	selfID     string
}

type NewTransportOptions struct {
	Token string
	// EventQueue receives transport.NewMessage and transport.ReactionAdded
	// events from the gateway
	EventQueue queue.Queue
}

// NewTransport creates a Discord transport. Open must be called before
// events are delivered.
func NewTransport(opts NewTransportOptions) (*Transport, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("discord token is empty")
	}
	s, err := discordgo.New("Bot " + opts.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %v", err)
	}
	s.Identify.Intents = Intents

	t := &Transport{
		session:    s,
		rest:       s,
		eventQueue: opts.EventQueue,
		logger:     log.Named("discord"),
	}
	s.AddHandler(t.onReady)
	s.AddHandler(t.onMessageCreate)
	s.AddHandler(t.onMessageReactionAdd)
	return t, nil
}

// Open connects to the gateway.
func (t *Transport) Open() error {
	if err := t.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %v", err)
	}
	if t.session.State != nil && t.session.State.User != nil {
		t.setSelfID(t.session.State.User.ID)
	}
	return nil
}

// Close disconnects from the gateway.
func (t *Transport) Close() error {
	return t.session.Close()
}

func (t *Transport) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	if r.User != nil {
		t.setSelfID(r.User.ID)
		t.logger.Info("Logged in as %s#%s", r.User.Username, r.User.Discriminator)
	}
}

func (t *Transport) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Message == nil || m.Author == nil {
		return
	}
	t.enqueue(transport.NewMessage{
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		Author:    m.Author.ID,
		Text:      m.Content,
	})
}

func (t *Transport) onMessageReactionAdd(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.MessageReaction == nil {
		return
	}
	t.enqueue(transport.ReactionAdded{
		ActorID:   r.UserID,
		ChannelID: r.ChannelID,
		MessageID: r.MessageID,
		Symbol:    r.Emoji.APIName(),
	})
}

func (t *Transport) enqueue(event interface{}) {
	if err := t.eventQueue.Enqueue(event); err != nil {
		t.logger.Error("Failed to enqueue chat event: %v", err)
	}
}

func (t *Transport) Post(ctx context.Context, channelID string, text string) (transport.MessageHandle, error) {
	m, err := t.rest.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return transport.MessageHandle{}, transport.NewTransportError("post", err)
	}
	return transport.MessageHandle{
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		Content:   m.Content,
	}, nil
}

func (t *Transport) Edit(ctx context.Context, handle transport.MessageHandle, text string) error {
	if _, err := t.rest.ChannelMessageEdit(handle.ChannelID, handle.MessageID, text, discordgo.WithContext(ctx)); err != nil {
		return transport.NewTransportError("edit", err)
	}
	return nil
}

func (t *Transport) React(ctx context.Context, handle transport.MessageHandle, symbol string) error {
	if err := t.rest.MessageReactionAdd(handle.ChannelID, handle.MessageID, symbol, discordgo.WithContext(ctx)); err != nil {
		return transport.NewTransportError("react", err)
	}
	return nil
}

func (t *Transport) RemoveReaction(ctx context.Context, event transport.ReactionAdded) error {
	if err := t.rest.MessageReactionRemove(event.ChannelID, event.MessageID, event.Symbol, event.ActorID, discordgo.WithContext(ctx)); err != nil {
		return transport.NewTransportError("remove reaction", err)
	}
	return nil
}

func (t *Transport) SelfID() string {
	t.selfIDLock.RLock()
	defer t.selfIDLock.RUnlock()
	return t.selfID
}

func (t *Transport) setSelfID(id string) {
	t.selfIDLock.Lock()
	defer t.selfIDLock.Unlock()
	t.selfID = id
}
