// Package hub is a small websocket chat server that the bot can play
// through without a third-party chat service.
package hub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/cbodonnell/chatsnake/pkg/log"
	"github.com/cbodonnell/chatsnake/pkg/messages"
	"github.com/cbodonnell/chatsnake/pkg/queue"
	"github.com/cbodonnell/chatsnake/pkg/transport"
	"github.com/google/uuid"
	"nhooyr.io/websocket"
)

const (
	// DefaultSelfID is the author name the bot posts under
	DefaultSelfID = "snakebot"
	// DefaultChannelID is used by clients that join without naming a channel
	DefaultChannelID = "lobby"
	// MaxFrameSize bounds a single inbound frame
	MaxFrameSize = 64 * 1024
)

var (
	ErrUnknownMessage = errors.New("unknown message")
	ErrReservedName   = errors.New("name is reserved")
)

var _ transport.Transport = (*Hub)(nil)

type message struct {
	channelID string
	author    string
	text      string
	// reactions maps a symbol to the set of actors that added it
	reactions map[string]map[string]struct{}
}

// Hub relays chat frames between websocket clients and implements
// transport.Transport for the bot.
type Hub struct {
	clients    *ClientManager
	eventQueue queue.Queue
	selfID     string
	logger     *log.Logger

	messagesLock sync.RWMutex
	messages     map[string]*message
}

type NewHubOptions struct {
	// EventQueue receives transport.NewMessage and transport.ReactionAdded
	// events from clients
	EventQueue queue.Queue
	SelfID     string
}

// NewHub creates a new Hub.
func NewHub(opts NewHubOptions) *Hub {
	selfID := opts.SelfID
	if selfID == "" {
		selfID = DefaultSelfID
	}
	return &Hub{
		clients:    NewClientManager(),
		eventQueue: opts.EventQueue,
		selfID:     selfID,
		logger:     log.Named("hub"),
		messages:   make(map[string]*message),
	}
}

// ServeHTTP upgrades the request to a websocket and serves the client
// until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.logger.Error("Failed to accept websocket connection: %v", err)
		return
	}
	conn.SetReadLimit(MaxFrameSize)
	h.handleConnection(r.Context(), conn)
}

// ClientCount returns the number of joined clients.
func (h *Hub) ClientCount() int {
	return h.clients.Count()
}

func (h *Hub) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close(websocket.StatusNormalClosure, "")

	join, err := ReadFrame(ctx, conn)
	if err != nil {
		h.logger.Debug("Failed to read join frame: %v", err)
		return
	}
	if join.Type != messages.FrameTypeClientJoin {
		h.sendError(ctx, conn, fmt.Sprintf("expected %s frame, got %s", messages.FrameTypeClientJoin, join.Type))
		return
	}
	if join.Author == h.selfID {
		h.sendError(ctx, conn, ErrReservedName.Error())
		return
	}
	channelID := join.ChannelID
	if channelID == "" {
		channelID = DefaultChannelID
	}

	client, err := h.clients.ConnectClient(conn, join.Author, channelID)
	if err != nil {
		h.logger.Error("Failed to connect client: %v", err)
		h.sendError(ctx, conn, err.Error())
		return
	}
	defer func() {
		h.clients.DisconnectClient(client.ID)
		h.logger.Info("Client %s disconnected", client.Name)
	}()
	h.logger.Info("Client %s joined channel %s", client.Name, client.ChannelID)

	welcome := &messages.Frame{
		Type:      messages.FrameTypeServerWelcome,
		ChannelID: client.ChannelID,
		Author:    client.Name,
	}
	if err := WriteFrame(ctx, conn, welcome); err != nil {
		h.logger.Error("Failed to send welcome to %s: %v", client.Name, err)
		return
	}

	for {
		frame, err := ReadFrame(ctx, conn)
		if err != nil {
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				h.logger.Debug("Error reading frame from %s: %v", client.Name, err)
			}
			return
		}
		if err := h.handleFrame(ctx, client, frame); err != nil {
			h.logger.Warn("Rejected %s frame from %s: %v", frame.Type, client.Name, err)
			h.sendError(ctx, conn, err.Error())
		}
	}
}

func (h *Hub) handleFrame(ctx context.Context, client *Client, frame *messages.Frame) error {
	switch frame.Type {
	case messages.FrameTypeClientMessage:
		handle := h.store(client.ChannelID, client.Name, frame.Text)
		h.broadcast(ctx, client.ChannelID, &messages.Frame{
			Type:      messages.FrameTypeServerPost,
			ChannelID: handle.ChannelID,
			MessageID: handle.MessageID,
			Author:    client.Name,
			Text:      frame.Text,
		})
		h.enqueue(transport.NewMessage{
			ChannelID: handle.ChannelID,
			MessageID: handle.MessageID,
			Author:    client.Name,
			Text:      frame.Text,
		})
	case messages.FrameTypeClientReaction:
		channelID, err := h.addReaction(frame.MessageID, client.Name, frame.Symbol)
		if err != nil {
			return err
		}
		h.broadcast(ctx, channelID, &messages.Frame{
			Type:      messages.FrameTypeServerReactionAdd,
			ChannelID: channelID,
			MessageID: frame.MessageID,
			Author:    client.Name,
			Symbol:    frame.Symbol,
		})
		h.enqueue(transport.ReactionAdded{
			ActorID:   client.Name,
			ChannelID: channelID,
			MessageID: frame.MessageID,
			Symbol:    frame.Symbol,
		})
	default:
		return fmt.Errorf("unexpected frame type %s", frame.Type)
	}
	return nil
}

func (h *Hub) enqueue(event interface{}) {
	if h.eventQueue == nil {
		return
	}
	if err := h.eventQueue.Enqueue(event); err != nil {
		h.logger.Error("Failed to enqueue chat event: %v", err)
	}
}

func (h *Hub) sendError(ctx context.Context, conn *websocket.Conn, reason string) {
	if err := WriteFrame(ctx, conn, &messages.Frame{Type: messages.FrameTypeServerError, Text: reason}); err != nil {
		h.logger.Debug("Failed to send error frame: %v", err)
	}
}

func (h *Hub) broadcast(ctx context.Context, channelID string, frame *messages.Frame) {
	for _, client := range h.clients.GetClients(channelID) {
		if err := WriteFrame(ctx, client.Conn, frame); err != nil {
			h.logger.Warn("Failed to send %s frame to %s: %v", frame.Type, client.Name, err)
		}
	}
}

func (h *Hub) store(channelID string, author string, text string) transport.MessageHandle {
	h.messagesLock.Lock()
	defer h.messagesLock.Unlock()
	id := uuid.NewString()
	h.messages[id] = &message{
		channelID: channelID,
		author:    author,
		text:      text,
		reactions: make(map[string]map[string]struct{}),
	}
	return transport.MessageHandle{ChannelID: channelID, MessageID: id, Content: text}
}

func (h *Hub) addReaction(messageID string, actor string, symbol string) (string, error) {
	h.messagesLock.Lock()
	defer h.messagesLock.Unlock()
	m, ok := h.messages[messageID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownMessage, messageID)
	}
	actors, ok := m.reactions[symbol]
	if !ok {
		actors = make(map[string]struct{})
		m.reactions[symbol] = actors
	}
	actors[actor] = struct{}{}
	return m.channelID, nil
}

// Reactions returns the actors that currently hold symbol on a message.
func (h *Hub) Reactions(messageID string, symbol string) []string {
	h.messagesLock.RLock()
	defer h.messagesLock.RUnlock()
	m, ok := h.messages[messageID]
	if !ok {
		return nil
	}
	actors := make([]string, 0, len(m.reactions[symbol]))
	for actor := range m.reactions[symbol] {
		actors = append(actors, actor)
	}
	return actors
}

// Text returns the current text of a message.
func (h *Hub) Text(messageID string) (string, bool) {
	h.messagesLock.RLock()
	defer h.messagesLock.RUnlock()
	m, ok := h.messages[messageID]
	if !ok {
		return "", false
	}
	return m.text, true
}

func (h *Hub) Post(ctx context.Context, channelID string, text string) (transport.MessageHandle, error) {
	handle := h.store(channelID, h.selfID, text)
	h.broadcast(ctx, channelID, &messages.Frame{
		Type:      messages.FrameTypeServerPost,
		ChannelID: channelID,
		MessageID: handle.MessageID,
		Author:    h.selfID,
		Text:      text,
	})
	return handle, nil
}

func (h *Hub) Edit(ctx context.Context, handle transport.MessageHandle, text string) error {
	h.messagesLock.Lock()
	m, ok := h.messages[handle.MessageID]
	if ok && m.author == h.selfID {
		m.text = text
	}
	h.messagesLock.Unlock()
	if !ok {
		return transport.NewTransportError("edit", fmt.Errorf("%w: %s", ErrUnknownMessage, handle.MessageID))
	}
	if m.author != h.selfID {
		return transport.NewTransportError("edit", fmt.Errorf("message %s was not posted by %s", handle.MessageID, h.selfID))
	}

	h.broadcast(ctx, m.channelID, &messages.Frame{
		Type:      messages.FrameTypeServerEdit,
		ChannelID: m.channelID,
		MessageID: handle.MessageID,
		Author:    h.selfID,
		Text:      text,
	})
	return nil
}

func (h *Hub) React(ctx context.Context, handle transport.MessageHandle, symbol string) error {
	channelID, err := h.addReaction(handle.MessageID, h.selfID, symbol)
	if err != nil {
		return transport.NewTransportError("react", err)
	}
	h.broadcast(ctx, channelID, &messages.Frame{
		Type:      messages.FrameTypeServerReactionAdd,
		ChannelID: channelID,
		MessageID: handle.MessageID,
		Author:    h.selfID,
		Symbol:    symbol,
	})
	return nil
}

func (h *Hub) RemoveReaction(ctx context.Context, event transport.ReactionAdded) error {
	h.messagesLock.Lock()
	m, ok := h.messages[event.MessageID]
	if ok {
		delete(m.reactions[event.Symbol], event.ActorID)
	}
	h.messagesLock.Unlock()
	if !ok {
		return transport.NewTransportError("remove reaction", fmt.Errorf("%w: %s", ErrUnknownMessage, event.MessageID))
	}

	h.broadcast(ctx, m.channelID, &messages.Frame{
		Type:      messages.FrameTypeServerReactionRemove,
		ChannelID: m.channelID,
		MessageID: event.MessageID,
		Author:    event.ActorID,
		Symbol:    event.Symbol,
	})
	return nil
}

func (h *Hub) SelfID() string {
	return h.selfID
}

// WriteFrame writes a frame to a websocket connection
func WriteFrame(ctx context.Context, conn *websocket.Conn, frame *messages.Frame) error {
	b, err := messages.SerializeFrame(frame)
	if err != nil {
		return fmt.Errorf("failed to serialize frame: %v", err)
	}

	if err := conn.Write(ctx, websocket.MessageBinary, b); err != nil {
		return fmt.Errorf("failed to write frame to websocket connection: %w", err)
	}

	return nil
}

// ReadFrame reads a frame from a websocket connection
func ReadFrame(ctx context.Context, conn *websocket.Conn) (*messages.Frame, error) {
	_, b, err := conn.Read(ctx)
	if err != nil {
		return nil, err
	}

	frame, err := messages.DeserializeFrame(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize frame: %v", err)
	}

	return frame, nil
}
