package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/cbodonnell/chatsnake/pkg/game"
	"github.com/cbodonnell/chatsnake/pkg/game/constants"
	"github.com/cbodonnell/chatsnake/pkg/log"
	"github.com/cbodonnell/chatsnake/pkg/render"
	"github.com/cbodonnell/chatsnake/pkg/session"
	"github.com/cbodonnell/chatsnake/pkg/transport"
	"golang.org/x/exp/rand"
)

// Controller runs games through a chat transport. It implements
// transport.EventConsumer.
type Controller struct {
	transport              transport.Transport
	store                  session.Store
	renderer               *render.Renderer
	defaultWidth           int
	defaultHeight          int
	maxCells               int
	policy                 game.BoundsPolicy
	tolerateReactionErrors bool
	randFactory            func() *rand.Rand
}

var _ transport.EventConsumer = (*Controller)(nil)

// NewControllerOptions contains options for creating a new Controller.
type NewControllerOptions struct {
	Transport transport.Transport
	Store     session.Store
	// Renderer defaults to a renderer with the default theme and caps.
	Renderer      *render.Renderer
	DefaultWidth  int
	DefaultHeight int
	MaxCells      int
	Policy        game.BoundsPolicy
	// TolerateReactionErrors keeps a game running when the direction
	// controls could not be attached.
	TolerateReactionErrors bool
	// RandFactory returns the random source for each new game.
	RandFactory func() *rand.Rand
}

func NewController(opts NewControllerOptions) *Controller {
	c := &Controller{
		transport:              opts.Transport,
		store:                  opts.Store,
		renderer:               opts.Renderer,
		defaultWidth:           opts.DefaultWidth,
		defaultHeight:          opts.DefaultHeight,
		maxCells:               opts.MaxCells,
		policy:                 opts.Policy,
		tolerateReactionErrors: opts.TolerateReactionErrors,
		randFactory:            opts.RandFactory,
	}
	if c.renderer == nil {
		c.renderer = render.NewRenderer(render.NewRendererOptions{})
	}
	if c.defaultWidth < 1 || c.defaultHeight < 1 {
		c.defaultWidth = constants.DefaultBoardWidth
		c.defaultHeight = constants.DefaultBoardHeight
	}
	return c
}

// StartSession creates a game, posts its board to channelID, attaches the
// direction controls to the last board message and makes it the active
// session. Zero dimensions use the controller defaults.
func (c *Controller) StartSession(ctx context.Context, channelID string, width, height int) (*session.Session, error) {
	if width == 0 && height == 0 {
		width, height = c.defaultWidth, c.defaultHeight
	}

	var rng *rand.Rand
	if c.randFactory != nil {
		rng = c.randFactory()
	}
	state, err := game.NewGameState(game.NewGameStateOptions{
		Width:    width,
		Height:   height,
		MaxCells: c.maxCells,
		Policy:   c.policy,
		Rand:     rng,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	blocks := c.renderer.Render(state)
	handles := make([]transport.MessageHandle, 0, len(blocks))
	for i, block := range blocks {
		handle, err := c.transport.Post(ctx, channelID, block)
		if err != nil {
			return nil, fmt.Errorf("failed to post board block %d of %d: %w", i+1, len(blocks), err)
		}
		handles = append(handles, handle)
	}

	last := handles[len(handles)-1]
	for _, d := range game.Directions() {
		if err := c.transport.React(ctx, last, d.Emoji()); err != nil {
			if !c.tolerateReactionErrors {
				return nil, fmt.Errorf("failed to attach %s control: %w", d, err)
			}
			log.Warn("Failed to attach %s control to message %s: %v", d, last.MessageID, err)
		}
	}

	s := session.New(state, handles)
	if err := c.store.Set(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	log.Info("Started session %s: %dx%d board in %d messages on channel %s", s.ID, width, height, len(handles), channelID)
	return s, nil
}

// HandleInput applies a reaction to the active session. Reactions by the
// bot itself, unknown symbols and reactions in other channels are ignored.
// The move and the rerender run under the store's exclusive lock, so moves
// are applied one at a time.
func (c *Controller) HandleInput(ctx context.Context, event transport.ReactionAdded) error {
	if event.ActorID == c.transport.SelfID() {
		return nil
	}
	dir, ok := game.ParseDirection(event.Symbol)
	if !ok {
		return nil
	}

	err := c.store.Update(ctx, func(s *session.Session) error {
		if s.ChannelID() != event.ChannelID {
			return nil
		}

		if err := c.transport.RemoveReaction(ctx, event); err != nil {
			log.Trace("Failed to remove reaction %s from %s: %v", event.Symbol, event.ActorID, err)
		}

		outcome, err := s.State.Move(dir)
		if err != nil {
			if errors.Is(err, game.ErrOutOfBounds) || errors.Is(err, game.ErrGameOver) {
				log.Debug("Ignoring %s from %s in session %s: %v", dir, event.ActorID, s.ID, err)
				return nil
			}
			return fmt.Errorf("failed to move: %w", err)
		}
		log.Trace("Session %s: %s moved %s (%s), length %d", s.ID, event.ActorID, dir, outcome, s.State.Len())

		c.postSurplusBlocks(ctx, s)
		edits, err := c.renderer.Rerender(ctx, c.transport, s.State, s.Messages)
		if err != nil {
			log.Warn("Rerender of session %s was incomplete after %d edits: %v", s.ID, edits, err)
		}

		if outcome == game.MoveCollided {
			c.postGameOver(ctx, s)
		}
		return nil
	})
	if errors.Is(err, session.ErrNoSession) {
		return nil
	}
	return err
}

// postSurplusBlocks posts the blocks a board grew into since it was last
// drawn. Glyphs differ in byte length, so a move can push a row into a new
// block. The new messages are appended to the session.
func (c *Controller) postSurplusBlocks(ctx context.Context, s *session.Session) {
	blocks := c.renderer.Render(s.State)
	for i := len(s.Messages); i < len(blocks); i++ {
		handle, err := c.transport.Post(ctx, s.ChannelID(), blocks[i])
		if err != nil {
			log.Warn("Failed to post board block %d of session %s: %v", i+1, s.ID, err)
			return
		}
		s.Messages = append(s.Messages, handle)
		log.Debug("Session %s board grew to %d messages", s.ID, len(s.Messages))
	}
}

func (c *Controller) postGameOver(ctx context.Context, s *session.Session) {
	notice := fmt.Sprintf("Game over! The snake ran into itself at length %d after %d moves. Type `%s` to play again.", s.State.Len(), s.State.Moves(), CommandPrefix)
	if _, err := c.transport.Post(ctx, s.ChannelID(), notice); err != nil {
		log.Warn("Failed to post game over notice for session %s: %v", s.ID, err)
	}
	log.Info("Session %s is over at length %d", s.ID, s.State.Len())
}

// OnMessage starts a game when msg is a game command.
func (c *Controller) OnMessage(ctx context.Context, msg transport.NewMessage) {
	if msg.Author == c.transport.SelfID() {
		return
	}
	cmd, ok, err := ParseCommand(msg.Text)
	if !ok {
		return
	}
	if err != nil {
		log.Debug("Rejected command from %s: %v", msg.Author, err)
		c.reply(ctx, msg.ChannelID, fmt.Sprintf("Could not start a game: %v. %s", err, Usage))
		return
	}

	if _, err := c.StartSession(ctx, msg.ChannelID, cmd.Width, cmd.Height); err != nil {
		log.Error("Failed to start session for %s: %v", msg.Author, err)
		if errors.Is(err, game.ErrInvalidDimensions) {
			c.reply(ctx, msg.ChannelID, fmt.Sprintf("Could not start a game: %v.", err))
		} else {
			c.reply(ctx, msg.ChannelID, "Could not start a game, please try again.")
		}
	}
}

// OnReactionAdded forwards the reaction to HandleInput.
func (c *Controller) OnReactionAdded(ctx context.Context, event transport.ReactionAdded) {
	if err := c.HandleInput(ctx, event); err != nil {
		log.Error("Failed to handle reaction %s from %s: %v", event.Symbol, event.ActorID, err)
	}
}

func (c *Controller) reply(ctx context.Context, channelID string, text string) {
	if _, err := c.transport.Post(ctx, channelID, text); err != nil {
		log.Warn("Failed to reply on channel %s: %v", channelID, err)
	}
}
