package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cbodonnell/chatsnake/pkg/game"
	"github.com/cbodonnell/chatsnake/pkg/log"
	"github.com/cbodonnell/chatsnake/pkg/messages"
	"github.com/cbodonnell/chatsnake/pkg/transport/hub"
	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
	"nhooyr.io/websocket"
)

const helpLine = "arrows: move  n: new game  q: quit"

func main() {
	addr := flag.String("addr", "ws://localhost:8080/ws", "Hub websocket address")
	name := flag.String("name", "", "Name to join as")
	channel := flag.String("channel", hub.DefaultChannelID, "Channel to join")
	logLevel := flag.String("log-level", "info", "Log level")
	logFile := flag.String("log-file", "", "Log file, logs are discarded when empty")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}
	var out io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			panic(fmt.Sprintf("Failed to open log file: %v", err))
		}
		defer f.Close()
		out = f
	}
	log.SetDefaultLogger(log.New(out, "", log.DefaultLoggerFlag, parsedLogLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to %s: %v", *addr, err))
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	join := &messages.Frame{Type: messages.FrameTypeClientJoin, ChannelID: *channel, Author: *name}
	if err := hub.WriteFrame(ctx, conn, join); err != nil {
		panic(fmt.Sprintf("Failed to join: %v", err))
	}

	if err := termbox.Init(); err != nil {
		panic(fmt.Sprintf("Failed to initialize terminal: %v", err))
	}
	defer termbox.Close()

	view := newChatView(hub.DefaultSelfID)
	go func() {
		defer termbox.Interrupt()
		for {
			frame, err := hub.ReadFrame(ctx, conn)
			if err != nil {
				log.Debug("Stopped reading from hub: %v", err)
				cancel()
				return
			}
			view.apply(frame)
			termbox.Interrupt()
		}
	}()

	draw(view)
	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventInterrupt:
			if ctx.Err() != nil {
				return
			}
		case termbox.EventError:
			log.Error("Terminal error: %v", ev.Err)
			return
		case termbox.EventKey:
			if !handleKey(ctx, conn, view, ev) {
				return
			}
		}
		draw(view)
	}
}

var arrowKeys = map[termbox.Key]game.Direction{
	termbox.KeyArrowUp:    game.Up,
	termbox.KeyArrowDown:  game.Down,
	termbox.KeyArrowLeft:  game.Left,
	termbox.KeyArrowRight: game.Right,
}

// handleKey reports whether the client should keep running.
func handleKey(ctx context.Context, conn *websocket.Conn, view *chatView, ev termbox.Event) bool {
	if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q' {
		return false
	}

	var frame *messages.Frame
	if dir, ok := arrowKeys[ev.Key]; ok {
		target, ok := view.Controls()
		if !ok {
			return true
		}
		frame = &messages.Frame{Type: messages.FrameTypeClientReaction, MessageID: target, Symbol: dir.Emoji()}
	} else if ev.Ch == 'n' {
		frame = &messages.Frame{Type: messages.FrameTypeClientMessage, Text: "snake"}
	}
	if frame == nil {
		return true
	}
	if err := hub.WriteFrame(ctx, conn, frame); err != nil {
		log.Error("Failed to send %s frame: %v", frame.Type, err)
		return false
	}
	return true
}

func draw(view *chatView) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	_, height := termbox.Size()
	lines := view.Lines(height - 1)
	for y, line := range lines {
		drawLine(0, y, line)
	}
	drawLine(0, height-1, helpLine)
	termbox.Flush()
}

func drawLine(x, y int, line string) {
	for _, r := range line {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		termbox.SetCell(x, y, r, termbox.ColorDefault, termbox.ColorDefault)
		x += w
	}
}
