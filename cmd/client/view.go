package main

import (
	"strings"
	"sync"

	"github.com/cbodonnell/chatsnake/pkg/messages"
)

// shortcodes maps the glyphs the bot posts to what a terminal can draw.
var shortcodes = map[string]string{
	":black_large_square:": "⬛",
	":lemon:":              "\U0001f34b",
	":blue_square:":        "\U0001f7e6",
}

const regionalIndicatorPrefix = ":regional_indicator_"

// expandShortcodes replaces chat shortcodes with their unicode emoji.
// Unknown shortcodes are left as they are.
func expandShortcodes(text string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(text, ':')
		if start < 0 {
			break
		}
		end := strings.IndexByte(text[start+1:], ':')
		if end < 0 {
			break
		}
		code := text[start : start+end+2]
		b.WriteString(text[:start])
		if emoji, ok := lookupShortcode(code); ok {
			b.WriteString(emoji)
			text = text[start+len(code):]
			continue
		}
		b.WriteByte(':')
		text = text[start+1:]
	}
	b.WriteString(text)
	return b.String()
}

func lookupShortcode(code string) (string, bool) {
	if emoji, ok := shortcodes[code]; ok {
		return emoji, true
	}
	if strings.HasPrefix(code, regionalIndicatorPrefix) && len(code) == len(regionalIndicatorPrefix)+2 {
		letter := code[len(regionalIndicatorPrefix)]
		if letter >= 'a' && letter <= 'z' {
			return string(rune(0x1f1e6 + int(letter-'a'))), true
		}
	}
	return "", false
}

type chatMessage struct {
	ID     string
	Author string
	Text   string
}

// chatView is the client's copy of the channel.
type chatView struct {
	mu       sync.RWMutex
	self     string
	bot      string
	channel  string
	messages []*chatMessage
	byID     map[string]*chatMessage
	// controls is the message the bot attached its direction reactions to
	controls string
	status   string
}

func newChatView(bot string) *chatView {
	return &chatView{
		bot:  bot,
		byID: make(map[string]*chatMessage),
	}
}

func (v *chatView) apply(f *messages.Frame) {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch f.Type {
	case messages.FrameTypeServerWelcome:
		v.self = f.Author
		v.channel = f.ChannelID
		v.status = "joined " + f.ChannelID + " as " + f.Author
	case messages.FrameTypeServerPost:
		m := &chatMessage{ID: f.MessageID, Author: f.Author, Text: f.Text}
		v.messages = append(v.messages, m)
		v.byID[m.ID] = m
	case messages.FrameTypeServerEdit:
		if m, ok := v.byID[f.MessageID]; ok {
			m.Text = f.Text
		}
	case messages.FrameTypeServerReactionAdd:
		if f.Author == v.bot {
			v.controls = f.MessageID
		}
	case messages.FrameTypeServerError:
		v.status = "error: " + f.Text
	}
}

// Controls returns the message direction reactions should target.
func (v *chatView) Controls() (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.controls, v.controls != ""
}

// Lines returns the last n lines of the conversation, bot boards
// included, with shortcodes expanded.
func (v *chatView) Lines(n int) []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	var lines []string
	for _, m := range v.messages {
		text := expandShortcodes(m.Text)
		if m.Author == v.bot {
			lines = append(lines, strings.Split(text, "\n")...)
			continue
		}
		lines = append(lines, m.Author+": "+text)
	}
	if v.status != "" {
		lines = append(lines, "-- "+v.status)
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
