// Package render turns a game into chat sized blocks of text and keeps
// posted blocks in sync with the game.
package render

import (
	"strings"

	"github.com/cbodonnell/chatsnake/pkg/game"
)

const (
	// DefaultMaxRowLength stops a row from growing once it passes this many bytes
	DefaultMaxRowLength = 1900
	// DefaultMaxBlockLength is the per message cap a block stays under
	DefaultMaxBlockLength = 2000
	// PaddingMarker ends the final block with a blank braille cell so the
	// chat service does not trim the last row.
	PaddingMarker = "\n\u2800"
)

type Renderer struct {
	theme          Theme
	maxRowLength   int
	maxBlockLength int
}

// NewRendererOptions contains options for creating a new Renderer.
type NewRendererOptions struct {
	// Theme defaults to DefaultTheme when nil.
	Theme          *Theme
	MaxRowLength   int
	MaxBlockLength int
}

func NewRenderer(opts NewRendererOptions) *Renderer {
	r := &Renderer{
		theme:          DefaultTheme,
		maxRowLength:   DefaultMaxRowLength,
		maxBlockLength: DefaultMaxBlockLength,
	}
	if opts.Theme != nil {
		r.theme = *opts.Theme
	}
	if opts.MaxRowLength > 0 {
		r.maxRowLength = opts.MaxRowLength
	}
	if opts.MaxBlockLength > 0 {
		r.maxBlockLength = opts.MaxBlockLength
	}
	return r
}

// Render draws the board and merges its rows into blocks.
func (r *Renderer) Render(state *game.GameState) []string {
	blocks := r.Merge(r.Rows(state))
	if len(blocks) == 0 {
		return []string{strings.TrimPrefix(PaddingMarker, "\n")}
	}

	last := len(blocks) - 1
	if len(blocks[last])+len(PaddingMarker) < r.maxBlockLength {
		blocks[last] += PaddingMarker
	} else {
		blocks = append(blocks, strings.TrimPrefix(PaddingMarker, "\n"))
	}
	return blocks
}

// Rows draws one string per board row.
func (r *Renderer) Rows(state *game.GameState) []string {
	board := state.Board()
	snake := state.Snake()
	depths := make(map[game.Cell]int, len(snake))
	for i, c := range snake {
		depths[c] = len(snake) - i - 1
	}

	rows := make([]string, 0, board.Height)
	for row := 0; row < board.Height; row++ {
		var sb strings.Builder
		for col := 0; col < board.Width; col++ {
			c := board.CellAt(row, col)
			if depth, ok := depths[c]; ok {
				sb.WriteString(r.theme.SegmentGlyph(depth))
			} else if state.HasFood(c) {
				sb.WriteString(r.theme.Food)
			} else {
				sb.WriteString(r.theme.Background)
			}
			if sb.Len() > r.maxRowLength {
				break
			}
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// Merge greedily joins consecutive rows with newlines while a block stays
// under the block cap. A row is never split across blocks.
func (r *Renderer) Merge(rows []string) []string {
	var blocks []string
	var current strings.Builder
	for i, row := range rows {
		if i > 0 && current.Len()+1+len(row) < r.maxBlockLength {
			current.WriteByte('\n')
			current.WriteString(row)
			continue
		}
		if i > 0 {
			blocks = append(blocks, current.String())
			current.Reset()
		}
		current.WriteString(row)
	}
	if len(rows) > 0 {
		blocks = append(blocks, current.String())
	}
	return blocks
}

// SplitRows recovers the rows from rendered blocks.
func SplitRows(blocks []string) []string {
	joined := strings.TrimSuffix(strings.Join(blocks, "\n"), PaddingMarker)
	if joined == "" {
		return nil
	}
	return strings.Split(joined, "\n")
}
