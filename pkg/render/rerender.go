package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cbodonnell/chatsnake/pkg/game"
	"github.com/cbodonnell/chatsnake/pkg/log"
	"github.com/cbodonnell/chatsnake/pkg/transport"
)

// Rerender redraws state and edits only the messages whose content
// changed, in ascending order. A failed edit is logged and does not stop
// the remaining ones. Handles are updated in place after each successful
// edit. It returns the number of successful edits and every edit error.
// Blocks beyond the handles are not drawn; callers post them first.
func (r *Renderer) Rerender(ctx context.Context, editor transport.Editor, state *game.GameState, handles []transport.MessageHandle) (int, error) {
	blocks := r.Render(state)
	if len(blocks) > len(handles) {
		log.Warn("Rendered %d blocks for %d messages, dropping %d", len(blocks), len(handles), len(blocks)-len(handles))
	}

	blank := strings.TrimPrefix(PaddingMarker, "\n")
	edits := 0
	var errs []error
	for i := range handles {
		content := blank
		if i < len(blocks) {
			content = blocks[i]
		}
		if handles[i].Content == content {
			continue
		}

		if err := editor.Edit(ctx, handles[i], content); err != nil {
			log.Error("Failed to edit message %s: %v", handles[i].MessageID, err)
			errs = append(errs, fmt.Errorf("failed to edit block %d: %w", i, err))
			continue
		}
		handles[i].Content = content
		edits++
	}

	return edits, errors.Join(errs...)
}
