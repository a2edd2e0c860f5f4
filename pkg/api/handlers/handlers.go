package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cbodonnell/chatsnake/pkg/log"
	"github.com/cbodonnell/chatsnake/pkg/render"
	"github.com/cbodonnell/chatsnake/pkg/session"
	"github.com/cbodonnell/chatsnake/pkg/transport"
	"github.com/cbodonnell/chatsnake/pkg/version"
)

// SessionView is the JSON shape of the active game.
type SessionView struct {
	ID        string                    `json:"id"`
	StartedAt time.Time                 `json:"startedAt"`
	Width     int                       `json:"width"`
	Height    int                       `json:"height"`
	Policy    string                    `json:"policy"`
	Heading   string                    `json:"heading"`
	Length    int                       `json:"length"`
	Moves     int                       `json:"moves"`
	Over      bool                      `json:"over"`
	Snake     []int                     `json:"snake"`
	Food      []int                     `json:"food"`
	Rows      []string                  `json:"rows"`
	Messages  []transport.MessageHandle `json:"messages"`
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	}
}

func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"version": version.Get()})
	}
}

func HandleGetSession(store session.Store, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := store.Get(r.Context())
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				http.Error(w, "No active session", http.StatusNotFound)
				return
			}
			log.Error("failed to get session: %v", err)
			http.Error(w, "Failed to get session", http.StatusInternalServerError)
			return
		}

		state := s.State
		board := state.Board()
		view := SessionView{
			ID:        s.ID.String(),
			StartedAt: s.StartedAt,
			Width:     board.Width,
			Height:    board.Height,
			Policy:    state.Policy().String(),
			Heading:   state.Heading().String(),
			Length:    state.Len(),
			Moves:     state.Moves(),
			Over:      state.Over(),
			Snake:     make([]int, 0, state.Len()),
			Food:      make([]int, 0, len(state.Food())),
			Rows:      render.SplitRows(renderer.Render(state)),
			Messages:  s.Messages,
		}
		for _, c := range state.Snake() {
			view.Snake = append(view.Snake, int(c))
		}
		for _, c := range state.Food() {
			view.Food = append(view.Food, int(c))
		}
		writeJSON(w, view)
	}
}
