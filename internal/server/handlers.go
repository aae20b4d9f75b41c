package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/arcanaland/pokerhand/internal/card"
	"github.com/arcanaland/pokerhand/internal/deck"
	"github.com/arcanaland/pokerhand/internal/hand"
	"github.com/arcanaland/pokerhand/internal/validator"
)

// HandView is the JSON shape of a dealt or classified hand.
type HandView struct {
	ID        string       `json:"id"`
	DeckID    string       `json:"deck_id,omitempty"`
	Remaining *int         `json:"remaining,omitempty"`
	Cards     []card.Card  `json:"cards"`
	Sorted    []card.Card  `json:"sorted"`
	Ranking   hand.Ranking `json:"ranking"`
	Warnings  []string     `json:"warnings,omitempty"`
}

func newHandView(h *hand.Hand) HandView {
	return HandView{
		ID:      uuid.New().String(),
		Cards:   h.Cards(),
		Sorted:  h.SortedByRank(true),
		Ranking: h.HighestHand(),
	}
}

func dealtView(h *hand.Hand, state deck.State) HandView {
	v := newHandView(h)
	v.DeckID = state.ID
	remaining := state.Remaining
	v.Remaining = &remaining
	return v
}

type classifyRequest struct {
	Cards []string `json:"cards"`
}

type validationErrorResponse struct {
	Error    string   `json:"error"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func response(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	response(w, status, map[string]string{"error": message})
}

// DealHand deals a fresh hand from the dealing API and classifies it.
func (s *Server) DealHand(w http.ResponseWriter, r *http.Request) {
	h, state, err := s.dealer.DealHand(r.Context())
	if err != nil {
		s.log.Error("dealing failed", "error", err)
		errorResponse(w, http.StatusBadGateway, "dealing failed: "+err.Error())
		return
	}
	response(w, http.StatusCreated, dealtView(h, state))
}

// ClassifyHand classifies five card codes posted by the client.
func (s *Server) ClassifyHand(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	v := validator.NewValidator(req.Cards)
	results, err := v.Validate()
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !results.Valid() {
		response(w, http.StatusBadRequest, validationErrorResponse{
			Error:    "invalid hand",
			Errors:   results.Errors,
			Warnings: results.Warnings,
		})
		return
	}

	view := newHandView(v.Hand)
	view.Warnings = results.Warnings
	response(w, http.StatusOK, view)
}

// ListRankings lists the ranking labels from strongest to weakest.
func (s *Server) ListRankings(w http.ResponseWriter, r *http.Request) {
	response(w, http.StatusOK, map[string][]hand.Ranking{"rankings": hand.Rankings()})
}

// Health reports that the server is up.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	response(w, http.StatusOK, map[string]string{"status": "ok"})
}
