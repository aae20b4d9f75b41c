// Package decktest runs an in-process fake of the card-dealing API.
package decktest

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"
)

// Server is a fake dealing API. New decks deal Stack from the top; after
// Stack runs out the remaining cards of a standard deck follow.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	decks    map[string]*fakeDeck
	nextID   int
	stack    []string
	requests []string
}

type fakeDeck struct {
	cards []string
	drawn int
}

// NewServer starts a fake API whose decks deal stack first.
func NewServer(stack ...string) *Server {
	s := &Server{decks: make(map[string]*fakeDeck), stack: stack}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/deck").Subrouter()
	api.HandleFunc("/new/shuffle/", s.newDeck).Methods(http.MethodGet)
	api.HandleFunc("/{id}/shuffle/", s.shuffle).Methods(http.MethodGet)
	api.HandleFunc("/{id}/draw/", s.draw).Methods(http.MethodGet)
	r.HandleFunc("/static/img/{code}.png", s.image).Methods(http.MethodGet)
	r.Use(s.record)

	s.Server = httptest.NewServer(r)
	return s
}

// APIURL is the base URL to hand to deck.NewClient.
func (s *Server) APIURL() string {
	return s.URL + "/api/deck"
}

// AddDeck registers a deck under id that deals cards in order.
func (s *Server) AddDeck(id string, cards ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[id] = &fakeDeck{cards: cards}
}

// ForgetDeck makes the API answer 404 for id.
func (s *Server) ForgetDeck(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.decks, id)
}

// Requests returns the request paths seen so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL.Path)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) newDeck(w http.ResponseWriter, r *http.Request) {
	count := 1
	if v := r.URL.Query().Get("deck_count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respond(w, http.StatusBadRequest, map[string]any{"success": false, "error": "bad deck_count"})
			return
		}
		count = n
	}

	s.mu.Lock()
	s.nextID++
	id := fmt.Sprintf("fakedeck%04d", s.nextID)
	cards := append([]string(nil), s.stack...)
	for i := 0; i < count; i++ {
		cards = append(cards, StandardDeck()...)
	}
	s.decks[id] = &fakeDeck{cards: cards}
	remaining := len(cards)
	s.mu.Unlock()

	respond(w, http.StatusOK, map[string]any{
		"success": true, "deck_id": id, "shuffled": true, "remaining": remaining,
	})
}

func (s *Server) shuffle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	d, ok := s.decks[id]
	if ok && r.URL.Query().Get("remaining") != "true" {
		d.drawn = 0
	}
	var remaining int
	if ok {
		remaining = len(d.cards) - d.drawn
	}
	s.mu.Unlock()

	if !ok {
		notFound(w)
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"success": true, "deck_id": id, "shuffled": true, "remaining": remaining,
	})
}

func (s *Server) draw(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	count := 1
	if v := r.URL.Query().Get("count"); v != "" {
		count, _ = strconv.Atoi(v)
	}

	s.mu.Lock()
	d, ok := s.decks[id]
	var codes []string
	var remaining int
	if ok {
		end := min(d.drawn+count, len(d.cards))
		codes = d.cards[d.drawn:end]
		d.drawn = end
		remaining = len(d.cards) - d.drawn
	}
	s.mu.Unlock()

	if !ok {
		notFound(w)
		return
	}

	cards := make([]map[string]string, 0, len(codes))
	for _, code := range codes {
		cards = append(cards, s.cardJSON(code))
	}
	body := map[string]any{
		"success": true, "deck_id": id, "cards": cards, "remaining": remaining,
	}
	if len(codes) < count {
		body["success"] = false
		body["error"] = fmt.Sprintf("Not enough cards remaining to draw %d additional", count)
	}
	respond(w, http.StatusOK, body)
}

func (s *Server) image(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	img := image.NewRGBA(image.Rect(0, 0, 8, 12))
	fill := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if strings.HasSuffix(code, "H") || strings.HasSuffix(code, "D") {
		fill = color.RGBA{R: 200, A: 255}
	}
	for y := 0; y < 12; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, fill)
		}
	}
	w.Header().Set("Content-Type", "image/png")
	_ = png.Encode(w, img)
}

func (s *Server) cardJSON(code string) map[string]string {
	value := code[:len(code)-1]
	switch value {
	case "0":
		value = "10"
	case "J":
		value = "JACK"
	case "Q":
		value = "QUEEN"
	case "K":
		value = "KING"
	case "A":
		value = "ACE"
	}
	suit := map[byte]string{'S': "SPADES", 'H': "HEARTS", 'D': "DIAMONDS", 'C': "CLUBS"}[code[len(code)-1]]
	return map[string]string{
		"code":  code,
		"image": s.URL + "/static/img/" + code + ".png",
		"value": value,
		"suit":  suit,
	}
}

// StandardDeck lists the 52 codes of one unshuffled deck.
func StandardDeck() []string {
	var codes []string
	for _, suit := range []string{"S", "H", "D", "C"} {
		for _, rank := range []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "0", "J", "Q", "K"} {
			codes = append(codes, rank+suit)
		}
	}
	return codes
}

func notFound(w http.ResponseWriter) {
	respond(w, http.StatusNotFound, map[string]any{"success": false, "error": "Deck ID does not exist."})
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
