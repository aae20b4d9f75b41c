package deck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/arcanaland/pokerhand/internal/hand"
)

// SessionStore remembers which deck to reuse between deals.
type SessionStore interface {
	DeckID() (string, error)
	SetDeckID(id string) error
}

// MemoryStore is a SessionStore that lives as long as the process.
type MemoryStore struct {
	mu sync.RWMutex
	id string
}

func (m *MemoryStore) DeckID() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.id, nil
}

func (m *MemoryStore) SetDeckID(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id = id
	return nil
}

// Dealer deals five-card hands, reusing the stored deck when the API still
// knows it and creating a new one otherwise.
type Dealer struct {
	client    *Client
	store     SessionStore
	deckCount int
	log       *slog.Logger

	// serialises deals so two callers never reshuffle the same deck at once
	mu sync.Mutex
}

// NewDealer returns a Dealer. A nil store keeps the deck id in memory.
func NewDealer(client *Client, store SessionStore, logger *slog.Logger) *Dealer {
	if store == nil {
		store = &MemoryStore{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dealer{client: client, store: store, deckCount: 1, log: logger}
}

// SetDeckCount sets how many 52-card decks a new deck is made of.
func (d *Dealer) SetDeckCount(n int) {
	if n > 0 {
		d.deckCount = n
	}
}

// PrepareDeck returns a fully shuffled deck: the stored one reshuffled with
// every card returned to it, or a new deck whose id is then stored.
func (d *Dealer) PrepareDeck(ctx context.Context) (State, error) {
	id, err := d.store.DeckID()
	if err != nil {
		return State{}, fmt.Errorf("reading deck id: %w", err)
	}

	if id != "" {
		state, err := d.client.Shuffle(ctx, id, false)
		if err == nil {
			d.log.Debug("reshuffled stored deck", "deck_id", id, "remaining", state.Remaining)
			return state, nil
		}
		if !errors.Is(err, ErrDeckNotFound) {
			return State{}, err
		}
		d.log.Info("stored deck is gone, requesting a new one", "deck_id", id)
	}

	state, err := d.client.NewDeck(ctx, d.deckCount)
	if err != nil {
		return State{}, err
	}
	if err := d.store.SetDeckID(state.ID); err != nil {
		return State{}, fmt.Errorf("storing deck id: %w", err)
	}
	d.log.Info("new deck", "deck_id", state.ID, "remaining", state.Remaining)
	return state, nil
}

// DealHand shuffles the deck and draws a complete five-card hand. A short
// draw is an error; the hand is never built from fewer than five cards.
func (d *Dealer) DealHand(ctx context.Context) (*hand.Hand, State, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	state, err := d.PrepareDeck(ctx)
	if err != nil {
		return nil, State{}, err
	}

	drawn, err := d.client.Draw(ctx, state.ID, hand.Size)
	if err != nil {
		return nil, State{}, err
	}
	if len(drawn.Cards) != hand.Size {
		return nil, drawn.Deck, fmt.Errorf("deck %s: drew %d cards: %w", state.ID, len(drawn.Cards), hand.ErrHandSize)
	}

	h, err := hand.New(drawn.Cards...)
	if err != nil {
		return nil, drawn.Deck, err
	}
	d.log.Debug("dealt hand", "deck_id", state.ID, "cards", h.String(), "remaining", drawn.Deck.Remaining)
	return h, drawn.Deck, nil
}
