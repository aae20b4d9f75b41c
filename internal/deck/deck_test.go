package deck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/pokerhand/internal/card"
	"github.com/arcanaland/pokerhand/internal/deck/decktest"
	"github.com/arcanaland/pokerhand/internal/hand"
)

func TestClientNewDeckAndDraw(t *testing.T) {
	api := decktest.NewServer("0S", "JS", "QS", "KS", "AS")
	defer api.Close()

	c := NewClient(api.APIURL())
	ctx := context.Background()

	state, err := c.NewDeck(ctx, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, state.ID)
	assert.True(t, state.Shuffled)
	assert.Equal(t, 57, state.Remaining)

	drawn, err := c.Draw(ctx, state.ID, 5)
	require.NoError(t, err)
	require.Len(t, drawn.Cards, 5)
	assert.Equal(t, 52, drawn.Deck.Remaining)

	assert.Equal(t, "0S", drawn.Cards[0].Code())
	assert.Equal(t, card.Ten, drawn.Cards[0].Value())
	assert.Equal(t, card.Jack, drawn.Cards[1].Value())
	assert.Equal(t, card.Ace, drawn.Cards[4].Value())
	assert.Equal(t, card.Spades, drawn.Cards[4].Suit())
	assert.Equal(t, api.URL+"/static/img/AS.png", drawn.Cards[4].Image())
}

func TestClientShuffleReturnsCards(t *testing.T) {
	api := decktest.NewServer()
	defer api.Close()
	api.AddDeck("abc", decktest.StandardDeck()...)

	c := NewClient(api.APIURL() + "/")
	ctx := context.Background()

	_, err := c.Draw(ctx, "abc", 10)
	require.NoError(t, err)

	state, err := c.Shuffle(ctx, "abc", true)
	require.NoError(t, err)
	assert.Equal(t, 42, state.Remaining)

	state, err = c.Shuffle(ctx, "abc", false)
	require.NoError(t, err)
	assert.Equal(t, 52, state.Remaining)
}

func TestClientUnknownDeck(t *testing.T) {
	api := decktest.NewServer()
	defer api.Close()
	c := NewClient(api.APIURL())

	_, err := c.Shuffle(context.Background(), "missing", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDeckNotFound)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Deck ID does not exist.", apiErr.Message)

	_, err = c.Draw(context.Background(), "", 5)
	assert.ErrorIs(t, err, ErrDeckNotFound)
}

func TestClientDrawTooMany(t *testing.T) {
	api := decktest.NewServer()
	defer api.Close()
	api.AddDeck("tiny", "AS", "KS")

	_, err := NewClient(api.APIURL()).Draw(context.Background(), "tiny", 5)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Message, "Not enough cards")
	assert.False(t, errors.Is(err, ErrDeckNotFound))
}

func TestClientRejectsMalformedCard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"deck_id":"x","remaining":51,
			"cards":[{"code":"ZZ","image":"img","value":"ELEVEN","suit":"SPADES"}]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Draw(context.Background(), "x", 1)
	assert.ErrorIs(t, err, card.ErrInvalidCard)
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).NewDeck(context.Background(), 1)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream exploded", apiErr.Message)
}

func TestClientHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(srv.URL).NewDeck(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClientFetchImage(t *testing.T) {
	api := decktest.NewServer()
	defer api.Close()

	img, err := NewClient(api.APIURL()).FetchImage(context.Background(), api.URL+"/static/img/QH.png")
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 12, img.Bounds().Dy())

	_, err = NewClient(api.APIURL()).FetchImage(context.Background(), api.URL+"/nothing.png")
	assert.Error(t, err)
}

func TestDealerCreatesAndReusesDeck(t *testing.T) {
	api := decktest.NewServer("7S", "7C", "7D", "7H", "2D")
	defer api.Close()

	store := &MemoryStore{}
	dealer := NewDealer(NewClient(api.APIURL()), store, nil)
	ctx := context.Background()

	h, state, err := dealer.DealHand(ctx)
	require.NoError(t, err)
	assert.Equal(t, hand.FourOfAKind, h.HighestHand())
	assert.Equal(t, 52, state.Remaining)

	id, _ := store.DeckID()
	assert.Equal(t, state.ID, id)

	// the stored deck is reshuffled, not replaced
	h, state, err = dealer.DealHand(ctx)
	require.NoError(t, err)
	assert.Equal(t, hand.FourOfAKind, h.HighestHand())
	assert.Equal(t, id, state.ID)

	newDecks := 0
	for _, p := range api.Requests() {
		if p == "/api/deck/new/shuffle/" {
			newDecks++
		}
	}
	assert.Equal(t, 1, newDecks)
}

func TestDealerReplacesForgottenDeck(t *testing.T) {
	api := decktest.NewServer("2H", "3H", "4H", "5H", "AH")
	defer api.Close()

	store := &MemoryStore{}
	require.NoError(t, store.SetDeckID("expired"))

	h, state, err := NewDealer(NewClient(api.APIURL()), store, nil).DealHand(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hand.StraightFlush, h.HighestHand())
	assert.NotEqual(t, "expired", state.ID)

	id, _ := store.DeckID()
	assert.Equal(t, state.ID, id)
}

type failingStore struct{}

func (failingStore) DeckID() (string, error) { return "", errors.New("disk on fire") }
func (failingStore) SetDeckID(string) error  { return nil }

func TestDealerStoreError(t *testing.T) {
	api := decktest.NewServer()
	defer api.Close()

	_, _, err := NewDealer(NewClient(api.APIURL()), failingStore{}, nil).DealHand(context.Background())
	assert.ErrorContains(t, err, "disk on fire")
}

func TestDealerShortDeck(t *testing.T) {
	api := decktest.NewServer()
	defer api.Close()
	api.AddDeck("short", "AS", "KS", "QS")

	store := &MemoryStore{}
	require.NoError(t, store.SetDeckID("short"))

	_, _, err := NewDealer(NewClient(api.APIURL()), store, nil).DealHand(context.Background())
	assert.Error(t, err)
}

func TestDealerDeckCount(t *testing.T) {
	api := decktest.NewServer()
	defer api.Close()

	dealer := NewDealer(NewClient(api.APIURL()), nil, nil)
	dealer.SetDeckCount(6)
	state, err := dealer.PrepareDeck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6*52, state.Remaining)
}
