// Package deck talks to a deckofcardsapi.com compatible card-dealing API and
// deals five-card hands from a deck that is reused between runs.
package deck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/arcanaland/pokerhand/internal/card"
)

// ErrDeckNotFound is returned when the API does not know the deck id.
var ErrDeckNotFound = errors.New("deck not found")

// APIError is a failure reported by the dealing API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("deck api: status %d", e.Status)
	}
	return fmt.Sprintf("deck api: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	if target != ErrDeckNotFound {
		return false
	}
	return e.Status == http.StatusNotFound || strings.Contains(strings.ToLower(e.Message), "does not exist")
}

// State describes a deck as the API last reported it.
type State struct {
	ID        string `json:"deck_id"`
	Shuffled  bool   `json:"shuffled"`
	Remaining int    `json:"remaining"`
}

// Draw is the result of drawing cards from a deck.
type Draw struct {
	Deck  State
	Cards []card.Card
}

type apiCard struct {
	Code  string `json:"code"`
	Image string `json:"image"`
	Value string `json:"value"`
	Suit  string `json:"suit"`
}

type apiResponse struct {
	Success   bool      `json:"success"`
	DeckID    string    `json:"deck_id"`
	Shuffled  bool      `json:"shuffled"`
	Remaining int       `json:"remaining"`
	Cards     []apiCard `json:"cards"`
	Error     string    `json:"error"`
}

// Client is a card-dealing API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient returns a client for the API rooted at baseURL,
// e.g. https://deckofcardsapi.com/api/deck.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewDeck asks for a freshly shuffled deck made of deckCount 52-card decks.
func (c *Client) NewDeck(ctx context.Context, deckCount int) (State, error) {
	if deckCount < 1 {
		deckCount = 1
	}
	q := url.Values{"deck_count": {strconv.Itoa(deckCount)}}
	resp, err := c.get(ctx, "new/shuffle/", q)
	if err != nil {
		return State{}, fmt.Errorf("new deck: %w", err)
	}
	return resp.state(), nil
}

// Shuffle reshuffles an existing deck. Drawn cards are returned to it unless
// remainingOnly is set.
func (c *Client) Shuffle(ctx context.Context, deckID string, remainingOnly bool) (State, error) {
	if deckID == "" {
		return State{}, fmt.Errorf("shuffle: %w", ErrDeckNotFound)
	}
	q := url.Values{}
	if remainingOnly {
		q.Set("remaining", "true")
	}
	resp, err := c.get(ctx, url.PathEscape(deckID)+"/shuffle/", q)
	if err != nil {
		return State{}, fmt.Errorf("shuffle deck %s: %w", deckID, err)
	}
	return resp.state(), nil
}

// Draw draws n cards. Every card is validated; a malformed card fails the
// whole draw.
func (c *Client) Draw(ctx context.Context, deckID string, n int) (Draw, error) {
	if deckID == "" {
		return Draw{}, fmt.Errorf("draw: %w", ErrDeckNotFound)
	}
	q := url.Values{"count": {strconv.Itoa(n)}}
	resp, err := c.get(ctx, url.PathEscape(deckID)+"/draw/", q)
	if err != nil {
		return Draw{}, fmt.Errorf("draw from deck %s: %w", deckID, err)
	}

	cards := make([]card.Card, 0, len(resp.Cards))
	for i, ac := range resp.Cards {
		cd, err := card.NewCard(ac.Code, ac.Suit, ac.Value, ac.Image)
		if err != nil {
			return Draw{}, fmt.Errorf("draw from deck %s: card %d: %w", deckID, i, err)
		}
		cards = append(cards, cd)
	}
	return Draw{Deck: resp.state(), Cards: cards}, nil
}

// FetchImage downloads and decodes a card face.
func (c *Client) FetchImage(ctx context.Context, imageURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &APIError{Status: res.StatusCode, Message: "fetching " + imageURL}
	}
	img, _, err := image.Decode(res.Body)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", imageURL, err)
	}
	return img, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (*apiResponse, error) {
	u := c.baseURL + "/" + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	c.log.Debug("deck api request", "url", u, "status", res.StatusCode, "elapsed", time.Since(start))

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var resp apiResponse
	decodeErr := json.Unmarshal(body, &resp)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg := resp.Error
		if decodeErr != nil || msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return nil, &APIError{Status: res.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding response: %w", decodeErr)
	}
	if !resp.Success {
		return nil, &APIError{Status: res.StatusCode, Message: resp.Error}
	}
	return &resp, nil
}

func (r *apiResponse) state() State {
	return State{ID: r.DeckID, Shuffled: r.Shuffled, Remaining: r.Remaining}
}
