package card

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ImageBaseURL is where the dealing API serves its card faces.
const ImageBaseURL = "https://deckofcardsapi.com/static/img/"

// ErrInvalidCard is matched by every card validation failure.
var ErrInvalidCard = errors.New("invalid card")

// FieldError describes which card field failed validation.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid card %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidCard
}

// Card represents a playing card drawn from a deck.
// Fields are unexported so a Card cannot change after NewCard returns it.
type Card struct {
	code  string
	suit  Suit
	value Rank
	image string
}

// NewCard validates the four card fields and returns the Card.
// The value may be a short label ("Q") or the API's long name ("QUEEN").
func NewCard(code, suit, value, image string) (Card, error) {
	if strings.TrimSpace(code) == "" {
		return Card{}, &FieldError{Field: "code", Value: code, Reason: "must not be empty"}
	}
	if strings.TrimSpace(image) == "" {
		return Card{}, &FieldError{Field: "image", Value: image, Reason: "must not be empty"}
	}
	s, err := ParseSuit(suit)
	if err != nil {
		return Card{}, &FieldError{Field: "suit", Value: suit, Reason: err.Error()}
	}
	r, err := ParseRank(value)
	if err != nil {
		return Card{}, &FieldError{Field: "value", Value: value, Reason: err.Error()}
	}

	return Card{
		code:  code,
		suit:  s,
		value: r,
		image: image,
	}, nil
}

// ParseCode builds a Card from a short code such as "AS", "0H", "10H" or "TD".
// The image points at the dealing API's static card face for that code.
func ParseCode(code string) (Card, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) < 2 {
		return Card{}, &FieldError{Field: "code", Value: code, Reason: "too short"}
	}

	rankPart, suitPart := c[:len(c)-1], c[len(c)-1:]
	switch rankPart {
	case "0", "T":
		rankPart = "10"
	}

	s, err := ParseSuit(suitPart)
	if err != nil {
		return Card{}, &FieldError{Field: "code", Value: code, Reason: err.Error()}
	}
	r, err := ParseRank(rankPart)
	if err != nil {
		return Card{}, &FieldError{Field: "code", Value: code, Reason: err.Error()}
	}

	canonical := r.codeChar() + s.letter()
	return Card{
		code:  canonical,
		suit:  s,
		value: r,
		image: ImageURL(canonical),
	}, nil
}

// ImageURL returns the dealing API's PNG face for a card code.
func ImageURL(code string) string {
	return ImageBaseURL + code + ".png"
}

// Code returns the canonical two-character code, e.g. "0H".
func (c Card) Code() string { return c.code }

// Suit returns the card's suit.
func (c Card) Suit() Suit { return c.suit }

// Value returns the card's rank.
func (c Card) Value() Rank { return c.value }

// Image returns the URL of the card's face.
func (c Card) Image() string { return c.image }

// Valid reports whether c was produced by NewCard or ParseCode.
// The zero Card is not valid.
func (c Card) Valid() bool {
	return c.code != "" && c.image != "" && c.suit.Valid() && c.value.Valid()
}

// String returns the rank label followed by the suit symbol, e.g. "10♠".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return c.value.String() + c.suit.Symbol()
}

type cardJSON struct {
	Code  string `json:"code"`
	Suit  string `json:"suit"`
	Value string `json:"value"`
	Image string `json:"image"`
}

// MarshalJSON encodes the card in the dealing API's shape.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{
		Code:  c.code,
		Suit:  c.suit.String(),
		Value: c.value.String(),
		Image: c.image,
	})
}

// UnmarshalJSON decodes a card and runs it through NewCard.
func (c *Card) UnmarshalJSON(data []byte) error {
	var raw cardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewCard(raw.Code, raw.Suit, raw.Value, raw.Image)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
