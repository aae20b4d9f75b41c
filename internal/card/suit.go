package card

import (
	"fmt"
	"strings"
)

// Suit is one of the four card suits. The zero Suit is invalid.
type Suit uint8

const (
	Spades Suit = iota + 1
	Hearts
	Diamonds
	Clubs
)

// AllSuits lists the suits in the order the dealing API uses.
var AllSuits = []Suit{Spades, Hearts, Diamonds, Clubs}

func (s Suit) Valid() bool {
	return s >= Spades && s <= Clubs
}

// String returns the suit name as the dealing API spells it.
func (s Suit) String() string {
	switch s {
	case Spades:
		return "SPADES"
	case Hearts:
		return "HEARTS"
	case Diamonds:
		return "DIAMONDS"
	case Clubs:
		return "CLUBS"
	}
	return fmt.Sprintf("Suit(%d)", uint8(s))
}

// Symbol returns the unicode pip for the suit.
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	}
	return "•"
}

// Red reports whether the suit is printed in red.
func (s Suit) Red() bool {
	return s == Hearts || s == Diamonds
}

func (s Suit) letter() string {
	if !s.Valid() {
		return "?"
	}
	return s.String()[:1]
}

// ParseSuit accepts names ("HEARTS", "hearts"), single letters ("H") and
// symbols ("♥").
func ParseSuit(s string) (Suit, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SPADES", "S", "♠":
		return Spades, nil
	case "HEARTS", "H", "♥":
		return Hearts, nil
	case "DIAMONDS", "D", "♦":
		return Diamonds, nil
	case "CLUBS", "C", "♣":
		return Clubs, nil
	}
	return 0, fmt.Errorf("unknown suit %q", s)
}
