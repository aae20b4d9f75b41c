package card

import (
	"fmt"
	"strings"
)

// Rank is the face value of a card. The zero Rank is invalid.
type Rank uint8

const (
	Two Rank = iota + 1
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankLabels = [...]string{
	Two:   "2",
	Three: "3",
	Four:  "4",
	Five:  "5",
	Six:   "6",
	Seven: "7",
	Eight: "8",
	Nine:  "9",
	Ten:   "10",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

// Valid reports whether r belongs to the 13-label vocabulary.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// String returns the rank label (2-10, J, Q, K, A).
func (r Rank) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rank(%d)", uint8(r))
	}
	return rankLabels[r]
}

// codeChar is the single character used for the rank in a card code.
// Ten is "0" so every code is two characters long.
func (r Rank) codeChar() string {
	if r == Ten {
		return "0"
	}
	return r.String()
}

// Index returns the position of r within RankOrder(aceHigh).
func (r Rank) Index(aceHigh bool) int {
	if aceHigh {
		return int(r - Two)
	}
	if r == Ace {
		return 0
	}
	return int(r - Two + 1)
}

// RankOrder returns the 13 ranks from low to high. With aceHigh the ace sits
// after the king, otherwise before the two. Each call returns a new slice.
func RankOrder(aceHigh bool) []Rank {
	order := make([]Rank, 0, 13)
	if !aceHigh {
		order = append(order, Ace)
	}
	for r := Two; r <= King; r++ {
		order = append(order, r)
	}
	if aceHigh {
		order = append(order, Ace)
	}
	return order
}

// ParseRank accepts the short labels as well as the long names the dealing
// API uses ("JACK", "QUEEN", "KING", "ACE"). Matching is case-insensitive.
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "2":
		return Two, nil
	case "3":
		return Three, nil
	case "4":
		return Four, nil
	case "5":
		return Five, nil
	case "6":
		return Six, nil
	case "7":
		return Seven, nil
	case "8":
		return Eight, nil
	case "9":
		return Nine, nil
	case "10":
		return Ten, nil
	case "J", "JACK":
		return Jack, nil
	case "Q", "QUEEN":
		return Queen, nil
	case "K", "KING":
		return King, nil
	case "A", "ACE":
		return Ace, nil
	}
	return 0, fmt.Errorf("unknown rank %q", s)
}
