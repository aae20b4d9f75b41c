// Package hand classifies five-card poker hands.
//
// A Hand holds exactly five validated cards. Every predicate is a pure
// function of that fixed set, so the order the cards are displayed in never
// changes the result. HighestHand tests the categories from the rarest down
// and reports the first that holds. SortByRank is the only method that
// writes, so a Hand must not be sorted while another goroutine reads it.
package hand

import (
	"errors"
	"fmt"
	"slices"

	"github.com/arcanaland/pokerhand/internal/card"
)

// Size is the only hand size the classifier is defined for.
const Size = 5

// ErrHandSize is returned when a hand is built from anything but five cards.
var ErrHandSize = errors.New("a hand must hold exactly 5 cards")

// Hand is a five-card poker hand. Build one with New or FromCodes; the zero
// Hand holds no cards and every predicate reports false for it.
type Hand struct {
	cards []card.Card
}

// New validates the cards and returns a Hand that owns a copy of them.
func New(cards ...card.Card) (*Hand, error) {
	if len(cards) != Size {
		return nil, fmt.Errorf("%w: got %d", ErrHandSize, len(cards))
	}
	for i, c := range cards {
		if !c.Valid() {
			return nil, fmt.Errorf("card %d: %w", i, card.ErrInvalidCard)
		}
	}
	return &Hand{cards: slices.Clone(cards)}, nil
}

// FromCodes builds a Hand from short card codes such as "AS" or "0H".
func FromCodes(codes ...string) (*Hand, error) {
	cards := make([]card.Card, 0, len(codes))
	for _, code := range codes {
		c, err := card.ParseCode(code)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return New(cards...)
}

// Cards returns the cards in their current order.
func (h *Hand) Cards() []card.Card {
	return slices.Clone(h.cards)
}

// CountByRank maps every rank present in the hand to how many cards hold it.
func (h *Hand) CountByRank() map[card.Rank]int {
	counts := make(map[card.Rank]int, Size)
	for _, c := range h.cards {
		counts[c.Value()]++
	}
	return counts
}

// SortedByRank returns a copy of the cards ordered low to high by their
// position in card.RankOrder(aceHigh). Cards of equal rank keep their order.
func (h *Hand) SortedByRank(aceHigh bool) []card.Card {
	sorted := slices.Clone(h.cards)
	slices.SortStableFunc(sorted, func(a, b card.Card) int {
		return a.Value().Index(aceHigh) - b.Value().Index(aceHigh)
	})
	return sorted
}

// SortByRank reorders the hand itself and returns a copy of the new order.
// It is not safe to call while the hand is being classified elsewhere.
func (h *Hand) SortByRank(aceHigh bool) []card.Card {
	h.cards = h.SortedByRank(aceHigh)
	return h.Cards()
}

// IsFlush reports whether every card shares the suit of the first.
func (h *Hand) IsFlush() bool {
	if len(h.cards) != Size {
		return false
	}
	suit := h.cards[0].Suit()
	for _, c := range h.cards[1:] {
		if c.Suit() != suit {
			return false
		}
	}
	return true
}

// IsStraight reports whether the ranks occupy five consecutive positions
// under either the ace-high or the ace-low ordering. Only those two orders are
// tried, so K-A-2-3-4 does not wrap around. A repeated rank always fails.
func (h *Hand) IsStraight() bool {
	return h.consecutive(true) || h.consecutive(false)
}

func (h *Hand) consecutive(aceHigh bool) bool {
	if len(h.cards) != Size {
		return false
	}
	sorted := h.SortedByRank(aceHigh)
	offset := sorted[0].Value().Index(aceHigh)
	for i, c := range sorted {
		if c.Value().Index(aceHigh) != offset+i {
			return false
		}
	}
	return true
}

// IsRoyalFlush reports a flush holding each of 10, J, Q, K and A.
func (h *Hand) IsRoyalFlush() bool {
	if !h.IsFlush() {
		return false
	}
	counts := h.CountByRank()
	order := card.RankOrder(true)
	for _, r := range order[len(order)-Size:] {
		if counts[r] == 0 {
			return false
		}
	}
	return true
}

// IsStraightFlush reports five consecutive ranks in one suit.
func (h *Hand) IsStraightFlush() bool {
	return h.IsFlush() && h.IsStraight()
}

// IsOfAKind reports whether some rank appears exactly count times.
func (h *Hand) IsOfAKind(count int) bool {
	for _, n := range h.CountByRank() {
		if n == count {
			return true
		}
	}
	return false
}

// IsFullHouse reports three of one rank and two of another.
func (h *Hand) IsFullHouse() bool {
	return h.IsOfAKind(3) && h.IsOfAKind(2)
}

// IsTwoPair reports whether exactly two ranks appear twice each.
func (h *Hand) IsTwoPair() bool {
	pairs := 0
	for _, n := range h.CountByRank() {
		if n == 2 {
			pairs++
		}
	}
	return pairs == 2
}

// IsOnePair also holds for two pair and full house hands.
func (h *Hand) IsOnePair() bool {
	return h.IsOfAKind(2)
}

// HighestHand returns the strongest category the hand satisfies.
func (h *Hand) HighestHand() Ranking {
	switch {
	case h.IsRoyalFlush():
		return RoyalFlush
	case h.IsStraightFlush():
		return StraightFlush
	case h.IsOfAKind(4):
		return FourOfAKind
	case h.IsFullHouse():
		return FullHouse
	case h.IsFlush():
		return Flush
	case h.IsStraight():
		return Straight
	case h.IsOfAKind(3):
		return ThreeOfAKind
	case h.IsTwoPair():
		return TwoPair
	case h.IsOnePair():
		return OnePair
	}
	return HighCard
}

// String lists the cards, e.g. "10♠ J♠ Q♠ K♠ A♠".
func (h *Hand) String() string {
	s := ""
	for i, c := range h.cards {
		if i > 0 {
			s += " "
		}
		s += c.String()
	}
	return s
}
