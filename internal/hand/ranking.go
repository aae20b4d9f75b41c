package hand

import "fmt"

// Ranking is a poker hand category. Higher values are stronger hands.
type Ranking uint8

const (
	HighCard Ranking = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var rankingLabels = map[Ranking]string{
	RoyalFlush:    "Royal Flush",
	StraightFlush: "Straight Flush",
	FourOfAKind:   "Four of a Kind",
	FullHouse:     "Full House",
	Flush:         "Flush",
	Straight:      "Straight",
	ThreeOfAKind:  "Three of a Kind",
	TwoPair:       "Two Pair",
	OnePair:       "One Pair",
	HighCard:      "High Card",
}

// Rankings lists every category from highest to lowest.
func Rankings() []Ranking {
	return []Ranking{
		RoyalFlush,
		StraightFlush,
		FourOfAKind,
		FullHouse,
		Flush,
		Straight,
		ThreeOfAKind,
		TwoPair,
		OnePair,
		HighCard,
	}
}

func (r Ranking) String() string {
	if label, ok := rankingLabels[r]; ok {
		return label
	}
	return fmt.Sprintf("Ranking(%d)", uint8(r))
}

func (r Ranking) MarshalText() ([]byte, error) {
	if _, ok := rankingLabels[r]; !ok {
		return nil, fmt.Errorf("unknown ranking %d", uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *Ranking) UnmarshalText(text []byte) error {
	for k, label := range rankingLabels {
		if label == string(text) {
			*r = k
			return nil
		}
	}
	return fmt.Errorf("unknown ranking %q", text)
}
