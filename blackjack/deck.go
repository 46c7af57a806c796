package blackjack

import (
	"errors"
	"math/rand"
)

// Suit-collapsed composition of one standard deck.
// The ten is four times as likely, it covers ten, jack, queen and king.
var deckComposition = []Card{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 10, 10, 10}

// Halves card counting weights per card value.
// The weights of a full deck sum to zero.
var countingWeights = map[Card]int{
	1:  -2,
	2:  1,
	3:  2,
	4:  2,
	5:  3,
	6:  2,
	7:  1,
	8:  0,
	9:  -1,
	10: -2,
}

// ErrShoeEmpty signals a draw from a depleted shoe. The reshuffle
// limit is too low for the draws a single episode can make.
var ErrShoeEmpty = errors.New("shoe is empty: reshuffle limit too low")

// Drawer produces the next card of an episode
type Drawer interface {
	Draw(rng *rand.Rand) (Card, error)
}

// InfiniteDeck draws with replacement from the fixed 13 value population
type InfiniteDeck struct{}

var _ Drawer = InfiniteDeck{}

func (InfiniteDeck) Draw(rng *rand.Rand) (Card, error) {
	return deckComposition[rng.Intn(len(deckComposition))], nil
}

// Shoe is the depleting pool of cards across numDecks standard decks.
// Every removal keeps the running count in sync with the cards that
// physically left the shoe.
type Shoe struct {
	cards          []Card
	count          int
	numDecks       int
	reshuffleLimit int
}

var _ Drawer = &Shoe{}

func NewShoe(numDecks, reshuffleLimit int) *Shoe {
	s := &Shoe{
		numDecks:       numDecks,
		reshuffleLimit: reshuffleLimit,
	}
	s.Reshuffle()
	return s
}

// Draw removes a uniformly random remaining card by position
// and adds its counting weight to the running count
func (s *Shoe) Draw(rng *rand.Rand) (Card, error) {
	if len(s.cards) == 0 {
		return 0, ErrShoeEmpty
	}
	i := rng.Intn(len(s.cards))
	card := s.cards[i]
	s.cards = append(s.cards[:i], s.cards[i+1:]...)
	s.count += countingWeights[card]
	return card, nil
}

// Reshuffle replaces the shoe with fresh decks and zeroes the running count
func (s *Shoe) Reshuffle() {
	s.cards = make([]Card, 0, len(deckComposition)*s.numDecks)
	for i := 0; i < s.numDecks; i++ {
		s.cards = append(s.cards, deckComposition...)
	}
	s.count = 0
}

// NeedsReshuffle holds when the shoe dropped below the reshuffle limit.
// Checked at reset time only, never in the middle of an episode.
func (s *Shoe) NeedsReshuffle() bool {
	return len(s.cards) < s.reshuffleLimit
}

// Remaining number of cards in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Count is the current running count
func (s *Shoe) Count() int {
	return s.count
}
