package blackjack

import "golang.org/x/exp/slices"

// Card value. 1 is an ace, 10 stands for ten, jack, queen and king.
type Card int

// Hand of cards held by the player or the dealer, in deal order
type Hand []Card

func (h Hand) Sum() int {
	sum := 0
	for _, c := range h {
		sum += int(c)
	}
	return sum
}

// UsableAce reports whether the hand holds an ace that can
// count as 11 without busting
func (h Hand) UsableAce() bool {
	return slices.Contains(h, Card(1)) && h.Sum()+10 <= 21
}

// Total of the hand, counting a usable ace as 11
func (h Hand) Total() int {
	if h.UsableAce() {
		return h.Sum() + 10
	}
	return h.Sum()
}

func (h Hand) IsBust() bool {
	return h.Total() > 21
}

// Score of the hand, 0 when bust
func (h Hand) Score() int {
	if h.IsBust() {
		return 0
	}
	return h.Total()
}

// IsNatural reports whether the hand is a two card 21,
// an ace with a ten valued card
func (h Hand) IsNatural() bool {
	if len(h) != 2 {
		return false
	}
	sorted := slices.Clone(h)
	slices.Sort(sorted)
	return sorted[0] == 1 && sorted[1] == 10
}

// Cmp returns the sign of a-b as a reward value
func Cmp(a, b int) float64 {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}
