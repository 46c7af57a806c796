package blackjack

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/blackjack-rl-test/types"
)

// scriptedDrawer deals a fixed sequence of cards
type scriptedDrawer struct {
	cards []Card
	next  int
}

var _ Drawer = &scriptedDrawer{}

func (s *scriptedDrawer) Draw(_ *rand.Rand) (Card, error) {
	if s.next >= len(s.cards) {
		return 0, ErrShoeEmpty
	}
	card := s.cards[s.next]
	s.next++
	return card, nil
}

func scriptedEnv(t *testing.T, cfg Config, cards ...Card) *Env {
	t.Helper()
	env := NewEnv(cfg)
	env.drawer = &scriptedDrawer{cards: cards}
	return env
}

func scriptedDoubleEnv(t *testing.T, cfg Config, cards ...Card) *Env {
	t.Helper()
	env := NewDoubleEnv(cfg)
	env.drawer = &scriptedDrawer{cards: cards}
	return env
}

func TestResetDealsDealerFirst(t *testing.T) {
	env := scriptedEnv(t, Config{}, 10, 6, 1, 10)
	state, err := env.Reset()
	require.NoError(t, err)

	assert.Equal(t, Hand{10, 6}, env.dealer)
	assert.Equal(t, Hand{1, 10}, env.player)

	obs := state.(*Observation)
	assert.Equal(t, 21, obs.PlayerTotal)
	assert.Equal(t, Card(10), obs.DealerUpcard)
	assert.True(t, obs.UsableAce)
	assert.Equal(t, "(21, 10, 1)", obs.Hash())
	assert.Len(t, obs.Actions(), 2)
}

func TestNaturalPaysOneAndAHalf(t *testing.T) {
	env := scriptedEnv(t, Config{Natural: true}, 10, 6, 1, 10, 2)
	_, err := env.Reset()
	require.NoError(t, err)

	result, err := env.Step(Stick)
	require.NoError(t, err)
	// dealer draws up to 18, the natural 21 wins with the bonus payout
	assert.Equal(t, 1.5, result.Reward)
	assert.True(t, result.Done)
	assert.Empty(t, result.NextState.Actions())
}

func TestNaturalWithoutFlagPaysOne(t *testing.T) {
	env := scriptedEnv(t, Config{}, 10, 6, 1, 10, 2)
	_, err := env.Reset()
	require.NoError(t, err)

	result, err := env.Step(Stick)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Reward)
}

func TestSabNaturalAutoWins(t *testing.T) {
	// dealer reaches a three card 21, the compare alone would be a draw
	env := scriptedEnv(t, Config{Sab: true}, 10, 5, 1, 10, 6)
	_, err := env.Reset()
	require.NoError(t, err)
	require.Equal(t, Hand{10, 5}, env.dealer)
	require.True(t, env.player.IsNatural())

	result, err := env.Step(Stick)
	require.NoError(t, err)
	assert.Equal(t, Hand{10, 5, 6}, env.dealer)
	assert.Equal(t, 1.0, result.Reward)
	assert.True(t, result.Done)
}

func TestSabDealerNaturalIsNotAutoWin(t *testing.T) {
	env := scriptedEnv(t, Config{Sab: true}, 1, 10, 1, 10)
	_, err := env.Reset()
	require.NoError(t, err)

	result, err := env.Step(Stick)
	require.NoError(t, err)
	// both naturals, a plain draw
	assert.Equal(t, 0.0, result.Reward)
}

func TestHitBust(t *testing.T) {
	env := scriptedEnv(t, Config{}, 2, 2, 10, 9, 5)
	_, err := env.Reset()
	require.NoError(t, err)
	require.Equal(t, Hand{10, 9}, env.player)

	result, err := env.Step(Hit)
	require.NoError(t, err)
	assert.Equal(t, -1.0, result.Reward)
	assert.True(t, result.Done)
	assert.Equal(t, 24, result.NextState.(*Observation).PlayerTotal)
}

func TestHitNoBust(t *testing.T) {
	env := scriptedEnv(t, Config{}, 2, 2, 10, 5, 5)
	_, err := env.Reset()
	require.NoError(t, err)

	result, err := env.Step(Hit)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Reward)
	assert.False(t, result.Done)
	assert.Equal(t, 20, result.NextState.(*Observation).PlayerTotal)
	assert.NotEmpty(t, result.NextState.Actions())
}

func TestDoubleWinPaysTwice(t *testing.T) {
	env := scriptedDoubleEnv(t, Config{}, 10, 7, 5, 6, 9)
	_, err := env.Reset()
	require.NoError(t, err)
	require.Equal(t, Hand{5, 6}, env.player)

	result, err := env.Step(Double)
	require.NoError(t, err)
	// hit to 20, dealer stands on 17, plain win doubled
	assert.Equal(t, 2.0, result.Reward)
	assert.True(t, result.Done)
}

func TestDoubleBustPaysMinusTwo(t *testing.T) {
	env := scriptedDoubleEnv(t, Config{}, 10, 7, 10, 9, 5)
	_, err := env.Reset()
	require.NoError(t, err)

	result, err := env.Step(Double)
	require.NoError(t, err)
	assert.Equal(t, -2.0, result.Reward)
	assert.True(t, result.Done)
}

func TestInvalidActionRejectedBeforeMutation(t *testing.T) {
	env := scriptedEnv(t, Config{}, 2, 2, 10, 5, 5)
	_, err := env.Reset()
	require.NoError(t, err)
	dealer := append(Hand{}, env.dealer...)
	player := append(Hand{}, env.player...)

	// the base environment has no double action
	_, err = env.Step(Double)
	assert.ErrorIs(t, err, ErrInvalidAction)
	_, err = env.Step(PlayAction(7))
	assert.ErrorIs(t, err, ErrInvalidAction)

	assert.Equal(t, dealer, env.dealer)
	assert.Equal(t, player, env.player)
	assert.False(t, env.done)

	// the episode is still playable
	_, err = env.Step(Hit)
	assert.NoError(t, err)
}

func TestStepAfterDone(t *testing.T) {
	env := scriptedEnv(t, Config{}, 10, 7, 10, 9)
	_, err := env.Reset()
	require.NoError(t, err)

	_, err = env.Step(Stick)
	require.NoError(t, err)
	_, err = env.Step(Hit)
	assert.ErrorIs(t, err, ErrEpisodeOver)
}

func TestActionsCount(t *testing.T) {
	assert.Equal(t, 2, NewEnv(Config{}).ActionsCount())
	assert.Equal(t, 3, NewDoubleEnv(Config{}).ActionsCount())
	assert.Equal(t, 3, NewCountingEnv(Config{NumDecks: 1, ReshuffleLimit: 5}).ActionsCount())
}

func TestStateEnumerationRoundTrip(t *testing.T) {
	env := NewEnv(Config{})
	require.Equal(t, 28*10*2, env.StatesCount())

	states := env.AllStates()
	assert.Equal(t, "(4, 1, 1)", states[0].Hash())
	for want, obs := range states {
		id, err := env.ObsID(obs)
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestCountingStateEnumeration(t *testing.T) {
	env := NewCountingEnv(Config{NumDecks: 1, ReshuffleLimit: 5})
	// base product times the half open count axis [-11, 11)
	require.Equal(t, 28*10*2*22, env.StatesCount())

	states := env.AllStates()
	assert.Equal(t, "(4, 1, 1, -11)", states[0].Hash())
	for want, obs := range states {
		id, err := env.ObsID(obs)
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestObsIDOutsideDomain(t *testing.T) {
	env := NewEnv(Config{})
	_, err := env.ObsID(&Observation{PlayerTotal: 3, DealerUpcard: 1})
	assert.ErrorIs(t, err, ErrUnknownObservation)

	counting := NewCountingEnv(Config{NumDecks: 1, ReshuffleLimit: 5})
	// the count axis is half open, 11 is out of range for a single deck
	_, err = counting.ObsID(&Observation{PlayerTotal: 4, DealerUpcard: 1, UsableAce: true, Count: 11, withCount: true})
	assert.ErrorIs(t, err, ErrUnknownObservation)
}

func TestLiveObservationsAreEnumerated(t *testing.T) {
	env := NewCountingEnv(Config{NumDecks: 4, ReshuffleLimit: 52})
	env.Seed(42)
	for episode := 0; episode < 50; episode++ {
		state, err := env.Reset()
		require.NoError(t, err)
		for {
			obs := state.(*Observation)
			id, err := env.ObsID(obs)
			require.NoError(t, err)
			assert.Equal(t, obs.Hash(), env.AllStates()[id].Hash())

			if obs.PlayerTotal >= 17 {
				break
			}
			result, err := env.Step(Hit)
			require.NoError(t, err)
			if result.Done {
				break
			}
			state = result.NextState
		}
	}
}

func TestSeedDeterminism(t *testing.T) {
	assert.Equal(t, int64(99), NewEnv(Config{}).Seed(99))
	assert.NotEqual(t, int64(0), NewEnv(Config{}).Seed(0))

	a := NewEnv(Config{})
	b := NewEnv(Config{})
	a.Seed(99)
	b.Seed(99)
	for episode := 0; episode < 20; episode++ {
		sa, err := a.Reset()
		require.NoError(t, err)
		sb, err := b.Reset()
		require.NoError(t, err)
		assert.Equal(t, sa.Hash(), sb.Hash())

		ra, err := a.Step(Stick)
		require.NoError(t, err)
		rb, err := b.Step(Stick)
		require.NoError(t, err)
		assert.Equal(t, ra.Reward, rb.Reward)
		assert.Equal(t, ra.NextState.Hash(), rb.NextState.Hash())
	}
}

func TestCountingObservationTracksShoe(t *testing.T) {
	env := NewCountingEnv(Config{NumDecks: 1, ReshuffleLimit: 13})
	env.Seed(7)
	state, err := env.Reset()
	require.NoError(t, err)

	// four cards dealt out of a single deck shoe
	assert.Equal(t, 9, env.shoe.Remaining())
	obs := state.(*Observation)
	assert.Equal(t, env.shoe.Count(), obs.Count)

	// below the limit already, but no reshuffle happens mid episode
	result, err := env.Step(Hit)
	require.NoError(t, err)
	assert.Equal(t, 8, env.shoe.Remaining())
	assert.Equal(t, env.shoe.Count(), result.NextState.(*Observation).Count)
}

func TestCountingReshuffleAtReset(t *testing.T) {
	env := NewCountingEnv(Config{NumDecks: 1, ReshuffleLimit: 13})
	env.Seed(7)
	_, err := env.Reset()
	require.NoError(t, err)
	require.Equal(t, 9, env.shoe.Remaining())

	// the shoe is below the limit, the next reset reshuffles before dealing
	state, err := env.Reset()
	require.NoError(t, err)
	assert.Equal(t, 9, env.shoe.Remaining())

	drawn := append(append(Hand{}, env.dealer...), env.player...)
	wantCount := 0
	for _, c := range drawn {
		wantCount += countingWeights[c]
	}
	assert.Equal(t, wantCount, env.shoe.Count())
	assert.Equal(t, wantCount, state.(*Observation).Count)
}

func TestEnvImplementsInterfaces(t *testing.T) {
	var env types.EnumerableEnvironment = NewDoubleEnv(Config{})
	assert.Equal(t, 3, env.ActionsCount())
}
