package blackjack

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/zeu5/blackjack-rl-test/types"
)

var (
	// ErrInvalidAction signals an action outside the declared action space
	ErrInvalidAction = errors.New("action not in the action space")
	// ErrEpisodeOver signals a step on a finished episode
	ErrEpisodeOver = errors.New("episode is over, call Reset")
	// ErrUnknownObservation signals a lookup outside the enumerated state space
	ErrUnknownObservation = errors.New("observation outside the state space")
)

// PlayAction is a move available to the player
type PlayAction int

const (
	Stick PlayAction = iota
	Hit
	Double
)

var _ types.Action = Stick

func (a PlayAction) String() string {
	switch a {
	case Stick:
		return "Stick"
	case Hit:
		return "Hit"
	case Double:
		return "Double"
	}
	return fmt.Sprintf("PlayAction(%d)", int(a))
}

func (a PlayAction) Hash() string {
	return a.String()
}

// Observation of the table after a reset or a step.
// The dealer hand shows only its first card.
type Observation struct {
	PlayerTotal  int
	DealerUpcard Card
	UsableAce    bool
	// Count is the running count, present in the counting variant only
	Count int

	withCount bool
	actions   []types.Action
}

var _ types.State = &Observation{}

func (o *Observation) Hash() string {
	ace := 0
	if o.UsableAce {
		ace = 1
	}
	if o.withCount {
		return fmt.Sprintf("(%d, %d, %d, %d)", o.PlayerTotal, o.DealerUpcard, ace, o.Count)
	}
	return fmt.Sprintf("(%d, %d, %d)", o.PlayerTotal, o.DealerUpcard, ace)
}

// Actions available to the player, empty once the episode is over
func (o *Observation) Actions() []types.Action {
	return o.actions
}

// Config of a blackjack environment
type Config struct {
	// Natural pays 1.5 on a natural blackjack win, like casino rules
	Natural bool
	// Sab makes a player natural an automatic win against a non natural
	// dealer, following the Sutton and Barto definition. Overrides Natural.
	Sab bool
	// NumDecks in the shoe, counting variant only
	NumDecks int
	// ReshuffleLimit is the shoe size below which a reset reshuffles,
	// counting variant only
	ReshuffleLimit int
}

// Env simulates a game of blackjack against a fixed dealer.
// The three variants share the same turn protocol and differ in the
// action set and the draw strategy.
type Env struct {
	cfg     Config
	actions []types.Action
	drawer  Drawer
	// shoe is the drawer of the counting variant, nil otherwise
	shoe *Shoe
	rng  *rand.Rand

	dealer Hand
	player Hand
	done   bool

	allStates []*Observation
	stateIDs  map[string]int
}

var _ types.Environment = &Env{}
var _ types.EnumerableEnvironment = &Env{}

// NewEnv creates the two action (stick, hit) environment
// drawing from an infinite deck
func NewEnv(cfg Config) *Env {
	return newEnv(cfg, []types.Action{Stick, Hit}, InfiniteDeck{}, nil)
}

// NewDoubleEnv creates the three action (stick, hit, double) environment
// drawing from an infinite deck
func NewDoubleEnv(cfg Config) *Env {
	return newEnv(cfg, []types.Action{Stick, Hit, Double}, InfiniteDeck{}, nil)
}

// NewCountingEnv creates the three action environment drawing from a
// depleting shoe of cfg.NumDecks decks. The observation carries the
// running count.
func NewCountingEnv(cfg Config) *Env {
	if cfg.NumDecks == 0 {
		cfg.NumDecks = 4
	}
	if cfg.ReshuffleLimit == 0 {
		cfg.ReshuffleLimit = 15
	}
	shoe := NewShoe(cfg.NumDecks, cfg.ReshuffleLimit)
	return newEnv(cfg, []types.Action{Stick, Hit, Double}, shoe, shoe)
}

func newEnv(cfg Config, actions []types.Action, drawer Drawer, shoe *Shoe) *Env {
	e := &Env{
		cfg:     cfg,
		actions: actions,
		drawer:  drawer,
		shoe:    shoe,
	}
	e.Seed(0)
	e.enumerateStates()
	return e
}

// enumerateStates builds the bijection between every reachable
// observation and a dense id, in ascending product order over the axes
func (e *Env) enumerateStates() {
	counts := []int{0}
	if e.shoe != nil {
		countingMax := 11 * e.cfg.NumDecks
		counts = make([]int, 0, 2*countingMax)
		for c := -countingMax; c < countingMax; c++ {
			counts = append(counts, c)
		}
	}

	e.allStates = make([]*Observation, 0)
	e.stateIDs = make(map[string]int)
	for total := 4; total <= 31; total++ {
		for upcard := 1; upcard <= 10; upcard++ {
			for _, ace := range []bool{true, false} {
				for _, count := range counts {
					obs := &Observation{
						PlayerTotal:  total,
						DealerUpcard: Card(upcard),
						UsableAce:    ace,
						Count:        count,
						withCount:    e.shoe != nil,
					}
					e.stateIDs[obs.Hash()] = len(e.allStates)
					e.allStates = append(e.allStates, obs)
				}
			}
		}
	}
}

// Seed reseeds the internal random source and returns the effective
// seed. A zero seed picks one from the wall clock. Reseeding does not
// touch the hands or the shoe.
func (e *Env) Seed(seed int64) int64 {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e.rng = rand.New(rand.NewSource(seed))
	return seed
}

// Reset starts a new episode, dealing two cards each to the dealer and
// the player, dealer first. The counting variant reshuffles beforehand
// when the shoe dropped below the reshuffle limit.
func (e *Env) Reset() (types.State, error) {
	if e.shoe != nil && e.shoe.NeedsReshuffle() {
		e.shoe.Reshuffle()
	}
	dealer, err := e.drawHand()
	if err != nil {
		return nil, err
	}
	player, err := e.drawHand()
	if err != nil {
		return nil, err
	}
	e.dealer = dealer
	e.player = player
	e.done = false
	return e.observation(), nil
}

// Step advances the episode by one player action
func (e *Env) Step(action types.Action) (*types.StepResult, error) {
	play, ok := action.(PlayAction)
	if !ok || int(play) < 0 || int(play) >= len(e.actions) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAction, action)
	}
	if e.done {
		return nil, ErrEpisodeOver
	}

	var out outcome
	var err error
	switch play {
	case Hit:
		out, err = e.performHit()
	case Stick:
		out, err = e.performStick()
	case Double:
		// hit, then stick unless the hit already busted,
		// and double the final resolved reward
		out, err = e.performHit()
		if err == nil && !out.done {
			out, err = e.performStick()
		}
		out.reward *= 2
		out.done = true
	}
	if err != nil {
		return nil, err
	}
	e.done = out.done

	return &types.StepResult{
		NextState: e.observation(),
		Reward:    out.reward,
		Done:      out.done,
		Info:      map[string]string{},
	}, nil
}

// outcome of a resolved sub action
type outcome struct {
	reward float64
	done   bool
}

func (e *Env) performHit() (outcome, error) {
	card, err := e.draw()
	if err != nil {
		return outcome{}, err
	}
	e.player = append(e.player, card)
	if e.player.IsBust() {
		return outcome{reward: -1, done: true}, nil
	}
	return outcome{}, nil
}

func (e *Env) performStick() (outcome, error) {
	for e.dealer.Total() < 17 {
		card, err := e.draw()
		if err != nil {
			return outcome{}, err
		}
		e.dealer = append(e.dealer, card)
	}
	reward := Cmp(e.player.Score(), e.dealer.Score())
	switch {
	case e.cfg.Sab && e.player.IsNatural() && !e.dealer.IsNatural():
		// a player natural always beats a non natural dealer
		reward = 1.0
	case !e.cfg.Sab && e.cfg.Natural && e.player.IsNatural() && reward == 1.0:
		// casino payout for a natural win, no auto win
		reward = 1.5
	}
	return outcome{reward: reward, done: true}, nil
}

func (e *Env) draw() (Card, error) {
	return e.drawer.Draw(e.rng)
}

func (e *Env) drawHand() (Hand, error) {
	first, err := e.draw()
	if err != nil {
		return nil, err
	}
	second, err := e.draw()
	if err != nil {
		return nil, err
	}
	return Hand{first, second}, nil
}

func (e *Env) observation() *Observation {
	obs := &Observation{
		PlayerTotal:  e.player.Total(),
		DealerUpcard: e.dealer[0],
		UsableAce:    e.player.UsableAce(),
		withCount:    e.shoe != nil,
	}
	if e.shoe != nil {
		obs.Count = e.shoe.Count()
	}
	if !e.done {
		obs.actions = e.actions
	}
	return obs
}

// AllStates lists the enumerated observation domain in a fixed
// deterministic order
func (e *Env) AllStates() []*Observation {
	return e.allStates
}

// ObsID returns the dense index of the observation within AllStates
func (e *Env) ObsID(obs *Observation) (int, error) {
	id, ok := e.stateIDs[obs.Hash()]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownObservation, obs.Hash())
	}
	return id, nil
}

func (e *Env) StatesCount() int {
	return len(e.allStates)
}

func (e *Env) ActionsCount() int {
	return len(e.actions)
}
