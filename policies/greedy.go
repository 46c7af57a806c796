package policies

import (
	"math/rand"
	"time"

	"github.com/zeu5/blackjack-rl-test/types"
)

// EpsilonGreedyPolicy is a Q learning policy that explores a random
// action with probability epsilon and follows the Q table otherwise
type EpsilonGreedyPolicy struct {
	qTable   *QTable
	alpha    float64
	discount float64
	epsilon  float64
	rand     *rand.Rand
}

var _ types.Policy = &EpsilonGreedyPolicy{}

func NewEpsilonGreedyPolicy(alpha, discount, epsilon float64) *EpsilonGreedyPolicy {
	return &EpsilonGreedyPolicy{
		qTable:   NewQTable(),
		alpha:    alpha,
		discount: discount,
		epsilon:  epsilon,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (e *EpsilonGreedyPolicy) Reset() {
	e.qTable = NewQTable()
}

func (e *EpsilonGreedyPolicy) NextAction(step int, state types.State, actions []types.Action) (types.Action, bool) {
	if e.rand.Float64() < e.epsilon {
		i := e.rand.Intn(len(actions))
		return actions[i], true
	}

	actionsMap := make(map[string]types.Action)
	availableActions := make([]string, len(actions))
	for i, a := range actions {
		aHash := a.Hash()
		actionsMap[aHash] = a
		availableActions[i] = aHash
	}
	maxAction, _ := e.qTable.MaxAmong(state.Hash(), availableActions, 0)
	if maxAction == "" {
		return nil, false
	}
	return actionsMap[maxAction], true
}

func (e *EpsilonGreedyPolicy) Update(step int, state types.State, action types.Action, reward float64, nextState types.State) {
	stateHash := state.Hash()
	actionHash := action.Hash()
	nextStateHash := nextState.Hash()

	nextStateVal := 0.0
	// terminal states have no actions, their value stays zero
	if len(nextState.Actions()) > 0 {
		_, nextStateVal = e.qTable.Max(nextStateHash, 0)
	}
	curVal := e.qTable.Get(stateHash, actionHash, 0)

	newVal := (1-e.alpha)*curVal + e.alpha*(reward+e.discount*nextStateVal)
	e.qTable.Set(stateHash, actionHash, newVal)
}

func (e *EpsilonGreedyPolicy) UpdateIteration(iteration int, trace *types.Trace) {

}
