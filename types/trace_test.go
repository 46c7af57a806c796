package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace(t *testing.T) {
	trace := NewTrace()
	assert.Equal(t, 0, trace.Len())
	_, _, _, _, ok := trace.Last()
	assert.False(t, ok)

	first := &chainState{pos: 0}
	second := &chainState{pos: 1}
	trace.Append(0, first, chainAction("advance"), 0.5, second)
	trace.Append(1, second, chainAction("advance"), -1, &chainState{terminal: true})

	assert.Equal(t, 2, trace.Len())
	assert.Equal(t, -0.5, trace.TotalReward())

	state, action, reward, nextState, ok := trace.Get(0)
	require.True(t, ok)
	assert.Equal(t, first, state)
	assert.Equal(t, "advance", action.Hash())
	assert.Equal(t, 0.5, reward)
	assert.Equal(t, second, nextState)

	_, _, _, _, ok = trace.Get(5)
	assert.False(t, ok)
}

func TestTraceMarshalJSON(t *testing.T) {
	trace := NewTrace()
	trace.Append(0, &chainState{pos: 0}, chainAction("advance"), 1, &chainState{terminal: true})

	bs, err := json.Marshal(trace)
	require.NoError(t, err)

	var steps []map[string]interface{}
	require.NoError(t, json.Unmarshal(bs, &steps))
	require.Len(t, steps, 1)
	assert.Equal(t, "state-a", steps[0]["state"])
	assert.Equal(t, "advance", steps[0]["action"])
	assert.Equal(t, 1.0, steps[0]["reward"])
	assert.Equal(t, "end", steps[0]["next_state"])
}
