package types

type AgentConfig struct {
	Episodes    int
	Horizon     int
	Policy      Policy
	Environment Environment
}

// RL Agent configured with the corresponding
// policy and environment
type Agent struct {
	config      *AgentConfig
	policy      Policy
	environment Environment
}

// Instantiates a new Agent
func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config:      config,
		policy:      config.Policy,
		environment: config.Environment,
	}
}

// run a single episode and return the resulting trace
// The trace collected so far is returned alongside the error when a step fails
func (a *Agent) RunEpisode(episode int) (*Trace, error) {
	state, err := a.environment.Reset()
	if err != nil {
		return nil, err
	}
	trace := NewTrace()

	for i := 0; i < a.config.Horizon; i++ {
		actions := state.Actions()
		if len(actions) == 0 {
			break
		}
		nextAction, ok := a.policy.NextAction(i, state, actions)
		if !ok {
			break
		}
		result, err := a.environment.Step(nextAction)
		if err != nil {
			return trace, err
		}
		a.policy.Update(i, state, nextAction, result.Reward, result.NextState)

		trace.Append(i, state, nextAction, result.Reward, result.NextState)
		state = result.NextState
		if result.Done {
			break
		}
	}
	a.policy.UpdateIteration(episode, trace)

	return trace, nil
}
