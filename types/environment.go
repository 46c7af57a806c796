package types

// Environment that the RL agent interacts with
type Environment interface {
	// Reset called at the start of each episode
	Reset() (State, error)
	// Step advances the environment by one action
	Step(Action) (*StepResult, error)
}

// StepResult is the outcome of a single step of the environment
type StepResult struct {
	// NextState observed after taking the action
	NextState State
	// Reward obtained for the transition
	Reward float64
	// Done is set when the episode reached a terminal state
	Done bool
	// Info carries auxiliary diagnostics, may be empty
	Info map[string]string
}

// State of the system that RL policies observe
type State interface {
	// Indexed by the Hash
	// Should be deterministic
	Hash() string
	// Actions possible from the state
	// Empty for terminal states
	Actions() []Action
}

// An Action that RL policy can take
type Action interface {
	// Index of the action
	// Should be deterministic
	Hash() string
}

// EnumerableEnvironment is an environment with a finite, countable
// state and action space. Tabular policies use the counts for sizing.
type EnumerableEnvironment interface {
	Environment
	StatesCount() int
	ActionsCount() int
}
