package installer

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-fsm/v2"
)

// State is a step of an installation.
type State string

const (
	StateSelectServer   State = "select-server"
	StateCollectArgs    State = "collect-args"
	StateCollectEnvVars State = "collect-env-vars"
	StateValidate       State = "validate"
	StateConfirm        State = "confirm"
	StateResolveScope   State = "resolve-scope"
	StatePersist        State = "persist"

	// StateDone means the server was installed.
	StateDone State = "done"

	// StateCancelled means the user declined to continue and nothing was persisted.
	StateCancelled State = "cancelled"

	// StateFailed means the installation stopped with an error and nothing was persisted.
	StateFailed State = "failed"
)

// Transitions lists the states reachable from each state.
// Terminal states map to an empty list.
var Transitions = map[string][]string{
	string(StateSelectServer):   {string(StateCollectArgs), string(StateFailed)},
	string(StateCollectArgs):    {string(StateCollectEnvVars), string(StateCancelled), string(StateFailed)},
	string(StateCollectEnvVars): {string(StateValidate), string(StateCancelled), string(StateFailed)},
	string(StateValidate):       {string(StateConfirm), string(StateFailed)},
	string(StateConfirm):        {string(StateResolveScope), string(StateCancelled), string(StateFailed)},
	string(StateResolveScope):   {string(StatePersist), string(StateFailed)},
	string(StatePersist):        {string(StateDone), string(StateFailed)},
	string(StateDone):           {},
	string(StateCancelled):      {},
	string(StateFailed):         {},
}

// String implements fmt.Stringer.
func (s State) String() string {
	return string(s)
}

// Terminal returns true when no further transitions are possible from s.
func (s State) Terminal() bool {
	return len(Transitions[string(s)]) == 0
}

// newMachine creates the state machine for a single installation, starting at StateSelectServer.
func newMachine(handler slog.Handler) (*fsm.Machine, error) {
	machine, err := fsm.NewSimple(string(StateSelectServer), Transitions, fsm.WithLogHandler(handler))
	if err != nil {
		return nil, fmt.Errorf("failed to create installation state machine: %w", err)
	}
	return machine, nil
}
