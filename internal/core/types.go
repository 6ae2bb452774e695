package core

import "fmt"

// State represents the lifecycle state of a task.
// The numeric values are persisted and must not change.
type State int

const (
	// StateAll is a list filter only; it is never stored on a task.
	StateAll     State = 0
	StatePending State = 1
	StateDone    State = 2
	StateDropped State = 3
)

// Stored reports whether s is a state a task row can hold.
func (s State) Stored() bool {
	switch s {
	case StatePending, StateDone, StateDropped:
		return true
	}
	return false
}

func (s State) String() string {
	switch s {
	case StateAll:
		return "all"
	case StatePending:
		return "todo"
	case StateDone:
		return "done"
	case StateDropped:
		return "dropped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Task is one tracked item.
type Task struct {
	ID          uint32 `db:"id"`
	Description string `db:"task"`
	State       State  `db:"state"`
}

// Line renders the task as "<id> <description>".
func (t Task) Line() string {
	return fmt.Sprintf("%d %s", t.ID, t.Description)
}
