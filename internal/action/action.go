// Package action turns command-line arguments into a typed Action.
package action

import "github.com/divijg19/todo/internal/core"

// Action is the result of parsing one invocation.
// The set of implementations is closed: Help, List, Add, Done and Drop.
type Action interface {
	isAction()
}

// Help asks for the usage text.
type Help struct{}

// List selects tasks whose state matches Filter. core.StateAll matches every task.
type List struct {
	Filter core.State
}

// Add creates a pending task with Description taken verbatim.
type Add struct {
	Description string
}

// Done marks the task with ID as done.
type Done struct {
	ID uint32
}

// Drop marks the task with ID as dropped.
type Drop struct {
	ID uint32
}

func (Help) isAction() {}
func (List) isAction() {}
func (Add) isAction() {}
func (Done) isAction() {}
func (Drop) isAction() {}
