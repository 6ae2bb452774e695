// Package gateway executes parsed actions against the task store.
package gateway

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/divijg19/todo/internal/action"
	"github.com/divijg19/todo/internal/core"
)

// Usage is the text returned for action.Help.
const Usage = `Options
    help: print this message
    list [all|todo|done|drop]: list tasks, todo by default
    show: same as list
    add "Task": add the task
    done [task number]: set the task to done state
    drop [task number]: set the task to dropped state
`

// TaskStore is the persistence the gateway needs. *storage.Store implements it.
type TaskStore interface {
	ListTasks() ([]core.Task, error)
	ListTasksByState(state core.State) ([]core.Task, error)
	CreateTask(description string) (uint32, error)
	SetTaskState(id uint32, state core.State) error
}

// Result is the outcome of one action. Usage is set for Help, Tasks for List.
type Result struct {
	Usage string
	Tasks []core.Task
}

// Gateway maps each action to exactly one store operation.
type Gateway struct {
	store  TaskStore
	logger *slog.Logger
}

// New returns a Gateway over store. A nil logger discards diagnostics.
func New(store TaskStore, logger *slog.Logger) (*Gateway, error) {
	if store == nil {
		return nil, fmt.Errorf("gateway: store is nil")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gateway{store: store, logger: logger}, nil
}

// Execute runs a. Store failures are returned as *core.Error values of kind
// ErrStoreUnavailable, ErrUnableToAddTask or ErrInvalidTaskNumber; the driver
// error is kept as the cause but never rendered.
//
// Help touches no store. cmd/todo answers it from Usage directly so that help
// works even when the database cannot be opened.
func (g *Gateway) Execute(a action.Action) (Result, error) {
	switch a := a.(type) {
	case action.Help:
		return Result{Usage: Usage}, nil

	case action.List:
		tasks, err := g.list(a.Filter)
		if err != nil {
			g.logger.Debug("list tasks failed", "filter", a.Filter.String(), "error", err)
			return Result{}, core.Fail(core.ErrStoreUnavailable, "", err)
		}
		g.logger.Debug("listed tasks", "filter", a.Filter.String(), "count", len(tasks))
		return Result{Tasks: tasks}, nil

	case action.Add:
		id, err := g.store.CreateTask(a.Description)
		if err != nil {
			g.logger.Debug("create task failed", "error", err)
			return Result{}, core.Fail(core.ErrUnableToAddTask, "", err)
		}
		g.logger.Debug("created task", "id", id)
		return Result{}, nil

	case action.Done:
		return Result{}, g.transition(a.ID, core.StateDone)

	case action.Drop:
		return Result{}, g.transition(a.ID, core.StateDropped)

	default:
		return Result{}, fmt.Errorf("gateway: unsupported action %T", a)
	}
}

func (g *Gateway) list(filter core.State) ([]core.Task, error) {
	if filter == core.StateAll {
		return g.store.ListTasks()
	}
	return g.store.ListTasksByState(filter)
}

// transition covers both a missing id and a rejected write with ErrInvalidTaskNumber.
func (g *Gateway) transition(id uint32, next core.State) error {
	if err := g.store.SetTaskState(id, next); err != nil {
		g.logger.Debug("set task state failed", "id", id, "state", next.String(), "error", err)
		return core.Fail(core.ErrInvalidTaskNumber, strconv.FormatUint(uint64(id), 10), err)
	}
	g.logger.Debug("set task state", "id", id, "state", next.String())
	return nil
}
