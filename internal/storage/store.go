package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/divijg19/todo/internal/core"
)

// ErrNotFound is returned when an update matches no task row.
var ErrNotFound = errors.New("task not found")

// Store provides SQLite-backed persistence for tasks.
type Store struct {
	db *sql.DB
}

// New returns a Store bound to an existing database handle.
func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &Store{db: db}, nil
}

// CreateTask inserts a new pending task and returns its ID.
func (s *Store) CreateTask(description string) (uint32, error) {
	if s == nil {
		return 0, fmt.Errorf("create task: store is nil")
	}
	if s.db == nil {
		return 0, fmt.Errorf("create task: db is nil")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("create task: begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.Exec(`INSERT INTO tasks (task, state) VALUES (?, ?)`, description, int(core.StatePending))
	if err != nil {
		return 0, fmt.Errorf("create task: insert: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create task: last insert id: %w", err)
	}
	// Task ids are 32-bit; a row past that range could never be addressed.
	if id <= 0 || id > math.MaxUint32 {
		return 0, fmt.Errorf("create task: id %d out of range", id)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("create task: commit: %w", err)
	}
	return uint32(id), nil
}

// ListTasks returns every task ordered by ID.
func (s *Store) ListTasks() ([]core.Task, error) {
	if s == nil {
		return nil, fmt.Errorf("list tasks: store is nil")
	}
	if s.db == nil {
		return nil, fmt.Errorf("list tasks: db is nil")
	}

	rows, err := s.db.Query(`SELECT id, task, state FROM tasks ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: query: %w", err)
	}
	return scanTasks("list tasks", rows)
}

// ListTasksByState returns the tasks currently in state, ordered by ID.
func (s *Store) ListTasksByState(state core.State) ([]core.Task, error) {
	if s == nil {
		return nil, fmt.Errorf("list tasks by state: store is nil")
	}
	if s.db == nil {
		return nil, fmt.Errorf("list tasks by state: db is nil")
	}
	if !state.Stored() {
		return nil, fmt.Errorf("list tasks by state: invalid state %s", state)
	}

	rows, err := s.db.Query(`SELECT id, task, state FROM tasks WHERE state = ? ORDER BY id ASC`, int(state))
	if err != nil {
		return nil, fmt.Errorf("list tasks by state: query: %w", err)
	}
	return scanTasks("list tasks by state", rows)
}

// SetTaskState overwrites the state of the task with id.
// Any stored state may follow any other; there is no transition guard.
func (s *Store) SetTaskState(id uint32, state core.State) error {
	if s == nil {
		return fmt.Errorf("set task state: store is nil")
	}
	if s.db == nil {
		return fmt.Errorf("set task state: db is nil")
	}
	if !state.Stored() {
		return fmt.Errorf("set task state: invalid state %s", state)
	}

	result, err := s.db.Exec(`UPDATE tasks SET state = ? WHERE id = ?`, int(state), id)
	if err != nil {
		return fmt.Errorf("set task state: update: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set task state: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set task state: id=%d: %w", id, ErrNotFound)
	}
	return nil
}

func scanTasks(op string, rows *sql.Rows) ([]core.Task, error) {
	defer rows.Close()

	tasks := make([]core.Task, 0)
	for rows.Next() {
		var task core.Task
		var state int
		if err := rows.Scan(&task.ID, &task.Description, &state); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		task.State = core.State(state)
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return tasks, nil
}
