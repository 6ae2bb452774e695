package storage

import (
	"database/sql"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divijg19/todo/internal/core"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "tasks.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(openTestDB(t))
	require.NoError(t, err)
	return st
}

func TestNew_NilDB(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestMigrate_NilDB(t *testing.T) {
	assert.Error(t, Migrate(nil))
}

func TestCreateTask_AssignsAscendingIDs(t *testing.T) {
	st := newTestStore(t)

	first, err := st.CreateTask("write spec")
	require.NoError(t, err)
	second, err := st.CreateTask("review spec")
	require.NoError(t, err)

	assert.Equal(t, uint32(1), first)
	assert.Equal(t, uint32(2), second)

	tasks, err := st.ListTasksByState(core.StatePending)
	require.NoError(t, err)
	assert.Equal(t, []core.Task{
		{ID: 1, Description: "write spec", State: core.StatePending},
		{ID: 2, Description: "review spec", State: core.StatePending},
	}, tasks)
}

func TestCreateTask_EmptyDescriptionStoredVerbatim(t *testing.T) {
	st := newTestStore(t)

	id, err := st.CreateTask("")
	require.NoError(t, err)

	tasks, err := st.ListTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, id, tasks[0].ID)
	assert.Equal(t, "", tasks[0].Description)
}

func TestCreateTask_RejectsIDBeyond32Bits(t *testing.T) {
	db := openTestDB(t)
	st, err := New(db)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO tasks (id, task, state) VALUES (?, 'last', 1)`, uint64(math.MaxUint32))
	require.NoError(t, err)

	_, err = st.CreateTask("one too many")
	assert.Error(t, err)

	tasks, err := st.ListTasks()
	require.NoError(t, err)
	assert.Equal(t, []core.Task{{ID: math.MaxUint32, Description: "last", State: core.StatePending}}, tasks)
}

func TestListTasks_AllStatesInIDOrder(t *testing.T) {
	st := newTestStore(t)

	for _, d := range []string{"a", "b", "c"} {
		_, err := st.CreateTask(d)
		require.NoError(t, err)
	}
	require.NoError(t, st.SetTaskState(1, core.StateDone))
	require.NoError(t, st.SetTaskState(2, core.StateDropped))

	all, err := st.ListTasks()
	require.NoError(t, err)
	assert.Equal(t, []core.Task{
		{ID: 1, Description: "a", State: core.StateDone},
		{ID: 2, Description: "b", State: core.StateDropped},
		{ID: 3, Description: "c", State: core.StatePending},
	}, all)

	done, err := st.ListTasksByState(core.StateDone)
	require.NoError(t, err)
	assert.Equal(t, []core.Task{{ID: 1, Description: "a", State: core.StateDone}}, done)

	dropped, err := st.ListTasksByState(core.StateDropped)
	require.NoError(t, err)
	assert.Equal(t, []core.Task{{ID: 2, Description: "b", State: core.StateDropped}}, dropped)
}

func TestListTasks_EmptyStore(t *testing.T) {
	st := newTestStore(t)

	tasks, err := st.ListTasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestListTasksByState_RejectsFilterOnlyState(t *testing.T) {
	st := newTestStore(t)

	_, err := st.ListTasksByState(core.StateAll)
	assert.Error(t, err)
}

func TestSetTaskState_AnyTransition(t *testing.T) {
	st := newTestStore(t)
	id, err := st.CreateTask("flip")
	require.NoError(t, err)

	for _, next := range []core.State{core.StateDone, core.StateDone, core.StateDropped, core.StateDropped, core.StateDone} {
		require.NoError(t, st.SetTaskState(id, next))

		tasks, err := st.ListTasks()
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, next, tasks[0].State)
		assert.Equal(t, "flip", tasks[0].Description)
	}
}

func TestSetTaskState_NotFound(t *testing.T) {
	st := newTestStore(t)

	err := st.SetTaskState(999, core.StateDone)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetTaskState_RejectsNonStoredStates(t *testing.T) {
	st := newTestStore(t)
	id, err := st.CreateTask("x")
	require.NoError(t, err)

	assert.Error(t, st.SetTaskState(id, core.StateAll))
	assert.Error(t, st.SetTaskState(id, core.State(7)))
}

func TestStore_ClosedDB(t *testing.T) {
	db := openTestDB(t)
	st, err := New(db)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = st.CreateTask("x")
	assert.Error(t, err)
	_, err = st.ListTasks()
	assert.Error(t, err)
	err = st.SetTaskState(1, core.StateDone)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.sqlite3")

	db, err := Open(path)
	require.NoError(t, err)
	st, err := New(db)
	require.NoError(t, err)
	_, err = st.CreateTask("survive restart")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	st, err = New(db)
	require.NoError(t, err)

	tasks, err := st.ListTasksByState(core.StatePending)
	require.NoError(t, err)
	assert.Equal(t, []core.Task{{ID: 1, Description: "survive restart", State: core.StatePending}}, tasks)
}
