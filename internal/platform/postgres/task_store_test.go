//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/phrazzld/todo-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// newOwner returns a unique identity so parallel tests never see each other's rows.
func newOwner() string {
	return "tok-" + uuid.NewString()
}

func createTask(t *testing.T, s *postgres.PostgresTaskStore, owner, title string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(owner, title, nil)
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), task))
	require.NotZero(t, task.ID)
	return task
}

func TestPostgresTaskStore_CreateAndList(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		s := postgres.NewPostgresTaskStore(tx, nil)
		ctx := context.Background()
		owner := newOwner()

		first, err := domain.NewTask(owner, "Buy milk", strPtr("2 litres"))
		require.NoError(t, err)
		require.NoError(t, s.Create(ctx, first))
		second := createTask(t, s, owner, "Walk dog")
		createTask(t, s, newOwner(), "Not mine")

		tasks, err := s.ListByOwner(ctx, owner)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, first, tasks[0])
		assert.Equal(t, second, tasks[1])
		assert.Nil(t, tasks[1].Description)
	})
}

func TestPostgresTaskStore_ListEmpty(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		s := postgres.NewPostgresTaskStore(tx, nil)
		tasks, err := s.ListByOwner(context.Background(), newOwner())
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})
}

func TestPostgresTaskStore_CreateInvalid(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		s := postgres.NewPostgresTaskStore(tx, nil)
		err := s.Create(context.Background(), &domain.Task{Owner: newOwner()})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestPostgresTaskStore_UpdateOwned(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		s := postgres.NewPostgresTaskStore(tx, nil)
		ctx := context.Background()
		owner := newOwner()

		task, err := domain.NewTask(owner, "Buy milk", strPtr("semi-skimmed"))
		require.NoError(t, err)
		require.NoError(t, s.Create(ctx, task))
		_, err = s.ToggleCompletedOwned(ctx, owner, task.ID)
		require.NoError(t, err)

		updated, err := s.UpdateOwned(ctx, owner, task.ID, domain.TaskPatch{
			Title: domain.Some("Buy oat milk"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Buy oat milk", updated.Title)
		assert.True(t, updated.Completed)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "semi-skimmed", *updated.Description)

		cleared, err := s.UpdateOwned(ctx, owner, task.ID, domain.TaskPatch{
			Description: domain.Null[string](),
			Completed:   domain.Some(false),
		})
		require.NoError(t, err)
		assert.Nil(t, cleared.Description)
		assert.False(t, cleared.Completed)
		assert.Equal(t, "Buy oat milk", cleared.Title)

		_, err = s.UpdateOwned(ctx, newOwner(), task.ID, domain.TaskPatch{Title: domain.Some("stolen")})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		_, err = s.UpdateOwned(ctx, owner, task.ID+1000000, domain.TaskPatch{Title: domain.Some("x")})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_ToggleTwiceRestores(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		s := postgres.NewPostgresTaskStore(tx, nil)
		ctx := context.Background()
		owner := newOwner()
		task := createTask(t, s, owner, "Buy milk")

		once, err := s.ToggleCompletedOwned(ctx, owner, task.ID)
		require.NoError(t, err)
		assert.True(t, once.Completed)

		twice, err := s.ToggleCompletedOwned(ctx, owner, task.ID)
		require.NoError(t, err)
		assert.False(t, twice.Completed)

		_, err = s.ToggleCompletedOwned(ctx, newOwner(), task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_DeleteOwned(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		s := postgres.NewPostgresTaskStore(tx, nil)
		ctx := context.Background()
		owner := newOwner()
		task := createTask(t, s, owner, "Buy milk")

		err := s.DeleteOwned(ctx, newOwner(), task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		tasks, err := s.ListByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Len(t, tasks, 1)

		require.NoError(t, s.DeleteOwned(ctx, owner, task.ID))
		assert.ErrorIs(t, s.DeleteOwned(ctx, owner, task.ID), store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_Ping(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	assert.NoError(t, postgres.NewPostgresTaskStore(db, nil).Ping(context.Background()))

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		assert.NoError(t, postgres.NewPostgresTaskStore(tx, nil).Ping(context.Background()))
	})
}

func TestCurrentVersion(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	version, err := postgres.CurrentVersion(context.Background(), db)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, version, int64(1))
}
