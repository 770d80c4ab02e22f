package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"tango/internal/domain"
	"tango/internal/migrations"
	"tango/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "tango.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Up(db, migrations.DriverSQLite, zap.NewNop()))
	return db
}

func TestKVRepo_PutGet(t *testing.T) {
	repo := sqlite.NewKVRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx, "tanGo_words")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, repo.Put(ctx, "tanGo_words", []byte(`[{"id":"1"}]`)))
	value, err := repo.Get(ctx, "tanGo_words")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(value))

	require.NoError(t, repo.Put(ctx, "tanGo_words", []byte(`[]`)))
	value, err = repo.Get(ctx, "tanGo_words")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(value), "put replaces the previous value")

	_, err = repo.Get(ctx, "other")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestKVRepo_KeepsUnicode(t *testing.T) {
	repo := sqlite.NewKVRepo(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "k", []byte("ねこ\tいぬ")))
	value, err := repo.Get(ctx, "k")

	require.NoError(t, err)
	assert.Equal(t, "ねこ\tいぬ", string(value))
}

func TestUserRepo_Authorization(t *testing.T) {
	repo := sqlite.NewUserRepo(newTestDB(t))
	ctx := context.Background()

	authorized, err := repo.IsAuthorized(ctx, 42)
	require.NoError(t, err)
	assert.False(t, authorized, "unknown user is not authorized")

	require.NoError(t, repo.EnsureUserExists(ctx, 42))
	require.NoError(t, repo.EnsureUserExists(ctx, 42), "ensure is idempotent")
	authorized, err = repo.IsAuthorized(ctx, 42)
	require.NoError(t, err)
	assert.False(t, authorized)

	require.NoError(t, repo.AuthorizeUser(ctx, 42))
	authorized, err = repo.IsAuthorized(ctx, 42)
	require.NoError(t, err)
	assert.True(t, authorized)

	require.NoError(t, repo.EnsureUserExists(ctx, 42))
	authorized, err = repo.IsAuthorized(ctx, 42)
	require.NoError(t, err)
	assert.True(t, authorized, "ensure does not reset authorization")

	require.NoError(t, repo.AuthorizeUser(ctx, 7))
	authorized, err = repo.IsAuthorized(ctx, 7)
	require.NoError(t, err)
	assert.True(t, authorized, "authorize creates missing users")
}
