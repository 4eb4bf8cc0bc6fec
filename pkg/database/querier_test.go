package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	apperrors "academy-manager/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), Config{Type: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecRaw(context.Background(), `CREATE TABLE itens (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		codigo VARCHAR(50) NOT NULL UNIQUE,
		ativo BOOLEAN DEFAULT 1,
		criado DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	require.NoError(t, err)
	return db
}

func TestQuerier_InsertGetExec(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := db.Insert(ctx, db.Builder().Insert("itens").Columns("codigo", "ativo").Values("A1", true))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	row, err := db.Get(ctx, db.Builder().Select("*").From("itens").Where(sq.Eq{"id": id}))
	require.NoError(t, err)
	assert.Equal(t, "A1", row.String("codigo"))
	assert.True(t, row.Bool("ativo"))
	assert.False(t, row.Time("criado").IsZero())

	affected, err := db.Exec(ctx, db.Builder().Update("itens").Set("ativo", false).Where(sq.Eq{"id": id}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = db.Get(ctx, db.Builder().Select("*").From("itens").Where(sq.Eq{"id": 999}))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.True(t, IsNotFound(err))
}

func TestQuerier_UniqueViolationIsNormalized(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.Insert(ctx, db.Builder().Insert("itens").Columns("codigo").Values("DUP"))
	require.NoError(t, err)

	_, err = db.Insert(ctx, db.Builder().Insert("itens").Columns("codigo").Values("DUP"))
	require.ErrorIs(t, err, ErrIntegrityViolation)
	v, ok := AsIntegrityViolation(err)
	require.True(t, ok)
	assert.Equal(t, UniqueViolation, v.Kind)
	assert.True(t, v.Mentions("codigo"))
}

func TestTx_RollbackDiscardsWrites(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.Insert(ctx, tx.Builder().Insert("itens").Columns("codigo").Values("T1"))
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	rows, err := db.QueryRaw(ctx, "SELECT COUNT(*) AS total FROM itens")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows[0].Int64("total"))
}

func TestOpen_UnreachableDatabase(t *testing.T) {
	_, err := Open(context.Background(), Config{Type: "postgres", Host: "127.0.0.1", Port: 1, User: "x", Name: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDatabaseUnavailable)
}

var errRowsAffected = errors.New("rows affected indisponível")

type brokenResult struct{}

func (brokenResult) LastInsertId() (int64, error) { return 0, nil }
func (brokenResult) RowsAffected() (int64, error) { return 0, errRowsAffected }

type brokenRunner struct{}

func (brokenRunner) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return brokenResult{}, nil
}

func (brokenRunner) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errRowsAffected
}

func TestQuerier_ExecReportsRowsAffectedError(t *testing.T) {
	s := newSession(brokenRunner{}, SQLite)

	affected, err := s.Exec(context.Background(), s.Builder().Update("itens").Set("ativo", false))
	assert.ErrorIs(t, err, errRowsAffected)
	assert.Zero(t, affected)
}
