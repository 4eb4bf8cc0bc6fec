package schema

import (
	"context"
	"path/filepath"
	"testing"

	"academy-manager/pkg/database"
	"academy-manager/pkg/utils"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(context.Background(), database.Config{Type: "sqlite", Path: filepath.Join(t.TempDir(), "academy.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestInitialize_IsIdempotent(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	require.NoError(t, Initialize(ctx, db, "segredo1", zap.NewNop()))
	require.NoError(t, Initialize(ctx, db, "outra-senha", zap.NewNop()))

	rows, err := db.Query(ctx, db.Builder().Select("id", "password", "role").From("users").Where(sq.Eq{"username": "admin"}))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "admin", rows[0].String("role"))
	assert.NoError(t, utils.ComparePasswords(rows[0].String("password"), "segredo1"))
}

func TestInitialize_CreatesEveryTable(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	require.NoError(t, Initialize(ctx, db, "", zap.NewNop()))

	for _, name := range TableNames() {
		row, err := db.Get(ctx, db.Builder().Select("COUNT(*) AS total").From(name))
		require.NoError(t, err, name)
		if name == "users" {
			assert.Equal(t, int64(1), row.Int64("total"))
		} else {
			assert.Equal(t, int64(0), row.Int64("total"), name)
		}
	}
}

func TestSeedAdmin_DefaultPassword(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	require.NoError(t, Initialize(ctx, db, "", zap.NewNop()))
	require.NoError(t, SeedAdmin(ctx, db, ""))

	row, err := db.Get(ctx, db.Builder().Select("password").From("users").Where(sq.Eq{"username": "admin"}))
	require.NoError(t, err)
	assert.NoError(t, utils.ComparePasswords(row.String("password"), "admin123"))
}

func TestTables_DependencyOrder(t *testing.T) {
	names := TableNames()
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	assert.Less(t, index["alunos"], index["emprestimos"])
	assert.Less(t, index["devices"], index["emprestimos"])
	assert.Less(t, index["livros"], index["exemplares"])
	assert.Less(t, index["exemplares"], index["emprestimos_livros"])
	assert.Less(t, index["users"], index["eventos"])
	assert.Len(t, Tables(), 11)
}
