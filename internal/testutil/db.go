package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"academy-manager/internal/schema"
	"academy-manager/pkg/database"
	"academy-manager/pkg/types"
	"academy-manager/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// NewDB abre um SQLite novo em t.TempDir() com o schema completo e o admin semeado.
func NewDB(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, database.Config{Type: "sqlite", Path: filepath.Join(t.TempDir(), "academy.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, schema.Initialize(ctx, db, "admin123", zap.NewNop()))
	return db
}

// AdminCtx devolve um contexto autenticado como o admin semeado (id 1).
func AdminCtx() context.Context {
	return utils.WithPrincipal(context.Background(), types.Principal{ID: 1, Username: "admin", Role: types.RoleAdmin})
}

// UserCtx devolve um contexto autenticado com o papel informado.
func UserCtx(id uint64, role string) context.Context {
	return utils.WithPrincipal(context.Background(), types.Principal{ID: id, Username: "usuario", Role: role})
}
