package repositories

import (
	"context"

	"academy-manager/pkg/database"

	"go.uber.org/zap"
)

type BackupRepositoryInterface interface {
	Dialect() database.Dialect
	TableRows(ctx context.Context, table string) ([]database.Row, error)
	ExecStatement(ctx context.Context, statement string) error
}

type BackupRepository struct {
	db     *database.DB
	logger *zap.Logger
}

func NewBackupRepository(db *database.DB, logger *zap.Logger) BackupRepositoryInterface {
	return &BackupRepository{db: db, logger: logger}
}

func (r *BackupRepository) Dialect() database.Dialect { return r.db.Dialect() }

// TableRows lê a tabela inteira em ordem de id; usado só pelo dump.
func (r *BackupRepository) TableRows(ctx context.Context, table string) ([]database.Row, error) {
	return r.db.Query(ctx, r.db.Builder().Select("*").From(table).OrderBy("id"))
}

// ExecStatement roda o SQL como veio do arquivo: sem rebind de "?", que pode aparecer dentro dos textos.
func (r *BackupRepository) ExecStatement(ctx context.Context, statement string) error {
	_, err := r.db.SQL().ExecContext(ctx, statement)
	return database.Normalize(err)
}
