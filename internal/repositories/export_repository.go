package repositories

import (
	"context"

	"academy-manager/pkg/database"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

// ExportQuery descreve a consulta nomeada de uma exportação.
type ExportQuery struct {
	Table   string
	Columns []string
	Where   sq.Sqlizer
	OrderBy []string
}

type ExportRepositoryInterface interface {
	Rows(ctx context.Context, q ExportQuery) ([]database.Row, error)
}

type ExportRepository struct {
	storage database.Querier
	logger  *zap.Logger
}

func NewExportRepository(storage database.Querier, logger *zap.Logger) ExportRepositoryInterface {
	return &ExportRepository{storage: storage, logger: logger}
}

func (r *ExportRepository) Rows(ctx context.Context, q ExportQuery) ([]database.Row, error) {
	b := r.storage.Builder().Select(q.Columns...).From(q.Table)
	if q.Where != nil {
		b = b.Where(q.Where)
	}
	if len(q.OrderBy) > 0 {
		b = b.OrderBy(q.OrderBy...)
	}
	rows, err := r.storage.Query(ctx, b)
	if err != nil {
		r.logger.Error("Erro ao consultar dados para exportação", zap.String("tabela", q.Table), zap.Error(err))
		return nil, err
	}
	return rows, nil
}
