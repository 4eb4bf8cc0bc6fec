package repositories

import (
	"context"
	"time"

	"academy-manager/internal/infrastructure/bd"
	"academy-manager/pkg/coerce"
	"academy-manager/pkg/database"
	"academy-manager/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
)

// listQuery descreve uma listagem paginada: o SELECT base já com JOINs e busca,
// o mapa de campos permitidos e a ordenação padrão.
type listQuery struct {
	base         sq.SelectBuilder
	allowed      map[string]string
	defaultOrder []string
}

// fetchPage aplica filtros, conta o total e só então ordena e pagina.
func fetchPage(ctx context.Context, q database.Querier, lq listQuery, filter types.Filter) ([]database.Row, uint64, error) {
	builder := bd.ApplyFilters(lq.base, filter, lq.allowed)

	countRow, err := q.Get(ctx, bd.CountQuery(builder))
	if err != nil {
		return nil, 0, err
	}
	total := countRow.Uint64("total")
	if total == 0 {
		return []database.Row{}, 0, nil
	}

	builder = bd.ApplySort(builder, filter, lq.allowed, lq.defaultOrder...)
	builder = bd.ApplyPagination(builder, filter)

	rows, err := q.Query(ctx, builder)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// dbTime grava sempre em UTC e sem fração de segundo; o SQLite compara datas como texto.
func dbTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

func dbNullTime(t null.Time) interface{} {
	if !t.Valid || t.Time.IsZero() {
		return nil
	}
	return dbTime(t.Time)
}

func nullValue(s null.String) interface{} {
	if !s.Valid {
		return nil
	}
	return s.String
}

func nullUint(v null.Uint64) interface{} {
	if !v.Valid {
		return nil
	}
	return v.Uint64
}

func nullInt(v null.Int) interface{} {
	if !v.Valid {
		return nil
	}
	return v.Int
}

func idsOf(rows []database.Row, col string) []uint64 {
	ids := make([]uint64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.Uint64(col))
	}
	return ids
}

// boolFilters converte filter[campo]="Sim"/"1"/"true" em booleano para as colunas indicadas.
func boolFilters(filter types.Filter, fields ...string) types.Filter {
	if len(filter.Filter) == 0 {
		return filter
	}
	out := make(map[string]interface{}, len(filter.Filter))
	for k, v := range filter.Filter {
		out[k] = v
	}
	for _, f := range fields {
		if v, ok := out[f]; ok {
			out[f] = coerce.Bool(v, false)
		}
	}
	filter.Filter = out
	return filter
}
