package bd

import (
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"academy-manager/pkg/database"
	"academy-manager/pkg/types"
)

// ApplyFilters aplica filter[campo]=valor só para campos presentes em allowedMap.
// "a,b" vira IN (a, b).
func ApplyFilters(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string) sq.SelectBuilder {
	for _, jsonField := range sortedKeys(filter.Filter) {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}

		val := filter.Filter[jsonField]
		if s, ok := val.(string); ok && strings.Contains(s, ",") {
			builder = builder.Where(sq.Eq{dbCol: strings.Split(s, ",")})
		} else {
			builder = builder.Where(sq.Eq{dbCol: val})
		}
	}
	return builder
}

// ApplySearch busca o termo em qualquer uma das colunas, sem diferenciar maiúsculas.
func ApplySearch(builder sq.SelectBuilder, dialect database.Dialect, search string, columns ...string) sq.SelectBuilder {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return builder
	}
	pattern := "%" + search + "%"
	conditions := make(sq.Or, 0, len(columns))
	for _, col := range columns {
		conditions = append(conditions, dialect.ILike(col, pattern))
	}
	return builder.Where(conditions)
}

// ApplySort ordena pelos campos pedidos; sem sort[...] válido usa defaultOrder.
func ApplySort(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string, defaultOrder ...string) sq.SelectBuilder {
	applied := false
	for _, jsonField := range sortedKeys(filter.Sort) {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}
		sqlDir := "ASC"
		if strings.ToLower(filter.Sort[jsonField]) == "desc" {
			sqlDir = "DESC"
		}
		builder = builder.OrderBy(fmt.Sprintf("%s %s", dbCol, sqlDir))
		applied = true
	}
	if !applied && len(defaultOrder) > 0 {
		builder = builder.OrderBy(defaultOrder...)
	}
	return builder
}

func ApplyPagination(builder sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	if !filter.WithPagination {
		return builder
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}
	return builder
}

// ApplyListParams junta filtros, ordenação e paginação.
func ApplyListParams(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string, defaultOrder ...string) sq.SelectBuilder {
	builder = ApplyFilters(builder, filter, allowedMap)
	builder = ApplySort(builder, filter, allowedMap, defaultOrder...)
	return ApplyPagination(builder, filter)
}

// CountQuery troca as colunas do builder por COUNT(*), antes de ordenar e paginar.
func CountQuery(builder sq.SelectBuilder) sq.SelectBuilder {
	return builder.RemoveColumns().Columns("COUNT(*) AS total")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
