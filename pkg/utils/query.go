package utils

import (
	"net/url"
	"strconv"
	"strings"

	"academy-manager/pkg/types"
)

// Sem limit na query a listagem traz até DefaultLimit linhas.
const (
	DefaultLimit = 200
	MaxLimit     = 1000
)

// ParseFilterFromQuery lê search, sort[campo], filter[campo], limit, page,
// offset e withPagination. Valores inválidos caem no padrão em vez de gerar erro.
// Um filtro repetido vira lista separada por vírgula.
func ParseFilterFromQuery(values url.Values) types.Filter {
	f := types.Filter{
		Search:         strings.TrimSpace(values.Get("search")),
		Sort:           map[string]string{},
		Filter:         map[string]interface{}{},
		Limit:          min(queryInt(values, "limit", DefaultLimit, 1), MaxLimit),
		Page:           queryInt(values, "page", 1, 1),
		WithPagination: values.Get("withPagination") == "true",
	}
	f.Offset = queryInt(values, "offset", (f.Page-1)*f.Limit, 0)

	for key, vals := range values {
		if field, ok := bracketField(key, "sort"); ok {
			if dir := strings.ToLower(firstNonEmpty(vals)); dir == "asc" || dir == "desc" {
				f.Sort[field] = dir
			}
			continue
		}
		if field, ok := bracketField(key, "filter"); ok {
			if joined := joinNonEmpty(vals); joined != "" {
				f.Filter[field] = joined
			}
		}
	}
	return f
}

// queryInt devolve def quando o parâmetro falta, não é número ou fica abaixo de floor.
func queryInt(values url.Values, key string, def, floor int) int {
	n, err := strconv.Atoi(values.Get(key))
	if err != nil || n < floor {
		return def
	}
	return n
}

// bracketField extrai "status" de "filter[status]".
func bracketField(key, name string) (string, bool) {
	rest, ok := strings.CutPrefix(key, name+"[")
	if !ok {
		return "", false
	}
	field, ok := strings.CutSuffix(rest, "]")
	return field, ok && field != ""
}

func firstNonEmpty(vals []string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(vals []string) string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, ",")
}
