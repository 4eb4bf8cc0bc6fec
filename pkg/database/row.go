package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"academy-manager/pkg/coerce"

	"github.com/aarondl/null/v8"
)

// Row é o registro devolvido pelo adaptador: nome da coluna -> valor,
// com os mesmos tipos qualquer que seja o banco.
type Row map[string]interface{}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime aceita os formatos textuais que os drivers devolvem para datas.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("data inválida: %q", s)
}

func (r Row) Has(col string) bool {
	_, ok := r[col]
	return ok
}

func (r Row) IsNull(col string) bool {
	return r[col] == nil
}

func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(v)
	}
}

func (r Row) NullString(col string) null.String {
	if r.IsNull(col) {
		return null.String{}
	}
	return null.StringFrom(r.String(col))
}

func (r Row) Int64(col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case uint64:
		return int64(v)
	case float64:
		return int64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case []byte:
		n, _ := strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n
	}
	return 0
}

func (r Row) Uint64(col string) uint64 {
	n := r.Int64(col)
	if n < 0 {
		return 0
	}
	return uint64(n)
}

func (r Row) NullInt(col string) null.Int {
	if r.IsNull(col) {
		return null.Int{}
	}
	return null.IntFrom(int(r.Int64(col)))
}

func (r Row) NullUint64(col string) null.Uint64 {
	if r.IsNull(col) {
		return null.Uint64{}
	}
	return null.Uint64From(r.Uint64(col))
}

// Bool usa a mesma regra de coerção do restante do sistema (0/1, TRUE/FALSE, "1").
func (r Row) Bool(col string) bool {
	return coerce.Bool(r[col], false)
}

func (r Row) Time(col string) time.Time {
	switch v := r[col].(type) {
	case time.Time:
		return v
	case string:
		t, _ := ParseTime(v)
		return t
	case []byte:
		t, _ := ParseTime(string(v))
		return t
	}
	return time.Time{}
}

func (r Row) NullTime(col string) null.Time {
	t := r.Time(col)
	if t.IsZero() {
		return null.Time{}
	}
	return null.TimeFrom(t)
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := make([]Row, 0)
	for rows.Next() {
		values := make([]interface{}, len(cols))
		pointers := make([]interface{}, len(cols))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			// MySQL devolve textos como []byte quando o destino é interface{}.
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
