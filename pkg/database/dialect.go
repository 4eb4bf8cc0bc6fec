package database

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Dialect isola todas as diferenças de sintaxe entre os bancos suportados.
// Código de negócio nunca deve comparar o dialeto diretamente.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mysql":
		return MySQL, nil
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return "", fmt.Errorf("tipo de banco não suportado: %s", s)
}

func (d Dialect) driverName() string {
	switch d {
	case Postgres:
		return "pgx"
	case SQLite:
		return "sqlite"
	default:
		return "mysql"
	}
}

func (d Dialect) Placeholder() sq.PlaceholderFormat {
	if d == Postgres {
		return sq.Dollar
	}
	return sq.Question
}

// Rebind converte uma consulta escrita com "?" para o formato do dialeto.
func (d Dialect) Rebind(query string) (string, error) {
	return d.Placeholder().ReplacePlaceholders(query)
}

// ILike devolve uma condição de busca sem diferenciar maiúsculas.
func (d Dialect) ILike(column, pattern string) sq.Sqlizer {
	if d == Postgres {
		return sq.ILike{column: pattern}
	}
	return sq.Expr("LOWER("+column+") LIKE LOWER(?)", pattern)
}

// InsertIgnore transforma o insert em no-op quando conflictColumn já existe.
func (d Dialect) InsertIgnore(b sq.InsertBuilder, conflictColumn string) sq.InsertBuilder {
	if d == MySQL {
		return b.Options("IGNORE")
	}
	return b.Suffix("ON CONFLICT (" + conflictColumn + ") DO NOTHING")
}

var ddlTokens = map[Dialect]*strings.Replacer{
	MySQL: strings.NewReplacer(
		"{{PK}}", "INT AUTO_INCREMENT PRIMARY KEY",
		"{{FK}}", "INT",
		"{{BOOL}}", "BOOLEAN",
		"{{TRUE}}", "TRUE",
		"{{FALSE}}", "FALSE",
		"{{DATETIME}}", "DATETIME",
		"{{LONGTEXT}}", "LONGTEXT",
		"{{ENGINE}}", " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	),
	Postgres: strings.NewReplacer(
		"{{PK}}", "SERIAL PRIMARY KEY",
		"{{FK}}", "INTEGER",
		"{{BOOL}}", "BOOLEAN",
		"{{TRUE}}", "TRUE",
		"{{FALSE}}", "FALSE",
		"{{DATETIME}}", "TIMESTAMP",
		"{{LONGTEXT}}", "TEXT",
		"{{ENGINE}}", "",
	),
	SQLite: strings.NewReplacer(
		"{{PK}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
		"{{FK}}", "INTEGER",
		"{{BOOL}}", "BOOLEAN",
		"{{TRUE}}", "1",
		"{{FALSE}}", "0",
		"{{DATETIME}}", "DATETIME",
		"{{LONGTEXT}}", "TEXT",
		"{{ENGINE}}", "",
	),
}

// RenderDDL troca os marcadores {{PK}}, {{FK}}, {{BOOL}}, {{TRUE}}, {{FALSE}},
// {{DATETIME}}, {{LONGTEXT}} e {{ENGINE}} pela sintaxe do dialeto.
func (d Dialect) RenderDDL(template string) string {
	r, ok := ddlTokens[d]
	if !ok {
		r = ddlTokens[MySQL]
	}
	return r.Replace(template)
}

// DumpPrologue e DumpEpilogue envolvem um dump SQL.
func (d Dialect) DumpPrologue() string {
	if d == MySQL {
		return "SET FOREIGN_KEY_CHECKS=0;\n"
	}
	return ""
}

func (d Dialect) DumpEpilogue() string {
	if d == MySQL {
		return "SET FOREIGN_KEY_CHECKS=1;\n"
	}
	return ""
}

func (d Dialect) TruncateStatement(table string) string {
	switch d {
	case Postgres:
		return fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE;", table)
	case SQLite:
		return fmt.Sprintf("DELETE FROM %s;", table)
	default:
		return fmt.Sprintf("TRUNCATE TABLE %s;", table)
	}
}

// ResetSequenceStatement realinha a sequência do id após inserts explícitos.
func (d Dialect) ResetSequenceStatement(table string) string {
	if d != Postgres {
		return ""
	}
	return fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 1)) FROM %s;", table, table)
}

// Literal formata um valor lido do banco como literal SQL do dialeto.
func (d Dialect) Literal(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if d == SQLite {
			if val {
				return "1"
			}
			return "0"
		}
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return d.quote(val.UTC().Format("2006-01-02 15:04:05"))
	case []byte:
		return d.quote(string(val))
	case string:
		return d.quote(val)
	default:
		return d.quote(fmt.Sprint(val))
	}
}

func (d Dialect) quote(s string) string {
	if d == MySQL {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
