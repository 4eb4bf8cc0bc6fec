package database

import (
	"regexp"
	"strings"
)

// SplitStatements quebra um script SQL em comandos, separando em ';' fora de aspas.
// Comentários "--", "#" e "/* */" são descartados; diretivas "/*! */" do mysqldump também.
func SplitStatements(script string) []string {
	var (
		statements []string
		current    strings.Builder
		quote      byte
	)
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			statements = append(statements, s)
		}
		current.Reset()
	}

	for i := 0; i < len(script); i++ {
		c := script[i]

		if quote != 0 {
			current.WriteByte(c)
			switch {
			case c == '\\' && quote != '`' && i+1 < len(script):
				i++
				current.WriteByte(script[i])
			case c == quote && i+1 < len(script) && script[i+1] == quote:
				i++
				current.WriteByte(script[i])
			case c == quote:
				quote = 0
			}
			continue
		}

		switch {
		case c == '\'' || c == '"' || c == '`':
			quote = c
			current.WriteByte(c)
		case c == '-' && strings.HasPrefix(script[i:], "--"), c == '#':
			for i < len(script) && script[i] != '\n' {
				i++
			}
			current.WriteByte('\n')
		case c == '/' && strings.HasPrefix(script[i:], "/*"):
			end := strings.Index(script[i+2:], "*/")
			if end < 0 {
				i = len(script)
			} else {
				i += end + 3
			}
			current.WriteByte(' ')
		case c == ';':
			flush()
		default:
			current.WriteByte(c)
		}
	}
	flush()
	return statements
}

var skippedPrefixes = []string{"LOCK TABLES", "UNLOCK TABLES"}

var (
	engineClause  = regexp.MustCompile(`(?i)\s*ENGINE\s*=\s*\w+`)
	charsetClause = regexp.MustCompile(`(?i)\s*(DEFAULT\s+)?(CHARSET|CHARACTER\s+SET)\s*=?\s*\w+`)
	collateClause = regexp.MustCompile(`(?i)\s*COLLATE\s*=?\s*\w+`)
	autoIncTable  = regexp.MustCompile(`(?i)\s*AUTO_INCREMENT\s*=\s*\d+`)
	autoIncColumn = regexp.MustCompile(`(?i)\b(int|integer|bigint)(\(\d+\))?\s+(unsigned\s+)?NOT\s+NULL\s+AUTO_INCREMENT`)
	mysqlOnlySet  = regexp.MustCompile(`(?i)^SET\s+(FOREIGN_KEY_CHECKS|NAMES|SQL_MODE|TIME_ZONE|UNIQUE_CHECKS|@)`)
)

// NormalizeStatement adapta um comando vindo de um dump MySQL ao dialeto de destino.
// Devolve "" quando o comando deve ser ignorado.
func (d Dialect) NormalizeStatement(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	upper := strings.ToUpper(stmt)
	for _, p := range skippedPrefixes {
		if strings.HasPrefix(upper, p) {
			return ""
		}
	}
	if d == MySQL {
		return stmt
	}
	if mysqlOnlySet.MatchString(stmt) {
		return ""
	}

	stmt = strings.ReplaceAll(stmt, "`", `"`)
	stmt = autoIncTable.ReplaceAllString(stmt, "")
	stmt = engineClause.ReplaceAllString(stmt, "")
	stmt = charsetClause.ReplaceAllString(stmt, "")
	stmt = collateClause.ReplaceAllString(stmt, "")
	if d == Postgres {
		stmt = autoIncColumn.ReplaceAllString(stmt, "SERIAL")
	} else {
		stmt = autoIncColumn.ReplaceAllString(stmt, "INTEGER")
	}
	return strings.TrimSpace(stmt)
}
