package database

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	testCases := map[string]Dialect{
		"":           MySQL,
		"MySQL":      MySQL,
		"postgres":   Postgres,
		"postgresql": Postgres,
		"sqlite":     SQLite,
	}
	for input, expected := range testCases {
		d, err := ParseDialect(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, d)
	}

	_, err := ParseDialect("oracle")
	assert.Error(t, err)
}

func TestDialect_PlaceholdersAndILike(t *testing.T) {
	pg := sq.StatementBuilder.PlaceholderFormat(Postgres.Placeholder())
	query, args, err := pg.Select("id").From("alunos").Where(Postgres.ILike("nome", "%ana%")).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM alunos WHERE nome ILIKE $1", query)
	assert.Equal(t, []interface{}{"%ana%"}, args)

	my := sq.StatementBuilder.PlaceholderFormat(MySQL.Placeholder())
	query, _, err = my.Select("id").From("alunos").Where(MySQL.ILike("nome", "%ana%")).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM alunos WHERE LOWER(nome) LIKE LOWER(?)", query)

	rebound, err := Postgres.Rebind("UPDATE x SET a = ? WHERE id = ?")
	require.NoError(t, err)
	assert.Equal(t, "UPDATE x SET a = $1 WHERE id = $2", rebound)
}

func TestDialect_InsertIgnore(t *testing.T) {
	insert := sq.Insert("users").Columns("username").Values("admin")

	query, _, err := MySQL.InsertIgnore(insert, "username").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "INSERT IGNORE INTO users (username) VALUES (?)", query)

	query, _, err = SQLite.InsertIgnore(insert, "username").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO users (username) VALUES (?) ON CONFLICT (username) DO NOTHING", query)
}

func TestDialect_RenderDDL(t *testing.T) {
	ddl := "CREATE TABLE t (id {{PK}}, ativo {{BOOL}} DEFAULT {{TRUE}}, criado {{DATETIME}}){{ENGINE}}"

	assert.Equal(t, "CREATE TABLE t (id SERIAL PRIMARY KEY, ativo BOOLEAN DEFAULT TRUE, criado TIMESTAMP)", Postgres.RenderDDL(ddl))
	assert.Equal(t, "CREATE TABLE t (id INTEGER PRIMARY KEY AUTOINCREMENT, ativo BOOLEAN DEFAULT 1, criado DATETIME)", SQLite.RenderDDL(ddl))
	assert.Contains(t, MySQL.RenderDDL(ddl), "INT AUTO_INCREMENT PRIMARY KEY")
	assert.Contains(t, MySQL.RenderDDL(ddl), "ENGINE=InnoDB")
}

func TestDialect_Literal(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "NULL", Postgres.Literal(nil))
	assert.Equal(t, "TRUE", Postgres.Literal(true))
	assert.Equal(t, "0", SQLite.Literal(false))
	assert.Equal(t, "42", MySQL.Literal(int64(42)))
	assert.Equal(t, "'2024-03-01 10:30:00'", Postgres.Literal(ts))
	assert.Equal(t, "'D''Ávila'", Postgres.Literal("D'Ávila"))
	assert.Equal(t, `'C:\\temp'`, MySQL.Literal(`C:\temp`))
	assert.Equal(t, `'C:\temp'`, Postgres.Literal(`C:\temp`))
}

func TestDialect_TruncateStatement(t *testing.T) {
	assert.Equal(t, "TRUNCATE TABLE devices RESTART IDENTITY CASCADE;", Postgres.TruncateStatement("devices"))
	assert.Equal(t, "DELETE FROM devices;", SQLite.TruncateStatement("devices"))
	assert.Equal(t, "TRUNCATE TABLE devices;", MySQL.TruncateStatement("devices"))
	assert.Empty(t, MySQL.ResetSequenceStatement("devices"))
}
