package bd

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy-manager/pkg/database"
	"academy-manager/pkg/types"
)

var deviceMap = map[string]string{
	"status": "d.status",
	"modelo": "d.modelo",
	"tipo":   "d.tipo",
}

func TestApplyListParams(t *testing.T) {
	filter := types.Filter{
		Filter:         map[string]interface{}{"status": "Disponível,Reservado", "senha": "x"},
		Sort:           map[string]string{"modelo": "desc", "hack": "asc"},
		Limit:          20,
		Offset:         40,
		WithPagination: true,
	}

	builder := sq.Select("d.id").From("devices d")
	query, args, err := ApplyListParams(builder, filter, deviceMap, "d.id DESC").ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT d.id FROM devices d WHERE d.status IN (?,?) ORDER BY d.modelo DESC LIMIT 20 OFFSET 40", query)
	assert.Equal(t, []interface{}{"Disponível", "Reservado"}, args)
}

func TestApplySort_Default(t *testing.T) {
	query, _, err := ApplySort(sq.Select("id").From("devices"), types.Filter{}, deviceMap, "id DESC").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM devices ORDER BY id DESC", query)
}

func TestApplySearch_UsesDialect(t *testing.T) {
	builder := sq.Select("id").From("alunos")

	query, args, err := ApplySearch(builder, database.MySQL, " ana ", "nome", "email").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM alunos WHERE (LOWER(nome) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?))", query)
	assert.Equal(t, []interface{}{"%ana%", "%ana%"}, args)

	query, _, err = ApplySearch(builder, database.MySQL, "").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM alunos", query)
}

func TestCountQuery(t *testing.T) {
	builder := sq.Select("a.id", "a.nome").From("alunos a").Where(sq.Eq{"a.tipo_aluno": "Regular"})
	query, _, err := CountQuery(builder).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) AS total FROM alunos a WHERE a.tipo_aluno = ?", query)
}

func TestApplyPagination_Disabled(t *testing.T) {
	query, _, err := ApplyPagination(sq.Select("id").From("x"), types.Filter{Limit: 10}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM x", query)
}
