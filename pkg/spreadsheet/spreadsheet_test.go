package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var studentFields = []Field{
	{Name: "nome", Synonyms: []string{"nome", "nome completo", "name", "aluno", "student"}, Required: true},
	{Name: "email", Synonyms: []string{"email", "e-mail", "mail"}, Required: true},
	{Name: "telefone", Synonyms: []string{"telefone", "celular", "phone"}},
}

func TestReadCSV_NormalizesHeadersAndSkipsBlankRows(t *testing.T) {
	input := "\xef\xbb\xbf Nome Completo ,E-Mail,Celular\nAna,ana@x.com,1199\n,,\nBia,bia@x.com,\n"

	sheet, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"nome completo", "e-mail", "celular"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, []int{2, 4}, sheet.Lines)

	mapping, missing := Resolve(sheet.Headers, studentFields)
	assert.Empty(t, missing)

	rec := mapping.Record(sheet.Rows[0])
	assert.Equal(t, "Ana", rec.Get("nome"))
	assert.Equal(t, "ana@x.com", rec.Get("email"))
	assert.Equal(t, "1199", rec.Get("telefone"))

	rec = mapping.Record(sheet.Rows[1])
	assert.Equal(t, "", rec.Get("telefone"))
}

func TestReadCSV_SemicolonDelimiter(t *testing.T) {
	sheet, err := ReadCSV(strings.NewReader("nome;email\nAna;ana@x.com\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"nome", "email"}, sheet.Headers)
	assert.Equal(t, []string{"Ana", "ana@x.com"}, sheet.Rows[0])
}

func TestResolve_MissingRequiredAndSynonymPriority(t *testing.T) {
	_, missing := Resolve([]string{"telefone", "mail"}, studentFields)
	assert.Equal(t, []string{"nome"}, missing)

	mapping, missing := Resolve([]string{"name", "nome", "email"}, studentFields)
	assert.Empty(t, missing)
	rec := mapping.Record([]string{"ingles", "portugues", "a@b.c"})
	assert.Equal(t, "portugues", rec.Get("nome"), "o primeiro sinônimo da lista tem prioridade")

	_, ok := rec.Lookup("telefone")
	assert.False(t, ok)
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf, DefaultSheet, []string{"tipo", "numero_serie", "para_emprestimo"}, [][]interface{}{
		{"iPad", "S1", "Sim"},
		{"Mac", "S2", "Não"},
	})
	require.NoError(t, err)

	sheet, err := ReadXLSX(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"tipo", "numero_serie", "para_emprestimo"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, []string{"Mac", "S2", "Não"}, sheet.Rows[1])
}
