package services

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"academy-manager/internal/entities"
	"academy-manager/internal/testutil"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/spreadsheet"
	"academy-manager/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportService_DevicesReportsRowErrors(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()

	csv := "Tipo;Numero_Serie;Status\n" +
		"iPad;S1;Emprestado\n" +
		"iPad;;Disponível\n" +
		";;\n" +
		"iPad;S1;Disponível\n"
	result, err := f.importer.Import(ctx, ImportDevices, strings.NewReader(csv), "devices.csv")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Sucessos)
	assert.Equal(t, 3, result.TotalLinhas)
	assert.Equal(t, []string{
		"Linha 3: campo(s) obrigatório(s) vazio(s): numero_serie",
		"Linha 5: Número de série já cadastrado",
	}, result.Erros)

	// Sem empréstimo o device entra como Disponível.
	d := f.projection(t, "S1")
	require.NotNil(t, d)
	assert.Equal(t, entities.DeviceAvailable, d.Status)
}

func TestImportService_MissingColumnsRejectsFile(t *testing.T) {
	f := newFixture(t)

	_, err := f.importer.Import(testutil.AdminCtx(), ImportDevices, strings.NewReader("modelo,cor\nAir,Prata\n"), "devices.csv")
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Equal(t, "Colunas obrigatórias não encontradas: tipo, numero_serie", httpErr.Message)
	assert.Equal(t, int64(0), f.count(t, "devices"))
}

func TestImportService_StudentsWithDuplicates(t *testing.T) {
	f := newFixture(t)

	csv := "Nome Completo,E-mail,CPF,Tem_Apple_ID\n" +
		"Ana,ana@academy.com,111.111.111-11,Sim\n" +
		"Bia,ana@academy.com,,Não\n" +
		"Caio,,,\n"
	result, err := f.importer.Import(testutil.AdminCtx(), ImportStudents, strings.NewReader(csv), "alunos.csv")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Sucessos)
	require.Len(t, result.Erros, 2)
	assert.Equal(t, "Linha 3: E-mail já cadastrado", result.Erros[0])
	assert.Equal(t, "Linha 4: nome e email são obrigatórios", result.Erros[1])
	assert.Equal(t, int64(1), f.count(t, "alunos"))
}

func TestImportService_EquipmentTemplateRunsSync(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()

	var buf bytes.Buffer
	name, err := f.exporter.Template(ctx, ImportEquipment, &buf)
	require.NoError(t, err)
	assert.Equal(t, "template_equipment_control.xlsx", name)

	result, err := f.importer.Import(ctx, ImportEquipment, bytes.NewReader(buf.Bytes()), name)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Sucessos)
	assert.Empty(t, result.Erros)

	assert.Equal(t, int64(3), f.count(t, "equipment_control"))
	assert.Equal(t, int64(2), f.count(t, "devices"))

	d := f.projection(t, "ABC123XYZ")
	require.NotNil(t, d)
	assert.Equal(t, "Sala A101", d.Nome.String)
	assert.Equal(t, "Chip A17 Pro", d.Chip.String)
	assert.Nil(t, f.projection(t, "GHI789RST"))
}

func TestImportService_EntityAndPermission(t *testing.T) {
	f := newFixture(t)

	_, err := f.importer.Import(testutil.AdminCtx(), "livros", strings.NewReader("x\n1\n"), "x.csv")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	prof := testutil.UserCtx(2, types.RoleProfessor)
	_, err = f.importer.Import(prof, ImportEquipment, strings.NewReader("tipo,numero_serie\niPad,E1\n"), "x.csv")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	result, err := f.importer.Import(prof, ImportStudents, strings.NewReader("nome,email\nAna,ana@academy.com\n"), "x.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sucessos)
}

func TestExportService_DevicesSheet(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.UserCtx(2, types.RoleProfessor)
	f.createDevice(t, "S1")

	var buf bytes.Buffer
	name, err := f.exporter.Export(ctx, "devices", &buf)
	require.NoError(t, err)
	assert.Regexp(t, `^devices_export_\d{8}_\d{6}\.xlsx$`, name)

	sheet, err := spreadsheet.ReadXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)

	mapping, missing := spreadsheet.Resolve(sheet.Headers, []spreadsheet.Field{
		{Name: "serial", Synonyms: []string{"NumeroSerie"}, Required: true},
		{Name: "emprestimo", Synonyms: []string{"ParaEmprestimo"}, Required: true},
	})
	require.Empty(t, missing)
	rec := mapping.Record(sheet.Rows[0])
	assert.Equal(t, "S1", rec.Get("serial"))
	assert.Equal(t, "Sim", rec.Get("emprestimo"))

	_, err = f.exporter.Export(ctx, "inventory", &buf)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.exporter.Export(ctx, "livros", &buf)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.exporter.Template(testutil.AdminCtx(), "livros", &buf)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
