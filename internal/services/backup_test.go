package services

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"academy-manager/internal/dto"
	"academy-manager/internal/entities"
	"academy-manager/internal/testutil"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupService_DumpAndRestoreRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()
	f.backup.WithClock(fixedClock(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)))

	ana := f.createStudent(t, "Ana D'Ávila", "ana@academy.com")
	s1 := f.createDevice(t, "S1")
	_, err := f.loans.CreateLoan(ctx, dto.CreateLoanDTO{AlunoID: ana, DeviceID: s1})
	require.NoError(t, err)

	var buf bytes.Buffer
	name, err := f.backup.Dump(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, "backup_apple_academy_20240601_080000.sql", name)
	assert.Contains(t, buf.String(), "DELETE FROM emprestimos;")
	assert.Contains(t, buf.String(), "'Ana D''Ávila'")

	// Os filhos são apagados antes dos pais.
	dump := buf.String()
	assert.Less(t, strings.Index(dump, "DELETE FROM emprestimos;"), strings.Index(dump, "DELETE FROM alunos;"))

	_, err = f.students.CreateStudent(ctx, dto.CreateStudentDTO{Nome: "Bia", Email: "bia@academy.com"})
	require.NoError(t, err)
	require.Equal(t, int64(2), f.count(t, "alunos"))

	result, err := f.backup.Restore(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, result.Erros)
	assert.Positive(t, result.Executados)

	assert.Equal(t, int64(1), f.count(t, "alunos"))
	assert.Equal(t, int64(1), f.count(t, "emprestimos"))
	assert.Equal(t, entities.DeviceLoaned, f.deviceStatus(t, s1))

	student, err := f.students.FindStudent(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, "Ana D'Ávila", student.Nome)
}

func TestBackupService_RestoreCountsBrokenStatements(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()

	script := "LOCK TABLES `alunos` WRITE;\n" +
		"INSERT INTO alunos (id, nome, email) VALUES (10, 'Ana', 'ana@academy.com');\n" +
		"INSERT INTO tabela_que_nao_existe (id) VALUES (1);\n" +
		"UNLOCK TABLES;\n"
	result, err := f.backup.Restore(ctx, strings.NewReader(script))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Executados)
	require.Len(t, result.Erros, 1)
	assert.Contains(t, result.Erros[0], "tabela_que_nao_existe")
	assert.Equal(t, int64(1), f.count(t, "alunos"))
}

func TestBackupService_FilesLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()

	f.backup.WithClock(fixedClock(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)))
	first, err := f.backup.CreateBackup(ctx)
	require.NoError(t, err)
	assert.Equal(t, "backup_academy_20240601_080000.sql", first.Nome)

	f.backup.WithClock(fixedClock(time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)))
	second, err := f.backup.CreateBackup(ctx)
	require.NoError(t, err)

	// Arquivos fora do padrão não aparecem na listagem.
	require.NoError(t, os.WriteFile(filepath.Join(f.backup.backupDir, "notas.txt"), []byte("x"), 0o644))

	list, err := f.backup.ListBackups(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	path, err := f.backup.BackupPath(ctx, second.Nome)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = f.backup.BackupPath(ctx, "../academy.db")
	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)

	_, err = f.backup.BackupPath(ctx, "backup_academy_nao_existe.sql")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	deleted, err := f.backup.DeleteBackups(ctx, []string{first.Nome, "../x.sql", second.Nome})
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	list, err = f.backup.ListBackups(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBackupService_RequiresAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.UserCtx(2, types.RoleProfessor)

	_, err := f.backup.Dump(ctx, &bytes.Buffer{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = f.backup.Restore(ctx, strings.NewReader("SELECT 1;"))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = f.backup.ListBackups(ctx)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
