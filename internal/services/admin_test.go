package services

import (
	"context"
	"testing"

	"academy-manager/internal/dto"
	"academy-manager/internal/entities"
	"academy-manager/internal/testutil"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_LockoutAfterFailedAttempts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	principal, err := f.auth.Login(ctx, dto.LoginDTO{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, types.RoleAdmin, principal.Role)

	for i := 0; i < 3; i++ {
		_, err = f.auth.Login(ctx, dto.LoginDTO{Username: "admin", Password: "errada"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	_, err = f.auth.Login(ctx, dto.LoginDTO{Username: "admin", Password: "admin123"})
	assert.ErrorIs(t, err, apperrors.ErrTooManyAttempts)

	// Outro usuário não é afetado.
	_, err = f.auth.Login(ctx, dto.LoginDTO{Username: "ninguem", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()

	err := f.auth.ChangePassword(ctx, dto.ChangePasswordDTO{SenhaAtual: "errada", NovaSenha: "nova-senha"})
	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)

	require.NoError(t, f.auth.ChangePassword(ctx, dto.ChangePasswordDTO{SenhaAtual: "admin123", NovaSenha: "nova-senha"}))

	_, err = f.auth.Login(context.Background(), dto.LoginDTO{Username: "admin", Password: "nova-senha"})
	assert.NoError(t, err)
}

func TestUserService_SelfGuards(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()
	var invalid *apperrors.InvalidInputError

	err := f.users.DeleteUser(ctx, 1)
	require.ErrorAs(t, err, &invalid)

	err = f.users.UpdateUser(ctx, 1, dto.UpdateUserDTO{Username: "admin", Role: types.RoleUser})
	require.ErrorAs(t, err, &invalid)

	id, err := f.users.CreateUser(ctx, dto.CreateUserDTO{Username: "prof", Password: "segredo", Role: types.RoleProfessor})
	require.NoError(t, err)

	_, err = f.users.CreateUser(ctx, dto.CreateUserDTO{Username: "prof", Password: "segredo", Role: types.RoleUser})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	password, err := f.users.ResetPassword(ctx, id, dto.ResetPasswordDTO{})
	require.NoError(t, err)
	_, err = f.auth.Login(context.Background(), dto.LoginDTO{Username: "prof", Password: password})
	require.NoError(t, err)

	_, _, err = f.users.GetUsers(testutil.UserCtx(id, types.RoleProfessor), types.Filter{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, f.users.DeleteUser(ctx, id))
}

func TestStudentService_DeleteGuards(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()

	ana := f.createStudent(t, "Ana", "ana@academy.com")
	bia := f.createStudent(t, "Bia", "bia@academy.com")
	s1 := f.createDevice(t, "S1")

	loanID, err := f.loans.CreateLoan(ctx, dto.CreateLoanDTO{AlunoID: ana, DeviceID: s1})
	require.NoError(t, err)

	err = f.students.DeleteStudent(ctx, ana)
	var conflict *apperrors.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, map[string]interface{}{"ids": []uint64{ana}}, conflict.Details)

	// O lote inteiro é recusado.
	_, err = f.students.BulkDeleteStudents(ctx, []uint64{ana, bia})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, int64(2), f.count(t, "alunos"))

	require.NoError(t, f.loans.ReturnLoan(ctx, loanID))
	deleted, err := f.students.BulkDeleteStudents(ctx, []uint64{ana, bia})
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.Equal(t, int64(0), f.count(t, "emprestimos"))
}

func TestDeviceTypeService_RenameAndDeleteInUse(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()

	id, err := f.types.CreateDeviceType(ctx, dto.CreateDeviceTypeDTO{Nome: "Vision Pro", Categoria: "Headset"})
	require.NoError(t, err)
	_, err = f.devices.CreateDevice(ctx, dto.CreateDeviceDTO{Tipo: "Vision Pro", NumeroSerie: "VP1"})
	require.NoError(t, err)

	// Mudar só a descrição é permitido.
	err = f.types.UpdateDeviceType(ctx, id, dto.UpdateDeviceTypeDTO{Nome: "Vision Pro", Categoria: "Headset", Descricao: "Realidade mista"})
	require.NoError(t, err)

	err = f.types.UpdateDeviceType(ctx, id, dto.UpdateDeviceTypeDTO{Nome: "Apple Vision", Categoria: "Headset"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	err = f.types.DeleteDeviceType(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	dt, err := f.types.FindDeviceType(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Realidade mista", dt.Descricao.String)
}

func TestEventService_RangeAndValidation(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.UserCtx(1, types.RoleProfessor)

	_, err := f.events.CreateEvent(ctx, dto.CreateEventDTO{
		Titulo: "Invertido", DataInicio: "2024-05-10 14:00:00", DataFim: "2024-05-10 12:00:00",
	})
	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)

	id, err := f.events.CreateEvent(ctx, dto.CreateEventDTO{
		Titulo: "Workshop Swift", DataInicio: "2024-05-10 14:00:00", DataFim: "2024-05-10 17:00:00",
	})
	require.NoError(t, err)
	_, err = f.events.CreateEvent(ctx, dto.CreateEventDTO{
		Titulo: "Demo Day", DataInicio: "2024-06-20 09:00:00", DataFim: "2024-06-20 18:00:00",
	})
	require.NoError(t, err)

	may, err := f.events.GetEvents(ctx, dto.EventRangeDTO{Start: "2024-05-01 00:00:00", End: "2024-05-31 23:59:59"})
	require.NoError(t, err)
	require.Len(t, may, 1)
	assert.Equal(t, id, may[0].ID)
	assert.Equal(t, entities.DefaultEventColor, may[0].Cor)
	assert.Equal(t, "admin", may[0].CriadoPorNome.String)

	_, err = f.events.GetEvents(ctx, dto.EventRangeDTO{Start: "ontem"})
	require.ErrorAs(t, err, &invalid)

	require.NoError(t, f.events.DeleteEvent(ctx, id))
	_, err = f.events.FindEvent(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDashboardService_Stats(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()

	ana := f.createStudent(t, "Ana", "ana@academy.com")
	s1 := f.createDevice(t, "S1")
	f.createDevice(t, "S2")
	_, err := f.devices.CreateDevice(ctx, dto.CreateDeviceDTO{Tipo: "iPad", NumeroSerie: "S3", Status: entities.DeviceMaintenance})
	require.NoError(t, err)

	_, err = f.loans.CreateLoan(ctx, dto.CreateLoanDTO{AlunoID: ana, DeviceID: s1})
	require.NoError(t, err)

	stats, err := f.dashboard.GetStats(testutil.UserCtx(2, types.RoleUser))
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Alunos.Total)
	assert.Equal(t, int64(1), stats.Alunos.Regular)
	assert.Equal(t, int64(3), stats.Devices.ParaEmprestimo)
	assert.Equal(t, int64(1), stats.Devices.Emprestados)
	assert.Equal(t, int64(1), stats.Devices.Disponiveis)
	assert.Equal(t, int64(1), stats.Devices.Manutencao)
	assert.Equal(t, int64(1), stats.EmprestimosAtivos)
	require.Len(t, stats.UltimosEmprestimos, 1)
	assert.Equal(t, "Ana", stats.UltimosEmprestimos[0].AlunoNome)
	// devices sem empréstimo também entram no ranking, com total zero
	require.Len(t, stats.DevicesMaisUsados, 3)
	assert.Equal(t, s1, stats.DevicesMaisUsados[0].DeviceID)
	assert.Equal(t, int64(1), stats.DevicesMaisUsados[0].Total)
	assert.Equal(t, int64(0), stats.DevicesMaisUsados[1].Total)
	assert.Equal(t, int64(0), stats.DevicesMaisUsados[2].Total)
}
