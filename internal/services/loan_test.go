package services

import (
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

// Ana pega o iPad S1, ninguém mais consegue, e a devolução libera o device.
func TestLoanService_AnaBorrowsAndReturnsS1(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.UserCtx(2, types.RoleProfessor)

	ana := f.createStudent(t, "Ana", "ana@academy.com")
	bia := f.createStudent(t, "Bia", "bia@academy.com")
	s1 := f.createDevice(t, "S1")

	loanID, err := f.loans.CreateLoan(ctx, dto.CreateLoanDTO{AlunoID: ana, DeviceID: s1})
	require.NoError(t, err)
	assert.Equal(t, entities.DeviceLoaned, f.deviceStatus(t, s1))

	_, err = f.loans.CreateLoan(ctx, dto.CreateLoanDTO{AlunoID: bia, DeviceID: s1})
	var rule *apperrors.BusinessRuleError
	require.ErrorAs(t, err, &rule)
	assert.Equal(t, int64(1), f.count(t, "emprestimos"))

	require.NoError(t, f.loans.ReturnLoan(ctx, loanID))
	assert.Equal(t, entities.DeviceAvailable, f.deviceStatus(t, s1))

	loan, err := f.loans.FindLoan(ctx, loanID)
	require.NoError(t, err)
	assert.Equal(t, entities.LoanFinished, loan.Status)

	err = f.loans.ReturnLoan(ctx, loanID)
	require.ErrorAs(t, err, &rule)
}

func TestLoanService_RejectsUnknownStudentAndDevice(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()
	ana := f.createStudent(t, "Ana", "ana@academy.com")
	s1 := f.createDevice(t, "S1")

	var rule *apperrors.BusinessRuleError
	_, err := f.loans.CreateLoan(ctx, dto.CreateLoanDTO{AlunoID: 999, DeviceID: s1})
	require.ErrorAs(t, err, &rule)
	assert.Equal(t, "Aluno não encontrado", rule.Message)

	_, err = f.loans.CreateLoan(ctx, dto.CreateLoanDTO{AlunoID: ana, DeviceID: 999})
	require.ErrorAs(t, err, &rule)
	assert.Equal(t, "Device não encontrado", rule.Message)

	assert.Equal(t, entities.DeviceAvailable, f.deviceStatus(t, s1))
}

func TestLoanService_MaintenanceDeviceCannotBeLoaned(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()
	ana := f.createStudent(t, "Ana", "ana@academy.com")
	id, err := f.devices.CreateDevice(ctx, dto.CreateDeviceDTO{Tipo: "iPad", NumeroSerie: "M1", Status: entities.DeviceMaintenance})
	require.NoError(t, err)

	_, err = f.loans.CreateLoan(ctx, dto.CreateLoanDTO{AlunoID: ana, DeviceID: id})
	var rule *apperrors.BusinessRuleError
	require.ErrorAs(t, err, &rule)
	assert.Equal(t, entities.DeviceMaintenance, f.deviceStatus(t, id))
}

func TestLoanService_DeleteActiveLoanFreesDevice(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()
	ana := f.createStudent(t, "Ana", "ana@academy.com")
	s1 := f.createDevice(t, "S1")
	s2 := f.createDevice(t, "S2")

	l1, err := f.loans.CreateLoan(ctx, dto.CreateLoanDTO{AlunoID: ana, DeviceID: s1})
	require.NoError(t, err)
	l2, err := f.loans.CreateLoan(ctx, dto.CreateLoanDTO{AlunoID: ana, DeviceID: s2, DataRetirada: "2024-03-01"})
	require.NoError(t, err)

	require.NoError(t, f.loans.DeleteLoan(ctx, l1))
	assert.Equal(t, entities.DeviceAvailable, f.deviceStatus(t, s1))
	assert.Equal(t, entities.DeviceLoaned, f.deviceStatus(t, s2))

	deleted, err := f.loans.BulkDeleteLoans(ctx, []uint64{l2})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.Equal(t, entities.DeviceAvailable, f.deviceStatus(t, s2))
	assert.Equal(t, int64(0), f.count(t, "emprestimos"))
}

func TestLoanService_UsesClockForPickup(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()
	now := time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)
	f.loans.WithClock(fixedClock(now))

	ana := f.createStudent(t, "Ana", "ana@academy.com")
	s1 := f.createDevice(t, "S1")
	id, err := f.loans.CreateLoan(ctx, dto.CreateLoanDTO{AlunoID: ana, DeviceID: s1, DataDevolucao: "2024-05-17"})
	require.NoError(t, err)

	loan, err := f.loans.FindLoan(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10 14:30:00", loan.DataRetirada)
	assert.Equal(t, "2024-05-17", loan.DataDevolucao.String)
}

func TestLoanService_BulkDeleteRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	_, err := f.loans.BulkDeleteLoans(testutil.UserCtx(5, types.RoleUser), []uint64{1})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestBulkDeletes_RejectEmptyIDList(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()

	bulkDeletes := map[string]func([]uint64) (int, error){
		"alunos":      func(ids []uint64) (int, error) { return f.students.BulkDeleteStudents(ctx, ids) },
		"devices":     func(ids []uint64) (int, error) { return f.devices.BulkDeleteDevices(ctx, ids) },
		"equipment":   func(ids []uint64) (int, error) { return f.equipment.BulkDeleteEquipment(ctx, ids) },
		"inventory":   func(ids []uint64) (int, error) { return f.inventory.BulkDeleteItems(ctx, ids) },
		"emprestimos": func(ids []uint64) (int, error) { return f.loans.BulkDeleteLoans(ctx, ids) },
	}

	for name, del := range bulkDeletes {
		t.Run(name, func(t *testing.T) {
			var invalid *apperrors.InvalidInputError
			deleted, err := del(nil)
			require.ErrorAs(t, err, &invalid)
			assert.Zero(t, deleted)
		})
	}
}
