package services

import (
	"context"
	"testing"

	"academy-manager/internal/dto"
	"academy-manager/internal/entities"
	"academy-manager/internal/testutil"
	"academy-manager/pkg/coerce"
	apperrors "academy-manager/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) projection(t *testing.T, serial string) *entities.Device {
	t.Helper()
	d, err := f.deviceRepo.FindBySerialTx(context.Background(), f.db, serial)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	require.NoError(t, err)
	return d
}

func TestEquipmentService_CreateProjectsDevice(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()

	_, err := f.equipment.CreateEquipment(ctx, dto.CreateEquipmentDTO{
		TipoDevice:  "MacBook",
		NumeroSerie: "MB-1",
		Modelo:      "Air",
		Local:       "Sala 2",
		Convenio:    "Apple",
		Processador: "M2",
	})
	require.NoError(t, err)

	d := f.projection(t, "MB-1")
	require.NotNil(t, d)
	assert.Equal(t, "MacBook", d.Tipo)
	assert.Equal(t, "Sala 2", d.Nome.String)
	assert.Equal(t, "M2", d.Chip.String)
	assert.Equal(t, entities.DeviceAvailable, d.Status)
	assert.Equal(t, "Local: Sala 2 | Convênio: Apple", d.Observacao.String)

	_, err = f.equipment.CreateEquipment(ctx, dto.CreateEquipmentDTO{
		TipoDevice:     "iPad",
		NumeroSerie:    "IP-1",
		ParaEmprestimo: coerce.NewFlag(false),
	})
	require.NoError(t, err)
	assert.Nil(t, f.projection(t, "IP-1"))
}

func TestEquipmentService_LoanedWithoutLoanBecomesReserved(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()

	_, err := f.equipment.CreateEquipment(ctx, dto.CreateEquipmentDTO{
		TipoDevice:  "iPad",
		NumeroSerie: "IP-2",
		Status:      entities.DeviceLoaned,
	})
	require.NoError(t, err)

	d := f.projection(t, "IP-2")
	require.NotNil(t, d)
	assert.Equal(t, entities.DeviceReserved, d.Status)
}

func TestEquipmentService_UpdateKeepsLoanedProjection(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()

	id, err := f.equipment.CreateEquipment(ctx, dto.CreateEquipmentDTO{TipoDevice: "iPad", NumeroSerie: "IP-3"})
	require.NoError(t, err)
	device := f.projection(t, "IP-3")
	require.NotNil(t, device)

	ana := f.createStudent(t, "Ana", "ana@academy.com")
	_, err = f.loans.CreateLoan(ctx, dto.CreateLoanDTO{AlunoID: ana, DeviceID: device.ID})
	require.NoError(t, err)

	// O empréstimo ativo prevalece sobre o status informado no equipment.
	err = f.equipment.UpdateEquipment(ctx, id, dto.UpdateEquipmentDTO{
		TipoDevice: "iPad", NumeroSerie: "IP-3", Status: entities.DeviceAvailable, Cor: "Prata",
	})
	require.NoError(t, err)
	device = f.projection(t, "IP-3")
	assert.Equal(t, entities.DeviceLoaned, device.Status)
	assert.Equal(t, "Prata", device.Cor.String)

	// Tirar da lista de empréstimos falha enquanto o device está emprestado.
	err = f.equipment.UpdateEquipment(ctx, id, dto.UpdateEquipmentDTO{
		TipoDevice: "iPad", NumeroSerie: "IP-3", Status: entities.DeviceMaintenance,
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	err = f.equipment.DeleteEquipment(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = f.equipment.BulkDeleteEquipment(ctx, []uint64{id})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, int64(1), f.count(t, "equipment_control"))
}

func TestEquipmentService_LoanedConflictKeepsSerialVerbatim(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()

	id, err := f.equipment.CreateEquipment(ctx, dto.CreateEquipmentDTO{TipoDevice: "iPad", NumeroSerie: "IP-%d"})
	require.NoError(t, err)
	device := f.projection(t, "IP-%d")
	require.NotNil(t, device)

	ana := f.createStudent(t, "Ana", "ana@academy.com")
	_, err = f.loans.CreateLoan(ctx, dto.CreateLoanDTO{AlunoID: ana, DeviceID: device.ID})
	require.NoError(t, err)

	err = f.equipment.UpdateEquipment(ctx, id, dto.UpdateEquipmentDTO{
		TipoDevice: "iPad", NumeroSerie: "IP-%d", Status: entities.DeviceMaintenance,
	})
	var conflict *apperrors.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Device IP-%d está emprestado e não pode ser removido", conflict.Message)
}

func TestEquipmentService_SerialChangeMovesProjection(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()

	id, err := f.equipment.CreateEquipment(ctx, dto.CreateEquipmentDTO{TipoDevice: "iPad", NumeroSerie: "OLD"})
	require.NoError(t, err)

	err = f.equipment.UpdateEquipment(ctx, id, dto.UpdateEquipmentDTO{TipoDevice: "iPad", NumeroSerie: "NEW"})
	require.NoError(t, err)
	assert.Nil(t, f.projection(t, "OLD"))
	assert.NotNil(t, f.projection(t, "NEW"))

	require.NoError(t, f.equipment.DeleteEquipment(ctx, id))
	assert.Nil(t, f.projection(t, "NEW"))
	assert.Equal(t, int64(0), f.count(t, "devices"))
}

func TestProjectDevice_Defaults(t *testing.T) {
	d := ProjectDevice(entities.Equipment{NumeroSerie: "X9", Status: entities.DeviceAvailable})
	assert.Equal(t, defaultDeviceType, d.Tipo)
	assert.Equal(t, "Outro - X9", d.Nome.String)
	assert.False(t, d.Observacao.Valid)
	assert.True(t, d.ParaEmprestimo)
}

func TestDeviceService_StatusGuards(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()

	_, err := f.devices.CreateDevice(ctx, dto.CreateDeviceDTO{Tipo: "iPad", NumeroSerie: "D0", Status: entities.DeviceLoaned})
	var rule *apperrors.BusinessRuleError
	require.ErrorAs(t, err, &rule)

	s1 := f.createDevice(t, "D1")
	_, err = f.devices.CreateDevice(ctx, dto.CreateDeviceDTO{Tipo: "iPad", NumeroSerie: "D1"})
	var conflict *apperrors.ConflictError
	require.ErrorAs(t, err, &conflict)

	_, err = f.devices.UpdateDevice(ctx, s1, dto.UpdateDeviceDTO{Tipo: "iPad", NumeroSerie: "D1", Status: entities.DeviceLoaned})
	require.ErrorAs(t, err, &rule)

	ana := f.createStudent(t, "Ana", "ana@academy.com")
	_, err = f.loans.CreateLoan(ctx, dto.CreateLoanDTO{AlunoID: ana, DeviceID: s1})
	require.NoError(t, err)

	// Com empréstimo ativo o status continua Emprestado.
	removed, err := f.devices.UpdateDevice(ctx, s1, dto.UpdateDeviceDTO{Tipo: "iPad", NumeroSerie: "D1", Status: entities.DeviceMaintenance})
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, entities.DeviceLoaned, f.deviceStatus(t, s1))

	_, err = f.devices.UpdateDevice(ctx, s1, dto.UpdateDeviceDTO{Tipo: "iPad", NumeroSerie: "D1", ParaEmprestimo: coerce.NewFlag(false)})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	err = f.devices.DeleteDevice(ctx, s1)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestDeviceService_LeavingLoanListRemovesDeviceAndHistory(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()
	ana := f.createStudent(t, "Ana", "ana@academy.com")
	s1 := f.createDevice(t, "D2")

	loanID, err := f.loans.CreateLoan(ctx, dto.CreateLoanDTO{AlunoID: ana, DeviceID: s1})
	require.NoError(t, err)
	require.NoError(t, f.loans.ReturnLoan(ctx, loanID))

	removed, err := f.devices.UpdateDevice(ctx, s1, dto.UpdateDeviceDTO{Tipo: "iPad", NumeroSerie: "D2", ParaEmprestimo: coerce.NewFlag(false)})
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, int64(0), f.count(t, "devices"))
	assert.Equal(t, int64(0), f.count(t, "emprestimos"))
}
