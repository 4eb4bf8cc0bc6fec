package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"academy-manager/internal/entities"
	"academy-manager/internal/repositories"
	"academy-manager/pkg/database"
	apperrors "academy-manager/pkg/errors"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

const defaultDeviceType = "Outro"

// SyncAction diz o que aconteceu com a projeção em devices.
type SyncAction string

const (
	SyncNone    SyncAction = "nenhuma"
	SyncCreated SyncAction = "criado"
	SyncUpdated SyncAction = "atualizado"
	SyncRemoved SyncAction = "removido"
)

// projectedStatuses são os status de equipment que mantêm o device na lista de empréstimos.
var projectedStatuses = map[string]bool{
	entities.DeviceAvailable: true,
	entities.DeviceLoaned:    true,
	entities.DeviceReserved:  true,
}

// DeviceSync mantém devices como projeção de equipment_control, sempre dentro da transação de quem chama.
type DeviceSync struct {
	deviceRepo repositories.DeviceRepositoryInterface
	loanRepo   repositories.LoanRepositoryInterface
	logger     *zap.Logger
}

func NewDeviceSync(
	deviceRepo repositories.DeviceRepositoryInterface,
	loanRepo repositories.LoanRepositoryInterface,
	logger *zap.Logger,
) *DeviceSync {
	return &DeviceSync{deviceRepo: deviceRepo, loanRepo: loanRepo, logger: logger}
}

// Apply reconcilia o device de mesmo número de série com o equipment.
// previousSerial é o serial antes de uma edição; se mudou, a projeção antiga sai.
func (s *DeviceSync) Apply(ctx context.Context, tx database.Querier, e entities.Equipment, previousSerial string) (SyncAction, error) {
	if previousSerial != "" && previousSerial != e.NumeroSerie {
		if _, err := s.Remove(ctx, tx, previousSerial); err != nil {
			return SyncNone, err
		}
	}

	if !e.ParaEmprestimo || !projectedStatuses[e.Status] {
		return s.Remove(ctx, tx, e.NumeroSerie)
	}

	projection := ProjectDevice(e)

	existing, err := s.deviceRepo.FindBySerialTx(ctx, tx, e.NumeroSerie)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return SyncNone, err
	}

	if existing == nil {
		// Sem empréstimo não existe device Emprestado.
		if projection.Status == entities.DeviceLoaned {
			projection.Status = entities.DeviceReserved
		}
		if _, err := s.deviceRepo.CreateDevice(ctx, tx, projection); err != nil {
			return SyncNone, err
		}
		s.logger.Debug("Device criado pela sincronização", zap.String("numero_serie", e.NumeroSerie))
		return SyncCreated, nil
	}

	onLoan, err := s.loanRepo.HasActiveLoanTx(ctx, tx, existing.ID)
	if err != nil {
		return SyncNone, err
	}
	switch {
	case onLoan:
		projection.Status = entities.DeviceLoaned
	case projection.Status == entities.DeviceLoaned:
		projection.Status = entities.DeviceReserved
	}

	// Campos que o equipment não informa continuam como estão no device.
	projection.Polegadas = existing.Polegadas
	projection.Ano = existing.Ano
	if !projection.Chip.Valid {
		projection.Chip = existing.Chip
	}
	projection.VersaoOS = existing.VersaoOS
	if !projection.Memoria.Valid {
		projection.Memoria = existing.Memoria
	}

	if err := s.deviceRepo.UpdateDevice(ctx, tx, existing.ID, projection); err != nil {
		return SyncNone, err
	}
	return SyncUpdated, nil
}

// Remove apaga a projeção do serial. Device emprestado nunca sai.
func (s *DeviceSync) Remove(ctx context.Context, tx database.Querier, serial string) (SyncAction, error) {
	existing, err := s.deviceRepo.FindBySerialTx(ctx, tx, serial)
	if errors.Is(err, apperrors.ErrNotFound) {
		return SyncNone, nil
	}
	if err != nil {
		return SyncNone, err
	}

	onLoan, err := s.loanRepo.HasActiveLoanTx(ctx, tx, existing.ID)
	if err != nil {
		return SyncNone, err
	}
	if onLoan {
		return SyncNone, apperrors.NewConflictError("Device %s está emprestado e não pode ser removido", serial)
	}

	if _, err := s.loanRepo.DeleteFinishedByDevicesTx(ctx, tx, []uint64{existing.ID}); err != nil {
		return SyncNone, err
	}
	if _, err := s.deviceRepo.DeleteDevices(ctx, tx, []uint64{existing.ID}); err != nil {
		return SyncNone, err
	}
	s.logger.Debug("Device removido pela sincronização", zap.String("numero_serie", serial))
	return SyncRemoved, nil
}

// ProjectDevice monta o device correspondente a um equipment.
func ProjectDevice(e entities.Equipment) entities.Device {
	tipo := strings.TrimSpace(e.TipoDevice)
	if tipo == "" {
		tipo = defaultDeviceType
	}

	return entities.Device{
		Tipo:           tipo,
		Modelo:         e.Modelo,
		Cor:            e.Cor,
		Chip:           e.Processador,
		Memoria:        e.Memoria,
		Nome:           null.StringFrom(projectedName(tipo, e)),
		NumeroSerie:    e.NumeroSerie,
		Status:         e.Status,
		ParaEmprestimo: true,
		Observacao:     projectedNote(e),
	}
}

func projectedName(tipo string, e entities.Equipment) string {
	if v := strings.TrimSpace(e.Local.String); e.Local.Valid && v != "" {
		return v
	}
	if v := strings.TrimSpace(e.Responsavel.String); e.Responsavel.Valid && v != "" {
		return v
	}
	return fmt.Sprintf("%s - %s", tipo, e.NumeroSerie)
}

func projectedNote(e entities.Equipment) null.String {
	note := strings.TrimSpace(e.Observacao.String)
	labels := []struct {
		label string
		value null.String
	}{
		{"Responsável", e.Responsavel},
		{"Local", e.Local},
		{"Convênio", e.Convenio},
	}
	for _, l := range labels {
		if v := strings.TrimSpace(l.value.String); l.value.Valid && v != "" {
			note += fmt.Sprintf(" | %s: %s", l.label, v)
		}
	}
	note = strings.TrimSpace(strings.Trim(strings.TrimSpace(note), "|"))
	if note == "" {
		return null.String{}
	}
	return null.StringFrom(note)
}
