package services

import (
	"context"
	"strings"

	"academy-manager/internal/authz"
	"academy-manager/internal/dto"
	"academy-manager/internal/entities"
	"academy-manager/internal/repositories"
	"academy-manager/pkg/database"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/types"
	"academy-manager/pkg/utils"

	"go.uber.org/zap"
)

type DeviceServiceInterface interface {
	GetDevices(ctx context.Context, filter types.Filter) ([]dto.DeviceDTO, uint64, error)
	GetAvailableDevices(ctx context.Context) ([]dto.DeviceDTO, error)
	FindDevice(ctx context.Context, id uint64) (*dto.DeviceDTO, error)
	CreateDevice(ctx context.Context, payload dto.CreateDeviceDTO) (uint64, error)
	// UpdateDevice devolve true quando o device saiu da lista de empréstimos e foi removido.
	UpdateDevice(ctx context.Context, id uint64, payload dto.UpdateDeviceDTO) (bool, error)
	DeleteDevice(ctx context.Context, id uint64) error
	BulkDeleteDevices(ctx context.Context, ids []uint64) (int, error)
}

type DeviceService struct {
	deviceRepo repositories.DeviceRepositoryInterface
	loanRepo   repositories.LoanRepositoryInterface
	txManager  repositories.TxManagerInterface
	logger     *zap.Logger
}

func NewDeviceService(
	deviceRepo repositories.DeviceRepositoryInterface,
	loanRepo repositories.LoanRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) DeviceServiceInterface {
	return &DeviceService{deviceRepo: deviceRepo, loanRepo: loanRepo, txManager: txManager, logger: logger}
}

func deviceToDTO(d entities.Device) dto.DeviceDTO {
	return dto.DeviceDTO{
		ID:             d.ID,
		Tipo:           d.Tipo,
		Modelo:         d.Modelo,
		Cor:            d.Cor,
		Polegadas:      d.Polegadas,
		Ano:            d.Ano,
		Nome:           d.Nome,
		Chip:           d.Chip,
		Memoria:        d.Memoria,
		NumeroSerie:    d.NumeroSerie,
		VersaoOS:       d.VersaoOS,
		Status:         d.Status,
		ParaEmprestimo: d.ParaEmprestimo,
		Observacao:     d.Observacao,
		DataCadastro:   utils.NullDateTime(d.DataCadastro),
	}
}

func devicesToDTO(devices []entities.Device) []dto.DeviceDTO {
	result := make([]dto.DeviceDTO, 0, len(devices))
	for _, d := range devices {
		result = append(result, deviceToDTO(d))
	}
	return result
}

// normalizeDeviceStatus: vazio ou desconhecido vira Disponível.
func normalizeDeviceStatus(s string) string {
	s = strings.TrimSpace(s)
	for _, st := range entities.DeviceStatuses {
		if strings.EqualFold(s, st) {
			return st
		}
	}
	return entities.DeviceAvailable
}

func deviceFromDTO(payload dto.CreateDeviceDTO) entities.Device {
	return entities.Device{
		Tipo:           strings.TrimSpace(payload.Tipo),
		Modelo:         utils.NullIfEmpty(payload.Modelo),
		Cor:            utils.NullIfEmpty(payload.Cor),
		Polegadas:      utils.NullIfEmpty(string(payload.Polegadas)),
		Ano:            utils.NullIfEmpty(string(payload.Ano)),
		Nome:           utils.NullIfEmpty(payload.Nome),
		Chip:           utils.NullIfEmpty(payload.Chip),
		Memoria:        utils.NullIfEmpty(payload.Memoria),
		NumeroSerie:    strings.TrimSpace(payload.NumeroSerie),
		VersaoOS:       utils.NullIfEmpty(payload.VersaoOS),
		Status:         normalizeDeviceStatus(payload.Status),
		ParaEmprestimo: payload.ParaEmprestimo.Or(true),
		Observacao:     utils.NullIfEmpty(payload.Observacao),
	}
}

func (s *DeviceService) GetDevices(ctx context.Context, filter types.Filter) ([]dto.DeviceDTO, uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.DevicesView); err != nil {
		return nil, 0, err
	}
	devices, total, err := s.deviceRepo.GetDevices(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return devicesToDTO(devices), total, nil
}

func (s *DeviceService) GetAvailableDevices(ctx context.Context) ([]dto.DeviceDTO, error) {
	if _, err := authorize(ctx, s.logger, authz.DevicesView); err != nil {
		return nil, err
	}
	devices, err := s.deviceRepo.GetAvailableDevices(ctx)
	if err != nil {
		return nil, err
	}
	return devicesToDTO(devices), nil
}

func (s *DeviceService) FindDevice(ctx context.Context, id uint64) (*dto.DeviceDTO, error) {
	if _, err := authorize(ctx, s.logger, authz.DevicesView); err != nil {
		return nil, err
	}
	device, err := s.deviceRepo.FindDevice(ctx, id)
	if err != nil {
		return nil, err
	}
	result := deviceToDTO(*device)
	return &result, nil
}

func (s *DeviceService) CreateDevice(ctx context.Context, payload dto.CreateDeviceDTO) (uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.DevicesManage); err != nil {
		return 0, err
	}
	device := deviceFromDTO(payload)
	if device.Status == entities.DeviceLoaned {
		return 0, apperrors.NewBusinessRuleError("Um device novo não pode ser cadastrado como Emprestado")
	}

	var id uint64
	err := s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		var err error
		id, err = s.deviceRepo.CreateDevice(ctx, tx, device)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Device cadastrado", zap.Uint64("device_id", id), zap.String("numero_serie", device.NumeroSerie))
	return id, nil
}

func (s *DeviceService) UpdateDevice(ctx context.Context, id uint64, payload dto.UpdateDeviceDTO) (bool, error) {
	if _, err := authorize(ctx, s.logger, authz.DevicesManage); err != nil {
		return false, err
	}
	device := deviceFromDTO(dto.CreateDeviceDTO(payload))

	removed := false
	err := s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		if _, err := s.deviceRepo.FindDeviceTx(ctx, tx, id); err != nil {
			return err
		}
		onLoan, err := s.loanRepo.HasActiveLoanTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if !device.ParaEmprestimo {
			if onLoan {
				return apperrors.NewConflictError("Device está emprestado e não pode sair da lista de empréstimos")
			}
			removed = true
			return s.removeDevices(ctx, tx, []uint64{id})
		}

		switch {
		case onLoan:
			device.Status = entities.DeviceLoaned
		case device.Status == entities.DeviceLoaned:
			return apperrors.NewBusinessRuleError("Status Emprestado só é definido por um empréstimo")
		}
		return s.deviceRepo.UpdateDevice(ctx, tx, id, device)
	})
	if err != nil {
		return false, err
	}
	if removed {
		s.logger.Info("Device removido da lista de empréstimos", zap.Uint64("device_id", id))
	}
	return removed, nil
}

func (s *DeviceService) DeleteDevice(ctx context.Context, id uint64) error {
	if _, err := authorize(ctx, s.logger, authz.DevicesManage); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		if _, err := s.deviceRepo.FindDeviceTx(ctx, tx, id); err != nil {
			return err
		}
		onLoan, err := s.loanRepo.HasActiveLoanTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if onLoan {
			return apperrors.NewConflictError("Device com empréstimo ativo não pode ser excluído")
		}
		return s.removeDevices(ctx, tx, []uint64{id})
	})
}

func (s *DeviceService) BulkDeleteDevices(ctx context.Context, ids []uint64) (int, error) {
	if _, err := authorize(ctx, s.logger, authz.DevicesBulkDelete); err != nil {
		return 0, err
	}
	if err := requireIDs(ids); err != nil {
		return 0, err
	}

	var deleted int64
	err := s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		blocked, err := s.loanRepo.ActiveByDevicesTx(ctx, tx, ids)
		if err != nil {
			return err
		}
		if len(blocked) > 0 {
			return blockedIDs("Há devices com empréstimo ativo", blocked)
		}
		if _, err := s.loanRepo.DeleteFinishedByDevicesTx(ctx, tx, ids); err != nil {
			return err
		}
		deleted, err = s.deviceRepo.DeleteDevices(ctx, tx, ids)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Devices excluídos em massa", zap.Int64("excluidos", deleted))
	return int(deleted), nil
}

// removeDevices apaga o histórico finalizado antes do device; a FK de emprestimos não tem cascade.
func (s *DeviceService) removeDevices(ctx context.Context, tx database.Querier, ids []uint64) error {
	if _, err := s.loanRepo.DeleteFinishedByDevicesTx(ctx, tx, ids); err != nil {
		return err
	}
	_, err := s.deviceRepo.DeleteDevices(ctx, tx, ids)
	return err
}
