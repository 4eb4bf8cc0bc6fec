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

type DeviceTypeServiceInterface interface {
	GetDeviceTypes(ctx context.Context, filter types.Filter) ([]dto.DeviceTypeDTO, uint64, error)
	FindDeviceType(ctx context.Context, id uint64) (*dto.DeviceTypeDTO, error)
	CreateDeviceType(ctx context.Context, payload dto.CreateDeviceTypeDTO) (uint64, error)
	UpdateDeviceType(ctx context.Context, id uint64, payload dto.UpdateDeviceTypeDTO) error
	DeleteDeviceType(ctx context.Context, id uint64) error
}

type DeviceTypeService struct {
	typeRepo  repositories.DeviceTypeRepositoryInterface
	txManager repositories.TxManagerInterface
	logger    *zap.Logger
}

func NewDeviceTypeService(
	typeRepo repositories.DeviceTypeRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) DeviceTypeServiceInterface {
	return &DeviceTypeService{typeRepo: typeRepo, txManager: txManager, logger: logger}
}

func deviceTypeToDTO(t entities.DeviceType) dto.DeviceTypeDTO {
	return dto.DeviceTypeDTO{
		ID:             t.ID,
		Nome:           t.Nome,
		Categoria:      t.Categoria,
		Descricao:      t.Descricao,
		ParaEmprestimo: t.ParaEmprestimo,
		DataCadastro:   utils.NullDateTime(t.DataCadastro),
	}
}

func deviceTypeFromDTO(payload dto.CreateDeviceTypeDTO) entities.DeviceType {
	return entities.DeviceType{
		Nome:           strings.TrimSpace(payload.Nome),
		Categoria:      utils.NullIfEmpty(payload.Categoria),
		Descricao:      utils.NullIfEmpty(payload.Descricao),
		ParaEmprestimo: payload.ParaEmprestimo.Or(true),
	}
}

func (s *DeviceTypeService) GetDeviceTypes(ctx context.Context, filter types.Filter) ([]dto.DeviceTypeDTO, uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.DeviceTypesView); err != nil {
		return nil, 0, err
	}
	list, total, err := s.typeRepo.GetDeviceTypes(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.DeviceTypeDTO, 0, len(list))
	for _, t := range list {
		result = append(result, deviceTypeToDTO(t))
	}
	return result, total, nil
}

func (s *DeviceTypeService) FindDeviceType(ctx context.Context, id uint64) (*dto.DeviceTypeDTO, error) {
	if _, err := authorize(ctx, s.logger, authz.DeviceTypesView); err != nil {
		return nil, err
	}
	t, err := s.typeRepo.FindDeviceType(ctx, id)
	if err != nil {
		return nil, err
	}
	result := deviceTypeToDTO(*t)
	return &result, nil
}

func (s *DeviceTypeService) CreateDeviceType(ctx context.Context, payload dto.CreateDeviceTypeDTO) (uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.DeviceTypesManage); err != nil {
		return 0, err
	}
	var id uint64
	err := s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		var err error
		id, err = s.typeRepo.CreateDeviceType(ctx, tx, deviceTypeFromDTO(payload))
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Tipo de device cadastrado", zap.Uint64("tipo_id", id), zap.String("nome", payload.Nome))
	return id, nil
}

// UpdateDeviceType não deixa renomear um tipo que já está em uso por devices.
func (s *DeviceTypeService) UpdateDeviceType(ctx context.Context, id uint64, payload dto.UpdateDeviceTypeDTO) error {
	if _, err := authorize(ctx, s.logger, authz.DeviceTypesManage); err != nil {
		return err
	}
	updated := deviceTypeFromDTO(dto.CreateDeviceTypeDTO(payload))

	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		current, err := s.typeRepo.FindDeviceTypeTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if current.Nome != updated.Nome {
			inUse, err := s.typeRepo.CountDevicesUsingTx(ctx, tx, current.Nome)
			if err != nil {
				return err
			}
			if inUse > 0 {
				return apperrors.NewConflictError("Tipo em uso por %d device(s) não pode ser renomeado", inUse)
			}
		}
		return s.typeRepo.UpdateDeviceType(ctx, tx, id, updated)
	})
}

func (s *DeviceTypeService) DeleteDeviceType(ctx context.Context, id uint64) error {
	if _, err := authorize(ctx, s.logger, authz.DeviceTypesManage); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		current, err := s.typeRepo.FindDeviceTypeTx(ctx, tx, id)
		if err != nil {
			return err
		}
		inUse, err := s.typeRepo.CountDevicesUsingTx(ctx, tx, current.Nome)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return apperrors.NewConflictError("Tipo em uso por %d device(s)", inUse)
		}
		return s.typeRepo.DeleteDeviceType(ctx, tx, id)
	})
}
