package services

import (
	"context"
	"strings"

	"academy-manager/internal/authz"
	"academy-manager/internal/dto"
	"academy-manager/internal/entities"
	"academy-manager/internal/repositories"
	"academy-manager/pkg/database"
	"academy-manager/pkg/types"
	"academy-manager/pkg/utils"

	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	GetEquipment(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (uint64, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) error
	DeleteEquipment(ctx context.Context, id uint64) error
	BulkDeleteEquipment(ctx context.Context, ids []uint64) (int, error)
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	sync          *DeviceSync
	txManager     repositories.TxManagerInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	sync *DeviceSync,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{equipmentRepo: equipmentRepo, sync: sync, txManager: txManager, logger: logger}
}

func equipmentToDTO(e entities.Equipment) dto.EquipmentDTO {
	return dto.EquipmentDTO{
		ID:             e.ID,
		TipoDevice:     e.TipoDevice,
		NumeroSerie:    e.NumeroSerie,
		Modelo:         e.Modelo,
		Cor:            e.Cor,
		Status:         e.Status,
		ParaEmprestimo: e.ParaEmprestimo,
		Responsavel:    e.Responsavel,
		Local:          e.Local,
		Convenio:       e.Convenio,
		Observacao:     e.Observacao,
		Processador:    e.Processador,
		Memoria:        e.Memoria,
		Armazenamento:  e.Armazenamento,
		Tela:           e.Tela,
		DataCadastro:   utils.NullDateTime(e.DataCadastro),
	}
}

func equipmentFromDTO(payload dto.CreateEquipmentDTO) entities.Equipment {
	return entities.Equipment{
		TipoDevice:     strings.TrimSpace(payload.TipoDevice),
		NumeroSerie:    strings.TrimSpace(payload.NumeroSerie),
		Modelo:         utils.NullIfEmpty(payload.Modelo),
		Cor:            utils.NullIfEmpty(payload.Cor),
		Status:         normalizeDeviceStatus(payload.Status),
		ParaEmprestimo: payload.ParaEmprestimo.Or(true),
		Responsavel:    utils.NullIfEmpty(payload.Responsavel),
		Local:          utils.NullIfEmpty(payload.Local),
		Convenio:       utils.NullIfEmpty(payload.Convenio),
		Observacao:     utils.NullIfEmpty(payload.Observacao),
		Processador:    utils.NullIfEmpty(payload.Processador),
		Memoria:        utils.NullIfEmpty(payload.Memoria),
		Armazenamento:  utils.NullIfEmpty(payload.Armazenamento),
		Tela:           utils.NullIfEmpty(payload.Tela),
	}
}

func (s *EquipmentService) GetEquipment(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.EquipmentView); err != nil {
		return nil, 0, err
	}
	list, total, err := s.equipmentRepo.GetEquipment(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.EquipmentDTO, 0, len(list))
	for _, e := range list {
		result = append(result, equipmentToDTO(e))
	}
	return result, total, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	if _, err := authorize(ctx, s.logger, authz.EquipmentView); err != nil {
		return nil, err
	}
	e, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	result := equipmentToDTO(*e)
	return &result, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.EquipmentManage); err != nil {
		return 0, err
	}
	equipment := equipmentFromDTO(payload)

	var (
		id     uint64
		action SyncAction
	)
	err := s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		var err error
		id, err = s.equipmentRepo.CreateEquipment(ctx, tx, equipment)
		if err != nil {
			return err
		}
		action, err = s.sync.Apply(ctx, tx, equipment, "")
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Equipamento cadastrado",
		zap.Uint64("equipment_id", id),
		zap.String("numero_serie", equipment.NumeroSerie),
		zap.String("device", string(action)))
	return id, nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) error {
	if _, err := authorize(ctx, s.logger, authz.EquipmentManage); err != nil {
		return err
	}
	equipment := equipmentFromDTO(dto.CreateEquipmentDTO(payload))

	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		current, err := s.equipmentRepo.FindEquipmentTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.equipmentRepo.UpdateEquipment(ctx, tx, id, equipment); err != nil {
			return err
		}
		_, err = s.sync.Apply(ctx, tx, equipment, current.NumeroSerie)
		return err
	})
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	if _, err := authorize(ctx, s.logger, authz.EquipmentManage); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		e, err := s.equipmentRepo.FindEquipmentTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := s.sync.Remove(ctx, tx, e.NumeroSerie); err != nil {
			return err
		}
		_, err = s.equipmentRepo.DeleteEquipment(ctx, tx, []uint64{id})
		return err
	})
}

func (s *EquipmentService) BulkDeleteEquipment(ctx context.Context, ids []uint64) (int, error) {
	if _, err := authorize(ctx, s.logger, authz.EquipmentManage); err != nil {
		return 0, err
	}
	if err := requireIDs(ids); err != nil {
		return 0, err
	}

	var deleted int64
	err := s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		list, err := s.equipmentRepo.FindByIDsTx(ctx, tx, ids)
		if err != nil {
			return err
		}
		blocked, err := s.blockedBySerial(ctx, tx, list)
		if err != nil {
			return err
		}
		if len(blocked) > 0 {
			return blockedIDs("Há equipamentos cujo device está emprestado", blocked)
		}
		for _, e := range list {
			if _, err := s.sync.Remove(ctx, tx, e.NumeroSerie); err != nil {
				return err
			}
		}
		deleted, err = s.equipmentRepo.DeleteEquipment(ctx, tx, ids)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Equipamentos excluídos em massa", zap.Int64("excluidos", deleted))
	return int(deleted), nil
}

// blockedBySerial devolve os ids de equipment cuja projeção está emprestada.
func (s *EquipmentService) blockedBySerial(ctx context.Context, tx database.Querier, list []entities.Equipment) ([]uint64, error) {
	serials := make([]string, 0, len(list))
	bySerial := make(map[string]uint64, len(list))
	for _, e := range list {
		serials = append(serials, e.NumeroSerie)
		bySerial[e.NumeroSerie] = e.ID
	}
	if len(serials) == 0 {
		return nil, nil
	}

	devices, err := s.sync.deviceRepo.FindBySerialsTx(ctx, tx, serials)
	if err != nil {
		return nil, err
	}
	deviceIDs := make([]uint64, 0, len(devices))
	serialOf := make(map[uint64]string, len(devices))
	for _, d := range devices {
		deviceIDs = append(deviceIDs, d.ID)
		serialOf[d.ID] = d.NumeroSerie
	}
	if len(deviceIDs) == 0 {
		return nil, nil
	}

	loaned, err := s.sync.loanRepo.ActiveByDevicesTx(ctx, tx, deviceIDs)
	if err != nil {
		return nil, err
	}
	blocked := make([]uint64, 0, len(loaned))
	for _, deviceID := range loaned {
		blocked = append(blocked, bySerial[serialOf[deviceID]])
	}
	return blocked, nil
}
