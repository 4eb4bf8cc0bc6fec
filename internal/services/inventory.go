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

type InventoryServiceInterface interface {
	GetItems(ctx context.Context, filter types.Filter) ([]dto.InventoryDTO, uint64, error)
	FindItem(ctx context.Context, id uint64) (*dto.InventoryDTO, error)
	CreateItem(ctx context.Context, payload dto.CreateInventoryDTO) (uint64, error)
	UpdateItem(ctx context.Context, id uint64, payload dto.UpdateInventoryDTO) error
	DeleteItem(ctx context.Context, id uint64) error
	BulkDeleteItems(ctx context.Context, ids []uint64) (int, error)
}

type InventoryService struct {
	inventoryRepo repositories.InventoryRepositoryInterface
	txManager     repositories.TxManagerInterface
	logger        *zap.Logger
}

func NewInventoryService(
	inventoryRepo repositories.InventoryRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) InventoryServiceInterface {
	return &InventoryService{inventoryRepo: inventoryRepo, txManager: txManager, logger: logger}
}

func inventoryToDTO(i entities.InventoryItem) dto.InventoryDTO {
	return dto.InventoryDTO{
		ID:           i.ID,
		Tombamento:   i.Tombamento,
		Equipamento:  i.Equipamento,
		Carga:        i.Carga,
		Local:        i.Local,
		Etiquetado:   i.Etiquetado,
		DataCadastro: utils.NullDateTime(i.DataCadastro),
	}
}

func inventoryFromDTO(payload dto.CreateInventoryDTO) entities.InventoryItem {
	return entities.InventoryItem{
		Tombamento:  strings.TrimSpace(payload.Tombamento),
		Equipamento: strings.TrimSpace(payload.Equipamento),
		Carga:       utils.NullIfEmpty(payload.Carga),
		Local:       utils.NullIfEmpty(payload.Local),
		Etiquetado:  payload.Etiquetado.Or(false),
	}
}

func (s *InventoryService) GetItems(ctx context.Context, filter types.Filter) ([]dto.InventoryDTO, uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.InventoryView); err != nil {
		return nil, 0, err
	}
	items, total, err := s.inventoryRepo.GetItems(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.InventoryDTO, 0, len(items))
	for _, i := range items {
		result = append(result, inventoryToDTO(i))
	}
	return result, total, nil
}

func (s *InventoryService) FindItem(ctx context.Context, id uint64) (*dto.InventoryDTO, error) {
	if _, err := authorize(ctx, s.logger, authz.InventoryView); err != nil {
		return nil, err
	}
	item, err := s.inventoryRepo.FindItem(ctx, id)
	if err != nil {
		return nil, err
	}
	result := inventoryToDTO(*item)
	return &result, nil
}

func (s *InventoryService) CreateItem(ctx context.Context, payload dto.CreateInventoryDTO) (uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.InventoryManage); err != nil {
		return 0, err
	}
	var id uint64
	err := s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		var err error
		id, err = s.inventoryRepo.CreateItem(ctx, tx, inventoryFromDTO(payload))
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Item de inventário cadastrado", zap.Uint64("item_id", id), zap.String("tombamento", payload.Tombamento))
	return id, nil
}

func (s *InventoryService) UpdateItem(ctx context.Context, id uint64, payload dto.UpdateInventoryDTO) error {
	if _, err := authorize(ctx, s.logger, authz.InventoryManage); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		return s.inventoryRepo.UpdateItem(ctx, tx, id, inventoryFromDTO(dto.CreateInventoryDTO(payload)))
	})
}

func (s *InventoryService) DeleteItem(ctx context.Context, id uint64) error {
	if _, err := authorize(ctx, s.logger, authz.InventoryManage); err != nil {
		return err
	}
	if _, err := s.inventoryRepo.FindItem(ctx, id); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		_, err := s.inventoryRepo.DeleteItems(ctx, tx, []uint64{id})
		return err
	})
}

func (s *InventoryService) BulkDeleteItems(ctx context.Context, ids []uint64) (int, error) {
	if _, err := authorize(ctx, s.logger, authz.InventoryManage); err != nil {
		return 0, err
	}
	if err := requireIDs(ids); err != nil {
		return 0, err
	}
	var deleted int64
	err := s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		var err error
		deleted, err = s.inventoryRepo.DeleteItems(ctx, tx, ids)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Itens de inventário excluídos em massa", zap.Int64("excluidos", deleted))
	return int(deleted), nil
}
