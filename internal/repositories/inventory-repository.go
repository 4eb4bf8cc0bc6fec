package repositories

import (
	"context"

	"academy-manager/internal/entities"
	"academy-manager/internal/infrastructure/bd"
	"academy-manager/pkg/database"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

const inventoryTable = "inventory"

var inventoryColumns = []string{"id", "tombamento", "equipamento", "carga", "local", "etiquetado", "data_cadastro"}

var inventoryMap = map[string]string{
	"id":            "id",
	"tombamento":    "tombamento",
	"equipamento":   "equipamento",
	"carga":         "carga",
	"local":         "local",
	"etiquetado":    "etiquetado",
	"data_cadastro": "data_cadastro",
}

type InventoryRepositoryInterface interface {
	GetItems(ctx context.Context, filter types.Filter) ([]entities.InventoryItem, uint64, error)
	FindItem(ctx context.Context, id uint64) (*entities.InventoryItem, error)
	CreateItem(ctx context.Context, tx database.Querier, item entities.InventoryItem) (uint64, error)
	UpdateItem(ctx context.Context, tx database.Querier, id uint64, item entities.InventoryItem) error
	DeleteItems(ctx context.Context, tx database.Querier, ids []uint64) (int64, error)
}

type InventoryRepository struct {
	storage database.Querier
	logger  *zap.Logger
}

func NewInventoryRepository(storage database.Querier, logger *zap.Logger) InventoryRepositoryInterface {
	return &InventoryRepository{storage: storage, logger: logger}
}

func scanInventoryItem(r database.Row) entities.InventoryItem {
	return entities.InventoryItem{
		ID:           r.Uint64("id"),
		Tombamento:   r.String("tombamento"),
		Equipamento:  r.String("equipamento"),
		Carga:        r.NullString("carga"),
		Local:        r.NullString("local"),
		Etiquetado:   r.Bool("etiquetado"),
		DataCadastro: r.NullTime("data_cadastro"),
	}
}

func (r *InventoryRepository) GetItems(ctx context.Context, filter types.Filter) ([]entities.InventoryItem, uint64, error) {
	base := r.storage.Builder().Select(inventoryColumns...).From(inventoryTable)
	base = bd.ApplySearch(base, r.storage.Dialect(), filter.Search, "tombamento", "equipamento", "local", "carga")

	rows, total, err := fetchPage(ctx, r.storage, listQuery{
		base:         base,
		allowed:      inventoryMap,
		defaultOrder: []string{"tombamento ASC"},
	}, boolFilters(filter, "etiquetado"))
	if err != nil {
		return nil, 0, err
	}

	items := make([]entities.InventoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, scanInventoryItem(row))
	}
	return items, total, nil
}

func (r *InventoryRepository) FindItem(ctx context.Context, id uint64) (*entities.InventoryItem, error) {
	row, err := r.storage.Get(ctx, r.storage.Builder().Select(inventoryColumns...).From(inventoryTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	item := scanInventoryItem(row)
	return &item, nil
}

func (r *InventoryRepository) CreateItem(ctx context.Context, tx database.Querier, item entities.InventoryItem) (uint64, error) {
	id, err := tx.Insert(ctx, tx.Builder().Insert(inventoryTable).
		Columns("tombamento", "equipamento", "carga", "local", "etiquetado").
		Values(item.Tombamento, item.Equipamento, nullValue(item.Carga), nullValue(item.Local), item.Etiquetado))
	if err != nil {
		return 0, inventoryConflict(err)
	}
	return id, nil
}

func (r *InventoryRepository) UpdateItem(ctx context.Context, tx database.Querier, id uint64, item entities.InventoryItem) error {
	affected, err := tx.Exec(ctx, tx.Builder().Update(inventoryTable).
		Set("tombamento", item.Tombamento).
		Set("equipamento", item.Equipamento).
		Set("carga", nullValue(item.Carga)).
		Set("local", nullValue(item.Local)).
		Set("etiquetado", item.Etiquetado).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return inventoryConflict(err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *InventoryRepository) DeleteItems(ctx context.Context, tx database.Querier, ids []uint64) (int64, error) {
	return tx.Exec(ctx, tx.Builder().Delete(inventoryTable).Where(sq.Eq{"id": ids}))
}

func inventoryConflict(err error) error {
	if v, ok := database.AsIntegrityViolation(err); ok && v.Kind == database.UniqueViolation {
		return apperrors.NewConflictError("Tombamento já cadastrado")
	}
	return err
}
