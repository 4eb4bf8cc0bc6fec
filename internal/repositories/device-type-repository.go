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

const deviceTypeTable = "tipos_devices"

var deviceTypeColumns = []string{"id", "nome", "categoria", "descricao", "para_emprestimo", "data_cadastro"}

var deviceTypeMap = map[string]string{
	"id":              "id",
	"nome":            "nome",
	"categoria":       "categoria",
	"para_emprestimo": "para_emprestimo",
	"data_cadastro":   "data_cadastro",
}

type DeviceTypeRepositoryInterface interface {
	GetDeviceTypes(ctx context.Context, filter types.Filter) ([]entities.DeviceType, uint64, error)
	FindDeviceType(ctx context.Context, id uint64) (*entities.DeviceType, error)
	FindDeviceTypeTx(ctx context.Context, tx database.Querier, id uint64) (*entities.DeviceType, error)
	CreateDeviceType(ctx context.Context, tx database.Querier, t entities.DeviceType) (uint64, error)
	CreateIfMissing(ctx context.Context, tx database.Querier, t entities.DeviceType) error
	UpdateDeviceType(ctx context.Context, tx database.Querier, id uint64, t entities.DeviceType) error
	DeleteDeviceType(ctx context.Context, tx database.Querier, id uint64) error
	CountDevicesUsingTx(ctx context.Context, tx database.Querier, name string) (int64, error)
}

type DeviceTypeRepository struct {
	storage database.Querier
	logger  *zap.Logger
}

func NewDeviceTypeRepository(storage database.Querier, logger *zap.Logger) DeviceTypeRepositoryInterface {
	return &DeviceTypeRepository{storage: storage, logger: logger}
}

func scanDeviceType(r database.Row) entities.DeviceType {
	return entities.DeviceType{
		ID:             r.Uint64("id"),
		Nome:           r.String("nome"),
		Categoria:      r.NullString("categoria"),
		Descricao:      r.NullString("descricao"),
		ParaEmprestimo: r.Bool("para_emprestimo"),
		DataCadastro:   r.NullTime("data_cadastro"),
	}
}

func (r *DeviceTypeRepository) GetDeviceTypes(ctx context.Context, filter types.Filter) ([]entities.DeviceType, uint64, error) {
	base := r.storage.Builder().Select(deviceTypeColumns...).From(deviceTypeTable)
	base = bd.ApplySearch(base, r.storage.Dialect(), filter.Search, "nome", "categoria")

	rows, total, err := fetchPage(ctx, r.storage, listQuery{
		base:         base,
		allowed:      deviceTypeMap,
		defaultOrder: []string{"categoria ASC", "nome ASC"},
	}, boolFilters(filter, "para_emprestimo"))
	if err != nil {
		return nil, 0, err
	}

	list := make([]entities.DeviceType, 0, len(rows))
	for _, row := range rows {
		list = append(list, scanDeviceType(row))
	}
	return list, total, nil
}

func (r *DeviceTypeRepository) FindDeviceType(ctx context.Context, id uint64) (*entities.DeviceType, error) {
	return r.FindDeviceTypeTx(ctx, r.storage, id)
}

func (r *DeviceTypeRepository) FindDeviceTypeTx(ctx context.Context, tx database.Querier, id uint64) (*entities.DeviceType, error) {
	row, err := tx.Get(ctx, tx.Builder().Select(deviceTypeColumns...).From(deviceTypeTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	t := scanDeviceType(row)
	return &t, nil
}

func (r *DeviceTypeRepository) insert(tx database.Querier, t entities.DeviceType) sq.InsertBuilder {
	return tx.Builder().Insert(deviceTypeTable).
		Columns("nome", "categoria", "descricao", "para_emprestimo").
		Values(t.Nome, nullValue(t.Categoria), nullValue(t.Descricao), t.ParaEmprestimo)
}

func (r *DeviceTypeRepository) CreateDeviceType(ctx context.Context, tx database.Querier, t entities.DeviceType) (uint64, error) {
	id, err := tx.Insert(ctx, r.insert(tx, t))
	if err != nil {
		return 0, deviceTypeConflict(err)
	}
	return id, nil
}

// CreateIfMissing é usado pelo seeder do catálogo: nome repetido não é erro.
func (r *DeviceTypeRepository) CreateIfMissing(ctx context.Context, tx database.Querier, t entities.DeviceType) error {
	_, err := tx.Exec(ctx, tx.Dialect().InsertIgnore(r.insert(tx, t), "nome"))
	return err
}

func (r *DeviceTypeRepository) UpdateDeviceType(ctx context.Context, tx database.Querier, id uint64, t entities.DeviceType) error {
	affected, err := tx.Exec(ctx, tx.Builder().Update(deviceTypeTable).
		Set("nome", t.Nome).
		Set("categoria", nullValue(t.Categoria)).
		Set("descricao", nullValue(t.Descricao)).
		Set("para_emprestimo", t.ParaEmprestimo).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return deviceTypeConflict(err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DeviceTypeRepository) DeleteDeviceType(ctx context.Context, tx database.Querier, id uint64) error {
	affected, err := tx.Exec(ctx, tx.Builder().Delete(deviceTypeTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountDevicesUsingTx conta devices cujo tipo é o nome do catálogo (não há FK entre eles).
func (r *DeviceTypeRepository) CountDevicesUsingTx(ctx context.Context, tx database.Querier, name string) (int64, error) {
	row, err := tx.Get(ctx, tx.Builder().Select("COUNT(*) AS total").From(deviceTable).Where(sq.Eq{"tipo": name}))
	if err != nil {
		return 0, err
	}
	return row.Int64("total"), nil
}

func deviceTypeConflict(err error) error {
	if v, ok := database.AsIntegrityViolation(err); ok && v.Kind == database.UniqueViolation {
		return apperrors.NewConflictError("Já existe um tipo de device com este nome")
	}
	return err
}
