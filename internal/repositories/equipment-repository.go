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

const equipmentTable = "equipment_control"

var equipmentColumns = []string{
	"id", "tipo_device", "numero_serie", "modelo", "cor", "status", "para_emprestimo",
	"responsavel", "local", "convenio", "observacao", "processador", "memoria",
	"armazenamento", "tela", "data_cadastro",
}

var equipmentMap = map[string]string{
	"id":              "id",
	"tipo_device":     "tipo_device",
	"numero_serie":    "numero_serie",
	"modelo":          "modelo",
	"status":          "status",
	"para_emprestimo": "para_emprestimo",
	"responsavel":     "responsavel",
	"local":           "local",
	"convenio":        "convenio",
	"data_cadastro":   "data_cadastro",
}

type EquipmentRepositoryInterface interface {
	GetEquipment(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	FindEquipmentTx(ctx context.Context, tx database.Querier, id uint64) (*entities.Equipment, error)
	FindByIDsTx(ctx context.Context, tx database.Querier, ids []uint64) ([]entities.Equipment, error)
	CreateEquipment(ctx context.Context, tx database.Querier, e entities.Equipment) (uint64, error)
	UpdateEquipment(ctx context.Context, tx database.Querier, id uint64, e entities.Equipment) error
	DeleteEquipment(ctx context.Context, tx database.Querier, ids []uint64) (int64, error)
}

type EquipmentRepository struct {
	storage database.Querier
	logger  *zap.Logger
}

func NewEquipmentRepository(storage database.Querier, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(r database.Row) entities.Equipment {
	return entities.Equipment{
		ID:             r.Uint64("id"),
		TipoDevice:     r.String("tipo_device"),
		NumeroSerie:    r.String("numero_serie"),
		Modelo:         r.NullString("modelo"),
		Cor:            r.NullString("cor"),
		Status:         r.String("status"),
		ParaEmprestimo: r.Bool("para_emprestimo"),
		Responsavel:    r.NullString("responsavel"),
		Local:          r.NullString("local"),
		Convenio:       r.NullString("convenio"),
		Observacao:     r.NullString("observacao"),
		Processador:    r.NullString("processador"),
		Memoria:        r.NullString("memoria"),
		Armazenamento:  r.NullString("armazenamento"),
		Tela:           r.NullString("tela"),
		DataCadastro:   r.NullTime("data_cadastro"),
	}
}

func (r *EquipmentRepository) GetEquipment(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	base := r.storage.Builder().Select(equipmentColumns...).From(equipmentTable)
	base = bd.ApplySearch(base, r.storage.Dialect(), filter.Search,
		"numero_serie", "modelo", "tipo_device", "responsavel", "local")

	rows, total, err := fetchPage(ctx, r.storage, listQuery{
		base:         base,
		allowed:      equipmentMap,
		defaultOrder: []string{"data_cadastro DESC", "id DESC"},
	}, boolFilters(filter, "para_emprestimo"))
	if err != nil {
		return nil, 0, err
	}

	list := make([]entities.Equipment, 0, len(rows))
	for _, row := range rows {
		list = append(list, scanEquipment(row))
	}
	return list, total, nil
}

func (r *EquipmentRepository) findOne(ctx context.Context, q database.Querier, id uint64) (*entities.Equipment, error) {
	row, err := q.Get(ctx, q.Builder().Select(equipmentColumns...).From(equipmentTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	e := scanEquipment(row)
	return &e, nil
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return r.findOne(ctx, r.storage, id)
}

func (r *EquipmentRepository) FindEquipmentTx(ctx context.Context, tx database.Querier, id uint64) (*entities.Equipment, error) {
	return r.findOne(ctx, tx, id)
}

func (r *EquipmentRepository) FindByIDsTx(ctx context.Context, tx database.Querier, ids []uint64) ([]entities.Equipment, error) {
	rows, err := tx.Query(ctx, tx.Builder().Select(equipmentColumns...).From(equipmentTable).Where(sq.Eq{"id": ids}))
	if err != nil {
		return nil, err
	}
	list := make([]entities.Equipment, 0, len(rows))
	for _, row := range rows {
		list = append(list, scanEquipment(row))
	}
	return list, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, tx database.Querier, e entities.Equipment) (uint64, error) {
	id, err := tx.Insert(ctx, tx.Builder().Insert(equipmentTable).
		Columns("tipo_device", "numero_serie", "modelo", "cor", "status", "para_emprestimo",
			"responsavel", "local", "convenio", "observacao", "processador", "memoria", "armazenamento", "tela").
		Values(e.TipoDevice, e.NumeroSerie, nullValue(e.Modelo), nullValue(e.Cor), e.Status, e.ParaEmprestimo,
			nullValue(e.Responsavel), nullValue(e.Local), nullValue(e.Convenio), nullValue(e.Observacao),
			nullValue(e.Processador), nullValue(e.Memoria), nullValue(e.Armazenamento), nullValue(e.Tela)))
	if err != nil {
		return 0, deviceConflict(err)
	}
	return id, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, tx database.Querier, id uint64, e entities.Equipment) error {
	affected, err := tx.Exec(ctx, tx.Builder().Update(equipmentTable).
		Set("tipo_device", e.TipoDevice).
		Set("numero_serie", e.NumeroSerie).
		Set("modelo", nullValue(e.Modelo)).
		Set("cor", nullValue(e.Cor)).
		Set("status", e.Status).
		Set("para_emprestimo", e.ParaEmprestimo).
		Set("responsavel", nullValue(e.Responsavel)).
		Set("local", nullValue(e.Local)).
		Set("convenio", nullValue(e.Convenio)).
		Set("observacao", nullValue(e.Observacao)).
		Set("processador", nullValue(e.Processador)).
		Set("memoria", nullValue(e.Memoria)).
		Set("armazenamento", nullValue(e.Armazenamento)).
		Set("tela", nullValue(e.Tela)).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return deviceConflict(err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, tx database.Querier, ids []uint64) (int64, error) {
	return tx.Exec(ctx, tx.Builder().Delete(equipmentTable).Where(sq.Eq{"id": ids}))
}
