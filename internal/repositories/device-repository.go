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

const deviceTable = "devices"

var deviceColumns = []string{
	"id", "tipo", "modelo", "cor", "polegadas", "ano", "nome", "chip", "memoria",
	"numero_serie", "versao_os", "status", "para_emprestimo", "observacao", "data_cadastro",
}

var deviceMap = map[string]string{
	"id":              "id",
	"tipo":            "tipo",
	"modelo":          "modelo",
	"cor":             "cor",
	"nome":            "nome",
	"ano":             "ano",
	"numero_serie":    "numero_serie",
	"status":          "status",
	"para_emprestimo": "para_emprestimo",
	"data_cadastro":   "data_cadastro",
}

type DeviceRepositoryInterface interface {
	GetDevices(ctx context.Context, filter types.Filter) ([]entities.Device, uint64, error)
	GetAvailableDevices(ctx context.Context) ([]entities.Device, error)
	FindDevice(ctx context.Context, id uint64) (*entities.Device, error)
	FindDeviceTx(ctx context.Context, tx database.Querier, id uint64) (*entities.Device, error)
	FindBySerialTx(ctx context.Context, tx database.Querier, serial string) (*entities.Device, error)
	FindBySerialsTx(ctx context.Context, tx database.Querier, serials []string) ([]entities.Device, error)
	CreateDevice(ctx context.Context, tx database.Querier, device entities.Device) (uint64, error)
	UpdateDevice(ctx context.Context, tx database.Querier, id uint64, device entities.Device) error
	ClaimForLoan(ctx context.Context, tx database.Querier, id uint64) (bool, error)
	SetStatus(ctx context.Context, tx database.Querier, id uint64, status string) error
	DeleteDevices(ctx context.Context, tx database.Querier, ids []uint64) (int64, error)
}

type DeviceRepository struct {
	storage database.Querier
	logger  *zap.Logger
}

func NewDeviceRepository(storage database.Querier, logger *zap.Logger) DeviceRepositoryInterface {
	return &DeviceRepository{storage: storage, logger: logger}
}

func scanDevice(r database.Row) entities.Device {
	return entities.Device{
		ID:             r.Uint64("id"),
		Tipo:           r.String("tipo"),
		Modelo:         r.NullString("modelo"),
		Cor:            r.NullString("cor"),
		Polegadas:      r.NullString("polegadas"),
		Ano:            r.NullString("ano"),
		Nome:           r.NullString("nome"),
		Chip:           r.NullString("chip"),
		Memoria:        r.NullString("memoria"),
		NumeroSerie:    r.String("numero_serie"),
		VersaoOS:       r.NullString("versao_os"),
		Status:         r.String("status"),
		ParaEmprestimo: r.Bool("para_emprestimo"),
		Observacao:     r.NullString("observacao"),
		DataCadastro:   r.NullTime("data_cadastro"),
	}
}

func scanDevices(rows []database.Row) []entities.Device {
	devices := make([]entities.Device, 0, len(rows))
	for _, row := range rows {
		devices = append(devices, scanDevice(row))
	}
	return devices
}

func (r *DeviceRepository) GetDevices(ctx context.Context, filter types.Filter) ([]entities.Device, uint64, error) {
	base := r.storage.Builder().Select(deviceColumns...).From(deviceTable)
	base = bd.ApplySearch(base, r.storage.Dialect(), filter.Search, "nome", "modelo", "numero_serie", "tipo")

	rows, total, err := fetchPage(ctx, r.storage, listQuery{
		base:         base,
		allowed:      deviceMap,
		defaultOrder: []string{"tipo ASC", "nome ASC"},
	}, boolFilters(filter, "para_emprestimo"))
	if err != nil {
		return nil, 0, err
	}
	return scanDevices(rows), total, nil
}

// GetAvailableDevices alimenta o formulário de empréstimo.
func (r *DeviceRepository) GetAvailableDevices(ctx context.Context) ([]entities.Device, error) {
	rows, err := r.storage.Query(ctx, r.storage.Builder().Select(deviceColumns...).From(deviceTable).
		Where(sq.Eq{"status": entities.DeviceAvailable, "para_emprestimo": true}).
		OrderBy("tipo ASC", "nome ASC"))
	if err != nil {
		return nil, err
	}
	return scanDevices(rows), nil
}

func (r *DeviceRepository) findOne(ctx context.Context, q database.Querier, where sq.Eq) (*entities.Device, error) {
	row, err := q.Get(ctx, q.Builder().Select(deviceColumns...).From(deviceTable).Where(where))
	if err != nil {
		return nil, err
	}
	d := scanDevice(row)
	return &d, nil
}

func (r *DeviceRepository) FindDevice(ctx context.Context, id uint64) (*entities.Device, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"id": id})
}

func (r *DeviceRepository) FindDeviceTx(ctx context.Context, tx database.Querier, id uint64) (*entities.Device, error) {
	return r.findOne(ctx, tx, sq.Eq{"id": id})
}

func (r *DeviceRepository) FindBySerialTx(ctx context.Context, tx database.Querier, serial string) (*entities.Device, error) {
	return r.findOne(ctx, tx, sq.Eq{"numero_serie": serial})
}

func (r *DeviceRepository) FindBySerialsTx(ctx context.Context, tx database.Querier, serials []string) ([]entities.Device, error) {
	rows, err := tx.Query(ctx, tx.Builder().Select(deviceColumns...).From(deviceTable).Where(sq.Eq{"numero_serie": serials}))
	if err != nil {
		return nil, err
	}
	return scanDevices(rows), nil
}

func (r *DeviceRepository) CreateDevice(ctx context.Context, tx database.Querier, d entities.Device) (uint64, error) {
	id, err := tx.Insert(ctx, tx.Builder().Insert(deviceTable).
		Columns("tipo", "modelo", "cor", "polegadas", "ano", "nome", "chip", "memoria",
			"numero_serie", "versao_os", "status", "para_emprestimo", "observacao").
		Values(d.Tipo, nullValue(d.Modelo), nullValue(d.Cor), nullValue(d.Polegadas), nullValue(d.Ano),
			nullValue(d.Nome), nullValue(d.Chip), nullValue(d.Memoria), d.NumeroSerie,
			nullValue(d.VersaoOS), d.Status, d.ParaEmprestimo, nullValue(d.Observacao)))
	if err != nil {
		return 0, deviceConflict(err)
	}
	return id, nil
}

func (r *DeviceRepository) UpdateDevice(ctx context.Context, tx database.Querier, id uint64, d entities.Device) error {
	affected, err := tx.Exec(ctx, tx.Builder().Update(deviceTable).
		Set("tipo", d.Tipo).
		Set("modelo", nullValue(d.Modelo)).
		Set("cor", nullValue(d.Cor)).
		Set("polegadas", nullValue(d.Polegadas)).
		Set("ano", nullValue(d.Ano)).
		Set("nome", nullValue(d.Nome)).
		Set("chip", nullValue(d.Chip)).
		Set("memoria", nullValue(d.Memoria)).
		Set("numero_serie", d.NumeroSerie).
		Set("versao_os", nullValue(d.VersaoOS)).
		Set("status", d.Status).
		Set("para_emprestimo", d.ParaEmprestimo).
		Set("observacao", nullValue(d.Observacao)).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return deviceConflict(err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ClaimForLoan marca o device como emprestado só se ele ainda estiver livre.
// false significa que outra requisição chegou antes ou que o device não serve para empréstimo.
func (r *DeviceRepository) ClaimForLoan(ctx context.Context, tx database.Querier, id uint64) (bool, error) {
	affected, err := tx.Exec(ctx, tx.Builder().Update(deviceTable).
		Set("status", entities.DeviceLoaned).
		Where(sq.Eq{"id": id, "status": entities.DeviceAvailable, "para_emprestimo": true}))
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *DeviceRepository) SetStatus(ctx context.Context, tx database.Querier, id uint64, status string) error {
	_, err := tx.Exec(ctx, tx.Builder().Update(deviceTable).Set("status", status).Where(sq.Eq{"id": id}))
	return err
}

func (r *DeviceRepository) DeleteDevices(ctx context.Context, tx database.Querier, ids []uint64) (int64, error) {
	return tx.Exec(ctx, tx.Builder().Delete(deviceTable).Where(sq.Eq{"id": ids}))
}

func deviceConflict(err error) error {
	if v, ok := database.AsIntegrityViolation(err); ok && v.Kind == database.UniqueViolation {
		return apperrors.NewConflictError("Número de série já cadastrado")
	}
	return err
}
