package repositories

import (
	"context"
	"time"

	"academy-manager/internal/entities"
	"academy-manager/pkg/database"
	"academy-manager/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type DashboardRepositoryInterface interface {
	GetStudentStats(ctx context.Context, now time.Time) (*types.StudentStats, error)
	GetDeviceStats(ctx context.Context) (*types.DeviceStats, error)
	GetLoanCounters(ctx context.Context) (active, booksOut, booksOverdue int64, err error)
	GetRecentLoans(ctx context.Context, limit uint64) ([]types.DashboardLoanItem, error)
	GetMostUsedDevices(ctx context.Context, limit uint64) ([]types.DashboardDeviceUsage, error)
}

type DashboardRepository struct {
	storage database.Querier
	logger  *zap.Logger
}

func NewDashboardRepository(storage database.Querier, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

func (r *DashboardRepository) count(ctx context.Context, b sq.SelectBuilder) (int64, error) {
	row, err := r.storage.Get(ctx, b)
	if err != nil {
		return 0, err
	}
	return row.Int64("total"), nil
}

func (r *DashboardRepository) countWhere(ctx context.Context, table string, where ...sq.Sqlizer) (int64, error) {
	b := r.storage.Builder().Select("COUNT(*) AS total").From(table)
	for _, w := range where {
		b = b.Where(w)
	}
	return r.count(ctx, b)
}

// 1. Alunos
// Foundation recentes: início nos últimos 90 dias; do ano: início no ano corrente.
func (r *DashboardRepository) GetStudentStats(ctx context.Context, now time.Time) (*types.StudentStats, error) {
	stats := &types.StudentStats{}
	var err error

	foundation := sq.Eq{"tipo_aluno": entities.StudentFoundation}
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)

	if stats.Total, err = r.countWhere(ctx, studentTable); err != nil {
		return nil, err
	}
	if stats.Regular, err = r.countWhere(ctx, studentTable, sq.Eq{"tipo_aluno": entities.StudentRegular}); err != nil {
		return nil, err
	}
	if stats.Foundation, err = r.countWhere(ctx, studentTable, foundation); err != nil {
		return nil, err
	}
	recent := dbTime(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -90))
	if stats.FoundationRecent, err = r.countWhere(ctx, studentTable, foundation, sq.GtOrEq{"data_inicio": recent}); err != nil {
		return nil, err
	}
	if stats.FoundationYear, err = r.countWhere(ctx, studentTable, foundation,
		sq.GtOrEq{"data_inicio": dbTime(yearStart)},
		sq.Lt{"data_inicio": dbTime(yearStart.AddDate(1, 0, 0))},
	); err != nil {
		return nil, err
	}
	return stats, nil
}

// 2. Devices
// Registros do controle de equipamentos sem device correspondente também entram na contagem.
func (r *DashboardRepository) equipmentOnly(ctx context.Context, where sq.Sqlizer) (int64, error) {
	return r.count(ctx, r.storage.Builder().Select("COUNT(*) AS total").
		From("equipment_control ec").
		LeftJoin("devices d ON d.numero_serie = ec.numero_serie").
		Where(sq.Eq{"d.id": nil}).
		Where(where))
}

func (r *DashboardRepository) GetDeviceStats(ctx context.Context) (*types.DeviceStats, error) {
	stats := &types.DeviceStats{}

	loanable, err := r.countWhere(ctx, deviceTable, sq.Eq{"para_emprestimo": true})
	if err != nil {
		return nil, err
	}
	loaned, err := r.countWhere(ctx, deviceTable, sq.Eq{"status": entities.DeviceLoaned})
	if err != nil {
		return nil, err
	}
	extraLoaned, err := r.equipmentOnly(ctx, sq.Eq{"ec.status": entities.DeviceLoaned, "ec.para_emprestimo": true})
	if err != nil {
		return nil, err
	}
	stats.ParaEmprestimo = loanable + extraLoaned
	stats.Emprestados = loaned + extraLoaned

	if stats.Disponiveis, err = r.countWhere(ctx, deviceTable, sq.Eq{"status": entities.DeviceAvailable, "para_emprestimo": true}); err != nil {
		return nil, err
	}

	maintenance, err := r.countWhere(ctx, deviceTable, sq.Eq{"status": entities.DeviceMaintenance})
	if err != nil {
		return nil, err
	}
	extraMaintenance, err := r.equipmentOnly(ctx, sq.Eq{"ec.status": entities.DeviceMaintenance})
	if err != nil {
		return nil, err
	}
	stats.Manutencao = maintenance + extraMaintenance

	return stats, nil
}

// 3. Contadores de empréstimos
func (r *DashboardRepository) GetLoanCounters(ctx context.Context) (active, booksOut, booksOverdue int64, err error) {
	if active, err = r.countWhere(ctx, loanTable, sq.Eq{"status": entities.LoanActive}); err != nil {
		return
	}
	if booksOut, err = r.countWhere(ctx, bookLoanTable, sq.Eq{"status": openBookLoanStatuses}); err != nil {
		return
	}
	booksOverdue, err = r.countWhere(ctx, bookLoanTable, sq.Eq{"status": entities.LoanOverdue})
	return
}

// 4. Últimos empréstimos ativos
func (r *DashboardRepository) GetRecentLoans(ctx context.Context, limit uint64) ([]types.DashboardLoanItem, error) {
	rows, err := r.storage.Query(ctx, r.storage.Builder().
		Select("e.id", "e.data_retirada", "a.nome AS aluno_nome", "d.nome AS device_nome", "d.tipo AS device_tipo").
		From("emprestimos e").
		Join("alunos a ON a.id = e.aluno_id").
		Join("devices d ON d.id = e.device_id").
		Where(sq.Eq{"e.status": entities.LoanActive}).
		OrderBy("e.data_retirada DESC", "e.id DESC").
		Limit(limit))
	if err != nil {
		return nil, err
	}

	items := make([]types.DashboardLoanItem, 0, len(rows))
	for _, row := range rows {
		name := row.String("device_nome")
		if name == "" {
			name = row.String("device_tipo")
		}
		item := types.DashboardLoanItem{
			ID:         row.Uint64("id"),
			AlunoNome:  row.String("aluno_nome"),
			DeviceNome: name,
		}
		if t := row.Time("data_retirada"); !t.IsZero() {
			item.DataRetirada = t.Format("02/01/2006")
		}
		items = append(items, item)
	}
	return items, nil
}

// 5. Devices mais emprestados
func (r *DashboardRepository) GetMostUsedDevices(ctx context.Context, limit uint64) ([]types.DashboardDeviceUsage, error) {
	rows, err := r.storage.Query(ctx, r.storage.Builder().
		Select("d.id", "d.nome", "d.tipo", "d.modelo", "COUNT(e.id) AS total").
		From("devices d").
		LeftJoin("emprestimos e ON e.device_id = d.id").
		GroupBy("d.id", "d.nome", "d.tipo", "d.modelo").
		OrderBy("total DESC", "d.nome ASC").
		Limit(limit))
	if err != nil {
		return nil, err
	}

	items := make([]types.DashboardDeviceUsage, 0, len(rows))
	for _, row := range rows {
		name := row.String("nome")
		if name == "" {
			name = row.String("tipo")
		}
		items = append(items, types.DashboardDeviceUsage{
			DeviceID: row.Uint64("id"),
			Nome:     name,
			Modelo:   row.String("modelo"),
			Total:    row.Int64("total"),
		})
	}
	return items, nil
}
