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

const loanTable = "emprestimos"

var loanSelect = []string{
	"e.id", "e.aluno_id", "e.device_id", "e.acessorios", "e.data_retirada", "e.data_devolucao",
	"e.assinatura", "e.status",
	"a.nome AS aluno_nome", "d.nome AS device_nome", "d.tipo AS device_tipo",
	"d.modelo AS modelo", "d.numero_serie AS numero_serie",
}

var loanMap = map[string]string{
	"id":             "e.id",
	"aluno_id":       "e.aluno_id",
	"device_id":      "e.device_id",
	"status":         "e.status",
	"data_retirada":  "e.data_retirada",
	"data_devolucao": "e.data_devolucao",
	"aluno_nome":     "a.nome",
	"device_nome":    "d.nome",
	"device_tipo":    "d.tipo",
}

type LoanRepositoryInterface interface {
	GetLoans(ctx context.Context, filter types.Filter) ([]entities.Loan, uint64, error)
	FindLoan(ctx context.Context, id uint64) (*entities.Loan, error)
	FindLoanTx(ctx context.Context, tx database.Querier, id uint64) (*entities.Loan, error)
	FindLoansTx(ctx context.Context, tx database.Querier, ids []uint64) ([]entities.Loan, error)
	CreateLoan(ctx context.Context, tx database.Querier, loan entities.Loan) (uint64, error)
	FinishLoan(ctx context.Context, tx database.Querier, id uint64) (bool, error)
	UpdateSignature(ctx context.Context, tx database.Querier, id uint64, signature string) error
	DeleteLoans(ctx context.Context, tx database.Querier, ids []uint64) (int64, error)
	ActiveByStudentsTx(ctx context.Context, tx database.Querier, studentIDs []uint64) ([]uint64, error)
	ActiveByDevicesTx(ctx context.Context, tx database.Querier, deviceIDs []uint64) ([]uint64, error)
	HasActiveLoanTx(ctx context.Context, tx database.Querier, deviceID uint64) (bool, error)
	DeleteByStudentsTx(ctx context.Context, tx database.Querier, studentIDs []uint64) (int64, error)
	DeleteFinishedByDevicesTx(ctx context.Context, tx database.Querier, deviceIDs []uint64) (int64, error)
}

type LoanRepository struct {
	storage database.Querier
	logger  *zap.Logger
}

func NewLoanRepository(storage database.Querier, logger *zap.Logger) LoanRepositoryInterface {
	return &LoanRepository{storage: storage, logger: logger}
}

func scanLoan(r database.Row) entities.Loan {
	return entities.Loan{
		ID:            r.Uint64("id"),
		AlunoID:       r.Uint64("aluno_id"),
		DeviceID:      r.Uint64("device_id"),
		Acessorios:    r.NullString("acessorios"),
		DataRetirada:  r.Time("data_retirada"),
		DataDevolucao: r.NullTime("data_devolucao"),
		Assinatura:    r.NullString("assinatura"),
		Status:        r.String("status"),
		AlunoNome:     r.String("aluno_nome"),
		DeviceNome:    r.NullString("device_nome"),
		DeviceTipo:    r.String("device_tipo"),
		Modelo:        r.NullString("modelo"),
		NumeroSerie:   r.String("numero_serie"),
	}
}

func (r *LoanRepository) selectLoans(q database.Querier) sq.SelectBuilder {
	return q.Builder().Select(loanSelect...).
		From("emprestimos e").
		LeftJoin("alunos a ON a.id = e.aluno_id").
		LeftJoin("devices d ON d.id = e.device_id")
}

func (r *LoanRepository) GetLoans(ctx context.Context, filter types.Filter) ([]entities.Loan, uint64, error) {
	base := bd.ApplySearch(r.selectLoans(r.storage), r.storage.Dialect(), filter.Search,
		"a.nome", "d.nome", "d.numero_serie", "d.modelo")

	rows, total, err := fetchPage(ctx, r.storage, listQuery{
		base:         base,
		allowed:      loanMap,
		defaultOrder: []string{"e.data_retirada DESC", "e.id DESC"},
	}, filter)
	if err != nil {
		return nil, 0, err
	}

	loans := make([]entities.Loan, 0, len(rows))
	for _, row := range rows {
		loans = append(loans, scanLoan(row))
	}
	return loans, total, nil
}

func (r *LoanRepository) FindLoan(ctx context.Context, id uint64) (*entities.Loan, error) {
	return r.FindLoanTx(ctx, r.storage, id)
}

func (r *LoanRepository) FindLoanTx(ctx context.Context, tx database.Querier, id uint64) (*entities.Loan, error) {
	row, err := tx.Get(ctx, r.selectLoans(tx).Where(sq.Eq{"e.id": id}))
	if err != nil {
		return nil, err
	}
	loan := scanLoan(row)
	return &loan, nil
}

func (r *LoanRepository) FindLoansTx(ctx context.Context, tx database.Querier, ids []uint64) ([]entities.Loan, error) {
	rows, err := tx.Query(ctx, r.selectLoans(tx).Where(sq.Eq{"e.id": ids}))
	if err != nil {
		return nil, err
	}
	loans := make([]entities.Loan, 0, len(rows))
	for _, row := range rows {
		loans = append(loans, scanLoan(row))
	}
	return loans, nil
}

func (r *LoanRepository) CreateLoan(ctx context.Context, tx database.Querier, loan entities.Loan) (uint64, error) {
	return tx.Insert(ctx, tx.Builder().Insert(loanTable).
		Columns("aluno_id", "device_id", "acessorios", "data_retirada", "data_devolucao", "assinatura", "status").
		Values(loan.AlunoID, loan.DeviceID, nullValue(loan.Acessorios), dbTime(loan.DataRetirada),
			dbNullTime(loan.DataDevolucao), nullValue(loan.Assinatura), loan.Status))
}

// FinishLoan só finaliza empréstimos ativos; false indica que ele já estava finalizado.
func (r *LoanRepository) FinishLoan(ctx context.Context, tx database.Querier, id uint64) (bool, error) {
	affected, err := tx.Exec(ctx, tx.Builder().Update(loanTable).
		Set("status", entities.LoanFinished).
		Where(sq.Eq{"id": id, "status": entities.LoanActive}))
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *LoanRepository) UpdateSignature(ctx context.Context, tx database.Querier, id uint64, signature string) error {
	affected, err := tx.Exec(ctx, tx.Builder().Update(loanTable).Set("assinatura", signature).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *LoanRepository) DeleteLoans(ctx context.Context, tx database.Querier, ids []uint64) (int64, error) {
	return tx.Exec(ctx, tx.Builder().Delete(loanTable).Where(sq.Eq{"id": ids}))
}

func (r *LoanRepository) activeBy(ctx context.Context, tx database.Querier, col string, ids []uint64) ([]uint64, error) {
	rows, err := tx.Query(ctx, tx.Builder().Select("DISTINCT "+col).From(loanTable).
		Where(sq.Eq{col: ids, "status": entities.LoanActive}).
		OrderBy(col))
	if err != nil {
		return nil, err
	}
	return idsOf(rows, col), nil
}

// ActiveByStudentsTx devolve, entre os alunos informados, os que têm device emprestado.
func (r *LoanRepository) ActiveByStudentsTx(ctx context.Context, tx database.Querier, studentIDs []uint64) ([]uint64, error) {
	return r.activeBy(ctx, tx, "aluno_id", studentIDs)
}

// ActiveByDevicesTx devolve, entre os devices informados, os que estão emprestados.
func (r *LoanRepository) ActiveByDevicesTx(ctx context.Context, tx database.Querier, deviceIDs []uint64) ([]uint64, error) {
	return r.activeBy(ctx, tx, "device_id", deviceIDs)
}

func (r *LoanRepository) HasActiveLoanTx(ctx context.Context, tx database.Querier, deviceID uint64) (bool, error) {
	ids, err := r.ActiveByDevicesTx(ctx, tx, []uint64{deviceID})
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func (r *LoanRepository) DeleteByStudentsTx(ctx context.Context, tx database.Querier, studentIDs []uint64) (int64, error) {
	return tx.Exec(ctx, tx.Builder().Delete(loanTable).Where(sq.Eq{"aluno_id": studentIDs}))
}

// DeleteFinishedByDevicesTx limpa o histórico antes de excluir devices: a FK não tem cascade.
func (r *LoanRepository) DeleteFinishedByDevicesTx(ctx context.Context, tx database.Querier, deviceIDs []uint64) (int64, error) {
	return tx.Exec(ctx, tx.Builder().Delete(loanTable).
		Where(sq.Eq{"device_id": deviceIDs}).
		Where(sq.NotEq{"status": entities.LoanActive}))
}
