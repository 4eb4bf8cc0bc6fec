package repositories

import (
	"context"
	"time"

	"academy-manager/internal/entities"
	"academy-manager/internal/infrastructure/bd"
	"academy-manager/pkg/database"
	"academy-manager/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

const bookLoanTable = "emprestimos_livros"

var bookLoanSelect = []string{
	"el.id", "el.exemplar_id", "el.aluno_id", "el.data_retirada", "el.data_previsao_devolucao",
	"el.data_devolucao_real", "el.status", "el.renovacoes", "el.observacao", "el.criado_por", "el.assinatura",
	"a.nome AS aluno_nome", "a.email AS aluno_email",
	"l.titulo AS titulo", "l.autor AS autor", "x.codigo_barras AS codigo_barras",
	"u.username AS criado_por_nome",
}

var bookLoanMap = map[string]string{
	"id":                      "el.id",
	"aluno_id":                "el.aluno_id",
	"exemplar_id":             "el.exemplar_id",
	"status":                  "el.status",
	"data_retirada":           "el.data_retirada",
	"data_previsao_devolucao": "el.data_previsao_devolucao",
	"aluno_nome":              "a.nome",
	"titulo":                  "l.titulo",
	"codigo_barras":           "x.codigo_barras",
}

var openBookLoanStatuses = []string{entities.LoanActive, entities.LoanOverdue}

type BookLoanRepositoryInterface interface {
	MarkOverdue(ctx context.Context, today time.Time) (int64, error)
	GetBookLoans(ctx context.Context, filter types.Filter) ([]entities.BookLoan, uint64, error)
	FindBookLoan(ctx context.Context, id uint64) (*entities.BookLoan, error)
	FindBookLoanTx(ctx context.Context, tx database.Querier, id uint64) (*entities.BookLoan, error)
	FindOpenByBarcodeTx(ctx context.Context, tx database.Querier, barcode string) (*entities.BookLoan, error)
	GetOverdueByCreator(ctx context.Context, userID uint64) ([]entities.BookLoan, error)
	CreateBookLoan(ctx context.Context, tx database.Querier, loan entities.BookLoan) (uint64, error)
	FinishBookLoan(ctx context.Context, tx database.Querier, id uint64, returnedAt time.Time) (bool, error)
	RenewBookLoan(ctx context.Context, tx database.Querier, id uint64, due time.Time) (bool, error)
	OpenByStudentsTx(ctx context.Context, tx database.Querier, studentIDs []uint64) ([]uint64, error)
	OpenByCopyTx(ctx context.Context, tx database.Querier, copyID uint64) (int64, error)
	CountByCopyTx(ctx context.Context, tx database.Querier, copyID uint64) (int64, error)
	DeleteByStudentsTx(ctx context.Context, tx database.Querier, studentIDs []uint64) (int64, error)
}

type BookLoanRepository struct {
	storage database.Querier
	logger  *zap.Logger
}

func NewBookLoanRepository(storage database.Querier, logger *zap.Logger) BookLoanRepositoryInterface {
	return &BookLoanRepository{storage: storage, logger: logger}
}

func scanBookLoan(r database.Row) entities.BookLoan {
	return entities.BookLoan{
		ID:                    r.Uint64("id"),
		ExemplarID:            r.Uint64("exemplar_id"),
		AlunoID:               r.Uint64("aluno_id"),
		DataRetirada:          r.Time("data_retirada"),
		DataPrevisaoDevolucao: r.Time("data_previsao_devolucao"),
		DataDevolucaoReal:     r.NullTime("data_devolucao_real"),
		Status:                r.String("status"),
		Renovacoes:            int(r.Int64("renovacoes")),
		Observacao:            r.NullString("observacao"),
		CriadoPor:             r.NullUint64("criado_por"),
		Assinatura:            r.NullString("assinatura"),
		AlunoNome:             r.String("aluno_nome"),
		AlunoEmail:            r.String("aluno_email"),
		LivroTitulo:           r.String("titulo"),
		LivroAutor:            r.String("autor"),
		CodigoBarras:          r.String("codigo_barras"),
		CriadoPorNome:         r.NullString("criado_por_nome"),
	}
}

func scanBookLoans(rows []database.Row) []entities.BookLoan {
	loans := make([]entities.BookLoan, 0, len(rows))
	for _, row := range rows {
		loans = append(loans, scanBookLoan(row))
	}
	return loans
}

func (r *BookLoanRepository) selectBookLoans(q database.Querier) sq.SelectBuilder {
	return q.Builder().Select(bookLoanSelect...).
		From("emprestimos_livros el").
		LeftJoin("alunos a ON a.id = el.aluno_id").
		LeftJoin("exemplares x ON x.id = el.exemplar_id").
		LeftJoin("livros l ON l.id = x.livro_id").
		LeftJoin("users u ON u.id = el.criado_por")
}

// MarkOverdue reclassifica como Atrasado todo empréstimo ativo vencido antes de today.
func (r *BookLoanRepository) MarkOverdue(ctx context.Context, today time.Time) (int64, error) {
	return r.storage.Exec(ctx, r.storage.Builder().Update(bookLoanTable).
		Set("status", entities.LoanOverdue).
		Where(sq.Eq{"status": entities.LoanActive}).
		Where(sq.Lt{"data_previsao_devolucao": dbTime(today)}))
}

func (r *BookLoanRepository) GetBookLoans(ctx context.Context, filter types.Filter) ([]entities.BookLoan, uint64, error) {
	base := bd.ApplySearch(r.selectBookLoans(r.storage), r.storage.Dialect(), filter.Search,
		"a.nome", "l.titulo", "x.codigo_barras")
	if _, ok := filter.Filter["status"]; !ok {
		base = base.Where(sq.Eq{"el.status": openBookLoanStatuses})
	}

	rows, total, err := fetchPage(ctx, r.storage, listQuery{
		base:         base,
		allowed:      bookLoanMap,
		defaultOrder: []string{"el.data_previsao_devolucao ASC", "el.id ASC"},
	}, filter)
	if err != nil {
		return nil, 0, err
	}
	return scanBookLoans(rows), total, nil
}

func (r *BookLoanRepository) FindBookLoan(ctx context.Context, id uint64) (*entities.BookLoan, error) {
	return r.FindBookLoanTx(ctx, r.storage, id)
}

func (r *BookLoanRepository) FindBookLoanTx(ctx context.Context, tx database.Querier, id uint64) (*entities.BookLoan, error) {
	row, err := tx.Get(ctx, r.selectBookLoans(tx).Where(sq.Eq{"el.id": id}))
	if err != nil {
		return nil, err
	}
	loan := scanBookLoan(row)
	return &loan, nil
}

func (r *BookLoanRepository) FindOpenByBarcodeTx(ctx context.Context, tx database.Querier, barcode string) (*entities.BookLoan, error) {
	row, err := tx.Get(ctx, r.selectBookLoans(tx).
		Where(sq.Eq{"x.codigo_barras": barcode, "el.status": openBookLoanStatuses}).
		OrderBy("el.id DESC").
		Limit(1))
	if err != nil {
		return nil, err
	}
	loan := scanBookLoan(row)
	return &loan, nil
}

// GetOverdueByCreator lista os atrasados registrados pelo usuário, para o e-mail de alerta.
func (r *BookLoanRepository) GetOverdueByCreator(ctx context.Context, userID uint64) ([]entities.BookLoan, error) {
	rows, err := r.storage.Query(ctx, r.selectBookLoans(r.storage).
		Where(sq.Eq{"el.criado_por": userID, "el.status": entities.LoanOverdue}).
		OrderBy("el.data_previsao_devolucao ASC"))
	if err != nil {
		return nil, err
	}
	return scanBookLoans(rows), nil
}

func (r *BookLoanRepository) CreateBookLoan(ctx context.Context, tx database.Querier, l entities.BookLoan) (uint64, error) {
	return tx.Insert(ctx, tx.Builder().Insert(bookLoanTable).
		Columns("exemplar_id", "aluno_id", "data_retirada", "data_previsao_devolucao", "status",
			"renovacoes", "observacao", "criado_por", "assinatura").
		Values(l.ExemplarID, l.AlunoID, dbTime(l.DataRetirada), dbTime(l.DataPrevisaoDevolucao), l.Status,
			l.Renovacoes, nullValue(l.Observacao), nullUint(l.CriadoPor), nullValue(l.Assinatura)))
}

func (r *BookLoanRepository) FinishBookLoan(ctx context.Context, tx database.Querier, id uint64, returnedAt time.Time) (bool, error) {
	affected, err := tx.Exec(ctx, tx.Builder().Update(bookLoanTable).
		Set("status", entities.LoanFinished).
		Set("data_devolucao_real", dbTime(returnedAt)).
		Where(sq.Eq{"id": id, "status": openBookLoanStatuses}))
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *BookLoanRepository) RenewBookLoan(ctx context.Context, tx database.Querier, id uint64, due time.Time) (bool, error) {
	affected, err := tx.Exec(ctx, tx.Builder().Update(bookLoanTable).
		Set("status", entities.LoanActive).
		Set("data_previsao_devolucao", dbTime(due)).
		Set("renovacoes", sq.Expr("renovacoes + 1")).
		Where(sq.Eq{"id": id, "status": openBookLoanStatuses}))
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *BookLoanRepository) OpenByStudentsTx(ctx context.Context, tx database.Querier, studentIDs []uint64) ([]uint64, error) {
	rows, err := tx.Query(ctx, tx.Builder().Select("DISTINCT aluno_id").From(bookLoanTable).
		Where(sq.Eq{"aluno_id": studentIDs, "status": openBookLoanStatuses}).
		OrderBy("aluno_id"))
	if err != nil {
		return nil, err
	}
	return idsOf(rows, "aluno_id"), nil
}

func (r *BookLoanRepository) countBy(ctx context.Context, tx database.Querier, where sq.Eq) (int64, error) {
	row, err := tx.Get(ctx, tx.Builder().Select("COUNT(*) AS total").From(bookLoanTable).Where(where))
	if err != nil {
		return 0, err
	}
	return row.Int64("total"), nil
}

func (r *BookLoanRepository) OpenByCopyTx(ctx context.Context, tx database.Querier, copyID uint64) (int64, error) {
	return r.countBy(ctx, tx, sq.Eq{"exemplar_id": copyID, "status": openBookLoanStatuses})
}

// CountByCopyTx conta também o histórico: a FK de exemplar_id é restrict.
func (r *BookLoanRepository) CountByCopyTx(ctx context.Context, tx database.Querier, copyID uint64) (int64, error) {
	return r.countBy(ctx, tx, sq.Eq{"exemplar_id": copyID})
}

func (r *BookLoanRepository) DeleteByStudentsTx(ctx context.Context, tx database.Querier, studentIDs []uint64) (int64, error) {
	return tx.Exec(ctx, tx.Builder().Delete(bookLoanTable).Where(sq.Eq{"aluno_id": studentIDs}))
}
