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

const copyTable = "exemplares"

var copySelect = []string{
	"x.id", "x.livro_id", "x.codigo_barras", "x.status", "x.localizacao", "x.observacao", "x.data_aquisicao",
	"l.titulo AS titulo", "l.autor AS autor",
}

var copyMap = map[string]string{
	"id":            "x.id",
	"livro_id":      "x.livro_id",
	"codigo_barras": "x.codigo_barras",
	"status":        "x.status",
	"localizacao":   "x.localizacao",
	"titulo":        "l.titulo",
}

type CopyRepositoryInterface interface {
	GetCopies(ctx context.Context, filter types.Filter) ([]entities.Copy, uint64, error)
	FindCopy(ctx context.Context, id uint64) (*entities.Copy, error)
	FindCopyTx(ctx context.Context, tx database.Querier, id uint64) (*entities.Copy, error)
	FindByBarcodeTx(ctx context.Context, tx database.Querier, barcode string) (*entities.Copy, error)
	CreateCopy(ctx context.Context, tx database.Querier, c entities.Copy) (uint64, error)
	UpdateCopy(ctx context.Context, tx database.Querier, id uint64, c entities.Copy) error
	ClaimCopy(ctx context.Context, tx database.Querier, id uint64) (bool, error)
	SetStatus(ctx context.Context, tx database.Querier, id uint64, status string) error
	DeleteCopy(ctx context.Context, tx database.Querier, id uint64) error
}

type CopyRepository struct {
	storage database.Querier
	logger  *zap.Logger
}

func NewCopyRepository(storage database.Querier, logger *zap.Logger) CopyRepositoryInterface {
	return &CopyRepository{storage: storage, logger: logger}
}

func scanCopy(r database.Row) entities.Copy {
	return entities.Copy{
		ID:            r.Uint64("id"),
		LivroID:       r.Uint64("livro_id"),
		CodigoBarras:  r.String("codigo_barras"),
		Status:        r.String("status"),
		Localizacao:   r.NullString("localizacao"),
		Observacao:    r.NullString("observacao"),
		DataAquisicao: r.NullTime("data_aquisicao"),
		LivroTitulo:   r.String("titulo"),
		LivroAutor:    r.String("autor"),
	}
}

func (r *CopyRepository) selectCopies(q database.Querier) sq.SelectBuilder {
	return q.Builder().Select(copySelect...).From("exemplares x").LeftJoin("livros l ON l.id = x.livro_id")
}

func (r *CopyRepository) GetCopies(ctx context.Context, filter types.Filter) ([]entities.Copy, uint64, error) {
	base := bd.ApplySearch(r.selectCopies(r.storage), r.storage.Dialect(), filter.Search,
		"x.codigo_barras", "l.titulo", "x.localizacao")

	rows, total, err := fetchPage(ctx, r.storage, listQuery{
		base:         base,
		allowed:      copyMap,
		defaultOrder: []string{"x.codigo_barras ASC"},
	}, filter)
	if err != nil {
		return nil, 0, err
	}

	copies := make([]entities.Copy, 0, len(rows))
	for _, row := range rows {
		copies = append(copies, scanCopy(row))
	}
	return copies, total, nil
}

func (r *CopyRepository) findOne(ctx context.Context, q database.Querier, where sq.Eq) (*entities.Copy, error) {
	row, err := q.Get(ctx, r.selectCopies(q).Where(where))
	if err != nil {
		return nil, err
	}
	c := scanCopy(row)
	return &c, nil
}

func (r *CopyRepository) FindCopy(ctx context.Context, id uint64) (*entities.Copy, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"x.id": id})
}

func (r *CopyRepository) FindCopyTx(ctx context.Context, tx database.Querier, id uint64) (*entities.Copy, error) {
	return r.findOne(ctx, tx, sq.Eq{"x.id": id})
}

func (r *CopyRepository) FindByBarcodeTx(ctx context.Context, tx database.Querier, barcode string) (*entities.Copy, error) {
	return r.findOne(ctx, tx, sq.Eq{"x.codigo_barras": barcode})
}

func (r *CopyRepository) CreateCopy(ctx context.Context, tx database.Querier, c entities.Copy) (uint64, error) {
	id, err := tx.Insert(ctx, tx.Builder().Insert(copyTable).
		Columns("livro_id", "codigo_barras", "status", "localizacao", "observacao", "data_aquisicao").
		Values(c.LivroID, c.CodigoBarras, c.Status, nullValue(c.Localizacao), nullValue(c.Observacao), dbNullTime(c.DataAquisicao)))
	if err != nil {
		return 0, copyConflict(err)
	}
	return id, nil
}

func (r *CopyRepository) UpdateCopy(ctx context.Context, tx database.Querier, id uint64, c entities.Copy) error {
	affected, err := tx.Exec(ctx, tx.Builder().Update(copyTable).
		Set("codigo_barras", c.CodigoBarras).
		Set("status", c.Status).
		Set("localizacao", nullValue(c.Localizacao)).
		Set("observacao", nullValue(c.Observacao)).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return copyConflict(err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ClaimCopy reserva o exemplar para um empréstimo se ele ainda estiver disponível.
func (r *CopyRepository) ClaimCopy(ctx context.Context, tx database.Querier, id uint64) (bool, error) {
	affected, err := tx.Exec(ctx, tx.Builder().Update(copyTable).
		Set("status", entities.CopyLoaned).
		Where(sq.Eq{"id": id, "status": entities.CopyAvailable}))
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *CopyRepository) SetStatus(ctx context.Context, tx database.Querier, id uint64, status string) error {
	_, err := tx.Exec(ctx, tx.Builder().Update(copyTable).Set("status", status).Where(sq.Eq{"id": id}))
	return err
}

func (r *CopyRepository) DeleteCopy(ctx context.Context, tx database.Querier, id uint64) error {
	affected, err := tx.Exec(ctx, tx.Builder().Delete(copyTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func copyConflict(err error) error {
	if v, ok := database.AsIntegrityViolation(err); ok {
		switch v.Kind {
		case database.UniqueViolation:
			return apperrors.NewConflictError("Código de barras já cadastrado")
		case database.ForeignKeyViolation:
			return apperrors.NewNotFoundError("Livro não encontrado")
		}
	}
	return err
}
