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

const bookTable = "livros"

var bookMap = map[string]string{
	"id":            "l.id",
	"titulo":        "l.titulo",
	"autor":         "l.autor",
	"isbn":          "l.isbn",
	"categoria":     "l.categoria",
	"ano":           "l.ano",
	"editora":       "l.editora",
	"data_cadastro": "l.data_cadastro",
}

type BookRepositoryInterface interface {
	GetBooks(ctx context.Context, filter types.Filter) ([]entities.Book, uint64, error)
	FindBook(ctx context.Context, id uint64) (*entities.Book, error)
	FindBookTx(ctx context.Context, tx database.Querier, id uint64) (*entities.Book, error)
	CreateBook(ctx context.Context, tx database.Querier, book entities.Book) (uint64, error)
	UpdateBook(ctx context.Context, tx database.Querier, id uint64, book entities.Book) error
	DeleteBook(ctx context.Context, tx database.Querier, id uint64) error
	CountCopiesTx(ctx context.Context, tx database.Querier, bookID uint64) (int64, error)
}

type BookRepository struct {
	storage database.Querier
	logger  *zap.Logger
}

func NewBookRepository(storage database.Querier, logger *zap.Logger) BookRepositoryInterface {
	return &BookRepository{storage: storage, logger: logger}
}

func scanBook(r database.Row) entities.Book {
	return entities.Book{
		ID:              r.Uint64("id"),
		Titulo:          r.String("titulo"),
		Autor:           r.String("autor"),
		ISBN:            r.NullString("isbn"),
		Categoria:       r.NullString("categoria"),
		Ano:             r.NullInt("ano"),
		Editora:         r.NullString("editora"),
		Edicao:          r.NullString("edicao"),
		Descricao:       r.NullString("descricao"),
		FotoPath:        r.NullString("foto_path"),
		DataCadastro:    r.NullTime("data_cadastro"),
		TotalExemplares: r.Int64("total_exemplares"),
		Disponiveis:     r.Int64("disponiveis"),
	}
}

// Os totais vêm de subconsultas para que o COUNT da listagem não precise de GROUP BY.
func (r *BookRepository) selectBooks(q database.Querier) sq.SelectBuilder {
	return q.Builder().Select(
		"l.id", "l.titulo", "l.autor", "l.isbn", "l.categoria", "l.ano", "l.editora", "l.edicao",
		"l.descricao", "l.foto_path", "l.data_cadastro",
	).
		Column("(SELECT COUNT(*) FROM exemplares x WHERE x.livro_id = l.id) AS total_exemplares").
		Column(sq.Expr("(SELECT COUNT(*) FROM exemplares x WHERE x.livro_id = l.id AND x.status = ?) AS disponiveis", entities.CopyAvailable)).
		From("livros l")
}

func (r *BookRepository) GetBooks(ctx context.Context, filter types.Filter) ([]entities.Book, uint64, error) {
	base := bd.ApplySearch(r.selectBooks(r.storage), r.storage.Dialect(), filter.Search,
		"l.titulo", "l.autor", "l.isbn", "l.categoria")

	rows, total, err := fetchPage(ctx, r.storage, listQuery{
		base:         base,
		allowed:      bookMap,
		defaultOrder: []string{"l.titulo ASC"},
	}, filter)
	if err != nil {
		return nil, 0, err
	}

	books := make([]entities.Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, scanBook(row))
	}
	return books, total, nil
}

func (r *BookRepository) FindBook(ctx context.Context, id uint64) (*entities.Book, error) {
	return r.FindBookTx(ctx, r.storage, id)
}

func (r *BookRepository) FindBookTx(ctx context.Context, tx database.Querier, id uint64) (*entities.Book, error) {
	row, err := tx.Get(ctx, r.selectBooks(tx).Where(sq.Eq{"l.id": id}))
	if err != nil {
		return nil, err
	}
	b := scanBook(row)
	return &b, nil
}

func (r *BookRepository) CreateBook(ctx context.Context, tx database.Querier, b entities.Book) (uint64, error) {
	return tx.Insert(ctx, tx.Builder().Insert(bookTable).
		Columns("titulo", "autor", "isbn", "categoria", "ano", "editora", "edicao", "descricao", "foto_path").
		Values(b.Titulo, b.Autor, nullValue(b.ISBN), nullValue(b.Categoria), nullInt(b.Ano),
			nullValue(b.Editora), nullValue(b.Edicao), nullValue(b.Descricao), nullValue(b.FotoPath)))
}

func (r *BookRepository) UpdateBook(ctx context.Context, tx database.Querier, id uint64, b entities.Book) error {
	update := tx.Builder().Update(bookTable).
		Set("titulo", b.Titulo).
		Set("autor", b.Autor).
		Set("isbn", nullValue(b.ISBN)).
		Set("categoria", nullValue(b.Categoria)).
		Set("ano", nullInt(b.Ano)).
		Set("editora", nullValue(b.Editora)).
		Set("edicao", nullValue(b.Edicao)).
		Set("descricao", nullValue(b.Descricao))
	if b.FotoPath.Valid {
		update = update.Set("foto_path", b.FotoPath.String)
	}

	affected, err := tx.Exec(ctx, update.Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *BookRepository) DeleteBook(ctx context.Context, tx database.Querier, id uint64) error {
	affected, err := tx.Exec(ctx, tx.Builder().Delete(bookTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *BookRepository) CountCopiesTx(ctx context.Context, tx database.Querier, bookID uint64) (int64, error) {
	row, err := tx.Get(ctx, tx.Builder().Select("COUNT(*) AS total").From(copyTable).Where(sq.Eq{"livro_id": bookID}))
	if err != nil {
		return 0, err
	}
	return row.Int64("total"), nil
}
