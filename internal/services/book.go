package services

import (
	"context"
	"strconv"
	"strings"

	"academy-manager/internal/authz"
	"academy-manager/internal/dto"
	"academy-manager/internal/entities"
	"academy-manager/internal/repositories"
	"academy-manager/pkg/database"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/types"
	"academy-manager/pkg/utils"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

type BookServiceInterface interface {
	GetBooks(ctx context.Context, filter types.Filter) ([]dto.BookDTO, uint64, error)
	FindBook(ctx context.Context, id uint64) (*dto.BookDTO, error)
	CreateBook(ctx context.Context, payload dto.CreateBookDTO) (uint64, error)
	UpdateBook(ctx context.Context, id uint64, payload dto.UpdateBookDTO) error
	DeleteBook(ctx context.Context, id uint64) error
}

type BookService struct {
	bookRepo  repositories.BookRepositoryInterface
	txManager repositories.TxManagerInterface
	logger    *zap.Logger
}

func NewBookService(
	bookRepo repositories.BookRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) BookServiceInterface {
	return &BookService{bookRepo: bookRepo, txManager: txManager, logger: logger}
}

func bookToDTO(b entities.Book) dto.BookDTO {
	return dto.BookDTO{
		ID:              b.ID,
		Titulo:          b.Titulo,
		Autor:           b.Autor,
		ISBN:            b.ISBN,
		Categoria:       b.Categoria,
		Ano:             b.Ano,
		Editora:         b.Editora,
		Edicao:          b.Edicao,
		Descricao:       b.Descricao,
		FotoPath:        b.FotoPath,
		DataCadastro:    utils.NullDateTime(b.DataCadastro),
		TotalExemplares: b.TotalExemplares,
		Disponiveis:     b.Disponiveis,
	}
}

func bookFromDTO(payload dto.CreateBookDTO) (entities.Book, error) {
	var year null.Int
	if s := strings.TrimSpace(string(payload.Ano)); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return entities.Book{}, apperrors.NewInvalidInputError("Ano inválido")
		}
		year = null.IntFrom(n)
	}
	return entities.Book{
		Titulo:    strings.TrimSpace(payload.Titulo),
		Autor:     strings.TrimSpace(payload.Autor),
		ISBN:      utils.NullIfEmpty(payload.ISBN),
		Categoria: utils.NullIfEmpty(payload.Categoria),
		Ano:       year,
		Editora:   utils.NullIfEmpty(payload.Editora),
		Edicao:    utils.NullIfEmpty(payload.Edicao),
		Descricao: utils.NullIfEmpty(payload.Descricao),
	}, nil
}

func (s *BookService) GetBooks(ctx context.Context, filter types.Filter) ([]dto.BookDTO, uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.BooksView); err != nil {
		return nil, 0, err
	}
	books, total, err := s.bookRepo.GetBooks(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.BookDTO, 0, len(books))
	for _, b := range books {
		result = append(result, bookToDTO(b))
	}
	return result, total, nil
}

func (s *BookService) FindBook(ctx context.Context, id uint64) (*dto.BookDTO, error) {
	if _, err := authorize(ctx, s.logger, authz.BooksView); err != nil {
		return nil, err
	}
	book, err := s.bookRepo.FindBook(ctx, id)
	if err != nil {
		return nil, err
	}
	result := bookToDTO(*book)
	return &result, nil
}

func (s *BookService) CreateBook(ctx context.Context, payload dto.CreateBookDTO) (uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.BooksManage); err != nil {
		return 0, err
	}
	book, err := bookFromDTO(payload)
	if err != nil {
		return 0, err
	}

	var id uint64
	err = s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		id, err = s.bookRepo.CreateBook(ctx, tx, book)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Livro cadastrado", zap.Uint64("livro_id", id), zap.String("titulo", book.Titulo))
	return id, nil
}

func (s *BookService) UpdateBook(ctx context.Context, id uint64, payload dto.UpdateBookDTO) error {
	if _, err := authorize(ctx, s.logger, authz.BooksManage); err != nil {
		return err
	}
	book, err := bookFromDTO(dto.CreateBookDTO(payload))
	if err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		return s.bookRepo.UpdateBook(ctx, tx, id, book)
	})
}

func (s *BookService) DeleteBook(ctx context.Context, id uint64) error {
	if _, err := authorize(ctx, s.logger, authz.BooksManage); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		if _, err := s.bookRepo.FindBookTx(ctx, tx, id); err != nil {
			return err
		}
		copies, err := s.bookRepo.CountCopiesTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if copies > 0 {
			return apperrors.NewConflictError("Livro possui %d exemplar(es) cadastrado(s)", copies)
		}
		return s.bookRepo.DeleteBook(ctx, tx, id)
	})
}
