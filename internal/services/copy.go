package services

import (
	"context"
	"errors"
	"strings"

	"academy-manager/internal/authz"
	"academy-manager/internal/dto"
	"academy-manager/internal/entities"
	"academy-manager/internal/repositories"
	"academy-manager/pkg/database"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/types"
	"academy-manager/pkg/utils"

	"go.uber.org/zap"
)

type CopyServiceInterface interface {
	GetCopies(ctx context.Context, filter types.Filter) ([]dto.CopyDTO, uint64, error)
	FindCopy(ctx context.Context, id uint64) (*dto.CopyDTO, error)
	CreateCopy(ctx context.Context, payload dto.CreateCopyDTO) (uint64, error)
	UpdateCopy(ctx context.Context, id uint64, payload dto.UpdateCopyDTO) error
	DeleteCopy(ctx context.Context, id uint64) error
}

type CopyService struct {
	copyRepo     repositories.CopyRepositoryInterface
	bookRepo     repositories.BookRepositoryInterface
	bookLoanRepo repositories.BookLoanRepositoryInterface
	txManager    repositories.TxManagerInterface
	logger       *zap.Logger
}

func NewCopyService(
	copyRepo repositories.CopyRepositoryInterface,
	bookRepo repositories.BookRepositoryInterface,
	bookLoanRepo repositories.BookLoanRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) CopyServiceInterface {
	return &CopyService{
		copyRepo:     copyRepo,
		bookRepo:     bookRepo,
		bookLoanRepo: bookLoanRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

func copyToDTO(c entities.Copy) dto.CopyDTO {
	return dto.CopyDTO{
		ID:            c.ID,
		LivroID:       c.LivroID,
		CodigoBarras:  c.CodigoBarras,
		Status:        c.Status,
		Localizacao:   c.Localizacao,
		Observacao:    c.Observacao,
		DataAquisicao: utils.NullDate(c.DataAquisicao),
		LivroTitulo:   c.LivroTitulo,
		LivroAutor:    c.LivroAutor,
	}
}

func (s *CopyService) GetCopies(ctx context.Context, filter types.Filter) ([]dto.CopyDTO, uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.BooksView); err != nil {
		return nil, 0, err
	}
	copies, total, err := s.copyRepo.GetCopies(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.CopyDTO, 0, len(copies))
	for _, c := range copies {
		result = append(result, copyToDTO(c))
	}
	return result, total, nil
}

func (s *CopyService) FindCopy(ctx context.Context, id uint64) (*dto.CopyDTO, error) {
	if _, err := authorize(ctx, s.logger, authz.BooksView); err != nil {
		return nil, err
	}
	c, err := s.copyRepo.FindCopy(ctx, id)
	if err != nil {
		return nil, err
	}
	result := copyToDTO(*c)
	return &result, nil
}

func (s *CopyService) CreateCopy(ctx context.Context, payload dto.CreateCopyDTO) (uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.BooksManage); err != nil {
		return 0, err
	}
	acquired, err := utils.OptionalDate(payload.DataAquisicao)
	if err != nil {
		return 0, apperrors.NewInvalidInputError("Data de aquisição inválida")
	}

	var id uint64
	err = s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		if _, err := s.bookRepo.FindBookTx(ctx, tx, payload.LivroID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("Livro não encontrado")
			}
			return err
		}
		id, err = s.copyRepo.CreateCopy(ctx, tx, entities.Copy{
			LivroID:       payload.LivroID,
			CodigoBarras:  strings.TrimSpace(payload.CodigoBarras),
			Status:        entities.CopyAvailable,
			Localizacao:   utils.NullIfEmpty(payload.Localizacao),
			Observacao:    utils.NullIfEmpty(payload.Observacao),
			DataAquisicao: acquired,
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Exemplar cadastrado", zap.Uint64("exemplar_id", id), zap.Uint64("livro_id", payload.LivroID))
	return id, nil
}

// UpdateCopy aplica só os campos enviados. O status não pode contrariar os empréstimos em aberto.
func (s *CopyService) UpdateCopy(ctx context.Context, id uint64, payload dto.UpdateCopyDTO) error {
	if _, err := authorize(ctx, s.logger, authz.BooksManage); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		current, err := s.copyRepo.FindCopyTx(ctx, tx, id)
		if err != nil {
			return err
		}
		updated := *current
		if payload.CodigoBarras != nil {
			updated.CodigoBarras = strings.TrimSpace(*payload.CodigoBarras)
		}
		if payload.Localizacao != nil {
			updated.Localizacao = utils.NullIfEmpty(*payload.Localizacao)
		}
		if payload.Observacao != nil {
			updated.Observacao = utils.NullIfEmpty(*payload.Observacao)
		}
		if payload.Status != nil && *payload.Status != current.Status {
			open, err := s.bookLoanRepo.OpenByCopyTx(ctx, tx, id)
			if err != nil {
				return err
			}
			switch {
			case open > 0 && *payload.Status == entities.CopyAvailable:
				return apperrors.NewBusinessRuleError("Exemplar está emprestado; registre a devolução")
			case open == 0 && *payload.Status == entities.CopyLoaned:
				return apperrors.NewBusinessRuleError("Status Emprestado só é definido por um empréstimo")
			}
			updated.Status = *payload.Status
		}
		return s.copyRepo.UpdateCopy(ctx, tx, id, updated)
	})
}

func (s *CopyService) DeleteCopy(ctx context.Context, id uint64) error {
	if _, err := authorize(ctx, s.logger, authz.BooksManage); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		if _, err := s.copyRepo.FindCopyTx(ctx, tx, id); err != nil {
			return err
		}
		loans, err := s.bookLoanRepo.CountByCopyTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if loans > 0 {
			return apperrors.NewConflictError("Exemplar possui histórico de empréstimos e não pode ser excluído")
		}
		return s.copyRepo.DeleteCopy(ctx, tx, id)
	})
}
