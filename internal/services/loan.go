package services

import (
	"context"
	"errors"

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

var errDeviceUnavailable = apperrors.NewBusinessRuleError("Device não está disponível para empréstimo")

type LoanServiceInterface interface {
	GetLoans(ctx context.Context, filter types.Filter) ([]dto.LoanDTO, uint64, error)
	FindLoan(ctx context.Context, id uint64) (*dto.LoanDTO, error)
	CreateLoan(ctx context.Context, payload dto.CreateLoanDTO) (uint64, error)
	ReturnLoan(ctx context.Context, id uint64) error
	UpdateSignature(ctx context.Context, payload dto.LoanSignatureDTO) error
	DeleteLoan(ctx context.Context, id uint64) error
	BulkDeleteLoans(ctx context.Context, ids []uint64) (int, error)
}

type LoanService struct {
	loanRepo    repositories.LoanRepositoryInterface
	deviceRepo  repositories.DeviceRepositoryInterface
	studentRepo repositories.StudentRepositoryInterface
	txManager   repositories.TxManagerInterface
	logger      *zap.Logger
	now         Clock
}

func NewLoanService(
	loanRepo repositories.LoanRepositoryInterface,
	deviceRepo repositories.DeviceRepositoryInterface,
	studentRepo repositories.StudentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) *LoanService {
	return &LoanService{
		loanRepo:    loanRepo,
		deviceRepo:  deviceRepo,
		studentRepo: studentRepo,
		txManager:   txManager,
		logger:      logger,
		now:         systemClock,
	}
}

// WithClock troca o relógio; usado nos testes.
func (s *LoanService) WithClock(clock Clock) *LoanService {
	s.now = clock
	return s
}

func loanToDTO(l entities.Loan) dto.LoanDTO {
	return dto.LoanDTO{
		ID:            l.ID,
		AlunoID:       l.AlunoID,
		DeviceID:      l.DeviceID,
		Acessorios:    l.Acessorios,
		DataRetirada:  l.DataRetirada.Format(utils.DateTimeLayout),
		DataDevolucao: utils.NullDate(l.DataDevolucao),
		Assinatura:    l.Assinatura,
		Status:        l.Status,
		AlunoNome:     l.AlunoNome,
		DeviceNome:    l.DeviceNome,
		DeviceTipo:    l.DeviceTipo,
		Modelo:        l.Modelo,
		NumeroSerie:   l.NumeroSerie,
	}
}

func (s *LoanService) GetLoans(ctx context.Context, filter types.Filter) ([]dto.LoanDTO, uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.LoansView); err != nil {
		return nil, 0, err
	}
	loans, total, err := s.loanRepo.GetLoans(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.LoanDTO, 0, len(loans))
	for _, l := range loans {
		result = append(result, loanToDTO(l))
	}
	return result, total, nil
}

func (s *LoanService) FindLoan(ctx context.Context, id uint64) (*dto.LoanDTO, error) {
	if _, err := authorize(ctx, s.logger, authz.LoansView); err != nil {
		return nil, err
	}
	loan, err := s.loanRepo.FindLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	result := loanToDTO(*loan)
	return &result, nil
}

func (s *LoanService) CreateLoan(ctx context.Context, payload dto.CreateLoanDTO) (uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.LoansManage); err != nil {
		return 0, err
	}

	pickup := s.now()
	if payload.DataRetirada != "" {
		t, err := utils.ParseDateTime(payload.DataRetirada)
		if err != nil {
			return 0, apperrors.NewInvalidInputError("Data de retirada inválida")
		}
		pickup = t
	}
	due, err := utils.OptionalDate(payload.DataDevolucao)
	if err != nil {
		return 0, apperrors.NewInvalidInputError("Data de devolução inválida")
	}

	var id uint64
	err = s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		if _, err := s.studentRepo.FindStudentTx(ctx, tx, payload.AlunoID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewBusinessRuleError("Aluno não encontrado")
			}
			return err
		}

		device, err := s.deviceRepo.FindDeviceTx(ctx, tx, payload.DeviceID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewBusinessRuleError("Device não encontrado")
			}
			return err
		}
		if device.Status != entities.DeviceAvailable || !device.ParaEmprestimo {
			return errDeviceUnavailable
		}

		claimed, err := s.deviceRepo.ClaimForLoan(ctx, tx, device.ID)
		if err != nil {
			return err
		}
		if !claimed {
			return errDeviceUnavailable
		}

		id, err = s.loanRepo.CreateLoan(ctx, tx, entities.Loan{
			AlunoID:       payload.AlunoID,
			DeviceID:      payload.DeviceID,
			Acessorios:    utils.NullIfEmpty(payload.Acessorios),
			DataRetirada:  pickup,
			DataDevolucao: due,
			Assinatura:    utils.NullIfEmpty(payload.Assinatura),
			Status:        entities.LoanActive,
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Empréstimo registrado",
		zap.Uint64("emprestimo_id", id),
		zap.Uint64("aluno_id", payload.AlunoID),
		zap.Uint64("device_id", payload.DeviceID))
	return id, nil
}

func (s *LoanService) ReturnLoan(ctx context.Context, id uint64) error {
	if _, err := authorize(ctx, s.logger, authz.LoansManage); err != nil {
		return err
	}
	err := s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		loan, err := s.loanRepo.FindLoanTx(ctx, tx, id)
		if err != nil {
			return err
		}
		finished, err := s.loanRepo.FinishLoan(ctx, tx, id)
		if err != nil {
			return err
		}
		if !finished {
			return apperrors.NewBusinessRuleError("Empréstimo já foi finalizado")
		}
		return s.deviceRepo.SetStatus(ctx, tx, loan.DeviceID, entities.DeviceAvailable)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Device devolvido", zap.Uint64("emprestimo_id", id))
	return nil
}

func (s *LoanService) UpdateSignature(ctx context.Context, payload dto.LoanSignatureDTO) error {
	if _, err := authorize(ctx, s.logger, authz.LoansManage); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		return s.loanRepo.UpdateSignature(ctx, tx, payload.EmprestimoID, payload.Assinatura)
	})
}

func (s *LoanService) DeleteLoan(ctx context.Context, id uint64) error {
	if _, err := authorize(ctx, s.logger, authz.LoansManage); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		loan, err := s.loanRepo.FindLoanTx(ctx, tx, id)
		if err != nil {
			return err
		}
		_, err = s.deleteLoans(ctx, tx, []entities.Loan{*loan})
		return err
	})
}

func (s *LoanService) BulkDeleteLoans(ctx context.Context, ids []uint64) (int, error) {
	if _, err := authorize(ctx, s.logger, authz.LoansBulkDelete); err != nil {
		return 0, err
	}
	if err := requireIDs(ids); err != nil {
		return 0, err
	}

	var deleted int64
	err := s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		loans, err := s.loanRepo.FindLoansTx(ctx, tx, ids)
		if err != nil {
			return err
		}
		deleted, err = s.deleteLoans(ctx, tx, loans)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Empréstimos excluídos em massa", zap.Int64("excluidos", deleted))
	return int(deleted), nil
}

// deleteLoans libera os devices dos empréstimos ativos antes de apagar.
func (s *LoanService) deleteLoans(ctx context.Context, tx database.Querier, loans []entities.Loan) (int64, error) {
	if len(loans) == 0 {
		return 0, nil
	}
	ids := make([]uint64, 0, len(loans))
	for _, l := range loans {
		ids = append(ids, l.ID)
		if l.Status == entities.LoanActive {
			if err := s.deviceRepo.SetStatus(ctx, tx, l.DeviceID, entities.DeviceAvailable); err != nil {
				return 0, err
			}
		}
	}
	return s.loanRepo.DeleteLoans(ctx, tx, ids)
}

