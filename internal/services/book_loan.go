package services

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"strings"

	"academy-manager/internal/authz"
	"academy-manager/internal/dto"
	"academy-manager/internal/entities"
	"academy-manager/internal/repositories"
	"academy-manager/pkg/database"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/mailer"
	"academy-manager/pkg/types"
	"academy-manager/pkg/utils"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

const (
	bookLoanDays        = 14
	overdueAlertSubject = "Alerta de Livros Atrasados"
	displayDateLayout   = "02/01/2006"
)

var overdueAlertTemplate = template.Must(template.New("atrasados").Parse(`<h2>Livros com devolução atrasada</h2>
<p>Os empréstimos abaixo, registrados por você, passaram da data prevista de devolução:</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>Aluno</th><th>Livro</th><th>Código de barras</th><th>Devolução prevista</th></tr>
{{range .}}<tr><td>{{.Aluno}}</td><td>{{.Titulo}}</td><td>{{.CodigoBarras}}</td><td>{{.Previsao}}</td></tr>
{{end}}</table>`))

type overdueLine struct {
	Aluno        string
	Titulo       string
	CodigoBarras string
	Previsao     string
}

type BookLoanServiceInterface interface {
	GetBookLoans(ctx context.Context, filter types.Filter) ([]dto.BookLoanDTO, uint64, error)
	FindBookLoan(ctx context.Context, id uint64) (*dto.BookLoanDTO, error)
	CreateBookLoan(ctx context.Context, payload dto.CreateBookLoanDTO) (uint64, error)
	ReturnBook(ctx context.Context, payload dto.ReturnBookDTO) error
	RenewBookLoan(ctx context.Context, id uint64) error
	SendOverdueAlert(ctx context.Context) (int, error)
}

type BookLoanService struct {
	bookLoanRepo repositories.BookLoanRepositoryInterface
	copyRepo     repositories.CopyRepositoryInterface
	studentRepo  repositories.StudentRepositoryInterface
	userRepo     repositories.UserRepositoryInterface
	txManager    repositories.TxManagerInterface
	mailer       mailer.MailerInterface
	logger       *zap.Logger
	now          Clock
}

func NewBookLoanService(
	bookLoanRepo repositories.BookLoanRepositoryInterface,
	copyRepo repositories.CopyRepositoryInterface,
	studentRepo repositories.StudentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	txManager repositories.TxManagerInterface,
	mail mailer.MailerInterface,
	logger *zap.Logger,
) *BookLoanService {
	return &BookLoanService{
		bookLoanRepo: bookLoanRepo,
		copyRepo:     copyRepo,
		studentRepo:  studentRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		mailer:       mail,
		logger:       logger,
		now:          systemClock,
	}
}

func (s *BookLoanService) WithClock(clock Clock) *BookLoanService {
	s.now = clock
	return s
}

func bookLoanToDTO(l entities.BookLoan) dto.BookLoanDTO {
	return dto.BookLoanDTO{
		ID:                    l.ID,
		AlunoID:               l.AlunoID,
		ExemplarID:            l.ExemplarID,
		DataRetirada:          l.DataRetirada.Format(utils.DateTimeLayout),
		DataPrevisaoDevolucao: l.DataPrevisaoDevolucao.Format(utils.DateLayout),
		DataDevolucaoReal:     utils.NullDateTime(l.DataDevolucaoReal),
		Status:                l.Status,
		Renovacoes:            l.Renovacoes,
		Observacao:            l.Observacao,
		Titulo:                l.LivroTitulo,
		Autor:                 l.LivroAutor,
		CodigoBarras:          l.CodigoBarras,
		AlunoNome:             l.AlunoNome,
		CriadoPorNome:         l.CriadoPorNome,
	}
}

// markOverdue reclassifica como Atrasado os empréstimos vencidos antes de qualquer leitura.
func (s *BookLoanService) markOverdue(ctx context.Context) error {
	changed, err := s.bookLoanRepo.MarkOverdue(ctx, utils.DateOnly(s.now()))
	if err != nil {
		return err
	}
	if changed > 0 {
		s.logger.Info("Empréstimos de livros marcados como atrasados", zap.Int64("total", changed))
	}
	return nil
}

func (s *BookLoanService) GetBookLoans(ctx context.Context, filter types.Filter) ([]dto.BookLoanDTO, uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.BookLoansView); err != nil {
		return nil, 0, err
	}
	if err := s.markOverdue(ctx); err != nil {
		return nil, 0, err
	}
	loans, total, err := s.bookLoanRepo.GetBookLoans(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.BookLoanDTO, 0, len(loans))
	for _, l := range loans {
		result = append(result, bookLoanToDTO(l))
	}
	return result, total, nil
}

func (s *BookLoanService) FindBookLoan(ctx context.Context, id uint64) (*dto.BookLoanDTO, error) {
	if _, err := authorize(ctx, s.logger, authz.BookLoansView); err != nil {
		return nil, err
	}
	if err := s.markOverdue(ctx); err != nil {
		return nil, err
	}
	loan, err := s.bookLoanRepo.FindBookLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	result := bookLoanToDTO(*loan)
	return &result, nil
}

func (s *BookLoanService) CreateBookLoan(ctx context.Context, payload dto.CreateBookLoanDTO) (uint64, error) {
	actor, err := authorize(ctx, s.logger, authz.BookLoansManage)
	if err != nil {
		return 0, err
	}

	pickup := s.now()
	if payload.DataRetirada != "" {
		if pickup, err = utils.ParseDateTime(payload.DataRetirada); err != nil {
			return 0, apperrors.NewInvalidInputError("Data de retirada inválida")
		}
	}
	due := utils.DateOnly(pickup).AddDate(0, 0, bookLoanDays)

	var id uint64
	err = s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		if _, err := s.studentRepo.FindStudentTx(ctx, tx, payload.AlunoID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewBusinessRuleError("Aluno não encontrado")
			}
			return err
		}

		item, err := s.copyRepo.FindByBarcodeTx(ctx, tx, strings.TrimSpace(payload.CodigoBarras))
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewBusinessRuleError("Exemplar não encontrado")
			}
			return err
		}
		if item.Status != entities.CopyAvailable {
			return apperrors.NewBusinessRuleError("Exemplar não está disponível")
		}
		claimed, err := s.copyRepo.ClaimCopy(ctx, tx, item.ID)
		if err != nil {
			return err
		}
		if !claimed {
			return apperrors.NewBusinessRuleError("Exemplar não está disponível")
		}

		id, err = s.bookLoanRepo.CreateBookLoan(ctx, tx, entities.BookLoan{
			ExemplarID:            item.ID,
			AlunoID:               payload.AlunoID,
			DataRetirada:          pickup,
			DataPrevisaoDevolucao: due,
			Status:                entities.LoanActive,
			Observacao:            utils.NullIfEmpty(payload.Observacao),
			CriadoPor:             null.Uint64From(actor.ID),
			Assinatura:            utils.NullIfEmpty(payload.Assinatura),
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Empréstimo de livro registrado",
		zap.Uint64("emprestimo_id", id),
		zap.String("codigo_barras", payload.CodigoBarras),
		zap.Time("previsao", due))
	return id, nil
}

// ReturnBook aceita o id do empréstimo ou o código de barras lido no balcão.
func (s *BookLoanService) ReturnBook(ctx context.Context, payload dto.ReturnBookDTO) error {
	if _, err := authorize(ctx, s.logger, authz.BookLoansManage); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		var (
			loan *entities.BookLoan
			err  error
		)
		if payload.EmprestimoID != 0 {
			loan, err = s.bookLoanRepo.FindBookLoanTx(ctx, tx, payload.EmprestimoID)
		} else {
			loan, err = s.bookLoanRepo.FindOpenByBarcodeTx(ctx, tx, strings.TrimSpace(payload.CodigoBarras))
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("Nenhum empréstimo em aberto para este exemplar")
			}
		}
		if err != nil {
			return err
		}

		finished, err := s.bookLoanRepo.FinishBookLoan(ctx, tx, loan.ID, s.now())
		if err != nil {
			return err
		}
		if !finished {
			return apperrors.NewBusinessRuleError("Empréstimo já foi finalizado")
		}
		return s.copyRepo.SetStatus(ctx, tx, loan.ExemplarID, entities.CopyAvailable)
	})
}

func (s *BookLoanService) RenewBookLoan(ctx context.Context, id uint64) error {
	if _, err := authorize(ctx, s.logger, authz.BookLoansManage); err != nil {
		return err
	}
	due := utils.DateOnly(s.now()).AddDate(0, 0, bookLoanDays)

	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		if _, err := s.bookLoanRepo.FindBookLoanTx(ctx, tx, id); err != nil {
			return err
		}
		renewed, err := s.bookLoanRepo.RenewBookLoan(ctx, tx, id, due)
		if err != nil {
			return err
		}
		if !renewed {
			return apperrors.NewBusinessRuleError("Só empréstimos em aberto podem ser renovados")
		}
		return nil
	})
}

// SendOverdueAlert envia ao usuário logado a lista dos atrasados que ele registrou.
func (s *BookLoanService) SendOverdueAlert(ctx context.Context) (int, error) {
	actor, err := authorize(ctx, s.logger, authz.BookLoansView)
	if err != nil {
		return 0, err
	}
	user, err := s.userRepo.FindUser(ctx, actor.ID)
	if err != nil {
		return 0, err
	}
	if !user.Email.Valid || strings.TrimSpace(user.Email.String) == "" {
		return 0, apperrors.NewInvalidInputError("Cadastre um e-mail no seu usuário para receber alertas")
	}

	if err := s.markOverdue(ctx); err != nil {
		return 0, err
	}
	loans, err := s.bookLoanRepo.GetOverdueByCreator(ctx, actor.ID)
	if err != nil {
		return 0, err
	}
	if len(loans) == 0 {
		return 0, apperrors.NewInvalidInputError("Nenhum empréstimo atrasado registrado por você")
	}

	body, err := renderOverdueAlert(loans)
	if err != nil {
		return 0, err
	}
	if err := s.mailer.Send(ctx, mailer.Message{
		To:      []string{user.Email.String},
		Subject: overdueAlertSubject,
		HTML:    body,
	}); err != nil {
		return 0, err
	}
	return len(loans), nil
}

func renderOverdueAlert(loans []entities.BookLoan) (string, error) {
	lines := make([]overdueLine, 0, len(loans))
	for _, l := range loans {
		lines = append(lines, overdueLine{
			Aluno:        l.AlunoNome,
			Titulo:       l.LivroTitulo,
			CodigoBarras: l.CodigoBarras,
			Previsao:     l.DataPrevisaoDevolucao.Format(displayDateLayout),
		})
	}
	var buf bytes.Buffer
	if err := overdueAlertTemplate.Execute(&buf, lines); err != nil {
		return "", err
	}
	return buf.String(), nil
}

