package services

import (
	"context"
	"io"
	"strings"

	"academy-manager/internal/authz"
	"academy-manager/internal/dto"
	"academy-manager/internal/entities"
	"academy-manager/internal/repositories"
	"academy-manager/pkg/coerce"
	"academy-manager/pkg/database"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/filestorage"
	"academy-manager/pkg/types"
	"academy-manager/pkg/utils"

	"go.uber.org/zap"
)

type StudentServiceInterface interface {
	GetStudents(ctx context.Context, filter types.Filter) ([]dto.StudentDTO, uint64, error)
	FindStudent(ctx context.Context, id uint64) (*dto.StudentDTO, error)
	CreateStudent(ctx context.Context, payload dto.CreateStudentDTO) (uint64, error)
	UpdateStudent(ctx context.Context, id uint64, payload dto.UpdateStudentDTO) error
	DeleteStudent(ctx context.Context, id uint64) error
	BulkDeleteStudents(ctx context.Context, ids []uint64) (int, error)
	UploadPhoto(ctx context.Context, id uint64, file io.Reader, filename string) (string, error)
}

type StudentService struct {
	studentRepo  repositories.StudentRepositoryInterface
	loanRepo     repositories.LoanRepositoryInterface
	bookLoanRepo repositories.BookLoanRepositoryInterface
	txManager    repositories.TxManagerInterface
	fileStorage  filestorage.FileStorageInterface
	logger       *zap.Logger
}

func NewStudentService(
	studentRepo repositories.StudentRepositoryInterface,
	loanRepo repositories.LoanRepositoryInterface,
	bookLoanRepo repositories.BookLoanRepositoryInterface,
	txManager repositories.TxManagerInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) StudentServiceInterface {
	return &StudentService{
		studentRepo:  studentRepo,
		loanRepo:     loanRepo,
		bookLoanRepo: bookLoanRepo,
		txManager:    txManager,
		fileStorage:  fileStorage,
		logger:       logger,
	}
}

func studentToDTO(s entities.Student) dto.StudentDTO {
	return dto.StudentDTO{
		ID:           s.ID,
		Nome:         s.Nome,
		CPF:          s.CPF,
		Telefone:     s.Telefone,
		Email:        s.Email,
		Endereco:     s.Endereco,
		TemAppleID:   s.TemAppleID,
		AppleID:      s.AppleID,
		TipoAluno:    s.TipoAluno,
		DataInicio:   utils.NullDate(s.DataInicio),
		FotoPath:     s.FotoPath,
		DataCadastro: utils.NullDateTime(s.DataCadastro),
	}
}

// normalizeStudentType: vazio vira Regular; valor desconhecido vira Foundation.
func normalizeStudentType(s string) string {
	switch strings.TrimSpace(s) {
	case "":
		return entities.StudentRegular
	case entities.StudentRegular, entities.StudentFoundation:
		return strings.TrimSpace(s)
	}
	for _, t := range []string{entities.StudentRegular, entities.StudentFoundation} {
		if strings.EqualFold(strings.TrimSpace(s), t) {
			return t
		}
	}
	return entities.StudentFoundation
}

func studentFromDTO(payload dto.CreateStudentDTO) (entities.Student, error) {
	start, err := utils.OptionalDate(payload.DataInicio)
	if err != nil {
		return entities.Student{}, apperrors.NewInvalidInputError("Data de início inválida")
	}
	return entities.Student{
		Nome:       strings.TrimSpace(payload.Nome),
		CPF:        utils.NullIfEmpty(payload.CPF),
		Telefone:   utils.NullIfEmpty(payload.Telefone),
		Email:      strings.TrimSpace(payload.Email),
		Endereco:   utils.NullIfEmpty(payload.Endereco),
		TemAppleID: payload.TemAppleID.Or(false),
		AppleID:    utils.NullIfEmpty(payload.AppleID),
		TipoAluno:  normalizeStudentType(payload.TipoAluno),
		DataInicio: start,
	}, nil
}

func (s *StudentService) GetStudents(ctx context.Context, filter types.Filter) ([]dto.StudentDTO, uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.StudentsView); err != nil {
		return nil, 0, err
	}
	students, total, err := s.studentRepo.GetStudents(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.StudentDTO, 0, len(students))
	for _, st := range students {
		result = append(result, studentToDTO(st))
	}
	return result, total, nil
}

func (s *StudentService) FindStudent(ctx context.Context, id uint64) (*dto.StudentDTO, error) {
	if _, err := authorize(ctx, s.logger, authz.StudentsView); err != nil {
		return nil, err
	}
	student, err := s.studentRepo.FindStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	result := studentToDTO(*student)
	return &result, nil
}

func (s *StudentService) CreateStudent(ctx context.Context, payload dto.CreateStudentDTO) (uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.StudentsManage); err != nil {
		return 0, err
	}
	student, err := studentFromDTO(payload)
	if err != nil {
		return 0, err
	}

	var id uint64
	err = s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		id, err = s.studentRepo.CreateStudent(ctx, tx, student)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Aluno cadastrado", zap.Uint64("aluno_id", id))
	return id, nil
}

func (s *StudentService) UpdateStudent(ctx context.Context, id uint64, payload dto.UpdateStudentDTO) error {
	if _, err := authorize(ctx, s.logger, authz.StudentsManage); err != nil {
		return err
	}
	student, err := studentFromDTO(dto.CreateStudentDTO(payload))
	if err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		return s.studentRepo.UpdateStudent(ctx, tx, id, student)
	})
}

func (s *StudentService) DeleteStudent(ctx context.Context, id uint64) error {
	if _, err := authorize(ctx, s.logger, authz.StudentsManage); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		if _, err := s.studentRepo.FindStudentTx(ctx, tx, id); err != nil {
			return err
		}
		_, err := s.deleteStudents(ctx, tx, []uint64{id})
		return err
	})
}

func (s *StudentService) BulkDeleteStudents(ctx context.Context, ids []uint64) (int, error) {
	if _, err := authorize(ctx, s.logger, authz.StudentsManage); err != nil {
		return 0, err
	}
	if err := requireIDs(ids); err != nil {
		return 0, err
	}

	var deleted int64
	err := s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		var err error
		deleted, err = s.deleteStudents(ctx, tx, ids)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Alunos excluídos em massa", zap.Int64("excluidos", deleted))
	return int(deleted), nil
}

// deleteStudents recusa o lote inteiro se algum aluno estiver com device ou livro;
// senão apaga o histórico de empréstimos e os alunos.
func (s *StudentService) deleteStudents(ctx context.Context, tx database.Querier, ids []uint64) (int64, error) {
	withDevice, err := s.loanRepo.ActiveByStudentsTx(ctx, tx, ids)
	if err != nil {
		return 0, err
	}
	if len(withDevice) > 0 {
		return 0, blockedIDs("Há alunos com empréstimo de device ativo", withDevice)
	}
	withBook, err := s.bookLoanRepo.OpenByStudentsTx(ctx, tx, ids)
	if err != nil {
		return 0, err
	}
	if len(withBook) > 0 {
		return 0, blockedIDs("Há alunos com livros não devolvidos", withBook)
	}

	if _, err := s.bookLoanRepo.DeleteByStudentsTx(ctx, tx, ids); err != nil {
		return 0, err
	}
	if _, err := s.loanRepo.DeleteByStudentsTx(ctx, tx, ids); err != nil {
		return 0, err
	}
	return s.studentRepo.DeleteStudents(ctx, tx, ids)
}

func (s *StudentService) UploadPhoto(ctx context.Context, id uint64, file io.Reader, filename string) (string, error) {
	if _, err := authorize(ctx, s.logger, authz.StudentsManage); err != nil {
		return "", err
	}
	if _, err := s.studentRepo.FindStudent(ctx, id); err != nil {
		return "", err
	}
	return savePhoto(ctx, s.fileStorage, s.txManager, s.logger, file, filename, func(tx database.Querier, path string) error {
		return s.studentRepo.UpdatePhoto(ctx, tx, id, path)
	})
}

// studentFromRecord é usado pela importação de planilhas.
func studentFromRecord(get func(string) string) (entities.Student, error) {
	payload := dto.CreateStudentDTO{
		Nome:       get("nome"),
		CPF:        get("cpf"),
		Telefone:   get("telefone"),
		Email:      get("email"),
		Endereco:   get("endereco"),
		AppleID:    get("apple_id"),
		TipoAluno:  get("tipo_aluno"),
		DataInicio: get("data_inicio"),
	}
	if payload.Nome == "" || payload.Email == "" {
		return entities.Student{}, apperrors.NewInvalidInputError("nome e email são obrigatórios")
	}
	if v := get("tem_apple_id"); v != "" {
		payload.TemAppleID = coerce.NewFlag(coerce.String(v))
	}
	return studentFromDTO(payload)
}
