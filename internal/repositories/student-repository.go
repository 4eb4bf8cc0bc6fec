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

const studentTable = "alunos"

var studentColumns = []string{
	"id", "nome", "cpf", "telefone", "email", "endereco", "tem_apple_id", "apple_id",
	"tipo_aluno", "data_inicio", "foto_path", "data_cadastro",
}

var studentMap = map[string]string{
	"id":            "id",
	"nome":          "nome",
	"email":         "email",
	"cpf":           "cpf",
	"tipo_aluno":    "tipo_aluno",
	"tem_apple_id":  "tem_apple_id",
	"data_inicio":   "data_inicio",
	"data_cadastro": "data_cadastro",
}

type StudentRepositoryInterface interface {
	GetStudents(ctx context.Context, filter types.Filter) ([]entities.Student, uint64, error)
	FindStudent(ctx context.Context, id uint64) (*entities.Student, error)
	FindStudentTx(ctx context.Context, tx database.Querier, id uint64) (*entities.Student, error)
	ExistingIDsTx(ctx context.Context, tx database.Querier, ids []uint64) ([]uint64, error)
	CreateStudent(ctx context.Context, tx database.Querier, student entities.Student) (uint64, error)
	UpdateStudent(ctx context.Context, tx database.Querier, id uint64, student entities.Student) error
	UpdatePhoto(ctx context.Context, tx database.Querier, id uint64, path string) error
	DeleteStudents(ctx context.Context, tx database.Querier, ids []uint64) (int64, error)
}

type StudentRepository struct {
	storage database.Querier
	logger  *zap.Logger
}

func NewStudentRepository(storage database.Querier, logger *zap.Logger) StudentRepositoryInterface {
	return &StudentRepository{storage: storage, logger: logger}
}

func scanStudent(r database.Row) entities.Student {
	return entities.Student{
		ID:           r.Uint64("id"),
		Nome:         r.String("nome"),
		CPF:          r.NullString("cpf"),
		Telefone:     r.NullString("telefone"),
		Email:        r.String("email"),
		Endereco:     r.NullString("endereco"),
		TemAppleID:   r.Bool("tem_apple_id"),
		AppleID:      r.NullString("apple_id"),
		TipoAluno:    r.String("tipo_aluno"),
		DataInicio:   r.NullTime("data_inicio"),
		FotoPath:     r.NullString("foto_path"),
		DataCadastro: r.NullTime("data_cadastro"),
	}
}

func (r *StudentRepository) GetStudents(ctx context.Context, filter types.Filter) ([]entities.Student, uint64, error) {
	base := r.storage.Builder().Select(studentColumns...).From(studentTable)
	base = bd.ApplySearch(base, r.storage.Dialect(), filter.Search, "nome", "email", "cpf")

	rows, total, err := fetchPage(ctx, r.storage, listQuery{
		base:         base,
		allowed:      studentMap,
		defaultOrder: []string{"nome ASC"},
	}, boolFilters(filter, "tem_apple_id"))
	if err != nil {
		return nil, 0, err
	}

	students := make([]entities.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, scanStudent(row))
	}
	return students, total, nil
}

func (r *StudentRepository) findOne(ctx context.Context, q database.Querier, id uint64) (*entities.Student, error) {
	row, err := q.Get(ctx, q.Builder().Select(studentColumns...).From(studentTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	s := scanStudent(row)
	return &s, nil
}

func (r *StudentRepository) FindStudent(ctx context.Context, id uint64) (*entities.Student, error) {
	return r.findOne(ctx, r.storage, id)
}

func (r *StudentRepository) FindStudentTx(ctx context.Context, tx database.Querier, id uint64) (*entities.Student, error) {
	return r.findOne(ctx, tx, id)
}

func (r *StudentRepository) ExistingIDsTx(ctx context.Context, tx database.Querier, ids []uint64) ([]uint64, error) {
	rows, err := tx.Query(ctx, tx.Builder().Select("id").From(studentTable).Where(sq.Eq{"id": ids}))
	if err != nil {
		return nil, err
	}
	return idsOf(rows, "id"), nil
}

func (r *StudentRepository) CreateStudent(ctx context.Context, tx database.Querier, s entities.Student) (uint64, error) {
	id, err := tx.Insert(ctx, tx.Builder().Insert(studentTable).
		Columns("nome", "cpf", "telefone", "email", "endereco", "tem_apple_id", "apple_id", "tipo_aluno", "data_inicio", "foto_path").
		Values(s.Nome, nullValue(s.CPF), nullValue(s.Telefone), s.Email, nullValue(s.Endereco), s.TemAppleID,
			nullValue(s.AppleID), s.TipoAluno, dbNullTime(s.DataInicio), nullValue(s.FotoPath)))
	if err != nil {
		return 0, studentConflict(err)
	}
	return id, nil
}

func (r *StudentRepository) UpdateStudent(ctx context.Context, tx database.Querier, id uint64, s entities.Student) error {
	update := tx.Builder().Update(studentTable).
		Set("nome", s.Nome).
		Set("cpf", nullValue(s.CPF)).
		Set("telefone", nullValue(s.Telefone)).
		Set("email", s.Email).
		Set("endereco", nullValue(s.Endereco)).
		Set("tem_apple_id", s.TemAppleID).
		Set("apple_id", nullValue(s.AppleID)).
		Set("tipo_aluno", s.TipoAluno).
		Set("data_inicio", dbNullTime(s.DataInicio))
	if s.FotoPath.Valid {
		update = update.Set("foto_path", s.FotoPath.String)
	}

	affected, err := tx.Exec(ctx, update.Where(sq.Eq{"id": id}))
	if err != nil {
		return studentConflict(err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *StudentRepository) UpdatePhoto(ctx context.Context, tx database.Querier, id uint64, path string) error {
	affected, err := tx.Exec(ctx, tx.Builder().Update(studentTable).Set("foto_path", path).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *StudentRepository) DeleteStudents(ctx context.Context, tx database.Querier, ids []uint64) (int64, error) {
	return tx.Exec(ctx, tx.Builder().Delete(studentTable).Where(sq.Eq{"id": ids}))
}

func studentConflict(err error) error {
	v, ok := database.AsIntegrityViolation(err)
	if !ok || v.Kind != database.UniqueViolation {
		return err
	}
	if v.Mentions("cpf") {
		return apperrors.NewConflictError("CPF já cadastrado")
	}
	return apperrors.NewConflictError("E-mail já cadastrado")
}
