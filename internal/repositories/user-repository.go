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

const userTable = "users"

var userColumns = []string{"id", "username", "password", "role", "email", "foto_path", "data_criacao"}

var userMap = map[string]string{
	"id":           "id",
	"username":     "username",
	"role":         "role",
	"email":        "email",
	"data_criacao": "data_criacao",
}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	FindUserTx(ctx context.Context, tx database.Querier, id uint64) (*entities.User, error)
	CreateUser(ctx context.Context, tx database.Querier, user entities.User) (uint64, error)
	UpdateUser(ctx context.Context, tx database.Querier, id uint64, user entities.User) error
	UpdatePassword(ctx context.Context, tx database.Querier, id uint64, hash string) error
	UpdatePhoto(ctx context.Context, tx database.Querier, id uint64, path string) error
	DeleteUser(ctx context.Context, tx database.Querier, id uint64) error
}

type UserRepository struct {
	storage database.Querier
	logger  *zap.Logger
}

func NewUserRepository(storage database.Querier, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(r database.Row) entities.User {
	return entities.User{
		ID:          r.Uint64("id"),
		Username:    r.String("username"),
		Password:    r.String("password"),
		Role:        r.String("role"),
		Email:       r.NullString("email"),
		FotoPath:    r.NullString("foto_path"),
		DataCriacao: r.NullTime("data_criacao"),
	}
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	base := r.storage.Builder().Select(userColumns...).From(userTable)
	base = bd.ApplySearch(base, r.storage.Dialect(), filter.Search, "username", "email")

	rows, total, err := fetchPage(ctx, r.storage, listQuery{base: base, allowed: userMap, defaultOrder: []string{"username ASC"}}, filter)
	if err != nil {
		return nil, 0, err
	}

	users := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, scanUser(row))
	}
	return users, total, nil
}

func (r *UserRepository) findOne(ctx context.Context, q database.Querier, where sq.Eq) (*entities.User, error) {
	row, err := q.Get(ctx, q.Builder().Select(userColumns...).From(userTable).Where(where))
	if err != nil {
		return nil, err
	}
	user := scanUser(row)
	return &user, nil
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"id": id})
}

func (r *UserRepository) FindUserTx(ctx context.Context, tx database.Querier, id uint64) (*entities.User, error) {
	return r.findOne(ctx, tx, sq.Eq{"id": id})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"username": username})
}

func (r *UserRepository) CreateUser(ctx context.Context, tx database.Querier, user entities.User) (uint64, error) {
	id, err := tx.Insert(ctx, tx.Builder().Insert(userTable).
		Columns("username", "password", "role", "email").
		Values(user.Username, user.Password, user.Role, nullValue(user.Email)))
	if err != nil {
		return 0, userConflict(err)
	}
	return id, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, tx database.Querier, id uint64, user entities.User) error {
	affected, err := tx.Exec(ctx, tx.Builder().Update(userTable).
		Set("username", user.Username).
		Set("role", user.Role).
		Set("email", nullValue(user.Email)).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return userConflict(err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, tx database.Querier, id uint64, hash string) error {
	affected, err := tx.Exec(ctx, tx.Builder().Update(userTable).Set("password", hash).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePhoto(ctx context.Context, tx database.Querier, id uint64, path string) error {
	affected, err := tx.Exec(ctx, tx.Builder().Update(userTable).Set("foto_path", path).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, tx database.Querier, id uint64) error {
	affected, err := tx.Exec(ctx, tx.Builder().Delete(userTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func userConflict(err error) error {
	if v, ok := database.AsIntegrityViolation(err); ok && v.Kind == database.UniqueViolation {
		return apperrors.NewConflictError("Nome de usuário já existe")
	}
	return err
}
