package services

import (
	"context"
	"io"
	"strings"

	"academy-manager/internal/authz"
	"academy-manager/internal/dto"
	"academy-manager/internal/entities"
	"academy-manager/internal/repositories"
	"academy-manager/pkg/database"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/filestorage"
	"academy-manager/pkg/types"
	"academy-manager/pkg/utils"

	"go.uber.org/zap"
)

const defaultResetPassword = "123456"

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error)
	FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (uint64, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) error
	ResetPassword(ctx context.Context, id uint64, payload dto.ResetPasswordDTO) (string, error)
	DeleteUser(ctx context.Context, id uint64) error
	UploadPhoto(ctx context.Context, id uint64, file io.Reader, filename string) (string, error)
}

type UserService struct {
	userRepo    repositories.UserRepositoryInterface
	txManager   repositories.TxManagerInterface
	fileStorage filestorage.FileStorageInterface
	logger      *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	txManager repositories.TxManagerInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{userRepo: userRepo, txManager: txManager, fileStorage: fileStorage, logger: logger}
}

func userToDTO(u entities.User) dto.UserDTO {
	return dto.UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		Email:       u.Email,
		FotoPath:    u.FotoPath,
		DataCriacao: utils.NullDateTime(u.DataCriacao),
	}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.UsersManage); err != nil {
		return nil, 0, err
	}
	users, total, err := s.userRepo.GetUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, userToDTO(u))
	}
	return result, total, nil
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	if _, err := authorize(ctx, s.logger, authz.UsersManage); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}
	result := userToDTO(*user)
	return &result, nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (uint64, error) {
	if _, err := authorize(ctx, s.logger, authz.UsersManage); err != nil {
		return 0, err
	}
	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return 0, err
	}

	var id uint64
	err = s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		id, err = s.userRepo.CreateUser(ctx, tx, entities.User{
			Username: strings.TrimSpace(payload.Username),
			Password: hash,
			Role:     payload.Role,
			Email:    utils.NullIfEmpty(payload.Email),
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Usuário criado", zap.Uint64("user_id", id), zap.String("role", payload.Role))
	return id, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) error {
	actor, err := authorize(ctx, s.logger, authz.UsersManage)
	if err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		current, err := s.userRepo.FindUserTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if current.ID == actor.ID && payload.Role != current.Role {
			return apperrors.NewInvalidInputError("Você não pode alterar o seu próprio papel")
		}

		if err := s.userRepo.UpdateUser(ctx, tx, id, entities.User{
			Username: strings.TrimSpace(payload.Username),
			Role:     payload.Role,
			Email:    utils.NullIfEmpty(payload.Email),
		}); err != nil {
			return err
		}

		if payload.Password != "" {
			hash, err := utils.HashPassword(payload.Password)
			if err != nil {
				return err
			}
			return s.userRepo.UpdatePassword(ctx, tx, id, hash)
		}
		return nil
	})
}

// ResetPassword devolve a senha aplicada; sem nova_senha usa a senha padrão.
func (s *UserService) ResetPassword(ctx context.Context, id uint64, payload dto.ResetPasswordDTO) (string, error) {
	if _, err := authorize(ctx, s.logger, authz.UsersManage); err != nil {
		return "", err
	}
	password := payload.NovaSenha
	if password == "" {
		password = defaultResetPassword
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		return s.userRepo.UpdatePassword(ctx, tx, id, hash)
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("Senha redefinida pelo administrador", zap.Uint64("user_id", id))
	return password, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	actor, err := authorize(ctx, s.logger, authz.UsersManage)
	if err != nil {
		return err
	}
	if actor.ID == id {
		return apperrors.NewInvalidInputError("Você não pode excluir o seu próprio usuário")
	}

	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		return s.userRepo.DeleteUser(ctx, tx, id)
	})
}

func (s *UserService) UploadPhoto(ctx context.Context, id uint64, file io.Reader, filename string) (string, error) {
	if _, err := authorize(ctx, s.logger, authz.UsersManage); err != nil {
		return "", err
	}
	if _, err := s.userRepo.FindUser(ctx, id); err != nil {
		return "", err
	}
	return savePhoto(ctx, s.fileStorage, s.txManager, s.logger, file, filename, func(tx database.Querier, path string) error {
		return s.userRepo.UpdatePhoto(ctx, tx, id, path)
	})
}
