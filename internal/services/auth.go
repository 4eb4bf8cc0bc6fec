package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"academy-manager/internal/authz"
	"academy-manager/internal/dto"
	"academy-manager/internal/repositories"
	"academy-manager/pkg/config"
	"academy-manager/pkg/database"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/types"
	"academy-manager/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*types.Principal, error)
	Me(ctx context.Context) dto.MeDTO
	ChangePassword(ctx context.Context, payload dto.ChangePasswordDTO) error
}

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	txManager repositories.TxManagerInterface
	logger    *zap.Logger
	cfg       *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		txManager: txManager,
		logger:    logger,
		cfg:       cfg,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*types.Principal, error) {
	username := strings.TrimSpace(payload.Username)

	if err := s.checkLockout(ctx, username); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.handleFailedLoginAttempt(ctx, username)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, username)
		return nil, apperrors.ErrInvalidCredentials
	}
	s.resetLoginAttempts(ctx, username)

	s.logger.Info("Login realizado", zap.Uint64("user_id", user.ID), zap.String("username", user.Username))
	return &types.Principal{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

func (s *AuthService) Me(ctx context.Context) dto.MeDTO {
	principal, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return dto.MeDTO{Authenticated: false}
	}
	return dto.MeDTO{Authenticated: true, User: &principal}
}

func (s *AuthService) ChangePassword(ctx context.Context, payload dto.ChangePasswordDTO) error {
	principal, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return err
	}
	if !authz.CanDo(authz.PasswordUpdate, authz.Context{Actor: principal, Target: &principal}) {
		return apperrors.ErrForbidden
	}

	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		user, err := s.userRepo.FindUserTx(ctx, tx, principal.ID)
		if err != nil {
			return err
		}
		if err := utils.ComparePasswords(user.Password, payload.SenhaAtual); err != nil {
			return apperrors.NewInvalidInputError("Senha atual incorreta")
		}
		hash, err := utils.HashPassword(payload.NovaSenha)
		if err != nil {
			return err
		}
		if err := s.userRepo.UpdatePassword(ctx, tx, user.ID, hash); err != nil {
			return err
		}
		s.logger.Info("Senha alterada", zap.Uint64("user_id", user.ID))
		return nil
	})
}

// O contador é por username: tentativas com usuário inexistente também contam.
func (s *AuthService) checkLockout(ctx context.Context, username string) error {
	if _, err := s.cacheRepo.Get(ctx, lockoutKey(username)); err == nil {
		return apperrors.ErrTooManyAttempts
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, username string) {
	attemptsKey := attemptsKey(username)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("Falha ao registrar tentativa de login", zap.Error(err))
		return
	}
	if attempts == 1 {
		_, _ = s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		_ = s.cacheRepo.Set(ctx, lockoutKey(username), "locked", s.cfg.LockoutDuration)
		_ = s.cacheRepo.Del(ctx, attemptsKey)
		s.logger.Warn("Usuário bloqueado por excesso de tentativas", zap.String("username", username))
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, username string) {
	_ = s.cacheRepo.Del(ctx, attemptsKey(username), lockoutKey(username))
}

func attemptsKey(username string) string {
	return fmt.Sprintf("login_attempts:%s", strings.ToLower(username))
}

func lockoutKey(username string) string {
	return fmt.Sprintf("lockout:%s", strings.ToLower(username))
}
