package services

import (
	"context"
	"io"
	"time"

	"academy-manager/config"
	"academy-manager/internal/authz"
	"academy-manager/internal/repositories"
	"academy-manager/pkg/database"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/filestorage"
	"academy-manager/pkg/types"
	"academy-manager/pkg/utils"

	"go.uber.org/zap"
)

// Clock permite fixar "agora" nos testes.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// authorize lê o usuário da sessão e confere a permissão.
func authorize(ctx context.Context, logger *zap.Logger, permission string, target ...interface{}) (types.Principal, error) {
	principal, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return types.Principal{}, apperrors.ErrUnauthorized
	}

	authCtx := authz.Context{Actor: principal}
	if len(target) > 0 {
		authCtx.Target = target[0]
	}
	if !authz.CanDo(permission, authCtx) {
		logger.Warn("Acesso negado",
			zap.Uint64("user_id", principal.ID),
			zap.String("role", principal.Role),
			zap.String("permission", permission))
		return principal, apperrors.ErrForbidden
	}
	return principal, nil
}

// blockedIDs monta o erro de exclusão em massa recusada, com os ids no corpo da resposta.
// requireIDs recusa exclusão em massa sem alvo.
func requireIDs(ids []uint64) error {
	if len(ids) == 0 {
		return apperrors.NewInvalidInputError("Nenhum id informado para exclusão")
	}
	return nil
}

func blockedIDs(message string, ids []uint64) error {
	return &apperrors.ConflictError{Message: message, Details: map[string]interface{}{"ids": ids}}
}

// savePhoto grava a imagem e registra o caminho; se o registro falhar o arquivo é removido.
func savePhoto(
	ctx context.Context,
	storage filestorage.FileStorageInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
	file io.Reader,
	filename string,
	update func(tx database.Querier, path string) error,
) (string, error) {
	path, err := storage.Save(file, filename, config.UploadContexts["profile_photo"].PathPrefix)
	if err != nil {
		logger.Error("Falha ao gravar foto", zap.String("arquivo", filename), zap.Error(err))
		return "", err
	}

	err = txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		return update(tx, path)
	})
	if err != nil {
		_ = storage.Delete(path)
		return "", err
	}
	return path, nil
}
