package controllers

import (
	"fmt"
	"io"
	"net/http"

	"academy-manager/internal/dto"
	"academy-manager/internal/services"
	"academy-manager/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type BackupController struct {
	backupService services.BackupServiceInterface
	logger        *zap.Logger
}

func NewBackupController(backupService services.BackupServiceInterface, logger *zap.Logger) *BackupController {
	return &BackupController{backupService: backupService, logger: logger}
}

// Download gera o dump na hora, sem gravar em disco.
func (c *BackupController) Download(ctx echo.Context) error {
	err := sendAttachment(ctx, contentTypeSQL, func(w io.Writer) (string, error) {
		return c.backupService.Dump(ctx.Request().Context(), w)
	})
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return nil
}

func (c *BackupController) Restore(ctx echo.Context) error {
	src, fileHeader, err := openUpload(ctx, "restore_sql")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer src.Close()

	reqCtx, cancel := utils.RequestContext(ctx, utils.RestoreTimeout)
	defer cancel()

	result, err := c.backupService.Restore(reqCtx, src)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.logger.Info("Restore concluído",
		zap.String("arquivo", fileHeader.Filename),
		zap.Int("executados", result.Executados),
		zap.Int("erros", len(result.Erros)),
	)
	msg := "Backup restaurado com sucesso"
	if len(result.Erros) > 0 {
		msg = fmt.Sprintf("Backup restaurado com %d erro(s)", len(result.Erros))
	}
	return utils.SuccessResponse(ctx, result, msg, http.StatusOK)
}

func (c *BackupController) ListBackups(ctx echo.Context) error {
	list, err := c.backupService.ListBackups(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Backups obtidos com sucesso", http.StatusOK, uint64(len(list)))
}

func (c *BackupController) CreateBackup(ctx echo.Context) error {
	file, err := c.backupService.CreateBackup(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, file, "Backup criado com sucesso", http.StatusCreated)
}

func (c *BackupController) DownloadBackup(ctx echo.Context) error {
	name := ctx.Param("name")
	path, err := c.backupService.BackupPath(ctx.Request().Context(), name)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.Attachment(path, name)
}

func (c *BackupController) DeleteBackup(ctx echo.Context) error {
	if err := c.backupService.DeleteBackup(ctx.Request().Context(), ctx.Param("name")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Backup excluído com sucesso", http.StatusOK)
}

func (c *BackupController) DeleteBackups(ctx echo.Context) error {
	var payload dto.BackupNamesDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	deleted, err := c.backupService.DeleteBackups(ctx.Request().Context(), payload.Arquivos)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.BulkDeleteResultDTO{Excluidos: deleted}, "Backups excluídos com sucesso", http.StatusOK)
}
