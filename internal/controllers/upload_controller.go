package controllers

import (
	"net/http"

	"academy-manager/internal/services"
	"academy-manager/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ImportController recebe as planilhas de importação (CSV ou XLSX).
type ImportController struct {
	importService services.ImportServiceInterface
	logger        *zap.Logger
}

func NewImportController(importService services.ImportServiceInterface, logger *zap.Logger) *ImportController {
	return &ImportController{importService: importService, logger: logger}
}

func (ctrl *ImportController) Import(c echo.Context) error {
	entity := c.Param("entidade")

	src, fileHeader, err := openUpload(c, "import_sheet")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	defer src.Close()

	ctx, cancel := utils.RequestContext(c, utils.ImportTimeout)
	defer cancel()

	result, err := ctrl.importService.Import(ctx, entity, src, fileHeader.Filename)
	if err != nil {
		ctrl.logger.Warn("Import: planilha recusada",
			zap.String("entidade", entity),
			zap.String("arquivo", fileHeader.Filename),
			zap.Error(err),
		)
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	ctrl.logger.Info("Import: planilha processada",
		zap.String("entidade", entity),
		zap.Int("sucessos", result.Sucessos),
		zap.Int("erros", len(result.Erros)),
	)
	return utils.SuccessResponse(c, result, "Importação concluída", http.StatusOK)
}
