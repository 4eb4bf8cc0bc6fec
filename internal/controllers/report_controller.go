package controllers

import (
	"io"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"academy-manager/internal/services"
	"academy-manager/pkg/utils"
)

// ExportController entrega as planilhas de exportação e os modelos de importação.
type ExportController struct {
	exportService services.ExportServiceInterface
	logger        *zap.Logger
}

func NewExportController(exportService services.ExportServiceInterface, logger *zap.Logger) *ExportController {
	return &ExportController{exportService: exportService, logger: logger}
}

func (c *ExportController) Export(ctx echo.Context) error {
	entity := ctx.Param("entity")
	c.logger.Debug("Exportação solicitada", zap.String("entity", entity))

	err := sendAttachment(ctx, contentTypeXLSX, func(w io.Writer) (string, error) {
		return c.exportService.Export(ctx.Request().Context(), entity, w)
	})
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return nil
}

func (c *ExportController) Template(ctx echo.Context) error {
	kind := ctx.Param("tipo")

	err := sendAttachment(ctx, contentTypeXLSX, func(w io.Writer) (string, error) {
		return c.exportService.Template(ctx.Request().Context(), kind, w)
	})
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return nil
}
