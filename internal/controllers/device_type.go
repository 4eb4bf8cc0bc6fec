package controllers

import (
	"net/http"

	"academy-manager/internal/dto"
	"academy-manager/internal/services"
	"academy-manager/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DeviceTypeController struct {
	typeService services.DeviceTypeServiceInterface
	logger      *zap.Logger
}

func NewDeviceTypeController(typeService services.DeviceTypeServiceInterface, logger *zap.Logger) *DeviceTypeController {
	return &DeviceTypeController{typeService: typeService, logger: logger}
}

func (c *DeviceTypeController) GetDeviceTypes(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	list, total, err := c.typeService.GetDeviceTypes(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Tipos de device obtidos com sucesso", http.StatusOK, total)
}

func (c *DeviceTypeController) FindDeviceType(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	dt, err := c.typeService.FindDeviceType(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dt, "Tipo de device encontrado", http.StatusOK)
}

func (c *DeviceTypeController) CreateDeviceType(ctx echo.Context) error {
	var payload dto.CreateDeviceTypeDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := c.typeService.CreateDeviceType(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.CreatedDTO{ID: id}, "Tipo de device cadastrado com sucesso", http.StatusCreated)
}

func (c *DeviceTypeController) UpdateDeviceType(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateDeviceTypeDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.typeService.UpdateDeviceType(ctx.Request().Context(), id, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Tipo de device atualizado com sucesso", http.StatusOK)
}

func (c *DeviceTypeController) DeleteDeviceType(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.typeService.DeleteDeviceType(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Tipo de device excluído com sucesso", http.StatusOK)
}
