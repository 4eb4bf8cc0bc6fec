package controllers

import (
	"net/http"

	"academy-manager/internal/dto"
	"academy-manager/internal/services"
	"academy-manager/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DeviceController struct {
	deviceService services.DeviceServiceInterface
	logger        *zap.Logger
}

func NewDeviceController(deviceService services.DeviceServiceInterface, logger *zap.Logger) *DeviceController {
	return &DeviceController{deviceService: deviceService, logger: logger}
}

// GetDevices com ?disponiveis=true devolve só o que pode ser emprestado agora (tela de novo empréstimo).
func (c *DeviceController) GetDevices(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	if ctx.QueryParam("disponiveis") == "true" {
		devices, err := c.deviceService.GetAvailableDevices(reqCtx)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return utils.SuccessResponse(ctx, devices, "Devices disponíveis obtidos com sucesso", http.StatusOK, uint64(len(devices)))
	}

	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	devices, total, err := c.deviceService.GetDevices(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, devices, "Devices obtidos com sucesso", http.StatusOK, total)
}

func (c *DeviceController) FindDevice(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	device, err := c.deviceService.FindDevice(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, device, "Device encontrado", http.StatusOK)
}

func (c *DeviceController) CreateDevice(ctx echo.Context) error {
	var payload dto.CreateDeviceDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := c.deviceService.CreateDevice(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.CreatedDTO{ID: id}, "Device cadastrado com sucesso", http.StatusCreated)
}

func (c *DeviceController) UpdateDevice(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateDeviceDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	removed, err := c.deviceService.UpdateDevice(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if removed {
		return utils.SuccessResponse(ctx, map[string]bool{"removido": true}, "Device retirado da lista de empréstimos", http.StatusOK)
	}
	return utils.SuccessResponse(ctx, map[string]bool{"removido": false}, "Device atualizado com sucesso", http.StatusOK)
}

func (c *DeviceController) DeleteDevice(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.deviceService.DeleteDevice(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Device excluído com sucesso", http.StatusOK)
}

func (c *DeviceController) BulkDeleteDevices(ctx echo.Context) error {
	var payload dto.IDsDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	deleted, err := c.deviceService.BulkDeleteDevices(ctx.Request().Context(), payload.IDs)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.BulkDeleteResultDTO{Excluidos: deleted}, "Devices excluídos com sucesso", http.StatusOK)
}
