package controllers

import (
	"net/http"

	"academy-manager/internal/dto"
	"academy-manager/internal/services"
	"academy-manager/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type InventoryController struct {
	inventoryService services.InventoryServiceInterface
	logger           *zap.Logger
}

func NewInventoryController(inventoryService services.InventoryServiceInterface, logger *zap.Logger) *InventoryController {
	return &InventoryController{inventoryService: inventoryService, logger: logger}
}

func (c *InventoryController) GetItems(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	items, total, err := c.inventoryService.GetItems(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, items, "Itens do inventário obtidos com sucesso", http.StatusOK, total)
}

func (c *InventoryController) FindItem(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	item, err := c.inventoryService.FindItem(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, item, "Item encontrado", http.StatusOK)
}

func (c *InventoryController) CreateItem(ctx echo.Context) error {
	var payload dto.CreateInventoryDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := c.inventoryService.CreateItem(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.CreatedDTO{ID: id}, "Item cadastrado com sucesso", http.StatusCreated)
}

func (c *InventoryController) UpdateItem(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateInventoryDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.inventoryService.UpdateItem(ctx.Request().Context(), id, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Item atualizado com sucesso", http.StatusOK)
}

func (c *InventoryController) DeleteItem(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.inventoryService.DeleteItem(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Item excluído com sucesso", http.StatusOK)
}

func (c *InventoryController) BulkDeleteItems(ctx echo.Context) error {
	var payload dto.IDsDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	deleted, err := c.inventoryService.BulkDeleteItems(ctx.Request().Context(), payload.IDs)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.BulkDeleteResultDTO{Excluidos: deleted}, "Itens excluídos com sucesso", http.StatusOK)
}
