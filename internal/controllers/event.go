package controllers

import (
	"net/http"

	"academy-manager/internal/dto"
	"academy-manager/internal/services"
	"academy-manager/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type EventController struct {
	eventService services.EventServiceInterface
	logger       *zap.Logger
}

func NewEventController(eventService services.EventServiceInterface, logger *zap.Logger) *EventController {
	return &EventController{eventService: eventService, logger: logger}
}

// GetEvents aceita ?start=&end= com o intervalo visível do calendário.
func (c *EventController) GetEvents(ctx echo.Context) error {
	rng := dto.EventRangeDTO{
		Start: ctx.QueryParam("start"),
		End:   ctx.QueryParam("end"),
	}
	events, err := c.eventService.GetEvents(ctx.Request().Context(), rng)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, events, "Eventos obtidos com sucesso", http.StatusOK)
}

func (c *EventController) GetUpcoming(ctx echo.Context) error {
	events, err := c.eventService.GetUpcoming(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, events, "Próximos eventos obtidos com sucesso", http.StatusOK)
}

func (c *EventController) FindEvent(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	event, err := c.eventService.FindEvent(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, event, "Evento encontrado", http.StatusOK)
}

func (c *EventController) CreateEvent(ctx echo.Context) error {
	var payload dto.CreateEventDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := c.eventService.CreateEvent(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.CreatedDTO{ID: id}, "Evento criado com sucesso", http.StatusCreated)
}

func (c *EventController) UpdateEvent(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateEventDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.eventService.UpdateEvent(ctx.Request().Context(), id, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Evento atualizado com sucesso", http.StatusOK)
}

func (c *EventController) DeleteEvent(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.eventService.DeleteEvent(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Evento excluído com sucesso", http.StatusOK)
}
