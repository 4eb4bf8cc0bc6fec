package controllers

import (
	"net/http"

	"academy-manager/internal/dto"
	"academy-manager/internal/services"
	"academy-manager/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type LoanController struct {
	loanService services.LoanServiceInterface
	logger      *zap.Logger
}

func NewLoanController(loanService services.LoanServiceInterface, logger *zap.Logger) *LoanController {
	return &LoanController{loanService: loanService, logger: logger}
}

func (c *LoanController) GetLoans(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	loans, total, err := c.loanService.GetLoans(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, loans, "Empréstimos obtidos com sucesso", http.StatusOK, total)
}

func (c *LoanController) FindLoan(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	loan, err := c.loanService.FindLoan(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, loan, "Empréstimo encontrado", http.StatusOK)
}

func (c *LoanController) CreateLoan(ctx echo.Context) error {
	var payload dto.CreateLoanDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := c.loanService.CreateLoan(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Warn("CreateLoan: empréstimo recusado",
			zap.Uint64("alunoID", payload.AlunoID),
			zap.Uint64("deviceID", payload.DeviceID),
			zap.Error(err),
		)
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.CreatedDTO{ID: id}, "Empréstimo registrado com sucesso", http.StatusCreated)
}

func (c *LoanController) ReturnLoan(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.loanService.ReturnLoan(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Devolução registrada com sucesso", http.StatusOK)
}

func (c *LoanController) UpdateSignature(ctx echo.Context) error {
	var payload dto.LoanSignatureDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.loanService.UpdateSignature(ctx.Request().Context(), payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Assinatura registrada com sucesso", http.StatusOK)
}

func (c *LoanController) DeleteLoan(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.loanService.DeleteLoan(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Empréstimo excluído com sucesso", http.StatusOK)
}

func (c *LoanController) BulkDeleteLoans(ctx echo.Context) error {
	var payload dto.IDsDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	deleted, err := c.loanService.BulkDeleteLoans(ctx.Request().Context(), payload.IDs)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.BulkDeleteResultDTO{Excluidos: deleted}, "Empréstimos excluídos com sucesso", http.StatusOK)
}
