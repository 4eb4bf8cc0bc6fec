package controllers

import (
	"fmt"
	"net/http"

	"academy-manager/internal/dto"
	"academy-manager/internal/services"
	"academy-manager/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type BookLoanController struct {
	bookLoanService services.BookLoanServiceInterface
	logger          *zap.Logger
}

func NewBookLoanController(bookLoanService services.BookLoanServiceInterface, logger *zap.Logger) *BookLoanController {
	return &BookLoanController{bookLoanService: bookLoanService, logger: logger}
}

func (c *BookLoanController) GetBookLoans(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	loans, total, err := c.bookLoanService.GetBookLoans(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, loans, "Empréstimos de livros obtidos com sucesso", http.StatusOK, total)
}

func (c *BookLoanController) FindBookLoan(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	loan, err := c.bookLoanService.FindBookLoan(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, loan, "Empréstimo encontrado", http.StatusOK)
}

func (c *BookLoanController) CreateBookLoan(ctx echo.Context) error {
	var payload dto.CreateBookLoanDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := c.bookLoanService.CreateBookLoan(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Warn("CreateBookLoan: empréstimo recusado",
			zap.Uint64("alunoID", payload.AlunoID),
			zap.String("codigoBarras", payload.CodigoBarras),
			zap.Error(err),
		)
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.CreatedDTO{ID: id}, "Empréstimo de livro registrado com sucesso", http.StatusCreated)
}

func (c *BookLoanController) ReturnBook(ctx echo.Context) error {
	var payload dto.ReturnBookDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.bookLoanService.ReturnBook(ctx.Request().Context(), payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Devolução registrada com sucesso", http.StatusOK)
}

func (c *BookLoanController) RenewBookLoan(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.bookLoanService.RenewBookLoan(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Empréstimo renovado com sucesso", http.StatusOK)
}

func (c *BookLoanController) SendOverdueAlert(ctx echo.Context) error {
	sent, err := c.bookLoanService.SendOverdueAlert(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]int{"atrasados": sent},
		fmt.Sprintf("Alerta enviado com %d empréstimo(s) em atraso", sent), http.StatusOK)
}
