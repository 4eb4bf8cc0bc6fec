package controllers

import (
	"net/http"

	"academy-manager/internal/dto"
	"academy-manager/internal/services"
	"academy-manager/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// BookController atende livros e exemplares da biblioteca.
type BookController struct {
	bookService services.BookServiceInterface
	copyService services.CopyServiceInterface
	logger      *zap.Logger
}

func NewBookController(
	bookService services.BookServiceInterface,
	copyService services.CopyServiceInterface,
	logger *zap.Logger,
) *BookController {
	return &BookController{bookService: bookService, copyService: copyService, logger: logger}
}

func (c *BookController) GetBooks(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	books, total, err := c.bookService.GetBooks(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, books, "Livros obtidos com sucesso", http.StatusOK, total)
}

func (c *BookController) FindBook(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	book, err := c.bookService.FindBook(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, book, "Livro encontrado", http.StatusOK)
}

func (c *BookController) CreateBook(ctx echo.Context) error {
	var payload dto.CreateBookDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := c.bookService.CreateBook(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.CreatedDTO{ID: id}, "Livro cadastrado com sucesso", http.StatusCreated)
}

func (c *BookController) UpdateBook(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateBookDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.bookService.UpdateBook(ctx.Request().Context(), id, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Livro atualizado com sucesso", http.StatusOK)
}

func (c *BookController) DeleteBook(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.bookService.DeleteBook(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Livro excluído com sucesso", http.StatusOK)
}

func (c *BookController) GetCopies(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	copies, total, err := c.copyService.GetCopies(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, copies, "Exemplares obtidos com sucesso", http.StatusOK, total)
}

func (c *BookController) FindCopy(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	cp, err := c.copyService.FindCopy(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, cp, "Exemplar encontrado", http.StatusOK)
}

func (c *BookController) CreateCopy(ctx echo.Context) error {
	var payload dto.CreateCopyDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := c.copyService.CreateCopy(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.CreatedDTO{ID: id}, "Exemplar cadastrado com sucesso", http.StatusCreated)
}

func (c *BookController) UpdateCopy(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateCopyDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.copyService.UpdateCopy(ctx.Request().Context(), id, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Exemplar atualizado com sucesso", http.StatusOK)
}

func (c *BookController) DeleteCopy(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.copyService.DeleteCopy(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Exemplar excluído com sucesso", http.StatusOK)
}
