package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"academy-manager/pkg/database"
	apperrors "academy-manager/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HTTPResponse{Status: true, Message: message}
	withPagination, _ := strconv.ParseBool(ctx.QueryParam("withPagination"))
	if withPagination && len(total) > 0 {
		pagination := ParseFilterFromQuery(ctx.Request().URL.Query()).PaginationFor(total[0])
		response.Body = map[string]interface{}{"list": body, "pagination": pagination}
	} else {
		response.Body = body
	}
	return ctx.JSON(code, response)
}

// ErrorResponse é o único ponto que traduz erros para HTTP.
// Texto interno de erro nunca vai para o cliente, só para o log.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}
		return writeError(c, httpErr.Code, httpErr.Message, httpErr.Details)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Campo '%s' falhou na validação '%s'", e.Field(), e.Tag()))
		}
		return writeError(c, http.StatusBadRequest, "Erro de validação: "+strings.Join(msgs, "; "), nil)
	}

	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		return writeError(c, http.StatusBadRequest, inputErr.Message, nil)
	}

	var ruleErr *apperrors.BusinessRuleError
	if errors.As(err, &ruleErr) {
		return writeError(c, http.StatusBadRequest, ruleErr.Message, nil)
	}

	var conflictErr *apperrors.ConflictError
	if errors.As(err, &conflictErr) {
		return writeError(c, http.StatusBadRequest, conflictErr.Message, conflictErr.Details)
	}

	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		return writeError(c, http.StatusNotFound, notFoundErr.Message, nil)
	}

	switch {
	case errors.Is(err, database.ErrIntegrityViolation):
		logger.Warn("Violação de integridade não tratada", zap.Error(err))
		return writeError(c, http.StatusBadRequest, "Operação viola uma restrição do banco de dados", nil)
	case errors.Is(err, apperrors.ErrNotFound):
		return writeError(c, http.StatusNotFound, apperrors.ErrNotFound.Error(), nil)
	case errors.Is(err, apperrors.ErrConflict):
		return writeError(c, http.StatusBadRequest, apperrors.ErrConflict.Error(), nil)
	case errors.Is(err, apperrors.ErrBadRequest):
		return writeError(c, http.StatusBadRequest, apperrors.ErrBadRequest.Error(), nil)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return writeError(c, http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error(), nil)
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenNotYetValid),
		errors.Is(err, apperrors.ErrInvalidSigningMethod):
		return writeError(c, http.StatusUnauthorized, apperrors.ErrUnauthorized.Error(), nil)
	case errors.Is(err, apperrors.ErrForbidden):
		return writeError(c, http.StatusForbidden, apperrors.ErrForbidden.Error(), nil)
	case errors.Is(err, apperrors.ErrTooManyAttempts):
		return writeError(c, http.StatusTooManyRequests, apperrors.ErrTooManyAttempts.Error(), nil)
	case errors.Is(err, apperrors.ErrDatabaseUnavailable):
		logger.Error("Banco de dados indisponível", zap.Error(err))
		return writeError(c, http.StatusInternalServerError, "Erro de conexão com o banco de dados. Tente novamente em instantes.", nil)
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return writeError(c, http.StatusInternalServerError, "Erro interno do servidor", nil)
}

func writeError(c echo.Context, code int, message string, details interface{}) error {
	response := map[string]interface{}{
		"status":  false,
		"message": message,
	}
	if details != nil {
		response["body"] = details
	}
	return c.JSON(code, response)
}

// ParseIDParam lê um id numérico da rota.
func ParseIDParam(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "ID inválido na URL", err, map[string]interface{}{"param": c.Param(name)})
	}
	return id, nil
}
