package utils

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// Prazos das rotas que processam arquivos inteiros numa só requisição.
const (
	ImportTimeout  = 2 * time.Minute
	RestoreTimeout = 5 * time.Minute
)

// RequestContext limita o contexto da requisição a um prazo. O cancelamento
// do cliente continua valendo.
func RequestContext(c echo.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), timeout)
}
