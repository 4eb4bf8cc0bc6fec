package middleware

import (
	"academy-manager/internal/authz"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/service"
	"academy-manager/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	sessionService service.SessionService
	logger         *zap.Logger
}

func NewAuthMiddleware(sessionSvc service.SessionService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessionService: sessionSvc,
		logger:         logger,
	}
}

// Auth exige o cookie de sessão válido e grava o usuário no contexto da requisição.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(service.SessionCookieName)
		if err != nil || cookie.Value == "" {
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}

		claims, err := m.sessionService.ValidateToken(cookie.Value)
		if err != nil {
			m.logger.Warn("AuthMiddleware: sessão inválida", zap.Error(err), zap.String("uri", c.Request().RequestURI))
			return utils.ErrorResponse(c, err, m.logger)
		}

		principal := claims.Principal()
		c.SetRequest(c.Request().WithContext(utils.WithPrincipal(c.Request().Context(), principal)))
		c.Set("principal", principal)

		return next(c)
	}
}

// AuthorizeAny libera a rota se o papel do usuário tiver ao menos uma das permissões.
func (m *AuthMiddleware) AuthorizeAny(permissions ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, err := utils.GetPrincipalFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}
			for _, p := range permissions {
				if authz.Can(principal.Role, p) {
					return next(c)
				}
			}
			m.logger.Warn("AuthMiddleware: acesso negado",
				zap.Uint64("userID", principal.ID),
				zap.String("role", principal.Role),
				zap.Strings("required", permissions),
			)
			return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}
	}
}
