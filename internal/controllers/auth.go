package controllers

import (
	"net/http"
	"time"

	"academy-manager/internal/dto"
	"academy-manager/internal/services"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/service"
	"academy-manager/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	authService  services.AuthServiceInterface
	sessionSvc   service.SessionService
	cookieSecure bool
	logger       *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	sessionSvc service.SessionService,
	cookieSecure bool,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService:  authService,
		sessionSvc:   sessionSvc,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Warn("Login: erro ao ler dados", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Formato de dados inválido", nil, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Usuário e senha são obrigatórios", nil, nil))
	}

	principal, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Warn("Login: falha de autenticação", zap.String("username", payload.Username), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	token, err := ctrl.sessionSvc.GenerateToken(*principal)
	if err != nil {
		ctrl.logger.Error("Login: falha ao gerar sessão", zap.Uint64("userID", principal.ID), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}
	c.SetCookie(ctrl.sessionCookie(token, ctrl.sessionSvc.GetTTL()))

	return utils.SuccessResponse(c, dto.MeDTO{Authenticated: true, User: principal}, "Login realizado com sucesso", http.StatusOK)
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	c.SetCookie(ctrl.sessionCookie("", -1))
	return utils.SuccessResponse(c, nil, "Logout realizado com sucesso", http.StatusOK)
}

// Me fica fora do grupo autenticado: sem sessão válida responde authenticated=false.
func (ctrl *AuthController) Me(c echo.Context) error {
	ctx := c.Request().Context()
	if cookie, err := c.Cookie(service.SessionCookieName); err == nil && cookie.Value != "" {
		if claims, err := ctrl.sessionSvc.ValidateToken(cookie.Value); err == nil {
			ctx = utils.WithPrincipal(ctx, claims.Principal())
		}
	}
	return utils.SuccessResponse(c, ctrl.authService.Me(ctx), "", http.StatusOK)
}

func (ctrl *AuthController) ChangePassword(c echo.Context) error {
	var payload dto.ChangePasswordDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Formato de dados inválido", nil, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	if err := ctrl.authService.ChangePassword(c.Request().Context(), payload); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "Senha alterada com sucesso", http.StatusOK)
}

func (ctrl *AuthController) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     service.SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   ctrl.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		cookie.Expires = time.Unix(0, 0)
		cookie.MaxAge = -1
		return cookie
	}
	cookie.Expires = time.Now().Add(ttl)
	cookie.MaxAge = int(ttl.Seconds())
	return cookie
}
