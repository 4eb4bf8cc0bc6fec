package routes

import (
	"academy-manager/internal/authz"
	"academy-manager/internal/controllers"
	"academy-manager/pkg/middleware"

	"github.com/labstack/echo/v4"
)

// runAuthRouter: login, logout e /me ficam fora do grupo autenticado.
func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	api.POST("/login", authCtrl.Login)
	api.POST("/logout", authCtrl.Logout)
	api.GET("/me", authCtrl.Me)

	api.POST("/alterar-senha", authCtrl.ChangePassword, authMW.Auth, authMW.AuthorizeAny(authz.PasswordUpdate))
}
