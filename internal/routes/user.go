package routes

import (
	"academy-manager/internal/authz"
	"academy-manager/internal/controllers"
	"academy-manager/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runUserRouter(secureGroup *echo.Group, userCtrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	users := secureGroup.Group("/admin/users", authMW.AuthorizeAny(authz.UsersManage))

	users.GET("", userCtrl.GetUsers)
	users.GET("/:id", userCtrl.FindUser)
	users.POST("", userCtrl.CreateUser)
	users.PUT("/:id", userCtrl.UpdateUser)
	users.DELETE("/:id", userCtrl.DeleteUser)
	users.POST("/:id/foto", userCtrl.UploadPhoto)
	users.POST("/:id/reset-senha", userCtrl.ResetPassword)
}
