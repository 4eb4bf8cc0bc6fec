package routes

import (
	"academy-manager/internal/authz"
	"academy-manager/internal/controllers"
	"academy-manager/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runDeviceTypeRouter(secureGroup *echo.Group, typeCtrl *controllers.DeviceTypeController, authMW *middleware.AuthMiddleware) {
	view := authMW.AuthorizeAny(authz.DeviceTypesView)
	manage := authMW.AuthorizeAny(authz.DeviceTypesManage)

	secureGroup.GET("/tipos-devices", typeCtrl.GetDeviceTypes, view)
	secureGroup.GET("/tipos-devices/:id", typeCtrl.FindDeviceType, view)
	secureGroup.POST("/tipos-devices", typeCtrl.CreateDeviceType, manage)
	secureGroup.PUT("/tipos-devices/:id", typeCtrl.UpdateDeviceType, manage)
	secureGroup.DELETE("/tipos-devices/:id", typeCtrl.DeleteDeviceType, manage)
}
