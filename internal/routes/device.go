package routes

import (
	"academy-manager/internal/authz"
	"academy-manager/internal/controllers"
	"academy-manager/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runDeviceRouter(secureGroup *echo.Group, deviceCtrl *controllers.DeviceController, authMW *middleware.AuthMiddleware) {
	view := authMW.AuthorizeAny(authz.DevicesView)
	manage := authMW.AuthorizeAny(authz.DevicesManage)

	secureGroup.GET("/devices", deviceCtrl.GetDevices, view)
	secureGroup.GET("/devices/:id", deviceCtrl.FindDevice, view)
	secureGroup.POST("/devices", deviceCtrl.CreateDevice, manage)
	secureGroup.PUT("/devices/:id", deviceCtrl.UpdateDevice, manage)
	secureGroup.DELETE("/devices/:id", deviceCtrl.DeleteDevice, manage)
	secureGroup.POST("/devices/delete-multiple", deviceCtrl.BulkDeleteDevices, authMW.AuthorizeAny(authz.DevicesBulkDelete))
}
