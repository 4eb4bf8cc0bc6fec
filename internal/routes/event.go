package routes

import (
	"academy-manager/internal/authz"
	"academy-manager/internal/controllers"
	"academy-manager/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runEventRouter(secureGroup *echo.Group, eventCtrl *controllers.EventController, authMW *middleware.AuthMiddleware) {
	events := secureGroup.Group("/eventos")
	view := authMW.AuthorizeAny(authz.EventsView)
	manage := authMW.AuthorizeAny(authz.EventsManage)

	events.GET("", eventCtrl.GetEvents, view)
	events.GET("/dashboard", eventCtrl.GetUpcoming, view)
	events.GET("/:id", eventCtrl.FindEvent, view)
	events.POST("", eventCtrl.CreateEvent, manage)
	events.PUT("/:id", eventCtrl.UpdateEvent, manage)
	events.DELETE("/:id", eventCtrl.DeleteEvent, manage)
}
