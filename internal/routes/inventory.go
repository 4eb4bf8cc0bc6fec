package routes

import (
	"academy-manager/internal/authz"
	"academy-manager/internal/controllers"
	"academy-manager/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runInventoryRouter(secureGroup *echo.Group, inventoryCtrl *controllers.InventoryController, authMW *middleware.AuthMiddleware) {
	inventory := secureGroup.Group("/inventory")
	manage := authMW.AuthorizeAny(authz.InventoryManage)

	inventory.GET("", inventoryCtrl.GetItems, authMW.AuthorizeAny(authz.InventoryView))
	inventory.GET("/:id", inventoryCtrl.FindItem, authMW.AuthorizeAny(authz.InventoryView))
	inventory.POST("", inventoryCtrl.CreateItem, manage)
	inventory.PUT("/:id", inventoryCtrl.UpdateItem, manage)
	inventory.DELETE("/:id", inventoryCtrl.DeleteItem, manage)
	inventory.POST("/delete-multiple", inventoryCtrl.BulkDeleteItems, manage)
}
