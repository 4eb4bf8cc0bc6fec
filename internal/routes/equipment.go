package routes

import (
	"academy-manager/internal/authz"
	"academy-manager/internal/controllers"
	"academy-manager/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runEquipmentRouter(secureGroup *echo.Group, equipmentCtrl *controllers.EquipmentController, authMW *middleware.AuthMiddleware) {
	equipment := secureGroup.Group("/equipment-control")
	manage := authMW.AuthorizeAny(authz.EquipmentManage)

	equipment.GET("", equipmentCtrl.GetEquipment, authMW.AuthorizeAny(authz.EquipmentView))
	equipment.GET("/:id", equipmentCtrl.FindEquipment, authMW.AuthorizeAny(authz.EquipmentView))
	equipment.POST("", equipmentCtrl.CreateEquipment, manage)
	equipment.PUT("/:id", equipmentCtrl.UpdateEquipment, manage)
	equipment.DELETE("/:id", equipmentCtrl.DeleteEquipment, manage)
	equipment.POST("/delete-multiple", equipmentCtrl.BulkDeleteEquipment, manage)
}
