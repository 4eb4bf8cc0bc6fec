package routes

import (
	"academy-manager/internal/authz"
	"academy-manager/internal/controllers"
	"academy-manager/pkg/middleware"

	"github.com/labstack/echo/v4"
)

// runReportRouter: painel e downloads de planilhas.
func runReportRouter(
	secureGroup *echo.Group,
	dashboardCtrl *controllers.DashboardController,
	exportCtrl *controllers.ExportController,
	authMW *middleware.AuthMiddleware,
) {
	secureGroup.GET("/dashboard/stats", dashboardCtrl.GetDashboardStats, authMW.AuthorizeAny(authz.DashboardView))

	export := authMW.AuthorizeAny(authz.ExportBasic)
	secureGroup.GET("/export/:entity", exportCtrl.Export, export)
	secureGroup.GET("/download/template/:tipo", exportCtrl.Template, export)
}
