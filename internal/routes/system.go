package routes

import (
	"academy-manager/internal/authz"
	"academy-manager/internal/controllers"
	"academy-manager/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runSystemRouter(secureGroup *echo.Group, backupCtrl *controllers.BackupController, authMW *middleware.AuthMiddleware) {
	admin := authMW.AuthorizeAny(authz.SystemBackup)

	secureGroup.GET("/system/backup", backupCtrl.Download, admin)
	secureGroup.POST("/system/restore", backupCtrl.Restore, admin)

	backups := secureGroup.Group("/admin/backups", admin)
	backups.GET("", backupCtrl.ListBackups)
	backups.POST("", backupCtrl.CreateBackup)
	backups.POST("/delete-multiple", backupCtrl.DeleteBackups)
	backups.GET("/:name", backupCtrl.DownloadBackup)
	backups.DELETE("/:name", backupCtrl.DeleteBackup)
}
