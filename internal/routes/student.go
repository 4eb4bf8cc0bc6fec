package routes

import (
	"academy-manager/internal/authz"
	"academy-manager/internal/controllers"
	"academy-manager/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runStudentRouter(secureGroup *echo.Group, studentCtrl *controllers.StudentController, authMW *middleware.AuthMiddleware) {
	view := authMW.AuthorizeAny(authz.StudentsView)
	manage := authMW.AuthorizeAny(authz.StudentsManage)

	secureGroup.GET("/alunos", studentCtrl.GetStudents, view)
	secureGroup.GET("/alunos/:id", studentCtrl.FindStudent, view)
	secureGroup.POST("/alunos", studentCtrl.CreateStudent, manage)
	secureGroup.PUT("/alunos/:id", studentCtrl.UpdateStudent, manage)
	secureGroup.DELETE("/alunos/:id", studentCtrl.DeleteStudent, manage)
	secureGroup.POST("/alunos/bulk-delete", studentCtrl.BulkDeleteStudents, manage)
	secureGroup.POST("/alunos/:id/foto", studentCtrl.UploadPhoto, manage)
}
