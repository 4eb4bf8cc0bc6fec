package routes

import (
	"academy-manager/internal/authz"
	"academy-manager/internal/controllers"
	"academy-manager/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runLoanRouter(secureGroup *echo.Group, loanCtrl *controllers.LoanController, authMW *middleware.AuthMiddleware) {
	view := authMW.AuthorizeAny(authz.LoansView)
	manage := authMW.AuthorizeAny(authz.LoansManage)

	secureGroup.GET("/emprestimos", loanCtrl.GetLoans, view)
	secureGroup.GET("/emprestimos/:id", loanCtrl.FindLoan, view)
	secureGroup.POST("/emprestimos", loanCtrl.CreateLoan, manage)
	secureGroup.POST("/emprestimos/:id/devolver", loanCtrl.ReturnLoan, manage)
	secureGroup.POST("/emprestimos/assinatura", loanCtrl.UpdateSignature, manage)
	secureGroup.DELETE("/emprestimos/:id", loanCtrl.DeleteLoan, manage)
	secureGroup.POST("/emprestimos/delete-multiple", loanCtrl.BulkDeleteLoans, authMW.AuthorizeAny(authz.LoansBulkDelete))
}
