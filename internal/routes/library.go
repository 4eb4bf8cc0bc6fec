package routes

import (
	"academy-manager/internal/authz"
	"academy-manager/internal/controllers"
	"academy-manager/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runLibraryRouter(
	secureGroup *echo.Group,
	bookCtrl *controllers.BookController,
	bookLoanCtrl *controllers.BookLoanController,
	authMW *middleware.AuthMiddleware,
) {
	booksView := authMW.AuthorizeAny(authz.BooksView)
	booksManage := authMW.AuthorizeAny(authz.BooksManage)

	secureGroup.GET("/livros", bookCtrl.GetBooks, booksView)
	secureGroup.GET("/livros/:id", bookCtrl.FindBook, booksView)
	secureGroup.POST("/livros", bookCtrl.CreateBook, booksManage)
	secureGroup.PUT("/livros/:id", bookCtrl.UpdateBook, booksManage)
	secureGroup.DELETE("/livros/:id", bookCtrl.DeleteBook, booksManage)

	secureGroup.GET("/exemplares", bookCtrl.GetCopies, booksView)
	secureGroup.GET("/exemplares/:id", bookCtrl.FindCopy, booksView)
	secureGroup.POST("/exemplares", bookCtrl.CreateCopy, booksManage)
	secureGroup.PUT("/exemplares/:id", bookCtrl.UpdateCopy, booksManage)
	secureGroup.DELETE("/exemplares/:id", bookCtrl.DeleteCopy, booksManage)

	loansView := authMW.AuthorizeAny(authz.BookLoansView)
	loansManage := authMW.AuthorizeAny(authz.BookLoansManage)

	secureGroup.GET("/emprestimos-livros", bookLoanCtrl.GetBookLoans, loansView)
	secureGroup.GET("/emprestimos-livros/:id", bookLoanCtrl.FindBookLoan, loansView)
	secureGroup.POST("/emprestimos-livros", bookLoanCtrl.CreateBookLoan, loansManage)
	secureGroup.POST("/emprestimos-livros/:id/renovar", bookLoanCtrl.RenewBookLoan, loansManage)
	secureGroup.POST("/devolucao-livros", bookLoanCtrl.ReturnBook, loansManage)
	secureGroup.POST("/enviar-alerta-atraso", bookLoanCtrl.SendOverdueAlert, loansView)
}
