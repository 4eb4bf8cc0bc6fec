package routes

import (
	"academy-manager/internal/controllers"

	"github.com/labstack/echo/v4"
)

// A permissão depende da entidade e é verificada pelo serviço de importação.
func runUploadRouter(secureGroup *echo.Group, importCtrl *controllers.ImportController) {
	secureGroup.POST("/importar/:entidade", importCtrl.Import)
}
