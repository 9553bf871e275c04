package routes

import (
	"labstock/internal/controllers"
	"labstock/pkg/constants"
	"labstock/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runLaboratoryRouter(secureGroup *echo.Group, laboratoryCtrl *controllers.LaboratoryController, authMW *middleware.AuthMiddleware) {
	canManage := authMW.RequireRoles(constants.RoleAdmin, constants.RoleCustodian)

	secureGroup.GET("/laboratories", laboratoryCtrl.GetLaboratories)
	secureGroup.GET("/laboratories/:id", laboratoryCtrl.FindLaboratory)
	secureGroup.POST("/laboratories", laboratoryCtrl.CreateLaboratory, canManage)
	secureGroup.PUT("/laboratories/:id", laboratoryCtrl.UpdateLaboratory, canManage)
	secureGroup.POST("/laboratories/:id/gallery", laboratoryCtrl.UploadGallery, canManage)
	secureGroup.DELETE("/laboratories/:id", laboratoryCtrl.DeleteLaboratory, canManage)
}
