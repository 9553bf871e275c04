package routes

import (
	"labstock/internal/controllers"
	"labstock/pkg/constants"
	"labstock/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runCategoryRouter(secureGroup *echo.Group, categoryCtrl *controllers.CategoryController, authMW *middleware.AuthMiddleware) {
	canManage := authMW.RequireRoles(constants.RoleAdmin, constants.RoleCustodian)

	secureGroup.GET("/categories", categoryCtrl.GetCategories)
	secureGroup.GET("/categories/:id", categoryCtrl.FindCategory)
	secureGroup.POST("/categories", categoryCtrl.CreateCategory, canManage)
	secureGroup.PUT("/categories/:id", categoryCtrl.UpdateCategory, canManage)
	secureGroup.DELETE("/categories/:id", categoryCtrl.DeleteCategory, canManage)
}
