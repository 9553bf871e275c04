package routes

import (
	"labstock/internal/controllers"
	"labstock/pkg/constants"
	"labstock/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runItemRouter(secureGroup *echo.Group, itemCtrl *controllers.ItemController, authMW *middleware.AuthMiddleware) {
	canManage := authMW.RequireRoles(constants.RoleAdmin, constants.RoleCustodian)

	secureGroup.GET("/items", itemCtrl.GetItems)
	secureGroup.GET("/items/:id", itemCtrl.FindItem)
	secureGroup.POST("/items", itemCtrl.CreateItem, canManage)
	secureGroup.PUT("/items/:id", itemCtrl.UpdateItem, canManage)
	secureGroup.DELETE("/items/:id", itemCtrl.DeleteItem, canManage)
}
