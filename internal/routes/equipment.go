package routes

import (
	"labstock/internal/controllers"
	"labstock/pkg/constants"
	"labstock/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runEquipmentRouter(secureGroup *echo.Group, equipmentCtrl *controllers.EquipmentController, authMW *middleware.AuthMiddleware) {
	canManage := authMW.RequireRoles(constants.RoleAdmin, constants.RoleCustodian)

	secureGroup.GET("/equipment", equipmentCtrl.GetEquipments)
	secureGroup.GET("/equipment/:id", equipmentCtrl.FindEquipment)
	secureGroup.POST("/equipment", equipmentCtrl.CreateEquipment, canManage)
	secureGroup.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment, canManage)
	secureGroup.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment, canManage)
}
