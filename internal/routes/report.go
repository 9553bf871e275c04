package routes

import (
	"labstock/internal/controllers"
	"labstock/pkg/constants"
	"labstock/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runReportRouter(secureGroup *echo.Group, reportCtrl *controllers.ReportController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/reports/inventory", reportCtrl.GetInventoryReport, authMW.RequireRoles(constants.RoleAdmin))
}
