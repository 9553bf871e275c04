package routes

import (
	"labstock/internal/controllers"
	"labstock/pkg/constants"
	"labstock/pkg/middleware"

	"github.com/labstack/echo/v4"
)

// Управление учётными записями доступно только администратору.
func runUserRouter(secureGroup *echo.Group, userCtrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRoles(constants.RoleAdmin)

	secureGroup.GET("/users", userCtrl.GetUsers, adminOnly)
	secureGroup.GET("/users/:id", userCtrl.FindUser, adminOnly)
	secureGroup.POST("/users", userCtrl.CreateUser, adminOnly)
	secureGroup.PUT("/users/:id", userCtrl.UpdateUser, adminOnly)
	secureGroup.POST("/users/:id/avatar", userCtrl.UploadAvatar, adminOnly)
	secureGroup.DELETE("/users/:id", userCtrl.DeleteUser, adminOnly)
}
