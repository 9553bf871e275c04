package routes

import (
	"labstock/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runAuthRouter(api *echo.Group, secureGroup *echo.Group, authCtrl *controllers.AuthController) {
	api.POST("/register", authCtrl.Register)
	api.POST("/login", authCtrl.Login)
	api.POST("/refresh-token", authCtrl.RefreshToken)

	secureGroup.GET("/logout", authCtrl.Logout)
	secureGroup.GET("/user", authCtrl.GetCurrentUser)
}
