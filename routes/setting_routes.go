package routes

import (
	"returns-app/config"
	"returns-app/controllers"
	"returns-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSettingRoutes(app *fiber.App, db *gorm.DB, auth *middleware.AuthMiddleware) {
	controller := controllers.NewSettingController(db)

	api := app.Group(config.MAIN_ROUTES+"/settings", auth.Handler, auth.RequireRole("admin"))
	api.Get("/", controller.GetSettings)
	api.Put("/", controller.PutSettings)
}
