package routes

import (
	"returns-app/config"
	"returns-app/controllers"
	"returns-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDashboardRoutes(app *fiber.App, db *gorm.DB, auth *middleware.AuthMiddleware) {
	controller := controllers.NewDashboardController(db)

	api := app.Group(config.MAIN_ROUTES+"/dashboard", auth.Handler)
	api.Get("/summary", controller.Summary)
}
