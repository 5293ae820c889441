package routes

import (
	"returns-app/config"
	"returns-app/controllers"
	"returns-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupQCRoutes(app *fiber.App, db *gorm.DB, auth *middleware.AuthMiddleware) {
	controller := controllers.NewQCController(db)

	api := app.Group(config.MAIN_ROUTES+"/qc", auth.Handler)
	api.Post("/batch", controller.BatchSubmitQC)
	api.Put("/:recordNo", controller.SubmitQC)
	api.Post("/:recordNo/split", controller.Split)
}
