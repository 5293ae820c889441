package routes

import (
	"returns-app/config"
	"returns-app/controllers"
	"returns-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupReturnRoutes(app *fiber.App, db *gorm.DB, auth *middleware.AuthMiddleware) {
	controller := controllers.NewReturnController(db)

	api := app.Group(config.MAIN_ROUTES+"/returns", auth.Handler)
	api.Post("/", controller.CreateReturn)
	api.Get("/", controller.GetReturns)
	api.Get("/grouped", controller.GetReturnsGrouped)
	api.Post("/batch-status", controller.BatchUpdateStatus)
	api.Get("/:recordNo", controller.GetReturn)
	api.Put("/:recordNo", controller.UpdateReturn)
	api.Delete("/:recordNo", controller.DeleteReturn)
	api.Put("/:recordNo/status", controller.UpdateStatus)
	api.Get("/:recordNo/history", controller.GetHistory)
}
