package routes

import (
	"returns-app/config"
	"returns-app/controllers"
	"returns-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCollectionRoutes(app *fiber.App, db *gorm.DB, auth *middleware.AuthMiddleware) {
	controller := controllers.NewCollectionController(db)

	api := app.Group(config.MAIN_ROUTES+"/collections", auth.Handler)
	api.Post("/accept", controller.AcceptJob)
	api.Post("/branch-receive", controller.BranchReceive)
	api.Post("/consolidate", controller.Consolidate)
	api.Post("/dispatch", controller.Dispatch)
	api.Post("/hub-receive", controller.HubReceive)
	api.Put("/:recordNo/schedule", controller.Schedule)
}
