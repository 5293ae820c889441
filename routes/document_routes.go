package routes

import (
	"returns-app/config"
	"returns-app/controllers"
	"returns-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDocumentRoutes(app *fiber.App, db *gorm.DB, auth *middleware.AuthMiddleware) {
	controller := controllers.NewDocumentController(db)

	api := app.Group(config.MAIN_ROUTES+"/documents", auth.Handler)
	api.Post("/", controller.Generate)
	api.Get("/", controller.GetDocuments)
	api.Get("/:documentNo", controller.GetDocument)
	api.Get("/:documentNo/excel", controller.ExportExcel)
}
