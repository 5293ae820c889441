package routes

import (
	"returns-app/config"
	"returns-app/controllers"
	"returns-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupClosureRoutes(app *fiber.App, db *gorm.DB, auth *middleware.AuthMiddleware) {
	controller := controllers.NewClosureController(db)

	api := app.Group(config.MAIN_ROUTES+"/closures", auth.Handler)
	api.Post("/close", controller.Close)
	api.Post("/:recordNo/field-settlement", controller.FieldSettle)
}
