package routes

import (
	"returns-app/config"
	"returns-app/controllers"
	"returns-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupNCRRoutes(app *fiber.App, db *gorm.DB, auth *middleware.AuthMiddleware) {
	controller := controllers.NewNCRController(db)

	api := app.Group(config.MAIN_ROUTES+"/ncr", auth.Handler)
	api.Get("/", controller.GetReports)
	api.Get("/:ncrNo", controller.GetReport)
	api.Get("/:ncrNo/excel", controller.ExportExcel)
	api.Put("/:ncrNo", controller.UpdateReport)
	api.Post("/:ncrNo/close", controller.CloseReport)
	api.Post("/:ncrNo/cancel", auth.RequireRole("admin", "qa"), controller.CancelReport)
	api.Post("/:ncrNo/send-mail", controller.SendMail)
}
