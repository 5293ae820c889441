package main

import (
	"log"

	"returns-app/config"
	"returns-app/controllers/idgen"
	"returns-app/database"
	"returns-app/middleware"
	"returns-app/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadConfig()

	app := fiber.New()

	database.EnsureDatabaseExists(config.DBName)

	db, err := database.Open()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	config.SetupCORS(app)

	auth := middleware.NewAuthMiddleware(db)

	routes.SetupAuthRoutes(app, db, auth)
	routes.SetupDashboardRoutes(app, db, auth)
	routes.SetupReturnRoutes(app, db, auth)
	routes.SetupCollectionRoutes(app, db, auth)
	routes.SetupQCRoutes(app, db, auth)
	routes.SetupDocumentRoutes(app, db, auth)
	routes.SetupClosureRoutes(app, db, auth)
	routes.SetupNCRRoutes(app, db, auth)
	routes.SetupSettingRoutes(app, db, auth)

	port := config.APP_PORT
	logrus.WithField("port", port).Info("Server started")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
