package main

import (
	"edustream/config"
	controllers "edustream/controllers/course"
	"edustream/database"
	authRoutes "edustream/routers/authRoutes"
	courseRoutes "edustream/routers/courseRoutes"
	"edustream/services/deletion"
	"edustream/storage"
	"edustream/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Elevated-credential storage client; handlers only reach it through the
	// deletion service after authorization.
	store := storage.NewClient(config.AppConfig.StorageURL, config.AppConfig.StorageServiceKey)

	deletionService := deletion.NewService(
		database.Database.Db,
		store,
		config.AppConfig.VideosBucket,
		config.AppConfig.ThumbnailsBucket,
	)
	controllers.SetupDeletionService(deletionService)

	utils.InitializeCleanupScheduler(store)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupTeacherCourseRoutes(app)
	courseRoutes.SetupStudentCourseRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
