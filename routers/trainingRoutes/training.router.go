package trainingRoutes

import (
	trainingControllers "aerocert/controllers/training"
	"aerocert/middleware"
	trainingValidators "aerocert/validators/training"

	"github.com/gofiber/fiber/v2"
)

// SetupTrainingRoutes sets up training management routes
func SetupTrainingRoutes(app *fiber.App) {
	trainingGroup := app.Group("/training")
	trainingGroup.Get("/programs", middleware.JWTMiddleware, trainingControllers.ListPrograms)

	adminGroup := app.Group("/admin/training")
	adminGroup.Post("/program", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), trainingValidators.CreateProgram(), trainingControllers.CreateProgram)
	adminGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), trainingValidators.CreateTraining(), trainingControllers.CreateTraining)
	adminGroup.Get("/list", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), trainingControllers.ListTrainings)
	adminGroup.Post("/:id/complete", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), trainingValidators.TrainingID(), trainingControllers.CompleteTraining)
}
