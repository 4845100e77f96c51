package profileRoutes

import (
	profileControllers "aerocert/controllers/profile"
	"aerocert/middleware"
	trainingValidators "aerocert/validators/training"

	"github.com/gofiber/fiber/v2"
)

// SetupProfileRoutes sets up the aggregation read model routes
func SetupProfileRoutes(app *fiber.App) {
	profileGroup := app.Group("/profile")
	profileGroup.Get("/bundle", middleware.JWTMiddleware, profileControllers.GetOwnBundle)

	adminGroup := app.Group("/admin/profile")
	adminGroup.Get("/:id/bundle", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), trainingValidators.ProfileID(), profileControllers.GetProfileBundle)
}
