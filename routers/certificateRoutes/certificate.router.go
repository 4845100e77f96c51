package certificateRoutes

import (
	certControllers "aerocert/controllers/certificate"
	"aerocert/middleware"
	certValidators "aerocert/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up certificate lifecycle routes
func SetupCertificateRoutes(app *fiber.App) {
	certGroup := app.Group("/certificate")

	// Issuance and artifact management (admin)
	certGroup.Post("/issue", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), certValidators.IssueCertificate(), certControllers.IssueCertificate)
	certGroup.Post("/:id/regenerate", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), certValidators.CertificateID(), certControllers.RegenerateArtifact)
	certGroup.Post("/:id/upload", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), certValidators.CertificateID(), certControllers.UploadArtifact)
	certGroup.Patch("/:id/status", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), certValidators.CertificateID(), certValidators.UpdateStatus(), certControllers.UpdateCertificateStatus)
	certGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), certValidators.CertificateID(), certControllers.DeleteCertificate)

	// Detail fetch (any authenticated user)
	certGroup.Get("/:id", middleware.JWTMiddleware, certValidators.CertificateID(), certControllers.GetCertificate)

	// Own certificate list
	userGroup := app.Group("/user")
	userGroup.Get("/certificates", middleware.JWTMiddleware, certControllers.GetUserCertificates)
}
