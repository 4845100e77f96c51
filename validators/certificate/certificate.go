package certificateValidator

import (
	"strconv"
	"strings"

	certControllers "aerocert/controllers/certificate"
	"aerocert/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// IssueCertificate validates the issuance request body
func IssueCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(certControllers.IssueRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Notes = strings.TrimSpace(reqData.Notes)

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "TrainingID":
					errors["training_id"] = "A valid training ID is required!"
				case "Notes":
					errors["notes"] = "Notes must not exceed 2000 characters!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedIssueRequest", reqData)
		return c.Next()
	}
}

// CertificateID validates the :id path parameter
func CertificateID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Certificate ID!", nil)
		}

		c.Locals("certificateID", uint(id))
		return c.Next()
	}
}

// UpdateStatus validates the administrative status change body
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(certControllers.StatusUpdateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Status = strings.ToUpper(strings.TrimSpace(reqData.Status))

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be one of VALID, EXPIRED, SUSPENDED, REVOKED!",
			})
		}

		c.Locals("validatedStatusUpdate", reqData)
		return c.Next()
	}
}
