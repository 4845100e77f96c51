package trainingValidator

import (
	"strconv"
	"strings"

	trainingControllers "aerocert/controllers/training"
	"aerocert/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateProgram validates the program creation body
func CreateProgram() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(trainingControllers.ProgramRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Code = strings.ToUpper(strings.TrimSpace(reqData.Code))
		reqData.Title = strings.TrimSpace(reqData.Title)

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Code":
					errors["code"] = "Program code must be 2-16 characters!"
				case "Title":
					errors["title"] = "Title must be at least 3 characters long!"
				case "TotalHours":
					errors["total_hours"] = "Total hours must not be negative!"
				case "ValidityMonths":
					errors["validity_months"] = "Validity months must be between 0 and 120!"
				case "Description":
					errors["description"] = "Description must not exceed 2000 characters!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgram", reqData)
		return c.Next()
	}
}

// CreateTraining validates the training creation body
func CreateTraining() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(trainingControllers.TrainingRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "TraineeID":
					errors["trainee_id"] = "A valid trainee ID is required!"
				case "ProgramID":
					errors["program_id"] = "A valid program ID is required!"
				case "AirportID":
					errors["airport_id"] = "A valid airport ID is required!"
				case "StartDate":
					errors["start_date"] = "Start date is required!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTraining", reqData)
		return c.Next()
	}
}

// TrainingID validates the :id path parameter
func TrainingID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Training ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Training ID!", nil)
		}

		c.Locals("trainingID", uint(id))
		return c.Next()
	}
}

// ProfileID validates the :id path parameter on profile routes
func ProfileID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Profile ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Profile ID!", nil)
		}

		c.Locals("profileID", uint(id))
		return c.Next()
	}
}
