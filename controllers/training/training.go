package controllers

import (
	"time"

	"aerocert/database"
	"aerocert/middleware"
	trainingModels "aerocert/models/training"

	"github.com/gofiber/fiber/v2"
)

// CreateProgram handles POST /admin/training/program
func CreateProgram(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedProgram").(*ProgramRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var existing trainingModels.TrainingProgram
	if err := db.Where("code = ? AND is_deleted = ?", reqData.Code, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Program code already exists!", nil)
	}

	program := trainingModels.TrainingProgram{
		Code:           reqData.Code,
		Title:          reqData.Title,
		Description:    reqData.Description,
		TotalHours:     reqData.TotalHours,
		ValidityMonths: reqData.ValidityMonths,
	}

	if err := db.Create(&program).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create program!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Program created successfully!", program)
}

// ListPrograms handles GET /training/programs
func ListPrograms(c *fiber.Ctx) error {
	var programs []trainingModels.TrainingProgram
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("code asc").Find(&programs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch programs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Programs fetched successfully!", fiber.Map{
		"programs": programs,
		"total":    len(programs),
	})
}

// CreateTraining handles POST /admin/training
func CreateTraining(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTraining").(*TrainingRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var program trainingModels.TrainingProgram
	if err := db.Where("id = ? AND is_deleted = ?", reqData.ProgramID, false).First(&program).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training program not found!", nil)
	}

	tr := trainingModels.Training{
		TraineeID: reqData.TraineeID,
		ProgramID: reqData.ProgramID,
		AirportID: reqData.AirportID,
		Status:    trainingModels.StatusScheduled,
		StartDate: reqData.StartDate,
	}

	if err := db.Create(&tr).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create training!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Training created successfully!", tr)
}

// ListTrainings handles GET /admin/training/list
func ListTrainings(c *fiber.Ctx) error {
	db := database.Database.Db.Where("is_deleted = ?", false)

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}
	if traineeID := c.QueryInt("trainee_id"); traineeID > 0 {
		db = db.Where("trainee_id = ?", traineeID)
	}

	var trainings []trainingModels.Training
	if err := db.Order("start_date desc").Find(&trainings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trainings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trainings fetched successfully!", fiber.Map{
		"trainings": trainings,
		"total":     len(trainings),
	})
}

// CompleteTraining handles POST /admin/training/:id/complete. Completion is
// the upstream event that makes certificate issuance legal.
func CompleteTraining(c *fiber.Ctx) error {
	trainingID, ok := c.Locals("trainingID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid training ID!", nil)
	}

	db := database.Database.Db

	var tr trainingModels.Training
	if err := db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&tr).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}

	if tr.Status == trainingModels.StatusCancelled {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cancelled trainings cannot be completed!", nil)
	}
	if tr.Status == trainingModels.StatusCompleted {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Training is already completed!", nil)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":   trainingModels.StatusCompleted,
		"end_date": now,
	}
	if err := db.Model(&tr).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete training!", nil)
	}

	tr.Status = trainingModels.StatusCompleted
	tr.EndDate = &now
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training completed successfully!", tr)
}

// ProgramRequest is the validated program creation body
type ProgramRequest struct {
	Code           string `json:"code" validate:"required,min=2,max=16"`
	Title          string `json:"title" validate:"required,min=3"`
	Description    string `json:"description" validate:"omitempty,max=2000"`
	TotalHours     int    `json:"total_hours" validate:"gte=0"`
	ValidityMonths int    `json:"validity_months" validate:"gte=0,lte=120"`
}

// TrainingRequest is the validated training creation body
type TrainingRequest struct {
	TraineeID uint      `json:"trainee_id" validate:"required,gt=0"`
	ProgramID uint      `json:"program_id" validate:"required,gt=0"`
	AirportID uint      `json:"airport_id" validate:"required,gt=0"`
	StartDate time.Time `json:"start_date" validate:"required"`
}
