package controllers

import (
	"errors"
	"log"
	"time"

	"aerocert/config"
	"aerocert/database"
	"aerocert/middleware"
	"aerocert/models"
	trainingModels "aerocert/models/training"
	"aerocert/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CertificateDetail is the decorated single-certificate view
type CertificateDetail struct {
	trainingModels.Certificate
	JobCategoryName string `json:"job_category_name"`
	AirportName     string `json:"airport_name"`
	ProgramTitle    string `json:"program_title"`
	ProgramCode     string `json:"program_code"`
	UsableNow       bool   `json:"usable_now"`
	ExpiringSoon    bool   `json:"expiring_soon"`
	DaysRemaining   int    `json:"days_remaining"`
}

func decorateCertificate(db *gorm.DB, cert trainingModels.Certificate, now time.Time) CertificateDetail {
	// expiring-soon only applies to usable certificates, matching the bundle
	// summary semantics
	usable := utils.UsableNow(&cert, now)
	detail := CertificateDetail{
		Certificate:   cert,
		UsableNow:     usable,
		ExpiringSoon:  usable && utils.IsExpiringSoon(cert.ExpiryDate, now, utils.ExpiryWindowDays),
		DaysRemaining: utils.DaysRemaining(cert.ExpiryDate, now),
	}

	if cert.JobCategoryID != nil {
		var category models.JobCategory
		if err := db.Where("id = ?", *cert.JobCategoryID).First(&category).Error; err == nil {
			detail.JobCategoryName = category.Name
		}
	}

	var airport models.Airport
	if err := db.Where("id = ?", cert.AirportID).First(&airport).Error; err == nil {
		detail.AirportName = airport.Name
	}

	var tr trainingModels.Training
	if err := db.Where("id = ?", cert.TrainingID).First(&tr).Error; err == nil {
		var program trainingModels.TrainingProgram
		if err := db.Where("id = ?", tr.ProgramID).First(&program).Error; err == nil {
			detail.ProgramTitle = program.Title
			detail.ProgramCode = program.Code
		}
	}

	return detail
}

// GetCertificate handles GET /certificate/:id
func GetCertificate(c *fiber.Ctx) error {
	certID, ok := c.Locals("certificateID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate ID!", nil)
	}

	db := database.Database.Db

	var cert trainingModels.Certificate
	if err := db.Where("id = ? AND is_deleted = ?", certID, false).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", fiber.Map{
		"certificate": decorateCertificate(db, cert, time.Now()),
	})
}

// GetUserCertificates handles GET /user/certificates for the caller
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	now := time.Now()

	var certs []trainingModels.Certificate
	if err := db.Where("trainee_id = ? AND is_deleted = ?", userID, false).
		Order("issue_date desc").Find(&certs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateDetail, len(certs))
	for i, cert := range certs {
		result[i] = decorateCertificate(db, cert, now)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}

// UpdateCertificateStatus handles PATCH /certificate/:id/status. This is the
// administrative axis only (suspend, revoke, reinstate); time-based expiry is
// always derived at read time and never written here.
func UpdateCertificateStatus(c *fiber.Ctx) error {
	certID, ok := c.Locals("certificateID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate ID!", nil)
	}

	reqData, ok := c.Locals("validatedStatusUpdate").(*StatusUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var cert trainingModels.Certificate
	if err := db.Where("id = ? AND is_deleted = ?", certID, false).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if err := db.Model(&cert).Update("status", reqData.Status).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update certificate status!", nil)
	}

	cert.Status = reqData.Status
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate status updated successfully!", fiber.Map{
		"certificate": cert,
	})
}

// DeleteCertificate handles DELETE /certificate/:id. The durable artifact is
// removed best-effort: a storage failure is logged and never blocks the
// record deletion.
func DeleteCertificate(c *fiber.Ctx) error {
	certID, ok := c.Locals("certificateID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate ID!", nil)
	}

	db := database.Database.Db

	var cert trainingModels.Certificate
	if err := db.Where("id = ? AND is_deleted = ?", certID, false).First(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load certificate!", nil)
	}

	if cert.PdfStoragePath != "" {
		blobs := utils.NewStorageClient()
		if err := blobs.Delete(config.AppConfig.StorageBucket, []string{cert.PdfStoragePath}); err != nil {
			log.Printf("Failed to delete stored artifact %s for certificate %d: %v", cert.PdfStoragePath, cert.ID, err)
		}
	}

	if err := db.Model(&cert).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate deleted successfully!", nil)
}

// StatusUpdateRequest is the validated administrative status change body
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=VALID EXPIRED SUSPENDED REVOKED"`
}
