package controllers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"aerocert/config"
	"aerocert/database"
	"aerocert/middleware"
	"aerocert/models"
	trainingModels "aerocert/models/training"
	"aerocert/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	artifactContentType = "application/pdf"
	maxUploadBytes      = 10 << 20 // 10 MiB ceiling for manual uploads
)

// defaultArtifactSink composes the production two-tier persistence: durable
// blob storage first, inline data-URI embedding when storage is unavailable
func defaultArtifactSink() utils.ArtifactSink {
	return utils.FallbackSink{
		Primary: utils.DurableSink{
			Blobs:  utils.NewStorageClient(),
			Bucket: config.AppConfig.StorageBucket,
		},
		Secondary: utils.InlineSink{},
	}
}

func defaultRenderer() utils.DocumentRenderer {
	return utils.NewRendererClient()
}

// buildCertificatePayload assembles the renderer input. Every optional field
// gets an explicit fallback literal; the renderer never receives an empty
// required display field.
func buildCertificatePayload(db *gorm.DB, cert *trainingModels.Certificate) utils.CertificatePayload {
	payload := utils.CertificatePayload{
		CertificateNumber: cert.CertificateNumber,
		TraineeName:       "Unknown",
		EmployeeNumber:    "N/A",
		ProgramTitle:      "N/A",
		ProgramCode:       "N/A",
		TotalHours:        "N/A",
		JobCategoryName:   "N/A",
		AirportName:       "N/A",
		IssueDate:         cert.IssueDate.Format("2006-01-02"),
		ExpiryDate:        cert.ExpiryDate.Format("2006-01-02"),
		TheoreticalScore:  "N/A",
		PracticalScore:    "N/A",
		IssuerName:        "AeroCert Training Authority",
		SignerName:        "Unknown",
		SignerImageURL:    "",
		Notes:             "Certificate of completion for airport personnel training.",
	}

	var trainee models.Profile
	if err := db.Where("id = ?", cert.TraineeID).First(&trainee).Error; err == nil {
		if trainee.Name != "" {
			payload.TraineeName = trainee.Name
		}
		if trainee.EmployeeNumber != "" {
			payload.EmployeeNumber = trainee.EmployeeNumber
		}
	}

	var tr trainingModels.Training
	if err := db.Where("id = ?", cert.TrainingID).First(&tr).Error; err == nil {
		var program trainingModels.TrainingProgram
		if err := db.Where("id = ?", tr.ProgramID).First(&program).Error; err == nil {
			if program.Title != "" {
				payload.ProgramTitle = program.Title
			}
			if program.Code != "" {
				payload.ProgramCode = program.Code
			}
			payload.TotalHours = fmt.Sprintf("%d", program.TotalHours)
		}
	}

	if cert.JobCategoryID != nil {
		var category models.JobCategory
		if err := db.Where("id = ?", *cert.JobCategoryID).First(&category).Error; err == nil && category.Name != "" {
			payload.JobCategoryName = category.Name
		}
	}

	var airport models.Airport
	if err := db.Where("id = ?", cert.AirportID).First(&airport).Error; err == nil && airport.Name != "" {
		payload.AirportName = airport.Name
	}

	if cert.TheoreticalExamID != nil {
		var exam trainingModels.Examination
		if err := db.Where("id = ?", *cert.TheoreticalExamID).First(&exam).Error; err == nil {
			payload.TheoreticalScore = fmt.Sprintf("%d / %d", exam.Score, exam.MaxScore)
		}
	}
	if cert.PracticalExamID != nil {
		var exam trainingModels.Examination
		if err := db.Where("id = ?", *cert.PracticalExamID).First(&exam).Error; err == nil {
			payload.PracticalScore = fmt.Sprintf("%d / %d", exam.Score, exam.MaxScore)
		}
	}

	var settings models.OrgSettings
	if err := db.Where("is_deleted = ?", false).First(&settings).Error; err == nil {
		if settings.IssuerName != "" {
			payload.IssuerName = settings.IssuerName
		}
		if settings.SignerName != "" {
			payload.SignerName = settings.SignerName
		}
		payload.SignerImageURL = settings.SignerImageURL
	}

	if strings.TrimSpace(cert.Notes) != "" {
		payload.Notes = cert.Notes
	}

	return payload
}

// GenerateAndStoreArtifact renders the certificate document and persists it
// through the sink chain, then records where it landed. Inline degrade is a
// success from the caller's perspective; only total failure to produce or
// record any artifact is an error. Safe to call repeatedly: the object name
// is deterministic and the durable tier overwrites.
func GenerateAndStoreArtifact(db *gorm.DB, renderer utils.DocumentRenderer, sink utils.ArtifactSink, certificateID uint) (*trainingModels.Certificate, *utils.ServiceError) {
	var cert trainingModels.Certificate
	if err := db.Where("id = ? AND is_deleted = ?", certificateID, false).First(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewServiceError(utils.ErrKindNotFound, "Certificate not found!")
		}
		return nil, utils.WrapServiceError(utils.ErrKindPersistenceFailure, "Failed to load certificate!", err)
	}

	payload := buildCertificatePayload(db, &cert)

	data, err := renderer.Render(payload)
	if err != nil {
		return nil, utils.WrapServiceError(utils.ErrKindStorageFailure, "Failed to render certificate document!", err)
	}

	objectName := utils.GeneratedArtifactName(cert.ID, cert.CertificateNumber)
	result, err := sink.Store(objectName, data, artifactContentType)
	if err != nil {
		return nil, utils.WrapServiceError(utils.ErrKindStorageFailure, "Failed to store certificate document!", err)
	}

	updates := map[string]interface{}{
		"pdf_url":          result.URL,
		"pdf_storage_path": result.StoragePath,
	}
	if err := db.Model(&cert).Updates(updates).Error; err != nil {
		return nil, utils.WrapServiceError(utils.ErrKindPersistenceFailure, "Failed to record certificate document location!", err)
	}

	cert.PdfURL = result.URL
	cert.PdfStoragePath = result.StoragePath
	return &cert, nil
}

// StoreUploadedArtifact persists a caller-supplied document, bypassing the
// renderer. Same sink chain, distinct object name suffix.
func StoreUploadedArtifact(db *gorm.DB, sink utils.ArtifactSink, certificateID uint, data []byte) (*trainingModels.Certificate, *utils.ServiceError) {
	var cert trainingModels.Certificate
	if err := db.Where("id = ? AND is_deleted = ?", certificateID, false).First(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewServiceError(utils.ErrKindNotFound, "Certificate not found!")
		}
		return nil, utils.WrapServiceError(utils.ErrKindPersistenceFailure, "Failed to load certificate!", err)
	}

	objectName := utils.UploadedArtifactName(cert.ID, cert.CertificateNumber)
	result, err := sink.Store(objectName, data, artifactContentType)
	if err != nil {
		return nil, utils.WrapServiceError(utils.ErrKindStorageFailure, "Failed to store certificate document!", err)
	}

	updates := map[string]interface{}{
		"pdf_url":          result.URL,
		"pdf_storage_path": result.StoragePath,
	}
	if err := db.Model(&cert).Updates(updates).Error; err != nil {
		return nil, utils.WrapServiceError(utils.ErrKindPersistenceFailure, "Failed to record certificate document location!", err)
	}

	cert.PdfURL = result.URL
	cert.PdfStoragePath = result.StoragePath
	return &cert, nil
}

// RegenerateArtifact handles POST /certificate/:id/regenerate
func RegenerateArtifact(c *fiber.Ctx) error {
	certID, ok := c.Locals("certificateID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate ID!", nil)
	}

	cert, svcErr := GenerateAndStoreArtifact(database.Database.Db, defaultRenderer(), defaultArtifactSink(), certID)
	if svcErr != nil {
		return middleware.JsonResponse(c, utils.HTTPStatusFor(svcErr.Kind), false, svcErr.Message, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate document generated successfully!", fiber.Map{
		"certificate_id":     cert.ID,
		"certificate_number": cert.CertificateNumber,
		"pdf_url":            cert.PdfURL,
	})
}

// UploadArtifact handles POST /certificate/:id/upload with a pre-made
// document file
func UploadArtifact(c *fiber.Ctx) error {
	certID, ok := c.Locals("certificateID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate ID!", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Document file is required!", nil)
	}

	if fileHeader.Header.Get("Content-Type") != artifactContentType {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Only PDF documents are accepted!", nil)
	}
	if fileHeader.Size > maxUploadBytes {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Document exceeds the 10 MiB size limit!", nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read uploaded document!", nil)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read uploaded document!", nil)
	}

	cert, svcErr := StoreUploadedArtifact(database.Database.Db, defaultArtifactSink(), certID, data)
	if svcErr != nil {
		return middleware.JsonResponse(c, utils.HTTPStatusFor(svcErr.Kind), false, svcErr.Message, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate document uploaded successfully!", fiber.Map{
		"certificate_id":     cert.ID,
		"certificate_number": cert.CertificateNumber,
		"pdf_url":            cert.PdfURL,
	})
}
