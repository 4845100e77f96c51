package controllers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"aerocert/database"
	"aerocert/middleware"
	"aerocert/models"
	trainingModels "aerocert/models/training"
	"aerocert/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// defaultValidityMonths applies when a program does not define its own
// validity period
const defaultValidityMonths = 24

// IssueCertificateFromTraining runs the issuance sequence for one completed
// training: precondition checks in order (not found, not completed, already
// certified), then number/date/exam/category derivation and the insert.
// The partial unique index on live training_id rows backs up the existence
// pre-check, so a lost race between two concurrent issuances still resolves
// to AlreadyExists. Soft-deleted certificates are outside the index: deleting
// a certificate reopens its training for reissuance.
func IssueCertificateFromTraining(db *gorm.DB, trainingID uint, notes string, now time.Time) (*trainingModels.Certificate, *utils.ServiceError) {
	var tr trainingModels.Training
	if err := db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&tr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewServiceError(utils.ErrKindNotFound, "Training not found!")
		}
		return nil, utils.WrapServiceError(utils.ErrKindPersistenceFailure, "Failed to load training!", err)
	}

	if tr.Status != trainingModels.StatusCompleted {
		return nil, utils.NewServiceError(utils.ErrKindInvalidState, "Training is not completed yet!")
	}

	var existing trainingModels.Certificate
	if err := db.Where("training_id = ? AND is_deleted = ?", trainingID, false).First(&existing).Error; err == nil {
		return nil, utils.NewServiceError(utils.ErrKindAlreadyExists, "Certificate already exists for this training!")
	}

	var program trainingModels.TrainingProgram
	if err := db.Where("id = ?", tr.ProgramID).First(&program).Error; err != nil {
		return nil, utils.NewServiceError(utils.ErrKindNotFound, "Training program not found!")
	}

	var trainee models.Profile
	if err := db.Where("id = ? AND is_deleted = ?", tr.TraineeID, false).First(&trainee).Error; err != nil {
		return nil, utils.NewServiceError(utils.ErrKindNotFound, "Trainee profile not found!")
	}

	validityMonths := program.ValidityMonths
	if validityMonths <= 0 {
		validityMonths = defaultValidityMonths
	}

	issueDate := utils.DateOnly(now)
	expiryDate := utils.AddMonthsClamped(issueDate, validityMonths)

	// Link at most one exam of each type taken during this training
	var exams []trainingModels.Examination
	db.Where("training_id = ? AND is_deleted = ?", trainingID, false).Find(&exams)

	var theoreticalExamID, practicalExamID *uint
	for i := range exams {
		switch exams[i].ExamType {
		case trainingModels.ExamTheoretical:
			if theoreticalExamID == nil {
				id := exams[i].ID
				theoreticalExamID = &id
			}
		case trainingModels.ExamPractical:
			if practicalExamID == nil {
				id := exams[i].ID
				practicalExamID = &id
			}
		}
	}

	if strings.TrimSpace(notes) == "" {
		notes = fmt.Sprintf("Issued on completion of %s (%d training hours).", program.Title, program.TotalHours)
	}

	cert := trainingModels.Certificate{
		CertificateNumber: utils.CertificateNumber(program.Code, now),
		TraineeID:         tr.TraineeID,
		TrainingID:        tr.ID,
		JobCategoryID:     trainee.JobCategoryID, // snapshot, not a live reference
		AirportID:         tr.AirportID,
		TheoreticalExamID: theoreticalExamID,
		PracticalExamID:   practicalExamID,
		IssueDate:         issueDate,
		ExpiryDate:        expiryDate,
		Status:            trainingModels.CertStatusValid,
		Notes:             notes,
	}

	if err := db.Create(&cert).Error; err != nil {
		if isTrainingConflict(err) {
			return nil, utils.NewServiceError(utils.ErrKindAlreadyExists, "Certificate already exists for this training!")
		}
		return nil, utils.WrapServiceError(utils.ErrKindPersistenceFailure, "Failed to create certificate!", err)
	}

	return &cert, nil
}

// isTrainingConflict reports whether err is the one-live-certificate-per-
// training constraint specifically. Other unique violations (such as a
// certificate_number collision) fall through to PersistenceFailure; Postgres
// names the violated constraint, sqlite names the column.
func isTrainingConflict(err error) bool {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "unique") && !strings.Contains(msg, "duplicate") {
		return false
	}
	return strings.Contains(msg, database.LiveCertificateIndex) ||
		strings.Contains(msg, "certificates.training_id")
}

// IssueCertificate handles POST /certificate/issue
func IssueCertificate(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedIssueRequest").(*IssueRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db
	now := time.Now()

	cert, svcErr := IssueCertificateFromTraining(db, reqData.TrainingID, reqData.Notes, now)
	if svcErr != nil {
		return middleware.JsonResponse(c, utils.HTTPStatusFor(svcErr.Kind), false, svcErr.Message, nil)
	}

	// Artifact generation runs synchronously but its failure never unwinds
	// the freshly created certificate record
	message := "Certificate issued successfully!"
	if _, genErr := GenerateAndStoreArtifact(db, defaultRenderer(), defaultArtifactSink(), cert.ID); genErr != nil {
		log.Printf("Artifact generation failed for certificate %d: %v", cert.ID, genErr)
		message = "Certificate issued, but document generation failed. Regenerate the document later."
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, message, fiber.Map{
		"certificate_id":     cert.ID,
		"certificate_number": cert.CertificateNumber,
	})
}

// IssueRequest is the validated issuance request body
type IssueRequest struct {
	TrainingID uint   `json:"training_id" validate:"required,gt=0"`
	Notes      string `json:"notes" validate:"omitempty,max=2000"`
}
