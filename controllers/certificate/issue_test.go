package controllers

import (
	"testing"
	"time"

	"aerocert/models"
	trainingModels "aerocert/models/training"
	"aerocert/utils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type IssueSuite struct {
	suite.Suite
	db *gorm.DB

	program  trainingModels.TrainingProgram
	airport  models.Airport
	category models.JobCategory
	trainee  models.Profile
}

func TestIssueSuite(t *testing.T) {
	suite.Run(t, new(IssueSuite))
}

func (s *IssueSuite) SetupTest() {
	db, err := newTestDB()
	s.Require().NoError(err)
	s.db = db

	s.program = trainingModels.TrainingProgram{
		Code:           "FRS",
		Title:          "Fire & Rescue Basics",
		TotalHours:     40,
		ValidityMonths: 24,
	}
	s.Require().NoError(s.db.Create(&s.program).Error)

	s.airport = models.Airport{IcaoCode: "EDDF", IataCode: "FRA", Name: "Frankfurt Airport"}
	s.Require().NoError(s.db.Create(&s.airport).Error)

	s.category = models.JobCategory{Code: "FR", Name: "Fire & Rescue"}
	s.Require().NoError(s.db.Create(&s.category).Error)

	s.trainee = models.Profile{
		Name:          "Dana Weiss",
		Email:         "dana.weiss@example.com",
		Password:      "x",
		JobCategoryID: &s.category.ID,
	}
	s.Require().NoError(s.db.Create(&s.trainee).Error)
}

func (s *IssueSuite) newTraining(status string) trainingModels.Training {
	tr := trainingModels.Training{
		TraineeID: s.trainee.ID,
		ProgramID: s.program.ID,
		AirportID: s.airport.ID,
		Status:    status,
		StartDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.db.Create(&tr).Error)
	return tr
}

func (s *IssueSuite) TestIssueFromCompletedTraining() {
	tr := s.newTraining(trainingModels.StatusCompleted)

	exam := trainingModels.Examination{
		TrainingID: tr.ID,
		ExamType:   trainingModels.ExamTheoretical,
		Score:      90,
		MaxScore:   100,
		Passed:     true,
		ExamDate:   time.Date(2025, 5, 28, 0, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.db.Create(&exam).Error)

	now := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	cert, svcErr := IssueCertificateFromTraining(s.db, tr.ID, "", now)
	s.Require().Nil(svcErr)

	s.Regexp(`^CERT-FRS-202506-\d{6}$`, cert.CertificateNumber)
	s.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), cert.IssueDate)
	s.Equal(time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC), cert.ExpiryDate)
	s.Equal(trainingModels.CertStatusValid, cert.Status)

	s.Require().NotNil(cert.TheoreticalExamID)
	s.Equal(exam.ID, *cert.TheoreticalExamID)
	s.Nil(cert.PracticalExamID)

	s.Require().NotNil(cert.JobCategoryID)
	s.Equal(s.category.ID, *cert.JobCategoryID)
	s.Equal(s.airport.ID, cert.AirportID)

	s.Contains(cert.Notes, "Fire & Rescue Basics")
	s.Contains(cert.Notes, "40")
}

func (s *IssueSuite) TestIssueKeepsCallerNotes() {
	tr := s.newTraining(trainingModels.StatusCompleted)

	cert, svcErr := IssueCertificateFromTraining(s.db, tr.ID, "Recurrent training after equipment change.", time.Now())
	s.Require().Nil(svcErr)
	s.Equal("Recurrent training after equipment change.", cert.Notes)
}

func (s *IssueSuite) TestIssueFailsWhenTrainingMissing() {
	_, svcErr := IssueCertificateFromTraining(s.db, 99999, "", time.Now())
	s.Require().NotNil(svcErr)
	s.Equal(utils.ErrKindNotFound, svcErr.Kind)
}

func (s *IssueSuite) TestIssueFailsWhenTrainingNotCompleted() {
	for _, status := range []string{
		trainingModels.StatusScheduled,
		trainingModels.StatusInProgress,
		trainingModels.StatusCancelled,
	} {
		tr := s.newTraining(status)
		_, svcErr := IssueCertificateFromTraining(s.db, tr.ID, "", time.Now())
		s.Require().NotNil(svcErr, "status %s must not issue", status)
		s.Equal(utils.ErrKindInvalidState, svcErr.Kind)
	}
}

func (s *IssueSuite) TestSecondIssueForSameTrainingConflicts() {
	tr := s.newTraining(trainingModels.StatusCompleted)

	_, svcErr := IssueCertificateFromTraining(s.db, tr.ID, "", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	s.Require().Nil(svcErr)

	_, svcErr = IssueCertificateFromTraining(s.db, tr.ID, "", time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC))
	s.Require().NotNil(svcErr)
	s.Equal(utils.ErrKindAlreadyExists, svcErr.Kind)

	var count int64
	s.db.Model(&trainingModels.Certificate{}).Where("training_id = ?", tr.ID).Count(&count)
	s.EqualValues(1, count)
}

func (s *IssueSuite) TestReissueAfterDeleteSucceeds() {
	tr := s.newTraining(trainingModels.StatusCompleted)

	first, svcErr := IssueCertificateFromTraining(s.db, tr.ID, "", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	s.Require().Nil(svcErr)

	// soft delete the way DeleteCertificate does
	s.Require().NoError(s.db.Model(first).Update("is_deleted", true).Error)

	second, svcErr := IssueCertificateFromTraining(s.db, tr.ID, "", time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC))
	s.Require().Nil(svcErr, "a deleted certificate must not block reissuance")
	s.NotEqual(first.ID, second.ID)

	var live int64
	s.db.Model(&trainingModels.Certificate{}).
		Where("training_id = ? AND is_deleted = ?", tr.ID, false).Count(&live)
	s.EqualValues(1, live)
}

func (s *IssueSuite) TestIndexBlocksDuplicateLiveRows() {
	tr := s.newTraining(trainingModels.StatusCompleted)

	_, svcErr := IssueCertificateFromTraining(s.db, tr.ID, "", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	s.Require().Nil(svcErr)

	// a second live row for the same training, written the way a concurrent
	// issuance that lost the race would
	err := s.db.Create(&trainingModels.Certificate{
		CertificateNumber: "CERT-FRS-202506-999999",
		TraineeID:         s.trainee.ID,
		TrainingID:        tr.ID,
		AirportID:         s.airport.ID,
		IssueDate:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:        time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:            trainingModels.CertStatusValid,
	}).Error
	s.Require().Error(err)
	s.True(isTrainingConflict(err), "index violation maps to the AlreadyExists conflict")
}

func (s *IssueSuite) TestNumberCollisionIsNotTrainingConflict() {
	tr := s.newTraining(trainingModels.StatusCompleted)
	other := s.newTraining(trainingModels.StatusCompleted)

	cert, svcErr := IssueCertificateFromTraining(s.db, tr.ID, "", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	s.Require().Nil(svcErr)

	// same number, different training: a number collision must not be
	// reported as a duplicate certificate for the training
	err := s.db.Create(&trainingModels.Certificate{
		CertificateNumber: cert.CertificateNumber,
		TraineeID:         s.trainee.ID,
		TrainingID:        other.ID,
		AirportID:         s.airport.ID,
		IssueDate:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:        time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:            trainingModels.CertStatusValid,
	}).Error
	s.Require().Error(err)
	s.False(isTrainingConflict(err))
}

func (s *IssueSuite) TestExpiryClampsToShortMonth() {
	shortProgram := trainingModels.TrainingProgram{Code: "RMP", Title: "Ramp Refresher", ValidityMonths: 1}
	s.Require().NoError(s.db.Create(&shortProgram).Error)

	tr := trainingModels.Training{
		TraineeID: s.trainee.ID,
		ProgramID: shortProgram.ID,
		AirportID: s.airport.ID,
		Status:    trainingModels.StatusCompleted,
		StartDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.db.Create(&tr).Error)

	now := time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC)
	cert, svcErr := IssueCertificateFromTraining(s.db, tr.ID, "", now)
	s.Require().Nil(svcErr)
	s.Equal(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), cert.ExpiryDate)
}

func (s *IssueSuite) TestDefaultValidityApplies() {
	noValidity := trainingModels.TrainingProgram{Code: "SEC", Title: "Security Awareness"}
	s.Require().NoError(s.db.Create(&noValidity).Error)

	tr := trainingModels.Training{
		TraineeID: s.trainee.ID,
		ProgramID: noValidity.ID,
		AirportID: s.airport.ID,
		Status:    trainingModels.StatusCompleted,
		StartDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.db.Create(&tr).Error)

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cert, svcErr := IssueCertificateFromTraining(s.db, tr.ID, "", now)
	s.Require().Nil(svcErr)
	s.Equal(time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC), cert.ExpiryDate, "unset validity defaults to 24 months")
}
