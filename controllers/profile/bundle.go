package controllers

import (
	"errors"
	"math"
	"sort"
	"time"

	"aerocert/database"
	"aerocert/middleware"
	"aerocert/models"
	trainingModels "aerocert/models/training"
	"aerocert/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// CertificateView is a certificate decorated for display in the bundle
type CertificateView struct {
	trainingModels.Certificate
	JobCategoryName string                      `json:"job_category_name"`
	AirportName     string                      `json:"airport_name"`
	ProgramTitle    string                      `json:"program_title"`
	ProgramCode     string                      `json:"program_code"`
	TheoreticalExam *trainingModels.Examination `json:"theoretical_exam"`
	PracticalExam   *trainingModels.Examination `json:"practical_exam"`
	UsableNow       bool                        `json:"usable_now"`
	ExpiringSoon    bool                        `json:"expiring_soon"`
	DaysRemaining   int                         `json:"days_remaining"`
}

// AssignmentView is an airport assignment joined with the airport name
type AssignmentView struct {
	models.AirportAssignment
	AirportName string `json:"airport_name"`
	IcaoCode    string `json:"icao_code"`
}

// BundleSummary carries the scalar statistics shown on a person's dashboard
type BundleSummary struct {
	TotalTrainings      int `json:"total_trainings"`
	InProgressTrainings int `json:"in_progress_trainings"`
	CompletedTrainings  int `json:"completed_trainings"`

	TotalCertificates        int `json:"total_certificates"`
	UsableCertificates       int `json:"usable_certificates"`
	ExpiringSoonCertificates int `json:"expiring_soon_certificates"`

	TotalExaminations  int `json:"total_examinations"`
	PassedExaminations int `json:"passed_examinations"`

	TotalSkillChecks  int `json:"total_skill_checks"`
	PassedSkillChecks int `json:"passed_skill_checks"`

	CompletionRate int `json:"completion_rate"` // percent, 0 when no trainings
}

// ProfileBundle is the aggregate view of one person's qualification history.
// Computed fresh on every read; nothing here is cached or persisted.
type ProfileBundle struct {
	Profile            models.Profile               `json:"profile"`
	JobCategory        *models.JobCategory          `json:"job_category"`
	AirportAssignments []AssignmentView             `json:"airport_assignments"`
	Trainings          []trainingModels.Training    `json:"trainings"`
	Certificates       []CertificateView            `json:"certificates"`
	Examinations       []trainingModels.Examination `json:"examinations"`
	SkillChecks        []trainingModels.SkillCheck  `json:"skill_checks"`
	Summary            BundleSummary                `json:"summary"`
}

// LoadProfileBundle fans out the six independent fetches concurrently, then
// decorates, re-sorts and summarizes. Any fetch failure fails the whole load.
func LoadProfileBundle(db *gorm.DB, profileID uint, now time.Time) (*ProfileBundle, *utils.ServiceError) {
	var profile models.Profile
	if err := db.Where("id = ? AND is_deleted = ?", profileID, false).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewServiceError(utils.ErrKindNotFound, "Profile not found!")
		}
		return nil, utils.WrapServiceError(utils.ErrKindPersistenceFailure, "Failed to load profile!", err)
	}

	var (
		category    *models.JobCategory
		assignments []models.AirportAssignment
		trainings   []trainingModels.Training
		certs       []trainingModels.Certificate
		exams       []trainingModels.Examination
		checks      []trainingModels.SkillCheck
	)

	g := new(errgroup.Group)

	g.Go(func() error {
		if profile.JobCategoryID == nil {
			return nil
		}
		var jc models.JobCategory
		err := db.Where("id = ? AND is_deleted = ?", *profile.JobCategoryID, false).First(&jc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		category = &jc
		return nil
	})

	g.Go(func() error {
		return db.Where("profile_id = ? AND is_deleted = ?", profileID, false).
			Order("is_primary desc").Find(&assignments).Error
	})

	g.Go(func() error {
		return db.Where("trainee_id = ? AND is_deleted = ?", profileID, false).
			Order("start_date desc").Find(&trainings).Error
	})

	g.Go(func() error {
		return db.Where("trainee_id = ? AND is_deleted = ?", profileID, false).
			Order("issue_date desc").Find(&certs).Error
	})

	g.Go(func() error {
		subquery := db.Model(&trainingModels.Training{}).Select("id").
			Where("trainee_id = ? AND is_deleted = ?", profileID, false)
		return db.Where("training_id IN (?) AND is_deleted = ?", subquery, false).
			Order("exam_date desc").Find(&exams).Error
	})

	g.Go(func() error {
		return db.Where("profile_id = ? AND is_deleted = ?", profileID, false).
			Order("check_date desc").Find(&checks).Error
	})

	if err := g.Wait(); err != nil {
		return nil, utils.WrapServiceError(utils.ErrKindPersistenceFailure, "Failed to load profile bundle!", err)
	}

	bundle := &ProfileBundle{
		Profile:            profile,
		JobCategory:        category,
		AirportAssignments: decorateAssignments(db, assignments),
		Trainings:          trainings,
		Certificates:       decorateAndSortCertificates(db, certs, now),
		Examinations:       exams,
		SkillChecks:        checks,
	}
	bundle.Summary = summarize(bundle, now)

	return bundle, nil
}

func decorateAssignments(db *gorm.DB, assignments []models.AirportAssignment) []AssignmentView {
	views := make([]AssignmentView, len(assignments))
	for i, a := range assignments {
		views[i] = AssignmentView{AirportAssignment: a}
		var airport models.Airport
		if err := db.Where("id = ?", a.AirportID).First(&airport).Error; err == nil {
			views[i].AirportName = airport.Name
			views[i].IcaoCode = airport.IcaoCode
		}
	}
	return views
}

// decorateAndSortCertificates joins each certificate with its names and exam
// results, then applies the display order: usable-now certificates before
// not-usable ones, ascending expiry date within each group. Whatever needs
// attention soonest surfaces at the top.
func decorateAndSortCertificates(db *gorm.DB, certs []trainingModels.Certificate, now time.Time) []CertificateView {
	views := make([]CertificateView, len(certs))
	for i, cert := range certs {
		// expiring-soon only applies to usable certificates; a suspended or
		// revoked one needs reinstatement, not renewal
		usable := utils.UsableNow(&cert, now)
		view := CertificateView{
			Certificate:   cert,
			UsableNow:     usable,
			ExpiringSoon:  usable && utils.IsExpiringSoon(cert.ExpiryDate, now, utils.ExpiryWindowDays),
			DaysRemaining: utils.DaysRemaining(cert.ExpiryDate, now),
		}

		if cert.JobCategoryID != nil {
			var category models.JobCategory
			if err := db.Where("id = ?", *cert.JobCategoryID).First(&category).Error; err == nil {
				view.JobCategoryName = category.Name
			}
		}

		var airport models.Airport
		if err := db.Where("id = ?", cert.AirportID).First(&airport).Error; err == nil {
			view.AirportName = airport.Name
		}

		var tr trainingModels.Training
		if err := db.Where("id = ?", cert.TrainingID).First(&tr).Error; err == nil {
			var program trainingModels.TrainingProgram
			if err := db.Where("id = ?", tr.ProgramID).First(&program).Error; err == nil {
				view.ProgramTitle = program.Title
				view.ProgramCode = program.Code
			}
		}

		if cert.TheoreticalExamID != nil {
			var exam trainingModels.Examination
			if err := db.Where("id = ?", *cert.TheoreticalExamID).First(&exam).Error; err == nil {
				view.TheoreticalExam = &exam
			}
		}
		if cert.PracticalExamID != nil {
			var exam trainingModels.Examination
			if err := db.Where("id = ?", *cert.PracticalExamID).First(&exam).Error; err == nil {
				view.PracticalExam = &exam
			}
		}

		views[i] = view
	}

	sort.SliceStable(views, func(i, j int) bool {
		if views[i].UsableNow != views[j].UsableNow {
			return views[i].UsableNow
		}
		return views[i].ExpiryDate.Before(views[j].ExpiryDate)
	})

	return views
}

func summarize(bundle *ProfileBundle, now time.Time) BundleSummary {
	var summary BundleSummary

	summary.TotalTrainings = len(bundle.Trainings)
	for _, tr := range bundle.Trainings {
		switch tr.Status {
		case trainingModels.StatusInProgress:
			summary.InProgressTrainings++
		case trainingModels.StatusCompleted:
			summary.CompletedTrainings++
		}
	}

	summary.TotalCertificates = len(bundle.Certificates)
	for i := range bundle.Certificates {
		if bundle.Certificates[i].UsableNow {
			summary.UsableCertificates++
			if bundle.Certificates[i].ExpiringSoon {
				summary.ExpiringSoonCertificates++
			}
		}
	}

	summary.TotalExaminations = len(bundle.Examinations)
	for _, exam := range bundle.Examinations {
		if exam.Passed {
			summary.PassedExaminations++
		}
	}

	summary.TotalSkillChecks = len(bundle.SkillChecks)
	for _, check := range bundle.SkillChecks {
		if check.Passed {
			summary.PassedSkillChecks++
		}
	}

	// guard against division by zero: no trainings means 0, not NaN
	if summary.TotalTrainings > 0 {
		rate := float64(summary.CompletedTrainings) / float64(summary.TotalTrainings) * 100
		summary.CompletionRate = int(math.Round(rate))
	}

	return summary
}

// GetOwnBundle handles GET /profile/bundle for the authenticated caller
func GetOwnBundle(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	bundle, svcErr := LoadProfileBundle(database.Database.Db, userID, time.Now())
	if svcErr != nil {
		return middleware.JsonResponse(c, utils.HTTPStatusFor(svcErr.Kind), false, svcErr.Message, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile bundle fetched successfully!", bundle)
}

// GetProfileBundle handles GET /admin/profile/:id/bundle
func GetProfileBundle(c *fiber.Ctx) error {
	profileID, ok := c.Locals("profileID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid profile ID!", nil)
	}

	bundle, svcErr := LoadProfileBundle(database.Database.Db, profileID, time.Now())
	if svcErr != nil {
		return middleware.JsonResponse(c, utils.HTTPStatusFor(svcErr.Kind), false, svcErr.Message, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile bundle fetched successfully!", bundle)
}
