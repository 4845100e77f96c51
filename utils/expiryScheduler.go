package utils

import (
	"fmt"
	"log"
	"time"

	"aerocert/database"
	"aerocert/models"
	trainingModels "aerocert/models/training"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[EXPIRY-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// processExpiryReminders emails every holder of a stored-valid certificate
// that falls inside the expiring-soon window. The sweep never rewrites the
// stored status field: time-based expiry stays derived, administrative flags
// stay administrative.
func processExpiryReminders() {
	db := database.Database.Db
	now := time.Now()

	var certs []trainingModels.Certificate
	if err := db.Where("status = ? AND is_deleted = ?", trainingModels.CertStatusValid, false).
		Find(&certs).Error; err != nil {
		logScheduler("Error fetching certificates: " + err.Error())
		return
	}

	sent := 0
	for _, cert := range certs {
		if !IsExpiringSoon(cert.ExpiryDate, now, ExpiryWindowDays) {
			continue
		}

		var trainee models.Profile
		if err := db.Where("id = ? AND is_deleted = ?", cert.TraineeID, false).First(&trainee).Error; err != nil {
			logScheduler("Skipping certificate " + cert.CertificateNumber + ": trainee not found")
			continue
		}

		programTitle := "your training program"
		var tr trainingModels.Training
		if err := db.Where("id = ?", cert.TrainingID).First(&tr).Error; err == nil {
			var program trainingModels.TrainingProgram
			if err := db.Where("id = ?", tr.ProgramID).First(&program).Error; err == nil {
				programTitle = program.Title
			}
		}

		daysLeft := DaysRemaining(cert.ExpiryDate, now)
		if err := SendExpiryReminderEmail(trainee.Name, trainee.Email, cert.CertificateNumber, programTitle, daysLeft); err != nil {
			logScheduler("Failed to send reminder for " + cert.CertificateNumber + ": " + err.Error())
			continue
		}
		sent++
	}

	if sent > 0 {
		logScheduler(fmt.Sprintf("Sent %d expiry reminder(s)", sent))
	}
}

// StartExpiryScheduler runs the expiry reminder sweep every morning
func StartExpiryScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("0 6 * * *", processExpiryReminders); err != nil {
		logScheduler("Failed to register expiry reminder job: " + err.Error())
		return
	}

	c.Start()
	logScheduler("Expiry reminder scheduler started")
}
