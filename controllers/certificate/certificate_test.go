package controllers

import (
	"testing"
	"time"

	trainingModels "aerocert/models/training"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorateCertificateExpiringSoonRequiresUsable(t *testing.T) {
	db, err := newTestDB()
	require.NoError(t, err)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	suspended := trainingModels.Certificate{
		CertificateNumber: "CERT-FRS-202306-000001",
		TraineeID:         1,
		TrainingID:        1,
		IssueDate:         now.AddDate(-2, 0, 0),
		ExpiryDate:        now.AddDate(0, 0, 30),
		Status:            trainingModels.CertStatusSuspended,
	}
	require.NoError(t, db.Create(&suspended).Error)

	usable := trainingModels.Certificate{
		CertificateNumber: "CERT-FRS-202306-000002",
		TraineeID:         1,
		TrainingID:        2,
		IssueDate:         now.AddDate(-2, 0, 0),
		ExpiryDate:        now.AddDate(0, 0, 30),
		Status:            trainingModels.CertStatusValid,
	}
	require.NoError(t, db.Create(&usable).Error)

	detail := decorateCertificate(db, suspended, now)
	assert.False(t, detail.UsableNow)
	assert.False(t, detail.ExpiringSoon, "a suspended certificate is not expiring soon, it is not usable at all")

	detail = decorateCertificate(db, usable, now)
	assert.True(t, detail.UsableNow)
	assert.True(t, detail.ExpiringSoon)
}
