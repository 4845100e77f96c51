package utils

import (
	"testing"
	"time"

	trainingModels "aerocert/models/training"

	"github.com/stretchr/testify/assert"
)

func TestIsCurrentlyValid(t *testing.T) {
	now := date(2025, 6, 1)

	assert.True(t, IsCurrentlyValid(date(2025, 6, 2), now))
	assert.True(t, IsCurrentlyValid(date(2025, 6, 1), now), "expiry day itself still counts")
	assert.False(t, IsCurrentlyValid(date(2025, 5, 31), now))
}

func TestDaysRemaining(t *testing.T) {
	now := date(2025, 6, 1)

	assert.Equal(t, 0, DaysRemaining(date(2025, 6, 1), now))
	assert.Equal(t, 30, DaysRemaining(date(2025, 7, 1), now))
	assert.Equal(t, -1, DaysRemaining(date(2025, 5, 31), now))
	// time-of-day never shifts the whole-day difference
	assert.Equal(t, 1, DaysRemaining(date(2025, 6, 2), now.Add(23*time.Hour)))
}

func TestIsExpiringSoonBoundaries(t *testing.T) {
	now := date(2025, 6, 1)

	assert.True(t, IsExpiringSoon(now.AddDate(0, 0, 90), now, ExpiryWindowDays), "exactly 90 days out is expiring soon")
	assert.False(t, IsExpiringSoon(now.AddDate(0, 0, 91), now, ExpiryWindowDays), "91 days out is not")
	assert.True(t, IsExpiringSoon(now, now, ExpiryWindowDays), "expires today is expiring soon")
	assert.False(t, IsExpiringSoon(now.AddDate(0, 0, -1), now, ExpiryWindowDays), "already expired is not")
}

func TestUsableNow(t *testing.T) {
	now := date(2025, 6, 1)

	valid := &trainingModels.Certificate{Status: trainingModels.CertStatusValid, ExpiryDate: date(2026, 6, 1)}
	assert.True(t, UsableNow(valid, now))

	timeExpired := &trainingModels.Certificate{Status: trainingModels.CertStatusValid, ExpiryDate: date(2025, 5, 1)}
	assert.False(t, UsableNow(timeExpired, now), "stored-valid but past expiry is not usable")

	suspended := &trainingModels.Certificate{Status: trainingModels.CertStatusSuspended, ExpiryDate: date(2026, 6, 1)}
	assert.False(t, UsableNow(suspended, now), "administrative suspension overrides time validity")

	revoked := &trainingModels.Certificate{Status: trainingModels.CertStatusRevoked, ExpiryDate: date(2026, 6, 1)}
	assert.False(t, UsableNow(revoked, now))
}
