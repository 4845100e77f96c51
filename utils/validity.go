package utils

import (
	"time"

	trainingModels "aerocert/models/training"
)

// ExpiryWindowDays is the shared expiring-soon window. Every caller (issuance
// responses, profile bundles, the reminder scheduler) uses this constant so
// expiry semantics never diverge.
const ExpiryWindowDays = 90

// IsCurrentlyValid reports whether the expiry date has not yet passed. The
// expiry day itself still counts as valid.
func IsCurrentlyValid(expiryDate, now time.Time) bool {
	return !DateOnly(now).After(DateOnly(expiryDate))
}

// DaysRemaining returns the signed whole-day distance to the expiry date.
// Negative for certificates already past expiry.
func DaysRemaining(expiryDate, now time.Time) int {
	return int(DateOnly(expiryDate).Sub(DateOnly(now)).Hours() / 24)
}

// IsExpiringSoon reports whether the expiry date falls inside the window:
// still valid today, but at most windowDays away.
func IsExpiringSoon(expiryDate, now time.Time, windowDays int) bool {
	days := DaysRemaining(expiryDate, now)
	return days >= 0 && days <= windowDays
}

// UsableNow combines the stored administrative status with the derived
// time-based validity. A suspended or revoked certificate is never usable,
// however far away its expiry date; a stored-valid certificate stops being
// usable the day after it expires. The two axes stay independent.
func UsableNow(cert *trainingModels.Certificate, now time.Time) bool {
	return cert.Status == trainingModels.CertStatusValid && IsCurrentlyValid(cert.ExpiryDate, now)
}
