package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCertificateNumber(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	number := CertificateNumber("FRS", now)
	assert.Regexp(t, regexp.MustCompile(`^CERT-FRS-202506-\d{6}$`), number)

	// empty and whitespace-only codes fall back to TNG
	assert.Regexp(t, `^CERT-TNG-202506-\d{6}$`, CertificateNumber("", now))
	assert.Regexp(t, `^CERT-TNG-202506-\d{6}$`, CertificateNumber("   ", now))

	// suffix is the low six digits of epoch milliseconds, zero padded
	fixed := time.UnixMilli(1700000000007)
	assert.Equal(t, "CERT-FRS-"+fixed.UTC().Format("200601")+"-000007", CertificateNumber("FRS", fixed.UTC()))
}

func TestArtifactNames(t *testing.T) {
	assert.Equal(t, "42_CERT-FRS-202506-123456_generated.pdf", GeneratedArtifactName(42, "CERT-FRS-202506-123456"))
	assert.Equal(t, "42_CERT-FRS-202506-123456_uploaded.pdf", UploadedArtifactName(42, "CERT-FRS-202506-123456"))

	// whitespace in the number becomes underscores
	assert.Equal(t, "7_CERT_WITH_SPACES_generated.pdf", GeneratedArtifactName(7, "CERT WITH SPACES"))
}
