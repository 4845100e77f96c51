package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// CertificateNumber composes a human-readable certificate number:
// CERT-<program code>-<YYYYMM>-<last six digits of epoch milliseconds>.
// The fallback program code is "TNG". The millisecond suffix gives practical
// uniqueness only; the unique index on training_id is the real guard.
func CertificateNumber(programCode string, now time.Time) string {
	code := strings.TrimSpace(programCode)
	if code == "" {
		code = "TNG"
	}
	suffix := now.UnixMilli() % 1000000
	return fmt.Sprintf("CERT-%s-%s-%06d", code, now.Format("200601"), suffix)
}

// GeneratedArtifactName is the deterministic object name for a rendered
// certificate document. Regeneration reuses the same name and overwrites.
func GeneratedArtifactName(certificateID uint, certificateNumber string) string {
	return fmt.Sprintf("%d_%s_generated.pdf", certificateID, sanitizeObjectPart(certificateNumber))
}

// UploadedArtifactName is the object name for a manually uploaded document
func UploadedArtifactName(certificateID uint, certificateNumber string) string {
	return fmt.Sprintf("%d_%s_uploaded.pdf", certificateID, sanitizeObjectPart(certificateNumber))
}

// sanitizeObjectPart replaces every whitespace character with an underscore
func sanitizeObjectPart(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, s)
}
