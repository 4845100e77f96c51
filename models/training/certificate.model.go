package training

import (
	"time"

	"gorm.io/gorm"
)

// Stored certificate status values. These are administrative flags; whether a
// certificate is usable right now additionally depends on its expiry date
// (see utils.UsableNow).
const (
	CertStatusValid     = "VALID"
	CertStatusExpired   = "EXPIRED"
	CertStatusSuspended = "SUSPENDED"
	CertStatusRevoked   = "REVOKED"
)

// Certificate is an issued proof of qualification for one completed training.
// A partial unique index on TrainingID (live rows only, created in
// database.RunMigrations) enforces at most one live certificate per training
// at the storage layer; a duplicate insert surfaces as a constraint violation
// and is reported as an already-exists conflict. Soft-deleted rows drop out
// of the index so a deleted certificate can be reissued.
type Certificate struct {
	gorm.Model
	CertificateNumber string `json:"certificate_number" gorm:"unique;not null"`
	TraineeID         uint   `json:"trainee_id" gorm:"index;not null"`
	TrainingID        uint   `json:"training_id" gorm:"index;not null"`
	JobCategoryID     *uint  `json:"job_category_id"` // snapshot of the trainee's category at issuance
	AirportID         uint   `json:"airport_id" gorm:"index"`
	TheoreticalExamID *uint  `json:"theoretical_exam_id"`
	PracticalExamID   *uint  `json:"practical_exam_id"`

	IssueDate  time.Time `json:"issue_date"`
	ExpiryDate time.Time `json:"expiry_date"`
	Status     string    `json:"status" gorm:"default:'VALID'"` // VALID, EXPIRED, SUSPENDED, REVOKED

	PdfURL         string `json:"pdf_url"`          // public URL, or inline data URI when storage degraded
	PdfStoragePath string `json:"pdf_storage_path"` // set only when the artifact is durably stored
	Notes          string `json:"notes"`
	IsDeleted      bool   `gorm:"default:false"`
}
