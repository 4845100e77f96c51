package training

import (
	"time"

	"gorm.io/gorm"
)

// Training status values
const (
	StatusScheduled  = "SCHEDULED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// TrainingProgram is a curriculum (e.g. fire & rescue basics) that trainings
// are instances of
type TrainingProgram struct {
	gorm.Model
	Code           string `json:"code" gorm:"unique;not null"`
	Title          string `json:"title" gorm:"not null"`
	Description    string `json:"description"`
	TotalHours     int    `json:"total_hours" gorm:"default:0"`
	ValidityMonths int    `json:"validity_months" gorm:"default:0"` // 0 means the 24-month default applies
	IsDeleted      bool   `gorm:"default:false"`
}

// Training is one execution of a program for one trainee at one airport
type Training struct {
	gorm.Model
	TraineeID uint       `json:"trainee_id" gorm:"index;not null"`
	ProgramID uint       `json:"program_id" gorm:"index;not null"`
	AirportID uint       `json:"airport_id" gorm:"index;not null"`
	Status    string     `json:"status" gorm:"default:'SCHEDULED'"` // SCHEDULED, IN_PROGRESS, COMPLETED, CANCELLED
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	IsDeleted bool       `gorm:"default:false"`
}
