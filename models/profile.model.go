package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile is a personnel record. Trainees and administrators share the table;
// Role gates the admin-only routes.
type Profile struct {
	gorm.Model
	Name           string     `json:"name" gorm:"default:''"`
	Email          string     `json:"email" gorm:"unique;not null"`
	Mobile         string     `json:"mobile" gorm:"default:''"`
	Role           string     `json:"role" gorm:"default:'USER'"` // USER, ADMIN
	Password       string     `json:"-" gorm:"not null"`
	EmployeeNumber string     `json:"employee_number" gorm:"index"`
	JobCategoryID  *uint      `json:"job_category_id" gorm:"index"`
	LastLogin      *time.Time `json:"last_login"`
	IsDeleted      bool       `gorm:"default:false"`
}

// JobCategory is an operational role class (e.g. ramp agent, fire-rescue)
type JobCategory struct {
	gorm.Model
	Code        string `json:"code" gorm:"unique;not null"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	IsDeleted   bool   `gorm:"default:false"`
}
