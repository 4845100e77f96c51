package training

import (
	"time"

	"gorm.io/gorm"
)

// Examination types
const (
	ExamTheoretical = "THEORETICAL"
	ExamPractical   = "PRACTICAL"
)

// Examination is a scored exam taken during a training. At most one of each
// type is linked into an issued certificate.
type Examination struct {
	gorm.Model
	TrainingID uint      `json:"training_id" gorm:"index;not null"`
	ExamType   string    `json:"exam_type" gorm:"not null"` // THEORETICAL, PRACTICAL
	Score      int       `json:"score" gorm:"default:0"`
	MaxScore   int       `json:"max_score" gorm:"default:100"`
	Passed     bool      `json:"passed" gorm:"default:false"`
	ExamDate   time.Time `json:"exam_date"`
	IsDeleted  bool      `gorm:"default:false"`
}

// SkillCheck is a recurring practical proficiency check, independent of any
// single training
type SkillCheck struct {
	gorm.Model
	ProfileID uint      `json:"profile_id" gorm:"index;not null"`
	SkillName string    `json:"skill_name" gorm:"not null"`
	Passed    bool      `json:"passed" gorm:"default:false"`
	CheckDate time.Time `json:"check_date"`
	Assessor  string    `json:"assessor"`
	IsDeleted bool      `gorm:"default:false"`
}
