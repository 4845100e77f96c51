package models

import (
	"gorm.io/gorm"
)

// Airport is a station where personnel are assigned and trained
type Airport struct {
	gorm.Model
	IcaoCode  string `json:"icao_code" gorm:"unique;not null"`
	IataCode  string `json:"iata_code" gorm:"index"`
	Name      string `json:"name" gorm:"not null"`
	City      string `json:"city"`
	Country   string `json:"country"`
	IsDeleted bool   `gorm:"default:false"`
}

// AirportAssignment links a person to a station; one may be flagged primary
type AirportAssignment struct {
	gorm.Model
	ProfileID uint `json:"profile_id" gorm:"index;not null"`
	AirportID uint `json:"airport_id" gorm:"index;not null"`
	IsPrimary bool `json:"is_primary" gorm:"default:false"`
	IsDeleted bool `gorm:"default:false"`
}
