package models

import (
	"time"

	"github.com/google/uuid"
)

// LocationModel represents the database model for Location
type LocationModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Address    string    `gorm:"type:varchar(255);not null"`
	City       string    `gorm:"type:varchar(100);not null"`
	Province   string    `gorm:"type:varchar(100);not null"`
	PostalCode string    `gorm:"type:varchar(20);not null"`
	Country    string    `gorm:"type:varchar(100);not null"`

	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`

	Category      string `gorm:"type:varchar(50);not null;index"`
	Accessibility string `gorm:"type:text;not null"`

	SubmittedBy string `gorm:"type:varchar(100);not null;index"`

	AverageRating float64 `gorm:"not null;default:0"`
	ReviewCount   int64   `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
}

func (LocationModel) TableName() string {
	return "locations"
}
