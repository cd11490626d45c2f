package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Course struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	Slug          string       `gorm:"not null;index" json:"slug"`
	Title         string       `gorm:"not null" json:"title"`
	Description   string       `gorm:"not null" json:"description"`
	Price         float64      `gorm:"not null" json:"price"`
	Image         string       `gorm:"column:image" json:"image,omitempty"`
	CreatorID     snowflake.ID `gorm:"not null;index" json:"creator_id"`
	Category      string       `gorm:"not null" json:"category"`
	Level         string       `gorm:"not null;default:'Beginner'" json:"level"`
	DurationHours float64      `gorm:"column:duration_hours" json:"duration_hours,omitempty"`
	Active        bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

var Categories = []string{
	"Programming",
	"Design",
	"Business",
	"Marketing",
	"Photography",
	"Music",
	"Other",
}

var Levels = []string{
	"Beginner",
	"Intermediate",
	"Advanced",
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func ValidLevel(level string) bool {
	for _, l := range Levels {
		if l == level {
			return true
		}
	}
	return false
}
