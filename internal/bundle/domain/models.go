package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Bundle struct {
	ID         snowflake.ID                `gorm:"primaryKey" json:"id"`
	Title      string                      `gorm:"not null" json:"title"`
	CourseIDs  datatypes.JSONSlice[string] `gorm:"column:course_ids;not null" json:"course_ids"`
	CreatorID  snowflake.ID                `gorm:"not null;index" json:"creator_id"`
	Image      string                      `gorm:"column:image" json:"image,omitempty"`
	TotalPrice float64                     `gorm:"not null" json:"total_price"`
	Discount   float64                     `gorm:"not null;default:0" json:"discount"`
	Active     bool                        `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ValidTitle reports whether the title is one of the three pack names.
func ValidTitle(title string) bool {
	switch title {
	case TierBasic.Title(), TierPremium.Title(), TierExclusive.Title():
		return true
	default:
		return false
	}
}
