package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SkillPath stores the user's original constraints alongside the accepted
// plan document (verbatim, for audit and re-display).
type SkillPath struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User             *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title            string         `gorm:"column:title;not null" json:"title"`
	Description      string         `gorm:"column:description" json:"description"`
	CareerGoal       string         `gorm:"column:career_goal;not null" json:"career_goal"`
	CurrentLevel     string         `gorm:"column:current_level;not null" json:"current_level"`
	Interests        string         `gorm:"column:interests" json:"interests"`
	WeeklyHours      int            `gorm:"column:weekly_hours;not null" json:"weekly_hours"`
	TimelineWeeks    int            `gorm:"column:timeline_weeks;not null" json:"timeline_weeks"`
	GeneratedContent datatypes.JSON `gorm:"column:generated_content" json:"generated_content"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`

	Steps []*PathStep `gorm:"foreignKey:SkillPathID" json:"steps,omitempty"`
}

func (SkillPath) TableName() string { return "skill_path" }
