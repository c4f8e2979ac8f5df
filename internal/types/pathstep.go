package types

import (
	"time"

	"github.com/google/uuid"
)

type PathStep struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SkillPathID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"skill_path_id"`
	SkillPath     *SkillPath `gorm:"constraint:OnDelete:CASCADE;foreignKey:SkillPathID;references:ID" json:"skill_path,omitempty"`
	StepNumber    int        `gorm:"column:step_number;not null" json:"step_number"`
	Title         string     `gorm:"column:title;not null" json:"title"`
	Description   string     `gorm:"column:description" json:"description"`
	DurationWeeks int        `gorm:"column:duration_weeks" json:"duration_weeks"`
	Milestone     bool       `gorm:"column:milestone;not null;default:false" json:"milestone"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`

	Progress      *Progress       `gorm:"foreignKey:StepID" json:"progress,omitempty"`
	StepResources []*StepResource `gorm:"foreignKey:StepID" json:"step_resources,omitempty"`
}

func (PathStep) TableName() string { return "path_step" }
