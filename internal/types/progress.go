package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProgressStatusTodo       = "todo"
	ProgressStatusInProgress = "in_progress"
	ProgressStatusDone       = "done"
)

// Progress is 1:1 with PathStep, created at materialization time.
type Progress struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StepID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"step_id"`
	Step        *PathStep  `gorm:"constraint:OnDelete:CASCADE;foreignKey:StepID;references:ID" json:"step,omitempty"`
	Status      string     `gorm:"column:status;size:20;not null" json:"status"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	Notes       string     `gorm:"column:notes" json:"notes"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (Progress) TableName() string { return "progress" }
