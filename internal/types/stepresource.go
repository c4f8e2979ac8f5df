package types

import (
	"github.com/google/uuid"
)

type StepResource struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StepID     uuid.UUID `gorm:"type:uuid;not null;index" json:"step_id"`
	Step       *PathStep `gorm:"constraint:OnDelete:CASCADE;foreignKey:StepID;references:ID" json:"step,omitempty"`
	ResourceID uuid.UUID `gorm:"type:uuid;not null;index" json:"resource_id"`
	Resource   *Resource `gorm:"constraint:OnDelete:CASCADE;foreignKey:ResourceID;references:ID" json:"resource,omitempty"`
}

func (StepResource) TableName() string { return "step_resource" }
