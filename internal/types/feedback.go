package types

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SkillPathID *uuid.UUID `gorm:"type:uuid;index" json:"skill_path_id,omitempty"`
	SkillPath   *SkillPath `gorm:"constraint:OnDelete:SET NULL;foreignKey:SkillPathID;references:ID" json:"skill_path,omitempty"`
	Rating      int        `gorm:"column:rating;not null" json:"rating"`
	Comment     string     `gorm:"column:comment" json:"comment"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
}

func (Feedback) TableName() string { return "feedback" }
