package types

import (
	"time"

	"github.com/google/uuid"
)

// Resource is a globally shared catalog entry. The partial unique index on
// url is what resolves concurrent materializations racing to create the same
// resource; url-less rows (admin-entered) are exempt.
type Resource struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	URL         string    `gorm:"column:url;size:500;uniqueIndex:ux_resource_url,where:url <> ''" json:"url"`
	Type        string    `gorm:"column:type;size:50" json:"type"`
	Description string    `gorm:"column:description" json:"description"`
	Category    string    `gorm:"column:category;size:100" json:"category"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`

	StepResources []*StepResource `gorm:"foreignKey:ResourceID" json:"step_resources,omitempty"`
}

func (Resource) TableName() string { return "resource" }
