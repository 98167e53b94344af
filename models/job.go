package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job categories. The store does not hard-reject other strings, but these
// four are the first-class values used for grouping and demo seeding.
const (
	CategoryDomestic   = "Domestic"
	CategoryAg         = "Ag"
	CategoryDrilling   = "Drilling"
	CategoryElectrical = "Electrical"
)

// Categories lists the canonical job categories in display order.
func Categories() []string {
	return []string{CategoryDomestic, CategoryAg, CategoryDrilling, CategoryElectrical}
}

// DefaultJobStatus is applied when a job is created without a status.
const DefaultJobStatus = "Active"

// Job is a unit of work at a site. JobNumber is a free-text label and is
// not globally unique. UpdatedAt advances on every mutation of the job's
// own fields, never on mutation of its entries.
type Job struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobNumber string    `gorm:"size:100;not null;index" json:"jobNumber"`
	Category  string    `gorm:"size:50;not null" json:"category"`
	Status    string    `gorm:"size:50;not null" json:"status"`
	SiteID    uuid.UUID `gorm:"type:uuid;not null;index" json:"siteId"`
	Site      Site      `gorm:"foreignKey:SiteID" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relationships
	Entries []Entry `gorm:"foreignKey:JobID" json:"-"`
}

// BeforeCreate hook for Job
func (j *Job) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = DefaultJobStatus
	}
	return
}
