package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry is a timestamped log line on a job's timeline. CreatedBy is an
// opaque attribution string supplied by the auth layer when a logged-in
// actor posts the entry; AttachmentName is an optional filename reference.
type Entry struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Text           string    `gorm:"type:text;not null" json:"text"`
	When           JSONTime  `gorm:"column:when_at;type:timestamp;not null;index" json:"when"`
	JobID          uuid.UUID `gorm:"type:uuid;not null;index" json:"jobId"`
	Job            Job       `gorm:"foreignKey:JobID" json:"-"`
	CreatedBy      string    `gorm:"size:200" json:"createdBy,omitempty"`
	AttachmentName string    `gorm:"size:255" json:"attachmentName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// BeforeCreate hook for Entry
func (e *Entry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if time.Time(e.When).IsZero() {
		e.When = JSONTime(time.Now().UTC())
	}
	return
}
