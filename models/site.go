package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Site is a physical location owned by exactly one customer.
// Coordinates are decimal degrees and optional: a site without them still
// shows up in listings, it is only skipped by the map layer.
type Site struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"size:200;not null;index" json:"name"`
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customerId"`
	Customer   Customer  `gorm:"foreignKey:CustomerID" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Relationships
	Jobs []Job `gorm:"foreignKey:SiteID" json:"-"`
}

// BeforeCreate hook for Site
func (s *Site) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// HasCoordinates reports whether the site can be placed on the map.
func (s *Site) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}
