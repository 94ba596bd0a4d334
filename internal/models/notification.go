package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an event feed entry shown on the admin or placement
// dashboard after a lifecycle action.
type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string
	Message     string
	Type        string     `gorm:"index"`
	Role        string     `gorm:"index"`
	PlacementID *uuid.UUID `gorm:"type:uuid;index"`
	FileID      *uuid.UUID `gorm:"type:uuid"`
	Read        bool       `gorm:"default:false"`
	CreatedAt   time.Time
}
