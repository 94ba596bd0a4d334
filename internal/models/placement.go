package models

import (
	"time"

	"github.com/google/uuid"
)

// Placement is a placement officer account owning uploaded rosters.
type Placement struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string
	Email          string `gorm:"uniqueIndex"`
	Phone          string
	CollegeName    string
	CollegeAddress string
	PasswordHash   []byte `json:"-"`
	Status         string `gorm:"index"`
	Approved       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
