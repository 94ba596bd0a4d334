package models

import (
	"time"

	"github.com/google/uuid"
)

// Candidate is a student login account materialized from a roster row.
// FileID is a weak back-reference to the RosterFile the account came
// from; legacy accounts created before file tracking have none.
type Candidate struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name               string
	Email              string `gorm:"uniqueIndex"`
	Phone              string
	Course             string
	CollegeName        string
	PasswordHash       []byte `json:"-"`
	Credits            int
	RegistrationMethod string
	PlacementID        uuid.UUID  `gorm:"type:uuid;index"`
	FileID             *uuid.UUID `gorm:"type:uuid;index"`
	Verified           bool
	Status             string `gorm:"index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
