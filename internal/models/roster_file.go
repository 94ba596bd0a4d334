package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type FileStatus string

const (
	FileStatusPending   FileStatus = "pending"
	FileStatusApproved  FileStatus = "approved"
	FileStatusRejected  FileStatus = "rejected"
	FileStatusProcessed FileStatus = "processed"
)

// RosterFile is one uploaded student roster and its processing state.
// Lifecycle: pending -> approved -> processed, or pending -> rejected
// (terminal). A rejected file is resubmitted as a new record, never
// transitioned back.
type RosterFile struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlacementID       uuid.UUID `gorm:"type:uuid;index"`
	FileName          string
	CustomName        string
	University        string
	Batch             string
	ContentType       string
	FileData          []byte         `json:"-"`
	RowSnapshot       datatypes.JSON `json:"-"`
	RecordCount       int
	Status            FileStatus `gorm:"index"`
	Credits           int        `gorm:"default:0"`
	CandidatesCreated int
	RejectionReason   string
	Resubmitted       bool
	ResubmittedFrom   *uuid.UUID `gorm:"type:uuid"`
	UploadedAt        time.Time
	ProcessedAt       *time.Time
}

// DisplayName prefers the custom name set by the placement officer.
func (f *RosterFile) DisplayName() string {
	if f.CustomName != "" {
		return f.CustomName
	}
	return f.FileName
}
