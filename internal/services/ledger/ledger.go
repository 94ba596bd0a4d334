package ledger

import (
	"placement-portal-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Apply sets the credit balance of every candidate account sourced from
// the given roster file. Matching is by file id only, so accounts
// belonging to other files are never touched, and re-running with the
// same value leaves the same end state. Returns the number of accounts
// updated, which is zero for files that were never processed.
func Apply(db *gorm.DB, fileID uuid.UUID, credits int) (int64, error) {
	result := db.Model(&models.Candidate{}).
		Where("file_id = ?", fileID).
		Update("credits", credits)
	return result.RowsAffected, result.Error
}

// Count reports how many candidate accounts a propagation would reach.
func Count(db *gorm.DB, fileID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&models.Candidate{}).
		Where("file_id = ?", fileID).
		Count(&count).Error
	return count, err
}
