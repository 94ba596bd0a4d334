package repository

import (
	"errors"
	"strings"

	"placement-portal-backend/internal/models"
	apperrors "placement-portal-backend/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

func (r *CandidateRepository) DB() *gorm.DB {
	return r.db
}

// FindByEmail matches case-insensitively; emails are stored lowercase
// but accounts created through older paths may not be.
func (r *CandidateRepository) FindByEmail(email string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.First(&candidate, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (r *CandidateRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Candidate{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

func (r *CandidateRepository) ListByFile(fileID uuid.UUID) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.Where("file_id = ?", fileID).Find(&candidates).Error
	return candidates, err
}

func (r *CandidateRepository) ListByPlacement(placementID uuid.UUID) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.
		Where("placement_id = ?", placementID).
		Order("created_at DESC").
		Find(&candidates).Error
	return candidates, err
}

func (r *CandidateRepository) Create(candidate *models.Candidate) error {
	return r.db.Create(candidate).Error
}
