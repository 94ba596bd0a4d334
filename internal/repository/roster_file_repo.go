package repository

import (
	"errors"

	"placement-portal-backend/internal/models"
	apperrors "placement-portal-backend/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RosterFileRepository struct {
	db *gorm.DB
}

func NewRosterFileRepository(db *gorm.DB) *RosterFileRepository {
	return &RosterFileRepository{db: db}
}

// Expose DB if needed
func (r *RosterFileRepository) DB() *gorm.DB {
	return r.db
}

func (r *RosterFileRepository) GetByID(id uuid.UUID) (*models.RosterFile, error) {
	var file models.RosterFile
	err := r.db.First(&file, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// GetOwned fetches a file and checks it belongs to the given officer.
func (r *RosterFileRepository) GetOwned(placementID, fileID uuid.UUID) (*models.RosterFile, error) {
	file, err := r.GetByID(fileID)
	if err != nil {
		return nil, err
	}
	if file.PlacementID != placementID {
		return nil, apperrors.ErrNotFound
	}
	return file, nil
}

func (r *RosterFileRepository) ListByPlacement(placementID uuid.UUID) ([]models.RosterFile, error) {
	var files []models.RosterFile
	err := r.db.
		Where("placement_id = ?", placementID).
		Order("uploaded_at DESC").
		Find(&files).Error
	return files, err
}

func (r *RosterFileRepository) Create(file *models.RosterFile) error {
	return r.db.Create(file).Error
}

func (r *RosterFileRepository) Save(file *models.RosterFile) error {
	return r.db.Save(file).Error
}
