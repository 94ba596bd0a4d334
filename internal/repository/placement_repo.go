package repository

import (
	"errors"
	"strings"

	"placement-portal-backend/internal/models"
	apperrors "placement-portal-backend/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlacementRepository struct {
	db *gorm.DB
}

func NewPlacementRepository(db *gorm.DB) *PlacementRepository {
	return &PlacementRepository{db: db}
}

func (r *PlacementRepository) DB() *gorm.DB {
	return r.db
}

func (r *PlacementRepository) GetByID(id uuid.UUID) (*models.Placement, error) {
	var placement models.Placement
	err := r.db.First(&placement, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &placement, nil
}

func (r *PlacementRepository) FindByEmail(email string) (*models.Placement, error) {
	var placement models.Placement
	err := r.db.First(&placement, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &placement, nil
}

func (r *PlacementRepository) Create(placement *models.Placement) error {
	return r.db.Create(placement).Error
}
