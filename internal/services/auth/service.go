package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"placement-portal-backend/internal/models"
	apperrors "placement-portal-backend/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type Service struct {
	db     *gorm.DB
	secret []byte
}

func NewService(db *gorm.DB, secret string) *Service {
	return &Service{db: db, secret: []byte(secret)}
}

type RegisterInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	CollegeName    string `json:"collegeName"`
	CollegeAddress string `json:"collegeAddress"`
	Password       string `json:"password"`
}

// RegisterPlacement creates a placement officer account pending admin
// approval.
func (s *Service) RegisterPlacement(input RegisterInput) (*models.Placement, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || strings.TrimSpace(input.Name) == "" || input.CollegeName == "" {
		return nil, apperrors.ValidationError{Field: "registration", Message: "name, email and college name are required"}
	}
	if len(input.Password) < 6 {
		return nil, apperrors.ValidationError{Field: "password", Message: "password too short (min 6)"}
	}

	var existing models.Placement
	if err := s.db.First(&existing, "LOWER(email) = ?", email).Error; err == nil {
		return nil, apperrors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	placement := &models.Placement{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(input.Name),
		Email:          email,
		Phone:          strings.TrimSpace(input.Phone),
		CollegeName:    strings.TrimSpace(input.CollegeName),
		CollegeAddress: strings.TrimSpace(input.CollegeAddress),
		PasswordHash:   hash,
		Status:         "pending",
	}
	if err := s.db.Create(placement).Error; err != nil {
		return nil, err
	}
	return placement, nil
}

func (s *Service) LoginPlacement(email, password string) (string, *models.Placement, error) {
	var placement models.Placement
	err := s.db.First(&placement, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(placement.PasswordHash, []byte(password)) != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	token, err := s.issueToken(placement.ID.String(), "placement")
	if err != nil {
		return "", nil, err
	}
	return token, &placement, nil
}

func (s *Service) LoginAdmin(email, password string) (string, *models.Admin, error) {
	var admin models.Admin
	err := s.db.First(&admin, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte(password)) != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	token, err := s.issueToken(admin.ID.String(), "admin")
	if err != nil {
		return "", nil, err
	}
	return token, &admin, nil
}

// EnsureAdmin seeds the default admin account on startup (idempotent).
func (s *Service) EnsureAdmin(email, password string) error {
	var count int64
	if err := s.db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Create(&models.Admin{
		ID:           uuid.New(),
		Name:         "Administrator",
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}).Error
}

func (s *Service) issueToken(subject, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates a bearer token and returns the subject id and role.
func ParseToken(secret, raw string) (uuid.UUID, string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", errors.New("invalid claims")
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", errors.New("invalid subject")
	}
	return id, role, nil
}
