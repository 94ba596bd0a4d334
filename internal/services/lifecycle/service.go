package lifecycle

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"placement-portal-backend/internal/logger"
	"placement-portal-backend/internal/models"
	"placement-portal-backend/internal/repository"
	"placement-portal-backend/internal/services/ledger"
	"placement-portal-backend/internal/services/roster"
	apperrors "placement-portal-backend/pkg/errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const maxCredits = 10000

// Service enforces the roster file state machine and coordinates the
// side effects of each transition: row snapshotting on approval,
// candidate materialization on processing, and credit propagation.
type Service struct {
	files         *repository.RosterFileRepository
	candidates    *repository.CandidateRepository
	placements    *repository.PlacementRepository
	notifications *repository.NotificationRepository
	db            *gorm.DB
	log           zerolog.Logger
}

func NewService(
	files *repository.RosterFileRepository,
	candidates *repository.CandidateRepository,
	placements *repository.PlacementRepository,
	notifications *repository.NotificationRepository,
) *Service {
	return &Service{
		files:         files,
		candidates:    candidates,
		placements:    placements,
		notifications: notifications,
		db:            files.DB(),
		log:           logger.Get(),
	}
}

// UploadInput carries one roster file as received from the officer.
type UploadInput struct {
	FileName    string
	CustomName  string
	University  string
	Batch       string
	ContentType string
	Data        []byte
}

// ProcessStats is returned by Process: rows turned into accounts vs
// rows skipped because the email already exists (or is missing).
type ProcessStats struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// BulkStats is returned by BulkSetCredits.
type BulkStats struct {
	FilesUpdated      int   `json:"filesUpdated"`
	FilesExcluded     int   `json:"filesExcluded"`
	CandidatesUpdated int64 `json:"candidatesUpdated"`
}

// Upload validates a roster and stores it as a new pending file.
func (s *Service) Upload(placementID uuid.UUID, input UploadInput) (*models.RosterFile, error) {
	placement, err := s.placements.GetByID(placementID)
	if err != nil {
		return nil, err
	}

	rows, err := roster.Parse(input.Data, input.ContentType)
	if err != nil {
		return nil, err
	}
	if err := roster.Validate(rows); err != nil {
		return nil, err
	}

	snapshot, err := json.Marshal(rows)
	if err != nil {
		return nil, err
	}

	file := &models.RosterFile{
		ID:          uuid.New(),
		PlacementID: placement.ID,
		FileName:    input.FileName,
		CustomName:  strings.TrimSpace(input.CustomName),
		University:  strings.TrimSpace(input.University),
		Batch:       strings.TrimSpace(input.Batch),
		ContentType: input.ContentType,
		FileData:    input.Data,
		RowSnapshot: snapshot,
		RecordCount: len(rows),
		Status:      models.FileStatusPending,
		UploadedAt:  time.Now(),
	}
	if err := s.files.Create(file); err != nil {
		return nil, err
	}

	s.notify(&models.Notification{
		Title:       "File Uploaded",
		Message:     fmt.Sprintf("%s uploaded file %q with %d records. Pending review.", placement.Name, file.DisplayName(), file.RecordCount),
		Type:        "file_uploaded",
		Role:        "admin",
		PlacementID: &placement.ID,
		FileID:      &file.ID,
	})
	return file, nil
}

// Approve moves a pending file to approved. The stored roster is
// re-parsed here so a file that no longer parses stays pending instead
// of getting stuck half-approved. Candidate accounts are not created
// until Process.
func (s *Service) Approve(placementID, fileID uuid.UUID) (*models.RosterFile, error) {
	file, err := s.files.GetOwned(placementID, fileID)
	if err != nil {
		return nil, err
	}
	if file.Status != models.FileStatusPending {
		return nil, fmt.Errorf("%w: cannot approve file in status %q", apperrors.ErrInvalidTransition, file.Status)
	}

	rows, err := roster.Parse(file.FileData, file.ContentType)
	if err != nil {
		return nil, err
	}
	snapshot, err := json.Marshal(rows)
	if err != nil {
		return nil, err
	}

	file.RowSnapshot = snapshot
	file.RecordCount = len(rows)
	file.Status = models.FileStatusApproved
	if err := s.files.Save(file); err != nil {
		return nil, err
	}

	s.notify(&models.Notification{
		Title:       "File Approved",
		Message:     fmt.Sprintf("Your file %q has been approved and is ready for processing.", file.DisplayName()),
		Type:        "file_approved",
		Role:        "placement",
		PlacementID: &file.PlacementID,
		FileID:      &file.ID,
	})
	return file, nil
}

// Reject moves a pending file to rejected, a terminal state. The reason
// is mandatory; it is shown to the officer so they can resubmit a
// corrected roster.
func (s *Service) Reject(placementID, fileID uuid.UUID, reason string) (*models.RosterFile, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.ErrReasonRequired
	}

	file, err := s.files.GetOwned(placementID, fileID)
	if err != nil {
		return nil, err
	}
	if file.Status != models.FileStatusPending {
		return nil, fmt.Errorf("%w: cannot reject file in status %q", apperrors.ErrInvalidTransition, file.Status)
	}

	now := time.Now()
	file.Status = models.FileStatusRejected
	file.RejectionReason = reason
	file.ProcessedAt = &now
	if err := s.files.Save(file); err != nil {
		return nil, err
	}

	s.notify(&models.Notification{
		Title:       "File Rejected",
		Message:     fmt.Sprintf("Your file %q has been rejected. Reason: %s. You can resubmit a corrected version.", file.DisplayName(), reason),
		Type:        "file_rejected",
		Role:        "placement",
		PlacementID: &file.PlacementID,
		FileID:      &file.ID,
	})
	return file, nil
}

// Process materializes candidate accounts from an approved file's row
// snapshot. Rows whose email already has an account are skipped, so
// re-uploading overlapping rosters never duplicates students. The
// file's current credit value is assigned to every account created.
func (s *Service) Process(placementID, fileID uuid.UUID) (*models.RosterFile, ProcessStats, error) {
	var stats ProcessStats

	file, err := s.files.GetOwned(placementID, fileID)
	if err != nil {
		return nil, stats, err
	}
	if file.Status != models.FileStatusApproved {
		return nil, stats, fmt.Errorf("%w: cannot process file in status %q", apperrors.ErrInvalidTransition, file.Status)
	}

	placement, err := s.placements.GetByID(file.PlacementID)
	if err != nil {
		return nil, stats, err
	}

	rows, err := s.snapshotRows(file)
	if err != nil {
		return nil, stats, err
	}

	for _, row := range rows {
		email := strings.ToLower(strings.TrimSpace(row.Email))
		if email == "" {
			stats.Skipped++
			continue
		}
		exists, err := s.candidates.ExistsByEmail(email)
		if err != nil {
			return nil, stats, err
		}
		if exists {
			stats.Skipped++
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(generatePassword()), bcrypt.DefaultCost)
		if err != nil {
			return nil, stats, err
		}
		name := row.Name
		if name == "" {
			name = fmt.Sprintf("Student %d", row.RowIndex)
		}
		candidate := &models.Candidate{
			ID:                 uuid.New(),
			Name:               name,
			Email:              email,
			Phone:              row.Phone,
			Course:             row.Course,
			CollegeName:        placement.CollegeName,
			PasswordHash:       hash,
			Credits:            file.Credits,
			RegistrationMethod: "placement",
			PlacementID:        placement.ID,
			FileID:             &file.ID,
			Verified:           true,
			Status:             "active",
		}
		if err := s.candidates.Create(candidate); err != nil {
			s.log.Error().Err(err).Str("email", email).Msg("candidate create failed")
			stats.Skipped++
			continue
		}
		stats.Created++
	}

	now := time.Now()
	file.Status = models.FileStatusProcessed
	file.CandidatesCreated = stats.Created
	file.ProcessedAt = &now
	if err := s.files.Save(file); err != nil {
		return nil, stats, err
	}

	s.notify(&models.Notification{
		Title:       "File Processed",
		Message:     fmt.Sprintf("File %q processed: %d accounts created, %d skipped.", file.DisplayName(), stats.Created, stats.Skipped),
		Type:        "file_processed",
		Role:        "admin",
		PlacementID: &file.PlacementID,
		FileID:      &file.ID,
	})
	return file, stats, nil
}

// SetCredits records a new credit value on the file and propagates it
// to every candidate account created from it. Valid in any state except
// rejected; before processing it simply records the value for later
// application and reports zero accounts updated.
func (s *Service) SetCredits(placementID, fileID uuid.UUID, credits int) (*models.RosterFile, int64, error) {
	if credits < 0 || credits > maxCredits {
		return nil, 0, apperrors.ErrCreditsOutOfRange
	}

	file, err := s.files.GetOwned(placementID, fileID)
	if err != nil {
		return nil, 0, err
	}
	if file.Status == models.FileStatusRejected {
		return nil, 0, apperrors.ErrFileImmutable
	}

	file.Credits = credits
	if err := s.files.Save(file); err != nil {
		return nil, 0, err
	}

	updated, err := ledger.Apply(s.db, file.ID, credits)
	if err != nil {
		return nil, 0, err
	}

	if updated > 0 {
		s.notify(&models.Notification{
			Title:       "Credits Updated",
			Message:     fmt.Sprintf("Credits for file %q set to %d; %d candidate accounts updated.", file.DisplayName(), credits, updated),
			Type:        "credits_updated",
			Role:        "placement",
			PlacementID: &file.PlacementID,
			FileID:      &file.ID,
		})
	}
	return file, updated, nil
}

// BulkSetCredits applies one credit value to every processed file of an
// officer. Files in any other state, rejected included, are counted as
// excluded and never touched. Each file is updated independently; a
// failure on one file is logged and the pass continues.
func (s *Service) BulkSetCredits(placementID uuid.UUID, credits int) (BulkStats, error) {
	var stats BulkStats

	if credits < 0 || credits > maxCredits {
		return stats, apperrors.ErrCreditsOutOfRange
	}
	placement, err := s.placements.GetByID(placementID)
	if err != nil {
		return stats, err
	}

	files, err := s.files.ListByPlacement(placement.ID)
	if err != nil {
		return stats, err
	}

	for i := range files {
		file := &files[i]
		if file.Status != models.FileStatusProcessed {
			stats.FilesExcluded++
			continue
		}
		file.Credits = credits
		if err := s.files.Save(file); err != nil {
			s.log.Error().Err(err).Str("file_id", file.ID.String()).Msg("bulk credit file update failed")
			continue
		}
		updated, err := ledger.Apply(s.db, file.ID, credits)
		if err != nil {
			s.log.Error().Err(err).Str("file_id", file.ID.String()).Msg("bulk credit propagation failed")
			continue
		}
		stats.FilesUpdated++
		stats.CandidatesUpdated += updated
	}

	s.notify(&models.Notification{
		Title:       "Bulk Credits Applied",
		Message:     fmt.Sprintf("Credits set to %d on %d processed files (%d candidates updated, %d files excluded).", credits, stats.FilesUpdated, stats.CandidatesUpdated, stats.FilesExcluded),
		Type:        "credits_updated",
		Role:        "admin",
		PlacementID: &placement.ID,
	})
	return stats, nil
}

// Resubmit lets an officer replace a rejected roster. The corrected
// upload becomes a brand-new pending file pointing back at the old one;
// the rejected record itself is never reopened.
func (s *Service) Resubmit(placementID, fileID uuid.UUID, input UploadInput) (*models.RosterFile, error) {
	old, err := s.files.GetOwned(placementID, fileID)
	if err != nil {
		return nil, err
	}
	if old.Status != models.FileStatusRejected {
		return nil, fmt.Errorf("%w: only rejected files can be resubmitted", apperrors.ErrInvalidTransition)
	}

	placement, err := s.placements.GetByID(placementID)
	if err != nil {
		return nil, err
	}

	rows, err := roster.Parse(input.Data, input.ContentType)
	if err != nil {
		return nil, err
	}
	if err := roster.Validate(rows); err != nil {
		return nil, err
	}
	snapshot, err := json.Marshal(rows)
	if err != nil {
		return nil, err
	}

	customName := strings.TrimSpace(input.CustomName)
	if customName == "" {
		customName = old.CustomName
	}
	university := strings.TrimSpace(input.University)
	if university == "" {
		university = old.University
	}
	batch := strings.TrimSpace(input.Batch)
	if batch == "" {
		batch = old.Batch
	}

	file := &models.RosterFile{
		ID:              uuid.New(),
		PlacementID:     placement.ID,
		FileName:        input.FileName,
		CustomName:      customName,
		University:      university,
		Batch:           batch,
		ContentType:     input.ContentType,
		FileData:        input.Data,
		RowSnapshot:     snapshot,
		RecordCount:     len(rows),
		Status:          models.FileStatusPending,
		Resubmitted:     true,
		ResubmittedFrom: &old.ID,
		UploadedAt:      time.Now(),
	}
	if err := s.files.Create(file); err != nil {
		return nil, err
	}

	s.notify(&models.Notification{
		Title:       "File Resubmitted",
		Message:     fmt.Sprintf("%s has resubmitted file %q after corrections. Please review.", placement.Name, file.DisplayName()),
		Type:        "file_resubmitted",
		Role:        "admin",
		PlacementID: &placement.ID,
		FileID:      &file.ID,
	})
	return file, nil
}

// GetFile fetches one file scoped to its owning officer.
func (s *Service) GetFile(placementID, fileID uuid.UUID) (*models.RosterFile, error) {
	return s.files.GetOwned(placementID, fileID)
}

// FileRows returns the parsed row snapshot of a file.
func (s *Service) FileRows(placementID, fileID uuid.UUID) ([]roster.Row, error) {
	file, err := s.files.GetOwned(placementID, fileID)
	if err != nil {
		return nil, err
	}
	return s.snapshotRows(file)
}

func (s *Service) ListFiles(placementID uuid.UUID) ([]models.RosterFile, error) {
	return s.files.ListByPlacement(placementID)
}

func (s *Service) ListCandidates(placementID uuid.UUID) ([]models.Candidate, error) {
	return s.candidates.ListByPlacement(placementID)
}

func (s *Service) Notifications(role string) ([]models.Notification, error) {
	return s.notifications.ListByRole(role, 50)
}

func (s *Service) snapshotRows(file *models.RosterFile) ([]roster.Row, error) {
	if len(file.RowSnapshot) > 0 {
		var rows []roster.Row
		if err := json.Unmarshal(file.RowSnapshot, &rows); err == nil && len(rows) > 0 {
			return rows, nil
		}
	}
	// Older records carry no snapshot; fall back to the raw bytes.
	return roster.Parse(file.FileData, file.ContentType)
}

// Notification failures never fail the operation that triggered them.
func (s *Service) notify(n *models.Notification) {
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	if err := s.notifications.Create(n); err != nil {
		s.log.Error().Err(err).Str("type", n.Type).Msg("notification create failed")
	}
}

func generatePassword() string {
	b := make([]byte, 6)
	rand.Read(b)
	return "pwd" + hex.EncodeToString(b)
}
