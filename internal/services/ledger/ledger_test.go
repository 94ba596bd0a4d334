package ledger_test

import (
	"fmt"
	"testing"

	"placement-portal-backend/internal/models"
	"placement-portal-backend/internal/services/ledger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Candidate{}))
	return db
}

func addCandidate(t *testing.T, db *gorm.DB, fileID *uuid.UUID, email string, credits int) uuid.UUID {
	t.Helper()
	c := &models.Candidate{
		ID:          uuid.New(),
		Name:        "Student",
		Email:       email,
		Credits:     credits,
		PlacementID: uuid.New(),
		FileID:      fileID,
		Status:      "active",
	}
	require.NoError(t, db.Create(c).Error)
	return c.ID
}

func TestApplyTargetsOnlyMatchingFile(t *testing.T) {
	db := setupDB(t)
	fileA := uuid.New()
	fileB := uuid.New()

	addCandidate(t, db, &fileA, "a1@example.edu", 5)
	addCandidate(t, db, &fileA, "a2@example.edu", 5)
	otherID := addCandidate(t, db, &fileB, "b1@example.edu", 5)
	legacyID := addCandidate(t, db, nil, "legacy@example.edu", 5)

	updated, err := ledger.Apply(db, fileA, 80)
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)

	var credits []int
	require.NoError(t, db.Model(&models.Candidate{}).Where("file_id = ?", fileA).Pluck("credits", &credits).Error)
	for _, c := range credits {
		assert.Equal(t, 80, c)
	}

	for _, id := range []uuid.UUID{otherID, legacyID} {
		var c models.Candidate
		require.NoError(t, db.First(&c, "id = ?", id).Error)
		assert.Equal(t, 5, c.Credits)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := setupDB(t)
	fileID := uuid.New()
	addCandidate(t, db, &fileID, "x@example.edu", 0)

	first, err := ledger.Apply(db, fileID, 42)
	require.NoError(t, err)
	second, err := ledger.Apply(db, fileID, 42)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var c models.Candidate
	require.NoError(t, db.First(&c, "email = ?", "x@example.edu").Error)
	assert.Equal(t, 42, c.Credits)
}

func TestApplyNoCandidates(t *testing.T) {
	db := setupDB(t)

	updated, err := ledger.Apply(db, uuid.New(), 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, updated)
}

func TestCount(t *testing.T) {
	db := setupDB(t)
	fileID := uuid.New()
	addCandidate(t, db, &fileID, "c1@example.edu", 0)
	addCandidate(t, db, &fileID, "c2@example.edu", 0)

	count, err := ledger.Count(db, fileID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
