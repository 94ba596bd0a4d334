package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"placement-portal-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRoster(t *testing.T, csv []byte, fields map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "students.csv")
	require.NoError(t, err)
	_, err = part.Write(csv)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func registerAndLogin(t *testing.T, r http.Handler) string {
	t.Helper()
	email := fmt.Sprintf("officer-%s@college.edu", uuid.NewString()[:8])
	resp := performRequest(r, http.MethodPost, "/api/placement/register", jsonBody(t, map[string]string{
		"name":        "Officer One",
		"email":       email,
		"phone":       "9876543210",
		"collegeName": "Test College",
		"password":    "pass1234",
	}), "", "application/json")
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = performRequest(r, http.MethodPost, "/api/placement/login", jsonBody(t, map[string]string{
		"email":    email,
		"password": "pass1234",
	}), "", "application/json")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var payload map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	token, _ := payload["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestPlacementUploadFlow(t *testing.T) {
	r, db := setupServer(t)
	token := registerAndLogin(t, r)

	csv := []byte("Name,Email,Phone,Course\nAsha,asha@example.edu,5551234,CSE\n")
	body, contentType := multipartRoster(t, csv, map[string]string{
		"customFileName": "CSE Batch 2026",
		"university":     "State University",
		"batch":          "2026",
	})
	resp := performRequest(r, http.MethodPost, "/api/placement/files", body, token, contentType)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var file models.RosterFile
	require.NoError(t, db.First(&file, "file_name = ?", "students.csv").Error)
	assert.Equal(t, models.FileStatusPending, file.Status)
	assert.Equal(t, "CSE Batch 2026", file.CustomName)
	assert.Equal(t, 1, file.RecordCount)

	// Uploaded files show up on the officer's own listing.
	resp = performRequest(r, http.MethodGet, "/api/placement/files", nil, token, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "CSE Batch 2026")
}

func TestPlacementUploadRejectsDuplicates(t *testing.T) {
	r, _ := setupServer(t)
	token := registerAndLogin(t, r)

	csv := []byte("Name,Email\nA,same@example.edu\nB,same@example.edu\n")
	body, contentType := multipartRoster(t, csv, nil)
	resp := performRequest(r, http.MethodPost, "/api/placement/files", body, token, contentType)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "duplicate emails")
}

func TestPlacementRegisterValidation(t *testing.T) {
	r, _ := setupServer(t)

	resp := performRequest(r, http.MethodPost, "/api/placement/register", jsonBody(t, map[string]string{
		"name":  "No Email",
		"email": "",
	}), "", "application/json")
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = performRequest(r, http.MethodPost, "/api/placement/register", jsonBody(t, map[string]string{
		"name":        "Short Password",
		"email":       "short@college.edu",
		"collegeName": "Test College",
		"password":    "abc",
	}), "", "application/json")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestPlacementUploadRequiresToken(t *testing.T) {
	r, _ := setupServer(t)

	csv := []byte("Name,Email\nA,a@example.edu\n")
	body, contentType := multipartRoster(t, csv, nil)
	resp := performRequest(r, http.MethodPost, "/api/placement/files", body, "", contentType)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// An admin token on a placement route is forbidden.
	token := adminToken(t, r)
	body, contentType = multipartRoster(t, csv, nil)
	resp = performRequest(r, http.MethodPost, "/api/placement/files", body, token, contentType)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}
