package handler

import (
	"io"
	"net/http"
	"strings"

	"placement-portal-backend/internal/logger"
	"placement-portal-backend/internal/services/auth"
	"placement-portal-backend/internal/services/lifecycle"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type PlacementHandler struct {
	service *lifecycle.Service
	auth    *auth.Service
	log     zerolog.Logger
}

func NewPlacementHandler(s *lifecycle.Service, a *auth.Service) *PlacementHandler {
	return &PlacementHandler{service: s, auth: a, log: logger.Get()}
}

func (h *PlacementHandler) Register(c *gin.Context) {
	var input auth.RegisterInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	placement, err := h.auth.RegisterPlacement(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "registration submitted, awaiting approval",
		"placement": placement,
	})
}

func (h *PlacementHandler) Login(c *gin.Context) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	token, placement, err := h.auth.LoginPlacement(payload.Email, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "placement": placement})
}

func callerID(c *gin.Context) uuid.UUID {
	return c.MustGet("userID").(uuid.UUID)
}

// readUpload pulls the multipart file plus its metadata form fields.
func readUpload(c *gin.Context) (lifecycle.UploadInput, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return lifecycle.UploadInput{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return lifecycle.UploadInput{}, false
	}

	// Browsers often send CSVs as octet-stream; fall back to the extension.
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
			contentType = "text/csv"
		}
	}

	return lifecycle.UploadInput{
		FileName:    header.Filename,
		CustomName:  c.PostForm("customFileName"),
		University:  c.PostForm("university"),
		Batch:       c.PostForm("batch"),
		ContentType: contentType,
		Data:        data,
	}, true
}

func (h *PlacementHandler) UploadFile(c *gin.Context) {
	input, ok := readUpload(c)
	if !ok {
		return
	}
	file, err := h.service.Upload(callerID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	h.log.Info().
		Str("file_id", file.ID.String()).
		Int("records", file.RecordCount).
		Msg("roster uploaded")
	c.JSON(http.StatusCreated, gin.H{
		"message": "file uploaded, pending admin review",
		"file":    file,
	})
}

func (h *PlacementHandler) ResubmitFile(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("fileId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file ID"})
		return
	}
	input, ok := readUpload(c)
	if !ok {
		return
	}
	file, err := h.service.Resubmit(callerID(c), fileID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "file resubmitted, waiting for admin approval",
		"file":    file,
	})
}

func (h *PlacementHandler) ListMyFiles(c *gin.Context) {
	files, err := h.service.ListFiles(callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (h *PlacementHandler) ListMyCandidates(c *gin.Context) {
	candidates, err := h.service.ListCandidates(callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}
