package handler

import (
	"fmt"
	"net/http"

	"placement-portal-backend/internal/logger"
	"placement-portal-backend/internal/services/auth"
	"placement-portal-backend/internal/services/lifecycle"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type AdminHandler struct {
	service *lifecycle.Service
	auth    *auth.Service
	log     zerolog.Logger
}

func NewAdminHandler(s *lifecycle.Service, a *auth.Service) *AdminHandler {
	return &AdminHandler{service: s, auth: a, log: logger.Get()}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	token, admin, err := h.auth.LoginAdmin(payload.Email, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "admin": admin})
}

func pathIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	placementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid placement ID"})
		return uuid.Nil, uuid.Nil, false
	}
	fileID, err := uuid.Parse(c.Param("fileId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file ID"})
		return uuid.Nil, uuid.Nil, false
	}
	return placementID, fileID, true
}

func (h *AdminHandler) ApproveFile(c *gin.Context) {
	placementID, fileID, ok := pathIDs(c)
	if !ok {
		return
	}
	file, err := h.service.Approve(placementID, fileID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.log.Info().Str("file_id", fileID.String()).Msg("file approved")
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("File %q approved", file.DisplayName()),
		"file":    file,
	})
}

func (h *AdminHandler) RejectFile(c *gin.Context) {
	placementID, fileID, ok := pathIDs(c)
	if !ok {
		return
	}
	var payload struct {
		RejectionReason string `json:"rejectionReason"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	file, err := h.service.Reject(placementID, fileID, payload.RejectionReason)
	if err != nil {
		respondError(c, err)
		return
	}
	h.log.Info().Str("file_id", fileID.String()).Str("reason", payload.RejectionReason).Msg("file rejected")
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("File %q rejected", file.DisplayName()),
		"file":    file,
	})
}

func (h *AdminHandler) ProcessFile(c *gin.Context) {
	placementID, fileID, ok := pathIDs(c)
	if !ok {
		return
	}
	file, stats, err := h.service.Process(placementID, fileID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.log.Info().
		Str("file_id", fileID.String()).
		Int("created", stats.Created).
		Int("skipped", stats.Skipped).
		Msg("file processed")
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("File %q processed: %d candidates created, %d skipped", file.DisplayName(), stats.Created, stats.Skipped),
		"stats":   stats,
		"file":    file,
	})
}

func (h *AdminHandler) UpdateFileCredits(c *gin.Context) {
	placementID, fileID, ok := pathIDs(c)
	if !ok {
		return
	}
	var payload struct {
		Credits *int `json:"credits"`
	}
	if err := c.BindJSON(&payload); err != nil || payload.Credits == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "credits value required"})
		return
	}
	file, updated, err := h.service.SetCredits(placementID, fileID, *payload.Credits)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":           fmt.Sprintf("File credits updated. %d candidates updated.", updated),
		"candidatesUpdated": updated,
		"file": gin.H{
			"id":       file.ID,
			"fileName": file.FileName,
			"credits":  file.Credits,
		},
	})
}

func (h *AdminHandler) BulkUpdateCredits(c *gin.Context) {
	placementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid placement ID"})
		return
	}
	var payload struct {
		Credits *int `json:"credits"`
	}
	if err := c.BindJSON(&payload); err != nil || payload.Credits == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "credits value required"})
		return
	}
	stats, err := h.service.BulkSetCredits(placementID, *payload.Credits)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Credits updated for %d processed files, %d candidates updated, %d files excluded",
			stats.FilesUpdated, stats.CandidatesUpdated, stats.FilesExcluded),
		"stats": stats,
	})
}

func (h *AdminHandler) ListFiles(c *gin.Context) {
	placementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid placement ID"})
		return
	}
	files, err := h.service.ListFiles(placementID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (h *AdminHandler) GetFileData(c *gin.Context) {
	placementID, fileID, ok := pathIDs(c)
	if !ok {
		return
	}
	rows, err := h.service.FileRows(placementID, fileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows, "recordCount": len(rows)})
}

func (h *AdminHandler) ListNotifications(c *gin.Context) {
	notifications, err := h.service.Notifications("admin")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
