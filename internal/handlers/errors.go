package handler

import (
	"errors"
	"net/http"

	apperrors "placement-portal-backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// statusForError maps the service error taxonomy onto HTTP statuses.
// Illegal transitions and frozen files are conflicts; bad input is a
// plain 400.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrFileImmutable),
		errors.Is(err, apperrors.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrReasonRequired),
		errors.Is(err, apperrors.ErrCreditsOutOfRange),
		errors.Is(err, apperrors.ErrInvalidFileFormat):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	var verr apperrors.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}
