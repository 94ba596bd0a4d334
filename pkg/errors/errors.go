package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidTransition  = errors.New("invalid lifecycle transition")
	ErrFileImmutable      = errors.New("rejected files cannot be modified")
	ErrCreditsOutOfRange  = errors.New("credits must be between 0 and 10000")
	ErrReasonRequired     = errors.New("rejection reason is required")
	ErrInvalidFileFormat  = errors.New("invalid roster file format")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// ValidationError reports a bad value in user-supplied input, e.g.
// duplicate emails inside an uploaded roster.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}
