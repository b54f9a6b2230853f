package domain

import "errors"

// Domain errors.
var (
	// ErrCategoryNotFound is returned when a category cannot be found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrVideoNotFound is returned when a video cannot be found.
	ErrVideoNotFound = errors.New("video not found")

	// ErrEmptyCategoryName is returned when a category is created or renamed
	// with an empty name.
	ErrEmptyCategoryName = errors.New("category name cannot be empty")

	// ErrInvalidVideoURL is returned when the submitted video URL is not a
	// usable http(s) URL.
	ErrInvalidVideoURL = errors.New("invalid video URL")

	// ErrInvalidBackup is returned when an uploaded backup document does not
	// have the expected shape.
	ErrInvalidBackup = errors.New("invalid backup document")

	// ErrRestoreInProgress is returned when a restore is started while another
	// one is still running for this process.
	ErrRestoreInProgress = errors.New("restore already in progress")

	// ErrNoActiveRestore is returned when restore status is requested but no
	// restore has been started.
	ErrNoActiveRestore = errors.New("no active restore")
)

// RestoreError wraps an error with the restore phase it occurred in.
type RestoreError struct {
	Phase string
	Err   error
}

func (e *RestoreError) Error() string {
	return "restore " + e.Phase + ": " + e.Err.Error()
}

func (e *RestoreError) Unwrap() error {
	return e.Err
}

// NewRestoreError creates a new RestoreError.
func NewRestoreError(phase string, err error) *RestoreError {
	return &RestoreError{Phase: phase, Err: err}
}
