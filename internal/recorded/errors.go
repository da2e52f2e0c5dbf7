package recorded

import "errors"

var (
	// ErrRecordedNotFound is returned when the target recording does not exist.
	ErrRecordedNotFound = errors.New("recorded not found")

	// ErrVideoFileNotFound is returned when the target video file does not exist
	// or its path cannot be resolved.
	ErrVideoFileNotFound = errors.New("video file not found")

	// ErrReserveNotFound is returned by a RecordingController for unknown reservations.
	ErrReserveNotFound = errors.New("reservation not found")

	// ErrParentDirectoryUnresolved is returned when a recorded directory alias is not configured.
	ErrParentDirectoryUnresolved = errors.New("parent directory unresolved")

	// ErrPathUnresolved is returned when a row cannot be mapped to an absolute path.
	ErrPathUnresolved = errors.New("path unresolved")
)
