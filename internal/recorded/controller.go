package recorded

// RecordingController reports and stops in-progress recordings.
type RecordingController interface {
	// HasReserve reports whether a recording is active for the reservation.
	HasReserve(reserveID string) bool

	// Cancel stops the recording for the reservation.
	// Returns an error wrapping ErrReserveNotFound for an unknown reservation.
	Cancel(reserveID string, force bool) error
}
