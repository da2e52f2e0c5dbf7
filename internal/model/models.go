package model

import "recmgr/internal/database/sqlc"

// Recorded is one captured program together with the artifacts it owns.
// Children are loaded by parent id; they never reference the aggregate back.
type Recorded struct {
	sqlc.Recorded
	Thumbnails  []sqlc.Thumbnail
	VideoFiles  []sqlc.VideoFile
	DropLogFile *sqlc.DropLogFile // nil when no drop log is attached
}

// HasThumbnails reports whether the recording owns any thumbnail rows.
func (r *Recorded) HasThumbnails() bool {
	return len(r.Thumbnails) > 0
}

// HasVideoFiles reports whether the recording owns any video file rows.
func (r *Recorded) HasVideoFiles() bool {
	return len(r.VideoFiles) > 0
}

// ActiveReserveID returns the reservation id while the recording is in progress.
func (r *Recorded) ActiveReserveID() (string, bool) {
	if !r.IsRecording || !r.ReserveID.Valid {
		return "", false
	}
	return r.ReserveID.String, true
}

// TotalSize sums the byte size of all owned video files.
func (r *Recorded) TotalSize() int64 {
	var total int64
	for _, v := range r.VideoFiles {
		total += v.Size
	}
	return total
}
