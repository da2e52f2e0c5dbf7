package recorded

import "recmgr/internal/model"

// EventKind identifies a completed mutation.
type EventKind string

const (
	EventDeleteRecorded      EventKind = "delete_recorded"
	EventAddVideoFile        EventKind = "add_video_file"
	EventUpdateVideoFileSize EventKind = "update_video_file_size"
	EventDeleteVideoFile     EventKind = "delete_video_file"
	EventChangeProtect       EventKind = "change_protect"
)

// Event is the payload delivered to an EventSink. Only the fields relevant to
// Kind are populated.
type Event struct {
	Kind        EventKind
	RecordedID  string
	VideoFileID string
	IsProtected bool

	// Recorded is the snapshot taken before deletion (EventDeleteRecorded only).
	Recorded *model.Recorded
}

// EventSink receives notifications of completed mutations.
// Notify is fire-and-forget: delivery problems are the sink's concern.
type EventSink interface {
	Notify(event Event)
}
