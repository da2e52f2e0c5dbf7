// Package event delivers lifecycle notifications to their consumers.
package event

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"recmgr/internal/config"
	"recmgr/internal/recorded"
)

// LogSink writes each event as a structured log line.
type LogSink struct {
	logger recorded.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger recorded.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(e recorded.Event) {
	args := []any{"kind", string(e.Kind)}
	if e.RecordedID != "" {
		args = append(args, "recorded_id", e.RecordedID)
	}
	if e.VideoFileID != "" {
		args = append(args, "video_file_id", e.VideoFileID)
	}
	if e.Kind == recorded.EventChangeProtect {
		args = append(args, "is_protected", e.IsProtected)
	}
	if e.Recorded != nil {
		args = append(args, "name", e.Recorded.Name)
	}
	s.logger.Info("event", args...)
}

// NopSink discards events.
type NopSink struct{}

func (NopSink) Notify(recorded.Event) {}

// record is the JSON line written by FileSink.
type record struct {
	Time        time.Time `json:"time"`
	Kind        string    `json:"kind"`
	RecordedID  string    `json:"recorded_id,omitempty"`
	VideoFileID string    `json:"video_file_id,omitempty"`
	IsProtected *bool     `json:"is_protected,omitempty"`
	Snapshot    *snapshot `json:"recorded,omitempty"`
}

type snapshot struct {
	Name       string    `json:"name"`
	ChannelID  string    `json:"channel_id"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	VideoFiles []string  `json:"video_files"`
	Size       int64     `json:"size"`
}

// FileSink appends events to a file as JSON lines for downstream consumers.
// Write failures are logged; Notify never fails.
type FileSink struct {
	mu     sync.Mutex
	file   *os.File
	enc    *json.Encoder
	clock  recorded.Clock
	logger recorded.Logger
}

// NewFileSink opens path for appending, creating it and its directory if needed.
func NewFileSink(path string, clock recorded.Clock, logger recorded.Logger) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating event directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening event file: %w", err)
	}
	return &FileSink{
		file:   f,
		enc:    json.NewEncoder(f),
		clock:  clock,
		logger: logger,
	}, nil
}

func (s *FileSink) Notify(e recorded.Event) {
	rec := record{
		Time:        s.clock.Now().UTC(),
		Kind:        string(e.Kind),
		RecordedID:  e.RecordedID,
		VideoFileID: e.VideoFileID,
	}
	if e.Kind == recorded.EventChangeProtect {
		protected := e.IsProtected
		rec.IsProtected = &protected
	}
	if r := e.Recorded; r != nil {
		snap := &snapshot{
			Name:       r.Name,
			ChannelID:  r.ChannelID,
			StartAt:    r.StartAt.UTC(),
			EndAt:      r.EndAt.UTC(),
			VideoFiles: make([]string, 0, len(r.VideoFiles)),
			Size:       r.TotalSize(),
		}
		for _, v := range r.VideoFiles {
			snap.VideoFiles = append(snap.VideoFiles, v.ID)
		}
		rec.Snapshot = snap
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(rec); err != nil {
		s.logger.Error("failed to write event", "kind", rec.Kind, "error", err)
	}
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// NewSinkFromConfig creates the sink selected by cfg.Type. An empty type means "log".
// The returned close function releases any resources held by the sink.
func NewSinkFromConfig(cfg config.EventsConfig, clock recorded.Clock, logger recorded.Logger) (recorded.EventSink, func() error, error) {
	noClose := func() error { return nil }

	switch cfg.Type {
	case "", "log":
		return NewLogSink(logger), noClose, nil
	case "none":
		return NopSink{}, noClose, nil
	case "file":
		if cfg.Path == "" {
			return nil, nil, fmt.Errorf("events path is required for type=file")
		}
		sink, err := NewFileSink(cfg.Path, clock, logger)
		if err != nil {
			return nil, nil, err
		}
		return sink, sink.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported events type: %q", cfg.Type)
	}
}

var (
	_ recorded.EventSink = (*LogSink)(nil)
	_ recorded.EventSink = NopSink{}
	_ recorded.EventSink = (*FileSink)(nil)
)
