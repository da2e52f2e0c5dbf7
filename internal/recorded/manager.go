package recorded

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"recmgr/internal/database/sqlc"
	"recmgr/internal/model"
)

// Manager coordinates the record store, the filesystem and the recording
// controller to add, update and delete recordings and their artifacts.
//
// Physical deletes and row deletes that follow a successful lookup are best
// effort: failures are logged and collected, never returned. Reconciler repairs
// whatever they leave behind.
type Manager struct {
	database   Database
	fsmgr      FilesystemManager
	resolver   PathResolver
	controller RecordingController
	events     EventSink
	dirs       Dirs
	retention  time.Duration
	logger     Logger
	clock      Clock
	idgen      IDGenerator
}

// AddVideoFileOption describes an existing file to start tracking as a video file.
type AddVideoFileOption struct {
	RecordedID          string
	ParentDirectoryName string // recorded directory alias
	FilePath            string // relative to the alias root
	Type                string
	Name                string
}

// NewManager creates a Manager. retentionDays bounds how long recorded history rows are kept.
func NewManager(database Database, fsmgr FilesystemManager, resolver PathResolver, controller RecordingController, events EventSink, dirs Dirs, retentionDays int, logger Logger, clock Clock, idgen IDGenerator) *Manager {
	return &Manager{
		database:   database,
		fsmgr:      fsmgr,
		resolver:   resolver,
		controller: controller,
		events:     events,
		dirs:       dirs,
		retention:  time.Duration(retentionDays) * 24 * time.Hour,
		logger:     logger,
		clock:      clock,
		idgen:      idgen,
	}
}

// Get returns a recording with everything it owns.
func (m *Manager) Get(recordedID string) (*model.Recorded, error) {
	recorded, err := m.database.FindRecordedByID(recordedID)
	if err != nil {
		return nil, fmt.Errorf("finding recorded: %w", err)
	}
	if recorded == nil {
		return nil, fmt.Errorf("%w: %s", ErrRecordedNotFound, recordedID)
	}
	return recorded, nil
}

// List returns every recording row, newest first.
func (m *Manager) List() ([]*sqlc.Recorded, error) {
	list, err := m.database.ListRecorded()
	if err != nil {
		return nil, fmt.Errorf("listing recorded: %w", err)
	}
	return list, nil
}

// Delete removes a recording, its files and its rows.
// Only a failed or empty initial lookup is returned as an error.
func (m *Manager) Delete(recordedID string) error {
	m.logger.Info("deleting recorded", "id", recordedID)

	recorded, err := m.database.FindRecordedByID(recordedID)
	if err != nil {
		return fmt.Errorf("finding recorded %s: %w", recordedID, err)
	}
	if recorded == nil {
		m.logger.Warn("recorded not found", "id", recordedID)
		return fmt.Errorf("%w: %s", ErrRecordedNotFound, recordedID)
	}

	var failures Failures

	// Stop the recording first if it is still running.
	if reserveID, ok := recorded.ActiveReserveID(); ok && m.controller.HasReserve(reserveID) {
		m.logger.Info("cancelling active recording", "id", recordedID, "reserve_id", reserveID)
		if err := m.controller.Cancel(reserveID, true); err != nil {
			failures.Record("cancel recording", reserveID, err)
			m.logger.Error("failed to cancel recording", "reserve_id", reserveID, "error", err)
		}
	}

	for i := range recorded.Thumbnails {
		thumbnail := &recorded.Thumbnails[i]
		path, ok := m.dirs.ThumbnailPath(thumbnail)
		if !ok {
			failures.Record("resolve thumbnail", thumbnail.ID, ErrPathUnresolved)
			m.logger.Error("cannot resolve thumbnail path", "id", thumbnail.ID, "file_path", thumbnail.FilePath)
			continue
		}
		m.removeFile(&failures, path)
	}

	for i := range recorded.VideoFiles {
		videoFile := &recorded.VideoFiles[i]
		path, ok := m.resolver.VideoFileFullPath(videoFile)
		if !ok {
			failures.Record("resolve video file", videoFile.ID, ErrPathUnresolved)
			m.logger.Error("cannot resolve video file path", "id", videoFile.ID,
				"parent_directory", videoFile.ParentDirectoryName, "file_path", videoFile.FilePath)
			continue
		}
		m.removeFile(&failures, path)
	}

	if recorded.DropLogFile != nil {
		if path, ok := m.dirs.DropLogPath(recorded.DropLogFile); ok {
			m.removeFile(&failures, path)
		} else {
			failures.Record("resolve drop log", recorded.DropLogFile.ID, ErrPathUnresolved)
			m.logger.Error("cannot resolve drop log path", "id", recorded.DropLogFile.ID,
				"file_path", recorded.DropLogFile.FilePath)
		}
	}

	if recorded.HasThumbnails() {
		m.deleteRows(&failures, "delete thumbnail rows", recordedID, m.database.DeleteThumbnailsByRecordedID(recordedID))
	}
	if recorded.HasVideoFiles() {
		m.deleteRows(&failures, "delete video file rows", recordedID, m.database.DeleteVideoFilesByRecordedID(recordedID))
	}
	m.deleteRows(&failures, "delete recorded row", recordedID, m.database.DeleteRecorded(recordedID))
	if recorded.DropLogFile != nil {
		m.deleteRows(&failures, "delete drop log row", recorded.DropLogFile.ID, m.database.DeleteDropLogFile(recorded.DropLogFile.ID))
	}

	if failures.Len() > 0 {
		m.logger.Warn("recorded deleted with failures", "id", recordedID, "failures", failures.Len(), "error", failures.Err())
	} else {
		m.logger.Info("recorded deleted", "id", recordedID)
	}

	m.events.Notify(Event{Kind: EventDeleteRecorded, RecordedID: recordedID, Recorded: recorded})
	return nil
}

// UpdateVideoFileSize re-reads a video file's size from disk and stores it.
func (m *Manager) UpdateVideoFileSize(videoFileID string) error {
	m.logger.Info("updating video file size", "id", videoFileID)

	path, err := m.resolver.VideoFilePath(videoFileID)
	if err != nil {
		if errors.Is(err, ErrVideoFileNotFound) || errors.Is(err, ErrPathUnresolved) {
			m.logger.Error("video file is not found", "id", videoFileID, "error", err)
			return fmt.Errorf("%w: %w", ErrVideoFileNotFound, err)
		}
		return fmt.Errorf("resolving video file %s: %w", videoFileID, err)
	}

	info, err := m.fsmgr.Stat(path)
	if err != nil {
		return fmt.Errorf("stat video file: %w", err)
	}

	n, err := m.database.UpdateVideoFileSize(videoFileID, info.Size())
	if err != nil {
		return fmt.Errorf("updating video file size: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrVideoFileNotFound, videoFileID)
	}

	m.events.Notify(Event{Kind: EventUpdateVideoFileSize, VideoFileID: videoFileID})
	return nil
}

// AddVideoFile starts tracking a file that already exists under a recorded directory.
// Returns the new video file id.
func (m *Manager) AddVideoFile(opt AddVideoFileOption) (string, error) {
	m.logger.Info("adding video file", "recorded_id", opt.RecordedID,
		"parent_directory", opt.ParentDirectoryName, "file_path", opt.FilePath)

	root, ok := m.resolver.ParentDirPath(opt.ParentDirectoryName)
	if !ok {
		m.logger.Error("parent directory is not configured", "name", opt.ParentDirectoryName)
		return "", fmt.Errorf("%w: %s", ErrParentDirectoryUnresolved, opt.ParentDirectoryName)
	}
	if !filepath.IsLocal(opt.FilePath) {
		return "", fmt.Errorf("%w: %s is not a path inside %s", ErrPathUnresolved, opt.FilePath, opt.ParentDirectoryName)
	}

	info, err := m.fsmgr.Stat(filepath.Join(root, opt.FilePath))
	if err != nil {
		return "", fmt.Errorf("stat video file: %w", err)
	}

	videoFile := &sqlc.VideoFile{
		ID:                  m.idgen.New(),
		RecordedID:          opt.RecordedID,
		ParentDirectoryName: opt.ParentDirectoryName,
		FilePath:            opt.FilePath,
		Type:                opt.Type,
		Name:                opt.Name,
		Size:                info.Size(),
	}
	if err := m.database.CreateVideoFile(videoFile); err != nil {
		m.logger.Error("failed to add video file",
			"path", filepath.Join(opt.ParentDirectoryName, opt.FilePath), "error", err)
		return "", fmt.Errorf("creating video file: %w", err)
	}

	m.events.Notify(Event{Kind: EventAddVideoFile, RecordedID: opt.RecordedID, VideoFileID: videoFile.ID})
	return videoFile.ID, nil
}

// DeleteVideoFile removes one video file. When it was the owner's last video
// file, the owning recording is deleted as well.
func (m *Manager) DeleteVideoFile(videoFileID string) error {
	m.logger.Info("deleting video file", "id", videoFileID)

	videoFile, err := m.database.FindVideoFileByID(videoFileID)
	if err != nil {
		return fmt.Errorf("finding video file %s: %w", videoFileID, err)
	}
	if videoFile == nil {
		m.logger.Info("video file not found", "id", videoFileID)
		return fmt.Errorf("%w: %s", ErrVideoFileNotFound, videoFileID)
	}

	var failures Failures
	if path, ok := m.resolver.VideoFileFullPath(videoFile); ok {
		m.removeFile(&failures, path)
	} else {
		failures.Record("resolve video file", videoFileID, ErrPathUnresolved)
		m.logger.Error("cannot resolve video file path", "id", videoFileID,
			"parent_directory", videoFile.ParentDirectoryName)
	}

	if err := m.database.DeleteVideoFile(videoFileID); err != nil {
		return fmt.Errorf("deleting video file row %s: %w", videoFileID, err)
	}

	owner, err := m.database.FindRecordedByID(videoFile.RecordedID)
	if err != nil {
		m.logger.Error("failed to reload recorded", "id", videoFile.RecordedID, "error", err)
	} else if owner != nil && !owner.HasVideoFiles() {
		m.logger.Info("recorded has no video files left", "id", owner.ID)
		if err := m.Delete(owner.ID); err != nil {
			m.logger.Error("failed to delete empty recorded", "id", owner.ID, "error", err)
		}
		return nil
	}

	m.events.Notify(Event{Kind: EventDeleteVideoFile, RecordedID: videoFile.RecordedID, VideoFileID: videoFileID})
	return nil
}

// ChangeProtect sets or clears the protect flag of a recording.
func (m *Manager) ChangeProtect(recordedID string, isProtected bool) error {
	if isProtected {
		m.logger.Info("set protect", "id", recordedID)
	} else {
		m.logger.Info("remove protect", "id", recordedID)
	}

	n, err := m.database.UpdateRecordedProtect(recordedID, isProtected)
	if err != nil {
		return fmt.Errorf("updating protect flag: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRecordedNotFound, recordedID)
	}

	m.events.Notify(Event{Kind: EventChangeProtect, RecordedID: recordedID, IsProtected: isProtected})
	return nil
}

// HistoryCleanup deletes recorded history rows older than the retention window
// and returns how many were removed. Store failures are logged only.
func (m *Manager) HistoryCleanup() int64 {
	cutoff := m.clock.Now().Add(-m.retention)

	n, err := m.database.DeleteRecordedHistoryBefore(cutoff)
	if err != nil {
		m.logger.Error("failed to clean up recorded history", "cutoff", cutoff, "error", err)
		return 0
	}

	m.logger.Info("recorded history cleaned up", "cutoff", cutoff, "removed", n)
	return n
}

func (m *Manager) removeFile(failures *Failures, path string) {
	m.logger.Info("deleting file", "path", path)
	if err := m.fsmgr.Remove(path); err != nil {
		failures.Record("remove file", path, err)
		m.logger.Error("failed to delete file", "path", path, "error", err)
	}
}

func (m *Manager) deleteRows(failures *Failures, op, target string, err error) {
	if failures.Record(op, target, err) {
		m.logger.Error("failed to "+op, "target", target, "error", err)
	}
}
