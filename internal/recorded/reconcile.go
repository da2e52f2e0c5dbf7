package recorded

import (
	"path/filepath"
	"sort"
	"strings"
)

// VideoFileDeleter removes a video file row and its file, cascading to the
// owning recording when needed. *Manager implements it.
type VideoFileDeleter interface {
	DeleteVideoFile(videoFileID string) error
}

// SweepReport summarises one reconciliation pass.
type SweepReport struct {
	RowsRemoved        int
	FilesRemoved       int
	DirectoriesRemoved int
	DirectoriesKept    int // untracked directories left because they were not empty
	Failures           Failures
}

// Mutations returns the number of rows, files and directories removed.
func (r *SweepReport) Mutations() int {
	return r.RowsRemoved + r.FilesRemoved + r.DirectoriesRemoved
}

// Reconciler repairs drift between stored rows and the files under the configured roots.
//
// Each sweep runs in two phases: build an index of tracked paths from the store
// (dropping rows whose file is gone), then remove whatever on disk is not in the
// index. Sweeps never return errors and are safe to repeat.
type Reconciler struct {
	database Database
	fsmgr    FilesystemManager
	resolver PathResolver
	videos   VideoFileDeleter
	dirs     Dirs
	logger   Logger
}

// NewReconciler creates a Reconciler.
func NewReconciler(database Database, fsmgr FilesystemManager, resolver PathResolver, videos VideoFileDeleter, dirs Dirs, logger Logger) *Reconciler {
	return &Reconciler{
		database: database,
		fsmgr:    fsmgr,
		resolver: resolver,
		videos:   videos,
		dirs:     dirs,
		logger:   logger,
	}
}

// ReconcileVideoFiles removes video file rows without a backing file, files
// under the recorded roots without a row, and untracked empty directories.
func (r *Reconciler) ReconcileVideoFiles() *SweepReport {
	r.logger.Info("video file reconciliation started")
	report := &SweepReport{}

	videoFiles, err := r.database.FindAllVideoFiles()
	if err != nil {
		// Without the row list every file would look orphaned.
		report.Failures.Record("list video files", "", err)
		r.logger.Error("failed to list video files", "error", err)
		return report
	}

	knownFiles := make(map[string]struct{})
	knownDirs := make(map[string]struct{})
	for _, videoFile := range videoFiles {
		path, ok := r.resolver.VideoFileFullPath(videoFile)
		if !ok {
			continue
		}

		if fileExists(r.fsmgr, path) {
			knownFiles[path] = struct{}{}
			knownDirs[trimSeparator(filepath.Dir(path))] = struct{}{}
			continue
		}

		r.logger.Warn("video file is missing", "id", videoFile.ID, "path", path)
		if err := r.videos.DeleteVideoFile(videoFile.ID); err != nil {
			report.Failures.Record("delete video file", videoFile.ID, err)
			r.logger.Debug("orphan video file row not removed", "id", videoFile.ID, "error", err)
			continue
		}
		report.RowsRemoved++
	}

	var list FileList
	for _, root := range r.resolver.RecordedDirs() {
		knownDirs[trimSeparator(root)] = struct{}{}

		l, err := r.fsmgr.ListTree(root)
		if err != nil {
			report.Failures.Record("list directory", root, err)
			r.logger.Error("failed to list recorded directory", "path", root, "error", err)
			continue
		}
		list.Files = append(list.Files, l.Files...)
		list.Directories = append(list.Directories, l.Directories...)
	}

	sortDeepestFirst(list.Directories)

	for _, file := range list.Files {
		if _, ok := knownFiles[file]; ok {
			continue
		}
		r.logger.Info("deleting orphan file", "path", file)
		if err := r.fsmgr.Remove(file); err != nil {
			report.Failures.Record("remove file", file, err)
			r.logger.Error("failed to delete file", "path", file, "error", err)
			continue
		}
		report.FilesRemoved++
	}

	for _, dir := range list.Directories {
		if _, ok := knownDirs[trimSeparator(dir)]; ok {
			continue
		}
		r.pruneDirectory(report, dir)
	}

	r.logger.Info("video file reconciliation completed",
		"rows_removed", report.RowsRemoved,
		"files_removed", report.FilesRemoved,
		"directories_removed", report.DirectoriesRemoved,
		"failures", report.Failures.Len())
	return report
}

// ReconcileDropLogs removes drop log rows without a backing file and files
// under the drop log root without a row.
func (r *Reconciler) ReconcileDropLogs() *SweepReport {
	r.logger.Info("drop log reconciliation started")
	report := &SweepReport{}

	dropLogs, err := r.database.FindAllDropLogFiles()
	if err != nil {
		report.Failures.Record("list drop log files", "", err)
		r.logger.Error("failed to list drop log files", "error", err)
		return report
	}

	knownFiles := make(map[string]struct{})
	for _, dropLog := range dropLogs {
		path, ok := r.dirs.DropLogPath(dropLog)
		if !ok {
			r.logger.Warn("skipping drop log with unresolvable path", "id", dropLog.ID, "file_path", dropLog.FilePath)
			continue
		}
		if fileExists(r.fsmgr, path) {
			knownFiles[path] = struct{}{}
			continue
		}

		r.logger.Warn("drop log file is missing", "id", dropLog.ID, "path", path)
		if err := r.database.RemoveDropLogFileReference(dropLog.ID); err != nil {
			report.Failures.Record("clear drop log reference", dropLog.ID, err)
			r.logger.Error("failed to clear drop log reference", "id", dropLog.ID, "error", err)
			continue
		}
		if err := r.database.DeleteDropLogFile(dropLog.ID); err != nil {
			report.Failures.Record("delete drop log row", dropLog.ID, err)
			r.logger.Error("failed to delete drop log row", "id", dropLog.ID, "error", err)
			continue
		}
		report.RowsRemoved++
	}

	list, err := r.fsmgr.ListTree(r.dirs.DropLog)
	if err != nil {
		report.Failures.Record("list directory", r.dirs.DropLog, err)
		r.logger.Error("failed to list drop log directory", "path", r.dirs.DropLog, "error", err)
		return report
	}

	for _, file := range list.Files {
		if _, ok := knownFiles[file]; ok {
			continue
		}
		r.logger.Info("deleting orphan drop log file", "path", file)
		if err := r.fsmgr.Remove(file); err != nil {
			report.Failures.Record("remove file", file, err)
			r.logger.Error("failed to delete drop log file", "path", file, "error", err)
			continue
		}
		report.FilesRemoved++
	}

	r.logger.Info("drop log reconciliation completed",
		"rows_removed", report.RowsRemoved,
		"files_removed", report.FilesRemoved,
		"failures", report.Failures.Len())
	return report
}

func (r *Reconciler) pruneDirectory(report *SweepReport, dir string) {
	empty, err := r.fsmgr.IsEmptyDirectory(dir)
	if err != nil {
		report.Failures.Record("check directory", dir, err)
		r.logger.Error("failed to read directory", "path", dir, "error", err)
		return
	}
	if !empty {
		report.DirectoriesKept++
		r.logger.Warn("directory is not empty", "path", dir)
		return
	}

	r.logger.Info("deleting directory", "path", dir)
	if err := r.fsmgr.RemoveDirectory(dir); err != nil {
		report.Failures.Record("remove directory", dir, err)
		r.logger.Error("failed to delete directory", "path", dir, "error", err)
		return
	}
	report.DirectoriesRemoved++
}

// sortDeepestFirst orders directories by descending path length so every
// directory comes after all of its descendants.
func sortDeepestFirst(dirs []string) {
	sort.SliceStable(dirs, func(i, j int) bool {
		return len(dirs[i]) > len(dirs[j])
	})
}

func trimSeparator(path string) string {
	trimmed := strings.TrimRight(path, string(filepath.Separator))
	if trimmed == "" {
		return path
	}
	return trimmed
}
