package fs

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
}

func TestOSFilesystemManager_ListTree(t *testing.T) {
	t.Run("lists files and directories beneath root", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a.ts"), "a")
		writeFile(t, filepath.Join(root, "2024", "01", "b.ts"), "b")
		if err := os.Mkdir(filepath.Join(root, "empty"), 0755); err != nil {
			t.Fatal(err)
		}

		m := NewOSFilesystemManager(nil)
		list, err := m.ListTree(root)
		if err != nil {
			t.Fatalf("ListTree() error = %v", err)
		}

		files := append([]string{}, list.Files...)
		sort.Strings(files)
		wantFiles := []string{
			filepath.Join(root, "2024", "01", "b.ts"),
			filepath.Join(root, "a.ts"),
		}
		if len(files) != len(wantFiles) {
			t.Fatalf("Files = %v, want %v", files, wantFiles)
		}
		for i := range wantFiles {
			if files[i] != wantFiles[i] {
				t.Errorf("Files[%d] = %q, want %q", i, files[i], wantFiles[i])
			}
		}

		dirs := append([]string{}, list.Directories...)
		sort.Strings(dirs)
		wantDirs := []string{
			filepath.Join(root, "2024"),
			filepath.Join(root, "2024", "01"),
			filepath.Join(root, "empty"),
		}
		if len(dirs) != len(wantDirs) {
			t.Fatalf("Directories = %v, want %v", dirs, wantDirs)
		}
		for i := range wantDirs {
			if dirs[i] != wantDirs[i] {
				t.Errorf("Directories[%d] = %q, want %q", i, dirs[i], wantDirs[i])
			}
		}
	})

	t.Run("applies config and ignore file patterns", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, IgnoreFileName), "@eaDir/\n")
		writeFile(t, filepath.Join(root, "show.ts"), "x")
		writeFile(t, filepath.Join(root, "show.ts.part"), "x")
		writeFile(t, filepath.Join(root, "@eaDir", "thumb.jpg"), "x")

		m := NewOSFilesystemManager([]string{"*.part"})
		list, err := m.ListTree(root)
		if err != nil {
			t.Fatalf("ListTree() error = %v", err)
		}

		if len(list.Files) != 1 || list.Files[0] != filepath.Join(root, "show.ts") {
			t.Errorf("Files = %v, want only show.ts", list.Files)
		}
		if len(list.Directories) != 0 {
			t.Errorf("Directories = %v, want none", list.Directories)
		}
	})

	t.Run("missing root fails", func(t *testing.T) {
		m := NewOSFilesystemManager(nil)
		if _, err := m.ListTree(filepath.Join(t.TempDir(), "missing")); err == nil {
			t.Error("ListTree() expected error for missing root")
		}
	})

	t.Run("file root fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		writeFile(t, path, "x")

		m := NewOSFilesystemManager(nil)
		if _, err := m.ListTree(path); err == nil {
			t.Error("ListTree() expected error for file root")
		}
	})
}

func TestOSFilesystemManager_Remove(t *testing.T) {
	m := NewOSFilesystemManager(nil)

	t.Run("removes file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.ts")
		writeFile(t, path, "a")

		if err := m.Remove(path); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if _, err := m.Stat(path); !os.IsNotExist(err) {
			t.Errorf("Stat() after Remove error = %v, want not exist", err)
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		if err := m.Remove(filepath.Join(t.TempDir(), "missing")); err == nil {
			t.Error("Remove() expected error")
		}
	})

	t.Run("refuses directories", func(t *testing.T) {
		dir := t.TempDir()
		if err := m.Remove(dir); err == nil {
			t.Error("Remove() expected error for directory")
		}
	})
}

func TestOSFilesystemManager_Directories(t *testing.T) {
	m := NewOSFilesystemManager(nil)

	t.Run("empty directory is removed", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "empty")
		if err := os.Mkdir(dir, 0755); err != nil {
			t.Fatal(err)
		}

		empty, err := m.IsEmptyDirectory(dir)
		if err != nil {
			t.Fatalf("IsEmptyDirectory() error = %v", err)
		}
		if !empty {
			t.Fatal("IsEmptyDirectory() = false, want true")
		}
		if err := m.RemoveDirectory(dir); err != nil {
			t.Fatalf("RemoveDirectory() error = %v", err)
		}
	})

	t.Run("non-empty directory is kept", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "keep.txt"), "x")

		empty, err := m.IsEmptyDirectory(dir)
		if err != nil {
			t.Fatalf("IsEmptyDirectory() error = %v", err)
		}
		if empty {
			t.Error("IsEmptyDirectory() = true, want false")
		}
		if err := m.RemoveDirectory(dir); err == nil {
			t.Error("RemoveDirectory() expected error for non-empty directory")
		}
	})

	t.Run("file is not a directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		writeFile(t, path, "x")

		if _, err := m.IsEmptyDirectory(path); err == nil {
			t.Error("IsEmptyDirectory() expected error for file")
		}
		if err := m.RemoveDirectory(path); err == nil {
			t.Error("RemoveDirectory() expected error for file")
		}
	})
}
