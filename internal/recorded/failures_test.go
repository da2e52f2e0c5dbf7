package recorded

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestFailures(t *testing.T) {
	t.Run("zero value has no error", func(t *testing.T) {
		var f Failures
		if f.Len() != 0 || f.Err() != nil {
			t.Errorf("zero Failures = %d, %v; want 0, nil", f.Len(), f.Err())
		}
	})

	t.Run("nil errors are not recorded", func(t *testing.T) {
		var f Failures
		if f.Record("remove file", "/a", nil) {
			t.Error("Record(nil) = true, want false")
		}
		if f.Len() != 0 {
			t.Errorf("Len() = %d, want 0", f.Len())
		}
	})

	t.Run("keeps every failure in order", func(t *testing.T) {
		var f Failures
		f.Record("remove file", "/rec/a.ts", fs.ErrPermission)
		f.Record("delete recorded row", "r1", errors.New("database is locked"))

		items := f.Items()
		if len(items) != 2 || items[0].Target != "/rec/a.ts" || items[1].Op != "delete recorded row" {
			t.Fatalf("Items() = %+v", items)
		}

		err := f.Err()
		if !errors.Is(err, fs.ErrPermission) {
			t.Errorf("Err() = %v, want it to wrap fs.ErrPermission", err)
		}
		msg := err.Error()
		if !strings.Contains(msg, "remove file /rec/a.ts") || !strings.Contains(msg, "database is locked") {
			t.Errorf("Err() message = %q", msg)
		}
	})

	t.Run("items are a copy", func(t *testing.T) {
		var f Failures
		f.Record("op", "x", errors.New("boom"))
		items := f.Items()
		items[0].Target = "changed"
		if f.Items()[0].Target != "x" {
			t.Error("Items() exposed internal slice")
		}
	})
}

func TestSortDeepestFirst(t *testing.T) {
	dirs := []string{"/rec/a", "/rec/a/b/c", "/rec/x", "/rec/a/b"}
	sortDeepestFirst(dirs)

	pos := make(map[string]int)
	for i, d := range dirs {
		pos[d] = i
	}
	for _, pair := range [][2]string{{"/rec/a/b/c", "/rec/a/b"}, {"/rec/a/b", "/rec/a"}} {
		if pos[pair[0]] > pos[pair[1]] {
			t.Errorf("%s sorted after its parent %s: %v", pair[0], pair[1], dirs)
		}
	}
}

func TestTrimSeparator(t *testing.T) {
	tests := map[string]string{
		"/rec/":  "/rec",
		"/rec":   "/rec",
		"/":      "/",
		"/rec//": "/rec",
	}
	for in, want := range tests {
		if got := trimSeparator(in); got != want {
			t.Errorf("trimSeparator(%q) = %q, want %q", in, got, want)
		}
	}
}
