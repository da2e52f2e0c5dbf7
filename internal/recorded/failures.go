package recorded

import (
	"errors"
	"fmt"
)

// Failure is one tolerated error from a best-effort step.
type Failure struct {
	Op     string // e.g. "remove file", "delete video file rows"
	Target string // path or row id
	Err    error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Op, f.Target, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Failures collects errors from steps that must not abort the surrounding loop.
// The zero value is ready to use.
type Failures struct {
	items []Failure
}

// Record adds err when it is non-nil and reports whether it did.
func (f *Failures) Record(op, target string, err error) bool {
	if err == nil {
		return false
	}
	f.items = append(f.items, Failure{Op: op, Target: target, Err: err})
	return true
}

// Len returns the number of recorded failures.
func (f *Failures) Len() int {
	return len(f.items)
}

// Items returns the recorded failures in the order they happened.
func (f *Failures) Items() []Failure {
	return append([]Failure(nil), f.items...)
}

// Err joins every recorded failure, or returns nil when there are none.
func (f *Failures) Err() error {
	if len(f.items) == 0 {
		return nil
	}
	errs := make([]error, len(f.items))
	for i, item := range f.items {
		errs[i] = item
	}
	return errors.Join(errs...)
}
