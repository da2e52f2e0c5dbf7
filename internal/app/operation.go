package app

import "recmgr/internal/recorded"

// Operation statuses stored in the operations journal.
const (
	StatusSuccess = "success"
	StatusPartial = "partial" // completed, but some best-effort steps failed
	StatusError   = "error"
)

// Operation tracks a CLI command that may mutate the record store or the filesystem.
// Operations are created in memory with ID=0. Only mutating commands persist
// them (giving them an auto-increment ID from the database).
type Operation struct {
	ID         int64
	Operation  string
	Parameters string
	Status     string
}

// NewOperation creates a new in-memory operation.
func NewOperation(operation, parameters string) *Operation {
	return &Operation{
		Operation:  operation,
		Parameters: parameters,
		Status:     StatusSuccess,
	}
}

// Persisted returns true if this operation has been saved to the database.
func (op *Operation) Persisted() bool {
	return op.ID != 0
}

// Fail marks the operation as failed. A failure is never downgraded.
func (op *Operation) Fail() {
	op.Status = StatusError
}

// Degrade marks the operation as partial when the sweep reported failures.
func (op *Operation) Degrade(report *recorded.SweepReport) {
	if report.Failures.Len() > 0 && op.Status == StatusSuccess {
		op.Status = StatusPartial
	}
}
