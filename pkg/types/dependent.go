package types

// Dependent is one registered consumer checkout. Path is the primary key;
// registering the same path twice is a no-op.
type Dependent struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// DependentInfo is a Dependent plus its current liveness, as returned by
// the list operation.
type DependentInfo struct {
	Dependent
	Exists bool `json:"exists"`
}

// UpdateStatus is the outcome class for one dependent during a fan-out sync
type UpdateStatus string

const (
	// UpdateOK means the dependent's copy-only categories were refreshed
	UpdateOK UpdateStatus = "ok"

	// UpdateSkippedNotFound means the registered path no longer exists
	UpdateSkippedNotFound UpdateStatus = "skipped-not-found"

	// UpdateError means the sync failed for this dependent; other
	// dependents are unaffected
	UpdateError UpdateStatus = "error"
)

// UpdateOutcome is the per-dependent result of an update-all run
type UpdateOutcome struct {
	Dependent Dependent
	Status    UpdateStatus
	Err       error
}
