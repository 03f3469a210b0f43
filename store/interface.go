package store

import "github.com/plemaire/taskdeck/models"

// Record keys of the two independently persisted collections.
const (
	RecordTasks      = "tasks"
	RecordCategories = "categories"
)

// Snapshot is the full persisted state: the two keyed records.
type Snapshot struct {
	Tasks      []models.Task
	Categories []string
}

// SnapshotStore defines the interface for snapshot persistence. The core
// treats it as a synchronous write-through: Save overwrites both records
// after every successful mutation, Load reads them back fail-soft.
type SnapshotStore interface {
	// Initialize configures the store with backend-specific settings such
	// as the data directory and record format. It must be called before any
	// other operation.
	Initialize(config map[string]string) error

	// Load reads both records. A record that is absent or fails to parse
	// yields an empty collection for that record; Load never surfaces a
	// read failure as an error, only environmental faults (e.g. a lock
	// that cannot be acquired).
	Load() (Snapshot, error)

	// Save overwrites both records with the given snapshot.
	Save(snapshot Snapshot) error

	// Backup copies the current record files into destinationDir.
	Backup(destinationDir string) error

	// Restore replaces the current record files with those found in
	// sourceDir. This operation is destructive to current data.
	Restore(sourceDir string) error

	// Close releases resources held by the store, such as file locks.
	Close() error
}
