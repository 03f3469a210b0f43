package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plemaire/taskdeck/models"
)

func newStore(t *testing.T, dir, format string) *FileSnapshotStore {
	t.Helper()
	s := NewFileSnapshotStore()
	err := s.Initialize(map[string]string{
		"dataDir":        dir,
		"dataFileFormat": format,
	})
	if err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleSnapshot() Snapshot {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.Local)
	task := models.NewTask("Water the plants", "Personal", now)
	task.DueDate = "2024-06-12"
	task.Tags = []string{"home", "recurring"}
	task.Recurrence = models.RecurrenceWeekly
	task.Subtasks = []models.Subtask{models.NewSubtask("Fill the can")}
	return Snapshot{
		Tasks:      []models.Task{task},
		Categories: []string{"Work", "Personal"},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			s := newStore(t, t.TempDir(), format)
			want := sampleSnapshot()

			if err := s.Save(want); err != nil {
				t.Fatalf("Save() failed: %v", err)
			}
			got, err := s.Load()
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}

			if len(got.Tasks) != 1 {
				t.Fatalf("loaded %d tasks, want 1", len(got.Tasks))
			}
			lt, wt := got.Tasks[0], want.Tasks[0]
			if lt.ID != wt.ID || lt.Title != wt.Title || lt.DueDate != wt.DueDate {
				t.Errorf("task fields lost: got %+v, want %+v", lt, wt)
			}
			if lt.Recurrence != wt.Recurrence {
				t.Errorf("recurrence = %q, want %q", lt.Recurrence, wt.Recurrence)
			}
			if len(lt.Subtasks) != 1 || lt.Subtasks[0].Text != "Fill the can" {
				t.Errorf("subtasks lost: %+v", lt.Subtasks)
			}
			if len(got.Categories) != 2 || got.Categories[0] != "Work" {
				t.Errorf("categories = %v, want %v", got.Categories, want.Categories)
			}
		})
	}
}

func TestLoadMissingFilesFailsSoft(t *testing.T) {
	s := newStore(t, t.TempDir(), "json")
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() on an empty directory failed: %v", err)
	}
	if got.Tasks == nil || got.Categories == nil {
		t.Error("empty snapshot must have non-nil collections")
	}
	if len(got.Tasks) != 0 || len(got.Categories) != 0 {
		t.Errorf("snapshot = %+v, want empty", got)
	}
}

func TestLoadCorruptRecordFailsSoft(t *testing.T) {
	dir := t.TempDir()
	s := newStore(t, dir, "json")
	if err := s.Save(sampleSnapshot()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	// Corrupt only the tasks record; categories must survive.
	if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() with a corrupt record failed: %v", err)
	}
	if len(got.Tasks) != 0 {
		t.Errorf("corrupt tasks record should load empty, got %d", len(got.Tasks))
	}
	if len(got.Categories) != 2 {
		t.Errorf("categories should survive, got %v", got.Categories)
	}
}

func TestSaveNilCollections(t *testing.T) {
	s := newStore(t, t.TempDir(), "json")
	if err := s.Save(Snapshot{}); err != nil {
		t.Fatalf("Save() of a zero snapshot failed: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got.Tasks == nil || got.Categories == nil {
		t.Error("nil collections must round-trip as empty, not nil")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := newStore(t, dir, "json")
	if err := s.Save(sampleSnapshot()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestInitializeRejectsUnknownFormat(t *testing.T) {
	s := NewFileSnapshotStore()
	err := s.Initialize(map[string]string{
		"dataDir":        t.TempDir(),
		"dataFileFormat": "xml",
	})
	if err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}

func TestInitializeDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := NewFileSnapshotStore()
	if err := s.Initialize(map[string]string{"dataDir": dir}); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("data directory not created: %v", err)
	}
	if err := s.Save(sampleSnapshot()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "tasks.json")); err != nil {
		t.Errorf("default format should be json: %v", err)
	}
}

func TestBackupAndRestore(t *testing.T) {
	dir := t.TempDir()
	s := newStore(t, dir, "json")
	want := sampleSnapshot()
	if err := s.Save(want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	backupDir := filepath.Join(t.TempDir(), "backup")
	if err := s.Backup(backupDir); err != nil {
		t.Fatalf("Backup() failed: %v", err)
	}

	// Wipe the live data, then restore.
	if err := s.Save(Snapshot{}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := s.Restore(backupDir); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].Title != want.Tasks[0].Title {
		t.Errorf("restored tasks = %+v, want the backed up task", got.Tasks)
	}
	if len(got.Categories) != 2 {
		t.Errorf("restored categories = %v, want 2", got.Categories)
	}
}

func TestBackupWithNoDataIsNoop(t *testing.T) {
	s := newStore(t, t.TempDir(), "json")
	backupDir := filepath.Join(t.TempDir(), "backup")
	if err := s.Backup(backupDir); err != nil {
		t.Fatalf("Backup() of an empty store failed: %v", err)
	}
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("backup of an empty store created files: %v", entries)
	}
}

func TestRestoreFromEmptyDirLeavesDataAlone(t *testing.T) {
	s := newStore(t, t.TempDir(), "json")
	if err := s.Save(sampleSnapshot()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := s.Restore(t.TempDir()); err != nil {
		t.Fatalf("Restore() from an empty directory failed: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got.Tasks) != 1 {
		t.Errorf("restore from nothing wiped the data: %+v", got)
	}
}
