package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	yaml "gopkg.in/yaml.v3"

	"github.com/plemaire/taskdeck/models"
)

const (
	defaultDataDir    = ".taskdeck/data"
	dataDirKey        = "dataDir"
	dataFileFormatKey = "dataFileFormat"
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	lockFileName      = ".lock"
)

// FileSnapshotStore implements SnapshotStore on a directory holding one file
// per record (tasks.json, categories.json). It supports JSON, YAML and TOML
// formats and uses file-level locking so concurrent CLI invocations
// serialize their writes.
type FileSnapshotStore struct {
	dataDir string
	format  string
	flk     *flock.Flock
}

// NewFileSnapshotStore creates a new instance of FileSnapshotStore.
// It does not initialize the store; Initialize must be called separately.
func NewFileSnapshotStore() *FileSnapshotStore {
	return &FileSnapshotStore{}
}

// Initialize configures the store. It expects a 'dataDir' key in the config
// map naming the snapshot directory, and an optional 'dataFileFormat' of
// json, yaml or toml (json by default). The directory is created if absent
// and a file lock established inside it.
func (s *FileSnapshotStore) Initialize(config map[string]string) error {
	if val, ok := config[dataDirKey]; ok && val != "" {
		s.dataDir = val
	} else {
		s.dataDir = defaultDataDir
	}

	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML, formatTOML:
			s.format = formatLower
		default:
			return fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml, toml", val)
		}
	} else {
		s.format = defaultDataFormat
	}

	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", s.dataDir, err)
	}

	s.flk = flock.New(filepath.Join(s.dataDir, lockFileName))
	return nil
}

// DataDir returns the directory holding the record files.
func (s *FileSnapshotStore) DataDir() string {
	return s.dataDir
}

// recordPath returns the file path of a record for the configured format.
func (s *FileSnapshotStore) recordPath(record string) string {
	return filepath.Join(s.dataDir, record+"."+s.format)
}

// Load reads both records under the file lock. Missing or unparseable
// records fail soft to empty collections.
func (s *FileSnapshotStore) Load() (Snapshot, error) {
	if err := s.flk.Lock(); err != nil {
		return Snapshot{}, fmt.Errorf("could not lock snapshot for load: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	return s.loadInternal(), nil
}

// loadInternal assumes the lock is held.
func (s *FileSnapshotStore) loadInternal() Snapshot {
	snapshot := Snapshot{Tasks: []models.Task{}, Categories: []string{}}

	if data, err := os.ReadFile(s.recordPath(RecordTasks)); err == nil {
		var tasks []models.Task
		if s.unmarshalRecord(data, &tasks, RecordTasks) == nil && tasks != nil {
			snapshot.Tasks = tasks
		}
	}
	if data, err := os.ReadFile(s.recordPath(RecordCategories)); err == nil {
		var categories []string
		if s.unmarshalRecord(data, &categories, RecordCategories) == nil && categories != nil {
			snapshot.Categories = categories
		}
	}
	return snapshot
}

// Save overwrites both records under the file lock. Each record is written
// to a temporary file and atomically renamed into place so readers never
// observe a partial write.
func (s *FileSnapshotStore) Save(snapshot Snapshot) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock snapshot for save: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if snapshot.Tasks == nil {
		snapshot.Tasks = []models.Task{}
	}
	if snapshot.Categories == nil {
		snapshot.Categories = []string{}
	}

	if err := s.saveRecord(RecordTasks, snapshot.Tasks); err != nil {
		return err
	}
	return s.saveRecord(RecordCategories, snapshot.Categories)
}

// tomlTasksDoc and tomlCategoriesDoc wrap the record arrays for TOML, which
// has no top-level array form.
type tomlTasksDoc struct {
	Tasks []models.Task `toml:"tasks"`
}

type tomlCategoriesDoc struct {
	Categories []string `toml:"categories"`
}

func (s *FileSnapshotStore) unmarshalRecord(data []byte, out interface{}, record string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	switch s.format {
	case formatJSON:
		return json.Unmarshal(data, out)
	case formatYAML:
		return yaml.Unmarshal(data, out)
	case formatTOML:
		switch v := out.(type) {
		case *[]models.Task:
			var doc tomlTasksDoc
			if err := toml.Unmarshal(data, &doc); err != nil {
				return err
			}
			*v = doc.Tasks
			return nil
		case *[]string:
			var doc tomlCategoriesDoc
			if err := toml.Unmarshal(data, &doc); err != nil {
				return err
			}
			*v = doc.Categories
			return nil
		default:
			return fmt.Errorf("unsupported TOML record type for %s", record)
		}
	default:
		return fmt.Errorf("unsupported data format for loading: %s", s.format)
	}
}

func (s *FileSnapshotStore) marshalRecord(value interface{}, record string) ([]byte, error) {
	switch s.format {
	case formatJSON:
		return json.MarshalIndent(value, "", "  ")
	case formatYAML:
		return yaml.Marshal(value)
	case formatTOML:
		var doc interface{}
		switch v := value.(type) {
		case []models.Task:
			doc = tomlTasksDoc{Tasks: v}
		case []string:
			doc = tomlCategoriesDoc{Categories: v}
		default:
			return nil, fmt.Errorf("unsupported TOML record type for %s", record)
		}
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to marshal TOML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported data format for saving: %s", s.format)
	}
}

// saveRecord writes one record via a temp file and atomic rename.
func (s *FileSnapshotStore) saveRecord(record string, value interface{}) error {
	data, err := s.marshalRecord(value, record)
	if err != nil {
		return fmt.Errorf("failed to marshal %s record to %s: %w", record, s.format, err)
	}

	path := s.recordPath(record)
	tempPath := path + ".tmp"
	defer func() { _ = os.Remove(tempPath) }()

	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary record file %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary record file %s to %s: %w", tempPath, path, err)
	}
	return nil
}

// Backup copies the current record files into destinationDir, creating it
// when needed.
func (s *FileSnapshotStore) Backup(destinationDir string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock snapshot for backup: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := os.MkdirAll(destinationDir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory %s: %w", destinationDir, err)
	}

	for _, record := range []string{RecordTasks, RecordCategories} {
		src := s.recordPath(record)
		data, err := os.ReadFile(src)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to read %s for backup: %w", src, err)
		}
		dst := filepath.Join(destinationDir, filepath.Base(src))
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("failed to write backup file %s: %w", dst, err)
		}
	}
	return nil
}

// Restore replaces the current record files with those found in sourceDir.
// Records absent from the backup are left untouched.
func (s *FileSnapshotStore) Restore(sourceDir string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock snapshot for restore: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	for _, record := range []string{RecordTasks, RecordCategories} {
		name := record + "." + s.format
		data, err := os.ReadFile(filepath.Join(sourceDir, name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to read backup file %s: %w", name, err)
		}

		path := s.recordPath(record)
		tempPath := path + ".tmp_restore"
		if err := os.WriteFile(tempPath, data, 0o644); err != nil {
			_ = os.Remove(tempPath)
			return fmt.Errorf("failed to write restored record to %s: %w", tempPath, err)
		}
		if err := os.Rename(tempPath, path); err != nil {
			_ = os.Remove(tempPath)
			return fmt.Errorf("failed to atomically replace %s: %w", path, err)
		}
	}
	return nil
}

// Close releases the file lock. flock.Unlock is idempotent, so Close is safe
// to call even when no lock is held.
func (s *FileSnapshotStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
