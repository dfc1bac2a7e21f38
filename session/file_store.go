package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/deepnoodle-ai/meetflow/workflow"
)

// ErrInvalidSessionID is returned when a session ID contains path
// separators, relative path components, or other characters that could
// cause path traversal.
var ErrInvalidSessionID = errors.New("invalid session ID")

// FileStore persists sessions as JSON files on disk, one file per session
// at {dir}/{session_id}.json. Save writes a temp file and renames it over
// the old snapshot, so a checkpoint is always either the old or the new
// snapshot, never a partial write.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a FileStore rooted at dir. The directory is
// created if it does not exist.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, dir[2:])
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// validateID rejects session IDs that could escape the store directory.
func validateID(id string) error {
	if id == "" || id == "." || id == ".." ||
		strings.ContainsAny(id, "/\\") ||
		strings.Contains(id, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}
	return nil
}

// path returns the file path for the given session ID after validating
// that the result is confined to the store directory.
func (s *FileStore) path(id string) (string, error) {
	if err := validateID(id); err != nil {
		return "", err
	}
	p := filepath.Clean(filepath.Join(s.dir, id+".json"))
	if !strings.HasPrefix(p, s.dir+string(filepath.Separator)) && p != s.dir {
		return "", fmt.Errorf("%w: %q resolves outside store directory", ErrInvalidSessionID, id)
	}
	return p, nil
}

func (s *FileStore) Create(ctx context.Context) (*Record, error) {
	record, err := newRecord()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeRecord(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *FileStore) Save(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := record.Copy()
	cp.UpdatedAt = time.Now()
	return s.writeRecord(cp)
}

func (s *FileStore) Load(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readRecord(id)
}

func (s *FileStore) ApplyPatch(ctx context.Context, id string, patch *workflow.Patch) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, err := s.readRecord(id)
	if err != nil {
		return nil, err
	}
	record.State.Apply(patch)
	record.UpdatedAt = time.Now()
	if err := s.writeRecord(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.path(id)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []*Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		record, err := s.readRecord(id)
		if err != nil {
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})
	return records, nil
}

// readRecord parses a session file. Must be called with at least a read
// lock held.
func (s *FileStore) readRecord(id string) (*Record, error) {
	p, err := s.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	record := &Record{}
	if err := json.Unmarshal(data, record); err != nil {
		return nil, err
	}
	if record.State == nil {
		record.State = workflow.NewState()
	}
	return record, nil
}

// writeRecord writes the session file atomically. Must be called with the
// write lock held.
func (s *FileStore) writeRecord(record *Record) error {
	p, err := s.path(record.ID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}
