package record

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	rerrors "github.com/scio-ly/resultsmcp/internal/errors"
)

// Store reads tournament records from a directory of one YAML file per
// tournament. The store is read-only; it never writes derived state.
type Store struct {
	dir string
}

// NewStore creates a store over <dir>/<id>.yaml record files.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// List returns every tournament id in the store, sorted
// lexicographically. Ids are filenames with the extension stripped.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, rerrors.Wrap(rerrors.ErrCodeInternal, err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Read returns the raw record bytes for a tournament id.
func (s *Store) Read(id string) ([]byte, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, rerrors.TournamentNotFound(id)
		}
		return nil, rerrors.Wrap(rerrors.ErrCodeInternal, err)
	}
	return data, nil
}

// ModTime returns the record file's modification time, used as the
// freshness component of cache keys.
func (s *Store) ModTime(id string) (time.Time, error) {
	info, err := os.Stat(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, rerrors.TournamentNotFound(id)
		}
		return time.Time{}, rerrors.Wrap(rerrors.ErrCodeInternal, err)
	}
	return info.ModTime(), nil
}

// Load reads and parses one tournament record.
func (s *Store) Load(id string) (*Tournament, error) {
	data, err := s.Read(id)
	if err != nil {
		return nil, err
	}
	return Load(data, id)
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".yaml")
}
