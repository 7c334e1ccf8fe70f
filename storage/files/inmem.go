package filestore

import (
	"os"
	"path"
	"sync"

	"github.com/pkg/errors"

	"github.com/raihan7913/devsecop-sub001/core"
)

// MemStore keeps files in memory. Used by tests and the dev server.
type MemStore struct {
	mutex sync.RWMutex
	files map[string][]byte
}

var _ core.FileStore = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{files: make(map[string][]byte)}
}

func (s *MemStore) WriteFile(p string, data []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.files[path.Clean(p)] = buf
	return nil
}

func (s *MemStore) ReadFile(p string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	data, ok := s.files[path.Clean(p)]
	if !ok {
		return nil, errors.Wrap(os.ErrNotExist, p)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

func (s *MemStore) Exists(p string) (bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	_, ok := s.files[path.Clean(p)]
	return ok, nil
}

// Paths returns the stored paths, for assertions.
func (s *MemStore) Paths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	return paths
}
