package filestore

import (
	"io/ioutil"
	"os"
	pathpkg "path"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/raihan7913/devsecop-sub001/core"
)

// LocalStore keeps files on the local disk under a root directory.
type LocalStore struct {
	root string
}

var _ core.FileStore = (*LocalStore)(nil)

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// resolve anchors path at the root; ".." never climbs above it.
func (s *LocalStore) resolve(path string) string {
	return filepath.Join(s.root, filepath.FromSlash(pathpkg.Clean("/"+path)))
}

func (s *LocalStore) WriteFile(path string, data []byte) error {
	full := s.resolve(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.Wrap(err, "creating directory")
	}
	return errors.Wrap(ioutil.WriteFile(full, data, 0o644), "writing file")
}

func (s *LocalStore) ReadFile(path string) ([]byte, error) {
	data, err := ioutil.ReadFile(s.resolve(path))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	return data, nil
}

func (s *LocalStore) Exists(path string) (bool, error) {
	info, err := os.Stat(s.resolve(path))
	switch {
	case err == nil:
		return !info.IsDir(), nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, errors.Wrap(err, "checking file")
	}
}
