package credentials

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// tokenFileMode keeps the persisted credential readable by the owning user only.
const tokenFileMode = 0o600

// FileStore persists the token to a single well-known file so a login
// survives process restarts on the same machine. Writes go through a
// temporary file and a rename, so a concurrent reader observes either the
// previous token or the new one, never a partial write.
type FileStore struct {
	path string
	lock sync.RWMutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by the file at path, creating parent
// directories as needed.
func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("[NewFileStore] path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "[NewFileStore] os.MkdirAll")
	}
	return &FileStore{path: path}, nil
}

func (fs *FileStore) Get() (string, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", errors.Wrap(err, "[FileStore.Get] os.ReadFile")
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (fs *FileStore) Set(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("[FileStore.Set] token is required")
	}

	fs.lock.Lock()
	defer fs.lock.Unlock()

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), tokenFileMode); err != nil {
		return errors.Wrap(err, "[FileStore.Set] os.WriteFile")
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return errors.Wrap(err, "[FileStore.Set] os.Rename")
	}
	return nil
}

func (fs *FileStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	err := os.Remove(fs.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Clear] os.Remove")
	}
	return nil
}
