package secret

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
)

// FileStore keeps secrets in a JSON object on disk, readable by the owner
// only.
type FileStore struct {
	Path string
}

// DefaultPath returns ~/.shopsum/secrets.json for the given home directory.
func DefaultPath(homeDir string) string {
	return filepath.Join(homeDir, ".shopsum", "secrets.json")
}

func NewFileStore(homeDir string) *FileStore {
	return &FileStore{Path: DefaultPath(homeDir)}
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0600)
}

func (s *FileStore) Get(name string) (string, error) {
	values, err := s.read()
	if err != nil {
		return "", err
	}
	v, ok := values[name]
	if !ok || v == "" {
		return "", notFound(name)
	}
	return v, nil
}

// Set stores or replaces a secret.
func (s *FileStore) Set(name, value string) error {
	values, err := s.read()
	if err != nil {
		return err
	}
	values[name] = value
	return s.write(values)
}

// Remove deletes a secret. Removing an unknown name returns ErrNotFound.
func (s *FileStore) Remove(name string) error {
	values, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := values[name]; !ok {
		return notFound(name)
	}
	delete(values, name)
	return s.write(values)
}

// Names lists the stored secret names in sorted order.
func (s *FileStore) Names() ([]string, error) {
	values, err := s.read()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}
