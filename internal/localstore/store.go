// Package localstore persists the signed-out copy of tasks, folders and
// subtasks as a JSON key-value file. It is single-writer: only the CLI
// session owning the file mutates it.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	keyTodos    = "todos"
	keyFolders  = "folders"
	keySubtasks = "subtasks"
)

// Store is a JSON file holding one value per key
type Store struct {
	path string
	mu   sync.Mutex
}

// DefaultPath returns the local store location under the taskfold dir
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskfold", "local.json"), nil
}

// Open returns a store backed by the given file. The file is created
// lazily on first write.
func Open(path string) *Store {
	return &Store{path: path}
}

// Get returns the raw JSON stored under key, or nil if absent
func (s *Store) Get(key string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return nil, err
	}
	return data[key], nil
}

// Set stores raw JSON under key
func (s *Store) Set(key string, value json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	data[key] = value
	return s.write(data)
}

// Remove deletes the value under key
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	delete(data, key)
	return s.write(data)
}

// Clear wipes the whole local store
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(map[string]json.RawMessage{})
}

func (s *Store) read() (map[string]json.RawMessage, error) {
	data := make(map[string]json.RawMessage)

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return nil, fmt.Errorf("corrupt local store %s: %w", s.path, err)
	}
	return data, nil
}

func (s *Store) write(data map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(data)
}

// Todos returns the locally stored tasks
func (s *Store) Todos() ([]Task, error) {
	var tasks []Task
	if err := s.load(keyTodos, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SaveTodos replaces the locally stored tasks
func (s *Store) SaveTodos(tasks []Task) error {
	return s.save(keyTodos, tasks)
}

// Folders returns the locally stored folders
func (s *Store) Folders() ([]Folder, error) {
	var folders []Folder
	if err := s.load(keyFolders, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// SaveFolders replaces the locally stored folders
func (s *Store) SaveFolders(folders []Folder) error {
	return s.save(keyFolders, folders)
}

// Subtasks returns the locally stored subtasks grouped by task id
func (s *Store) Subtasks() (map[string][]Subtask, error) {
	groups := make(map[string][]Subtask)
	if err := s.load(keySubtasks, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// SaveSubtasks replaces the locally stored subtask groups
func (s *Store) SaveSubtasks(groups map[string][]Subtask) error {
	return s.save(keySubtasks, groups)
}

func (s *Store) load(key string, out interface{}) error {
	raw, err := s.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (s *Store) save(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(key, raw)
}
