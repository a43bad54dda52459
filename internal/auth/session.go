// Package auth persists the signed-in identity between CLI invocations.
// Session management itself (passwords, tokens) belongs to the external
// auth service; this file only records who is signed in.
package auth

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ermekov/taskfold/internal/config"
)

// Session is the signed-in identity, or absent when signed out
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

func sessionPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

// Current returns the active session, or nil when signed out
func Current() (*Session, error) {
	p, err := sessionPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.UserID == "" {
		return nil, nil
	}
	return &s, nil
}

// Save records a signed-in identity
func Save(s *Session) error {
	p, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0600)
}

// Clear signs out
func Clear() error {
	p, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
