package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/provida/volunteer-portal/pkg/core/model"
)

const sessionDirName = ".provida-portal/sessions"

// storedSession is the on-disk form of a session. The rank is not stored: it is
// resolved against the level table in force when the session is loaded.
type storedSession struct {
	Key         string    `yaml:"key"`
	Name        string    `yaml:"name"`
	Email       string    `yaml:"email,omitempty"`
	Level       string    `yaml:"level"`
	Departments []string  `yaml:"departments,omitempty"`
	StartedAt   time.Time `yaml:"startedAt"`
}

func sessionFilePath(env string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, sessionDirName, fmt.Sprintf("session-%s.yaml", env)), nil
}

// SaveSession persists the session for env
func SaveSession(env string, session *model.Session) error {
	path, err := sessionFilePath(env)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), tokenDirPerms); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := yaml.Marshal(storedSession{
		Key:         session.Volunteer.Key,
		Name:        session.Volunteer.Name,
		Email:       session.Volunteer.Email,
		Level:       session.Volunteer.Level,
		Departments: session.Volunteer.Departments,
		StartedAt:   session.StartedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(path, data, tokenFilePerms); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// LoadSession loads the persisted session for env. A missing file yields nil, nil.
// Rank is left for the caller to resolve.
func LoadSession(env string) (*model.Session, error) {
	path, err := sessionFilePath(env)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var stored storedSession
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if stored.Key == "" {
		return nil, fmt.Errorf("session file %s has no volunteer key", path)
	}

	return &model.Session{
		Volunteer: model.Volunteer{
			Key:         stored.Key,
			Name:        stored.Name,
			Email:       stored.Email,
			Level:       stored.Level,
			Departments: stored.Departments,
		},
		StartedAt: stored.StartedAt,
	}, nil
}

// DeleteSession removes the persisted session for env
func DeleteSession(env string) error {
	path, err := sessionFilePath(env)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}
