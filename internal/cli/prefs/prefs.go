// Package prefs remembers the browse session between runs: the last selected
// user, the view mode and the readline history file.
package prefs

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	appDir      = "Linkshelf"
	prefsFile   = "browse.json"
	historyFile = "history"
)

// Prefs: то, что переживает перезапуск browse.
type Prefs struct {
	LastUser string `json:"last_user,omitempty"` // username
	View     string `json:"view,omitempty"`
}

// Store абстракция хранилища настроек сессии.
type Store interface {
	Save(p Prefs) error
	Load() (Prefs, error)
}

// FSStore: файловое хранилище в пользовательском конфиг-каталоге.
// Пустой Dir означает <UserConfigDir>/Linkshelf.
type FSStore struct {
	Dir string
}

func (s FSStore) dir() (string, error) {
	p := s.Dir
	if p == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(base, appDir)
	}
	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}
	return p, nil
}

// HistoryPath returns the readline history file, creating the directory if needed.
func (s FSStore) HistoryPath() (string, error) {
	dir, err := s.dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, historyFile), nil
}

// Save сохраняет настройки в файл.
func (s FSStore) Save(p Prefs) error {
	dir, err := s.dir()
	if err != nil {
		return err
	}
	p.LastUser = strings.TrimSpace(p.LastUser)
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, prefsFile), b, 0o600)
}

// Load читает настройки. Если файла нет, возвращает пустые Prefs без ошибки.
func (s FSStore) Load() (Prefs, error) {
	dir, err := s.dir()
	if err != nil {
		return Prefs{}, err
	}
	b, err := os.ReadFile(filepath.Join(dir, prefsFile))
	if errors.Is(err, os.ErrNotExist) {
		return Prefs{}, nil
	}
	if err != nil {
		return Prefs{}, err
	}
	var p Prefs
	if err := json.Unmarshal(b, &p); err != nil {
		return Prefs{}, err
	}
	return p, nil
}
