// Package settings reads and writes the host application's persisted settings,
// which exist once per user and optionally once per workspace.
package settings

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	errs "github.com/mozilla-ai/mcpmarket/internal/errors"
	"github.com/mozilla-ai/mcpmarket/internal/files"
	"github.com/mozilla-ai/mcpmarket/internal/perms"
)

// DefaultFileName is the name of the settings file inside the settings directory.
const DefaultFileName = "settings.json"

// Scope identifies which settings file a value belongs to.
type Scope string

const (
	// ScopeUser refers to the settings file in the user's home directory.
	ScopeUser Scope = "user"

	// ScopeWorkspace refers to the settings file in the current workspace.
	ScopeWorkspace Scope = "workspace"
)

var (
	// ErrSettingsLoadFailed is returned when a settings file exists but cannot be read or parsed.
	ErrSettingsLoadFailed = errors.New("failed to load settings")

	// ErrSettingsSaveFailed is returned when a settings file cannot be written.
	ErrSettingsSaveFailed = errors.New("failed to save settings")
)

var _ Loader = (*DefaultLoader)(nil)

// Loader loads settings for a workspace rooted at rootPath.
type Loader interface {
	Load(rootPath string) (*Settings, error)
}

// File is a single settings document and the path it is persisted to.
type File struct {
	Path     string
	Settings map[string]any
}

// Settings holds the user and workspace settings files.
type Settings struct {
	logger    hclog.Logger
	user      *File
	workspace *File
}

// DefaultLoader loads settings from '<dir>/<file>' under both the user's home directory and the workspace root.
type DefaultLoader struct {
	// Logger is optional, when nil logging is discarded.
	Logger hclog.Logger

	// HomeDir overrides the user's home directory.
	HomeDir string

	// DirName overrides the settings directory name, defaults to files.AppDirName().
	DirName string

	// FileName overrides the settings file name, defaults to DefaultFileName.
	// The extension selects the file format: .json, .toml, .yaml or .yml.
	FileName string
}

// Load reads the user and workspace settings. Missing files are treated as empty settings.
func (d *DefaultLoader) Load(rootPath string) (*Settings, error) {
	logger := d.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("settings")

	rootPath = strings.TrimSpace(rootPath)
	if rootPath == "" {
		return nil, fmt.Errorf("root path cannot be empty")
	}

	root, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("could not resolve workspace root '%s': %w", rootPath, err)
	}

	home := strings.TrimSpace(d.HomeDir)
	if home == "" {
		home, err = files.UserHomeDir()
		if err != nil {
			return nil, err
		}
	}
	home, err = filepath.Abs(home)
	if err != nil {
		return nil, fmt.Errorf("could not resolve home directory '%s': %w", d.HomeDir, err)
	}

	dir := strings.TrimSpace(d.DirName)
	if dir == "" {
		dir = files.AppDirName()
	}

	name := strings.TrimSpace(d.FileName)
	if name == "" {
		name = DefaultFileName
	}

	user, err := loadFile(filepath.Join(home, dir, name))
	if err != nil {
		return nil, err
	}

	workspace, err := loadFile(filepath.Join(root, dir, name))
	if err != nil {
		return nil, err
	}

	logger.Debug("Loaded settings", "user", user.Path, "workspace", workspace.Path)

	return &Settings{
		logger:    logger,
		user:      user,
		workspace: workspace,
	}, nil
}

// User returns the user settings file.
func (s *Settings) User() *File {
	return s.user
}

// Workspace returns the workspace settings file.
func (s *Settings) Workspace() *File {
	return s.workspace
}

// ForScope returns the settings file for the given scope, or nil for an unknown scope.
func (s *Settings) ForScope(scope Scope) *File {
	switch scope {
	case ScopeUser:
		return s.user
	case ScopeWorkspace:
		return s.workspace
	default:
		return nil
	}
}

// SetValue sets key to value in the settings for scope and writes the file to disk.
// All other keys in the file are preserved.
func (s *Settings) SetValue(scope Scope, key string, value any) error {
	f := s.ForScope(scope)
	if f == nil {
		return fmt.Errorf("%w: %s", errs.ErrInvalidScope, scope)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("settings key cannot be empty")
	}

	updated := maps.Clone(f.Settings)
	if updated == nil {
		updated = map[string]any{}
	}
	updated[key] = value

	if err := saveFile(f.Path, updated); err != nil {
		return err
	}

	f.Settings = updated
	s.logger.Debug("Saved settings", "scope", scope, "key", key, "path", f.Path)

	return nil
}

func loadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{Path: path, Settings: map[string]any{}}, nil
		}
		return nil, fmt.Errorf("%w: could not read settings file '%s': %w", ErrSettingsLoadFailed, path, err)
	}

	values, err := codecFor(path).decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: settings file '%s' could not be parsed: %w", ErrSettingsLoadFailed, path, err)
	}

	return &File{Path: path, Settings: values}, nil
}

func saveFile(path string, values map[string]any) error {
	data, err := codecFor(path).encode(values)
	if err != nil {
		return fmt.Errorf("%w: could not encode settings for '%s': %w", ErrSettingsSaveFailed, path, err)
	}

	if err := files.WriteFileAtomic(path, data, perms.SecureFile); err != nil {
		return fmt.Errorf("%w: %w", ErrSettingsSaveFailed, err)
	}

	return nil
}
