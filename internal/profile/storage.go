package profile

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"hubctl/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	// profilesFileName is the name of the profiles configuration file.
	profilesFileName = "profiles.yaml"
	// userConfigDir is the subdirectory under home for hubctl configuration.
	userConfigDir = ".config/hubctl"
)

// Storage provides thread-safe access to the profiles configuration file.
type Storage struct {
	mu         sync.RWMutex
	configPath string
}

// NewStorage creates a Storage for ~/.config/hubctl/profiles.yaml.
func NewStorage() (*Storage, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine home directory: %w", err)
	}
	return &Storage{configPath: filepath.Join(homeDir, userConfigDir)}, nil
}

// NewStorageWithPath creates a Storage rooted at a custom config directory.
func NewStorageWithPath(configPath string) *Storage {
	return &Storage{configPath: configPath}
}

// FilePath returns the full path to the profiles file.
func (s *Storage) FilePath() string {
	return filepath.Join(s.configPath, profilesFileName)
}

// Load reads the profiles file. A missing file yields an empty Config.
func (s *Storage) Load() (*Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadLocked()
}

func (s *Storage) loadLocked() (*Config, error) {
	data, err := os.ReadFile(s.FilePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file: %w", err)
	}
	return &config, nil
}

// Save writes config to the profiles file, creating the directory if needed.
func (s *Storage) Save(config *Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked(config)
}

func (s *Storage) saveLocked(config *Config) error {
	if err := os.MkdirAll(s.configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal profiles config: %w", err)
	}

	// Profiles may hold tokens.
	if err := os.WriteFile(s.FilePath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write profiles file: %w", err)
	}
	return nil
}

// update loads the config, applies fn and saves the result under one lock.
func (s *Storage) update(fn func(config *Config) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, err := s.loadLocked()
	if err != nil {
		return err
	}
	if err := fn(config); err != nil {
		return err
	}
	return s.saveLocked(config)
}

// CurrentProfileName returns the name stored as current, or "".
func (s *Storage) CurrentProfileName() (string, error) {
	config, err := s.Load()
	if err != nil {
		return "", err
	}
	return config.CurrentProfile, nil
}

// SetCurrentProfile makes name the current profile. The profile must exist.
func (s *Storage) SetCurrentProfile(name string) error {
	return s.update(func(config *Config) error {
		if !config.Has(name) {
			return &NotFoundError{Name: name}
		}
		config.CurrentProfile = name
		return nil
	})
}

// AddProfile creates a new profile with the given settings.
func (s *Storage) AddProfile(name string, settings map[string]any) error {
	if err := ValidateProfileName(name); err != nil {
		return err
	}

	return s.update(func(config *Config) error {
		if config.Has(name) {
			return fmt.Errorf("profile %q already exists", name)
		}
		config.AddOrUpdate(Profile{Name: name, Settings: maps.Clone(settings)})
		return nil
	})
}

// DeleteProfile removes a profile by name.
func (s *Storage) DeleteProfile(name string) error {
	return s.update(func(config *Config) error {
		if !config.Remove(name) {
			return &NotFoundError{Name: name}
		}
		return nil
	})
}

// ListProfiles returns all defined profiles.
func (s *Storage) ListProfiles() ([]Profile, error) {
	config, err := s.Load()
	if err != nil {
		return nil, err
	}
	return config.Profiles, nil
}

// GetProfile returns the named profile, or nil if it does not exist.
func (s *Storage) GetProfile(name string) (*Profile, error) {
	config, err := s.Load()
	if err != nil {
		return nil, err
	}
	return config.Get(name), nil
}

// GetProfileNames returns all profile names for shell completion.
func (s *Storage) GetProfileNames() ([]string, error) {
	config, err := s.Load()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(config.Profiles))
	for i, p := range config.Profiles {
		names[i] = p.Name
	}
	return names, nil
}

// SetSetting stores a user setting. The profile is created if it does not
// exist yet so "profile set" works before any "profile add".
func (s *Storage) SetSetting(name, key string, value any) error {
	if err := ValidateProfileName(name); err != nil {
		return err
	}

	return s.update(func(config *Config) error {
		p := profileForWrite(config, name)
		if p.Settings == nil {
			p.Settings = map[string]any{}
		}
		p.Settings[key] = value
		logging.Debug("Profile", "set %s in profile %s", key, name)
		return nil
	})
}

// UnsetSetting removes a user setting.
func (s *Storage) UnsetSetting(name, key string) error {
	return s.update(func(config *Config) error {
		p := config.Get(name)
		if p == nil {
			return &NotFoundError{Name: name}
		}
		delete(p.Settings, key)
		return nil
	})
}

// SetDefault remembers a selection default, creating the profile if needed.
func (s *Storage) SetDefault(name, key string, value any) error {
	return s.update(func(config *Config) error {
		p := profileForWrite(config, name)
		if p.Defaults == nil {
			p.Defaults = map[string]any{}
		}
		p.Defaults[key] = value
		logging.Debug("Profile", "saved default %s in profile %s", key, name)
		return nil
	})
}

// ResetDefault forgets one selection default. Missing profiles and keys are
// not an error.
func (s *Storage) ResetDefault(name, key string) error {
	return s.update(func(config *Config) error {
		if p := config.Get(name); p != nil {
			delete(p.Defaults, key)
		}
		return nil
	})
}

// ResetDefaults forgets every selection default of a profile and returns how
// many were removed.
func (s *Storage) ResetDefaults(name string) (int, error) {
	removed := 0
	err := s.update(func(config *Config) error {
		p := config.Get(name)
		if p == nil {
			return &NotFoundError{Name: name}
		}
		removed = len(p.Defaults)
		p.Defaults = nil
		return nil
	})
	return removed, err
}

func profileForWrite(config *Config, name string) *Profile {
	if p := config.Get(name); p != nil {
		return p
	}
	config.AddOrUpdate(Profile{Name: name})
	return config.Get(name)
}
