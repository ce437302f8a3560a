package profile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"hubctl/internal/formatting"
)

// ProfileEnvVar is the environment variable name for overriding the current profile.
const ProfileEnvVar = "HUBCTL_PROFILE"

// DefaultProfileName is used when neither a flag, the environment nor the
// config file name a profile.
const DefaultProfileName = "default"

// DefaultEndpoint is the API base URL used when no profile sets one.
const DefaultEndpoint = "https://api.smartthings.com"

// maxProfileNameLength is the maximum allowed length for profile names.
const maxProfileNameLength = 63

var profileNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$|^[a-z0-9]$`)

// Known setting keys. Any other key is stored as a free-form value.
const (
	KeyOutput   = "output"
	KeyIndent   = "indent"
	KeyToken    = "token"
	KeyEndpoint = "endpoint"
)

// Profile is a named set of settings plus the defaults remembered while
// selecting items.
type Profile struct {
	Name string `json:"name" yaml:"name"`
	// Settings are written by the user with "profile set".
	Settings map[string]any `json:"settings,omitempty" yaml:"settings,omitempty"`
	// Defaults are written by hubctl when the user chose to save a selection.
	// "profile reset" clears them.
	Defaults map[string]any `json:"defaults,omitempty" yaml:"defaults,omitempty"`
}

// Config is the complete profiles file stored in ~/.config/hubctl/profiles.yaml.
type Config struct {
	CurrentProfile string    `yaml:"current-profile,omitempty"`
	Profiles       []Profile `yaml:"profiles,omitempty"`
}

// NotFoundError is returned for operations on a profile that does not exist.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile %q not found", e.Name)
}

// ValidateProfileName checks name against the naming rules: 1 to 63
// lowercase letters, numbers and hyphens, starting and ending with an
// alphanumeric character.
func ValidateProfileName(name string) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if len(name) > maxProfileNameLength {
		return fmt.Errorf("profile name cannot exceed %d characters", maxProfileNameLength)
	}
	if !profileNamePattern.MatchString(name) {
		return fmt.Errorf("profile name must contain only lowercase letters, numbers, and hyphens, and must start and end with an alphanumeric character")
	}
	return nil
}

// ParseSettingValue converts the command line form of a setting into the
// value stored for key. Known keys are validated; "true" and "false" become
// booleans for any other key.
func ParseSettingValue(key, raw string) (any, error) {
	switch key {
	case KeyIndent:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("indent must be a non-negative integer, got %q", raw)
		}
		return n, nil
	case KeyOutput:
		format, err := formatting.ParseOutputFormat(raw)
		if err != nil {
			return nil, err
		}
		return string(format), nil
	case KeyEndpoint:
		if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
			return nil, fmt.Errorf("endpoint must be an http or https URL, got %q", raw)
		}
		return strings.TrimSuffix(raw, "/"), nil
	case KeyToken:
		return raw, nil
	}

	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return raw, nil
}

// Get returns the profile with the given name, or nil if not found.
func (c *Config) Get(name string) *Profile {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i]
		}
	}
	return nil
}

// Has returns true if a profile with the given name exists.
func (c *Config) Has(name string) bool {
	return c.Get(name) != nil
}

// AddOrUpdate adds p or replaces the profile of the same name.
func (c *Config) AddOrUpdate(p Profile) {
	for i := range c.Profiles {
		if c.Profiles[i].Name == p.Name {
			c.Profiles[i] = p
			return
		}
	}
	c.Profiles = append(c.Profiles, p)
}

// Remove deletes the named profile and clears CurrentProfile if it pointed at it.
func (c *Config) Remove(name string) bool {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			c.Profiles = append(c.Profiles[:i], c.Profiles[i+1:]...)
			if c.CurrentProfile == name {
				c.CurrentProfile = ""
			}
			return true
		}
	}
	return false
}

func stringValue(values map[string]any, key string) (string, bool) {
	v, ok := values[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	default:
		return fmt.Sprint(t), true
	}
}

func boolValue(values map[string]any, key string) bool {
	switch t := values[key].(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	}
	return false
}

func intValue(values map[string]any, key string) (int, bool) {
	switch t := values[key].(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(t)
		return n, err == nil
	}
	return 0, false
}
