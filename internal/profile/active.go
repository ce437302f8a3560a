package profile

import (
	"os"

	"hubctl/pkg/logging"
)

// Active is the profile a command runs with. Settings are read once when the
// command starts; stored defaults are written through to the file.
type Active struct {
	Name    string
	Profile Profile
	storage *Storage
}

// Resolve picks the active profile by precedence: flagProfile, then the
// HUBCTL_PROFILE environment variable, then the current profile from the
// file, then "default". Naming a profile that does not exist is not an
// error; it starts out empty.
func Resolve(storage *Storage, flagProfile string) (*Active, error) {
	config, err := storage.Load()
	if err != nil {
		return nil, err
	}

	name, source := flagProfile, "flag"
	if name == "" {
		name, source = os.Getenv(ProfileEnvVar), ProfileEnvVar
	}
	if name == "" {
		name, source = config.CurrentProfile, "current profile"
	}
	if name == "" {
		name, source = DefaultProfileName, "default"
	}
	if err := ValidateProfileName(name); err != nil {
		return nil, err
	}
	logging.Debug("Profile", "using profile %s (from %s)", name, source)

	active := &Active{Name: name, storage: storage}
	if p := config.Get(name); p != nil {
		active.Profile = *p
	} else {
		active.Profile = Profile{Name: name}
	}
	return active, nil
}

// Output returns the configured output format name, or "".
func (a *Active) Output() string {
	s, _ := stringValue(a.Profile.Settings, KeyOutput)
	return s
}

// Indent returns the configured indent, or nil when unset.
func (a *Active) Indent() *int {
	n, ok := intValue(a.Profile.Settings, KeyIndent)
	if !ok {
		return nil
	}
	return &n
}

// Token returns the configured API token, or "".
func (a *Active) Token() string {
	s, _ := stringValue(a.Profile.Settings, KeyToken)
	return s
}

// Endpoint returns the configured API endpoint, or DefaultEndpoint.
func (a *Active) Endpoint() string {
	if s, ok := stringValue(a.Profile.Settings, KeyEndpoint); ok && s != "" {
		return s
	}
	return DefaultEndpoint
}

// StringSetting returns a stored default, falling back to a user setting of
// the same key.
func (a *Active) StringSetting(key string) (string, bool) {
	if s, ok := stringValue(a.Profile.Defaults, key); ok {
		return s, true
	}
	return stringValue(a.Profile.Settings, key)
}

// BoolSetting returns a stored boolean default or user setting.
func (a *Active) BoolSetting(key string) bool {
	if _, ok := a.Profile.Defaults[key]; ok {
		return boolValue(a.Profile.Defaults, key)
	}
	return boolValue(a.Profile.Settings, key)
}

// SetSetting saves a default for this profile.
func (a *Active) SetSetting(key string, value any) error {
	if err := a.storage.SetDefault(a.Name, key, value); err != nil {
		return err
	}
	if a.Profile.Defaults == nil {
		a.Profile.Defaults = map[string]any{}
	}
	a.Profile.Defaults[key] = value
	return nil
}

// ResetSetting forgets a saved default for this profile.
func (a *Active) ResetSetting(key string) error {
	if err := a.storage.ResetDefault(a.Name, key); err != nil {
		return err
	}
	delete(a.Profile.Defaults, key)
	return nil
}
