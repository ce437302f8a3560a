package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_CRUD(t *testing.T) {
	storage := NewStorageWithPath(t.TempDir())

	profiles, err := storage.ListProfiles()
	require.NoError(t, err)
	assert.Empty(t, profiles)

	require.NoError(t, storage.AddProfile("prod", map[string]any{KeyEndpoint: "https://prod.example.com"}))
	assert.Error(t, storage.AddProfile("prod", nil), "duplicate names are rejected")
	assert.Error(t, storage.AddProfile("Bad Name", nil))

	p, err := storage.GetProfile("prod")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "https://prod.example.com", p.Settings[KeyEndpoint])

	require.NoError(t, storage.SetCurrentProfile("prod"))
	current, err := storage.CurrentProfileName()
	require.NoError(t, err)
	assert.Equal(t, "prod", current)

	var notFound *NotFoundError
	assert.ErrorAs(t, storage.SetCurrentProfile("missing"), &notFound)

	names, err := storage.GetProfileNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"prod"}, names)

	require.NoError(t, storage.DeleteProfile("prod"))
	current, err = storage.CurrentProfileName()
	require.NoError(t, err)
	assert.Empty(t, current)
	assert.ErrorAs(t, storage.DeleteProfile("prod"), &notFound)
}

func TestStorage_SettingsAndDefaults(t *testing.T) {
	storage := NewStorageWithPath(t.TempDir())

	require.NoError(t, storage.SetSetting("dev", KeyIndent, 3), "set creates the profile")
	require.NoError(t, storage.SetDefault("dev", "defaultChannel", "abc"))
	require.NoError(t, storage.SetDefault("dev", "defaultChannel::neverAskForSaveAgain", true))

	p, err := storage.GetProfile("dev")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Settings[KeyIndent])
	assert.Equal(t, "abc", p.Defaults["defaultChannel"])

	require.NoError(t, storage.ResetDefault("dev", "defaultChannel"))
	require.NoError(t, storage.ResetDefault("other", "defaultChannel"))

	removed, err := storage.ResetDefaults("dev")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	p, err = storage.GetProfile("dev")
	require.NoError(t, err)
	assert.Empty(t, p.Defaults)
	assert.Equal(t, 3, p.Settings[KeyIndent], "reset keeps user settings")

	require.NoError(t, storage.UnsetSetting("dev", KeyIndent))
	p, err = storage.GetProfile("dev")
	require.NoError(t, err)
	assert.NotContains(t, p.Settings, KeyIndent)
}

func TestStorage_FilePermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	storage := NewStorageWithPath(dir)
	require.NoError(t, storage.SetSetting("default", KeyToken, "secret"))

	info, err := os.Stat(storage.FilePath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStorage_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, profilesFileName), []byte("profiles: [unclosed"), 0600))

	_, err := NewStorageWithPath(dir).Load()
	assert.ErrorContains(t, err, "failed to parse profiles file")
}
