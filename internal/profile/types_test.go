package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProfileName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError bool
	}{
		{"valid simple name", "production", false},
		{"valid with hyphen", "my-profile", false},
		{"valid single char", "a", false},
		{"max length valid", strings.Repeat("a", 63), false},
		{"empty name", "", true},
		{"starts with hyphen", "-profile", true},
		{"ends with hyphen", "profile-", true},
		{"uppercase letters", "Production", true},
		{"contains underscore", "my_profile", true},
		{"too long", strings.Repeat("a", 64), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfileName(tt.input)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseSettingValue(t *testing.T) {
	tests := []struct {
		key     string
		raw     string
		want    any
		wantErr bool
	}{
		{KeyIndent, "3", 3, false},
		{KeyIndent, "-1", nil, true},
		{KeyIndent, "wide", nil, true},
		{KeyOutput, "YAML", "yaml", false},
		{KeyOutput, "xml", nil, true},
		{KeyEndpoint, "https://api.example.com/", "https://api.example.com", false},
		{KeyEndpoint, "api.example.com", nil, true},
		{KeyToken, "true", "true", false},
		{"defaultChannel", "abc", "abc", false},
		{"someFlag", "true", true, false},
		{"someFlag", "false", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.raw, func(t *testing.T) {
			got, err := ParseSettingValue(tt.key, tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_Remove(t *testing.T) {
	config := &Config{
		CurrentProfile: "prod",
		Profiles:       []Profile{{Name: "prod"}, {Name: "dev"}},
	}

	assert.True(t, config.Remove("prod"))
	assert.Empty(t, config.CurrentProfile)
	assert.False(t, config.Has("prod"))
	assert.True(t, config.Has("dev"))
	assert.False(t, config.Remove("prod"))
}

func TestConfig_AddOrUpdate(t *testing.T) {
	config := &Config{}
	config.AddOrUpdate(Profile{Name: "prod", Settings: map[string]any{KeyIndent: 2}})
	config.AddOrUpdate(Profile{Name: "prod", Settings: map[string]any{KeyIndent: 4}})

	require.Len(t, config.Profiles, 1)
	assert.Equal(t, 4, config.Get("prod").Settings[KeyIndent])
}
