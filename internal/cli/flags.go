package cli

import (
	"os"

	"hubctl/internal/formatting"
	"hubctl/pkg/logging"

	"github.com/spf13/cobra"
)

// EndpointEnvVar overrides the API endpoint of the active profile.
const EndpointEnvVar = "HUBCTL_ENDPOINT"

// TokenEnvVar overrides the API token of the active profile.
const TokenEnvVar = "HUBCTL_TOKEN"

// LogLevelEnvVar sets the log level when --debug is not given.
const LogLevelEnvVar = "HUBCTL_LOG_LEVEL"

// CommandFlags holds the flag values shared by all hubctl commands.
type CommandFlags struct {
	// Output is the output format (table, json, yaml). Empty uses the profile setting.
	Output string
	// Indent overrides the JSON/YAML indent when IndentSet is true or it is
	// positive. Zero selects compact JSON.
	Indent    int
	IndentSet bool
	// DryRun builds the input but only outputs it instead of calling the API.
	DryRun bool
	// Quiet suppresses progress indicators.
	Quiet bool
	// Debug enables debug logging on stderr.
	Debug bool
	// Profile selects a named profile.
	Profile string
	// ConfigPath overrides the directory holding profiles.yaml.
	ConfigPath string
	// Endpoint overrides the API base URL.
	Endpoint string
}

// RegisterCommonFlags registers the flags every command accepts as persistent
// flags of cmd.
//
// The registered flags are:
//   - --output/-o: Output format (table, json, yaml)
//   - --indent: Indent for JSON and YAML output
//   - --quiet/-q: Suppress progress output
//   - --debug: Enable debug logging
//   - --profile/-p: Profile to use (env: HUBCTL_PROFILE)
//   - --config-path: Configuration directory
//   - --endpoint: API endpoint URL (env: HUBCTL_ENDPOINT)
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", "", "Output format (table, json, yaml)")
	cmd.PersistentFlags().IntVar(&flags.Indent, "indent", 0, "Indent for JSON and YAML output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress progress output")
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVarP(&flags.Profile, "profile", "p", "", "Profile to use (env: HUBCTL_PROFILE)")
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config-path", "", "Configuration directory (default ~/.config/hubctl)")
	cmd.PersistentFlags().StringVar(&flags.Endpoint, "endpoint", os.Getenv(EndpointEnvVar), "API endpoint URL (env: HUBCTL_ENDPOINT)")
}

// RegisterInputFlags registers the flags of commands that build input
// interactively before calling the API.
func RegisterInputFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.Flags().BoolVarP(&flags.DryRun, "dry-run", "d", false, "Output the input instead of sending it")
}

// OutputFormat resolves the output format: flag, then profileOutput, then table.
func (f *CommandFlags) OutputFormat(profileOutput string) (formatting.OutputFormat, error) {
	if f.Output != "" {
		return formatting.ParseOutputFormat(f.Output)
	}
	return formatting.ParseOutputFormat(profileOutput)
}

// IndentOverride returns the --indent value, or nil when it was not given.
func (f *CommandFlags) IndentOverride() *int {
	if !f.IndentSet && f.Indent <= 0 {
		return nil
	}
	indent := f.Indent
	return &indent
}

// LogLevel returns the level logging is initialized with: debug with --debug,
// else HUBCTL_LOG_LEVEL, else warn.
func (f *CommandFlags) LogLevel() logging.LogLevel {
	if f.Debug {
		return logging.LevelDebug
	}
	if name := os.Getenv(LogLevelEnvVar); name != "" {
		if level, err := logging.ParseLevel(name); err == nil {
			return level
		}
	}
	return logging.LevelWarn
}
