package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"hubctl/internal/cli"
	"hubctl/internal/iteminput"
	"hubctl/internal/prompt"
	pt "hubctl/internal/prompt/prompttest"
	"hubctl/internal/selection"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetVersion(t *testing.T) {
	original := rootCmd.Version
	defer SetVersion(original)

	SetVersion("1.2.3-test")
	assert.Equal(t, "1.2.3-test", rootCmd.Version)
	assert.Equal(t, "1.2.3-test", GetVersion())
	assert.Equal(t, "1.2.3-test", cli.Version)
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "hubctl", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}
	testCmd.SetVersionTemplate(versionTemplate)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})
	require.NoError(t, testCmd.Execute())

	assert.Equal(t, "hubctl version 1.0.0\n", buf.String())
}

func TestSubcommands(t *testing.T) {
	found := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		found[cmd.Name()] = true
	}

	for _, expected := range []string{"version", "profile", "channels", "drivers"} {
		assert.True(t, found[expected], "expected subcommand %q", expected)
	}
}

func TestRootCommandHelp(t *testing.T) {
	out, _, err := runCLI(t, newTestStorage(t), pt.New(), "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "hubctl manages driver distribution channels")
	for _, flag := range []string{"--output", "--indent", "--profile", "--endpoint", "--debug"} {
		assert.Contains(t, out, flag)
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "general error", err: errors.New("boom"), expected: ExitCodeError},
		{name: "auth required", err: fmt.Errorf("wrapped: %w", &cli.AuthRequiredError{Endpoint: "https://api.example.com"}), expected: ExitCodeAuthRequired},
		{name: "interrupted", err: prompt.ErrInterrupted, expected: ExitCodeInterrupted},
		{name: "contract error", err: &iteminput.ContractError{Definition: "Channel", Reason: "bad"}, expected: ExitCodeUsage},
		{name: "index out of range", err: &selection.IndexRangeError{Index: 4, Count: 3}, expected: ExitCodeUsage},
		{name: "missing key", err: &selection.MissingKeyError{Key: "id"}, expected: ExitCodeUsage},
		{name: "key type", err: &selection.KeyTypeError{Key: "id", Type: "float64"}, expected: ExitCodeUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getExitCode(tt.err))
		})
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		expected   int
		wantStderr string
	}{
		{name: "success", err: nil, expected: ExitCodeSuccess},
		{name: "canceled", err: fmt.Errorf("create: %w", iteminput.ErrCanceled), expected: ExitCodeSuccess, wantStderr: "Action canceled.\n"},
		{name: "nothing to select", err: selection.ErrNoItems, expected: ExitCodeSuccess},
		{name: "failure", err: errors.New("boom"), expected: ExitCodeError, wantStderr: "Error: boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errOut bytes.Buffer
			assert.Equal(t, tt.expected, handleError(tt.err, &errOut))
			assert.Equal(t, tt.wantStderr, errOut.String())
		})
	}
}
