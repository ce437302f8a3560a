package cli

import (
	"fmt"
	"io"
	"os"

	"hubctl/internal/api"
	"hubctl/internal/formatting"
	"hubctl/internal/iteminput"
	"hubctl/internal/profile"
	"hubctl/internal/prompt"
	"hubctl/internal/selection"
	"hubctl/pkg/logging"

	"github.com/spf13/cobra"
)

// Env is what a running command works with: resolved flags, the active
// profile and the interactive prompter.
type Env struct {
	Flags   *CommandFlags
	Out     io.Writer
	ErrOut  io.Writer
	Storage *profile.Storage
	Profile *profile.Active
	// Format is the resolved output format.
	Format formatting.OutputFormat

	prompter prompt.Prompter
	closer   io.Closer
	client   *api.Client
}

// EnvOption customizes NewEnv.
type EnvOption func(*Env)

// WithPrompter makes the Env use p instead of a terminal prompter.
func WithPrompter(p prompt.Prompter) EnvOption {
	return func(e *Env) { e.prompter = p }
}

// WithStorage makes the Env read profiles from storage.
func WithStorage(storage *profile.Storage) EnvOption {
	return func(e *Env) { e.Storage = storage }
}

// NewEnv resolves the profile and output format for cmd.
func NewEnv(cmd *cobra.Command, flags *CommandFlags, opts ...EnvOption) (*Env, error) {
	env := &Env{
		Flags:  flags,
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
	}
	for _, opt := range opts {
		opt(env)
	}

	if cmd.Flags().Changed("indent") {
		flags.IndentSet = true
	}
	if flags.Indent < 0 {
		return nil, fmt.Errorf("--indent must not be negative, got %d", flags.Indent)
	}

	if env.Storage == nil {
		if flags.ConfigPath != "" {
			env.Storage = profile.NewStorageWithPath(flags.ConfigPath)
		} else {
			storage, err := profile.NewStorage()
			if err != nil {
				return nil, err
			}
			env.Storage = storage
		}
	}

	active, err := profile.Resolve(env.Storage, flags.Profile)
	if err != nil {
		return nil, err
	}
	env.Profile = active

	format, err := flags.OutputFormat(active.Output())
	if err != nil {
		return nil, err
	}
	env.Format = format
	return env, nil
}

// Indent returns the indent for format: --indent, then the profile, then the
// format default.
func (e *Env) Indent(format formatting.OutputFormat) int {
	return formatting.ResolveIndent(format, e.Flags.IndentOverride(), e.Profile.Indent())
}

// Output writes value in the resolved format. writeTable renders the table form.
func (e *Env) Output(value any, writeTable func(io.Writer) error) error {
	return formatting.Output(e.Out, e.Format, e.Indent(e.Format), value, writeTable)
}

// Prompter returns the interactive prompter, opening the terminal on first use.
func (e *Env) Prompter() (prompt.Prompter, error) {
	if e.prompter != nil {
		return e.prompter, nil
	}
	rl, err := prompt.NewReadline(e.Out)
	if err != nil {
		return nil, err
	}
	e.prompter = rl
	e.closer = rl
	return rl, nil
}

// Selector returns a selector storing defaults in the active profile.
func (e *Env) Selector() (*selection.Selector, error) {
	p, err := e.Prompter()
	if err != nil {
		return nil, err
	}
	return &selection.Selector{
		Prompter: p,
		Out:      e.Out,
		Settings: e.Profile,
		Quiet:    e.Flags.Quiet,
	}, nil
}

// ItemSession returns a session for interactive item input.
func (e *Env) ItemSession() (iteminput.Session, error) {
	p, err := e.Prompter()
	if err != nil {
		return iteminput.Session{}, err
	}
	return iteminput.Session{Prompter: p, Out: e.Out}, nil
}

// ReviewOptions returns review loop options wired to the flags and profile.
func (e *Env) ReviewOptions(helpText string) iteminput.ReviewOptions {
	return iteminput.ReviewOptions{
		DryRun:        e.Flags.DryRun,
		HelpText:      helpText,
		Indent:        e.Flags.IndentOverride(),
		ProfileIndent: e.Profile.Indent(),
		Render:        formatting.Render,
		OnCancel: func() {
			logging.Debug("CLI", "input canceled by user")
		},
	}
}

// Endpoint returns the API endpoint: --endpoint (or HUBCTL_ENDPOINT), then the profile.
func (e *Env) Endpoint() string {
	if e.Flags.Endpoint != "" {
		return e.Flags.Endpoint
	}
	return e.Profile.Endpoint()
}

// Client returns the API client for the active profile.
func (e *Env) Client() (*api.Client, error) {
	if e.client != nil {
		return e.client, nil
	}

	token := os.Getenv(TokenEnvVar)
	if token == "" {
		token = e.Profile.Token()
	}
	if token == "" {
		logging.Warn("CLI", "no token configured for profile %s", e.Profile.Name)
	}

	client, err := api.NewClient(api.Options{
		Endpoint:  e.Endpoint(),
		Token:     token,
		UserAgent: "hubctl/" + Version,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	e.client = client
	return client, nil
}

// Explain adds guidance to API failures.
func (e *Env) Explain(err error) error {
	return ExplainAPIError(err, e.Endpoint(), e.Profile.Name)
}

// Close releases the terminal if one was opened.
func (e *Env) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// Version is the hubctl version reported to the API. main sets it at startup.
var Version = "dev"
