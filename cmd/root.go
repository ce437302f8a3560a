package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"hubctl/internal/cli"
	"hubctl/internal/iteminput"
	"hubctl/internal/prompt"
	"hubctl/internal/selection"
	"hubctl/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution, including actions the
	// user canceled.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, API error).
	ExitCodeError = 1
	// ExitCodeAuthRequired indicates the API rejected the configured token.
	ExitCodeAuthRequired = 2
	// ExitCodeUsage indicates invalid arguments or a broken input definition.
	ExitCodeUsage = 3
	// ExitCodeInterrupted indicates the user pressed Ctrl-C at a prompt.
	ExitCodeInterrupted = 130
)

const versionTemplate = `{{printf "hubctl version %s\n" .Version}}`

// rootCmd represents the base command for the hubctl application.
var rootCmd *cobra.Command

func init() {
	rootCmd = newRootCmd()
}

// app holds the state shared by every command of one command tree.
type app struct {
	flags      cli.CommandFlags
	envOptions []cli.EnvOption
}

// newRootCmd builds the command tree. opts are passed to every cli.Env the
// commands create.
func newRootCmd(opts ...cli.EnvOption) *cobra.Command {
	a := &app{envOptions: opts}

	cmd := &cobra.Command{
		Use:   "hubctl",
		Short: "Manage edge driver channels and driver packages",
		Long: `hubctl manages driver distribution channels and builds edge driver
package configurations.

Commands that create or update something walk you through the input
interactively and let you review, preview and edit it before anything
is sent. Use --dry-run to only output the result.

Settings such as the API token, the output format and the defaults you
chose while selecting items are kept per profile in
~/.config/hubctl/profiles.yaml.`,
		// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.InitForCLI(a.flags.LogLevel(), cmd.ErrOrStderr())
		},
	}
	cmd.SetVersionTemplate(versionTemplate)
	cli.RegisterCommonFlags(cmd, &a.flags)

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(a.newProfileCmd())
	cmd.AddCommand(a.newChannelsCmd())
	cmd.AddCommand(a.newDriversCmd())
	return cmd
}

// run adapts fn to a cobra RunE. The environment is closed when fn returns
// and API failures get connection and authentication guidance.
func (a *app) run(fn func(ctx context.Context, env *cli.Env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := cli.NewEnv(cmd, &a.flags, a.envOptions...)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := env.Close(); cerr != nil {
				logging.Debug("CLI", "closing terminal: %v", cerr)
			}
		}()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return env.Explain(fn(ctx, env, args))
	}
}

// SetVersion sets the version for the root command and the API user agent.
func SetVersion(v string) {
	rootCmd.Version = v
	cli.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application. It is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	os.Exit(handleError(err, rootCmd.ErrOrStderr()))
}

// handleError reports err and returns the exit code for it. Canceled actions
// and empty selections are not failures.
func handleError(err error, errOut io.Writer) int {
	if err == nil {
		return ExitCodeSuccess
	}
	if errors.Is(err, iteminput.ErrCanceled) {
		fmt.Fprintln(errOut, cli.CanceledMessage)
		return ExitCodeSuccess
	}
	if errors.Is(err, selection.ErrNoItems) {
		return ExitCodeSuccess
	}

	fmt.Fprintln(errOut, cli.FormatError(err))
	return getExitCode(err)
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var authRequired *cli.AuthRequiredError
	if errors.As(err, &authRequired) {
		return ExitCodeAuthRequired
	}

	if errors.Is(err, prompt.ErrInterrupted) {
		return ExitCodeInterrupted
	}

	var (
		indexRange *selection.IndexRangeError
		missingKey *selection.MissingKeyError
		keyType    *selection.KeyTypeError
	)
	if iteminput.IsContractError(err) ||
		errors.As(err, &indexRange) ||
		errors.As(err, &missingKey) ||
		errors.As(err, &keyType) {
		return ExitCodeUsage
	}

	return ExitCodeError
}
