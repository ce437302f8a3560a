package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"hubctl/internal/cli"
	"hubctl/internal/formatting"
	"hubctl/internal/profile"

	"github.com/spf13/cobra"
)

func (a *app) newProfileCmd() *cobra.Command {
	var (
		addSetCurrent bool
		deleteForce   bool
	)

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage hubctl profiles",
		Long: `Manage named profiles.

A profile holds settings such as the API token, the endpoint and the output
format, plus the defaults remembered when you chose to save a selection.

Examples:
  hubctl profile                         # List all profiles
  hubctl profile use staging             # Switch profile
  hubctl profile add staging --use       # Add and switch
  hubctl profile set token <token>       # Store the API token in the active profile
  hubctl profile set output yaml -p ci   # Store a setting in profile "ci"
  hubctl profile reset                   # Forget saved defaults

Profiles are stored in ~/.config/hubctl/profiles.yaml.

Precedence (highest to lowest):
  1. --profile flag
  2. HUBCTL_PROFILE environment variable
  3. current-profile from profiles.yaml
  4. the profile named "default"`,
		Args: cobra.NoArgs,
		RunE: a.run(runProfileList),
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all profiles",
		Long: `List all configured profiles.

The current profile is marked with an asterisk (*).`,
		Args: cobra.NoArgs,
		RunE: a.run(runProfileList),
	}

	currentCmd := &cobra.Command{
		Use:   "current",
		Short: "Show the active profile name",
		Long: `Display the name of the profile commands run with, taking the --profile
flag and the HUBCTL_PROFILE environment variable into account.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(_ context.Context, env *cli.Env, _ []string) error {
			fmt.Fprintln(env.Out, env.Profile.Name)
			return nil
		}),
	}

	useCmd := &cobra.Command{
		Use:               "use <name>",
		Aliases:           []string{"switch"},
		Short:             "Switch to a different profile",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeProfileNames,
		RunE: a.run(func(_ context.Context, env *cli.Env, args []string) error {
			name := args[0]
			if err := env.Storage.SetCurrentProfile(name); err != nil {
				var notFound *profile.NotFoundError
				if errors.As(err, &notFound) {
					return fmt.Errorf("profile %q not found. Use 'hubctl profile list' to see available profiles", name)
				}
				return fmt.Errorf("failed to set current profile: %w", err)
			}
			cli.PrintSuccess(env.Out, env.Flags.Quiet, "Switched to profile %q", name)
			return nil
		}),
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new profile",
		Long: `Add a new, empty profile.

Profile names must:
  - Be between 1 and 63 characters
  - Contain only lowercase letters, numbers, and hyphens
  - Start and end with an alphanumeric character`,
		Args: cobra.ExactArgs(1),
		RunE: a.run(func(_ context.Context, env *cli.Env, args []string) error {
			name := args[0]
			if err := env.Storage.AddProfile(name, nil); err != nil {
				return fmt.Errorf("failed to add profile: %w", err)
			}
			cli.PrintSuccess(env.Out, env.Flags.Quiet, "Profile %q added.", name)

			if addSetCurrent {
				if err := env.Storage.SetCurrentProfile(name); err != nil {
					return fmt.Errorf("failed to set current profile: %w", err)
				}
				cli.PrintSuccess(env.Out, env.Flags.Quiet, "Switched to profile %q", name)
			}
			return nil
		}),
	}
	addCmd.Flags().BoolVar(&addSetCurrent, "use", false, "Set as current profile after adding")

	deleteCmd := &cobra.Command{
		Use:               "delete <name>",
		Aliases:           []string{"rm", "remove"},
		Short:             "Delete a profile",
		Long:              `Remove a profile by name. Asks for confirmation unless --force is given.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeProfileNames,
		RunE: a.run(func(_ context.Context, env *cli.Env, args []string) error {
			return runProfileDelete(env, args[0], deleteForce)
		}),
	}
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")

	showCmd := &cobra.Command{
		Use:               "show [name]",
		Aliases:           []string{"describe", "get"},
		Short:             "Show profile details",
		Long:              `Display the settings and saved defaults of a profile, the active one if no name is given.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: a.completeProfileNames,
		RunE:              a.run(runProfileShow),
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a profile setting",
		Long: `Store a setting in the active profile (or the one named with --profile).
The profile is created if it does not exist.

Known settings:
  output     table, json or yaml
  indent     indent of JSON and YAML output
  endpoint   API base URL
  token      API token`,
		Args: cobra.ExactArgs(2),
		RunE: a.run(func(_ context.Context, env *cli.Env, args []string) error {
			key, raw := args[0], args[1]
			value, err := profile.ParseSettingValue(key, raw)
			if err != nil {
				return err
			}
			if err := env.Storage.SetSetting(env.Profile.Name, key, value); err != nil {
				return fmt.Errorf("failed to set %s: %w", key, err)
			}
			cli.PrintSuccess(env.Out, env.Flags.Quiet, "Set %s in profile %q.", key, env.Profile.Name)
			return nil
		}),
	}

	unsetCmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a profile setting",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(_ context.Context, env *cli.Env, args []string) error {
			if err := env.Storage.UnsetSetting(env.Profile.Name, args[0]); err != nil {
				return fmt.Errorf("failed to unset %s: %w", args[0], err)
			}
			cli.PrintSuccess(env.Out, env.Flags.Quiet, "Removed %s from profile %q.", args[0], env.Profile.Name)
			return nil
		}),
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget saved selection defaults",
		Long: `Forget the defaults saved when answering "Yes" or "No, and do not ask again"
to "Do you want to save this as the default?". Settings are kept.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(_ context.Context, env *cli.Env, _ []string) error {
			removed, err := env.Storage.ResetDefaults(env.Profile.Name)
			if err != nil {
				return fmt.Errorf("failed to reset profile: %w", err)
			}
			cli.PrintSuccess(env.Out, env.Flags.Quiet, "Reset %d saved defaults in profile %q.", removed, env.Profile.Name)
			return nil
		}),
	}

	profileCmd.AddCommand(listCmd, currentCmd, useCmd, addCmd, deleteCmd, showCmd, setCmd, unsetCmd, resetCmd)
	return profileCmd
}

// completeProfileNames provides shell completion for profile names.
func (a *app) completeProfileNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	storage := profile.NewStorageWithPath(a.flags.ConfigPath)
	if a.flags.ConfigPath == "" {
		var err error
		if storage, err = profile.NewStorage(); err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
	}
	names, err := storage.GetProfileNames()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// profileSummary is the list output of one profile.
type profileSummary struct {
	Name     string `json:"name"`
	Current  bool   `json:"current"`
	Endpoint string `json:"endpoint,omitempty"`
}

func runProfileList(_ context.Context, env *cli.Env, _ []string) error {
	config, err := env.Storage.Load()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	summaries := make([]profileSummary, 0, len(config.Profiles))
	for _, p := range config.Profiles {
		endpoint, _ := p.Settings[profile.KeyEndpoint].(string)
		summaries = append(summaries, profileSummary{
			Name:     p.Name,
			Current:  p.Name == config.CurrentProfile,
			Endpoint: endpoint,
		})
	}

	return env.Output(summaries, func(out io.Writer) error {
		if len(summaries) == 0 {
			formatting.WriteEmpty(out, "no profiles found")
			fmt.Fprintln(out, "Store a token to create the default profile:")
			fmt.Fprintln(out, "  hubctl profile set token <token>")
			return nil
		}
		rows := make([][]string, 0, len(summaries))
		for _, s := range summaries {
			current := ""
			if s.Current {
				current = "*"
			}
			rows = append(rows, []string{current, s.Name, s.Endpoint})
		}
		formatting.WriteList(out, []string{"Current", "Name", "Endpoint"}, rows, formatting.TableOptions{})
		return nil
	})
}

func runProfileDelete(env *cli.Env, name string, force bool) error {
	p, err := env.Storage.GetProfile(name)
	if err != nil {
		return fmt.Errorf("failed to check profile: %w", err)
	}
	if p == nil {
		return &profile.NotFoundError{Name: name}
	}

	currentName, _ := env.Storage.CurrentProfileName()
	wasCurrent := currentName == name

	if !force {
		question := fmt.Sprintf("Delete profile %q?", name)
		if wasCurrent {
			question = fmt.Sprintf("Delete profile %q (current profile)?", name)
		}
		prompter, err := env.Prompter()
		if err != nil {
			return err
		}
		confirmed, err := prompter.Confirm(question, false)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(env.Out, cli.CanceledMessage)
			return nil
		}
	}

	if err := env.Storage.DeleteProfile(name); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	cli.PrintSuccess(env.Out, env.Flags.Quiet, "Profile %q deleted.", name)
	if wasCurrent && !env.Flags.Quiet {
		fmt.Fprintln(env.Out, cli.FormatWarning("This was the current profile. Current profile is now unset."))
	}
	return nil
}

// profileDetails is the show output of one profile.
type profileDetails struct {
	Name     string         `json:"name"`
	Current  bool           `json:"current"`
	Settings map[string]any `json:"settings,omitempty"`
	Defaults map[string]any `json:"defaults,omitempty"`
}

func runProfileShow(_ context.Context, env *cli.Env, args []string) error {
	name := env.Profile.Name
	if len(args) > 0 {
		name = args[0]
	}

	config, err := env.Storage.Load()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}
	p := config.Get(name)
	if p == nil {
		return &profile.NotFoundError{Name: name}
	}

	details := profileDetails{
		Name:     p.Name,
		Current:  config.CurrentProfile == p.Name,
		Settings: maskSettings(p.Settings),
		Defaults: p.Defaults,
	}

	return env.Output(details, func(out io.Writer) error {
		rows := []formatting.KeyValue{{Key: "Name", Value: details.Name}}
		if details.Current {
			rows = append(rows, formatting.KeyValue{Key: "Current", Value: "yes"})
		}
		rows = append(rows, mapRows("", details.Settings)...)
		rows = append(rows, mapRows("default ", details.Defaults)...)
		formatting.WriteDetail(out, rows)
		return nil
	})
}

// maskSettings hides all but the last four characters of the token.
func maskSettings(settings map[string]any) map[string]any {
	token, ok := settings[profile.KeyToken].(string)
	if !ok {
		return settings
	}
	masked := maps.Clone(settings)
	if len(token) > 4 {
		masked[profile.KeyToken] = strings.Repeat("*", 8) + token[len(token)-4:]
	} else {
		masked[profile.KeyToken] = strings.Repeat("*", 8)
	}
	return masked
}

func mapRows(prefix string, values map[string]any) []formatting.KeyValue {
	keys := slices.Sorted(maps.Keys(values))
	rows := make([]formatting.KeyValue, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, formatting.KeyValue{Key: prefix + k, Value: fmt.Sprint(values[k])})
	}
	return rows
}
