package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"hubctl/internal/cli"
	"hubctl/internal/iteminput"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

const driverHelpText = `The package configuration is the config.yml at the root of an edge
driver package. Profiles name the device profiles the driver can assign.`

var permissionChoices = []iteminput.Choice[string]{
	{Name: "LAN", Value: "lan"},
	{Name: "Zigbee", Value: "zigbee"},
	{Name: "Z-Wave", Value: "zwave"},
	{Name: "Matter", Value: "matter"},
}

var nonKeyCharacters = regexp.MustCompile(`[^a-z0-9]+`)

// driverInput is what the user enters for a driver package.
type driverInput struct {
	Name        string          `json:"name"`
	PackageKey  string          `json:"packageKey"`
	Description string          `json:"description,omitempty"`
	Permissions []string        `json:"permissions"`
	LANPort     *int            `json:"lanPort,omitempty"`
	Profiles    []driverProfile `json:"profiles"`
}

type driverProfile struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// driverConfig is the config.yml layout of a driver package.
type driverConfig struct {
	Name        string                    `json:"name"`
	PackageKey  string                    `json:"packageKey"`
	Description string                    `json:"description,omitempty"`
	Permissions map[string]map[string]any `json:"permissions"`
	Profiles    []driverProfile           `json:"profiles"`
}

func (d driverInput) config() driverConfig {
	permissions := make(map[string]map[string]any, len(d.Permissions))
	for _, p := range d.Permissions {
		settings := map[string]any{}
		if p == "lan" && d.LANPort != nil {
			settings["port"] = *d.LANPort
		}
		permissions[p] = settings
	}
	return driverConfig{
		Name:        d.Name,
		PackageKey:  d.PackageKey,
		Description: d.Description,
		Permissions: permissions,
		Profiles:    d.Profiles,
	}
}

// packageKeyFor derives a package key from a driver name: lowercase with
// runs of other characters replaced by a dash.
func packageKeyFor(name string) string {
	return strings.Trim(nonKeyCharacters.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

func driverProfileDef() *iteminput.ObjectDef[driverProfile] {
	return iteminput.Object("Profile", []iteminput.Property[driverProfile]{
		iteminput.Field("name", iteminput.String("Profile name", iteminput.StringOptions{
			Validate: func(input string, ancestors iteminput.Ancestors) error {
				others, _ := iteminput.Nearest[[]driverProfile](ancestors)
				if slices.ContainsFunc(others, func(p driverProfile) bool { return p.Name == input }) {
					return fmt.Errorf("profile %s already exists", input)
				}
				return nil
			},
		}),
			func(p driverProfile) string { return p.Name },
			func(p *driverProfile, v string) { p.Name = v }),
		iteminput.Field("category", iteminput.Select("device category",
			iteminput.StringChoices("Light", "Switch", "Sensor", "Thermostat", "Other"),
			iteminput.SelectOptions[string]{HelpText: "The category decides the icon and the controls apps show."}),
			func(p driverProfile) string { return p.Category },
			func(p *driverProfile, v string) { p.Category = v }),
	}, iteminput.ObjectOptions[driverProfile]{
		Summarize: func(p driverProfile, _ iteminput.Ancestors) string {
			return fmt.Sprintf("%s (%s)", p.Name, p.Category)
		},
	})
}

func driverDef() *iteminput.ObjectDef[driverInput] {
	minPort, maxPort := 1, 65535
	lanChecked := func(a iteminput.Ancestors) bool {
		d, ok := iteminput.Nearest[driverInput](a)
		return ok && slices.Contains(d.Permissions, "lan")
	}

	return iteminput.Object("Driver", []iteminput.Property[driverInput]{
		iteminput.Field("name", iteminput.String("Driver name", iteminput.StringOptions{}),
			func(d driverInput) string { return d.Name },
			func(d *driverInput, v string) { d.Name = v }),
		iteminput.Field("packageKey", iteminput.Computed(func(a iteminput.Ancestors) string {
			d, _ := iteminput.ParentAs[driverInput](a)
			return packageKeyFor(d.Name)
		}),
			func(d driverInput) string { return d.PackageKey },
			func(d *driverInput, v string) { d.PackageKey = v }),
		iteminput.Field("description", iteminput.OptionalString("Driver description", iteminput.StringOptions{}),
			func(d driverInput) string { return d.Description },
			func(d *driverInput, v string) { d.Description = v }),
		iteminput.Field("permissions", iteminput.Checkbox("permissions", permissionChoices, iteminput.CheckboxOptions[string]{
			Validate: func(values []string) error {
				if len(values) == 0 {
					return fmt.Errorf("select at least one permission")
				}
				return nil
			},
		}),
			func(d driverInput) []string { return d.Permissions },
			func(d *driverInput, v []string) { d.Permissions = v }),
		iteminput.Field("lanPort", iteminput.Optional(iteminput.Integer("LAN port", iteminput.IntegerOptions{
			Min: &minPort,
			Max: &maxPort,
		}), lanChecked),
			func(d driverInput) *int { return d.LANPort },
			func(d *driverInput, v *int) { d.LANPort = v }),
		iteminput.Field("profiles", iteminput.Definition[[]driverProfile](iteminput.Array("Profiles", iteminput.Definition[driverProfile](driverProfileDef()), iteminput.ArrayOptions[driverProfile]{
			MinItems: iteminput.Items(1),
		})),
			func(d driverInput) []driverProfile { return d.Profiles },
			func(d *driverInput, v []driverProfile) { d.Profiles = v }),
	}, iteminput.ObjectOptions[driverInput]{})
}

func (a *app) newDriversCmd() *cobra.Command {
	driversCmd := &cobra.Command{
		Use:   "drivers",
		Short: "Work with edge driver packages",
	}

	var file string
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Build the config.yml of a driver package",
		Long: `Build the package configuration of an edge driver interactively.

The package key is derived from the driver name. The result is written to
--file, or output with --dry-run.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(_ context.Context, env *cli.Env, _ []string) error {
			session, err := env.ItemSession()
			if err != nil {
				return err
			}

			opts := env.ReviewOptions(driverHelpText)
			input, err := iteminput.CreateFromUserInput(session, iteminput.Definition[driverInput](driverDef()), opts)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(input.config())
			if err != nil {
				return fmt.Errorf("failed to marshal driver config: %w", err)
			}
			if env.Flags.DryRun {
				_, err := env.Out.Write(data)
				return err
			}
			return writeDriverConfig(env.Out, file, data, env.Flags.Quiet)
		}),
	}
	configCmd.Flags().StringVarP(&file, "file", "f", "config.yml", "File to write the configuration to")
	cli.RegisterInputFlags(configCmd, &a.flags)

	driversCmd.AddCommand(configCmd)
	return driversCmd
}

func writeDriverConfig(out io.Writer, file string, data []byte, quiet bool) error {
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	cli.PrintSuccess(out, quiet, "Wrote %s.", file)
	return nil
}
