package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"hubctl/internal/api"
	"hubctl/internal/cli"
	"hubctl/internal/formatting"
	"hubctl/internal/iteminput"
	"hubctl/internal/selection"

	"github.com/spf13/cobra"
)

// defaultChannelKey names the stored default channel in a profile.
const defaultChannelKey = "defaultChannel"

const channelHelpText = `A channel distributes edge drivers to the hubs subscribed to it.
The terms of service URL is shown to users before they enroll a hub.`

var channelSorting = selection.Sorting{PrimaryKeyName: "channelId", SortKeyName: "name"}

var channelDetailFields = []selection.TableField{
	{Label: "Channel Id", Key: "channelId"},
	{Label: "Name", Key: "name"},
	{Label: "Description", Key: "description"},
	{Label: "Type", Key: "type"},
	{Label: "Terms Of Service URL", Key: "termsOfServiceUrl"},
	{Label: "Created", Key: "createdDate"},
	{Label: "Last Modified", Key: "lastModifiedDate"},
}

func channelConfig(allOrganizations bool) selection.Config {
	cfg := selection.Config{
		Sorting: channelSorting,
		Naming:  selection.Naming{ItemName: "channel"},
		TableFields: []selection.TableField{
			{Label: "Channel Id", Key: "channelId"},
			{Label: "Name", Key: "name"},
			{Label: "Created", Key: "createdDate"},
			{Label: "Last Modified", Key: "lastModifiedDate"},
		},
		VerboseFields: []selection.TableField{
			{Label: "Description", Key: "description"},
		},
	}
	if allOrganizations {
		cfg.TableFields = append(cfg.TableFields, selection.TableField{Label: "Organization", Key: "organization"})
	}
	return cfg
}

// channelListFlags filter the channels a command lists.
type channelListFlags struct {
	allOrganizations bool
	includeReadOnly  bool
	subscriberType   string
	subscriberID     string
}

func (f *channelListFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.allOrganizations, "all-organizations", "A", false, "List channels of all organizations you belong to")
	cmd.Flags().BoolVarP(&f.includeReadOnly, "include-read-only", "I", false, "Include subscribed channels you do not own")
	cmd.Flags().StringVar(&f.subscriberType, "subscriber-type", "", "Filter by subscriber type (HUB)")
	cmd.Flags().StringVar(&f.subscriberID, "subscriber-id", "", "Filter by subscriber id, e.g. a hub id")
}

func (f *channelListFlags) validate() error {
	if f.allOrganizations && f.includeReadOnly {
		return errors.New("--all-organizations and --include-read-only cannot be combined")
	}
	if f.subscriberID != "" && f.subscriberType == "" {
		f.subscriberType = api.SubscriberTypeHub
	}
	return nil
}

// lister returns the function fetching the channels f selects.
func (f *channelListFlags) lister(client *api.Client) selection.ListFunc[api.Channel] {
	opts := api.ListChannelsOptions{
		IncludeReadOnly: f.includeReadOnly,
		SubscriberType:  f.subscriberType,
		SubscriberID:    f.subscriberID,
	}
	if !f.allOrganizations {
		return func(ctx context.Context) ([]api.Channel, error) {
			return client.ListChannels(ctx, opts)
		}
	}
	return func(ctx context.Context) ([]api.Channel, error) {
		return api.ForAllOrganizations(ctx, client, func(ctx context.Context, orgClient *api.Client, org api.Organization) ([]api.Channel, error) {
			channels, err := orgClient.ListChannels(ctx, opts)
			if err != nil {
				return nil, err
			}
			for i := range channels {
				channels[i].Organization = org.Name
			}
			return channels, nil
		})
	}
}

// channelChooser picks one channel, offering the default stored in the profile.
func channelChooser(client *api.Client, cfg selection.Config, list selection.ListFunc[api.Channel]) selection.Chooser[api.Channel] {
	return selection.Chooser[api.Channel]{
		Config:    cfg,
		ListItems: list,
		ConfigKey: defaultChannelKey,
		GetItem: func(ctx context.Context, id string) (api.Channel, error) {
			ch, err := client.GetChannel(ctx, id)
			if api.IsNotFound(err) || api.IsForbidden(err) {
				return ch, fmt.Errorf("%w: %w", selection.ErrStaleDefault, err)
			}
			return ch, err
		},
		DefaultMessage: func(ch api.Channel) string {
			return fmt.Sprintf("using previously specified default channel named %q (%s)", ch.Name, ch.ChannelID)
		},
	}
}

func (a *app) newChannelsCmd() *cobra.Command {
	var (
		listFlags channelListFlags
		verbose   bool
	)

	channelsCmd := &cobra.Command{
		Use:   "channels [id-or-index]",
		Short: "List driver channels or get information for a specific channel",
		Long: `List the driver channels you own, or show one channel.

The channel can be given by id or by its index in the list.

Examples:
  hubctl channels                      # List your channels
  hubctl channels 1                    # Show the first channel of the list
  hubctl channels <channel-id> -o yaml # Show a channel as YAML
  hubctl channels -A                   # List channels of all organizations`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.run(func(ctx context.Context, env *cli.Env, args []string) error {
			if err := listFlags.validate(); err != nil {
				return err
			}
			client, err := env.Client()
			if err != nil {
				return err
			}

			cfg := channelConfig(listFlags.allOrganizations)
			list := listFlags.lister(client)
			if len(args) == 0 {
				return outputChannelList(ctx, env, cfg, list, verbose)
			}

			id, err := selection.TranslateToID(ctx, cfg.Sorting, args[0], list)
			if err != nil {
				return err
			}
			channel, err := client.GetChannel(ctx, id)
			if err != nil {
				return err
			}
			return outputChannel(env, channel)
		}),
	}
	listFlags.register(channelsCmd)
	channelsCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include additional columns in the table")

	channelsCmd.AddCommand(a.newChannelsCreateCmd(), a.newChannelsUpdateCmd(), a.newChannelsDeleteCmd())
	return channelsCmd
}

func outputChannelList(ctx context.Context, env *cli.Env, cfg selection.Config, list selection.ListFunc[api.Channel], verbose bool) error {
	channels, err := formatting.WithSpinner(env.ErrOut, env.Flags.Quiet, "Loading channels", func() ([]api.Channel, error) {
		return list(ctx)
	})
	if err != nil {
		return err
	}
	sorted, err := selection.SortItems(channels, cfg.SortKeyName)
	if err != nil {
		return err
	}

	return env.Output(sorted, func(out io.Writer) error {
		if len(sorted) == 0 {
			formatting.WriteEmpty(out, "no "+cfg.Plural()+" found")
			return nil
		}
		return selection.WriteTable(out, cfg, sorted, verbose)
	})
}

func outputChannel(env *cli.Env, channel api.Channel) error {
	return env.Output(channel, func(out io.Writer) error {
		return writeChannelDetail(out, channel)
	})
}

// writeChannelDetail prints the non-empty detail fields of a channel or of
// channel input.
func writeChannelDetail[L any](out io.Writer, item L) error {
	values, err := selection.Row(item, channelDetailFields)
	if err != nil {
		return err
	}
	rows := make([]formatting.KeyValue, 0, len(values))
	for i, f := range channelDetailFields {
		if values[i] == "" {
			continue
		}
		rows = append(rows, formatting.KeyValue{Key: f.Label, Value: values[i]})
	}
	formatting.WriteDetail(out, rows)
	return nil
}

// validateTermsOfServiceURL accepts absolute https URLs.
func validateTermsOfServiceURL(input string, _ iteminput.Ancestors) error {
	u, err := url.Parse(input)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return errors.New("must be a valid https URL")
	}
	return nil
}

// channelDef is the interactive input of a channel create or update.
func channelDef() *iteminput.ObjectDef[api.ChannelCreate] {
	return iteminput.Object("Channel", []iteminput.Property[api.ChannelCreate]{
		iteminput.Field("name", iteminput.String("Channel name", iteminput.StringOptions{}),
			func(c api.ChannelCreate) string { return c.Name },
			func(c *api.ChannelCreate, v string) { c.Name = v }),
		iteminput.Field("description", iteminput.String("Channel description", iteminput.StringOptions{}),
			func(c api.ChannelCreate) string { return c.Description },
			func(c *api.ChannelCreate, v string) { c.Description = v }),
		iteminput.Field("termsOfServiceUrl", iteminput.OptionalString("Terms of service URL", iteminput.StringOptions{
			Validate: validateTermsOfServiceURL,
			HelpText: "An https link to the terms users accept when enrolling a hub in the channel.",
		}),
			func(c api.ChannelCreate) string { return c.TermsOfServiceURL },
			func(c *api.ChannelCreate, v string) { c.TermsOfServiceURL = v }),
		iteminput.Field("type", iteminput.Static(api.ChannelTypeDriver),
			func(c api.ChannelCreate) string { return c.Type },
			func(c *api.ChannelCreate, v string) { c.Type = v }),
	}, iteminput.ObjectOptions[api.ChannelCreate]{})
}

func (a *app) newChannelsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a driver channel",
		Long: `Create a driver channel interactively.

You are asked for each property and can then review, preview and edit the
channel before it is created. With --dry-run the channel is only output.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, env *cli.Env, _ []string) error {
			session, err := env.ItemSession()
			if err != nil {
				return err
			}

			input, err := iteminput.CreateFromUserInput(session, iteminput.Definition[api.ChannelCreate](channelDef()), env.ReviewOptions(channelHelpText))
			if err != nil {
				return err
			}
			if env.Flags.DryRun {
				return env.Output(input, func(out io.Writer) error {
					return writeChannelDetail(out, input)
				})
			}

			client, err := env.Client()
			if err != nil {
				return err
			}
			created, err := client.CreateChannel(ctx, input)
			if err != nil {
				return err
			}
			return outputChannel(env, created)
		}),
	}
	cli.RegisterInputFlags(cmd, &a.flags)
	return cmd
}

func (a *app) newChannelsUpdateCmd() *cobra.Command {
	var listFlags channelListFlags

	cmd := &cobra.Command{
		Use:   "update [id-or-index]",
		Short: "Update a driver channel",
		Long: `Update a driver channel interactively.

When no channel is given you can pick one from the list; the choice can be
saved as the default of the profile.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.run(func(ctx context.Context, env *cli.Env, args []string) error {
			if err := listFlags.validate(); err != nil {
				return err
			}
			client, err := env.Client()
			if err != nil {
				return err
			}
			sel, err := env.Selector()
			if err != nil {
				return err
			}

			cfg := channelConfig(listFlags.allOrganizations)
			id, err := channelChooser(client, cfg, listFlags.lister(client)).Choose(ctx, sel, firstArg(args),
				selection.ChooseOptions{AllowIndex: true, UseConfigDefault: true})
			if err != nil {
				return err
			}

			current, err := client.GetChannel(ctx, id)
			if err != nil {
				return err
			}
			session, err := env.ItemSession()
			if err != nil {
				return err
			}

			opts := env.ReviewOptions(channelHelpText)
			opts.FinishVerb = "update"
			input, err := iteminput.UpdateFromUserInput(session, iteminput.Definition[api.ChannelCreate](channelDef()), api.ChannelCreate{
				Name:              current.Name,
				Description:       current.Description,
				TermsOfServiceURL: current.TermsOfServiceURL,
				Type:              current.Type,
			}, opts)
			if err != nil {
				return err
			}
			if env.Flags.DryRun {
				return env.Output(input, func(out io.Writer) error {
					return writeChannelDetail(out, input)
				})
			}

			updated, err := client.UpdateChannel(ctx, id, input)
			if err != nil {
				return err
			}
			return outputChannel(env, updated)
		}),
	}
	listFlags.register(cmd)
	cli.RegisterInputFlags(cmd, &a.flags)
	return cmd
}

func (a *app) newChannelsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete [id-or-index]",
		Short: "Delete a driver channel",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.run(func(ctx context.Context, env *cli.Env, args []string) error {
			client, err := env.Client()
			if err != nil {
				return err
			}
			sel, err := env.Selector()
			if err != nil {
				return err
			}

			list := func(ctx context.Context) ([]api.Channel, error) {
				return client.ListChannels(ctx, api.ListChannelsOptions{})
			}
			chooser := channelChooser(client, channelConfig(false), list)
			chooser.PromptMessage = "Select a channel to delete."
			id, err := chooser.Choose(ctx, sel, firstArg(args), selection.ChooseOptions{AllowIndex: true})
			if err != nil {
				return err
			}

			if !force {
				confirmed, err := sel.Prompter.Confirm(fmt.Sprintf("Delete channel %s?", id), false)
				if err != nil {
					return err
				}
				if !confirmed {
					return iteminput.ErrCanceled
				}
			}

			if err := client.DeleteChannel(ctx, id); err != nil {
				return err
			}
			cli.PrintSuccess(env.Out, env.Flags.Quiet, "Channel %s deleted.", id)
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
