package selection

import (
	"context"
	"errors"
	"fmt"
	"io"

	"hubctl/internal/formatting"
	"hubctl/internal/prompt"
	"hubctl/pkg/logging"
	hubstrings "hubctl/pkg/strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// neverAskSuffix is appended to a default's config key to remember that the
// user does not want to be asked about saving it.
const neverAskSuffix = "::neverAskForSaveAgain"

// DefaultsStore persists stored defaults. The active profile implements it.
type DefaultsStore interface {
	StringSetting(key string) (string, bool)
	BoolSetting(key string) bool
	SetSetting(key string, value any) error
	ResetSetting(key string) error
}

// Selector holds what every selection needs from the running command.
type Selector struct {
	Prompter prompt.Prompter
	Out      io.Writer
	// Settings may be nil, which disables stored defaults.
	Settings DefaultsStore
	// Quiet suppresses the progress spinner.
	Quiet bool
}

// DefaultValue configures the stored default for a selection.
type DefaultValue[L any] struct {
	ConfigKey string
	// GetItem verifies the stored id still refers to an item. An error matching
	// ErrStaleDefault resets the stored value.
	GetItem GetItemFunc[L]
	// UserMessage is printed when a stored default was found.
	UserMessage func(item L) string
}

// Options controls a single selection.
type Options[L any] struct {
	ListItems     ListFunc[L]
	PromptMessage string
	// AutoChoose returns the only item without prompting when the list has one entry.
	AutoChoose bool
	// PreselectedID short circuits the selection; ListItems is not called.
	PreselectedID string
	DefaultValue  *DefaultValue[L]
	Verbose       bool
}

// PromptUser lists the items as a sorted, indexed table and asks the user to
// pick one. defaultID, when not empty, is offered as the default answer.
func PromptUser[L any](ctx context.Context, sel *Selector, cfg Config, opts Options[L], defaultID string) (string, error) {
	plural := cfg.Plural()
	items, err := formatting.WithSpinner(sel.Out, sel.Quiet, "Loading "+plural, func() ([]L, error) {
		return opts.ListItems(ctx)
	})
	if err != nil {
		return "", err
	}

	sorted, err := SortItems(items, cfg.SortKeyName)
	if err != nil {
		return "", err
	}

	if opts.AutoChoose && len(sorted) == 1 {
		id, err := primaryKey(sorted[0], cfg.PrimaryKeyName)
		if err != nil {
			return "", err
		}
		logging.Debug("Selection", "auto-chose the only %s %s", cfg.Item(), id)
		return id, nil
	}

	if len(sorted) == 0 {
		formatting.WriteEmpty(sel.Out, "no "+plural+" found")
		return "", ErrNoItems
	}

	if err := WriteTable(sel.Out, cfg, sorted, opts.Verbose); err != nil {
		return "", err
	}

	return GetIDFromUser(sel, cfg, sorted, opts.PromptMessage, defaultID)
}

// WriteTable prints sorted as a table with a leading 1-based "#" column, the
// positions index arguments refer to.
func WriteTable[L any](out io.Writer, cfg Config, sorted []L, verbose bool) error {
	fields := cfg.fields(verbose)
	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = f.Label
	}

	rows := make([][]string, 0, len(sorted))
	for _, item := range sorted {
		row, err := Row(item, fields)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	formatting.WriteList(out, headers, rows, formatting.TableOptions{IncludeIndex: true})
	return nil
}

// Row reads the values of fields from item, each collapsed to one line.
func Row[L any](item L, fields []TableField) ([]string, error) {
	rec, err := record(item)
	if err != nil {
		return nil, err
	}
	row := make([]string, len(fields))
	for i, f := range fields {
		row[i] = hubstrings.SingleLine(fieldString(rec, f.Key))
	}
	return row, nil
}

// GetIDFromUser prompts for an id or index into sorted, which must already be
// in display order. The answer is validated before it is accepted and an index
// is always resolved to its id.
func GetIDFromUser[L any](sel *Selector, cfg Config, sorted []L, promptMessage, defaultID string) (string, error) {
	ids, err := primaryKeys(sorted, cfg.PrimaryKeyName)
	if err != nil {
		return "", err
	}

	if promptMessage == "" {
		promptMessage = "Enter id or index"
	}

	answer, err := sel.Prompter.Input(prompt.InputQuestion{
		Message: promptMessage,
		Default: defaultID,
		Validate: func(input string) error {
			if _, ok := convertInIDs(input, ids); !ok {
				return fmt.Errorf("Invalid id or index %q. Please enter an index or valid id.", input)
			}
			return nil
		},
	})
	if err != nil {
		return "", err
	}

	id, ok := convertInIDs(answer, ids)
	if !ok {
		return "", fmt.Errorf("invalid id or index %q", answer)
	}
	return id, nil
}

// SelectFromList resolves the id of one item. A preselected id is returned as
// is. Otherwise a verified stored default is offered while prompting and the
// user may save the answer as the new default.
func SelectFromList[L any](ctx context.Context, sel *Selector, cfg Config, opts Options[L]) (string, error) {
	if opts.PreselectedID != "" {
		return opts.PreselectedID, nil
	}

	if opts.PromptMessage == "" {
		item := cfg.Item()
		opts.PromptMessage = fmt.Sprintf("Select %s %s.", hubstrings.IndefiniteArticle(item), item)
	}

	defaultID := ""
	dv := opts.DefaultValue
	useDefaults := dv != nil && dv.ConfigKey != "" && sel.Settings != nil
	if useDefaults {
		var err error
		defaultID, err = storedDefault(ctx, sel, dv)
		if err != nil {
			return "", err
		}
	}

	id, err := PromptUser(ctx, sel, cfg, opts, defaultID)
	if err != nil {
		return "", err
	}

	if useDefaults && id != defaultID {
		if err := offerToSave(sel, dv.ConfigKey, id); err != nil {
			return "", err
		}
	}
	return id, nil
}

func storedDefault[L any](ctx context.Context, sel *Selector, dv *DefaultValue[L]) (string, error) {
	stored, ok := sel.Settings.StringSetting(dv.ConfigKey)
	if !ok || stored == "" {
		return "", nil
	}
	if dv.GetItem == nil {
		return stored, nil
	}

	item, err := dv.GetItem(ctx, stored)
	if err != nil {
		if errors.Is(err, ErrStaleDefault) {
			logging.Debug("Selection", "stored default %s for %s is gone, resetting it", stored, dv.ConfigKey)
			if err := sel.Settings.ResetSetting(dv.ConfigKey); err != nil {
				return "", fmt.Errorf("failed to reset stored default %s: %w", dv.ConfigKey, err)
			}
			return "", nil
		}
		return "", err
	}

	if dv.UserMessage != nil {
		fmt.Fprintln(sel.Out, dv.UserMessage(item))
	}
	return stored, nil
}

const (
	saveYes   = "Yes"
	saveNo    = "No"
	saveNever = "No, and do not ask again"
)

func offerToSave(sel *Selector, configKey, id string) error {
	neverKey := configKey + neverAskSuffix
	if sel.Settings.BoolSetting(neverKey) {
		return nil
	}

	choices := prompt.Choices(saveYes, saveNo, saveNever)
	index, err := sel.Prompter.Select(prompt.SelectQuestion{
		Message: "Do you want to save this as the default?",
		Choices: choices,
	})
	if err != nil {
		return err
	}

	switch choices[index].Name {
	case saveYes:
		if err := sel.Settings.SetSetting(configKey, id); err != nil {
			return fmt.Errorf("failed to save default: %w", err)
		}
		fmt.Fprintf(sel.Out, "%s is now the default.\nYou can reset these settings using the %s command.\n",
			text.Bold.Sprint(id), text.Bold.Sprint("profile reset"))
	case saveNever:
		if err := sel.Settings.SetSetting(neverKey, true); err != nil {
			return fmt.Errorf("failed to save default: %w", err)
		}
		fmt.Fprintf(sel.Out, "You will not be asked again.\nYou can reset these settings using the %s command.\n",
			text.Bold.Sprint("profile reset"))
	}
	return nil
}
