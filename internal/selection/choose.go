package selection

import (
	"context"
)

// ChooseOptions are the per-command knobs of a Chooser. The zero value lists
// and prompts without treating numbers as indexes or consulting stored defaults.
type ChooseOptions struct {
	// AllowIndex translates a numeric command line argument into the id at that
	// position of the sorted list.
	AllowIndex bool
	// UseConfigDefault offers the stored default and asks to save new answers.
	UseConfigDefault bool
	// AutoChoose picks the only item without prompting.
	AutoChoose bool
	Verbose    bool
}

// Chooser bundles everything needed to pick one item of a type.
type Chooser[L any] struct {
	Config    Config
	ListItems ListFunc[L]
	// ConfigKey names the stored default. Empty disables stored defaults.
	ConfigKey string
	// GetItem verifies a stored default before it is offered.
	GetItem        GetItemFunc[L]
	DefaultMessage func(item L) string
	PromptMessage  string
}

// Choose resolves fromArg, typically a positional argument, to an id, prompting
// when it is empty.
func (c Chooser[L]) Choose(ctx context.Context, sel *Selector, fromArg string, opts ChooseOptions) (string, error) {
	preselected := fromArg
	if opts.AllowIndex {
		id, err := TranslateToID(ctx, c.Config.Sorting, fromArg, c.ListItems)
		if err != nil {
			return "", err
		}
		preselected = id
	}

	selectOpts := Options[L]{
		ListItems:     c.ListItems,
		PromptMessage: c.PromptMessage,
		AutoChoose:    opts.AutoChoose,
		PreselectedID: preselected,
		Verbose:       opts.Verbose,
	}
	if opts.UseConfigDefault && c.ConfigKey != "" {
		selectOpts.DefaultValue = &DefaultValue[L]{
			ConfigKey:   c.ConfigKey,
			GetItem:     c.GetItem,
			UserMessage: c.DefaultMessage,
		}
	}
	return SelectFromList(ctx, sel, c.Config, selectOpts)
}
