package iteminput

import (
	"fmt"

	hubstrings "hubctl/pkg/strings"
)

// Choice pairs a display name with the value it stands for.
type Choice[T any] struct {
	Name  string
	Value T
}

// StringChoices makes choices whose names are their values.
func StringChoices(values ...string) []Choice[string] {
	choices := make([]Choice[string], 0, len(values))
	for _, v := range values {
		choices = append(choices, Choice[string]{Name: v, Value: v})
	}
	return choices
}

func stringFromValue(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}

// ListSelectionOptions configures ListSelection.
type ListSelectionOptions[T any] struct {
	// Summarize labels an item in the list and in parent menus. The default
	// formats the item with %v.
	Summarize func(item T, ancestors Ancestors) string
	Default   *T
}

type listSelectionDef[T any] struct {
	name  string
	items []T
	opts  ListSelectionOptions[T]
}

// ListSelection picks one of items. The list ends with a Cancel entry.
func ListSelection[T any](name string, items []T, opts ListSelectionOptions[T]) Definition[T] {
	return &listSelectionDef[T]{name: name, items: items, opts: opts}
}

func (d *listSelectionDef[T]) Name() string { return d.name }

func (d *listSelectionDef[T]) summarize(item T, a Ancestors) string {
	if d.opts.Summarize != nil {
		return d.opts.Summarize(item, a)
	}
	return stringFromValue(item)
}

func (d *listSelectionDef[T]) BuildFromUserInput(s Session) (Result[T], error) {
	return d.choose(s, d.opts.Default)
}

func (d *listSelectionDef[T]) UpdateFromUserInput(original T, s Session) (Result[T], error) {
	return d.choose(s, &original)
}

func (d *listSelectionDef[T]) SummarizeForEdit(value T, a Ancestors) (string, bool) {
	return d.summarize(value, a), true
}

func (d *listSelectionDef[T]) choose(s Session, def *T) (Result[T], error) {
	var m menu
	defIdx := 0
	for i, item := range d.items {
		m.add(d.summarize(item, s.Ancestors), menuEntry{action: ActionEdit, index: i})
		if def != nil && equal(item, *def) {
			defIdx = i
		}
	}
	m.addCancel()

	entry, err := m.askAt(s.Prompter, fmt.Sprintf("Select %s:", d.name), defIdx)
	if err != nil {
		return Result[T]{}, err
	}
	if entry.action == ActionCancel {
		return Cancel[T](), nil
	}
	return Done(d.items[entry.index]), nil
}

// SelectOptions configures Select.
type SelectOptions[T any] struct {
	// Summarize labels the chosen value in parent menus. The default uses the
	// name of the matching choice.
	Summarize func(value T, ancestors Ancestors) string
	Default   *T
	HelpText  string
}

type selectDef[T any] struct {
	name    string
	choices []Choice[T]
	opts    SelectOptions[T]
}

// Select picks exactly one value out of a fixed set of named choices.
func Select[T any](name string, choices []Choice[T], opts SelectOptions[T]) Definition[T] {
	return &selectDef[T]{name: name, choices: choices, opts: opts}
}

func (d *selectDef[T]) Name() string { return d.name }

func (d *selectDef[T]) BuildFromUserInput(s Session) (Result[T], error) {
	return d.choose(s, d.opts.Default)
}

func (d *selectDef[T]) UpdateFromUserInput(original T, s Session) (Result[T], error) {
	return d.choose(s, &original)
}

func (d *selectDef[T]) SummarizeForEdit(value T, a Ancestors) (string, bool) {
	if d.opts.Summarize != nil {
		return d.opts.Summarize(value, a), true
	}
	for _, c := range d.choices {
		if equal(c.Value, value) {
			return hubstrings.Clip(c.Name, MaxItemValueLength), true
		}
	}
	return hubstrings.Clip(stringFromValue(value), MaxItemValueLength), true
}

func (d *selectDef[T]) choose(s Session, def *T) (Result[T], error) {
	var m menu
	defIdx := 0
	for i, c := range d.choices {
		m.add(c.Name, menuEntry{action: ActionEdit, index: i})
		if def != nil && equal(c.Value, *def) {
			defIdx = i
		}
	}
	m.separator()
	m.addHelp(d.opts.HelpText)
	m.addCancel()

	for {
		entry, err := m.askAt(s.Prompter, fmt.Sprintf("Select %s.", d.name), defIdx)
		if err != nil {
			return Result[T]{}, err
		}
		switch entry.action {
		case ActionHelp:
			s.printHelp(d.opts.HelpText)
		case ActionCancel:
			return Cancel[T](), nil
		default:
			return Done(d.choices[entry.index].Value), nil
		}
	}
}
