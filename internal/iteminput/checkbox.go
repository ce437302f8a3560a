package iteminput

import (
	"fmt"
	"slices"

	"hubctl/internal/prompt"
	hubstrings "hubctl/pkg/strings"
)

// CheckboxOptions configures Checkbox.
type CheckboxOptions[T any] struct {
	// Summarize replaces the default summary, the selected values joined with
	// ", " and clipped to MaxItemValueLength.
	Summarize func(values []T, ancestors Ancestors) string
	// Validate is checked by the prompt before the selection is accepted.
	Validate func(values []T) error
	// Default is pre-checked when building a new value.
	Default []T
	// HelpText is printed right before the prompt.
	HelpText string
}

type checkboxDef[T any] struct {
	name  string
	items []Choice[T]
	opts  CheckboxOptions[T]
}

// Checkbox selects any number of values from a fixed list of candidates.
func Checkbox[T any](name string, items []Choice[T], opts CheckboxOptions[T]) Definition[[]T] {
	return &checkboxDef[T]{name: name, items: items, opts: opts}
}

func (d *checkboxDef[T]) Name() string { return d.name }

func (d *checkboxDef[T]) BuildFromUserInput(s Session) (Result[[]T], error) {
	return d.edit(s, d.opts.Default)
}

func (d *checkboxDef[T]) UpdateFromUserInput(original []T, s Session) (Result[[]T], error) {
	return d.edit(s, original)
}

func (d *checkboxDef[T]) SummarizeForEdit(values []T, a Ancestors) (string, bool) {
	if d.opts.Summarize != nil {
		return d.opts.Summarize(values, a), true
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, stringFromValue(v))
	}
	return hubstrings.JoinClipped(parts, MaxItemValueLength), true
}

func (d *checkboxDef[T]) edit(s Session, values []T) (Result[[]T], error) {
	if d.opts.HelpText != "" {
		s.printHelp(d.opts.HelpText)
	}

	names := make([]string, len(d.items))
	checked := make([]bool, len(d.items))
	for i, item := range d.items {
		names[i] = item.Name
		checked[i] = slices.ContainsFunc(values, func(v T) bool { return equal(v, item.Value) })
	}

	q := prompt.MultiSelectQuestion{
		Message: fmt.Sprintf("Select %s.", d.name),
		Choices: names,
		Checked: checked,
	}
	if d.opts.Validate != nil {
		q.Validate = func(selected []int) error {
			return d.opts.Validate(d.valuesAt(selected))
		}
	}

	selected, err := s.Prompter.MultiSelect(q)
	if err != nil {
		return Result[[]T]{}, err
	}
	return Done(d.valuesAt(selected)), nil
}

func (d *checkboxDef[T]) valuesAt(indexes []int) []T {
	values := make([]T, 0, len(indexes))
	for _, i := range indexes {
		values = append(values, d.items[i].Value)
	}
	return values
}
