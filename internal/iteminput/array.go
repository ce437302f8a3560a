package iteminput

import (
	"fmt"
	"slices"

	"hubctl/pkg/logging"
	hubstrings "hubctl/pkg/strings"
)

// ArrayOptions configures Array.
type ArrayOptions[T any] struct {
	// Summarize replaces the default summary, the item summaries joined with
	// ", " and clipped to MaxItemValueLength.
	Summarize func(items []T, ancestors Ancestors) string
	// AllowDuplicates permits equal items in the list.
	AllowDuplicates bool
	// MinItems is the minimum number of items. Nil means 1.
	MinItems *int
	// MaxItems is the maximum number of items. Zero means unbounded.
	MaxItems int
	// Equal compares items for duplicate detection. The default is cmp.Equal.
	Equal    func(a, b T) bool
	HelpText string
}

// Items is a helper for ArrayOptions.MinItems.
func Items(n int) *int {
	return &n
}

// ArrayDef edits a list of values, each entered through the item definition.
type ArrayDef[T any] struct {
	name     string
	itemDef  Definition[T]
	opts     ArrayOptions[T]
	minItems int
}

// Array wraps itemDef into a definition for a list. The item definition must be
// editable; one reporting its summary as uneditable fails with a ContractError
// before the first menu is shown.
func Array[T any](name string, itemDef Definition[T], opts ArrayOptions[T]) *ArrayDef[T] {
	minItems := 1
	if opts.MinItems != nil {
		minItems = *opts.MinItems
	}
	if opts.Equal == nil {
		opts.Equal = equal[T]
	}
	return &ArrayDef[T]{name: name, itemDef: itemDef, opts: opts, minItems: minItems}
}

func (d *ArrayDef[T]) Name() string { return d.name }

func (d *ArrayDef[T]) BuildFromUserInput(s Session) (Result[[]T], error) {
	return d.editList([]T{}, s)
}

func (d *ArrayDef[T]) UpdateFromUserInput(original []T, s Session) (Result[[]T], error) {
	return d.editList(slices.Clone(original), s)
}

func (d *ArrayDef[T]) SummarizeForEdit(items []T, a Ancestors) (string, bool) {
	if d.opts.Summarize != nil {
		return d.opts.Summarize(items, a), true
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		summary, ok := d.itemDef.SummarizeForEdit(item, a)
		if !ok {
			return "", false
		}
		parts = append(parts, summary)
	}
	return hubstrings.JoinClipped(parts, MaxItemValueLength), true
}

func (d *ArrayDef[T]) itemSummary(item T, a Ancestors) (string, error) {
	summary, ok := d.itemDef.SummarizeForEdit(item, a)
	if !ok {
		return "", &ContractError{Definition: d.name, Reason: "the item definition used for an array must be editable"}
	}
	return summary, nil
}

func (d *ArrayDef[T]) canAdd(list []T) bool {
	return d.opts.MaxItems <= 0 || len(list) < d.opts.MaxItems
}

func (d *ArrayDef[T]) canFinish(list []T) bool {
	return len(list) >= d.minItems
}

// isAllowed reports whether value may be stored at index (-1 for a new item).
// Storing a value equal to the one already at index is always allowed.
func (d *ArrayDef[T]) isAllowed(s Session, list []T, value T, index int) bool {
	if d.opts.AllowDuplicates {
		return true
	}
	if index >= 0 && d.opts.Equal(list[index], value) {
		return true
	}
	if slices.ContainsFunc(list, func(existing T) bool { return d.opts.Equal(existing, value) }) {
		fmt.Fprintln(s.Out, "Duplicate values are not allowed.")
		return false
	}
	return true
}

func (d *ArrayDef[T]) editList(list []T, s Session) (Result[[]T], error) {
	var zero T
	if _, err := d.itemSummary(zero, s.Ancestors); err != nil {
		return Result[[]T]{}, err
	}

	for {
		var m menu
		for i, item := range list {
			summary, err := d.itemSummary(item, s.Ancestors)
			if err != nil {
				return Result[[]T]{}, err
			}
			m.add(editOption(summary), menuEntry{action: ActionEdit, index: i})
		}
		if len(list) > 0 {
			m.separator()
		}
		m.addHelp(d.opts.HelpText)
		if d.canAdd(list) {
			m.addAction(addOption(d.itemDef.Name()), ActionAdd)
		}
		if d.canFinish(list) {
			m.addAction(finishOption(d.name), ActionFinish)
		}
		m.addCancel()

		def := ActionAdd
		if d.canFinish(list) {
			def = ActionFinish
		}
		entry, err := m.ask(s.Prompter, fmt.Sprintf("Add or edit %s.", d.name), def)
		if err != nil {
			return Result[[]T]{}, err
		}

		switch entry.action {
		case ActionAdd:
			res, err := d.itemDef.BuildFromUserInput(s.Nested(slices.Clone(list)))
			if err != nil {
				return Result[[]T]{}, err
			}
			if !res.Canceled && d.isAllowed(s, list, res.Value, -1) {
				list = append(list, res.Value)
			}
		case ActionHelp:
			s.printHelp(d.opts.HelpText)
		case ActionEdit:
			list, err = d.editItem(list, entry.index, s)
			if err != nil {
				return Result[[]T]{}, err
			}
		case ActionFinish:
			logging.Debug("ItemInput", "finished %s with %d items", d.name, len(list))
			return Done(list), nil
		case ActionCancel:
			return Cancel[[]T](), nil
		default:
			return Result[[]T]{}, &ContractError{Definition: d.name, Reason: fmt.Sprintf("unexpected state in array; action = %s", entry.action)}
		}
	}
}

func (d *ArrayDef[T]) editItem(list []T, index int, s Session) ([]T, error) {
	summary, err := d.itemSummary(list[index], s.Ancestors)
	if err != nil {
		return nil, err
	}

	var m menu
	m.addAction(editOption(summary), ActionEdit)
	if len(list) > d.minItems {
		m.addAction(deleteOption(summary), ActionDelete)
	}
	m.addCancel()

	entry, err := m.ask(s.Prompter, fmt.Sprintf("What do you want to do with %s?", summary), ActionEdit)
	if err != nil {
		return nil, err
	}

	switch entry.action {
	case ActionEdit:
		others := slices.Delete(slices.Clone(list), index, index+1)
		res, err := d.itemDef.UpdateFromUserInput(list[index], s.Nested(others))
		if err != nil {
			return nil, err
		}
		if !res.Canceled && d.isAllowed(s, list, res.Value, index) {
			list[index] = res.Value
		}
	case ActionDelete:
		list = slices.Delete(list, index, index+1)
	}
	return list, nil
}
