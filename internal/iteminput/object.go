package iteminput

import (
	"fmt"
	"strings"

	"hubctl/pkg/logging"
)

// maxPropertiesForDefaultRollup is the largest nested object whose properties are
// shown in the parent's menu by default.
const maxPropertiesForDefaultRollup = 3

// Rollup controls whether a nested object's properties appear directly in the
// parent object's menu.
type Rollup int

const (
	// RollupDefault rolls up objects with at most three properties.
	RollupDefault Rollup = iota
	RollupAlways
	RollupNever
)

// Property is one field of an object definition. Create properties with Field.
type Property[T any] interface {
	Key() string
	build(obj *T, s Session) (canceled bool, err error)
	menuChoices(obj T, a Ancestors) ([]propertyChoice, error)
	update(obj *T, path string, s Session) (changed bool, err error)
	updateIfNeeded(obj *T, updatedPath string, s Session) error
}

type propertyChoice struct {
	label string
	path  string
}

// nestedObject is implemented by *ObjectDef so a parent can show and edit the
// properties of a rolled up child directly.
type nestedObject[F any] interface {
	rolledUp() bool
	hasSummary() bool
	propertyChoices(obj F, a Ancestors) ([]propertyChoice, error)
	updateProperty(obj *F, path string, s Session) (bool, error)
}

type field[T, F any] struct {
	key string
	def Definition[F]
	get func(T) F
	set func(*T, F)
}

// Field binds def to one field of T through a getter and a setter. key names the
// property in menu paths and in the updatedProperty argument of UpdateIfNeeded.
func Field[T, F any](key string, def Definition[F], get func(T) F, set func(*T, F)) Property[T] {
	return &field[T, F]{key: key, def: def, get: get, set: set}
}

func (f *field[T, F]) Key() string { return f.key }

func (f *field[T, F]) nested() (nestedObject[F], bool) {
	n, ok := any(f.def).(nestedObject[F])
	return n, ok
}

func (f *field[T, F]) build(obj *T, s Session) (bool, error) {
	res, err := f.def.BuildFromUserInput(s)
	if err != nil {
		return false, err
	}
	if res.Canceled {
		return true, nil
	}
	f.set(obj, res.Value)
	return false, nil
}

func (f *field[T, F]) menuChoices(obj T, a Ancestors) ([]propertyChoice, error) {
	value := f.get(obj)

	if n, ok := f.nested(); ok {
		if n.rolledUp() {
			choices, err := n.propertyChoices(value, a.With(value))
			if err != nil {
				return nil, err
			}
			for i := range choices {
				choices[i].path = f.key + "." + choices[i].path
			}
			return choices, nil
		}
		if !n.hasSummary() {
			return nil, &ContractError{Definition: f.def.Name(), Reason: "missing summary function for nested object that is not rolled up"}
		}
	}

	summary, ok := f.def.SummarizeForEdit(value, a)
	if !ok {
		return nil, nil
	}
	return []propertyChoice{{label: fmt.Sprintf("Edit %s: %s", f.def.Name(), summary), path: f.key}}, nil
}

func (f *field[T, F]) update(obj *T, path string, s Session) (bool, error) {
	current := f.get(*obj)

	if path == f.key {
		res, err := f.def.UpdateFromUserInput(current, s)
		if err != nil {
			return false, err
		}
		if res.Canceled || equal(current, res.Value) {
			return false, nil
		}
		f.set(obj, res.Value)
		return true, nil
	}

	n, ok := f.nested()
	if !ok {
		return false, &ContractError{Definition: f.def.Name(), Reason: fmt.Sprintf("no property at path %q", path)}
	}
	changed, err := n.updateProperty(&current, strings.TrimPrefix(path, f.key+"."), s)
	if err != nil || !changed {
		return false, err
	}
	f.set(obj, current)
	return true, nil
}

func (f *field[T, F]) updateIfNeeded(obj *T, updatedPath string, s Session) error {
	dep, ok := f.def.(Dependent[F])
	if !ok {
		return nil
	}
	res, err := dep.UpdateIfNeeded(f.get(*obj), updatedPath, s)
	if err != nil {
		return err
	}
	if !res.Canceled {
		f.set(obj, res.Value)
	}
	return nil
}

// ObjectOptions configures Object.
type ObjectOptions[T any] struct {
	// Summarize labels the object in a parent menu. It is required for nested
	// objects that are not rolled up and for objects used as array items.
	Summarize func(value T, ancestors Ancestors) string
	Rollup    Rollup
	// HelpText is printed before the questions when building and offered as a
	// Help entry when editing.
	HelpText      string
	ValidateFinal func(value T, ancestors Ancestors) error
}

// ObjectDef builds a struct property by property.
type ObjectDef[T any] struct {
	name  string
	props []Property[T]
	opts  ObjectOptions[T]
}

// Object defines a struct value made of props. When building, the properties
// are asked for in order; when editing, a menu lists every editable property.
func Object[T any](name string, props []Property[T], opts ObjectOptions[T]) *ObjectDef[T] {
	return &ObjectDef[T]{name: name, props: props, opts: opts}
}

func (d *ObjectDef[T]) Name() string { return d.name }

func (d *ObjectDef[T]) BuildFromUserInput(s Session) (Result[T], error) {
	if d.opts.HelpText != "" {
		s.printHelp(d.opts.HelpText)
	}

	var obj T
	for _, p := range d.props {
		canceled, err := p.build(&obj, s.Nested(obj))
		if err != nil {
			return Result[T]{}, err
		}
		if canceled {
			logging.Debug("ItemInput", "building %s canceled at %s", d.name, p.Key())
			return Cancel[T](), nil
		}
	}
	return Done(obj), nil
}

func (d *ObjectDef[T]) UpdateFromUserInput(original T, s Session) (Result[T], error) {
	updated := original
	for {
		var m menu
		choices, err := d.propertyChoices(updated, s.Ancestors.With(updated))
		if err != nil {
			return Result[T]{}, err
		}
		for _, c := range choices {
			m.add(c.label, menuEntry{action: ActionEdit, path: c.path})
		}
		m.separator()
		m.addHelp(d.opts.HelpText)
		m.addAction(finishOption(d.name), ActionFinish)
		m.addCancel()

		entry, err := m.ask(s.Prompter, d.name, ActionFinish)
		if err != nil {
			return Result[T]{}, err
		}

		switch entry.action {
		case ActionHelp:
			s.printHelp(d.opts.HelpText)
		case ActionCancel:
			return Cancel[T](), nil
		case ActionFinish:
			return Done(updated), nil
		case ActionEdit:
			if _, err := d.updateProperty(&updated, entry.path, s); err != nil {
				return Result[T]{}, err
			}
		default:
			return Result[T]{}, &ContractError{Definition: d.name, Reason: fmt.Sprintf("unexpected state in object; action = %s", entry.action)}
		}
	}
}

// SummarizeForEdit uses the Summarize option. Objects without one cannot be
// summarized, which makes them unusable as array items.
func (d *ObjectDef[T]) SummarizeForEdit(value T, a Ancestors) (string, bool) {
	if d.opts.Summarize == nil {
		return "", false
	}
	return d.opts.Summarize(value, a), true
}

func (d *ObjectDef[T]) ValidateFinal(value T, a Ancestors) error {
	if d.opts.ValidateFinal == nil {
		return nil
	}
	return d.opts.ValidateFinal(value, a)
}

func (d *ObjectDef[T]) rolledUp() bool {
	switch d.opts.Rollup {
	case RollupAlways:
		return true
	case RollupNever:
		return false
	default:
		return len(d.props) <= maxPropertiesForDefaultRollup
	}
}

func (d *ObjectDef[T]) hasSummary() bool {
	return d.opts.Summarize != nil
}

func (d *ObjectDef[T]) propertyChoices(obj T, a Ancestors) ([]propertyChoice, error) {
	var choices []propertyChoice
	for _, p := range d.props {
		pc, err := p.menuChoices(obj, a)
		if err != nil {
			return nil, err
		}
		choices = append(choices, pc...)
	}
	return choices, nil
}

// updateProperty edits the property at path and, when it changed, gives every
// later property a chance to react through UpdateIfNeeded. s is the session
// enclosing obj; properties see obj as their innermost ancestor.
func (d *ObjectDef[T]) updateProperty(obj *T, path string, s Session) (bool, error) {
	key, _, _ := strings.Cut(path, ".")
	idx := -1
	for i, p := range d.props {
		if p.Key() == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, &ContractError{Definition: d.name, Reason: fmt.Sprintf("no property %q", key)}
	}

	changed, err := d.props[idx].update(obj, path, s.Nested(*obj))
	if err != nil || !changed {
		return false, err
	}

	logging.Debug("ItemInput", "%s: %s changed, updating later properties", d.name, path)
	for _, later := range d.props[idx+1:] {
		if err := later.updateIfNeeded(obj, path, s.Nested(*obj)); err != nil {
			return false, err
		}
	}
	return true, nil
}
