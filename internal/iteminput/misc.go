package iteminput

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"hubctl/internal/prompt"
)

const noneSummary = "(none)"

// StringOptions configures String and OptionalString.
type StringOptions struct {
	// Default is offered when building a new value. DefaultFunc, when set, takes
	// precedence and can derive the default from the ancestors.
	Default     string
	DefaultFunc func(Ancestors) string
	Validate    ValidateFunc
	// HelpText is printed when the user answers "?".
	HelpText string
}

func (o StringOptions) defaultFor(a Ancestors) string {
	if o.DefaultFunc != nil {
		return o.DefaultFunc(a)
	}
	return o.Default
}

type stringDef struct {
	name     string
	opts     StringOptions
	optional bool
}

// String is a required line of text.
func String(name string, opts StringOptions) Definition[string] {
	return &stringDef{name: name, opts: opts}
}

// OptionalString is a line of text that may be left empty. The empty string
// means the value is absent.
func OptionalString(name string, opts StringOptions) Definition[string] {
	return &stringDef{name: name, opts: opts, optional: true}
}

func (d *stringDef) Name() string { return d.name }

func (d *stringDef) BuildFromUserInput(s Session) (Result[string], error) {
	return d.ask(s, d.opts.defaultFor(s.Ancestors))
}

func (d *stringDef) UpdateFromUserInput(original string, s Session) (Result[string], error) {
	return d.ask(s, original)
}

func (d *stringDef) SummarizeForEdit(value string, _ Ancestors) (string, bool) {
	if d.optional && value == "" {
		return noneSummary, true
	}
	return value, true
}

func (d *stringDef) ask(s Session, def string) (Result[string], error) {
	message := d.name
	if d.optional {
		message += " (optional)"
	}

	validate := func(input string) error {
		if input == "" {
			if d.optional {
				return nil
			}
			return errors.New("value is required")
		}
		if d.opts.Validate != nil {
			return d.opts.Validate(input, s.Ancestors)
		}
		return nil
	}

	answer, err := askWithHelp(s, prompt.InputQuestion{Message: message, Default: def, Validate: validate}, d.opts.HelpText)
	if err != nil {
		return Result[string]{}, err
	}
	return Done(answer), nil
}

// askWithHelp asks q; when helpText is set, "?" prints it and asks again.
func askWithHelp(s Session, q prompt.InputQuestion, helpText string) (string, error) {
	if helpText != "" {
		q.Message += " (? for help)"
		validate := q.Validate
		q.Validate = func(input string) error {
			if input == "?" || validate == nil {
				return nil
			}
			return validate(input)
		}
	}

	for {
		answer, err := s.Prompter.Input(q)
		if err != nil {
			return "", err
		}
		if helpText != "" && answer == "?" {
			s.printHelp(helpText)
			continue
		}
		return answer, nil
	}
}

// IntegerOptions configures Integer and OptionalInteger.
type IntegerOptions struct {
	Min      *int
	Max      *int
	Default  *int
	HelpText string
}

var integerRegex = regexp.MustCompile(`^-?\d+$`)

func (o IntegerOptions) validate(input string) error {
	if !integerRegex.MatchString(input) {
		return fmt.Errorf("%s is not a valid integer", input)
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		return fmt.Errorf("%s is not a valid integer", input)
	}
	if o.Min != nil && n < *o.Min {
		return fmt.Errorf("must be no less than %d", *o.Min)
	}
	if o.Max != nil && n > *o.Max {
		return fmt.Errorf("must be no more than %d", *o.Max)
	}
	return nil
}

type integerDef struct {
	name string
	opts IntegerOptions
}

// OptionalInteger is an integer that may be left empty (nil).
func OptionalInteger(name string, opts IntegerOptions) Definition[*int] {
	return &integerDef{name: name, opts: opts}
}

func (d *integerDef) Name() string { return d.name }

func (d *integerDef) BuildFromUserInput(s Session) (Result[*int], error) {
	return d.ask(s, d.opts.Default)
}

func (d *integerDef) UpdateFromUserInput(original *int, s Session) (Result[*int], error) {
	return d.ask(s, original)
}

func (d *integerDef) SummarizeForEdit(value *int, _ Ancestors) (string, bool) {
	if value == nil {
		return noneSummary, true
	}
	return strconv.Itoa(*value), true
}

func (d *integerDef) ask(s Session, def *int) (Result[*int], error) {
	q := prompt.InputQuestion{
		Message: d.name + " (optional)",
		Validate: func(input string) error {
			if input == "" {
				return nil
			}
			return d.opts.validate(input)
		},
	}
	if def != nil {
		q.Default = strconv.Itoa(*def)
	}

	answer, err := askWithHelp(s, q, d.opts.HelpText)
	if err != nil {
		return Result[*int]{}, err
	}
	if answer == "" {
		return Done[*int](nil), nil
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return Result[*int]{}, fmt.Errorf("validated integer %q did not parse: %w", answer, err)
	}
	return Done(&n), nil
}

type requiredIntegerDef struct {
	name string
	opts IntegerOptions
}

// Integer is a required integer with optional bounds.
func Integer(name string, opts IntegerOptions) Definition[int] {
	return &requiredIntegerDef{name: name, opts: opts}
}

func (d *requiredIntegerDef) Name() string { return d.name }

func (d *requiredIntegerDef) BuildFromUserInput(s Session) (Result[int], error) {
	return d.ask(s, d.opts.Default)
}

func (d *requiredIntegerDef) UpdateFromUserInput(original int, s Session) (Result[int], error) {
	return d.ask(s, &original)
}

func (d *requiredIntegerDef) SummarizeForEdit(value int, _ Ancestors) (string, bool) {
	return strconv.Itoa(value), true
}

func (d *requiredIntegerDef) ask(s Session, def *int) (Result[int], error) {
	q := prompt.InputQuestion{
		Message: d.name,
		Validate: func(input string) error {
			if input == "" {
				return errors.New("value is required")
			}
			return d.opts.validate(input)
		},
	}
	if def != nil {
		q.Default = strconv.Itoa(*def)
	}

	answer, err := askWithHelp(s, q, d.opts.HelpText)
	if err != nil {
		return Result[int]{}, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return Result[int]{}, fmt.Errorf("validated integer %q did not parse: %w", answer, err)
	}
	return Done(n), nil
}

type booleanDef struct {
	name string
	def  bool
}

// Boolean is a yes/no question. defaultAnswer is used when building a new value.
func Boolean(name string, defaultAnswer bool) Definition[bool] {
	return &booleanDef{name: name, def: defaultAnswer}
}

func (d *booleanDef) Name() string { return d.name }

func (d *booleanDef) BuildFromUserInput(s Session) (Result[bool], error) {
	answer, err := s.Prompter.Confirm(d.name, d.def)
	if err != nil {
		return Result[bool]{}, err
	}
	return Done(answer), nil
}

func (d *booleanDef) UpdateFromUserInput(original bool, s Session) (Result[bool], error) {
	answer, err := s.Prompter.Confirm(d.name, original)
	if err != nil {
		return Result[bool]{}, err
	}
	return Done(answer), nil
}

func (d *booleanDef) SummarizeForEdit(value bool, _ Ancestors) (string, bool) {
	if value {
		return "Yes", true
	}
	return "No", true
}

type staticDef[T any] struct {
	value T
}

// Static always yields value without asking. It never appears in menus.
func Static[T any](value T) Definition[T] {
	return &staticDef[T]{value: value}
}

func (d *staticDef[T]) Name() string { return "unused" }

func (d *staticDef[T]) BuildFromUserInput(Session) (Result[T], error) {
	return Done(d.value), nil
}

func (d *staticDef[T]) UpdateFromUserInput(T, Session) (Result[T], error) {
	return Done(d.value), nil
}

func (d *staticDef[T]) SummarizeForEdit(T, Ancestors) (string, bool) { return "", false }

type computedDef[T any] struct {
	compute func(Ancestors) T
}

// Computed derives its value from the ancestors without asking. The value is
// recomputed whenever an earlier property of the enclosing object changes.
func Computed[T any](compute func(Ancestors) T) Definition[T] {
	return &computedDef[T]{compute: compute}
}

func (d *computedDef[T]) Name() string { return "unused" }

func (d *computedDef[T]) BuildFromUserInput(s Session) (Result[T], error) {
	return Done(d.compute(s.Ancestors)), nil
}

func (d *computedDef[T]) UpdateFromUserInput(_ T, s Session) (Result[T], error) {
	return Done(d.compute(s.Ancestors)), nil
}

func (d *computedDef[T]) SummarizeForEdit(T, Ancestors) (string, bool) { return "", false }

func (d *computedDef[T]) UpdateIfNeeded(_ T, _ string, s Session) (Result[T], error) {
	return Done(d.compute(s.Ancestors)), nil
}

type optionalDef[T any] struct {
	inner    Definition[T]
	isActive func(Ancestors) bool
}

// Optional uses inner only while isActive reports true for the current
// ancestors; otherwise the value is nil and the user is not asked. Whether the
// value was active before is read from the value itself: nil means inactive.
func Optional[T any](inner Definition[T], isActive func(Ancestors) bool) Definition[*T] {
	return &optionalDef[T]{inner: inner, isActive: isActive}
}

func (d *optionalDef[T]) Name() string { return d.inner.Name() }

func (d *optionalDef[T]) BuildFromUserInput(s Session) (Result[*T], error) {
	if !d.isActive(s.Ancestors) {
		return Done[*T](nil), nil
	}
	return pointerResult(d.inner.BuildFromUserInput(s))
}

func (d *optionalDef[T]) UpdateFromUserInput(original *T, s Session) (Result[*T], error) {
	if !d.isActive(s.Ancestors) {
		return Done[*T](nil), nil
	}
	if original == nil {
		return pointerResult(d.inner.BuildFromUserInput(s))
	}
	return pointerResult(d.inner.UpdateFromUserInput(*original, s))
}

func (d *optionalDef[T]) SummarizeForEdit(value *T, ancestors Ancestors) (string, bool) {
	if !d.isActive(ancestors) {
		return "", false
	}
	if value == nil {
		return noneSummary, true
	}
	return d.inner.SummarizeForEdit(*value, ancestors)
}

func (d *optionalDef[T]) UpdateIfNeeded(original *T, updatedProperty string, s Session) (Result[*T], error) {
	wasActive := original != nil
	active := d.isActive(s.Ancestors)

	switch {
	case wasActive && active:
		if dep, ok := d.inner.(Dependent[T]); ok {
			return pointerResult(dep.UpdateIfNeeded(*original, updatedProperty, s))
		}
		return Done(original), nil
	case active:
		return pointerResult(d.inner.BuildFromUserInput(s))
	default:
		return Done[*T](nil), nil
	}
}

func pointerResult[T any](r Result[T], err error) (Result[*T], error) {
	if err != nil {
		return Result[*T]{}, err
	}
	if r.Canceled {
		return Cancel[*T](), nil
	}
	v := r.Value
	return Done(&v), nil
}
