package iteminput

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/jedib0t/go-pretty/v6/text"

	"hubctl/internal/prompt"
)

const (
	// MaxItemValueLength is the length summaries of lists are clipped to.
	MaxItemValueLength = 60
	// PageSize is the number of menu entries shown at once.
	PageSize = 20
)

// ErrCanceled is returned by the review loop when the user canceled the whole
// operation. Commands treat it as a successful, silent exit.
var ErrCanceled = errors.New("action canceled")

// Result is the outcome of one interactive step. A canceled result carries no value.
type Result[T any] struct {
	Value    T
	Canceled bool
}

// Done wraps a finished value.
func Done[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Cancel returns the canceled result for T.
func Cancel[T any]() Result[T] {
	return Result[T]{Canceled: true}
}

// Ancestors holds the values enclosing the one being edited, outermost first. The
// last entry is the container currently being built, e.g. the object whose
// property is being asked for or the list an item is being added to.
//
// Ancestors are never modified in place; With returns an extended copy.
type Ancestors []any

// With returns a copy of a with v appended.
func (a Ancestors) With(v any) Ancestors {
	out := make(Ancestors, len(a), len(a)+1)
	copy(out, a)
	return append(out, v)
}

// Parent returns the innermost ancestor or nil.
func (a Ancestors) Parent() any {
	if len(a) == 0 {
		return nil
	}
	return a[len(a)-1]
}

// Root returns the outermost ancestor or nil.
func (a Ancestors) Root() any {
	if len(a) == 0 {
		return nil
	}
	return a[0]
}

// ParentAs returns the innermost ancestor if it has type T.
func ParentAs[T any](a Ancestors) (T, bool) {
	v, ok := a.Parent().(T)
	return v, ok
}

// Nearest returns the innermost ancestor of type T.
func Nearest[T any](a Ancestors) (T, bool) {
	for i := len(a) - 1; i >= 0; i-- {
		if v, ok := a[i].(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Session carries what every definition needs to talk to the user.
type Session struct {
	Prompter  prompt.Prompter
	Out       io.Writer
	Ancestors Ancestors
}

// Nested returns a session with v pushed onto the ancestors.
func (s Session) Nested(v any) Session {
	s.Ancestors = s.Ancestors.With(v)
	return s
}

func (s Session) printHelp(helpText string) {
	fmt.Fprintf(s.Out, "\n%s\n\n", helpText)
}

func (s Session) printAttention(message string) {
	fmt.Fprintln(s.Out, text.FgRed.Sprint(message))
}

// Definition describes how one value of type T is entered and edited
// interactively. Definitions are stateless and can be reused across sessions.
type Definition[T any] interface {
	// Name is the label used in generated menu text.
	Name() string
	// BuildFromUserInput asks the user for everything needed to create a new T.
	BuildFromUserInput(s Session) (Result[T], error)
	// UpdateFromUserInput lets the user edit original. Unchanged parts are kept.
	UpdateFromUserInput(original T, s Session) (Result[T], error)
	// SummarizeForEdit returns a one line summary of value for parent menus.
	// It returns false for values that cannot be edited, such as static or
	// computed values; those are hidden from menus.
	SummarizeForEdit(value T, ancestors Ancestors) (string, bool)
}

// FinalValidator is implemented by definitions that check a finished value as a
// whole. The review loop will not finish while ValidateFinal returns an error.
type FinalValidator[T any] interface {
	ValidateFinal(value T, ancestors Ancestors) error
}

// Dependent is implemented by definitions whose value depends on earlier
// properties of the enclosing object. UpdateIfNeeded is called for every later
// property after a property changed.
type Dependent[T any] interface {
	UpdateIfNeeded(original T, updatedProperty string, s Session) (Result[T], error)
}

// ContractError reports a misconfigured definition or an impossible menu state.
// It indicates a bug in the command, not bad user input.
type ContractError struct {
	Definition string
	Reason     string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("input definition %q: %s", e.Definition, e.Reason)
}

// IsContractError checks if an error is a ContractError.
func IsContractError(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}

// ValidateFunc checks a typed answer. The returned error's message is shown to
// the user before the question is asked again.
type ValidateFunc func(input string, ancestors Ancestors) error

// equal compares unexported struct fields too, which plain cmp.Equal refuses.
func equal[T any](a, b T) bool {
	return cmp.Equal(a, b, cmp.Exporter(func(reflect.Type) bool { return true }))
}
