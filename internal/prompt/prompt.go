package prompt

import (
	"errors"
)

// DefaultPageSize is the number of choices shown at once by Select when the
// question does not set its own page size.
const DefaultPageSize = 20

// ErrInterrupted is returned when the user aborts a prompt with Ctrl+C or Ctrl+D.
var ErrInterrupted = errors.New("prompt interrupted")

// Choice is one entry of a Select menu. Separators are displayed but cannot be chosen.
type Choice struct {
	Name      string
	Separator bool
}

// Separator returns a non-selectable divider line.
func Separator() Choice {
	return Choice{Name: "--------", Separator: true}
}

// Choices turns plain names into selectable choices.
func Choices(names ...string) []Choice {
	choices := make([]Choice, 0, len(names))
	for _, name := range names {
		choices = append(choices, Choice{Name: name})
	}
	return choices
}

// SelectQuestion asks the user to pick exactly one choice.
type SelectQuestion struct {
	Message string
	Choices []Choice
	// Default is the index into Choices chosen on an empty answer.
	// It must point at a selectable choice.
	Default  int
	PageSize int
}

// MultiSelectQuestion asks the user to pick any number of choices.
type MultiSelectQuestion struct {
	Message string
	Choices []string
	// Checked marks choices that are selected when the prompt opens.
	Checked []bool
	// Validate is run on the selected indexes before the answer is accepted.
	Validate func(selected []int) error
}

// InputQuestion asks for a single line of free text.
type InputQuestion struct {
	Message string
	Default string
	// Validate is run on every submitted line; a non-nil error redisplays the prompt.
	Validate func(answer string) error
}

// Prompter is the synchronous, line-oriented prompt primitive used by every
// interactive flow. Implementations block until the user has answered.
type Prompter interface {
	// Select returns the index into q.Choices of the chosen entry.
	Select(q SelectQuestion) (int, error)
	// MultiSelect returns the indexes into q.Choices of the chosen entries, ascending.
	MultiSelect(q MultiSelectQuestion) ([]int, error)
	// Input returns a validated line of text.
	Input(q InputQuestion) (string, error)
	// Confirm asks a yes/no question.
	Confirm(message string, defaultAnswer bool) (bool, error)
}

// FirstSelectable returns the index of the first non-separator choice, or -1.
func FirstSelectable(choices []Choice) int {
	for i, c := range choices {
		if !c.Separator {
			return i
		}
	}
	return -1
}
