// Package prompttest provides a scripted prompt.Prompter for driving
// interactive flows in tests.
package prompttest

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"hubctl/internal/prompt"
)

// ErrExhausted is returned when a prompt is asked after the last scripted answer.
var ErrExhausted = errors.New("prompttest: no scripted answer left")

type kind string

const (
	kindAny         kind = "any"
	kindSelect      kind = "select"
	kindMultiSelect kind = "multiselect"
	kindInput       kind = "input"
	kindConfirm     kind = "confirm"
)

// Answer is one scripted reply.
type Answer struct {
	kind   kind
	choice string
	text   string
	yes    bool
	checks []string
}

// Choose answers a Select prompt with the choice of the given name.
// The prompt fails if no selectable choice has that name.
func Choose(name string) Answer { return Answer{kind: kindSelect, choice: name} }

// Type answers an Input prompt. An empty string accepts the default.
func Type(s string) Answer { return Answer{kind: kindInput, text: s} }

// Yes answers a Confirm prompt with yes.
func Yes() Answer { return Answer{kind: kindConfirm, yes: true} }

// No answers a Confirm prompt with no.
func No() Answer { return Answer{kind: kindConfirm} }

// Check answers a MultiSelect prompt with exactly the named choices.
func Check(names ...string) Answer { return Answer{kind: kindMultiSelect, checks: names} }

// Default accepts whatever default the next prompt offers.
func Default() Answer { return Answer{kind: kindAny} }

// Question records a prompt that was shown.
type Question struct {
	Kind    string
	Message string
	// Choices holds the selectable names of a Select or all names of a MultiSelect.
	Choices []string
	// Default is the default choice name, input default, or "true"/"false".
	Default string
	Checked []string
}

// Script is a prompt.Prompter that replays scripted answers in order.
type Script struct {
	answers []Answer
	// Asked lists every prompt in the order it was shown, including re-asks
	// after a validation failure.
	Asked []Question
	// Rejected collects the validation messages the prompts reported.
	Rejected []string
}

var _ prompt.Prompter = (*Script)(nil)

// New creates a script replaying answers.
func New(answers ...Answer) *Script {
	return &Script{answers: answers}
}

// Remaining reports how many answers have not been used.
func (s *Script) Remaining() int {
	return len(s.answers)
}

// Last returns the most recent question, or the zero Question.
func (s *Script) Last() Question {
	if len(s.Asked) == 0 {
		return Question{}
	}
	return s.Asked[len(s.Asked)-1]
}

// Menus returns the selectable choices of every Select prompt shown so far.
func (s *Script) Menus() [][]string {
	var menus [][]string
	for _, q := range s.Asked {
		if q.Kind == string(kindSelect) {
			menus = append(menus, q.Choices)
		}
	}
	return menus
}

func (s *Script) next(k kind, q Question) (Answer, error) {
	s.Asked = append(s.Asked, q)
	if len(s.answers) == 0 {
		return Answer{}, fmt.Errorf("%w for %s %q", ErrExhausted, k, q.Message)
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	if a.kind != kindAny && a.kind != k {
		return Answer{}, fmt.Errorf("prompttest: %s answer given to %s prompt %q", a.kind, k, q.Message)
	}
	return a, nil
}

func (s *Script) Select(q prompt.SelectQuestion) (int, error) {
	var names []string
	def := ""
	for i, c := range q.Choices {
		if c.Separator {
			continue
		}
		names = append(names, c.Name)
		if i == q.Default {
			def = c.Name
		}
	}
	if def == "" && len(names) > 0 {
		def = names[0]
	}

	a, err := s.next(kindSelect, Question{Kind: string(kindSelect), Message: q.Message, Choices: names, Default: def})
	if err != nil {
		return -1, err
	}

	want := a.choice
	if a.kind == kindAny {
		want = def
	}
	for i, c := range q.Choices {
		if !c.Separator && c.Name == want {
			return i, nil
		}
	}
	return -1, fmt.Errorf("prompttest: choice %q not offered by %q; offered %q", want, q.Message, names)
}

func (s *Script) MultiSelect(q prompt.MultiSelectQuestion) ([]int, error) {
	var checked []string
	for i, name := range q.Choices {
		if i < len(q.Checked) && q.Checked[i] {
			checked = append(checked, name)
		}
	}

	for {
		a, err := s.next(kindMultiSelect, Question{Kind: string(kindMultiSelect), Message: q.Message, Choices: q.Choices, Checked: checked})
		if err != nil {
			return nil, err
		}

		names := a.checks
		if a.kind == kindAny {
			names = checked
		}
		selected := make([]int, 0, len(names))
		for _, name := range names {
			idx := slices.Index(q.Choices, name)
			if idx < 0 {
				return nil, fmt.Errorf("prompttest: choice %q not offered by %q", name, q.Message)
			}
			selected = append(selected, idx)
		}
		slices.Sort(selected)

		if q.Validate != nil {
			if verr := q.Validate(selected); verr != nil {
				s.Rejected = append(s.Rejected, verr.Error())
				continue
			}
		}
		return selected, nil
	}
}

func (s *Script) Input(q prompt.InputQuestion) (string, error) {
	for {
		a, err := s.next(kindInput, Question{Kind: string(kindInput), Message: q.Message, Default: q.Default})
		if err != nil {
			return "", err
		}

		answer := a.text
		if answer == "" {
			answer = q.Default
		}
		if q.Validate != nil {
			if verr := q.Validate(answer); verr != nil {
				s.Rejected = append(s.Rejected, verr.Error())
				continue
			}
		}
		return answer, nil
	}
}

func (s *Script) Confirm(message string, defaultAnswer bool) (bool, error) {
	a, err := s.next(kindConfirm, Question{Kind: string(kindConfirm), Message: message, Default: strconv.FormatBool(defaultAnswer)})
	if err != nil {
		return false, err
	}
	if a.kind == kindAny {
		return defaultAnswer, nil
	}
	return a.yes, nil
}
