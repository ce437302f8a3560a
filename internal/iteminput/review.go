package iteminput

import (
	"fmt"

	"hubctl/internal/formatting"
	"hubctl/pkg/logging"
)

// RenderFunc serializes a value for preview.
type RenderFunc func(value any, format formatting.OutputFormat, indent int) (string, error)

// ReviewOptions configures CreateFromUserInput and UpdateFromUserInput.
type ReviewOptions struct {
	// DryRun changes the finish verb to "output".
	DryRun bool
	// FinishVerb is "create" or "update". CreateFromUserInput defaults it to
	// "create", UpdateFromUserInput to "update".
	FinishVerb string
	// HelpText adds a Help entry to the review menu.
	HelpText string
	// Indent is the --indent flag value; ProfileIndent the indent stored in the
	// active profile. Nil means unset; the format default applies last.
	Indent        *int
	ProfileIndent *int
	// Render defaults to formatting.Render.
	Render RenderFunc
	// OnCancel runs before ErrCanceled is returned.
	OnCancel func()
}

func (o ReviewOptions) finishVerb() string {
	if o.DryRun {
		return "output"
	}
	if o.FinishVerb == "" {
		return "update"
	}
	return o.FinishVerb
}

func (o ReviewOptions) finishNoun() string {
	if o.FinishVerb == "create" {
		return "creation"
	}
	return "update"
}

func (o ReviewOptions) cancel() error {
	if o.OnCancel != nil {
		o.OnCancel()
	}
	return ErrCanceled
}

// CreateFromUserInput runs the build wizard for def and then the review loop.
// Canceling the wizard cancels the whole operation.
func CreateFromUserInput[T any](s Session, def Definition[T], opts ReviewOptions) (T, error) {
	var zero T

	res, err := def.BuildFromUserInput(s)
	if err != nil {
		return zero, err
	}
	if res.Canceled {
		logging.Debug("ItemInput", "creation of %s canceled during build", def.Name())
		return zero, opts.cancel()
	}

	if opts.FinishVerb == "" {
		opts.FinishVerb = "create"
	}
	return UpdateFromUserInput(s, def, res.Value, opts)
}

// UpdateFromUserInput shows the review menu for value until the user finishes
// with a valid value or cancels. Edits canceled inside the menu keep the prior
// value; canceling from the menu itself returns ErrCanceled.
func UpdateFromUserInput[T any](s Session, def Definition[T], value T, opts ReviewOptions) (T, error) {
	var zero T
	current := value

	edit := func() error {
		res, err := def.UpdateFromUserInput(current, s)
		if err != nil {
			return err
		}
		if !res.Canceled {
			current = res.Value
		}
		return nil
	}

	preview := func(format formatting.OutputFormat) error {
		render := opts.Render
		if render == nil {
			render = formatting.Render
		}
		indent := formatting.ResolveIndent(format, opts.Indent, opts.ProfileIndent)
		out, err := render(current, format, indent)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.Out, out)

		again, err := s.Prompter.Confirm("Would you like to edit further?", false)
		if err != nil {
			return err
		}
		if again {
			return edit()
		}
		return nil
	}

	for {
		var m menu
		m.addAction(editOption(def.Name()), ActionEdit)
		m.addAction("Preview JSON.", ActionPreviewJSON)
		m.addAction("Preview YAML.", ActionPreviewYAML)
		m.addAction(fmt.Sprintf("Finish and %s %s.", opts.finishVerb(), def.Name()), ActionFinish)
		m.addAction(fmt.Sprintf("Cancel %s of %s.", opts.finishNoun(), def.Name()), ActionCancel)
		m.addHelp(opts.HelpText)

		entry, err := m.ask(s.Prompter, "Choose an action.", ActionFinish)
		if err != nil {
			return zero, err
		}

		switch entry.action {
		case ActionEdit:
			err = edit()
		case ActionPreviewJSON:
			err = preview(formatting.FormatJSON)
		case ActionPreviewYAML:
			err = preview(formatting.FormatYAML)
		case ActionHelp:
			s.printHelp(opts.HelpText)
		case ActionFinish:
			fv, ok := def.(FinalValidator[T])
			if !ok {
				return current, nil
			}
			verr := fv.ValidateFinal(current, s.Ancestors)
			if verr == nil {
				return current, nil
			}
			s.printAttention(verr.Error())
			err = edit()
		case ActionCancel:
			return zero, opts.cancel()
		default:
			return zero, &ContractError{Definition: def.Name(), Reason: fmt.Sprintf("unexpected state in review; action = %s", entry.action)}
		}
		if err != nil {
			return zero, err
		}
	}
}
