package formatting

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WithSpinner runs fn while a progress spinner with the given suffix is shown on out.
// With quiet set, fn runs without any progress output.
func WithSpinner[T any](out io.Writer, quiet bool, suffix string, fn func() (T, error)) (T, error) {
	if quiet {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.Suffix = " " + suffix
	s.Start()
	defer s.Stop()

	result, err := fn()
	if err != nil {
		s.FinalMSG = text.FgRed.Sprint(suffix+" failed") + "\n"
	}
	return result, err
}
