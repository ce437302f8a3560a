package iteminput

import (
	"bytes"

	"hubctl/internal/prompt/prompttest"
)

func newSession(answers ...prompttest.Answer) (Session, *prompttest.Script, *bytes.Buffer) {
	script := prompttest.New(answers...)
	out := &bytes.Buffer{}
	return Session{Prompter: script, Out: out}, script, out
}

func colorDef() Definition[string] {
	return ListSelection("Color", []string{"red", "green", "blue"}, ListSelectionOptions[string]{})
}

func intPtr(n int) *int { return &n }
