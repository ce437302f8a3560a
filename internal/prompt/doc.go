// Package prompt provides the line-oriented terminal prompts used by hubctl's
// interactive commands.
//
// The Prompter interface is deliberately small: pick one entry from a menu, pick
// several entries, type a line of text, or answer yes/no. Everything above it
// (wizards, review menus, item selection) is written against the interface, so
// tests drive those flows with the scripted prompter in package prompttest.
//
// # Readline
//
// Readline is the terminal implementation, built on github.com/chzyer/readline.
// Menus are printed as numbered lists; an empty answer accepts the default and
// invalid answers are reported in red before the question is asked again.
//
//	p, err := prompt.NewReadline(os.Stdout)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	idx, err := p.Select(prompt.SelectQuestion{
//	    Message: "Select a channel.",
//	    Choices: prompt.Choices("alpha", "beta"),
//	})
//
// Ctrl+C and Ctrl+D abort the current prompt with ErrInterrupted.
package prompt
