// Package iteminput builds and edits structured values interactively.
//
// A Definition describes one value shape: how to ask for a new value, how to
// edit an existing one and how to summarize it in a parent menu. Definitions
// compose; an Object is made of Fields, each backed by another Definition, and
// an Array wraps the Definition of its items. The same definition serves both
// create and update commands.
//
// # Cancellation
//
// Backing out is not an error. Every step returns a Result, and a canceled
// Result leaves the enclosing value untouched: canceling the edit of one array
// item returns to the array menu with the item unchanged. Only the review loop
// turns cancellation into ErrCanceled, when the initial build of a new value is
// canceled or the user picks Cancel from the review menu.
//
// # Ancestors
//
// Each call receives the enclosing values in Session.Ancestors, outermost
// first. Leaf definitions use them to derive defaults or to decide whether they
// apply at all:
//
//	packageKey := iteminput.Computed(func(a iteminput.Ancestors) string {
//	    cfg, _ := iteminput.ParentAs[DriverConfig](a)
//	    return packageKeyFor(cfg.Name)
//	})
//
// # Review loop
//
// CreateFromUserInput and UpdateFromUserInput drive a definition from the
// command: edit, preview as JSON or YAML, finish, or cancel. Finishing is
// refused while the definition's ValidateFinal reports an error.
//
//	channel, err := iteminput.CreateFromUserInput(session, channelDef, iteminput.ReviewOptions{
//	    DryRun: flags.DryRun,
//	})
//	if errors.Is(err, iteminput.ErrCanceled) {
//	    return nil
//	}
package iteminput
