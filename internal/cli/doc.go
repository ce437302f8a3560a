// Package cli holds the pieces shared by hubctl commands.
//
// CommandFlags and RegisterCommonFlags define the flags every command
// accepts. NewEnv turns them into an Env: the active profile, the resolved
// output format and indent, a lazily opened terminal prompter, and the API
// client configured from the profile.
//
// API failures are passed through ExplainAPIError, which classifies
// transport problems (TLS, DNS, timeouts, refused connections) into
// ConnectionError and missing or rejected tokens into AuthRequiredError, both
// with guidance on how to fix them.
package cli
