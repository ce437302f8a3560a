// Package logging provides the structured logging used by hubctl commands.
//
// The package wraps Go's standard slog package with subsystem-oriented helper
// functions. Interactive commands share the terminal with prompts, so logs go to
// stderr and are filtered at Warn unless the user passes --debug.
//
// # Log Levels
//   - **Debug**: Request tracing, selection and profile lookups
//   - **Info**: General informational messages
//   - **Warn**: Recoverable problems, such as a stale default that was reset
//   - **Error**: Failures that abort a command
//
// # Usage
//
//	logging.InitForCLI(logging.LevelWarn, os.Stderr)
//
//	logging.Debug("Selection", "translated index %s to id %s", idOrIndex, id)
//	logging.Warn("Profile", "default %s no longer exists, resetting", key)
//	logging.Error("API", err, "request to %s failed", url)
//
// # Subsystems
//
//   - **CLI**: Command setup and exit handling
//   - **Profile**: Profile store reads and writes
//   - **Selection**: Item selection and default handling
//   - **ItemInput**: Interactive builders and the review loop
//   - **API**: Calls to the hub REST API
//
// Calls made before InitForCLI still print warnings and errors to stderr.
// All functions are safe for concurrent use.
package logging
