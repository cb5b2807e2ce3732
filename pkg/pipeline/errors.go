package pipeline

import "fmt"

// Severity classifies how far a failure propagates.
type Severity int

const (
	// Recoverable failures degrade behavior and the current media
	// continues (e.g. tag generation falling back to defaults).
	Recoverable Severity = iota

	// FatalToSession failures abandon the current media; the run moves on
	// to the next source URL.
	FatalToSession

	// FatalToRun failures stop the whole run. No stage currently emits
	// this; it exists so callers can branch on it without a sentinel.
	FatalToRun
)

func (s Severity) String() string {
	switch s {
	case Recoverable:
		return "recoverable"
	case FatalToSession:
		return "fatal-to-session"
	case FatalToRun:
		return "fatal-to-run"
	default:
		return "unknown"
	}
}

// StageError is a pipeline failure annotated with the stage it occurred in
// and how far it propagates.
type StageError struct {
	Stage    string
	Severity Severity
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed (%s): %v", e.Stage, e.Severity, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage string, severity Severity, err error) *StageError {
	return &StageError{Stage: stage, Severity: severity, Err: err}
}
