package entity

import "fmt"

type DiagnosticKind string

const (
	// DiagnosticLevelUnavailable: a desired iid has no level description yet.
	DiagnosticLevelUnavailable DiagnosticKind = "level_unavailable"
	// DiagnosticOutOfBounds: a tile or entity sits outside its layer grid.
	DiagnosticOutOfBounds DiagnosticKind = "out_of_bounds"
	// DiagnosticDuplicateWorldly: two entities claim the same worldly iid.
	DiagnosticDuplicateWorldly DiagnosticKind = "duplicate_worldly"
	// DiagnosticHookFailed: a spawn hook returned an error.
	DiagnosticHookFailed DiagnosticKind = "hook_failed"
)

// Diagnostic reports a node that was skipped, clamped or rejected. None of
// them stop a spawn.
type Diagnostic struct {
	Kind     DiagnosticKind
	LevelIid string
	Iid      string
	Message  string
}

func (d Diagnostic) String() string {
	if d.Iid != "" {
		return fmt.Sprintf("%s: level %s: %s: %s", d.Kind, d.LevelIid, d.Iid, d.Message)
	}
	return fmt.Sprintf("%s: level %s: %s", d.Kind, d.LevelIid, d.Message)
}
