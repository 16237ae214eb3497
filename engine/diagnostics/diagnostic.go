package diagnostics

import "fmt"

// Diagnostic is a non-fatal, per-frame observation attached to a Frame for
// host inspection: a dropped input, an unresolved binding, a sampling
// fallback, or a cycle that aborted one controller's pass. Diagnostics
// never abort the frame themselves — only construction/loading errors are
// returned synchronously and fatally.
type Diagnostic struct {
	// Controller is the id of the animation or graph controller that
	// raised the diagnostic, or "" for orchestrator-level ones.
	Controller string

	// Kind is a short, stable machine-readable label ("UnknownId",
	// "UnresolvedBinding", "ShapeMismatch", "InvalidTransition",
	// "UnknownCommand", "EvaluationError").
	Kind string

	Message string
}

// Summary collects the Diagnostics raised during a single tick, in the
// order they were recorded.
type Summary struct {
	entries []Diagnostic
}

// NewSummary returns an empty Summary.
func NewSummary() *Summary {
	return &Summary{}
}

// Add records a Diagnostic and mirrors it to Logger for host console
// visibility, independent of the structured Summary a host later reads
// off the Frame.
func (s *Summary) Add(d Diagnostic) {
	s.entries = append(s.entries, d)
	controller := d.Controller
	if controller == "" {
		controller = "orchestrator"
	}
	Logger.Printf("%s: %s: %s", controller, d.Kind, d.Message)
}

// Addf is a convenience for Add with the Message built from a format.
func (s *Summary) Addf(controller, kind, format string, args ...any) {
	s.Add(Diagnostic{Controller: controller, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Entries returns the recorded diagnostics in insertion order.
func (s *Summary) Entries() []Diagnostic {
	return s.entries
}

// Len reports how many diagnostics have been recorded.
func (s *Summary) Len() int {
	return len(s.entries)
}

// Merge appends another summary's entries onto s, in order.
func (s *Summary) Merge(other *Summary) {
	if other == nil {
		return
	}
	s.entries = append(s.entries, other.entries...)
}
