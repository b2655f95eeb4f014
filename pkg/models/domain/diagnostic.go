package domain

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is a user-facing condition raised by the pipeline. Transport and
// API failures are absorbed at the fetch boundary and surface here instead of
// propagating as errors.
type Diagnostic struct {
	Severity Severity
	Message  string
}

// PipelineResult couples a snapshot with the diagnostics raised while
// producing it, decoupled from any particular presentation mechanism.
type PipelineResult struct {
	Snapshot    AggregateSnapshot
	Diagnostics []Diagnostic
}

// HasErrors reports whether any diagnostic carries error severity.
func (r PipelineResult) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
