package curve

import "fmt"

// DiagCode classifies a condition the engine absorbed instead of
// failing on.
type DiagCode string

const (
	// DiagInsufficientData: a window or fit had too few points and the
	// operation skipped or fell back to a simpler method.
	DiagInsufficientData DiagCode = "insufficient_data"

	// DiagDegenerateFit: a least-squares system was near singular and
	// the original value was kept.
	DiagDegenerateFit DiagCode = "degenerate_fit"

	// DiagInvalidSelection: an index was out of range or a selection
	// did not meet an operation's shape requirement.
	DiagInvalidSelection DiagCode = "invalid_selection"

	// DiagParameterOutOfRange: a parameter was clamped into its valid
	// range before use.
	DiagParameterOutOfRange DiagCode = "parameter_out_of_range"
)

// Diagnostic describes one absorbed condition. Frame is -1 when the
// condition applies to the call as a whole rather than a single point.
type Diagnostic struct {
	Code    DiagCode `json:"code"`
	Frame   int      `json:"frame"`
	Message string   `json:"message"`
}

// DiagnosticSink receives diagnostics from an operation. A nil sink
// discards them. Sinks must not retain or mutate engine data.
type DiagnosticSink func(Diagnostic)

// CollectDiagnostics returns a sink that appends into dst, for callers
// that want the warnings as a slice alongside the result.
func CollectDiagnostics(dst *[]Diagnostic) DiagnosticSink {
	return func(d Diagnostic) { *dst = append(*dst, d) }
}

func emit(sink DiagnosticSink, code DiagCode, frame int, format string, args ...any) {
	if sink == nil {
		return
	}
	sink(Diagnostic{Code: code, Frame: frame, Message: fmt.Sprintf(format, args...)})
}
