package emulator

import (
	"errors"
	"log/slog"

	"github.com/ezrec/armemu/cpu"
	"github.com/ezrec/armemu/io"
)

// DiagnosticKind classifies a reported problem.
type DiagnosticKind int

//go:generate go tool stringer -linecomment -type=DiagnosticKind
const (
	KIND_UNRESOLVED_OPERAND  = DiagnosticKind(0) // unresolved operand
	KIND_UNKNOWN_LABEL       = DiagnosticKind(1) // unknown label
	KIND_BAD_OPCODE          = DiagnosticKind(2) // bad opcode
	KIND_SOURCE_UNAVAILABLE  = DiagnosticKind(3) // source unavailable
	KIND_STALLED_EXECUTION   = DiagnosticKind(4) // stalled execution
	KIND_STEP_LIMIT_EXCEEDED = DiagnosticKind(5) // step limit exceeded
	KIND_CAPACITY_EXCEEDED   = DiagnosticKind(6) // capacity exceeded
	KIND_DUPLICATE_LABEL     = DiagnosticKind(7) // duplicate label
	KIND_OTHER               = DiagnosticKind(8) // other
)

// KindOf classifies an error returned by the emulator.
func KindOf(err error) DiagnosticKind {
	switch {
	case errors.Is(err, io.ErrSourceUnavailable):
		return KIND_SOURCE_UNAVAILABLE
	case errors.Is(err, ErrStalled):
		return KIND_STALLED_EXECUTION
	case errors.Is(err, ErrStepLimit):
		return KIND_STEP_LIMIT_EXCEEDED
	case errors.Is(err, cpu.ErrProgramFull):
		return KIND_CAPACITY_EXCEEDED
	case errors.Is(err, cpu.ErrLabelDuplicate):
		return KIND_DUPLICATE_LABEL
	case errors.Is(err, cpu.ErrLabelUnknown):
		return KIND_UNKNOWN_LABEL
	case errors.Is(err, cpu.ErrOperandUnresolved):
		return KIND_UNRESOLVED_OPERAND
	case errors.Is(err, cpu.ErrOpcodeInvalid):
		return KIND_BAD_OPCODE
	}
	return KIND_OTHER
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Kind DiagnosticKind
	Pc   uint32 // Program counter at the failing record, if any.
	Line string // Text of the failing record or source line, if any.
	Err  error
}

// NewDiagnostic builds a diagnostic from an error, recovering the location
// from a wrapped ErrRuntime or cpu.ErrSyntax.
func NewDiagnostic(err error) (diag Diagnostic) {
	diag = Diagnostic{Kind: KindOf(err), Err: err}

	var runtime *ErrRuntime
	var syntax *cpu.ErrSyntax
	switch {
	case errors.As(err, &runtime):
		diag.Pc = runtime.Pc
		diag.Line = runtime.Line
	case errors.As(err, &syntax):
		diag.Line = syntax.Line
	}

	return
}

// Sink receives diagnostics from the emulator.
type Sink interface {
	Diagnose(diag Diagnostic)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(diag Diagnostic)

func (fn SinkFunc) Diagnose(diag Diagnostic) {
	fn(diag)
}

// LogSink reports diagnostics as structured log records.
type LogSink struct {
	Logger *slog.Logger // If nil, the default logger is used.
}

func (ls LogSink) Diagnose(diag Diagnostic) {
	logger := ls.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Warn(f("diagnostic"),
		"kind", diag.Kind.String(),
		"pc", diag.Pc,
		"line", diag.Line,
		"err", diag.Err,
	)
}

// Recorder collects diagnostics in memory.
type Recorder struct {
	Diagnostics []Diagnostic
}

func (rec *Recorder) Diagnose(diag Diagnostic) {
	rec.Diagnostics = append(rec.Diagnostics, diag)
}

// Kinds returns the kind of each recorded diagnostic, in order.
func (rec *Recorder) Kinds() (kinds []DiagnosticKind) {
	for _, diag := range rec.Diagnostics {
		kinds = append(kinds, diag.Kind)
	}
	return
}

// Reset discards the recorded diagnostics.
func (rec *Recorder) Reset() {
	rec.Diagnostics = rec.Diagnostics[:0]
}
