// Package errors provides source-located, stack-carrying errors shared by
// the complex-number lowering pass and the realtime dispatch core.
package errors

import (
	"fmt"
	"strings"

	"dspcc/internal/ast"
)

// ErrorType classifies a DspccError.
type ErrorType string

const (
	// UnsupportedUnaryOnComplex is raised when a unary operator other than
	// negate is applied to a complex-typed operand (spec §7, §4.A.3).
	UnsupportedUnaryOnComplex ErrorType = "UnsupportedUnaryOnComplex"
	// IllegalBinaryOnComplex is raised when a binary operator outside
	// {add, subtract, multiply, divide, equals, notEquals} is applied to
	// complex-typed operands (spec §7, §4.A.3).
	IllegalBinaryOnComplex ErrorType = "IllegalBinaryOnComplex"
	// ConfigurationMismatch is returned by Core B when an endpoint's
	// declared channel count disagrees with its frame type at binding time
	// (spec §7, §4.B.1), and by dispatch.NewWrapper and Wrapper.Render for
	// an invalid block size or mismatched input/output frame counts.
	ConfigurationMismatch ErrorType = "ConfigurationMismatch"
)

// DspccError carries a typed message plus the ast.SourceContext of the node
// that raised it. Core A attributes errors to the offending AST node's own
// context; Core B's ConfigurationMismatch kind involves no AST and leaves
// Location zero.
type DspccError struct {
	Type      ErrorType
	Message   string
	Location  ast.SourceContext
	CallStack []StackFrame
	Source    string
}

// StackFrame is one frame of a recorded call stack.
type StackFrame struct {
	Function string
	Location ast.SourceContext
}

// located reports whether e carries a usable source location.
func (e *DspccError) located() bool {
	return e.Location.File != ""
}

func (e *DspccError) Error() string {
	if !e.located() && len(e.CallStack) == 0 {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	lines := []string{fmt.Sprintf("%s: %s", e.Type, e.Message)}

	if e.located() {
		lines = append(lines, "  at "+formatLocation(e.Location))
		if e.Source != "" {
			lines = append(lines, e.annotatedSource()...)
		}
	}

	for _, frame := range e.CallStack {
		where := formatLocation(frame.Location)
		if frame.Function != "" {
			where = fmt.Sprintf("%s (%s)", frame.Function, where)
		}
		lines = append(lines, "  at "+where)
	}

	return strings.Join(lines, "\n")
}

// annotatedSource renders the offending source line with a caret under the
// reported column, e.g.:
//
//	3 | y = x * z
//	        ^
func (e *DspccError) annotatedSource() []string {
	gutter := fmt.Sprintf("%d | ", e.Location.Line)
	caret := fmt.Sprintf("%*s^", e.Location.Column-1, "")
	if e.Location.Column <= 0 {
		caret = "^"
	}
	return []string{
		"",
		gutter + e.Source,
		strings.Repeat(" ", len(gutter)) + caret,
	}
}

func formatLocation(loc ast.SourceContext) string {
	return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Column)
}

// NewCompileError creates an error attributed to ctx, the offending AST
// node's own source context (spec §7: both Core A error kinds halt the
// pass immediately, so no call stack is recorded).
func NewCompileError(kind ErrorType, message string, ctx ast.SourceContext) *DspccError {
	return &DspccError{Type: kind, Message: message, Location: ctx}
}

// NewConfigError creates a Core B configuration-mismatch error. Core B has
// no per-node source context, so Location is left zero.
func NewConfigError(message string) *DspccError {
	return &DspccError{Type: ConfigurationMismatch, Message: message}
}

// WithSource attaches the source line named by e.Location, for annotated
// reporting.
func (e *DspccError) WithSource(source string) *DspccError {
	e.Source = source
	return e
}

// AddStackFrame appends one frame to the error's recorded call stack,
// innermost call last.
func (e *DspccError) AddStackFrame(function string, ctx ast.SourceContext) *DspccError {
	e.CallStack = append(e.CallStack, StackFrame{Function: function, Location: ctx})
	return e
}
