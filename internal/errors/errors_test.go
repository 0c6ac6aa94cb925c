package errors

import (
	"strings"
	"testing"

	"dspcc/internal/ast"
)

func TestError_WithoutLocationIsOneLine(t *testing.T) {
	err := NewConfigError("audio endpoint must be a float scalar or a vector of floats")

	got := err.Error()
	if got != "ConfigurationMismatch: audio endpoint must be a float scalar or a vector of floats" {
		t.Fatalf("unexpected Error() output: %q", got)
	}
	if strings.Contains(got, "\n") {
		t.Fatalf("expected a single line with no location, got %q", got)
	}
}

func TestError_WithLocationReportsFileLineColumn(t *testing.T) {
	ctx := ast.SourceContext{File: "mix.soul", Line: 3, Column: 9}
	err := NewCompileError(IllegalBinaryOnComplex, `binary operator "&&" is not legal on complex operands`, ctx)

	got := err.Error()
	if !strings.Contains(got, "at mix.soul:3:9") {
		t.Fatalf("expected location mix.soul:3:9 in output, got %q", got)
	}
}

func TestError_WithSourceAnnotatesCaretUnderColumn(t *testing.T) {
	ctx := ast.SourceContext{File: "mix.soul", Line: 3, Column: 9}
	err := NewCompileError(IllegalBinaryOnComplex, "bad operand", ctx).WithSource("y = x && z")

	lines := strings.Split(err.Error(), "\n")
	var gutterLine, caretLine string
	for i, l := range lines {
		if strings.Contains(l, "3 | ") {
			gutterLine = l
			caretLine = lines[i+1]
		}
	}
	if gutterLine == "" {
		t.Fatalf("expected a gutter-annotated source line, got %q", err.Error())
	}
	caretCol := strings.Index(caretLine, "^")
	gutterCol := strings.Index(gutterLine, "| ") + len("| ")
	if caretCol != gutterCol+ctx.Column-1 {
		t.Fatalf("expected caret under column %d, got caret at %d (source starts at %d): %q",
			ctx.Column, caretCol, gutterCol, err.Error())
	}
}

func TestAddStackFrame_OrdersFramesInnermostLast(t *testing.T) {
	err := NewConfigError("bad endpoint").
		AddStackFrame("buildEndpoints", ast.SourceContext{File: "bind.go", Line: 10}).
		AddStackFrame("Build", ast.SourceContext{File: "bind.go", Line: 40})

	got := err.Error()
	firstIdx := strings.Index(got, "buildEndpoints")
	secondIdx := strings.Index(got, "Build (bind.go:40:0)")
	if firstIdx == -1 || secondIdx == -1 || firstIdx > secondIdx {
		t.Fatalf("expected buildEndpoints before Build in call stack, got %q", got)
	}
}
