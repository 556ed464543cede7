// Package errors provides the diagnostic sink shared by all compiler
// stages. Each stage appends classified diagnostics with source
// coordinates; the driver checks HasErrors between stages and renders
// the final report with Report.
package errors

import (
	"fmt"
	"io"
)

// Category classifies a diagnostic by the stage that produced it.
type Category int

const (
	Lexical Category = iota
	Syntax
	Semantic
	Runtime
)

// categoryNames maps categories to their report names.
var categoryNames = [...]string{
	Lexical:  "Lexical",
	Syntax:   "Syntax",
	Semantic: "Semantic",
	Runtime:  "Runtime",
}

// String returns the report name of the category.
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "Unknown"
}

// ExitCode returns the process exit code associated with a failing
// category: 2 lexical, 3 syntax, 4 semantic, 5 runtime.
func (c Category) ExitCode() int {
	return int(c) + 2
}

// Diagnostic is a single classified error with source coordinates.
// Runtime diagnostics carry the IR instruction index in Line and a
// zero Column, since optimized IR no longer maps back to source lines.
type Diagnostic struct {
	Message  string
	Category Category
	Line     int
	Column   int
}

// String formats the diagnostic as a single report line.
func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s Error] Line %d, Position %d: %s",
		d.Category, d.Line, d.Column, d.Message)
}

// Sink is an append-only collection of diagnostics. The zero value is
// an empty sink; NewSink returns a pointer to one. It is owned by the
// driver and mutated by one stage at a time.
type Sink struct {
	diags []Diagnostic
}

// NewSink creates an empty diagnostic sink.
func NewSink() *Sink {
	return &Sink{}
}

// Add appends a diagnostic to the sink.
func (s *Sink) Add(cat Category, message string, line, column int) {
	s.diags = append(s.diags, Diagnostic{
		Category: cat,
		Message:  message,
		Line:     line,
		Column:   column,
	})
}

// HasErrors reports whether any diagnostic has been collected.
func (s *Sink) HasErrors() bool {
	return len(s.diags) > 0
}

// Len returns the number of collected diagnostics.
func (s *Sink) Len() int {
	return len(s.diags)
}

// Diagnostics returns the collected diagnostics in insertion order.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diags
}

// First returns the first collected diagnostic, if any. The driver
// uses its category to pick the process exit code.
func (s *Sink) First() (Diagnostic, bool) {
	if len(s.diags) == 0 {
		return Diagnostic{}, false
	}
	return s.diags[0], true
}

// Report writes all collected diagnostics to w in insertion order,
// one line per diagnostic. Writing an empty sink produces no output.
func (s *Sink) Report(w io.Writer) {
	for _, d := range s.diags {
		fmt.Fprintln(w, d)
	}
}
