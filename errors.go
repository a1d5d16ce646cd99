package spli

import (
	"fmt"
	"strings"
)

// Expectation classifies what the parser was looking for when a rule
// failed. The diagnostic mapper keys off these together with the rule
// contexts recorded in the trace.
type Expectation int

const (
	ExpectNone Expectation = iota
	// ExpectChar means a specific byte, recorded in TraceEntry.Char.
	ExpectChar
	// ExpectWhitespace means at least one ASCII whitespace byte.
	ExpectWhitespace
	// ExpectDigit means a digit of the base being scanned.
	ExpectDigit
	// ExpectIdent means an identifier start byte.
	ExpectIdent
	// ExpectEscape means one of the known escape bytes after a backslash.
	ExpectEscape
	// ExpectNumber means a numeric literal that fits the value range.
	ExpectNumber
)

func (e Expectation) String() string {
	switch e {
	case ExpectChar:
		return "char"
	case ExpectWhitespace:
		return "whitespace"
	case ExpectDigit:
		return "digit"
	case ExpectIdent:
		return "identifier"
	case ExpectEscape:
		return "escape"
	case ExpectNumber:
		return "number"
	}
	return "none"
}

// TraceEntry is one frame of a parse error trace: either a leaf
// expectation that failed at Offset, or a named rule context entered at
// Offset that the failure propagated through.
type TraceEntry struct {
	Offset  int
	Context string
	Expect  Expectation
	Char    byte
}

func (t TraceEntry) describe() string {
	if t.Context != "" {
		return fmt.Sprintf("in %s at %d", t.Context, t.Offset)
	}
	if t.Expect == ExpectChar {
		return fmt.Sprintf("expected `%c` at %d", t.Char, t.Offset)
	}
	return fmt.Sprintf("expected %s at %d", t.Expect, t.Offset)
}

// ParseError is the structured error trace produced when parsing fails.
// The first entry is the leaf failure; enclosing rule contexts are
// appended in unwind order, innermost first. The trace as a whole is
// the rule stack observed at the deepest position the parser reached.
type ParseError struct {
	Trace []TraceEntry
}

// Error renders a compact human-readable summary of the trace.
func (e *ParseError) Error() string {
	var s strings.Builder
	fmt.Fprintf(&s, "parse error at offset %d", e.Offset())
	for _, t := range e.Trace {
		s.WriteString(": ")
		s.WriteString(t.describe())
	}
	return s.String()
}

// Offset returns the byte offset of the leaf failure.
func (e *ParseError) Offset() int {
	if len(e.Trace) == 0 {
		return 0
	}
	return e.Trace[0].Offset
}

func (e *ParseError) leaf() TraceEntry {
	if len(e.Trace) == 0 {
		return TraceEntry{}
	}
	return e.Trace[0]
}

// push records that the failure propagated out of the named rule
// context entered at offset.
func (e *ParseError) push(context string, offset int) *ParseError {
	e.Trace = append(e.Trace, TraceEntry{Offset: offset, Context: context})
	return e
}

// firstContext returns the innermost rule context in the trace.
func (e *ParseError) firstContext() (TraceEntry, bool) {
	for _, t := range e.Trace {
		if t.Context != "" {
			return t, true
		}
	}
	return TraceEntry{}, false
}

// contextNamed returns the innermost context entry with the given name.
func (e *ParseError) contextNamed(name string) (TraceEntry, bool) {
	for _, t := range e.Trace {
		if t.Context == name {
			return t, true
		}
	}
	return TraceEntry{}, false
}

// deeper implements the greedy-error discipline: between two candidate
// errors, the one whose leaf reached further into the input wins. Ties
// keep the earlier candidate, preserving alternative order.
func deeper(a, b *ParseError) *ParseError {
	if a == nil {
		return b
	}
	if b != nil && b.Offset() > a.Offset() {
		return b
	}
	return a
}
