package spli

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Annotation is a single human-facing diagnostic: a byte range in the
// source, a message, and an optional label printed next to the
// underline.
type Annotation struct {
	Range   Range
	Message string
	Label   string
}

// Diagnose classifies a parse error trace into one annotated span. The
// classifier inspects the innermost rule context and the leaf failure,
// mirroring the rule stacks the parser records.
func Diagnose(source string, err *ParseError) Annotation {
	ctx, ok := err.firstContext()
	if !ok {
		if err.leaf().Expect == ExpectWhitespace {
			return whitespaceAnnotation(err.leaf().Offset)
		}
		return unknownAnnotation(err)
	}

	switch ctx.Context {
	case "escape":
		return Annotation{
			Range:   NewRange(ctx.Offset, ctx.Offset+1),
			Message: "unknown escape code",
		}
	case "ident":
		if ctx.Offset == len(source) {
			return unclosedListAnnotation(source, err)
		}
		return tokenSpanAnnotation(source, ctx.Offset, "invalid identifier")
	case "number":
		return tokenSpanAnnotation(source, ctx.Offset, "invalid number")
	case "string":
		if leaf := err.leaf(); leaf.Expect == ExpectChar && leaf.Char == '"' {
			return Annotation{
				Range:   NewRange(ctx.Offset, ctx.Offset+1),
				Message: "unclosed string",
				Label:   "started here",
			}
		}
		return unknownAnnotation(err)
	case "list":
		if leaf := err.leaf(); leaf.Expect == ExpectWhitespace {
			if leaf.Offset == len(source) {
				return unclosedListAnnotation(source, err)
			}
			return whitespaceAnnotation(leaf.Offset)
		}
		return unknownAnnotation(err)
	}
	return unknownAnnotation(err)
}

func whitespaceAnnotation(offset int) Annotation {
	return Annotation{
		Range:   NewRange(offset, offset+1),
		Message: "expected whitespace after token",
		Label:   "here",
	}
}

func unclosedListAnnotation(source string, err *ParseError) Annotation {
	if list, ok := err.contextNamed("list"); ok {
		return Annotation{
			Range:   NewRange(list.Offset, list.Offset+1),
			Message: "unclosed list",
			Label:   "started here",
		}
	}
	offset := len(source) - 1
	if offset < 0 {
		offset = 0
	}
	return Annotation{
		Range:   NewRange(offset, offset),
		Message: "unclosed list",
	}
}

// tokenSpanAnnotation underlines from offset to the end of the
// whitespace-delimited token the failure landed in.
func tokenSpanAnnotation(source string, offset int, message string) Annotation {
	token := source[offset:]
	if fields := strings.Fields(token); len(fields) > 0 {
		token = fields[0]
	}
	return Annotation{
		Range:   NewRange(offset, offset+len(token)),
		Message: message,
	}
}

func unknownAnnotation(err *ParseError) Annotation {
	leaf := err.leaf()
	return Annotation{
		Range:   NewRange(leaf.Offset, leaf.Offset+1),
		Message: fmt.Sprintf("unknown parsing error: %s", leaf.describe()),
		Label:   "somewhere here",
	}
}

//  ---- Rendering ----

type diagToken int

const (
	diagToken_None diagToken = iota
	diagToken_Header
	diagToken_Gutter
	diagToken_Caret
)

var diagTheme = map[diagToken]string{
	diagToken_None:   "\033[0m",       // reset
	diagToken_Header: "\033[1;31m",    // red
	diagToken_Gutter: "\033[1;34m",    // blue
	diagToken_Caret:  "\033[1;31m",    // red
}

// lineAt resolves a byte offset to its 1-based line and rune column,
// and hands back the text of that line so the caller can quote it. One
// linear scan is plenty: diagnostics render once per failed parse.
func lineAt(source string, offset int) (line, column int, text string) {
	if offset > len(source) {
		offset = len(source)
	}
	line = 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	lineEnd := len(source)
	if i := strings.IndexByte(source[lineStart:], '\n'); i >= 0 {
		lineEnd = lineStart + i
	}
	column = utf8.RuneCountInString(source[lineStart:offset]) + 1
	return line, column, source[lineStart:lineEnd]
}

// RenderAnnotation formats an annotation against its source, with the
// offending line quoted and the range underlined. With highlight set
// the output is colored with ANSI escapes.
func RenderAnnotation(source string, a Annotation, highlight bool) string {
	format := func(s string, _ diagToken) string { return s }
	if highlight {
		format = func(s string, tok diagToken) string {
			return diagTheme[tok] + s + diagTheme[diagToken_None]
		}
	}

	startLine, startCol, lineText := lineAt(source, a.Range.Start)
	endLine, endCol, _ := lineAt(source, a.Range.End)

	width := 1
	switch {
	case endLine == startLine && endCol > startCol:
		width = endCol - startCol
	case endLine > startLine:
		// The range spills onto later lines; underline what is left of
		// the first one.
		if w := utf8.RuneCountInString(lineText) - startCol + 1; w > 1 {
			width = w
		}
	}

	gutter := strconv.Itoa(startLine)
	pad := strings.Repeat(" ", len(gutter))
	underline := strings.Repeat(" ", startCol-1) + "^" + strings.Repeat("~", width-1)
	if a.Label != "" {
		underline += " " + a.Label
	}

	var s strings.Builder
	s.WriteString(format("error: "+a.Message, diagToken_Header))
	s.WriteByte('\n')
	s.WriteString(format(pad+"--> ", diagToken_Gutter))
	fmt.Fprintf(&s, "%d:%d", startLine, startCol)
	s.WriteByte('\n')
	s.WriteString(format(pad+" |", diagToken_Gutter))
	s.WriteByte('\n')
	s.WriteString(format(gutter+" | ", diagToken_Gutter))
	s.WriteString(lineText)
	s.WriteByte('\n')
	s.WriteString(format(pad+" | ", diagToken_Gutter))
	s.WriteString(format(underline, diagToken_Caret))
	return s.String()
}
