package kmlout

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// lineBudget is the rendered width, indent included, below which an element
// with a value stays on a single line.
const lineBudget = 72

const indentStep = "  "

// IndentWriter tracks nesting depth and renders consistent leading
// whitespace. Owned exclusively by the active emission pass.
type IndentWriter struct {
	w      *bufio.Writer
	depth  int
	indent bool
}

func NewIndentWriter(w io.Writer, indent bool) *IndentWriter {
	return &IndentWriter{w: bufio.NewWriter(w), indent: indent}
}

func (iw *IndentWriter) Push() {
	iw.depth++
}

func (iw *IndentWriter) Pop() {
	if iw.depth == 0 {
		panic("kmlout: indent depth underflow")
	}
	iw.depth--
}

func (iw *IndentWriter) Depth() int {
	return iw.depth
}

func (iw *IndentWriter) width() int {
	if !iw.indent {
		return 0
	}
	return iw.depth * len(indentStep)
}

// WriteLine emits one line at the current depth. Write errors accumulate in
// the buffered writer and surface from Flush.
func (iw *IndentWriter) WriteLine(s string) {
	if iw.indent {
		for i := 0; i < iw.depth; i++ {
			iw.w.WriteString(indentStep)
		}
	}
	iw.w.WriteString(s)
	iw.w.WriteByte('\n')
}

func (iw *IndentWriter) Flush() error {
	return iw.w.Flush()
}

// Emitter renders markup elements over an IndentWriter. Opened elements must
// be closed in strict LIFO order; imbalance is a programming error and
// panics rather than corrupting the document.
type Emitter struct {
	iw   *IndentWriter
	open []string
}

func NewEmitter(w io.Writer, indent bool) *Emitter {
	return &Emitter{iw: NewIndentWriter(w, indent)}
}

// tagName is the closing-tag name: the first token of a tag spec that may
// carry attributes.
func tagName(tag string) string {
	if i := strings.IndexAny(tag, " \t"); i > 0 {
		return tag[:i]
	}
	return tag
}

// Line emits raw text at the current depth (the XML declaration only).
func (e *Emitter) Line(s string) {
	e.iw.WriteLine(s)
}

// Open writes an opening tag and indents; the caller owes a matching Close.
func (e *Emitter) Open(tag string) {
	e.iw.WriteLine("<" + tag + ">")
	e.open = append(e.open, tagName(tag))
	e.iw.Push()
}

func (e *Emitter) Close() {
	if len(e.open) == 0 {
		panic("kmlout: Close without matching Open")
	}
	name := e.open[len(e.open)-1]
	e.open = e.open[:len(e.open)-1]
	e.iw.Pop()
	e.iw.WriteLine("</" + name + ">")
}

// Element writes a complete element. Single-line when the value has no line
// breaks and the rendered line fits the width budget, expanded otherwise.
func (e *Emitter) Element(tag, value string) {
	name := tagName(tag)
	if !strings.Contains(value, "\n") {
		line := fmt.Sprintf("<%s>%s</%s>", tag, value, name)
		if e.iw.width()+utf8.RuneCountInString(line) <= lineBudget {
			e.iw.WriteLine(line)
			return
		}
	}
	e.iw.WriteLine("<" + tag + ">")
	e.iw.Push()
	for _, l := range strings.Split(value, "\n") {
		e.iw.WriteLine(l)
	}
	e.iw.Pop()
	e.iw.WriteLine("</" + name + ">")
}

func (e *Emitter) Depth() int {
	return e.iw.Depth()
}

func (e *Emitter) Flush() error {
	return e.iw.Flush()
}
