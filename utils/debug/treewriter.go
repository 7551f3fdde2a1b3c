// Package debug renders indented trees for manual inspection in debug
// reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indent = "  "

type TreeWriter struct {
	sb strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

func (tw *TreeWriter) String() string {
	return tw.sb.String()
}

// Bytes is a convenience for storing tree in the report.
func (tw *TreeWriter) Bytes() []byte {
	return []byte(tw.sb.String())
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.sb.WriteString(strings.Repeat(indent, depth))
	fmt.Fprintf(&tw.sb, format, args...)
	tw.sb.WriteByte('\n')
}

// Text writes labeled value quoted, so whitespace and control characters
// stay visible. Empty value is left empty.
func (tw *TreeWriter) Text(depth int, label, value string) {
	tw.sb.WriteString(strings.Repeat(indent, depth))
	tw.sb.WriteString(label)
	tw.sb.WriteString(": ")
	tw.sb.WriteString(quote(value))
	tw.sb.WriteByte('\n')
}

func quote(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
