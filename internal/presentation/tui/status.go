package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Status labels a line written by StatusLine.
type Status int

const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
)

func (s Status) label() (string, string) {
	switch s {
	case StatusOK:
		return "OK", "#22c55e"
	case StatusWarn:
		return "WARN", "#eab308"
	default:
		return "FAIL", "#ef4444"
	}
}

// StatusLine writes "[LABEL] message" with a colored label.
// Colors degrade to plain text on terminals without color support.
func StatusLine(w io.Writer, s Status, format string, args ...any) {
	text, color := s.label()
	p := termenv.ColorProfile()
	label := termenv.String(fmt.Sprintf("[%s]", text)).Foreground(p.Color(color)).Bold()
	fmt.Fprintf(w, "%s %s\n", label, fmt.Sprintf(format, args...))
}
