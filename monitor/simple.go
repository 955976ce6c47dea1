package monitor

import (
	"fmt"
	"strings"

	"ne2k/ports"

	"github.com/fatih/color"
)

// Simple monitor type definition. Prints to stdout, reads in green
// and writes in yellow so a page turn stands out in the trace.
type Simple struct {
	in  *color.Color
	out *color.Color
}

// NewSimple returns a pointer to the new plain-stdout monitor:
func NewSimple() *Simple {
	return &Simple{
		in:  color.New(color.FgGreen),
		out: color.New(color.FgYellow),
	}
}

// WriteStatus displays a string on stdout
func (m *Simple) WriteStatus(msg string) error {
	for _, line := range strings.Split(msg, "\n") {
		if line != "" {
			fmt.Println(line)
		}
	}
	return nil
}

// TraceAccess displays one port operation on stdout
func (m *Simple) TraceAccess(a ports.Access) {
	c := m.in
	if a.Write {
		c = m.out
	}
	_, _ = c.Println(formatAccess(a))
}
