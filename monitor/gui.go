package monitor

import (
	"fmt"
	"strings"

	"ne2k/ports"

	"github.com/jroimartin/gocui"
)

// Gui type definition
type Gui struct {
	statusOut chan string // string channel the status lines are sent to
	traceOut  chan string // same for formatted port operations
	g         *gocui.Gui  // main gocui GUI object
	status    *gocui.View // gocui view of the status area
	trace     *gocui.View // gocui view of the port trace
}

// NewGui returns a pointer to the new gui monitor and runs the
// initialization procedure:
func NewGui(g *gocui.Gui) *Gui {
	m := new(Gui)
	m.statusOut = make(chan string)
	m.traceOut = make(chan string)
	m.g = g
	m.status, _ = g.View("status")
	m.trace, _ = g.View("trace")
	m.initGui()
	return m
}

// initGui pumps both channels into their views. gocui allows
// updating a view only through the Update function.
func (m *Gui) initGui() {
	go func() {
		for {
			select {
			case s := <-m.statusOut:
				m.g.Update(func(g *gocui.Gui) error {
					fmt.Fprintf(m.status, "%s", s)
					return nil
				})
			case s := <-m.traceOut:
				m.g.Update(func(g *gocui.Gui) error {
					fmt.Fprintf(m.trace, "%s", s)
					return nil
				})
			}
		}
	}()
}

// WriteStatus displays a string in the status view
func (m *Gui) WriteStatus(msg string) error {
	for _, line := range strings.Split(msg, "\n") {
		if line != "" {
			m.statusOut <- line + "\n"
		}
	}
	return nil
}

// TraceAccess displays one port operation in the trace view
func (m *Gui) TraceAccess(a ports.Access) {
	m.traceOut <- formatAccess(a) + "\n"
}
