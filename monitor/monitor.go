package monitor

import (
	"fmt"

	"ne2k/ports"
)

/*
Register access monitor.

The demo binary drives the access layer against the dp8390 model and
wants two things on screen: status lines from the demo itself and the
raw port traffic the computations generate. The Gui variant puts them
in gocui views, Simple prints them to stdout for terminals where a
full screen layout is unwanted.
*/

// Display - where the demo reports status lines and port traffic
type Display interface {
	WriteStatus(msg string) error
	TraceAccess(a ports.Access)
}

func formatAccess(a ports.Access) string {
	if a.Write {
		return fmt.Sprintf("out 0x%04x <- 0x%02x", a.Port, a.Data)
	}
	return fmt.Sprintf("in  0x%04x -> 0x%02x", a.Port, a.Data)
}
