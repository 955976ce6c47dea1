package seq

import (
	"ne2k/cr"
	"ne2k/regfile"
)

/**
Page-aware register computations.

The DP8390 multiplexes 35 logical registers over 16 ports, with the
active page picked by two bits of the command register. Touching a
register while the wrong page is selected doesn't fail, it silently
hits an unrelated register. This package makes that mistake a compile
error: every computation carries its entry and exit (page, power)
pair in its type, and Then only links computations whose states meet.

An ill-typed chain like

	Then(turnToPage1, func(Unit) ... { return readBoundaryOnPage0 })

does not build - there is no runtime check to trip, the program is
rejected by the compiler. The tracked tags mirror the physical
command register bits because TurnTo and SetPower are the only
operations that write them, and each one moves both the bits and the
tag together.
*/

// Page - compile-time page tag. Implemented only by the four marker
// types below; the unexported method doubles as the runtime witness
// for the tag.
type Page interface {
	pageSel() cr.Page
}

// Page0 - tag for command register page 0
type Page0 struct{}

// Page1 - tag for command register page 1
type Page1 struct{}

// Page2 - tag for command register page 2
type Page2 struct{}

// Page3 - tag for command register page 3. Only some clones decode
// it, but the tag exists so computations for those parts type-check.
type Page3 struct{}

func (Page0) pageSel() cr.Page { return cr.Page0 }
func (Page1) pageSel() cr.Page { return cr.Page1 }
func (Page2) pageSel() cr.Page { return cr.Page2 }
func (Page3) pageSel() cr.Page { return cr.Page3 }

// Power - compile-time power state tag
type Power interface {
	powerState() cr.PowerState
}

// Off - tag for a stopped controller (STP set)
type Off struct{}

// On - tag for a running controller (STA set)
type On struct{}

func (Off) powerState() cr.PowerState { return cr.PowerOff }
func (On) powerState() cr.PowerState { return cr.PowerOn }

// Unit - result type for computations run only for their I/O effect
type Unit = struct{}

// Comp - a register computation producing A, entered with the
// controller in state (EP, EW) and left in state (XP, XW). Values are
// built with Prim, Pure, TurnTo and SetPower and combined with Then;
// nothing runs until the finished chain is handed to Run.
type Comp[A any, EP Page, EW Power, XP Page, XW Power] struct {
	run func(*Device) (A, error)
}

// Pure - computation that performs no I/O and yields v. Entry and
// exit state are the same, for any state.
func Pure[EP Page, EW Power, A any](v A) Comp[A, EP, EW, EP, EW] {
	return Comp[A, EP, EW, EP, EW]{run: func(*Device) (A, error) {
		return v, nil
	}}
}

// Prim wraps raw register file access as a computation. The state
// does not change: ordinary register operations never touch the
// command register. Only the nic package's catalog should need this.
func Prim[A any, P Page, W Power](f func(*regfile.File) (A, error)) Comp[A, P, W, P, W] {
	return Comp[A, P, W, P, W]{run: func(d *Device) (A, error) {
		return f(d.regs)
	}}
}

// Then runs c, hands its result to f and runs the computation f
// returns. The middle state has to line up: c must leave the
// controller exactly where f's computation expects it, or the call
// does not compile. This is the only way to chain register
// operations.
func Then[A, B any, EP Page, EW Power, MP Page, MW Power, XP Page, XW Power](
	c Comp[A, EP, EW, MP, MW],
	f func(A) Comp[B, MP, MW, XP, XW],
) Comp[B, EP, EW, XP, XW] {
	return Comp[B, EP, EW, XP, XW]{run: func(d *Device) (B, error) {
		a, err := c.run(d)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a).run(d)
	}}
}

// Seq runs c1, drops its result and runs c2. Shorthand for the
// common Then where the left result doesn't matter.
func Seq[A, B any, EP Page, EW Power, MP Page, MW Power, XP Page, XW Power](
	c1 Comp[A, EP, EW, MP, MW],
	c2 Comp[B, MP, MW, XP, XW],
) Comp[B, EP, EW, XP, XW] {
	return Then(c1, func(A) Comp[B, MP, MW, XP, XW] {
		return c2
	})
}

// Loop reruns body until done says its result is good enough. The
// body must not move the controller state, so the loop as a whole
// doesn't either. Polling a status register for a busy bit is the
// intended use; there is no timeout here, a bounded wait belongs in
// the body itself.
func Loop[A any, P Page, W Power](body Comp[A, P, W, P, W], done func(A) bool) Comp[A, P, W, P, W] {
	return Comp[A, P, W, P, W]{run: func(d *Device) (A, error) {
		for {
			a, err := body.run(d)
			if err != nil || done(a) {
				return a, err
			}
		}
	}}
}
