package seq

import (
	"log"

	"ne2k/cr"
	"ne2k/regfile"

	"github.com/pkg/errors"
)

// Strategy selects how TurnTo and SetPower rebuild the command byte
type Strategy int

const (
	// ReadMask - read the command register, mask in the new bits,
	// write it back. One extra port read per turn, but correct even
	// if some other code path flipped bits this layer doesn't track.
	ReadMask Strategy = iota

	// Reconstruct - build the whole byte from the statically tracked
	// state, no read. Only sound while this layer is the sole writer
	// of the command register; the remote DMA field is written as
	// abort/complete since all-zeros is not a legal command.
	Reconstruct
)

// ErrStartingState - the hardware does not agree with the starting
// state the caller declared for Run
var ErrStartingState = errors.New("hardware state does not match the declared starting state")

// Device - handle for one controller instance. Holds the register
// file with its fixed base address and the page-turn configuration.
// A device must not be shared across goroutines while a computation
// runs on it; the tracked state stops meaning anything if two
// computations interleave.
type Device struct {
	regs        *regfile.File
	strategy    Strategy
	verifyStart bool
	log         *log.Logger
}

// New returns a device handle over the given register file.
// verifyStart makes every Run read the command register first and
// check it against the computation's declared entry state.
func New(regs *regfile.File, strategy Strategy, verifyStart bool, logger *log.Logger) *Device {
	return &Device{
		regs:        regs,
		strategy:    strategy,
		verifyStart: verifyStart,
		log:         logger,
	}
}

// TurnTo - the page turn, the only operation that may change the page
// tag. Writes the command register once (twice the I/O under
// ReadMask), carrying the power bits through untouched.
func TurnTo[To, From Page, W Power]() Comp[Unit, From, W, To, W] {
	return Comp[Unit, From, W, To, W]{run: func(d *Device) (Unit, error) {
		var to To
		var w W
		return Unit{}, d.writeCommand(func(old cr.CR) cr.CR {
			return old.WithPage(to.pageSel())
		}, cr.Encode(to.pageSel(), w.powerState(), cr.RemoteAbort))
	}}
}

// SetPower - the power state change, the only operation that may
// change the power tag. Page bits come through untouched.
func SetPower[To Power, From Power, P Page]() Comp[Unit, P, From, P, To] {
	return Comp[Unit, P, From, P, To]{run: func(d *Device) (Unit, error) {
		var to To
		var p P
		return Unit{}, d.writeCommand(func(old cr.CR) cr.CR {
			return old.WithPower(to.powerState())
		}, cr.Encode(p.pageSel(), to.powerState(), cr.RemoteAbort))
	}}
}

// Run executes a finished computation against the device, in
// declaration order, and returns its result. The caller asserts that
// the hardware currently is in the computation's entry state; with
// verifyStart set the assertion is checked against the real command
// register and a mismatch comes back as ErrStartingState, uncorrected.
func Run[A any, EP Page, EW Power, XP Page, XW Power](d *Device, c Comp[A, EP, EW, XP, XW]) (A, error) {
	if d.verifyStart {
		var ep EP
		var ew EW
		var zero A
		b, err := d.regs.Read(cr.Offset)
		if err != nil {
			return zero, err
		}
		got := cr.CR(b)
		if got.Page() != ep.pageSel() || got.Power() != ew.powerState() {
			if d.log != nil {
				d.log.Printf("starting state check failed: declared (%v, %v), hardware (%v, %v)",
					ep.pageSel(), ew.powerState(), got.Page(), got.Power())
			}
			return zero, errors.Wrapf(ErrStartingState,
				"declared (%v, %v), hardware (%v, %v)",
				ep.pageSel(), ew.powerState(), got.Page(), got.Power())
		}
	}
	return c.run(d)
}

// writeCommand applies one of the two strategies: mask the new bits
// into a freshly read value, or write the reconstructed byte directly
func (d *Device) writeCommand(mask func(cr.CR) cr.CR, rebuilt cr.CR) error {
	if d.strategy == Reconstruct {
		return d.regs.Write(cr.Offset, rebuilt.Get())
	}
	old, err := d.regs.Read(cr.Offset)
	if err != nil {
		return err
	}
	return d.regs.Write(cr.Offset, mask(cr.CR(old)).Get())
}
