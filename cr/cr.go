package cr

/**
Command register package.

The DP8390 multiplexes its register file over 16 I/O ports, with the
active page selected by two bits of the command register at offset 0.
The same byte carries the start/stop bits, so every page turn has to
put the power bits back exactly as they were.
*/

// command register layout. Values here are bits, not the
// powers of 2
const stpBit = 0
const staBit = 1
const txpBit = 2

// page selector lives in bits 6-7 (PS0, PS1)
const pageShift = 6

// Offset of the command register inside the 16-port window. The
// command register is visible at this offset on every page.
const Offset = 0

// RemoteAbort - remote DMA command field set to "abort/complete"
// (RD2). Writing zeros to the RD field is not a valid command, so a
// reconstructed command byte carries this value.
const RemoteAbort CR = 1 << 5

// Page - one of the four register views selected by bits 6-7
type Page uint8

// the four pages. Page3 exists on some clones only, the type still
// covers it so a switch over Page stays exhaustive
const (
	Page0 Page = iota
	Page1
	Page2
	Page3
)

func (p Page) String() string {
	return [...]string{"Page0", "Page1", "Page2", "Page3"}[p&3]
}

// PowerState - decoded start/stop field (bits 0-1)
type PowerState uint8

const (
	// PowerOff - STP set, STA clear. Reset state of the controller.
	PowerOff PowerState = iota

	// PowerOn - STA set, STP clear
	PowerOn

	// PowerInvalid - both or neither bit set. Never produced by this
	// layer, only seen when decoding a register someone else wrote.
	PowerInvalid
)

func (s PowerState) String() string {
	return [...]string{"Off", "On", "Invalid"}[s]
}

// CR keeps one command register value
type CR uint8

// Get returns the raw byte
func (c CR) Get() uint8 {
	return uint8(c)
}

// Page returns the page selected by bits 6-7
func (c CR) Page() Page {
	return Page(c >> pageShift)
}

// Power decodes the start/stop field
func (c CR) Power() PowerState {
	stp := c&(1<<stpBit) != 0
	sta := c&(1<<staBit) != 0
	switch {
	case stp && !sta:
		return PowerOff
	case sta && !stp:
		return PowerOn
	default:
		return PowerInvalid
	}
}

// WithPage returns the value with bits 6-7 replaced by the given page.
// All other bits, power bits included, come through verbatim.
func (c CR) WithPage(p Page) CR {
	return (c & 0x3f) | CR(p)<<pageShift
}

// WithPower returns the value with the start/stop field replaced.
// Page bits and the remaining flag bits come through verbatim.
func (c CR) WithPower(s PowerState) CR {
	return (c &^ 0x03) | powerBits(s)
}

// Encode packs a page and power state into a command byte. Bits not
// covered by either field are taken from other, so a caller holding a
// previously read value can keep the remote DMA and TXP bits intact.
func Encode(p Page, s PowerState, other CR) CR {
	return other.WithPage(p).WithPower(s)
}

// DecodePage extracts the page selector from a raw command byte
func DecodePage(b uint8) Page {
	return CR(b).Page()
}

// DecodePowerState extracts the start/stop field from a raw command byte
func DecodePowerState(b uint8) PowerState {
	return CR(b).Power()
}

func powerBits(s PowerState) CR {
	switch s {
	case PowerOn:
		return 1 << staBit
	case PowerOff:
		return 1 << stpBit
	default:
		// both bits set, decodes back to PowerInvalid
		return 1<<staBit | 1<<stpBit
	}
}
