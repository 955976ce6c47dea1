package dp8390

import (
	"fmt"
	"io"
	"log"

	"ne2k/cr"

	"github.com/pkg/errors"
)

/**
Software model of the DP8390 register file.

Implements ports.Bus for a 16-port window, paging included, so the
access layer can be exercised end to end without an ISA bus. Only the
registers the catalog touches behave like the real chip; everything
else reads as zero and swallows writes. This is a register model, not
a working NIC - there is no packet path behind it.
*/

// Window - number of ports the controller decodes
const Window = 16

// power-up command register value: stopped, remote DMA abort
const resetCommand = cr.CR(0x21)

// Controller keeps the register state of one modeled chip
type Controller struct {
	base uint16
	log  *log.Logger

	cmd cr.CR

	// page 0
	pageStart uint8
	pageStop  uint8
	boundary  uint8
	txStart   uint8
	txCount   [2]uint8
	intStatus uint8
	rbCount   [2]uint8
	rxConfig  uint8
	crcErrors uint8
	dataCfg   uint8

	// page 1
	localDMA  [2]uint8
	current   uint8
	multicast [6]uint8
}

// New returns a stopped controller decoding the window at base
func New(base uint16, logger *log.Logger) *Controller {
	return &Controller{
		base: base,
		log:  logger,
		cmd:  resetCommand,
	}
}

// In reads one byte from an absolute port number
func (c *Controller) In(port uint16) (uint8, error) {
	off, err := c.offset(port)
	if err != nil {
		return 0, err
	}
	if off == cr.Offset {
		return uint8(c.cmd), nil
	}

	switch c.cmd.Page() {
	case cr.Page0:
		return c.readPage0(off), nil
	case cr.Page1:
		return c.readPage1(off), nil
	case cr.Page2:
		return c.readPage2(off), nil
	default:
		// page 3 is not decoded on this variant
		return 0, nil
	}
}

// Out writes one byte to an absolute port number
func (c *Controller) Out(port uint16, data uint8) error {
	off, err := c.offset(port)
	if err != nil {
		return err
	}
	if off == cr.Offset {
		c.cmd = cr.CR(data)
		return nil
	}

	switch c.cmd.Page() {
	case cr.Page0:
		c.writePage0(off, data)
	case cr.Page1:
		c.writePage1(off, data)
	default:
		if c.log != nil {
			c.log.Printf("write to unmodeled page %v offset %#x ignored", c.cmd.Page(), off)
		}
	}
	return nil
}

// AddCRCErrors bumps the CRC error tally. Stands in for the receive
// path the model doesn't have; tests and the demo use it to give the
// counter something to report.
func (c *Controller) AddCRCErrors(n uint8) {
	c.crcErrors += n
}

// Command returns the current command register value
func (c *Controller) Command() cr.CR {
	return c.cmd
}

// DumpRegisters writes the controller state, for the monitor's
// register view
func (c *Controller) DumpRegisters(w io.Writer) {
	fmt.Fprintf(w, "CR:%#02x [%v %v]  ", uint8(c.cmd), c.cmd.Page(), c.cmd.Power())
	fmt.Fprintf(w, "BNRY:%#02x PSTART:%#02x PSTOP:%#02x TPSR:%#02x\n",
		c.boundary, c.pageStart, c.pageStop, c.txStart)
	fmt.Fprintf(w, "ISR:%#02x DCR:%#02x CNTR1:%#02x CURR:%#02x CLDA:%#02x%02x\n",
		c.intStatus, c.dataCfg, c.crcErrors, c.current, c.localDMA[1], c.localDMA[0])
	fmt.Fprintf(w, "MAR: % 02x\n", c.multicast)
}

func (c *Controller) offset(port uint16) (uint8, error) {
	if port < c.base || port >= c.base+Window {
		return 0, errors.Errorf("port %#x outside the controller window at %#x", port, c.base)
	}
	return uint8(port - c.base), nil
}

func (c *Controller) readPage0(off uint8) uint8 {
	switch off {
	case 0x03:
		return c.boundary
	case 0x07:
		return c.intStatus
	case 0x0d:
		// counter clears on read, like the real chip
		v := c.crcErrors
		c.crcErrors = 0
		return v
	default:
		// write-only or unmodeled on this page
		return 0
	}
}

func (c *Controller) writePage0(off uint8, data uint8) {
	switch off {
	case 0x01:
		c.pageStart = data
	case 0x02:
		c.pageStop = data
	case 0x03:
		c.boundary = data
	case 0x04:
		c.txStart = data
	case 0x05:
		c.txCount[0] = data
	case 0x06:
		c.txCount[1] = data
	case 0x07:
		// write-1-to-clear
		c.intStatus &^= data
	case 0x0a:
		c.rbCount[0] = data
	case 0x0b:
		c.rbCount[1] = data
	case 0x0c:
		c.rxConfig = data
	case 0x0e:
		c.dataCfg = data
	}
}

func (c *Controller) readPage1(off uint8) uint8 {
	switch {
	case off == 0x07:
		return c.current
	case off >= 0x08 && off <= 0x0d:
		return c.multicast[off-0x08]
	case off == 0x0e:
		return c.dataCfg
	default:
		// the local DMA address pair has no read side
		return 0
	}
}

func (c *Controller) writePage1(off uint8, data uint8) {
	switch {
	case off == 0x01 || off == 0x02:
		c.localDMA[off-0x01] = data
	case off == 0x07:
		c.current = data
	case off >= 0x08 && off <= 0x0d:
		c.multicast[off-0x08] = data
	}
}

func (c *Controller) readPage2(off uint8) uint8 {
	switch off {
	case 0x01:
		return c.pageStart
	case 0x02:
		return c.pageStop
	case 0x04:
		return c.txStart
	default:
		return 0
	}
}

// SetInterruptStatus raises bits in the interrupt status register.
// Another stand-in for the missing packet path, used by tests that
// poll for remote DMA completion.
func (c *Controller) SetInterruptStatus(mask uint8) {
	c.intStatus |= mask
}
