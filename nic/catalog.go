package nic

import (
	"ne2k/regfile"
	"ne2k/seq"

	"github.com/pkg/errors"
)

/**
Typed register operation catalog.

Every operation here is a primitive computation carrying the page and
power state it requires in its type. Directions follow the hardware:
a read-only register gets no Set operation and a write-only register
gets no Read operation, so an illegal access has nothing to call, and
an access on the wrong page does not compile. None of these touch the
command register - the page and power tags pass through unchanged.
*/

// SetBoundary writes the boundary pointer. Page 0, any power state.
func SetBoundary[W seq.Power](v uint8) seq.Comp[seq.Unit, seq.Page0, W, seq.Page0, W] {
	return write8[seq.Page0, W](offBoundary, v)
}

// ReadBoundary reads the boundary pointer back. Same port as the
// write, page 0.
func ReadBoundary[W seq.Power]() seq.Comp[uint8, seq.Page0, W, seq.Page0, W] {
	return read8[seq.Page0, W](offBoundary)
}

// SetPageStart programs the receive ring start page. Page 0,
// write-only; the port reads back something unrelated.
func SetPageStart[W seq.Power](v uint8) seq.Comp[seq.Unit, seq.Page0, W, seq.Page0, W] {
	return write8[seq.Page0, W](offPageStart, v)
}

// SetPageStop programs the receive ring stop page. Page 0, write-only.
func SetPageStop[W seq.Power](v uint8) seq.Comp[seq.Unit, seq.Page0, W, seq.Page0, W] {
	return write8[seq.Page0, W](offPageStop, v)
}

// SetTxPageStart programs the transmit buffer start page. Page 0,
// write-only.
func SetTxPageStart[W seq.Power](v uint8) seq.Comp[seq.Unit, seq.Page0, W, seq.Page0, W] {
	return write8[seq.Page0, W](offTxPageStart, v)
}

// SetTxByteCount programs the 16 bit transmit byte count pair. Page 0,
// write-only.
func SetTxByteCount[W seq.Power](v uint16) seq.Comp[seq.Unit, seq.Page0, W, seq.Page0, W] {
	return write16[seq.Page0, W](offTxByteCount, v)
}

// SetRemoteByteCount programs the 16 bit remote DMA byte count pair.
// Page 0, write-only.
func SetRemoteByteCount[W seq.Power](v uint16) seq.Comp[seq.Unit, seq.Page0, W, seq.Page0, W] {
	return write16[seq.Page0, W](offRemoteByteCount, v)
}

// ReadIntStatus reads the interrupt status register. Page 0.
func ReadIntStatus[W seq.Power]() seq.Comp[uint8, seq.Page0, W, seq.Page0, W] {
	return read8[seq.Page0, W](offIntStatus)
}

// ClearIntStatus acknowledges the given status bits; the register is
// write-1-to-clear. Page 0.
func ClearIntStatus[W seq.Power](mask uint8) seq.Comp[seq.Unit, seq.Page0, W, seq.Page0, W] {
	return write8[seq.Page0, W](offIntStatus, mask)
}

// SetRxConfig writes the receive configuration register. Page 0,
// write-only.
func SetRxConfig[W seq.Power](v uint8) seq.Comp[seq.Unit, seq.Page0, W, seq.Page0, W] {
	return write8[seq.Page0, W](offRxConfig, v)
}

// ReadCRCErrors reads the CRC error tally, clearing it. Page 0,
// read-only: writing the same port hits an unrelated register, so no
// write operation exists for it.
func ReadCRCErrors[W seq.Power]() seq.Comp[uint8, seq.Page0, W, seq.Page0, W] {
	return read8[seq.Page0, W](offCRCErrors)
}

// SetDataConfig writes the data configuration register. Page 0, and
// only while the controller is stopped - reconfiguring the bus
// interface of a running chip is not a thing the hardware allows.
func SetDataConfig(v uint8) seq.Comp[seq.Unit, seq.Page0, seq.Off, seq.Page0, seq.Off] {
	return write8[seq.Page0, seq.Off](offDataConfig, v)
}

// ReadDataConfig reads the data configuration register back. The read
// side lives on page 1, same offset - a different operation with a
// different required page, not the mirror of SetDataConfig.
func ReadDataConfig[W seq.Power]() seq.Comp[uint8, seq.Page1, W, seq.Page1, W] {
	return read8[seq.Page1, W](offDataConfig)
}

// SetLocalDMA writes the 16 bit current local DMA address pair.
// Page 1, write-only; the hardware offers no read side, so neither
// does the catalog.
func SetLocalDMA[W seq.Power](v uint16) seq.Comp[seq.Unit, seq.Page1, W, seq.Page1, W] {
	return write16[seq.Page1, W](offLocalDMA, v)
}

// ReadCurrent reads the current receive page register. Page 1.
func ReadCurrent[W seq.Power]() seq.Comp[uint8, seq.Page1, W, seq.Page1, W] {
	return read8[seq.Page1, W](offCurrent)
}

// SetCurrent writes the current receive page register. Page 1.
func SetCurrent[W seq.Power](v uint8) seq.Comp[seq.Unit, seq.Page1, W, seq.Page1, W] {
	return write8[seq.Page1, W](offCurrent, v)
}

// ReadMulticast reads multicast filter byte n, n in [0,5]. Page 1.
// The index is checked at run time: one past the filter sits the
// data configuration register, exactly the kind of neighbor this
// layer exists to protect.
func ReadMulticast[W seq.Power](n int) seq.Comp[uint8, seq.Page1, W, seq.Page1, W] {
	return seq.Prim[uint8, seq.Page1, W](func(f *regfile.File) (uint8, error) {
		if n < 0 || n > 5 {
			return 0, errors.Errorf("multicast filter index %d out of range", n)
		}
		return f.Read(offMulticast + uint8(n))
	})
}

// SetMulticast writes multicast filter byte n, n in [0,5]. Page 1.
func SetMulticast[W seq.Power](n int, v uint8) seq.Comp[seq.Unit, seq.Page1, W, seq.Page1, W] {
	return seq.Prim[seq.Unit, seq.Page1, W](func(f *regfile.File) (seq.Unit, error) {
		if n < 0 || n > 5 {
			return seq.Unit{}, errors.Errorf("multicast filter index %d out of range", n)
		}
		return seq.Unit{}, f.Write(offMulticast+uint8(n), v)
	})
}

// generic plumbing shared by the catalog

func read8[P seq.Page, W seq.Power](offset uint8) seq.Comp[uint8, P, W, P, W] {
	return seq.Prim[uint8, P, W](func(f *regfile.File) (uint8, error) {
		return f.Read(offset)
	})
}

func write8[P seq.Page, W seq.Power](offset, v uint8) seq.Comp[seq.Unit, P, W, P, W] {
	return seq.Prim[seq.Unit, P, W](func(f *regfile.File) (seq.Unit, error) {
		return seq.Unit{}, f.Write(offset, v)
	})
}

func write16[P seq.Page, W seq.Power](offset uint8, v uint16) seq.Comp[seq.Unit, P, W, P, W] {
	return seq.Prim[seq.Unit, P, W](func(f *regfile.File) (seq.Unit, error) {
		return seq.Unit{}, f.Write16(offset, v)
	})
}
