package regfile

import (
	"ne2k/ports"

	"github.com/pkg/errors"
)

/**
Base-relative register file.

Translates a register offset inside the controller's 16-port window
into an absolute port number and issues the raw I/O. No page checking
happens here on purpose, that lives one layer up in the seq package.
*/

// Window - number of ports the controller decodes
const Window = 16

// ErrBadOffset - register offset outside the 16-port window
var ErrBadOffset = errors.New("register offset outside the 16-port window")

// File issues byte and word access relative to a stored base address.
// The base is fixed at construction and never changes for the
// lifetime of the device.
type File struct {
	bus  ports.Bus
	base uint16
}

// New returns a register file for the window starting at base
func New(bus ports.Bus, base uint16) *File {
	return &File{bus: bus, base: base}
}

// Base returns the base port address of the window
func (f *File) Base() uint16 {
	return f.base
}

// Read reads the byte register at the given offset
func (f *File) Read(offset uint8) (uint8, error) {
	if offset >= Window {
		return 0, errors.Wrapf(ErrBadOffset, "read offset %#x", offset)
	}
	data, err := f.bus.In(f.base + uint16(offset))
	if err != nil {
		return 0, errors.Wrapf(err, "port %#x read", f.base+uint16(offset))
	}
	return data, nil
}

// Write writes the byte register at the given offset
func (f *File) Write(offset uint8, data uint8) error {
	if offset >= Window {
		return errors.Wrapf(ErrBadOffset, "write offset %#x", offset)
	}
	if err := f.bus.Out(f.base+uint16(offset), data); err != nil {
		return errors.Wrapf(err, "port %#x write", f.base+uint16(offset))
	}
	return nil
}

// Read16 reads a 16 bit register split over two consecutive ports,
// low byte first. The DP8390 keeps the low half of its register pairs
// at the lower offset (CLDA0/CLDA1, TBCR0/TBCR1), per datasheet.
func (f *File) Read16(offset uint8) (uint16, error) {
	lo, err := f.Read(offset)
	if err != nil {
		return 0, err
	}
	hi, err := f.Read(offset + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// Write16 writes a 16 bit register split over two consecutive ports,
// low byte first
func (f *File) Write16(offset uint8, data uint16) error {
	if err := f.Write(offset, uint8(data&0xff)); err != nil {
		return err
	}
	return f.Write(offset+1, uint8(data>>8))
}
