package ports

// Bus is the raw port I/O capability this layer is built on. The real
// thing is an ISA in/out instruction pair or a bus driver supplied by
// the platform; tests and the demo binary attach the dp8390 software
// model instead.
type Bus interface {
	// In reads one byte from an absolute port number
	In(port uint16) (uint8, error)

	// Out writes one byte to an absolute port number
	Out(port uint16, data uint8) error
}
