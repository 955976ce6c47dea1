package nic

/**
Register map of the DP8390 core, the part of it this catalog models.
Offsets are relative to the 16-port window; which register a port
hits depends on the page selected in the command register.
*/

// register offsets
const (
	offPageStart       = 0x01 // PSTART, page 0, write-only
	offPageStop        = 0x02 // PSTOP, page 0, write-only
	offBoundary        = 0x03 // BNRY, page 0, read/write on the same port
	offTxPageStart     = 0x04 // TPSR, page 0, write-only
	offTxByteCount     = 0x05 // TBCR0/TBCR1 pair, page 0, write-only
	offIntStatus       = 0x07 // ISR, page 0, read / write-1-to-clear
	offRemoteByteCount = 0x0a // RBCR0/RBCR1 pair, page 0, write-only
	offRxConfig        = 0x0c // RCR, page 0, write-only
	offCRCErrors       = 0x0d // CNTR1 read side, page 0; the write side of this port is a different register and is deliberately not exposed
	offDataConfig      = 0x0e // DCR: written on page 0, read back on page 1
	offLocalDMA        = 0x01 // CLDA0/CLDA1 pair, page 1, write-only
	offCurrent         = 0x07 // CURR, page 1, read/write
	offMulticast       = 0x08 // MAR0..MAR5, page 1, read/write
)

// interrupt status register bits
const (
	ISRPacketReceived    uint8 = 0x01
	ISRPacketTransmitted uint8 = 0x02
	ISRReceiveError      uint8 = 0x04
	ISRTransmitError     uint8 = 0x08
	ISROverwriteWarning  uint8 = 0x10
	ISRCounterOverflow   uint8 = 0x20
	ISRRemoteDMAComplete uint8 = 0x40
	ISRReset             uint8 = 0x80
)

// data configuration register bits
const (
	DCRWordTransfer uint8 = 0x01
	DCRBigEndian    uint8 = 0x02
	DCRLongAddress  uint8 = 0x04
	DCRBurstMode    uint8 = 0x08
	DCRAutoInit     uint8 = 0x10
	DCRFIFO2        uint8 = 0x20
	DCRFIFO4        uint8 = 0x40
)
