package nic

import (
	"ne2k/seq"
)

/**
Composed driver routines. Nothing here is primitive - everything is
catalog operations and page turns chained with Then/Seq, which is the
point: a routine that sequenced its steps on the wrong page would not
have compiled.
*/

// InitSequence is the classic bring-up of a stopped controller:
// program the bus interface, the receive ring and the boundary, ack
// stale interrupt bits, then hop to page 1 to seed the current
// receive page. Enters and leaves at (page 0, stopped); starting the
// chip is the caller's decision, via seq.SetPower.
func InitSequence(dcr, pageStart, pageStop, boundary uint8) seq.Comp[seq.Unit, seq.Page0, seq.Off, seq.Page0, seq.Off] {
	c := seq.Seq(SetDataConfig(dcr), SetRemoteByteCount[seq.Off](0))
	c = seq.Seq(c, SetPageStart[seq.Off](pageStart))
	c = seq.Seq(c, SetPageStop[seq.Off](pageStop))
	c = seq.Seq(c, SetBoundary[seq.Off](boundary))
	c = seq.Seq(c, SetTxPageStart[seq.Off](pageStart))
	c = seq.Seq(c, ClearIntStatus[seq.Off](0xff))

	onPage1 := seq.Seq(c, seq.TurnTo[seq.Page1, seq.Page0, seq.Off]())
	onPage1 = seq.Seq(onPage1, SetCurrent[seq.Off](pageStart+1))
	return seq.Seq(onPage1, seq.TurnTo[seq.Page0, seq.Page1, seq.Off]())
}

// ReadMulticastFilter fetches all six multicast filter bytes in one
// page 1 visit: a single turn in, six reads, a single turn back out.
func ReadMulticastFilter[W seq.Power]() seq.Comp[[6]uint8, seq.Page0, W, seq.Page0, W] {
	acc := seq.Pure[seq.Page1, W]([6]uint8{})
	for i := 0; i < 6; i++ {
		i := i // per-iteration copy for the closures below (pre-1.22 loop semantics)
		prev := acc
		acc = seq.Then(prev, func(a [6]uint8) seq.Comp[[6]uint8, seq.Page1, W, seq.Page1, W] {
			return seq.Then(ReadMulticast[W](i), func(b uint8) seq.Comp[[6]uint8, seq.Page1, W, seq.Page1, W] {
				a[i] = b
				return seq.Pure[seq.Page1, W](a)
			})
		})
	}

	onPage1 := seq.Seq(seq.TurnTo[seq.Page1, seq.Page0, W](), acc)
	return seq.Then(onPage1, func(a [6]uint8) seq.Comp[[6]uint8, seq.Page1, W, seq.Page0, W] {
		return seq.Seq(seq.TurnTo[seq.Page0, seq.Page1, W](), seq.Pure[seq.Page0, W](a))
	})
}

// SetMulticastFilter programs all six filter bytes, same single-visit
// shape as the read.
func SetMulticastFilter[W seq.Power](filter [6]uint8) seq.Comp[seq.Unit, seq.Page0, W, seq.Page0, W] {
	c := seq.TurnTo[seq.Page1, seq.Page0, W]()
	for i := 0; i < 6; i++ {
		c = seq.Seq(c, SetMulticast[W](i, filter[i]))
	}
	return seq.Seq(c, seq.TurnTo[seq.Page0, seq.Page1, W]())
}

// WaitRemoteDMAComplete polls the interrupt status register until the
// remote DMA complete bit comes up, returning the last value read.
// Plain polling, no timeout - see the seq.Loop notes.
func WaitRemoteDMAComplete[W seq.Power]() seq.Comp[uint8, seq.Page0, W, seq.Page0, W] {
	return seq.Loop(ReadIntStatus[W](), func(isr uint8) bool {
		return isr&ISRRemoteDMAComplete != 0
	})
}
