package nic

import (
	"testing"

	"ne2k/cr"
	"ne2k/dp8390"
	"ne2k/ports"
	"ne2k/regfile"
	"ne2k/seq"
)

const base = 0x300

// test rig: modeled controller behind a recorder behind the access layer
func rig(strategy seq.Strategy) (*dp8390.Controller, *ports.Recorder, *seq.Device) {
	ctrl := dp8390.New(base, nil)
	rec := ports.NewRecorder(ctrl)
	dev := seq.New(regfile.New(rec, base), strategy, false, nil)
	return ctrl, rec, dev
}

// the boundary/CLDA/CRC sweep: one batch on page 0, a visit to
// page 1, back to page 0, with the no-read page turn. Five port
// operations, the command register written exactly twice, the
// stopped bit intact in both writes.
func TestPageSweepScenario(t *testing.T) {
	ctrl, rec, dev := rig(seq.Reconstruct)
	ctrl.AddCRCErrors(2)

	c := seq.Seq(SetBoundary[seq.Off](0x46), seq.TurnTo[seq.Page1, seq.Page0, seq.Off]())
	c2 := seq.Seq(c, ReadCurrent[seq.Off]())
	c3 := seq.Seq(c2, seq.TurnTo[seq.Page0, seq.Page1, seq.Off]())
	c4 := seq.Seq(c3, ReadCRCErrors[seq.Off]())

	got, err := seq.Run(dev, c4)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got != 2 {
		t.Errorf("CRC error count = %d, want 2", got)
	}

	trace := rec.Trace()
	if len(trace) != 5 {
		t.Fatalf("issued %d port operations, want 5: %+v", len(trace), trace)
	}

	wantPorts := []uint16{base + 3, base, base + 7, base, base + 13}
	wantWrite := []bool{true, true, false, true, false}
	crWrites := 0
	for i, a := range trace {
		if a.Port != wantPorts[i] || a.Write != wantWrite[i] {
			t.Errorf("operation %d = %+v, want port %#x write=%v",
				i, a, wantPorts[i], wantWrite[i])
		}
		if a.Port == base && a.Write {
			crWrites++
			if cr.DecodePowerState(a.Data) != cr.PowerOff {
				t.Errorf("command write %#x lost the stopped bit", a.Data)
			}
		}
	}
	if crWrites != 2 {
		t.Errorf("command register written %d times, want 2", crWrites)
	}
}

func TestInitSequence(t *testing.T) {
	ctrl, _, dev := rig(seq.ReadMask)

	c := InitSequence(DCRFIFO2|DCRAutoInit, 0x46, 0x80, 0x46)
	if _, err := seq.Run(dev, c); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// exit state: back on page 0, still stopped
	if ctrl.Command().Page() != cr.Page0 {
		t.Errorf("exit page = %v, want Page0", ctrl.Command().Page())
	}
	if ctrl.Command().Power() != cr.PowerOff {
		t.Errorf("exit power = %v, want Off", ctrl.Command().Power())
	}

	// the boundary took, on page 0
	got, err := seq.Run(dev, ReadBoundary[seq.Off]())
	if err != nil {
		t.Fatalf("boundary read failed: %v", err)
	}
	if got != 0x46 {
		t.Errorf("boundary = %#x, want 0x46", got)
	}

	// DCR took, read back from its page 1 side
	dcr := seq.Seq(seq.TurnTo[seq.Page1, seq.Page0, seq.Off](), ReadDataConfig[seq.Off]())
	dcrBack := seq.Then(dcr, func(v uint8) seq.Comp[uint8, seq.Page1, seq.Off, seq.Page0, seq.Off] {
		return seq.Seq(seq.TurnTo[seq.Page0, seq.Page1, seq.Off](), seq.Pure[seq.Page0, seq.Off](v))
	})
	v, err := seq.Run(dev, dcrBack)
	if err != nil {
		t.Fatalf("DCR read back failed: %v", err)
	}
	if v != DCRFIFO2|DCRAutoInit {
		t.Errorf("DCR = %#x, want %#x", v, DCRFIFO2|DCRAutoInit)
	}
}

func TestReadMulticastFilter(t *testing.T) {
	ctrl, rec, dev := rig(seq.Reconstruct)

	want := [6]uint8{0x11, 0x22, 0x33, 0x44, 0x55, 0x66}
	if _, err := seq.Run(dev, SetMulticastFilter[seq.Off](want)); err != nil {
		t.Fatalf("filter write failed: %v", err)
	}

	rec.Reset()
	got, err := seq.Run(dev, ReadMulticastFilter[seq.Off]())
	if err != nil {
		t.Fatalf("filter read failed: %v", err)
	}
	if got != want {
		t.Errorf("filter = %x, want %x", got, want)
	}

	// one turn in, six reads, one turn out: a single page-1 visit
	if len(rec.Trace()) != 8 {
		t.Errorf("issued %d port operations, want 8: %+v", len(rec.Trace()), rec.Trace())
	}

	if ctrl.Command().Page() != cr.Page0 {
		t.Errorf("exit page = %v, want Page0", ctrl.Command().Page())
	}
}

func TestWaitRemoteDMAComplete(t *testing.T) {
	ctrl, _, dev := rig(seq.Reconstruct)
	ctrl.SetInterruptStatus(ISRRemoteDMAComplete | ISRPacketReceived)

	got, err := seq.Run(dev, WaitRemoteDMAComplete[seq.Off]())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got&ISRRemoteDMAComplete == 0 {
		t.Errorf("returned status %#x lacks the remote DMA complete bit", got)
	}
}

func TestMulticastIndexRange(t *testing.T) {
	_, _, dev := rig(seq.Reconstruct)

	c := seq.Seq(seq.TurnTo[seq.Page1, seq.Page0, seq.Off](), ReadMulticast[seq.Off](6))
	if _, err := seq.Run(dev, c); err == nil {
		t.Error("multicast index 6 did not fail; the port past the filter is the DCR")
	}
}

func TestRunVerifyAgainstModel(t *testing.T) {
	ctrl := dp8390.New(base, nil)
	dev := seq.New(regfile.New(ctrl, base), seq.ReadMask, true, nil)

	// the model powers up at (page 0, stopped); a computation
	// declared to start on page 2 must be refused
	if _, err := seq.Run(dev, seq.Pure[seq.Page2, seq.Off](0)); err == nil {
		t.Error("mismatched starting state was not refused")
	}
	if _, err := seq.Run(dev, ReadBoundary[seq.Off]()); err != nil {
		t.Errorf("matching starting state refused: %v", err)
	}
}
