package regfile

import (
	"testing"

	"ne2k/ports"

	"github.com/pkg/errors"
)

// fake bus backed by a flat port array
type fakeBus struct {
	mem [0x400]uint8
}

func (b *fakeBus) In(port uint16) (uint8, error) {
	return b.mem[port], nil
}

func (b *fakeBus) Out(port uint16, data uint8) error {
	b.mem[port] = data
	return nil
}

func TestFile_ReadWrite(t *testing.T) {
	tests := []struct {
		name   string
		base   uint16
		offset uint8
		data   uint8
	}{
		{"offset 0 at base 0x300", 0x300, 0, 0x21},
		{"offset 3", 0x300, 3, 0x46},
		{"offset 15", 0x300, 15, 0xff},
		{"different base", 0x280, 7, 0x40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := &fakeBus{}
			f := New(bus, tt.base)
			if err := f.Write(tt.offset, tt.data); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			if got := bus.mem[tt.base+uint16(tt.offset)]; got != tt.data {
				t.Errorf("Write landed at wrong port. wanted %#x at %#x, got %#x",
					tt.data, tt.base+uint16(tt.offset), got)
			}
			got, err := f.Read(tt.offset)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if got != tt.data {
				t.Errorf("Read() = %#x, want %#x", got, tt.data)
			}
		})
	}
}

func TestFile_BadOffset(t *testing.T) {
	f := New(&fakeBus{}, 0x300)

	if _, err := f.Read(16); errors.Cause(err) != ErrBadOffset {
		t.Errorf("Read(16) error = %v, want ErrBadOffset", err)
	}
	if err := f.Write(16, 0); errors.Cause(err) != ErrBadOffset {
		t.Errorf("Write(16) error = %v, want ErrBadOffset", err)
	}
	// word access touching the port past the window
	if err := f.Write16(15, 0x1234); errors.Cause(err) != ErrBadOffset {
		t.Errorf("Write16(15) error = %v, want ErrBadOffset", err)
	}
}

func TestFile_WordOrder(t *testing.T) {
	bus := &fakeBus{}
	f := New(bus, 0x300)

	if err := f.Write16(5, 0xbeef); err != nil {
		t.Fatalf("Write16 failed: %v", err)
	}
	if bus.mem[0x305] != 0xef || bus.mem[0x306] != 0xbe {
		t.Errorf("Write16 byte order wrong: low %#x high %#x",
			bus.mem[0x305], bus.mem[0x306])
	}

	got, err := f.Read16(5)
	if err != nil {
		t.Fatalf("Read16 failed: %v", err)
	}
	if got != 0xbeef {
		t.Errorf("Read16() = %#x, want 0xbeef", got)
	}
}

func TestFile_TraceOrder(t *testing.T) {
	rec := ports.NewRecorder(&fakeBus{})
	f := New(rec, 0x300)

	_ = f.Write16(5, 0x0102)
	_, _ = f.Read(3)

	want := []ports.Access{
		{Port: 0x305, Data: 0x02, Write: true},
		{Port: 0x306, Data: 0x01, Write: true},
		{Port: 0x303, Data: 0x00},
	}
	trace := rec.Trace()
	if len(trace) != len(want) {
		t.Fatalf("recorded %d operations, want %d", len(trace), len(want))
	}
	for i, w := range want {
		if trace[i] != w {
			t.Errorf("operation %d = %+v, want %+v", i, trace[i], w)
		}
	}
}
