package monitor

import (
	"testing"

	"ne2k/ports"
)

func TestFormatAccess(t *testing.T) {
	tests := []struct {
		name string
		a    ports.Access
		want string
	}{
		{"read", ports.Access{Port: 0x307, Data: 0x4c}, "in  0x0307 -> 0x4c"},
		{"write", ports.Access{Port: 0x300, Data: 0x61, Write: true}, "out 0x0300 <- 0x61"},
		{"low byte", ports.Access{Port: 0x305, Data: 0x02, Write: true}, "out 0x0305 <- 0x02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAccess(tt.a); got != tt.want {
				t.Errorf("formatAccess(%+v) = %q, want %q", tt.a, got, tt.want)
			}
		})
	}
}
