package ports

// Access - one recorded port operation
type Access struct {
	Port  uint16
	Data  uint8
	Write bool
}

// Recorder wraps a Bus and keeps every port operation that went
// through it, in issue order. The monitor feeds its trace view from
// it and the tests assert on the exact operation sequence.
type Recorder struct {
	bus   Bus
	trace []Access

	// OnAccess, when set, is called for every operation after it
	// completed successfully
	OnAccess func(Access)
}

// NewRecorder returns a recorder delegating to the given bus
func NewRecorder(bus Bus) *Recorder {
	return &Recorder{bus: bus}
}

// In reads a byte through the wrapped bus and records the result
func (r *Recorder) In(port uint16) (uint8, error) {
	data, err := r.bus.In(port)
	if err != nil {
		return 0, err
	}
	r.record(Access{Port: port, Data: data})
	return data, nil
}

// Out writes a byte through the wrapped bus and records it
func (r *Recorder) Out(port uint16, data uint8) error {
	if err := r.bus.Out(port, data); err != nil {
		return err
	}
	r.record(Access{Port: port, Data: data, Write: true})
	return nil
}

// Trace returns the recorded operations in issue order
func (r *Recorder) Trace() []Access {
	return r.trace
}

// Reset drops the recorded trace
func (r *Recorder) Reset() {
	r.trace = r.trace[:0]
}

func (r *Recorder) record(a Access) {
	r.trace = append(r.trace, a)
	if r.OnAccess != nil {
		r.OnAccess(a)
	}
}
