package io

// Buffer captures port output for later inspection.
// A zero Capacity is unbounded.
type Buffer struct {
	Capacity int // Capacity in bytes.

	Data []byte
}

var _ Port = (*Buffer)(nil)

// Rewind discards the captured output.
func (buf *Buffer) Rewind() {
	buf.Data = buf.Data[:0]
}

// WriteByte appends value to the buffer.
// Returns ErrPortFull if the buffer has reached capacity.
func (buf *Buffer) WriteByte(value byte) (err error) {
	if buf.Capacity > 0 && len(buf.Data) >= buf.Capacity {
		err = ErrPortFull
		return
	}

	buf.Data = append(buf.Data, value)
	return
}

// Bytes returns the captured output.
func (buf *Buffer) Bytes() []byte {
	return buf.Data
}

// String returns the captured output as text.
func (buf *Buffer) String() string {
	return string(buf.Data)
}
