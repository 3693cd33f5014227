// Package io provides the output port collaborators of the cpu8 engine.
// A Port receives every byte the program writes to the output address, in
// order and at the moment of the write.
package io

// Port is the sink behind the memory-mapped output address.
// Any io.ByteWriter satisfies it.
type Port interface {
	// WriteByte accepts a single output byte.
	WriteByte(value byte) error
}
