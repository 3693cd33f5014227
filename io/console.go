package io

import (
	"io"
)

// Console forwards each port byte immediately to an io.Writer,
// conventionally a terminal.
type Console struct {
	Output io.Writer

	Written int // Count of bytes written.
}

var _ Port = (*Console)(nil)

// WriteByte writes value to the output. With no output the byte is dropped.
func (con *Console) WriteByte(value byte) (err error) {
	if con.Output == nil {
		return
	}

	_, err = con.Output.Write([]byte{value})
	if err != nil {
		return
	}

	con.Written++
	return
}
