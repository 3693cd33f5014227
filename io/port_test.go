package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failWriter struct{}

func (fw failWriter) Write(data []byte) (int, error) {
	return 0, errors.New("closed")
}

func TestConsole_WriteByte(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	con := &Console{Output: output}

	for _, b := range []byte("hi\n") {
		err := con.WriteByte(b)
		assert.NoError(err)
	}

	assert.Equal("hi\n", output.String())
	assert.Equal(3, con.Written)
}

func TestConsole_Discard(t *testing.T) {
	assert := assert.New(t)

	con := &Console{}
	err := con.WriteByte('x')
	assert.NoError(err)
	assert.Equal(0, con.Written)
}

func TestConsole_Error(t *testing.T) {
	assert := assert.New(t)

	con := &Console{Output: failWriter{}}
	err := con.WriteByte('x')
	assert.Error(err)
	assert.Equal(0, con.Written)
}

func TestBuffer_WriteByte(t *testing.T) {
	assert := assert.New(t)

	buf := &Buffer{Capacity: 2}

	assert.NoError(buf.WriteByte(0x01))
	assert.NoError(buf.WriteByte(0x02))
	assert.Equal(ErrPortFull, buf.WriteByte(0x03))
	assert.Equal([]byte{0x01, 0x02}, buf.Bytes())

	buf.Rewind()
	assert.Equal(0, len(buf.Bytes()))
	assert.NoError(buf.WriteByte('A'))
	assert.Equal("A", buf.String())
}

func TestBuffer_Unbounded(t *testing.T) {
	assert := assert.New(t)

	buf := &Buffer{}
	for n := range 1000 {
		assert.NoError(buf.WriteByte(byte(n)))
	}
	assert.Equal(1000, len(buf.Bytes()))
}

func TestPort_ByteWriter(t *testing.T) {
	assert := assert.New(t)

	var port Port = &bytes.Buffer{}
	assert.NoError(port.WriteByte('z'))
	assert.Equal("z", port.(*bytes.Buffer).String())
}
