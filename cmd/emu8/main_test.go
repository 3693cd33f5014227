package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddress(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text string
		addr uint16
		ok   bool
	}){
		{"0x8000", 0x8000, true},
		{"$ff00", 0xff00, true},
		{"4096", 0x1000, true},
		{" 0 ", 0, true},
		{"0x10000", 0, false},
		{"$", 0, false},
		{"start", 0, false},
	}

	for _, entry := range table {
		addr, err := parseAddress(entry.text)
		if entry.ok {
			assert.NoError(err, entry.text)
			assert.Equal(entry.addr, addr, entry.text)
		} else {
			assert.ErrorIs(err, ErrAddress, entry.text)
		}
	}
}

func TestHexDump(t *testing.T) {
	assert := assert.New(t)

	data := make([]byte, 20)
	for n := range data {
		data[n] = byte(n)
	}

	var text strings.Builder
	hexDump(&text, 0x0200, data)
	assert.Equal(
		"0200: 00 01 02 03 04 05 06 07 08 09 0a 0b 0c 0d 0e 0f\n"+
			"0210: 10 11 12 13\n", text.String())

	text.Reset()
	hexDump(&text, 0, nil)
	assert.Equal("", text.String())
}
