package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("line 7 'nop'", From("line %d '%v'", 7, "nop"))
	assert.Equal("bad opcode 0x42", From("bad opcode 0x%02x", 0x42))

	SetLanguage(language.AmericanEnglish)
	assert.Equal("label loop missing", From("label %v missing", "loop"))
}
