package asm

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ezrec/cpu8/isa"
)

var reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Register names cannot be used as labels.
var registers = map[string]bool{
	"a":  true,
	"b":  true,
	"pc": true,
	"sp": true,
}

// isKeyword returns true for mnemonics, directives and register names.
func isKeyword(word string) bool {
	word = strings.ToLower(word)
	if _, ok := isa.Parse(word); ok {
		return true
	}
	if _, ok := zeroPageMnemonics[word]; ok {
		return true
	}
	_, ok := directives[word]
	return ok || registers[word]
}

// isIdentifier returns true if word is a syntactically valid symbol name.
func isIdentifier(word string) bool {
	return reIdentifier.MatchString(word)
}

// isExpression returns true for a $(...) compile-time expression.
func isExpression(word string) bool {
	return strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")")
}

// stripComment removes a trailing ';' comment. A ';' inside a character
// literal does not start a comment.
func stripComment(text string) string {
	quoted := false
	for n := 0; n < len(text); n++ {
		switch text[n] {
		case '\\':
			if quoted {
				n++
			}
		case '\'':
			quoted = !quoted
		case ';':
			if !quoted {
				return text[:n]
			}
		}
	}
	return text
}

// splitArgs splits a comma separated operand list. Commas inside
// parentheses or character literals do not split.
func splitArgs(text string) (args []string) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return
	}

	depth := 0
	quoted := false
	start := 0
	for n := 0; n < len(text); n++ {
		switch c := text[n]; {
		case c == '\\' && quoted:
			n++
		case c == '\'':
			quoted = !quoted
		case quoted:
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			args = append(args, strings.TrimSpace(text[start:n]))
			start = n + 1
		}
	}
	args = append(args, strings.TrimSpace(text[start:]))

	return
}

// parseCharacter returns the value of a 'c' character literal.
func parseCharacter(word string) (value int64, err error) {
	str := word[1 : len(word)-1]
	if len(str) == 2 && str[0] == '\\' {
		switch str[1] {
		case '\\':
			value = '\\'
		case '\'':
			value = '\''
		case 'n':
			value = '\n'
		case 'r':
			value = '\r'
		case 't':
			value = '\t'
		case 'e':
			value = '\033'
		case '0':
			value = 0
		default:
			err = ErrParseCharacter(word)
		}
		return
	}

	if len(str) != 1 {
		err = ErrParseCharacter(word)
		return
	}

	value = int64(str[0])
	return
}

// parseNumber parses a literal: decimal, 0x or $ prefixed hexadecimal, or a
// character. A leading '-' negates.
func parseNumber(word string) (value int64, err error) {
	body, negative := strings.CutPrefix(word, "-")

	var u64 uint64
	switch {
	case len(body) >= 3 && body[0] == '\'' && body[len(body)-1] == '\'':
		value, err = parseCharacter(body)
		if err != nil {
			return
		}
	case len(body) > 1 && body[0] == '$':
		u64, err = strconv.ParseUint(body[1:], 16, 32)
		value = int64(u64)
	case len(body) > 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X'):
		u64, err = strconv.ParseUint(body[2:], 16, 32)
		value = int64(u64)
	case len(body) > 0 && body[0] >= '0' && body[0] <= '9':
		u64, err = strconv.ParseUint(body, 10, 32)
		value = int64(u64)
	default:
		err = ErrParseNumber(word)
	}

	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if negative {
		value = -value
	}

	return
}

// isLiteral returns true if the value of word is known without a symbol table.
func isLiteral(word string) bool {
	_, err := parseNumber(word)
	return err == nil
}

// checkRange verifies lo <= value <= hi.
func checkRange(value, lo, hi int64) (err error) {
	if value < lo || value > hi {
		err = ErrRange{Value: value, Min: lo, Max: hi}
	}
	return
}
