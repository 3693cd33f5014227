package internal

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"strings"

	"github.com/ezrec/cpu8/translate"
)

var ErrEquateFlag = errors.New(translate.From("expected NAME=VALUE"))

// EquateFlag collects repeated -D NAME=VALUE command line flags.
type EquateFlag map[string]string

// String returns the flags in NAME=VALUE form, sorted by name.
func (ef EquateFlag) String() string {
	var list []string
	for name, value := range IterSeq2Sorted(maps.All(ef)) {
		list = append(list, fmt.Sprintf("%v=%v", name, value))
	}
	return strings.Join(list, ",")
}

// Set adds one NAME=VALUE pair.
func (ef EquateFlag) Set(text string) (err error) {
	name, value, ok := strings.Cut(text, "=")
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if !ok || len(name) == 0 || len(value) == 0 {
		return fmt.Errorf("%q: %w", text, ErrEquateFlag)
	}

	ef[name] = value
	return
}

// All iterates over the equates.
func (ef EquateFlag) All() iter.Seq2[string, string] {
	return maps.All(ef)
}
