package io

import (
	"errors"

	"github.com/ezrec/cpu8/translate"
)

var f = translate.From

var (
	// Port errors
	ErrPortFull = errors.New(f("port full"))
)
