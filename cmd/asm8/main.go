// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/tebeka/atexit"

	"github.com/ezrec/cpu8/emulator"
	"github.com/ezrec/cpu8/internal"
	"github.com/ezrec/cpu8/isa"
)

func fatalf(format string, args ...any) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, format+"\n", args...)
	atexit.Exit(1)
}

func main() {
	var output string
	var listing string
	var disasm bool
	var defines bool
	var verbose bool
	equates := internal.EquateFlag{}

	flag.StringVar(&output, "o", "", "Binary output (default: source with .bin)")
	flag.StringVar(&listing, "l", "", "Listing output, '-' for stdout")
	flag.BoolVar(&disasm, "d", false, "Disassemble the image to stdout")
	flag.BoolVar(&defines, "defines", false, "Print the predefined equates and exit")
	flag.Var(equates, "D", "Predefine NAME=VALUE (repeatable)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	stdout := bufio.NewWriter(os.Stdout)
	atexit.Register(func() { stdout.Flush() })

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	for name, value := range equates.All() {
		emu.Predefine(name, value)
	}

	if defines {
		for name, value := range internal.IterSeq2Sorted(emu.Defines()) {
			fmt.Fprintf(stdout, ".equ %v %v\n", name, value)
		}
		atexit.Exit(0)
	}

	if flag.NArg() != 1 {
		fatalf("usage: %v [options] <program.s>", filepath.Base(os.Args[0]))
	}
	source := flag.Arg(0)

	inf, err := os.Open(source)
	if err != nil {
		fatalf("%v: %v", source, err)
	}
	defer inf.Close()

	err = emu.Assemble(inf)
	if err != nil {
		fatalf("%v: %v", source, err)
	}
	prog := emu.Program

	if len(output) == 0 {
		output = strings.TrimSuffix(source, filepath.Ext(source)) + ".bin"
	}

	err = os.WriteFile(output, prog.Binary(), 0o644)
	if err != nil {
		fatalf("%v: %v", output, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "%v: %d bytes, origin $%04x\n", output, prog.Size(), prog.Origin)
	}

	switch listing {
	case "":
	case "-":
		err = prog.Listing(stdout)
	default:
		var ouf *os.File
		ouf, err = os.Create(listing)
		if err != nil {
			fatalf("%v: %v", listing, err)
		}
		lw := bufio.NewWriter(ouf)
		err = prog.Listing(lw)
		if err == nil {
			err = lw.Flush()
		}
		ouf.Close()
	}
	if err != nil {
		fatalf("%v: %v", listing, err)
	}

	if disasm {
		for dec := range isa.Disassemble(prog.Origin, prog.Binary()) {
			fmt.Fprintln(stdout, dec)
		}
	}

	atexit.Exit(0)
}
