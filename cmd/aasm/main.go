// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/austin/cpu"
	"github.com/ezrec/austin/internal"
	"github.com/ezrec/austin/io"
	"github.com/ezrec/austin/translate"
)

// Exit codes, from sysexits(3).
const (
	EX_FAILURE = 1
	EX_USAGE   = 64
	EX_IOERR   = 74
)

func main() {
	var output string
	var verbose bool

	flag.StringVar(&output, "o", "", "image file to write (default: source with "+io.EXTENSION+" extension)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [-o image] [-v] source\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	logger := internal.NewLogger(verbose)
	logger.Infof("%v: messages in %v", os.Args[0], translate.Language())

	if flag.NArg() != 1 {
		logger.Errorf("%v: no source file was given", os.Args[0])
		flag.Usage()
		os.Exit(EX_USAGE)
	}

	source := flag.Arg(0)
	if len(output) == 0 {
		output = strings.TrimSuffix(source, filepath.Ext(source)) + io.EXTENSION
	}

	inf, err := os.Open(source)
	if err != nil {
		logger.Errorf("%v: %v", source, err)
		os.Exit(EX_IOERR)
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose, Log: logger}
	prog, err := asm.Parse(inf)
	if err != nil {
		logger.Errorf("%v: %v", source, err)
		os.Exit(EX_FAILURE)
	}

	for _, sec := range prog.Layout() {
		logger.Infof(".%v 0x%08x: %d words", sec.Name, sec.Address, sec.Len())
	}

	ouf, err := os.Create(output)
	if err != nil {
		logger.Errorf("%v: %v", output, err)
		os.Exit(EX_IOERR)
	}

	err = io.WriteImage(ouf, prog.Binary())
	if err == nil {
		err = ouf.Close()
	} else {
		ouf.Close()
	}
	if err != nil {
		logger.Errorf("%v: %v", output, err)
		os.Exit(EX_IOERR)
	}
}
