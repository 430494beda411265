// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/k0kubun/pp/v3"

	"github.com/ezrec/austin/cpu"
	"github.com/ezrec/austin/emulator"
	"github.com/ezrec/austin/internal"
	"github.com/ezrec/austin/translate"
)

// state is the machine state shown by -d.
type state struct {
	Pc        uint32
	Registers cpu.Registers
	Flags     cpu.Flags
	Ticks     int
}

func main() {
	var verbose bool
	var ticks int
	var dump bool

	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.IntVar(&ticks, "n", 0, "Stop after this many instructions (0: no limit)")
	flag.BoolVar(&dump, "d", false, "Dump machine state on exit")

	flag.Parse()

	logger := internal.NewLogger(verbose)
	logger.Infof("%v: messages in %v", os.Args[0], translate.Language())

	if flag.NArg() != 1 {
		logger.Fatalf("%v: please provide a binary file (.abin) to run", os.Args[0])
	}

	image := flag.Arg(0)
	inf, err := os.Open(image)
	if err != nil {
		logger.Fatalf("%v: %v", image, err)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.MaxTicks = ticks
	emu.Cpu.Log = logger

	err = emu.LoadImage(inf)
	inf.Close()
	if err != nil {
		logger.Fatalf("%v: %v", image, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	emu.Reset()
	logger.Infof("%v: %d words loaded", image, emu.Cpu.Memory.Len())

	err = emu.Run(ctx)

	if dump {
		pp.Println(state{
			Pc:        emu.Pc(),
			Registers: emu.Cpu.Registers,
			Flags:     emu.Cpu.Flags,
			Ticks:     emu.Cpu.Ticks,
		})
	}

	if err != nil {
		stop()
		logger.Fatalf("%v: %v", image, err)
	}
}
