// Command gbcore is a minimal smoke-test binary for the core: it loads
// a ROM, skips the boot ROM, runs a bounded number of frames, and logs
// diagnostics. It has no display or audio backend.
package main

import (
	"flag"
	"os"

	"github.com/thelolagemann/gomeboy/internal/gameboy"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

func main() {
	romFile := flag.String("rom", "", "the rom file to load")
	frames := flag.Int("frames", 60, "number of frames to run")
	debug := flag.Bool("debug", false, "enable the LD B,B breakpoint trap")
	flag.Parse()

	logger := log.New()

	rom, err := os.ReadFile(*romFile)
	if err != nil {
		logger.Errorf("reading rom: %v", err)
		os.Exit(1)
	}

	var opts []gameboy.Option
	opts = append(opts, gameboy.WithLogger(logger))
	if *debug {
		opts = append(opts, gameboy.WithDebug())
	}

	g, err := gameboy.New(rom, opts...)
	if err != nil {
		logger.Errorf("loading cartridge: %v", err)
		os.Exit(1)
	}
	g.SkipBootROM()

	logger.Infof("loaded %s (digest %x)", g.MMU.Cartridge.Title(), g.ROMDigest())

	ran := 0
	for i := 0; i < *frames; i++ {
		g.Frame()
		ran = i + 1
		if g.CPU.DebugBreakpoint {
			logger.Infof("breakpoint hit at frame %d, PC=%#04x", i, g.CPU.PC)
			break
		}
	}

	logger.Infof("ran %d frames, PC=%#04x SP=%#04x", ran, g.CPU.PC, g.CPU.SP)
}
