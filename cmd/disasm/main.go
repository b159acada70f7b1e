// Command disasm prints an assembly listing of a ROM file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"

	"gochip/pkg/chip8"
	"gochip/pkg/disasm"
	"gochip/pkg/utils"
)

func main() {
	modeName := flag.String("mode", "xochip", "instruction set to decode against: chip8, schip or xochip")
	flag.Parse()

	logger := log.NewWithConfig(log.DefaultConfig())

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: disasm [flags] <rom-file>")
		flag.Usage()
		os.Exit(2)
	}

	mode, err := chip8.ParseMode(*modeName)
	if err != nil {
		logger.Fatal(err.Error())
	}

	rom, path, err := utils.ReadROM(flag.Arg(0))
	if err != nil {
		logger.Fatal(err.Error())
	}
	logger.Info("disassembling",
		log.String("file", path),
		log.String("mode", mode.String()))

	if err := disasm.Listing(os.Stdout, rom, mode); err != nil {
		logger.Fatal(err.Error())
	}
}
