//go:build !js

// Command gochip runs a CHIP-8, SuperChip or XO-Chip ROM headless: a 60 Hz
// frame loop interleaves a configurable number of instruction steps with
// timer ticks, and the final machine state can be dumped as a PNG
// screenshot or a WAV rendering of the audio pattern buffer.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"gochip/pkg/chip8"
	"gochip/pkg/disasm"
	"gochip/pkg/grid"
	"gochip/pkg/utils"
	"gochip/pkg/wavdump"
)

const frameRate = 60

func main() {
	modeName := flag.String("mode", "chip8", "machine variant: chip8, schip or xochip")
	ips := flag.Int("ips", 700, "instructions per second")
	frames := flag.Int("frames", 0, "stop after this many frames (0 = run until the program halts)")
	trace := flag.Bool("trace", false, "log every executed instruction")
	screenshot := flag.String("screenshot", "", "write the final framebuffer to this PNG file")
	wavOut := flag.String("wav", "", "write the audio pattern buffer to this WAV file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := createLogger(*debug)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gochip [flags] <rom-file>")
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

	vm := chip8.New(mode)
	if err := vm.LoadProgram(rom); err != nil {
		logger.Fatal(err.Error())
	}
	logger.Info("rom loaded",
		log.String("file", path),
		log.String("mode", mode.String()),
		log.Hex("bytes", len(rom)))

	run(logger, vm, *ips, *frames, *trace)

	if *screenshot != "" {
		if err := writeScreenshot(*screenshot, vm); err != nil {
			logger.Error("screenshot failed", log.Err(err))
		} else {
			logger.Info("screenshot written", log.String("file", *screenshot))
		}
	}
	if *wavOut != "" {
		if err := wavdump.Write(*wavOut, &vm.Audio, 2*time.Second); err != nil {
			logger.Error("wav dump failed", log.Err(err))
		} else {
			logger.Info("wav written", log.String("file", *wavOut))
		}
	}
}

func createLogger(debug bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	}
	return log.NewWithConfig(cfg)
}

// run drives the frame loop: ips/60 steps per frame, then one timer tick.
// The loop stops on program exit, fatal error, frame budget or Ctrl+C.
func run(logger *log.Logger, vm *chip8.Machine, ips, frames int, trace bool) {
	ctx := app.Context()

	stepsPerFrame := ips / frameRate
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}

	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	for frame := 0; frames == 0 || frame < frames; frame++ {
		select {
		case <-ctx.Done():
			logger.Info("interrupted")
			return
		case <-ticker.C:
		}

	steps:
		for i := 0; i < stepsPerFrame; i++ {
			if trace {
				traceStep(logger, vm)
			}
			res, err := vm.Step()
			if err != nil {
				logger.Error("execution halted",
					log.Err(err),
					log.Hex("pc", vm.PC))
				return
			}
			switch res {
			case chip8.StepDisplayWait, chip8.StepKeyWait:
				// Finish the frame; a headless run has no keys, so a
				// key-wait only ends via the frame budget or Ctrl+C.
				break steps
			case chip8.StepExit, chip8.StepHalted:
				logger.Info("program exited", log.Hex("pc", vm.PC))
				return
			case chip8.StepNormal:
			}
		}
		vm.Tick()
	}
}

func traceStep(logger *log.Logger, vm *chip8.Machine) {
	pc := int(vm.PC)
	if pc+1 >= len(vm.Memory) {
		return
	}
	word := uint16(vm.Memory[pc])<<8 | uint16(vm.Memory[pc+1])
	var next uint16
	if pc+3 < len(vm.Memory) {
		next = uint16(vm.Memory[pc+2])<<8 | uint16(vm.Memory[pc+3])
	}
	text, _ := disasm.Word(word, next, vm.Mode())
	logger.Info("step",
		log.Hex("pc", vm.PC),
		log.Hex("op", word),
		log.String("asm", text))
}

// screenPalette maps the composite of up to two plane bits to a color:
// background, plane 0, plane 1, both.
var screenPalette = [4]color.RGBA{
	{0x00, 0x00, 0x00, 0xFF},
	{0xFF, 0xFF, 0xFF, 0xFF},
	{0xAA, 0xAA, 0xAA, 0xFF},
	{0x55, 0x55, 0x55, 0xFF},
}

// writeScreenshot encodes the current framebuffer as a PNG at 1:1 scale.
// Color assignment happens here, host-side; the core only reports set/unset
// plane states.
func writeScreenshot(filename string, vm *chip8.Machine) error {
	planes := vm.Display.Snapshot()
	w, h := vm.Display.Width(), vm.Display.Height()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		ci := 0
		for p := range planes {
			if planes[p][i] != 0 {
				ci |= 1 << p
			}
		}
		x, y := grid.GetGridCoords(i, w)
		img.SetRGBA(x, y, screenPalette[ci])
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
