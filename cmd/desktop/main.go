// Command desktop runs a ROM in a window: ebiten drives the 60 Hz frame
// loop, the keyboard maps onto the 16-key pad, and the beeper plays through
// the ebiten audio context.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gochip/pkg/chip8"
	"gochip/pkg/utils"
)

const (
	frameRate  = 60
	sampleRate = 44100
)

// keypadMap is the conventional QWERTY layout for the hex pad:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   <-   Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
var keypadMap = map[ebiten.Key]uint8{
	ebiten.KeyDigit1: 0x1, ebiten.KeyDigit2: 0x2, ebiten.KeyDigit3: 0x3, ebiten.KeyDigit4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

// palette maps the composite of up to two plane bits to RGBA bytes:
// background, plane 0, plane 1, both.
var palette = [4][4]byte{
	{0x00, 0x00, 0x00, 0xFF},
	{0xFF, 0xFF, 0xFF, 0xFF},
	{0xAA, 0xAA, 0xAA, 0xFF},
	{0x55, 0x55, 0x55, 0xFF},
}

type Game struct {
	vm    *chip8.Machine
	ips   int
	scale int
	beep  *beeper

	frame  *ebiten.Image // reused canvas at the machine's current resolution
	pixels []byte
}

func (g *Game) Update() error {
	for key, idx := range keypadMap {
		if inpututil.IsKeyJustPressed(key) {
			g.vm.Keypad.SetKey(idx, true)
		}
		if inpututil.IsKeyJustReleased(key) {
			g.vm.Keypad.SetKey(idx, false)
		}
	}

	steps := g.ips / frameRate
	if steps < 1 {
		steps = 1
	}
	for i := 0; i < steps; i++ {
		res, err := g.vm.Step()
		if err != nil {
			return fmt.Errorf("execution halted at PC=0x%04X: %w", g.vm.PC, err)
		}
		if res == chip8.StepExit || res == chip8.StepHalted {
			return ebiten.Termination
		}
		if res == chip8.StepDisplayWait || res == chip8.StepKeyWait {
			// Resume stepping next frame; timers and input keep running.
			break
		}
	}
	g.vm.Tick()

	g.beep.update(g.vm.SoundActive(), g.vm.Audio)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	w, h := g.vm.Display.Width(), g.vm.Display.Height()
	if g.frame == nil || g.frame.Bounds().Dx() != w {
		g.frame = ebiten.NewImage(w, h)
		g.pixels = make([]byte, w*h*4)
	}

	planes := g.vm.Display.Snapshot()
	for i := 0; i < w*h; i++ {
		ci := 0
		for p := range planes {
			if planes[p][i] != 0 {
				ci |= 1 << p
			}
		}
		copy(g.pixels[i*4:], palette[ci][:])
	}
	g.frame.WritePixels(g.pixels)

	// Stretch the current resolution onto the fixed high-res canvas.
	lw, lh := g.Layout(0, 0)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(lw)/float64(w), float64(lh)/float64(h))
	screen.DrawImage(g.frame, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return chip8.HiResWidth * g.scale, chip8.HiResHeight * g.scale
}

// beeper streams 16-bit stereo PCM to the ebiten audio player. The player
// reads on its own goroutine, so the machine state it needs is copied in
// under a lock once per frame.
type beeper struct {
	mu      sync.Mutex
	active  bool
	pattern chip8.AudioPattern
	pos     float64
}

func (b *beeper) update(active bool, pattern chip8.AudioPattern) {
	b.mu.Lock()
	b.active = active
	b.pattern = pattern
	b.mu.Unlock()
}

func (b *beeper) Read(buf []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(buf) / 4 * 4
	beep := b.pattern.Silent()
	rate := b.pattern.PlaybackRate()
	for i := 0; i < n; i += 4 {
		var v int16
		if b.active {
			var high bool
			if beep {
				// Classic 440 Hz square wave when no pattern is loaded.
				high = int(b.pos*2*440/sampleRate)%2 == 0
			} else {
				high = b.pattern.Bit(int(b.pos * rate / sampleRate))
			}
			if high {
				v = 0x2000
			} else {
				v = -0x2000
			}
			b.pos++
		} else {
			b.pos = 0
		}
		// Same sample on both channels, little endian.
		buf[i] = byte(v)
		buf[i+1] = byte(v >> 8)
		buf[i+2] = byte(v)
		buf[i+3] = byte(v >> 8)
	}
	return n, nil
}

func main() {
	modeName := flag.String("mode", "chip8", "machine variant: chip8, schip or xochip")
	ips := flag.Int("ips", 700, "instructions per second")
	scale := flag.Int("scale", 4, "display scale factor")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: desktop [flags] <rom-file>")
		flag.Usage()
		os.Exit(2)
	}

	mode, err := chip8.ParseMode(*modeName)
	if err != nil {
		log.Fatal(err)
	}

	rom, path, err := utils.ReadROM(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	vm := chip8.New(mode)
	if err := vm.LoadProgram(rom); err != nil {
		log.Fatalf("loading %s: %v", path, err)
	}

	beep := &beeper{}
	audioCtx := audio.NewContext(sampleRate)
	player, err := audioCtx.NewPlayer(beep)
	if err != nil {
		log.Fatalf("opening audio player: %v", err)
	}
	player.Play()

	game := &Game{vm: vm, ips: *ips, scale: *scale, beep: beep}
	lw, lh := game.Layout(0, 0)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(lw, lh)
	ebiten.SetWindowTitle("gochip - " + path)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
