package chip8

import "testing"

func TestDrawSpriteXORIdempotence(t *testing.T) {
	d := newDisplay(1, false)
	sprite := []byte{0xF0, 0x90, 0x90, 0xF0}

	if d.DrawSprite(4, 4, sprite, 4, 8) {
		t.Error("first blit onto a blank screen must not collide")
	}
	if !d.Pixel(0, 4, 4) || !d.Pixel(0, 7, 4) {
		t.Error("expected pixels missing after first blit")
	}

	if !d.DrawSprite(4, 4, sprite, 4, 8) {
		t.Error("second identical blit must collide")
	}
	for _, p := range d.Snapshot()[0] {
		if p != 0 {
			t.Fatal("screen not blank after double XOR")
		}
	}
}

func TestDrawSpriteOriginWraps(t *testing.T) {
	// The start coordinate is reduced modulo the screen size even when
	// sprites clip at the edge.
	d := newDisplay(1, false)
	d.DrawSprite(LoResWidth+6, LoResHeight+3, []byte{0x80}, 1, 8)
	if !d.Pixel(0, 6, 3) {
		t.Error("origin beyond the screen must wrap to x%64, y%32")
	}
}

func TestDrawSpriteClipsAtEdge(t *testing.T) {
	d := newDisplay(1, false)
	d.DrawSprite(62, 0, []byte{0xFF}, 1, 8)
	if !d.Pixel(0, 62, 0) || !d.Pixel(0, 63, 0) {
		t.Error("on-screen columns missing")
	}
	for x := 0; x < 6; x++ {
		if d.Pixel(0, x, 0) {
			t.Errorf("column %d set: overflow must clip, not wrap", x)
		}
	}
}

func TestDrawSpriteWrapsAtEdge(t *testing.T) {
	d := newDisplay(1, true)
	d.DrawSprite(62, 31, []byte{0xC0, 0xC0}, 2, 8)
	if !d.Pixel(0, 62, 31) || !d.Pixel(0, 63, 31) {
		t.Error("on-screen corner missing")
	}
	if !d.Pixel(0, 62, 0) || !d.Pixel(0, 63, 0) {
		t.Error("rows must wrap vertically")
	}
}

func TestClippedPixelsDoNotCollide(t *testing.T) {
	d := newDisplay(1, false)
	// Light the wrap target first: if clipping leaked, this would collide.
	d.DrawSprite(0, 0, []byte{0xFF}, 1, 8)
	if d.DrawSprite(62, 0, []byte{0x3F}, 1, 8) {
		t.Error("off-screen overlap counted as collision under clipping")
	}
}

func TestClear(t *testing.T) {
	d := newDisplay(2, true)
	d.SelectPlanes(0b11)
	d.DrawSprite(0, 0, []byte{0xFF, 0xFF}, 1, 8)

	// Clearing only plane 0 leaves plane 1 intact.
	d.SelectPlanes(0b01)
	d.Clear()
	if d.Pixel(0, 0, 0) {
		t.Error("plane 0 not cleared")
	}
	if !d.Pixel(1, 0, 0) {
		t.Error("plane 1 cleared despite not being selected")
	}
}

func TestSetResolution(t *testing.T) {
	d := newDisplay(1, false)
	d.DrawSprite(0, 0, []byte{0xFF}, 1, 8)

	d.SetResolution(true)
	if d.Width() != HiResWidth || d.Height() != HiResHeight || !d.HiRes() {
		t.Fatalf("hires dimensions: %dx%d", d.Width(), d.Height())
	}
	for _, p := range d.Snapshot()[0] {
		if p != 0 {
			t.Fatal("resolution switch must clear the screen")
		}
	}

	d.SetResolution(false)
	if d.Width() != LoResWidth || d.Height() != LoResHeight {
		t.Errorf("lores dimensions: %dx%d", d.Width(), d.Height())
	}
}

func TestScrollDown(t *testing.T) {
	d := newDisplay(1, false)
	d.DrawSprite(10, 5, []byte{0x80}, 1, 8)
	d.ScrollDown(3)
	if d.Pixel(0, 10, 5) {
		t.Error("source row still set after scroll")
	}
	if !d.Pixel(0, 10, 8) {
		t.Error("pixel did not move down by 3")
	}
}

func TestScrollUpDiscardsTopRows(t *testing.T) {
	d := newDisplay(1, false)
	d.DrawSprite(10, 1, []byte{0x80}, 1, 8)
	d.DrawSprite(20, 10, []byte{0x80}, 1, 8)
	d.ScrollUp(4)
	if d.Pixel(0, 10, 1) {
		t.Error("row near the top must scroll off")
	}
	if !d.Pixel(0, 20, 6) {
		t.Error("pixel did not move up by 4")
	}
}

func TestScrollHorizontal(t *testing.T) {
	d := newDisplay(1, false)
	d.DrawSprite(8, 8, []byte{0x80}, 1, 8)

	d.ScrollRight()
	if !d.Pixel(0, 12, 8) {
		t.Error("pixel did not move right by 4")
	}

	d.ScrollLeft()
	d.ScrollLeft()
	if !d.Pixel(0, 4, 8) {
		t.Error("pixel did not move left by 8 total")
	}

	// Scrolling off the left edge discards, never wraps.
	d.ScrollLeft()
	d.ScrollLeft()
	for _, p := range d.Snapshot()[0] {
		if p != 0 {
			t.Fatal("pixel wrapped around on horizontal scroll")
		}
	}
}

func TestScrollTargetsSelectedPlanesOnly(t *testing.T) {
	d := newDisplay(2, true)
	d.SelectPlanes(0b11)
	d.DrawSprite(0, 0, []byte{0x80, 0x80}, 1, 8)

	d.SelectPlanes(0b10)
	d.ScrollDown(2)
	if !d.Pixel(0, 0, 0) {
		t.Error("unselected plane 0 moved")
	}
	if !d.Pixel(1, 0, 2) || d.Pixel(1, 0, 0) {
		t.Error("selected plane 1 did not scroll")
	}
}

func TestSelectPlanesMasksUnavailable(t *testing.T) {
	d := newDisplay(1, false)
	d.SelectPlanes(0b11)
	if d.PlaneMask() != 0b01 {
		t.Errorf("mask: got %#b, want 0b01", d.PlaneMask())
	}
	if d.SelectedCount() != 1 {
		t.Errorf("selected count: got %d, want 1", d.SelectedCount())
	}
}

func TestDrawSpritePerPlaneData(t *testing.T) {
	// With both planes selected the sprite data holds plane 0's copy first,
	// then plane 1's.
	d := newDisplay(2, true)
	d.SelectPlanes(0b11)
	d.DrawSprite(0, 0, []byte{0x80, 0x40}, 1, 8)
	if !d.Pixel(0, 0, 0) || d.Pixel(0, 1, 0) {
		t.Error("plane 0 got the wrong sprite copy")
	}
	if !d.Pixel(1, 1, 0) || d.Pixel(1, 0, 0) {
		t.Error("plane 1 got the wrong sprite copy")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	d := newDisplay(1, false)
	snap := d.Snapshot()
	snap[0][0] = 1
	if d.Pixel(0, 0, 0) {
		t.Error("mutating a snapshot leaked into the framebuffer")
	}
}

func TestDraw16x16Sprite(t *testing.T) {
	d := newDisplay(1, false)
	data := make([]byte, 32)
	for i := range data {
		data[i] = 0xFF
	}
	d.DrawSprite(0, 0, data, 16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if !d.Pixel(0, x, y) {
				t.Fatalf("pixel (%d,%d) unset in 16x16 blit", x, y)
			}
		}
	}
	if d.Pixel(0, 16, 0) || d.Pixel(0, 0, 16) {
		t.Error("blit spilled past 16x16")
	}
}
