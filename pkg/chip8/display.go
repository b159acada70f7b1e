package chip8

// Display resolutions. Low-res is the original 64×32 grid; SuperChip and
// XO-Chip can switch to 128×64.
const (
	LoResWidth  = 64
	LoResHeight = 32
	HiResWidth  = 128
	HiResHeight = 64
)

// Display is the framebuffer compositor: one bitmap plane for
// CHIP-8/SuperChip, two independently addressable planes for XO-Chip.
// Plane values are abstract set/unset states; color assignment and scaling
// belong to the host renderer.
type Display struct {
	width  int
	height int
	hires  bool
	wrap   bool // sprites wrap around instead of clipping at the edge

	planes [][]byte // one byte per pixel, 0 or 1
	mask   uint8    // planes targeted by draw/clear/scroll, bit per plane
}

func newDisplay(planes int, wrap bool) *Display {
	d := &Display{
		width:  LoResWidth,
		height: LoResHeight,
		wrap:   wrap,
		planes: make([][]byte, planes),
		mask:   1,
	}
	for i := range d.planes {
		d.planes[i] = make([]byte, d.width*d.height)
	}
	return d
}

func (d *Display) Width() int  { return d.width }
func (d *Display) Height() int { return d.height }
func (d *Display) HiRes() bool { return d.hires }

// PlaneCount reports how many planes the session composites.
func (d *Display) PlaneCount() int { return len(d.planes) }

// PlaneMask reports the currently selected draw target planes.
func (d *Display) PlaneMask() uint8 { return d.mask }

// SelectPlanes switches the target plane bitmask for subsequent draw, clear
// and scroll operations. Bits beyond the available planes are ignored.
func (d *Display) SelectPlanes(mask uint8) {
	d.mask = mask & (1<<len(d.planes) - 1)
}

// selected reports whether plane i is a current draw target.
func (d *Display) selected(i int) bool {
	return d.mask&(1<<i) != 0
}

// SelectedCount reports how many planes the current mask targets. The draw
// opcode fetches one sprite copy per selected plane.
func (d *Display) SelectedCount() int {
	n := 0
	for i := range d.planes {
		if d.selected(i) {
			n++
		}
	}
	return n
}

// Clear unsets every pixel of the selected planes.
func (d *Display) Clear() {
	for i, p := range d.planes {
		if !d.selected(i) {
			continue
		}
		for j := range p {
			p[j] = 0
		}
	}
}

// SetResolution switches between low-res and high-res and clears all
// planes. The selected plane mask survives the switch.
func (d *Display) SetResolution(hires bool) {
	d.hires = hires
	if hires {
		d.width, d.height = HiResWidth, HiResHeight
	} else {
		d.width, d.height = LoResWidth, LoResHeight
	}
	for i := range d.planes {
		d.planes[i] = make([]byte, d.width*d.height)
	}
}

// DrawSprite XOR-blits a sprite at (x, y) onto the selected planes and
// reports whether any lit pixel was turned off. data holds rows×(width/8)
// bytes per selected plane, consecutively.
//
// The origin always wraps into the screen; per-pixel overflow either wraps
// or is clipped depending on the session quirk. Clipped pixels never count
// toward collision.
func (d *Display) DrawSprite(x, y int, data []byte, rows, width int) bool {
	x %= d.width
	y %= d.height
	if x < 0 {
		x += d.width
	}
	if y < 0 {
		y += d.height
	}

	bytesPerRow := width / 8
	collided := false
	offset := 0
	for i, plane := range d.planes {
		if !d.selected(i) {
			continue
		}
		for row := 0; row < rows; row++ {
			for col := 0; col < width; col++ {
				b := data[offset+row*bytesPerRow+col/8]
				if b&(0x80>>(col%8)) == 0 {
					continue
				}
				px, py := x+col, y+row
				if d.wrap {
					px %= d.width
					py %= d.height
				} else if px >= d.width || py >= d.height {
					continue
				}
				idx := py*d.width + px
				if plane[idx] != 0 {
					plane[idx] = 0
					collided = true
				} else {
					plane[idx] = 1
				}
			}
		}
		offset += rows * bytesPerRow
	}
	return collided
}

// ScrollDown shifts the selected planes down by n pixel rows, filling the
// vacated rows with unset pixels.
func (d *Display) ScrollDown(n int) {
	d.scrollVertical(n)
}

// ScrollUp shifts the selected planes up by n pixel rows.
func (d *Display) ScrollUp(n int) {
	d.scrollVertical(-n)
}

func (d *Display) scrollVertical(n int) {
	if n == 0 {
		return
	}
	for i, plane := range d.planes {
		if !d.selected(i) {
			continue
		}
		next := make([]byte, len(plane))
		for y := 0; y < d.height; y++ {
			src := y - n
			if src < 0 || src >= d.height {
				continue
			}
			copy(next[y*d.width:(y+1)*d.width], plane[src*d.width:(src+1)*d.width])
		}
		d.planes[i] = next
	}
}

// ScrollRight shifts the selected planes right by four pixel columns.
func (d *Display) ScrollRight() {
	d.scrollHorizontal(4)
}

// ScrollLeft shifts the selected planes left by four pixel columns.
func (d *Display) ScrollLeft() {
	d.scrollHorizontal(-4)
}

func (d *Display) scrollHorizontal(n int) {
	for i, plane := range d.planes {
		if !d.selected(i) {
			continue
		}
		next := make([]byte, len(plane))
		for y := 0; y < d.height; y++ {
			for x := 0; x < d.width; x++ {
				src := x - n
				if src < 0 || src >= d.width {
					continue
				}
				next[y*d.width+x] = plane[y*d.width+src]
			}
		}
		d.planes[i] = next
	}
}

// Pixel reports whether the pixel at (x, y) on plane i is set.
func (d *Display) Pixel(i, x, y int) bool {
	return d.planes[i][y*d.width+x] != 0
}

// Snapshot returns a copy of every plane bitmap for the host renderer to
// consume once per frame. Each plane is width×height bytes, one per pixel.
func (d *Display) Snapshot() [][]byte {
	out := make([][]byte, len(d.planes))
	for i, p := range d.planes {
		out[i] = make([]byte, len(p))
		copy(out[i], p)
	}
	return out
}
