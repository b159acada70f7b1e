// Package grid converts linear buffer indices into 2D cell coordinates.
// The renderers use it to walk the row-major plane bitmaps the emulator
// exposes.
package grid

// GetGridCoords converts a linear index into (x, y) coordinates for a
// row-major grid with the given number of columns.
func GetGridCoords(index, cols int) (int, int) {
	return index % cols, index / cols
}
