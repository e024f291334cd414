// Package parallel provides the tile scheduling infrastructure for tilegen.
//
// The output canvas is divided into square tiles, one per occupied grid cell.
// Each tile is rendered into its own float32 RGBA buffer by a single worker
// and then copied into the shared output. Key pieces:
//
//   - Tile: a job's private pixel buffer positioned on the canvas
//   - TilePool: sync.Pool backed buffer reuse keyed by tile size
//   - Queue: mutex protected FIFO the workers pull from
//   - Group: a bounded set of workers draining a Queue
//   - Progress: lock-free bitmap of finished jobs
//
// Thread safety: a Tile is owned by exactly one worker while it renders.
// Queue, Group and Progress are safe for concurrent use.
package parallel

import "image"

// DefaultTileSize is the tile edge length in pixels when none is configured.
// 64 pixels keeps a float RGBA tile at 64KB.
const DefaultTileSize = 64

// Channels is the number of float32 components per pixel (RGBA).
const Channels = 4

// Tile is a rectangular float32 RGBA buffer placed on the output canvas.
type Tile struct {
	// X is the left edge of the tile in canvas pixels.
	X int

	// Y is the top edge of the tile in canvas pixels.
	Y int

	// Width is the tile width in pixels.
	Width int

	// Height is the tile height in pixels.
	Height int

	// Data holds Width*Height*4 premultiplication-free RGBA components.
	Data []float32
}

// NewTile allocates a zeroed tile.
func NewTile(x, y, width, height int) *Tile {
	return &Tile{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Data:   make([]float32, width*height*Channels),
	}
}

// Reset clears the tile data for reuse.
func (t *Tile) Reset() {
	clear(t.Data)
}

// Bounds returns the tile rectangle in canvas space.
func (t *Tile) Bounds() image.Rectangle {
	return image.Rect(t.X, t.Y, t.X+t.Width, t.Y+t.Height)
}

// PixelOffset returns the index into Data for the tile-local pixel (px, py).
// Returns -1 if coordinates are out of bounds.
func (t *Tile) PixelOffset(px, py int) int {
	if px < 0 || px >= t.Width || py < 0 || py >= t.Height {
		return -1
	}
	return (py*t.Width + px) * Channels
}

// Set stores an RGBA value at the tile-local pixel (px, py).
func (t *Tile) Set(px, py int, rgba [4]float32) {
	if i := t.PixelOffset(px, py); i >= 0 {
		copy(t.Data[i:i+Channels], rgba[:])
	}
}
