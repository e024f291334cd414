package parallel

import (
	"math/bits"
	"sync/atomic"
)

// Progress records which cells of a render generation have been written to
// the output, using an atomic bitmap with one bit per cell of the occupied
// bounding box.
//
// All methods are safe for concurrent use without external synchronization.
type Progress struct {
	// words is the atomic bitmap. Bit index = cy * cols + cx.
	words []atomic.Uint64

	// cols is the number of cells horizontally.
	cols int

	// rows is the number of cells vertically.
	rows int
}

// NewProgress creates a tracker for a cols x rows cell box with no cell done.
// Returns nil if dimensions are invalid (zero or negative).
func NewProgress(cols, rows int) *Progress {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	total := cols * rows
	return &Progress{
		words: make([]atomic.Uint64, (total+63)/64),
		cols:  cols,
		rows:  rows,
	}
}

// Mark flags the cell (cx, cy) as written.
// Does nothing if coordinates are out of bounds.
func (p *Progress) Mark(cx, cy int) {
	if cx < 0 || cx >= p.cols || cy < 0 || cy >= p.rows {
		return
	}
	idx := cy*p.cols + cx
	p.words[idx/64].Or(1 << (idx & 63))
}

// Done reports whether the cell (cx, cy) has been written.
// Returns false for out-of-bounds coordinates.
func (p *Progress) Done(cx, cy int) bool {
	if cx < 0 || cx >= p.cols || cy < 0 || cy >= p.rows {
		return false
	}
	idx := cy*p.cols + cx
	return p.words[idx/64].Load()&(1<<(idx&63)) != 0
}

// Count returns the number of cells written.
func (p *Progress) Count() int {
	count := 0
	for i := range p.words {
		count += bits.OnesCount64(p.words[i].Load())
	}
	return count
}

// Clear marks every cell as not written.
func (p *Progress) Clear() {
	for i := range p.words {
		p.words[i].Store(0)
	}
}

// ForEach calls fn for each written cell in row-major order.
func (p *Progress) ForEach(fn func(cx, cy int)) {
	if fn == nil {
		return
	}
	total := p.cols * p.rows
	for wordIdx := range p.words {
		word := p.words[wordIdx].Load()
		for word != 0 {
			bitIdx := bits.TrailingZeros64(word)
			idx := wordIdx*64 + bitIdx
			if idx >= total {
				break
			}
			fn(idx%p.cols, idx/p.cols)
			word &^= 1 << bitIdx
		}
	}
}

// Cols returns the number of cells horizontally.
func (p *Progress) Cols() int {
	return p.cols
}

// Rows returns the number of cells vertically.
func (p *Progress) Rows() int {
	return p.rows
}
