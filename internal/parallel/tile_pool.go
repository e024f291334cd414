package parallel

import "sync"

// TilePool provides reuse of Tile buffers via sync.Pool.
//
// Every render generation allocates one tile per occupied cell, so pooling
// keeps repeated renders from churning the garbage collector.
//
// Thread safety: TilePool is safe for concurrent use.
type TilePool struct {
	// pools holds one sync.Pool per tile size.
	// Key format: (width << 16) | height
	pools sync.Map
}

// NewTilePool creates a new tile pool.
func NewTilePool() *TilePool {
	return &TilePool{}
}

// Get retrieves a zeroed tile of the given size positioned at (x, y).
// Returns nil for non-positive dimensions.
func (p *TilePool) Get(x, y, width, height int) *Tile {
	if width <= 0 || height <= 0 {
		return nil
	}
	pool := p.getOrCreatePool(poolKey(width, height), width, height)
	tile := pool.Get().(*Tile)
	tile.Reset()
	tile.X = x
	tile.Y = y
	return tile
}

// Put returns a tile to the pool for reuse.
// If tile is nil, this is a no-op.
func (p *TilePool) Put(tile *Tile) {
	if tile == nil {
		return
	}
	if pool, ok := p.pools.Load(poolKey(tile.Width, tile.Height)); ok {
		pool.(*sync.Pool).Put(tile)
	}
	// If pool doesn't exist, let GC reclaim the tile
}

// poolKey creates a unique key for a tile size.
// Width and height are clamped to 16-bit values to prevent overflow.
func poolKey(width, height int) uint32 {
	w := min(width, 0xFFFF)
	h := min(height, 0xFFFF)
	return uint32(w)<<16 | uint32(h) //nolint:gosec // values are clamped above
}

// getOrCreatePool gets or creates a sync.Pool for the given dimensions.
func (p *TilePool) getOrCreatePool(key uint32, width, height int) *sync.Pool {
	if pool, ok := p.pools.Load(key); ok {
		return pool.(*sync.Pool)
	}

	newPool := &sync.Pool{
		New: func() any {
			return NewTile(0, 0, width, height)
		},
	}

	// Try to store; if another goroutine beat us, use theirs
	actual, _ := p.pools.LoadOrStore(key, newPool)
	return actual.(*sync.Pool)
}
