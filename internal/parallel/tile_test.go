package parallel

import (
	"image"
	"sync"
	"testing"
)

// =============================================================================
// Tile Tests
// =============================================================================

func TestTile_Bounds(t *testing.T) {
	tests := []struct {
		name string
		tile *Tile
		want image.Rectangle
	}{
		{"origin", NewTile(0, 0, 64, 64), image.Rect(0, 0, 64, 64)},
		{"second row", NewTile(0, 64, 64, 64), image.Rect(0, 64, 64, 128)},
		{"small", NewTile(128, 192, 32, 16), image.Rect(128, 192, 160, 208)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tile.Bounds(); got != tt.want {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTile_PixelOffset(t *testing.T) {
	tile := NewTile(0, 0, 8, 4)
	tests := []struct {
		px, py int
		want   int
	}{
		{0, 0, 0},
		{1, 0, 4},
		{0, 1, 32},
		{7, 3, (3*8 + 7) * 4},
		{-1, 0, -1},
		{8, 0, -1},
		{0, 4, -1},
	}
	for _, tt := range tests {
		if got := tile.PixelOffset(tt.px, tt.py); got != tt.want {
			t.Errorf("PixelOffset(%d,%d) = %d, want %d", tt.px, tt.py, got, tt.want)
		}
	}
}

func TestTile_Set(t *testing.T) {
	tile := NewTile(0, 0, 4, 4)
	c := [4]float32{0.25, 0.5, 0.75, 1}
	tile.Set(2, 3, c)

	i := tile.PixelOffset(2, 3)
	if got := [4]float32(tile.Data[i : i+Channels]); got != c {
		t.Errorf("Data at (2,3) = %v, want %v", got, c)
	}
	// Out of bounds Set must not panic or write.
	tile.Set(-1, 0, c)
	tile.Set(9, 9, c)
	for j, v := range tile.Data {
		if (j < i || j >= i+Channels) && v != 0 {
			t.Fatalf("Data[%d] = %f, want 0", j, v)
		}
	}
	if len(tile.Data) != 4*4*Channels {
		t.Errorf("len(Data) = %d, want %d", len(tile.Data), 4*4*Channels)
	}
}

func TestTile_Reset(t *testing.T) {
	tile := NewTile(0, 0, 4, 4)
	for i := range tile.Data {
		tile.Data[i] = 1
	}
	tile.Reset()
	for i, v := range tile.Data {
		if v != 0 {
			t.Fatalf("Data[%d] = %f after Reset", i, v)
		}
	}
}

// =============================================================================
// TilePool Tests
// =============================================================================

func TestTilePool_GetPut(t *testing.T) {
	pool := NewTilePool()

	tile := pool.Get(64, 128, 64, 64)
	if tile == nil {
		t.Fatal("Get returned nil")
	}
	if tile.X != 64 || tile.Y != 128 || tile.Width != 64 || tile.Height != 64 {
		t.Errorf("tile = %+v", tile.Bounds())
	}
	tile.Set(3, 5, [4]float32{1, 1, 1, 1})
	pool.Put(tile)

	again := pool.Get(0, 0, 64, 64)
	for i, v := range again.Data {
		if v != 0 {
			t.Fatalf("pooled tile not cleared at %d: %f", i, v)
		}
	}
}

func TestTilePool_InvalidSize(t *testing.T) {
	pool := NewTilePool()
	if pool.Get(0, 0, 0, 10) != nil {
		t.Error("Get with zero width should return nil")
	}
	pool.Put(nil) // must not panic
}

func TestTilePool_Concurrent(t *testing.T) {
	pool := NewTilePool()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				tile := pool.Get(0, 0, 32, 32)
				tile.Set(1, 1, [4]float32{1, 0, 0, 1})
				pool.Put(tile)
			}
		}()
	}
	wg.Wait()
}

func TestPoolKey(t *testing.T) {
	if poolKey(64, 64) == poolKey(64, 32) {
		t.Error("distinct sizes share a pool key")
	}
	if poolKey(1<<20, 1) != poolKey(0xFFFF, 1) {
		t.Error("oversized width should clamp")
	}
}
