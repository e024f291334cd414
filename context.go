package tilegen

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"

	"github.com/gogpu/tilegen/internal/noise"
)

// View selects which graph of a tile is drawn and, for the isometric graph,
// which cube face.
type View uint8

const (
	ViewFront View = iota
	ViewIsoTop
	ViewIsoLeft
	ViewIsoRight
)

var viewNames = [...]string{"front", "top", "left", "right"}

// String returns the view name.
func (v View) String() string {
	if int(v) < len(viewNames) {
		return viewNames[v]
	}
	return fmt.Sprintf("View(%d)", v)
}

// ParseView parses a view name as returned by String.
func ParseView(s string) (View, error) {
	for i, n := range viewNames {
		if n == s {
			return View(i), nil
		}
	}
	return 0, fmt.Errorf("tilegen: unknown view %q", s)
}

// face returns the IsoTile terminal drawn for v. The front view draws the
// top face of an isometric graph.
func (v View) face() Terminal {
	switch v {
	case ViewIsoLeft:
		return TerminalFaceLeft
	case ViewIsoRight:
		return TerminalFaceRight
	default:
		return TerminalFaceTop
	}
}

// TileContext carries everything needed to evaluate one grid cell. It is
// built per job and owned by the worker evaluating it.
type TileContext struct {
	// Graph is the graph evaluated for this cell.
	Graph *Graph

	// Overrides holds the area's per-instance values, or nil.
	Overrides Values

	// Cell is the grid position of the cell.
	Cell image.Point

	// Offset is the position of the cell within its area.
	Offset image.Point

	// AreaSize is the size of the area in cells.
	AreaSize image.Point

	// Size is the cell edge in output pixels.
	Size int

	// PixelSize is the art pixel edge in output pixels.
	PixelSize int

	// Antialias scales the coverage transition width.
	Antialias float32

	// View selects the face drawn from an isometric graph.
	View View

	// tables holds the noise tables this context has used, by seed.
	tables map[int64]*noise.Tiled
}

// table returns the tileable noise table for seed.
func (tc *TileContext) table(seed int64) *noise.Tiled {
	if t, ok := tc.tables[seed]; ok {
		return t
	}
	if tc.tables == nil {
		tc.tables = make(map[int64]*noise.Tiled)
	}
	t := noise.TiledFor(seed)
	tc.tables[seed] = t
	return t
}

// NewTileContext builds the context for drawing cell of area a with graph g.
func NewTileContext(p *Project, a *Area, g *Graph, cell image.Point, v View) *TileContext {
	r := a.Rect.Canon()
	return &TileContext{
		Graph:     g,
		Overrides: a.Values,
		Cell:      cell,
		Offset:    cell.Sub(r.Min),
		AreaSize:  r.Size(),
		Size:      p.TileSize,
		PixelSize: p.PixelSize,
		Antialias: p.Antialias,
		View:      v,
	}
}

// standaloneContext is the context of a single cell with no area, used by
// previews.
func standaloneContext(g *Graph, size int) *TileContext {
	return &TileContext{
		Graph:     g,
		AreaSize:  image.Pt(1, 1),
		Size:      size,
		PixelSize: max(1, size/DefaultTileSize*DefaultPixelSize),
		Antialias: DefaultAntialias,
	}
}

// steps is the number of art pixels along one cell edge.
func (tc *TileContext) steps() float32 {
	if tc.PixelSize <= 0 {
		return float32(tc.Size)
	}
	return float32(max(1, tc.Size/tc.PixelSize))
}

func (tc *TileContext) params(n *Node) params {
	return params{node: n, area: tc.Overrides}
}

// PixelContext holds the coordinates of the pixel being evaluated.
type PixelContext struct {
	// UV is the position within the cell, in [0, 1).
	UV Vec2

	// Local is the position within the area, in cells.
	Local Vec2

	// Global is the position within the layer, in cells.
	Global Vec2

	// Width is the pixel footprint in cell units.
	Width float32

	// Distance is the accumulated shape distance of the current walk.
	Distance float32
}

// pixel returns the context of the pixel centered at uv.
func (tc *TileContext) pixel(uv Vec2) *PixelContext {
	return &PixelContext{
		UV:       uv,
		Local:    V2(float32(tc.Offset.X), float32(tc.Offset.Y)).Add(uv),
		Global:   V2(float32(tc.Cell.X), float32(tc.Cell.Y)).Add(uv),
		Width:    1 / float32(max(1, tc.Size)),
		Distance: math32.Inf(1),
	}
}

// quantize snaps v to the centers of n steps per unit.
func quantize(v Vec2, n float32) Vec2 {
	return V2(
		(math32.Floor(v.X*n)+0.5)/n,
		(math32.Floor(v.Y*n)+0.5)/n,
	)
}
