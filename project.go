package tilegen

import (
	"encoding/json"
	"image"
	"slices"

	"github.com/google/uuid"
)

// Project defaults.
const (
	DefaultTileSize  = 64
	DefaultPixelSize = 4
	DefaultAntialias = 2
)

// Project holds the render settings and the tile sets areas refer to.
type Project struct {
	// TileSize is the edge of one grid cell in output pixels.
	TileSize int `json:"tileSize" validate:"min=1,max=4096"`

	// PixelSize is the edge of one "art pixel" in output pixels, used by
	// pixelation.
	PixelSize int `json:"pixelSize" validate:"min=1"`

	// Antialias scales the coverage transition width, in output pixels.
	Antialias float32 `json:"antialias" validate:"gte=0"`

	// TileSets maps tile set ids to tile sets.
	TileSets map[uuid.UUID]*TileSet `json:"tileSets"`
}

// NewProject returns a project with default settings and no tile sets.
func NewProject() *Project {
	return &Project{
		TileSize:  DefaultTileSize,
		PixelSize: DefaultPixelSize,
		Antialias: DefaultAntialias,
		TileSets:  make(map[uuid.UUID]*TileSet),
	}
}

// AddTileSet creates and registers an empty tile set.
func (p *Project) AddTileSet(name string) *TileSet {
	ts := &TileSet{ID: uuid.New(), Name: name, Tiles: make(map[uuid.UUID]*Tile)}
	if p.TileSets == nil {
		p.TileSets = make(map[uuid.UUID]*TileSet)
	}
	p.TileSets[ts.ID] = ts
	return ts
}

// Tile returns the tile an area refers to, or nil.
func (p *Project) Tile(a *Area) *Tile {
	ts := p.TileSets[a.TileSet]
	if ts == nil {
		return nil
	}
	return ts.Tiles[a.Tile]
}

// TileSet is a named collection of tiles.
type TileSet struct {
	ID    uuid.UUID           `json:"id"`
	Name  string              `json:"name"`
	Tiles map[uuid.UUID]*Tile `json:"tiles"`
}

// AddTile creates a tile with an empty front and iso graph.
func (ts *TileSet) AddTile(name string) *Tile {
	t := &Tile{
		ID:    uuid.New(),
		Name:  name,
		Front: NewGraph(KindTile),
		Iso:   NewGraph(KindIsoTile),
	}
	if ts.Tiles == nil {
		ts.Tiles = make(map[uuid.UUID]*Tile)
	}
	ts.Tiles[t.ID] = t
	return t
}

// Tile owns one front-view graph and one isometric-view graph.
type Tile struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Front *Graph    `json:"front"`
	Iso   *Graph    `json:"iso,omitempty"`
}

// Graph returns the graph drawn for the given view.
func (t *Tile) Graph(v View) *Graph {
	if v == ViewFront {
		return t.Front
	}
	return t.Iso
}

// Area places a tile over a rectangle of grid cells. Its Values hold the
// per-instance overrides keyed by OverrideKey.
type Area struct {
	ID      uuid.UUID       `json:"id"`
	Rect    image.Rectangle `json:"rect"`
	TileSet uuid.UUID       `json:"tileSet"`
	Tile    uuid.UUID       `json:"tile"`
	Values  Values          `json:"values,omitempty"`
}

// NewArea creates an area covering rect with no overrides.
func NewArea(rect image.Rectangle, tileSet, tile uuid.UUID) *Area {
	return &Area{ID: uuid.New(), Rect: rect.Canon(), TileSet: tileSet, Tile: tile, Values: Values{}}
}

// Override sets the per-instance value of a node attribute.
func (a *Area) Override(node uuid.UUID, name string, v float32) {
	if a.Values == nil {
		a.Values = Values{}
	}
	a.Values.Set(OverrideKey(node, name), v)
}

// Instance lists the areas covering one cell, in insertion order.
type Instance struct {
	Areas []uuid.UUID
}

// Layer is a sparse grid of cells, each covered by zero or more areas.
type Layer struct {
	areas     map[uuid.UUID]*Area
	order     []uuid.UUID
	instances map[image.Point]*Instance
}

// NewLayer returns an empty layer.
func NewLayer() *Layer {
	return &Layer{
		areas:     make(map[uuid.UUID]*Area),
		instances: make(map[image.Point]*Instance),
	}
}

// AddArea registers a in every cell it covers. Adding an area whose id is
// already present replaces it.
func (l *Layer) AddArea(a *Area) {
	if _, ok := l.areas[a.ID]; ok {
		l.RemoveArea(a.ID)
	}
	l.areas[a.ID] = a
	l.order = append(l.order, a.ID)
	r := a.Rect.Canon()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			pt := image.Pt(x, y)
			inst := l.instances[pt]
			if inst == nil {
				inst = &Instance{}
				l.instances[pt] = inst
			}
			inst.Areas = append(inst.Areas, a.ID)
		}
	}
}

// RemoveArea unregisters an area and reports whether it was present.
func (l *Layer) RemoveArea(id uuid.UUID) bool {
	a, ok := l.areas[id]
	if !ok {
		return false
	}
	delete(l.areas, id)
	l.order = slices.DeleteFunc(l.order, func(x uuid.UUID) bool { return x == id })
	r := a.Rect.Canon()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			pt := image.Pt(x, y)
			inst := l.instances[pt]
			if inst == nil {
				continue
			}
			inst.Areas = slices.DeleteFunc(inst.Areas, func(x uuid.UUID) bool { return x == id })
			if len(inst.Areas) == 0 {
				delete(l.instances, pt)
			}
		}
	}
	return true
}

// Area returns the area with the given id, or nil.
func (l *Layer) Area(id uuid.UUID) *Area {
	return l.areas[id]
}

// Areas returns the areas in insertion order.
func (l *Layer) Areas() []*Area {
	out := make([]*Area, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.areas[id])
	}
	return out
}

// Instance returns the instance at cell, or nil if the cell is empty.
func (l *Layer) Instance(cell image.Point) *Instance {
	return l.instances[cell]
}

// Cells returns the occupied cells in row-major order.
func (l *Layer) Cells() []image.Point {
	cells := make([]image.Point, 0, len(l.instances))
	for pt := range l.instances {
		cells = append(cells, pt)
	}
	slices.SortFunc(cells, func(a, b image.Point) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return cells
}

// Bounds returns the smallest cell rectangle containing every occupied
// cell. An empty layer has empty bounds.
func (l *Layer) Bounds() image.Rectangle {
	var b image.Rectangle
	for pt := range l.instances {
		b = b.Union(image.Rectangle{Min: pt, Max: pt.Add(image.Pt(1, 1))})
	}
	return b
}

type layerRecord struct {
	Areas []*Area `json:"areas"`
}

// MarshalJSON writes the areas in insertion order; instances are derived.
func (l *Layer) MarshalJSON() ([]byte, error) {
	return json.Marshal(layerRecord{Areas: l.Areas()})
}

// UnmarshalJSON rebuilds the layer from its areas.
func (l *Layer) UnmarshalJSON(data []byte) error {
	var rec layerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*l = *NewLayer()
	for _, a := range rec.Areas {
		if a != nil {
			l.AddArea(a)
		}
	}
	return nil
}
