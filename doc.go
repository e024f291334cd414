// Package tilegen generates tile textures from node graphs.
//
// # Overview
//
// A tile is described by a small directed graph. Shape nodes compute signed
// distances, modifier nodes compute tileable noise, decorator nodes color
// the inside of a mask and pattern nodes split the plane into cells
// (bricks, Voronoi, Worley, trabeculum). A Renderer evaluates every cell of
// a layer in parallel into one RGBA pixmap.
//
// # Quick Start
//
//	import "github.com/gogpu/tilegen"
//
//	p := tilegen.NewProject()
//	ts := p.AddTileSet("Walls")
//	tile := ts.AddTile("Coin")
//
//	disk := tile.Front.AddKind(tilegen.KindShapeDisk)
//	_ = tile.Front.Connect(tile.Front.Root().ID, tilegen.TerminalRoot, disk.ID)
//
//	layer := tilegen.NewLayer()
//	layer.AddArea(tilegen.NewArea(image.Rect(0, 0, 4, 1), ts.ID, tile.ID))
//
//	r := tilegen.NewRenderer()
//	_ = r.Render(ctx, p, layer)
//	r.Wait()
//	_ = r.Output().SavePNG("coins.png")
//
// # Graphs
//
// Every node plays one Role, fixed by its Kind. Nodes connect through
// numbered outbound terminals whose meaning depends on the role: a shape's
// terminal 0 leads to its modifier, 1 to its decorator and 2 to the next
// shape or pattern. Graph.Connect rejects connections the role table does
// not allow. When a terminal has several targets, the hash of the
// enclosing pattern cell selects one, which is how a pattern varies its
// decorators per cell.
//
// # Coordinate System
//
// Uses standard image coordinates:
//   - Origin (0,0) at the top-left of a cell
//   - X increases right
//   - Y increases down
//   - Cell positions are in [0, 1); shape space maps one cell to [-1, 1]
//   - Angles in degrees
//
// # Overrides
//
// An Area places a tile over a rectangle of cells. Its Values override
// node parameters per placement under OverrideKey(node, name).
package tilegen

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
