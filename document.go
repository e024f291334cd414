package tilegen

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Document is the on-disk form of a project and one layer.
type Document struct {
	Project *Project `json:"project" validate:"required"`
	Layer   *Layer   `json:"layer" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ReadDocument decodes a document. Graph nodes that cannot be restored are
// dropped; see Reports.
func ReadDocument(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if d.Project == nil {
		d.Project = NewProject()
	}
	if d.Layer == nil {
		d.Layer = NewLayer()
	}
	return &d, nil
}

// LoadDocument reads the document at path.
func LoadDocument(path string) (*Document, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return ReadDocument(f)
}

// Write encodes the document as indented JSON.
func (d *Document) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Save writes the document to path.
func (d *Document) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := d.Write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// TileReport is the decode report of one tile graph.
type TileReport struct {
	TileSet uuid.UUID
	Tile    uuid.UUID
	View    string
	Report  DecodeReport
}

// Reports returns the non-clean decode reports of every tile graph.
func (d *Document) Reports() []TileReport {
	var out []TileReport
	for _, ts := range d.Project.TileSets {
		for _, t := range ts.Tiles {
			for _, v := range []struct {
				name string
				g    *Graph
			}{{"front", t.Front}, {"iso", t.Iso}} {
				if v.g == nil || v.g.DecodeReport().Clean() {
					continue
				}
				out = append(out, TileReport{TileSet: ts.ID, Tile: t.ID, View: v.name, Report: v.g.DecodeReport()})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tile != out[j].Tile {
			return out[i].Tile.String() < out[j].Tile.String()
		}
		return out[i].View < out[j].View
	})
	return out
}

// Validate checks the project settings and that every area refers to an
// existing tile. All problems are joined into one error.
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return err
	}
	var errs []error
	for _, a := range d.Layer.Areas() {
		if a.Rect.Empty() {
			errs = append(errs, fmt.Errorf("area %s: empty rectangle", a.ID))
			continue
		}
		if d.Project.Tile(a) == nil {
			errs = append(errs, fmt.Errorf("area %s: tile %s in set %s: %w", a.ID, a.Tile, a.TileSet, ErrNodeNotFound))
		}
	}
	return errors.Join(errs...)
}

// SampleDocument returns a small document with a brick wall tile spanning
// two cells and a disk tile next to it.
func SampleDocument() *Document {
	p := NewProject()
	ts := p.AddTileSet("Sample")

	wall := ts.AddTile("Wall")
	bricks := wall.Front.AddKind(KindPatternTilesAndBricks)
	bricks.Values.SetColor(keyColor, Hex("#3a2f2a"))
	mortar := wall.Front.AddKind(KindDecoratorColor)
	mortar.Values.SetColor(keyColor, Hex("#b5533c"))
	grain := wall.Front.AddKind(KindModifierTiledNoise)
	grain.Values.Set(keyTiles, 8)
	mustConnect(wall.Front, wall.Front.Root().ID, TerminalRoot, bricks.ID)
	mustConnect(wall.Front, bricks.ID, TerminalDecorator, mortar.ID)
	mustConnect(wall.Front, mortar.ID, TerminalModifier, grain.ID)

	coin := ts.AddTile("Coin")
	disk := coin.Front.AddKind(KindShapeDisk)
	disk.Values.Set(keyRadius, 0.7)
	gold := coin.Front.AddKind(KindDecoratorColor)
	gold.Values.SetColor(keyColor, Hex("#e8b730"))
	mustConnect(coin.Front, coin.Front.Root().ID, TerminalRoot, disk.ID)
	mustConnect(coin.Front, disk.ID, TerminalDecorator, gold.ID)

	layer := NewLayer()
	layer.AddArea(NewArea(image.Rect(0, 0, 2, 1), ts.ID, wall.ID))
	layer.AddArea(NewArea(image.Rect(2, 0, 3, 1), ts.ID, coin.ID))
	return &Document{Project: p, Layer: layer}
}

func mustConnect(g *Graph, from uuid.UUID, t Terminal, to uuid.UUID) {
	if err := g.Connect(from, t, to); err != nil {
		panic(err)
	}
}
