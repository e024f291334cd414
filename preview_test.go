package tilegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview_Shape(t *testing.T) {
	g := NewGraph(KindTile)
	disk := g.AddKind(KindShapeDisk)
	deco := g.AddKind(KindDecoratorColor)
	deco.Values.SetColor(keyColor, Blue)
	require.NoError(t, g.Connect(disk.ID, TerminalDecorator, deco.ID))

	pm := Preview(g, disk, 32)
	require.Equal(t, 32, pm.Width())
	assert.Equal(t, Blue, pm.GetPixel(16, 16))
	assert.Equal(t, Transparent, pm.GetPixel(0, 0))
}

func TestPreview_Modifier(t *testing.T) {
	g := NewGraph(KindTile)
	mod := g.AddKind(KindModifierTiledNoise)
	pm := Preview(g, mod, 16)

	var lo, hi float32 = 1, 0
	for y := range 16 {
		for x := range 16 {
			c := pm.GetPixel(x, y)
			require.Equal(t, float32(1), c.A)
			require.Equal(t, c.R, c.G)
			lo, hi = min(lo, c.R), max(hi, c.R)
		}
	}
	assert.Less(t, lo, hi, "noise varies over the cell")
}

func TestPreview_DecoratorAndPattern(t *testing.T) {
	g := NewGraph(KindTile)
	deco := g.AddKind(KindDecoratorColor)
	deco.Values.SetColor(keyColor, Red)
	assert.Equal(t, Red, Preview(g, deco, 8).GetPixel(4, 4))

	vor := g.AddKind(KindPatternVoronoi)
	pm := Preview(g, vor, 16)
	for y := range 16 {
		for x := range 16 {
			require.InDelta(t, 1, pm.GetPixel(x, y).A, 1e-6)
		}
	}
}

func TestPreview_Root(t *testing.T) {
	g := NewGraph(KindTile)
	box := g.AddKind(KindShapeBox)
	require.NoError(t, g.Connect(g.Root().ID, TerminalRoot, box.ID))

	pm := Preview(g, g.Root(), 16)
	assert.Equal(t, White, pm.GetPixel(8, 8))
	assert.Equal(t, Transparent, pm.GetPixel(0, 0))

	empty := Preview(nil, nil, 0)
	assert.Equal(t, 1, empty.Width())
	assert.Equal(t, Transparent, empty.GetPixel(0, 0))
}
