package tilegen

import "github.com/chewxy/math32"

// Defaults for parameters that are not a plain 0 or 1.
var (
	defaultOffset            = V2(0.5, 0.5)
	defaultGroundP0          = V2(0, 0.6)
	defaultGroundP1          = V2(0.5, 0.4)
	defaultGroundP2          = V2(1, 0.6)
	defaultPatternBackground = RGBA(0.2, 0.2, 0.2, 1)
)

const (
	defaultStrength           = 0.1
	defaultNoiseScale         = 8
	defaultTiles              = 4
	defaultRatio              = 2
	defaultBevel              = 0.1
	defaultGap                = 0.05
	defaultBrickRounding      = 0.05
	defaultDecoratorBrickSize = 4
	defaultPatternBrickSize   = 8
	defaultCellSize           = 4
	defaultSmoothness         = 0.1
	defaultThickness          = 0.05
	defaultVeinThickness      = 0.2
)

// Param resolves attribute key of node n: the override stored in the area
// values under OverrideKey wins, then the node's own value, then def.
func Param(n *Node, area Values, key string, def float32) float32 {
	return params{node: n, area: area}.F(key, def)
}

// params reads a node's parameters through an area's overrides.
type params struct {
	node *Node
	area Values
}

func (p params) F(key string, def float32) float32 {
	if p.area != nil {
		if v, ok := p.area[OverrideKey(p.node.ID, key)]; ok {
			return v
		}
	}
	return p.node.Values.Get(key, def)
}

func (p params) Vec2(key string, def Vec2) Vec2 {
	return Vec2{X: p.F(key+suffixX, def.X), Y: p.F(key+suffixY, def.Y)}
}

func (p params) Color(key string, def Color) Color {
	return Color{
		R: p.F(key+suffixX, def.R),
		G: p.F(key+suffixY, def.G),
		B: p.F(key+suffixZ, def.B),
		A: p.F(key+suffixW, def.A),
	}
}

func (p params) Bool(key string, def bool) bool {
	var d float32
	if def {
		d = 1
	}
	return p.F(key, d) >= 0.5
}

func (p params) Int(key string, def int) int {
	return int(math32.Round(p.F(key, float32(def))))
}
