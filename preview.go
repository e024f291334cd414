package tilegen

// Preview renders node n of graph g on its own into a size x size pixmap,
// as a single cell with no area overrides.
//
// Shapes and patterns draw with their decorators as they would under a
// root; a modifier draws its raw value v as the gray level (v+1)/2; a
// decorator paints its chain over a full mask; a root evaluates the whole
// graph.
func Preview(g *Graph, n *Node, size int) *Pixmap {
	size = max(size, 1)
	pm := NewPixmap(size, size)
	if g == nil || n == nil {
		return pm
	}
	tc := standaloneContext(g, size)
	w := tc.Antialias / float32(size) * 2

	for y := range size {
		for x := range size {
			uv := V2((float32(x)+0.5)/float32(size), (float32(y)+0.5)/float32(size))
			px := tc.pixel(uv)
			var c Color
			switch n.Role() {
			case RoleShape:
				c = tc.paint(n, px, Transparent, fillCoverage(tc.shapeDistance(n, px), w), NoHash)
			case RoleModifier:
				c = Gray((tc.modifierRaw(n, px.Global) + 1) / 2)
			case RoleDecorator:
				c = tc.decorate(n, px, Transparent, 1, NoHash)
			case RolePattern:
				c = tc.pattern(n, px, Transparent)
			default:
				c = tc.Eval(uv)
			}
			pm.SetPixel(x, y, c)
		}
	}
	return pm
}
