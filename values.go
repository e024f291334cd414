package tilegen

import (
	"maps"

	"github.com/google/uuid"
)

// Component suffixes for vector attributes stored in a Values bag.
const (
	suffixX = "_x"
	suffixY = "_y"
	suffixZ = "_z"
	suffixW = "_w"
)

// Values is a flat attribute bag mapping names to float32 scalars.
// Vector attributes are stored as suffixed components ("offset_x",
// "offset_y"); colors use four components.
//
// A missing key always means "use the caller's default": reads never insert.
// A nil Values is valid for reads.
type Values map[string]float32

// Get returns the value for key, or def if it is absent.
func (v Values) Get(key string, def float32) float32 {
	if x, ok := v[key]; ok {
		return x
	}
	return def
}

// Has reports whether key is present.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// Set stores a scalar.
func (v Values) Set(key string, x float32) {
	v[key] = x
}

// Delete removes a key and all of its vector components.
func (v Values) Delete(key string) {
	delete(v, key)
	for _, s := range []string{suffixX, suffixY, suffixZ, suffixW} {
		delete(v, key+s)
	}
}

// Vec2 returns the two-component attribute key, falling back per component.
func (v Values) Vec2(key string, def Vec2) Vec2 {
	return Vec2{
		X: v.Get(key+suffixX, def.X),
		Y: v.Get(key+suffixY, def.Y),
	}
}

// SetVec2 stores a two-component attribute.
func (v Values) SetVec2(key string, x Vec2) {
	v[key+suffixX] = x.X
	v[key+suffixY] = x.Y
}

// Color returns the four-component color attribute key.
func (v Values) Color(key string, def Color) Color {
	return Color{
		R: v.Get(key+suffixX, def.R),
		G: v.Get(key+suffixY, def.G),
		B: v.Get(key+suffixZ, def.B),
		A: v.Get(key+suffixW, def.A),
	}
}

// SetColor stores a color as four components.
func (v Values) SetColor(key string, c Color) {
	v[key+suffixX] = c.R
	v[key+suffixY] = c.G
	v[key+suffixZ] = c.B
	v[key+suffixW] = c.A
}

// Clone returns an independent copy. Cloning nil returns an empty bag.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	maps.Copy(out, v)
	return out
}

// OverrideKey returns the key under which an area overrides the attribute
// name of the node id.
func OverrideKey(id uuid.UUID, name string) string {
	return id.String() + "/" + name
}
