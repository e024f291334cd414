package noise

import "github.com/chewxy/math32"

// unitScale maps the top 24 bits of a hash onto [0, 1).
// 24 bits fit the float32 mantissa exactly, so the result never rounds up to 1.
const unitScale = 1.0 / (1 << 24)

// mix32 is a 32-bit avalanche finalizer (lowbias32).
func mix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x7feb352d
	h ^= h >> 15
	h *= 0x846ca68b
	h ^= h >> 16
	return h
}

// HashU returns a well-mixed 32-bit hash of a lattice point.
func HashU(x, y int32, seed uint32) uint32 {
	h := mix32(uint32(x)*0x9e3779b9 ^ seed)
	h = mix32(h ^ uint32(y)*0x85ebca6b)
	return h
}

// Hash2 returns a deterministic value in [0, 1) for the lattice point (x, y).
func Hash2(x, y int32, seed uint32) float32 {
	return float32(HashU(x, y, seed)>>8) * unitScale
}

// Hash22 returns two independent values in [0, 1) for the lattice point (x, y).
func Hash22(x, y int32, seed uint32) (float32, float32) {
	h := HashU(x, y, seed)
	return float32(h>>8) * unitScale, float32(mix32(h+0x632be5ab)>>8) * unitScale
}

// Hash3 returns a deterministic value in [0, 1) for a 3D lattice point.
func Hash3(x, y, z int32, seed uint32) float32 {
	return float32(mix32(HashU(x, y, seed)^uint32(z)*0xc2b2ae35)>>8) * unitScale
}

// Hash33 returns three independent values in [0, 1) for a 3D lattice point.
func Hash33(x, y, z int32, seed uint32) (float32, float32, float32) {
	h := mix32(HashU(x, y, seed) ^ uint32(z)*0xc2b2ae35)
	h2 := mix32(h + 0x632be5ab)
	h3 := mix32(h2 + 0x9e3779b9)
	return float32(h>>8) * unitScale, float32(h2>>8) * unitScale, float32(h3>>8) * unitScale
}

// Cell returns the integer lattice cell containing v.
func Cell(v float32) int32 {
	return int32(math32.Floor(v))
}

// hermite is the cubic smoothstep weight 3t^2 - 2t^3.
func hermite(t float32) float32 {
	return t * t * (3 - 2*t)
}

// quintic is Perlin's improved fade 6t^5 - 15t^4 + 10t^3.
func quintic(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
