package noise

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/tilegen/internal/cache"
)

// Kind selects the interpolant of a tileable noise field.
type Kind uint8

const (
	// KindValue interpolates random lattice values with Hermite weights.
	KindValue Kind = iota
	// KindGradient interpolates random unit gradients with Hermite weights.
	KindGradient
	// KindPerlin uses Perlin's fixed gradient set and quintic fade.
	KindPerlin
)

const sqrt2 = 1.4142135

// MaxPeriod is the largest lattice period a Tiled table can wrap.
const MaxPeriod = 256

// Tiled is a seeded permutation table producing noise that wraps over an
// integer lattice period.
//
// Thread safety: a Tiled is immutable after construction and safe for
// concurrent use.
type Tiled struct {
	perm [MaxPeriod * 2]uint8
}

// NewTiled builds the permutation table for seed with a Fisher-Yates shuffle
// driven by a 64-bit LCG.
func NewTiled(seed int64) *Tiled {
	t := &Tiled{}
	var base [MaxPeriod]uint8
	for i := range base {
		base[i] = uint8(i)
	}
	s := uint64(seed)
	for i := MaxPeriod - 1; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int((s >> 33) % uint64(i+1))
		base[i], base[j] = base[j], base[i]
	}
	copy(t.perm[:MaxPeriod], base[:])
	copy(t.perm[MaxPeriod:], base[:])
	return t
}

// tableCacheSize bounds the number of seeds whose tables stay resident.
const tableCacheSize = 64

var tables = cache.New[int64, *Tiled](tableCacheSize)

// TiledFor returns the shared table for seed, building it on first use.
// Callers on a hot path should keep the result rather than call TiledFor
// per sample.
func TiledFor(seed int64) *Tiled {
	return tables.GetOrCreate(seed, func() *Tiled { return NewTiled(seed) })
}

// ClampPeriod limits a period to [1, MaxPeriod].
func ClampPeriod(p int) int {
	return min(max(p, 1), MaxPeriod)
}

func wrap(i int32, p int) int {
	m := int(i) % p
	if m < 0 {
		m += p
	}
	return m
}

func (t *Tiled) hash(ix, iy int32, px, py int) uint8 {
	x := wrap(ix, px)
	y := wrap(iy, py)
	return t.perm[int(t.perm[x])+y]
}

// Noise samples the field of the given kind at (x, y) wrapping every
// (px, py) lattice units. The result is in [-1, 1].
func (t *Tiled) Noise(kind Kind, x, y float32, px, py int) float32 {
	px, py = ClampPeriod(px), ClampPeriod(py)
	switch kind {
	case KindGradient:
		return t.gradient(x, y, px, py)
	case KindPerlin:
		return t.perlin(x, y, px, py)
	default:
		return t.value(x, y, px, py)
	}
}

func (t *Tiled) value(x, y float32, px, py int) float32 {
	fx, fy := math32.Floor(x), math32.Floor(y)
	ix, iy := int32(fx), int32(fy)
	u := hermite(x - fx)
	v := hermite(y - fy)

	a := float32(t.hash(ix, iy, px, py)) / 255
	b := float32(t.hash(ix+1, iy, px, py)) / 255
	c := float32(t.hash(ix, iy+1, px, py)) / 255
	d := float32(t.hash(ix+1, iy+1, px, py)) / 255

	return lerp(lerp(a, b, u), lerp(c, d, u), v)*2 - 1
}

// gradAt returns the dot product of the random unit gradient at the lattice
// corner with the offset (dx, dy).
func (t *Tiled) gradAt(ix, iy int32, px, py int, dx, dy float32) float32 {
	angle := float32(t.hash(ix, iy, px, py)) * (2 * math32.Pi / MaxPeriod)
	return math32.Cos(angle)*dx + math32.Sin(angle)*dy
}

func (t *Tiled) gradient(x, y float32, px, py int) float32 {
	fx, fy := math32.Floor(x), math32.Floor(y)
	ix, iy := int32(fx), int32(fy)
	rx, ry := x-fx, y-fy
	u := hermite(rx)
	v := hermite(ry)

	a := t.gradAt(ix, iy, px, py, rx, ry)
	b := t.gradAt(ix+1, iy, px, py, rx-1, ry)
	c := t.gradAt(ix, iy+1, px, py, rx, ry-1)
	d := t.gradAt(ix+1, iy+1, px, py, rx-1, ry-1)

	return clampUnit(lerp(lerp(a, b, u), lerp(c, d, u), v) * sqrt2)
}

// perlinGrad2 is the dot product with one of Perlin's eight 2D gradients.
func perlinGrad2(h uint8, x, y float32) float32 {
	switch h & 7 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	case 3:
		return -x - y
	case 4:
		return x
	case 5:
		return -x
	case 6:
		return y
	default:
		return -y
	}
}

func (t *Tiled) perlin(x, y float32, px, py int) float32 {
	fx, fy := math32.Floor(x), math32.Floor(y)
	ix, iy := int32(fx), int32(fy)
	rx, ry := x-fx, y-fy
	u := quintic(rx)
	v := quintic(ry)

	a := perlinGrad2(t.hash(ix, iy, px, py), rx, ry)
	b := perlinGrad2(t.hash(ix+1, iy, px, py), rx-1, ry)
	c := perlinGrad2(t.hash(ix, iy+1, px, py), rx, ry-1)
	d := perlinGrad2(t.hash(ix+1, iy+1, px, py), rx-1, ry-1)

	return clampUnit(lerp(lerp(a, b, u), lerp(c, d, u), v))
}

func clampUnit(v float32) float32 {
	return math32.Max(-1, math32.Min(1, v))
}
