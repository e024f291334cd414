package noise

import "github.com/chewxy/math32"

// VoronoiResult holds the edge distances of a second-order Voronoi query.
type VoronoiResult struct {
	// Smooth is the smooth-minimum distance to the surrounding cell edges.
	Smooth float32
	// Raw is the exact distance to the nearest cell edge.
	Raw float32
	// CellX, CellY identify the cell whose point is nearest.
	CellX, CellY int32
}

// Voronoi computes the distance from (x, y) to the edges of the jittered
// Voronoi diagram built on the integer lattice.
//
// A first 3x3 pass finds the nearest feature point, a second 3x3 pass around
// that cell measures the distance to each bisector. smoothness is the
// exponential smooth-minimum width; values <= 0 make Smooth equal Raw.
func Voronoi(x, y, smoothness float32, seed uint32) VoronoiResult {
	fx, fy := math32.Floor(x), math32.Floor(y)
	ix, iy := int32(fx), int32(fy)
	lx, ly := x-fx, y-fy

	var (
		mrx, mry float32
		mgx, mgy int32
	)
	best := float32(8)
	for j := int32(-1); j <= 1; j++ {
		for i := int32(-1); i <= 1; i++ {
			ox, oy := Hash22(ix+i, iy+j, seed)
			rx := float32(i) + ox - lx
			ry := float32(j) + oy - ly
			if d := rx*rx + ry*ry; d < best {
				best = d
				mrx, mry = rx, ry
				mgx, mgy = i, j
			}
		}
	}

	raw := float32(8)
	var acc float32
	for j := int32(-1); j <= 1; j++ {
		for i := int32(-1); i <= 1; i++ {
			gx, gy := mgx+i, mgy+j
			ox, oy := Hash22(ix+gx, iy+gy, seed)
			rx := float32(gx) + ox - lx
			ry := float32(gy) + oy - ly
			dx, dy := rx-mrx, ry-mry
			l2 := dx*dx + dy*dy
			if l2 < 1e-5 {
				continue
			}
			l := math32.Sqrt(l2)
			e := (0.5*(mrx+rx))*(dx/l) + (0.5*(mry+ry))*(dy/l)
			raw = math32.Min(raw, e)
			if smoothness > 0 {
				acc += math32.Exp(-e / smoothness)
			}
		}
	}

	smooth := raw
	if smoothness > 0 && acc > 0 {
		smooth = math32.Max(0, -smoothness*math32.Log(acc))
	}
	return VoronoiResult{Smooth: smooth, Raw: raw, CellX: ix + mgx, CellY: iy + mgy}
}

// WorleyResult holds the two nearest feature distances of a Worley query.
type WorleyResult struct {
	F1, F2       float32
	CellX, CellY int32
}

// Edge returns the cell edge emphasis channel (F2-F1)^0.025.
func (w WorleyResult) Edge() float32 {
	return math32.Pow(math32.Max(w.F2-w.F1, 0), 0.025)
}

// Worley computes 3D cellular noise at (x, y, z) with a 3x3x3 neighbor
// search over one jittered feature point per lattice cell.
func Worley(x, y, z float32, seed uint32) WorleyResult {
	fx, fy, fz := math32.Floor(x), math32.Floor(y), math32.Floor(z)
	ix, iy, iz := int32(fx), int32(fy), int32(fz)
	lx, ly, lz := x-fx, y-fy, z-fz

	res := WorleyResult{F1: 8, F2: 8, CellX: ix, CellY: iy}
	for k := int32(-1); k <= 1; k++ {
		for j := int32(-1); j <= 1; j++ {
			for i := int32(-1); i <= 1; i++ {
				ox, oy, oz := Hash33(ix+i, iy+j, iz+k, seed)
				dx := float32(i) + ox - lx
				dy := float32(j) + oy - ly
				dz := float32(k) + oz - lz
				d := math32.Sqrt(dx*dx + dy*dy + dz*dz)
				switch {
				case d < res.F1:
					res.F2 = res.F1
					res.F1 = d
					res.CellX, res.CellY = ix+i, iy+j
				case d < res.F2:
					res.F2 = d
				}
			}
		}
	}
	return res
}

// TrabeculumResult holds the three smallest feature distances of a
// trabeculum query, normalized so they sum to one.
type TrabeculumResult struct {
	N1, N2, N3   float32
	CellX, CellY int32
}

// Trabeculum samples the nine feature points of the 3x3 cell neighborhood
// around (x, y) and returns the normalized three nearest distances.
func Trabeculum(x, y float32, seed uint32) TrabeculumResult {
	fx, fy := math32.Floor(x), math32.Floor(y)
	ix, iy := int32(fx), int32(fy)
	lx, ly := x-fx, y-fy

	d1, d2, d3 := float32(8), float32(8), float32(8)
	cx, cy := ix, iy
	for j := int32(-1); j <= 1; j++ {
		for i := int32(-1); i <= 1; i++ {
			ox, oy := Hash22(ix+i, iy+j, seed)
			dx := float32(i) + ox - lx
			dy := float32(j) + oy - ly
			d := math32.Sqrt(dx*dx + dy*dy)
			switch {
			case d < d1:
				d1, d2, d3 = d, d1, d2
				cx, cy = ix+i, iy+j
			case d < d2:
				d2, d3 = d, d2
			case d < d3:
				d3 = d
			}
		}
	}

	sum := d1 + d2 + d3
	if sum <= 0 {
		return TrabeculumResult{N1: 1.0 / 3, N2: 1.0 / 3, N3: 1.0 / 3, CellX: cx, CellY: cy}
	}
	return TrabeculumResult{N1: d1 / sum, N2: d2 / sum, N3: d3 / sum, CellX: cx, CellY: cy}
}
