// Package noise provides the scalar kernels used by tilegen's modifiers and
// patterns: integer lattice hashes, value noise, tileable value/gradient/Perlin
// noise and the cellular (Voronoi, Worley, trabeculum) distance fields.
//
// Every kernel is a pure function of its inputs. The tileable kernels wrap
// their lattice over an integer period, so
//
//	n(x+px, y+py) == n(x, y)
//
// for the period (px, py) they were called with. All results are float32.
package noise
