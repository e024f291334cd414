package noise

import (
	"math"
	"testing"
)

func TestHash2_Range(t *testing.T) {
	for y := int32(-50); y < 50; y++ {
		for x := int32(-50); x < 50; x++ {
			h := Hash2(x, y, 7)
			if h < 0 || h >= 1 {
				t.Fatalf("Hash2(%d,%d) = %f, want [0,1)", x, y, h)
			}
		}
	}
}

func TestHash2_Deterministic(t *testing.T) {
	if Hash2(3, -9, 11) != Hash2(3, -9, 11) {
		t.Error("Hash2 not deterministic")
	}
	if Hash2(3, -9, 11) == Hash2(3, -9, 12) && Hash2(4, 4, 11) == Hash2(4, 4, 12) {
		t.Error("seed has no effect on Hash2")
	}
}

func TestValue_Range(t *testing.T) {
	for i := 0; i < 2000; i++ {
		x := float32(i) * 0.173
		y := float32(i) * 0.071
		v := Value(x, y, 1)
		if v < -1 || v > 1 {
			t.Fatalf("Value(%f,%f) = %f, out of [-1,1]", x, y, v)
		}
	}
}

func TestValue_Continuous(t *testing.T) {
	// Crossing a lattice line must not jump.
	a := Value(2.9999, 1.5, 3)
	b := Value(3.0001, 1.5, 3)
	if math.Abs(float64(a-b)) > 1e-2 {
		t.Errorf("discontinuity at lattice line: %f vs %f", a, b)
	}
}

func TestTiled_Wraparound(t *testing.T) {
	tbl := NewTiled(42)
	tests := []struct {
		name   string
		kind   Kind
		px, py int
	}{
		{"value 2x2", KindValue, 2, 2},
		{"value 4x3", KindValue, 4, 3},
		{"gradient 5x5", KindGradient, 5, 5},
		{"perlin 8x2", KindPerlin, 8, 2},
		{"perlin 16x16", KindPerlin, 16, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 200; i++ {
				x := float32(i%20) * 0.137
				y := float32(i/20) * 0.211
				a := tbl.Noise(tt.kind, x, y, tt.px, tt.py)
				b := tbl.Noise(tt.kind, x+float32(tt.px), y+float32(tt.py), tt.px, tt.py)
				if math.Abs(float64(a-b)) > 1e-3 {
					t.Fatalf("noise(%f,%f)=%f but shifted by period = %f", x, y, a, b)
				}
			}
		})
	}
}

func TestTiled_Range(t *testing.T) {
	tbl := TiledFor(9)
	for _, kind := range []Kind{KindValue, KindGradient, KindPerlin} {
		for i := 0; i < 1000; i++ {
			v := tbl.Noise(kind, float32(i)*0.31, float32(i)*0.17, 7, 7)
			if v < -1 || v > 1 {
				t.Fatalf("kind %d: %f out of [-1,1]", kind, v)
			}
		}
	}
}

func TestTiledFor_Cached(t *testing.T) {
	if TiledFor(5) != TiledFor(5) {
		t.Error("TiledFor should return the cached table")
	}
}

func TestClampPeriod(t *testing.T) {
	tests := []struct{ in, want int }{
		{-3, 1}, {0, 1}, {1, 1}, {64, 64}, {256, 256}, {1000, 256},
	}
	for _, tt := range tests {
		if got := ClampPeriod(tt.in); got != tt.want {
			t.Errorf("ClampPeriod(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestVoronoi(t *testing.T) {
	for i := 0; i < 500; i++ {
		x := float32(i%25) * 0.19
		y := float32(i/25) * 0.23
		r := Voronoi(x, y, 0.1, 3)
		if r.Raw < -1e-4 {
			t.Fatalf("Voronoi(%f,%f).Raw = %f, want >= 0", x, y, r.Raw)
		}
		if r.Smooth > r.Raw+1e-4 {
			t.Fatalf("smooth distance %f exceeds raw %f", r.Smooth, r.Raw)
		}
	}
	r := Voronoi(1.3, 2.7, 0, 3)
	if r.Smooth != r.Raw {
		t.Errorf("zero smoothness: Smooth %f != Raw %f", r.Smooth, r.Raw)
	}
}

func TestWorley(t *testing.T) {
	for i := 0; i < 300; i++ {
		r := Worley(float32(i)*0.13, float32(i)*0.07, 0.5, 1)
		if r.F1 > r.F2 {
			t.Fatalf("F1 %f > F2 %f", r.F1, r.F2)
		}
		if e := r.Edge(); e < 0 || e > 1.02 {
			t.Fatalf("Edge() = %f", e)
		}
	}
}

func TestTrabeculum_Normalized(t *testing.T) {
	for i := 0; i < 300; i++ {
		r := Trabeculum(float32(i)*0.11, float32(i)*0.29, 2)
		sum := r.N1 + r.N2 + r.N3
		if math.Abs(float64(sum-1)) > 1e-4 {
			t.Fatalf("normalized sum = %f", sum)
		}
		if r.N1 > r.N2 || r.N2 > r.N3 {
			t.Fatalf("not ordered: %f %f %f", r.N1, r.N2, r.N3)
		}
	}
}
