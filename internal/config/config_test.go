package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/tilegen"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault_Valid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Render.View != "front" || s.Output.Format != "png" {
		t.Errorf("Load() = %+v, want defaults", s)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "tilegen.yaml", `
render:
  tile_size: 32
  workers: 3
  view: left
output:
  format: tiff
watch:
  debounce: 50ms
log:
  level: debug
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Render.TileSize != 32 || s.Render.Workers != 3 || s.Render.View != "left" {
		t.Errorf("render = %+v", s.Render)
	}
	if s.Format() != tilegen.FormatTIFF {
		t.Errorf("Format() = %q", s.Format())
	}
	if s.Watch.Debounce.Std() != 50*time.Millisecond {
		t.Errorf("debounce = %v", s.Watch.Debounce.Std())
	}
	if s.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v", s.Level())
	}
	if s.Render.MaxPixels != tilegen.DefaultMaxPixels {
		t.Errorf("unset max_pixels = %d, want default", s.Render.MaxPixels)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "tilegen.toml", `
[render]
pixel_size = 2
antialias = 1.5
tint = "#ff00ff"

[watch]
debounce = "1s"

[metrics]
addr = ":9090"
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Render.PixelSize != 2 || s.Render.Antialias != 1.5 || s.Render.Tint != "#ff00ff" {
		t.Errorf("render = %+v", s.Render)
	}
	if s.Watch.Debounce.Std() != time.Second {
		t.Errorf("debounce = %v", s.Watch.Debounce.Std())
	}
	if s.Metrics.Addr != ":9090" {
		t.Errorf("metrics addr = %q", s.Metrics.Addr)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"unsupported extension", "tilegen.ini", "x=1"},
		{"bad yaml", "tilegen.yaml", "render: [1, 2"},
		{"bad toml", "tilegen.toml", "[render\n"},
		{"invalid view", "tilegen.yaml", "render:\n  view: sideways\n"},
		{"invalid format", "tilegen.yaml", "output:\n  format: gif\n"},
		{"negative workers", "tilegen.toml", "[render]\nworkers = -1\n"},
		{"bad duration", "tilegen.yaml", "watch:\n  debounce: soon\n"},
		{"bad metrics addr", "tilegen.yaml", "metrics:\n  addr: nowhere\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.file, tt.body)); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}

	_, err := Load(writeFile(t, "tilegen.cfg", ""))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load(.cfg) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "tilegen.yaml", "render:\n  tile_size: 32\n  view: top\n")
	t.Setenv("TILEGEN_TILE_SIZE", "128")
	t.Setenv("TILEGEN_ANTIALIAS", "0.5")
	t.Setenv("TILEGEN_DEBOUNCE", "2s")
	t.Setenv("TILEGEN_LOG_FORMAT", "json")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Render.TileSize != 128 {
		t.Errorf("tile size = %d, want env value 128", s.Render.TileSize)
	}
	if s.Render.View != "top" {
		t.Errorf("view = %q, want file value", s.Render.View)
	}
	if s.Render.Antialias != 0.5 || s.Watch.Debounce.Std() != 2*time.Second || s.Log.Format != "json" {
		t.Errorf("settings = %+v", s)
	}
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("TILEGEN_WORKERS", "many")
	if _, err := Load(""); err == nil {
		t.Error("Load() with malformed TILEGEN_WORKERS: error = nil")
	}
}

func TestSettings_Apply(t *testing.T) {
	p := tilegen.NewProject()
	s := Default()
	s.Apply(p)
	if p.TileSize != tilegen.DefaultTileSize || p.PixelSize != tilegen.DefaultPixelSize {
		t.Errorf("zero settings changed project: %+v", p)
	}

	s.Render.TileSize = 16
	s.Render.PixelSize = 1
	s.Render.Antialias = 3
	s.Apply(p)
	if p.TileSize != 16 || p.PixelSize != 1 || p.Antialias != 3 {
		t.Errorf("Apply() = %+v", p)
	}
}

func TestSettings_RendererOptions(t *testing.T) {
	s := Default()
	s.Render.Tint = "#00ff00"
	if n := len(s.RendererOptions()); n != 4 {
		t.Errorf("len(RendererOptions()) = %d, want 4", n)
	}

	s.Render.MaxPixels = 10
	d := tilegen.SampleDocument()
	r := tilegen.NewRenderer(s.RendererOptions()...)
	if err := r.Render(t.Context(), d.Project, d.Layer); !errors.Is(err, tilegen.ErrResourceExhausted) {
		t.Errorf("Render() error = %v, want ErrResourceExhausted", err)
	}
}
