package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/tilegen"
)

// Settings is the full configuration of the tilegen command.
//
// Thread Safety: Safe to read concurrently. Not safe to modify after creation.
type Settings struct {
	// Render contains rendering settings.
	Render RenderSettings `yaml:"render" toml:"render"`

	// Output contains image output settings.
	Output OutputSettings `yaml:"output" toml:"output"`

	// Watch contains file watching settings.
	Watch WatchSettings `yaml:"watch" toml:"watch"`

	// Log contains logging settings.
	Log LogSettings `yaml:"log" toml:"log"`

	// Metrics contains metrics exposition settings.
	Metrics MetricsSettings `yaml:"metrics" toml:"metrics"`
}

// RenderSettings overrides the document's project settings and configures
// the renderer. Zero sizes keep the document's own values.
type RenderSettings struct {
	TileSize  int     `yaml:"tile_size" toml:"tile_size" validate:"gte=0,lte=4096"`
	PixelSize int     `yaml:"pixel_size" toml:"pixel_size" validate:"gte=0"`
	Antialias float32 `yaml:"antialias" toml:"antialias" validate:"gte=0"`
	Workers   int     `yaml:"workers" toml:"workers" validate:"gte=0"`
	MaxPixels int     `yaml:"max_pixels" toml:"max_pixels" validate:"gte=0"`
	View      string  `yaml:"view" toml:"view" validate:"oneof=front top left right"`
	Tint      string  `yaml:"tint" toml:"tint" validate:"omitempty,hexcolor|hexadecimal"`
}

// OutputSettings selects the encoded image.
type OutputSettings struct {
	Format    string `yaml:"format" toml:"format" validate:"oneof=png tiff bmp"`
	Thumbnail int    `yaml:"thumbnail" toml:"thumbnail" validate:"gte=0,lte=4096"`
}

// WatchSettings configures the document watcher.
type WatchSettings struct {
	Debounce Duration `yaml:"debounce" toml:"debounce" validate:"gte=0"`
}

// LogSettings configures the slog handler.
type LogSettings struct {
	Level  string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" toml:"format" validate:"oneof=text json"`
}

// MetricsSettings configures the Prometheus endpoint. An empty address
// disables it.
type MetricsSettings struct {
	Addr string `yaml:"addr" toml:"addr" validate:"omitempty,hostname_port"`
}

// Duration is a time.Duration read from strings such as "250ms" in both
// YAML and TOML.
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ErrUnsupportedFormat is returned for config files that are neither YAML
// nor TOML.
var ErrUnsupportedFormat = errors.New("config: unsupported file format")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the default settings.
func Default() Settings {
	return Settings{
		Render: RenderSettings{
			MaxPixels: tilegen.DefaultMaxPixels,
			View:      "front",
		},
		Output: OutputSettings{
			Format: "png",
		},
		Watch: WatchSettings{
			Debounce: Duration(200 * time.Millisecond),
		},
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads settings with priority: env > file > defaults. An empty path
// or a path that does not exist yields the defaults plus environment.
func Load(path string) (Settings, error) {
	s := Default()

	if path != "" {
		if err := loadFile(path, &s); err != nil {
			return s, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := loadEnv(&s); err != nil {
		return s, fmt.Errorf("load config env: %w", err)
	}

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

func loadFile(path string, s *Settings) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, s)
	case ".toml":
		return toml.Unmarshal(data, s)
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// loadEnv applies TILEGEN_* overrides. Malformed numbers are reported
// rather than ignored.
func loadEnv(s *Settings) error {
	var errs []error
	envInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			i, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = i
		}
	}
	envString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	envInt("TILEGEN_TILE_SIZE", &s.Render.TileSize)
	envInt("TILEGEN_PIXEL_SIZE", &s.Render.PixelSize)
	envInt("TILEGEN_WORKERS", &s.Render.Workers)
	envInt("TILEGEN_MAX_PIXELS", &s.Render.MaxPixels)
	envString("TILEGEN_VIEW", &s.Render.View)
	envString("TILEGEN_TINT", &s.Render.Tint)
	if v := os.Getenv("TILEGEN_ANTIALIAS"); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			errs = append(errs, fmt.Errorf("TILEGEN_ANTIALIAS: %w", err))
		} else {
			s.Render.Antialias = float32(f)
		}
	}

	envString("TILEGEN_FORMAT", &s.Output.Format)
	envInt("TILEGEN_THUMBNAIL", &s.Output.Thumbnail)

	if v := os.Getenv("TILEGEN_DEBOUNCE"); v != "" {
		if err := s.Watch.Debounce.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, fmt.Errorf("TILEGEN_DEBOUNCE: %w", err))
		}
	}

	envString("TILEGEN_LOG_LEVEL", &s.Log.Level)
	envString("TILEGEN_LOG_FORMAT", &s.Log.Format)
	envString("TILEGEN_METRICS_ADDR", &s.Metrics.Addr)

	return errors.Join(errs...)
}

// Validate checks the settings against their struct tags.
func (s Settings) Validate() error {
	return validate.Struct(s)
}

// Apply copies the non-zero render sizes onto p.
func (s Settings) Apply(p *tilegen.Project) {
	if s.Render.TileSize > 0 {
		p.TileSize = s.Render.TileSize
	}
	if s.Render.PixelSize > 0 {
		p.PixelSize = s.Render.PixelSize
	}
	if s.Render.Antialias > 0 {
		p.Antialias = s.Render.Antialias
	}
}

// RendererOptions converts the render settings to renderer options. The
// view was checked by Validate.
func (s Settings) RendererOptions() []tilegen.RendererOption {
	opts := []tilegen.RendererOption{
		tilegen.WithWorkers(s.Render.Workers),
		tilegen.WithMaxPixels(s.Render.MaxPixels),
	}
	if v, err := tilegen.ParseView(s.Render.View); err == nil {
		opts = append(opts, tilegen.WithView(v))
	}
	if s.Render.Tint != "" {
		opts = append(opts, tilegen.WithTint(tilegen.Hex(s.Render.Tint)))
	}
	return opts
}

// Format returns the configured output format.
func (s Settings) Format() tilegen.Format {
	return tilegen.Format(s.Output.Format)
}

// Level returns the configured log level.
func (s Settings) Level() slog.Level {
	switch s.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger builds the logger described by the log settings, writing to
// stderr.
func (s Settings) Logger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: s.Level()}
	if s.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
