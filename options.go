package tilegen

import (
	"image"
	"time"
)

// DefaultMaxPixels is the default output buffer budget: 4096x4096 pixels.
const DefaultMaxPixels = 4096 * 4096

// DefaultTint is the in-progress placeholder painted over a tile when a
// worker picks it up.
var DefaultTint = RGBA(0.5, 0.5, 0.5, 0.25)

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	r := tilegen.NewRenderer(
//		tilegen.WithWorkers(4),
//		tilegen.WithOnTile(func(r image.Rectangle) { redraw(r) }),
//	)
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for a Renderer.
type rendererOptions struct {
	workers    int
	onTile     func(image.Rectangle)
	onComplete func()
	debounce   time.Duration
	maxPixels  int
	view       View
	tint       Color
}

// defaultRendererOptions returns the default renderer options.
func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		workers:   0, // GOMAXPROCS
		maxPixels: DefaultMaxPixels,
		view:      ViewFront,
		tint:      DefaultTint,
	}
}

// WithWorkers sets the number of worker goroutines. Values <= 0 use
// GOMAXPROCS. A render never starts more workers than it has tiles.
func WithWorkers(n int) RendererOption {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// WithOnTile sets a callback invoked with the output rectangle of every
// tile written, including in-progress tint fills. It runs on worker
// goroutines and must be safe for concurrent use.
func WithOnTile(fn func(image.Rectangle)) RendererOption {
	return func(o *rendererOptions) {
		o.onTile = fn
	}
}

// WithOnComplete sets a callback invoked once per render that finishes
// without being canceled.
func WithOnComplete(fn func()) RendererOption {
	return func(o *rendererOptions) {
		o.onComplete = fn
	}
}

// WithDebounce delays the completion callback. A render started before the
// delay elapses suppresses it.
func WithDebounce(d time.Duration) RendererOption {
	return func(o *rendererOptions) {
		o.debounce = d
	}
}

// WithMaxPixels bounds the output buffer size. Renders that would need a
// larger buffer fail with ErrResourceExhausted.
func WithMaxPixels(n int) RendererOption {
	return func(o *rendererOptions) {
		o.maxPixels = n
	}
}

// WithView selects the front graph or an isometric face.
func WithView(v View) RendererOption {
	return func(o *rendererOptions) {
		o.view = v
	}
}

// WithTint sets the placeholder painted over each tile when a worker picks
// it up. The default is DefaultTint; Transparent disables the fill.
func WithTint(c Color) RendererOption {
	return func(o *rendererOptions) {
		o.tint = c
	}
}
