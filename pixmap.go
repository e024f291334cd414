package tilegen

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Pixmap is a rectangular float32 RGBA pixel buffer. Stored channels are
// always within [0, 1]; writes clamp.
type Pixmap struct {
	width  int
	height int
	data   []float32 // RGBA, 4 components per pixel
}

// NewPixmap creates a transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	width, height = max(width, 0), max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]float32, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []float32 {
	return p.data
}

// SetPixel sets the color of a single pixel.
func (p *Pixmap) SetPixel(x, y int, c Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = clamp01(c.R)
	p.data[i+1] = clamp01(c.G)
	p.data[i+2] = clamp01(c.B)
	p.data[i+3] = clamp01(c.A)
}

// GetPixel returns the color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return Color{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c Color) {
	p.Fill(p.Bounds(), c)
}

// Fill sets every pixel of r to c.
func (p *Pixmap) Fill(r image.Rectangle, c Color) {
	r = r.Intersect(p.Bounds())
	c = c.Clamp()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := p.data[(y*p.width+r.Min.X)*4 : (y*p.width+r.Max.X)*4]
		for i := 0; i < len(row); i += 4 {
			row[i+0] = c.R
			row[i+1] = c.G
			row[i+2] = c.B
			row[i+3] = c.A
		}
	}
}

// Replace copies src, a tightly packed RGBA block the size of r, into r.
// Parts of r outside the pixmap are skipped.
func (p *Pixmap) Replace(r image.Rectangle, src []float32) {
	w := r.Dx()
	if len(src) < w*r.Dy()*4 {
		return
	}
	clip := r.Intersect(p.Bounds())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		s := src[((y-r.Min.Y)*w+clip.Min.X-r.Min.X)*4:]
		d := p.data[(y*p.width+clip.Min.X)*4 : (y*p.width+clip.Max.X)*4]
		for i := range d {
			d[i] = clamp01(s[i])
		}
	}
}

// SubImage returns a copy of the pixels in r.
func (p *Pixmap) SubImage(r image.Rectangle) *Pixmap {
	r = r.Intersect(p.Bounds())
	out := NewPixmap(r.Dx(), r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		copy(out.data[(y-r.Min.Y)*out.width*4:], p.data[(y*p.width+r.Min.X)*4:(y*p.width+r.Max.X)*4])
	}
	return out
}

// Equal reports whether both pixmaps have the same size and pixels.
func (p *Pixmap) Equal(o *Pixmap) bool {
	if p.width != o.width || p.height != o.height {
		return false
	}
	for i, v := range p.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}

// ToImage converts the pixmap to an image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	for i, v := range p.data {
		img.Pix[i] = to8(v)
	}
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pm := NewPixmap(width, height)

	for y := range height {
		for x := range width {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			pm.SetPixel(x, y, FromColor(c))
		}
	}

	return pm
}

// Format is an image encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatTIFF Format = "tiff"
	FormatBMP  Format = "bmp"
)

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case ".bmp":
		return FormatBMP, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// Encode writes the pixmap to w in the given format.
func (p *Pixmap) Encode(w io.Writer, format Format) error {
	img := p.ToImage()
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// Save writes the pixmap to path, choosing the format by extension.
func (p *Pixmap) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := p.Encode(f, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return p.Encode(f, FormatPNG)
}

// Thumbnail returns a copy of p resampled to width x height. Shrinking uses
// box filtering; enlarging keeps hard pixel edges.
func Thumbnail(p *Pixmap, width, height int) *Pixmap {
	filter := transform.Box
	if width >= p.width && height >= p.height {
		filter = transform.NearestNeighbor
	}
	return FromImage(transform.Resize(p.ToImage(), width, height, filter))
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).NRGBA()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
