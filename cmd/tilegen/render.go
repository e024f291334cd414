package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/tilegen"
	"github.com/gogpu/tilegen/internal/config"
)

// outputFlags are shared by the commands that write an image.
type outputFlags struct {
	output    string
	view      string
	thumbnail int
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "image path; the extension selects png, tiff or bmp")
	cmd.Flags().StringVar(&o.view, "view", "", "front, top, left or right (default from settings)")
	cmd.Flags().IntVar(&o.thumbnail, "thumbnail", 0, "scale the image so its longest edge is this many pixels")
}

// apply folds the flags into s.
func (o *outputFlags) apply(s *config.Settings) error {
	if o.view != "" {
		if _, err := tilegen.ParseView(o.view); err != nil {
			return err
		}
		s.Render.View = o.view
	}
	if o.thumbnail > 0 {
		s.Output.Thumbnail = o.thumbnail
	}
	return nil
}

// path returns the output path, derived from the document path when the
// flag is empty.
func (o *outputFlags) path(doc string, s config.Settings) string {
	if o.output != "" {
		return o.output
	}
	return strings.TrimSuffix(doc, filepath.Ext(doc)) + "." + s.Output.Format
}

func newRenderCmd(g *globalFlags) *cobra.Command {
	var o outputFlags
	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Render a document's layer to an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.settings()
			if err != nil {
				return err
			}
			if err := o.apply(&s); err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := serveMetrics(ctx, s.Metrics.Addr); err != nil {
				return err
			}

			d, err := loadDocument(args[0], s)
			if err != nil {
				return err
			}

			r := tilegen.NewRenderer(s.RendererOptions()...)
			defer r.Close()

			start := time.Now()
			if err := r.Render(ctx, d.Project, d.Layer); err != nil {
				return err
			}
			r.Wait()
			if err := ctx.Err(); err != nil {
				return err
			}

			path := o.path(args[0], s)
			if err := writeImage(r.Output(), path, s); err != nil {
				return err
			}
			done, total := r.Progress()
			fmt.Fprintf(cmd.OutOrStdout(), "rendered %d/%d tiles to %s in %s\n",
				done, total, path, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	o.register(cmd)
	return cmd
}

// loadDocument reads and checks a document, logs anything its graphs
// dropped, and applies the render settings to its project.
func loadDocument(path string, s config.Settings) (*tilegen.Document, error) {
	d, err := tilegen.LoadDocument(path)
	if err != nil {
		return nil, err
	}
	s.Apply(d.Project)
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, r := range d.Reports() {
		slog.Warn("tilegen: tile graph damaged",
			slog.String("tile", r.Tile.String()),
			slog.String("view", r.View),
			slog.Int("dropped", len(r.Report.Dropped)),
			slog.Int("pruned_edges", r.Report.PrunedEdges))
	}
	return d, nil
}

// writeImage writes pm to path, resized to the configured thumbnail size.
// A path without a known image extension uses the configured format.
func writeImage(pm *tilegen.Pixmap, path string, s config.Settings) error {
	if pm == nil {
		return fmt.Errorf("%s: nothing rendered", path)
	}
	if n := s.Output.Thumbnail; n > 0 {
		w, h := fit(pm.Width(), pm.Height(), n)
		pm = tilegen.Thumbnail(pm, w, h)
	}
	if _, err := tilegen.FormatFromPath(path); err == nil {
		return pm.Save(path)
	}

	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := pm.Encode(f, s.Format()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// fit scales w x h so the longer edge is n, keeping the aspect ratio.
func fit(w, h, n int) (int, int) {
	if w >= h {
		return n, max(1, h*n/max(1, w))
	}
	return max(1, w*n/max(1, h)), n
}
