package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"github.com/gogpu/tilegen"
	"github.com/gogpu/tilegen/internal/config"
	"github.com/gogpu/tilegen/internal/watch"
)

func newWatchCmd(g *globalFlags) *cobra.Command {
	var o outputFlags
	cmd := &cobra.Command{
		Use:   "watch <document>",
		Short: "Re-render a document every time it or the settings file changes",
		Long: `Renders the document, then watches it and the settings file. Each change
cancels the render in progress and starts a new one; the image is written
once a render completes and no newer one has started.`,
		Args: cobra.ExactArgs(1),
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

			l := &liveRender{
				g:      g,
				o:      &o,
				doc:    args[0],
				output: o.path(args[0], s),
				out:    cmd.OutOrStdout(),
			}
			l.start(s)
			defer l.close()

			files := []string{args[0]}
			if g.configPath != "" {
				files = append(files, g.configPath)
			}
			w, err := watch.New(files, func(changes []watch.Change) {
				for _, c := range changes {
					slog.Info("tilegen: file changed", slog.String("path", c.Path), slog.String("op", c.Op.String()))
				}
				l.reload()
			}, &watch.Options{Debounce: s.Watch.Debounce.Std()})
			if err != nil {
				return err
			}
			if err := w.Start(ctx); err != nil {
				return err
			}
			defer w.Stop()

			fmt.Fprintf(cmd.OutOrStdout(), "watching %s, writing %s\n", args[0], l.output)
			<-ctx.Done()
			return nil
		},
	}
	o.register(cmd)
	return cmd
}

// liveRender owns the renderer of the watch command. Starting a render and
// saving a finished one are serialized by mu, so a save never sees the
// buffer of a newer render.
type liveRender struct {
	g      *globalFlags
	o      *outputFlags
	doc    string
	output string
	out    io.Writer

	mu       sync.Mutex
	renderer *tilegen.Renderer
	settings config.Settings
}

// start builds a renderer for s and renders the document.
func (l *liveRender) start(s config.Settings) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.startLocked(s)
}

func (l *liveRender) startLocked(s config.Settings) {
	if l.renderer != nil {
		l.renderer.Stop()
	}
	opts := append(s.RendererOptions(),
		tilegen.WithDebounce(s.Watch.Debounce.Std()),
		tilegen.WithOnComplete(l.save),
	)
	l.renderer = tilegen.NewRenderer(opts...)
	l.settings = s
	l.renderLocked()
}

// reload re-reads the settings and the document and starts a new render.
// A broken settings file keeps the previous settings.
func (l *liveRender) reload() {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, err := l.g.settings()
	if err != nil {
		slog.Error("tilegen: settings not reloaded", slog.String("error", err.Error()))
		l.renderLocked()
		return
	}
	if err := l.o.apply(&s); err != nil {
		slog.Error("tilegen: settings not reloaded", slog.String("error", err.Error()))
		s = l.settings
	}
	l.startLocked(s)
}

func (l *liveRender) renderLocked() {
	d, err := loadDocument(l.doc, l.settings)
	if err != nil {
		slog.Error("tilegen: document not rendered", slog.String("error", err.Error()))
		return
	}
	if err := l.renderer.Render(context.Background(), d.Project, d.Layer); err != nil {
		slog.Error("tilegen: render failed", slog.String("error", err.Error()))
	}
}

// save writes the finished image. It runs on the renderer's completion
// callback.
func (l *liveRender) save() {
	l.mu.Lock()
	defer l.mu.Unlock()
	r := l.renderer
	if r == nil || r.Running() {
		return
	}
	done, total := r.Progress()
	if done != total {
		return
	}
	if err := writeImage(r.Snapshot(), l.output, l.settings); err != nil {
		slog.Error("tilegen: image not written", slog.String("error", err.Error()))
		return
	}
	fmt.Fprintf(l.out, "wrote %s (%d tiles)\n", l.output, total)
}

func (l *liveRender) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.renderer != nil {
		_ = l.renderer.Close()
	}
}
