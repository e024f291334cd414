package tilegen

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/gogpu/tilegen/internal/parallel"
)

// State is the lifecycle state of a Renderer.
type State int32

const (
	// StateIdle means no generation is running.
	StateIdle State = iota
	// StateRunning means workers are rendering tiles.
	StateRunning
	// StateDraining means a generation was canceled and its workers are
	// finishing their current scanline.
	StateDraining
)

var stateNames = [...]string{"idle", "running", "draining"}

// String returns the state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// tileJob renders one grid cell. It owns clones of every graph it reads.
type tileJob struct {
	cell     image.Point
	rect     image.Rectangle // output pixels
	contexts []*TileContext  // one per covering area, bottom first
}

// generation is one Render call's worth of work.
type generation struct {
	id       uint64
	cancel   context.CancelFunc
	queue    *parallel.Queue[*tileJob]
	group    *parallel.Group[*tileJob]
	progress *parallel.Progress
	origin   image.Point
	total    int
	done     chan struct{}
}

// Renderer evaluates a layer's cells in parallel into one output pixmap.
//
// Only one generation runs at a time: Render stops the previous one and
// waits for its workers before starting. Output writes happen under the
// generation's queue lock, one tile at a time.
//
// Thread safety: Renderer methods are safe for concurrent use.
type Renderer struct {
	opts rendererOptions
	pool *parallel.TilePool

	// renderMu serializes Render and Stop.
	renderMu sync.Mutex

	// mu guards output, gen and timer. It is taken before a queue lock,
	// never inside one.
	mu     sync.Mutex
	output *Pixmap
	gen    *generation
	timer  *time.Timer

	state   atomic.Int32
	counter atomic.Uint64
}

// NewRenderer creates an idle renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{opts: o, pool: parallel.NewTilePool()}
}

// State returns the current lifecycle state.
func (r *Renderer) State() State {
	return State(r.state.Load())
}

// Running reports whether a generation is in progress.
func (r *Renderer) Running() bool {
	return r.State() != StateIdle
}

// Output returns the output pixmap, or nil before the first render. The
// pixmap is written concurrently while a render runs; read it after Wait,
// or use Snapshot.
func (r *Renderer) Output() *Pixmap {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.output
}

// Snapshot returns a copy of the output taken between tile writes.
func (r *Renderer) Snapshot() *Pixmap {
	r.mu.Lock()
	defer r.mu.Unlock()
	out, gen := r.output, r.gen
	if out == nil {
		return nil
	}
	var snap *Pixmap
	copyOut := func() { snap = out.SubImage(out.Bounds()) }
	if gen != nil {
		gen.queue.Locked(copyOut)
	} else {
		copyOut()
	}
	return snap
}

// Progress returns the number of tiles written and the total of the current
// or last generation.
func (r *Renderer) Progress() (done, total int) {
	r.mu.Lock()
	gen := r.gen
	r.mu.Unlock()
	if gen == nil {
		return 0, 0
	}
	return gen.progress.Count(), gen.total
}

// Render starts a new generation drawing every occupied cell of layer.
//
// It stops any running generation first. The output buffer is reallocated
// only when the layer bounds change size and is cleared otherwise. Render
// returns once the workers are started; use Wait to block until they
// finish. On error no generation is started and the previous output is
// kept.
func (r *Renderer) Render(ctx context.Context, p *Project, layer *Layer) error {
	r.renderMu.Lock()
	defer r.renderMu.Unlock()
	r.stop()

	r.mu.Lock()
	defer r.mu.Unlock()

	bounds := layer.Bounds()
	if bounds.Empty() {
		return ErrEmptyLayer
	}
	size := max(1, p.TileSize)
	w, h := bounds.Dx()*size, bounds.Dy()*size
	if r.opts.maxPixels > 0 && w*h > r.opts.maxPixels {
		return fmt.Errorf("render %dx%d: %w", w, h, ErrResourceExhausted)
	}

	if r.output == nil || r.output.Width() != w || r.output.Height() != h {
		r.output = NewPixmap(w, h)
	} else {
		r.output.Clear(Transparent)
	}

	jobs := r.jobs(p, layer, bounds.Min, size)

	gen := &generation{
		id:       r.counter.Add(1),
		progress: parallel.NewProgress(bounds.Dx(), bounds.Dy()),
		origin:   bounds.Min,
		total:    len(jobs),
		done:     make(chan struct{}),
		queue:    parallel.NewQueue(jobs...),
	}

	ctx, span := otel.Tracer("github.com/gogpu/tilegen").Start(ctx, "tilegen.Renderer.Render",
		trace.WithAttributes(
			attribute.Int64("generation", int64(gen.id)), //nolint:gosec // counter
			attribute.Int("tiles", len(jobs)),
			attribute.Int("width", w),
			attribute.Int("height", h),
		),
	)
	ctx, gen.cancel = context.WithCancel(ctx)

	Logger().Info("tilegen: render started",
		slog.Uint64("generation", gen.id),
		slog.Int("tiles", len(jobs)),
		slog.Int("width", w),
		slog.Int("height", h))

	r.gen = gen
	r.state.Store(int32(StateRunning))
	out := r.output
	gen.group = parallel.Start(ctx, gen.queue, r.opts.workers,
		func(ctx context.Context, worker int, job *tileJob) error {
			return r.renderTile(ctx, gen, out, worker, job)
		})
	go r.finish(ctx, span, gen, time.Now())
	return nil
}

// jobs builds one job per occupied cell, cloning each covering area's graph.
func (r *Renderer) jobs(p *Project, layer *Layer, origin image.Point, size int) []*tileJob {
	cells := layer.Cells()
	jobs := make([]*tileJob, 0, len(cells))
	for _, cell := range cells {
		at := cell.Sub(origin).Mul(size)
		job := &tileJob{
			cell: cell,
			rect: image.Rectangle{Min: at, Max: at.Add(image.Pt(size, size))},
		}
		for _, id := range layer.Instance(cell).Areas {
			a := layer.Area(id)
			if a == nil {
				continue
			}
			tile := p.Tile(a)
			if tile == nil {
				continue
			}
			g := tile.Graph(r.opts.view)
			if g == nil {
				continue
			}
			job.contexts = append(job.contexts, NewTileContext(p, a, g.Clone(), cell, r.opts.view))
		}
		jobs = append(jobs, job)
	}
	return jobs
}

// renderTile is the worker body for one job.
func (r *Renderer) renderTile(ctx context.Context, gen *generation, out *Pixmap, worker int, job *tileJob) error {
	if tint := r.opts.tint; tint.A > 0 {
		gen.queue.Locked(func() { out.Fill(job.rect, tint) })
		r.notifyTile(job.rect)
	}

	size := job.rect.Dx()
	tile := r.pool.Get(job.rect.Min.X, job.rect.Min.Y, size, size)
	defer r.pool.Put(tile)
	tile.Reset()

	for y := range size {
		if ctx.Err() != nil {
			Logger().Debug("tilegen: tile discarded",
				slog.Int("x", job.cell.X), slog.Int("y", job.cell.Y), slog.Int("row", y))
			return nil
		}
		for x := range size {
			c := Transparent
			for _, tc := range job.contexts {
				c = tc.EvalPixel(x, y).Clamp().Over(c)
			}
			tile.Set(x, y, c.Array())
		}
	}

	written := false
	gen.queue.Locked(func() {
		if ctx.Err() != nil {
			return
		}
		out.Replace(job.rect, tile.Data)
		cell := job.cell.Sub(gen.origin)
		gen.progress.Mark(cell.X, cell.Y)
		written = true
	})
	if !written {
		return nil
	}

	tilesRendered.Inc()
	Logger().Debug("tilegen: tile written",
		slog.Int("worker", worker), slog.Int("x", job.cell.X), slog.Int("y", job.cell.Y))
	r.notifyTile(job.rect)
	return nil
}

func (r *Renderer) notifyTile(rect image.Rectangle) {
	if r.opts.onTile != nil {
		r.opts.onTile(rect)
	}
}

// finish waits for the generation's workers and records its outcome.
func (r *Renderer) finish(ctx context.Context, span trace.Span, gen *generation, start time.Time) {
	defer span.End()
	err := gen.group.Wait()
	canceled := ctx.Err() != nil
	elapsed := time.Since(start)

	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		Logger().Warn("tilegen: render failed", slog.Uint64("generation", gen.id), slog.String("error", err.Error()))
	case canceled:
		renderCancelled.Inc()
		span.SetAttributes(attribute.Bool("canceled", true))
		Logger().Info("tilegen: render canceled",
			slog.Uint64("generation", gen.id), slog.Int("written", gen.progress.Count()))
	default:
		renderDuration.Observe(elapsed.Seconds())
		Logger().Info("tilegen: render complete",
			slog.Uint64("generation", gen.id), slog.Duration("elapsed", elapsed))
	}

	r.mu.Lock()
	current := r.gen == gen
	if current {
		r.state.Store(int32(StateIdle))
	}
	complete := current && !canceled && err == nil && r.opts.onComplete != nil
	if complete && r.opts.debounce > 0 {
		r.timer = time.AfterFunc(r.opts.debounce, r.opts.onComplete)
		complete = false
	}
	r.mu.Unlock()

	gen.cancel()
	close(gen.done)
	if complete {
		r.opts.onComplete()
	}
}

// Stop cancels the running generation, if any, and blocks until all of its
// workers have exited. A pending completion callback is suppressed.
func (r *Renderer) Stop() {
	r.renderMu.Lock()
	defer r.renderMu.Unlock()
	r.stop()
}

func (r *Renderer) stop() {
	r.mu.Lock()
	gen := r.gen
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if gen == nil {
		r.mu.Unlock()
		return
	}
	select {
	case <-gen.done:
	default:
		r.state.Store(int32(StateDraining))
		gen.cancel()
		if n := gen.queue.Drain(); n > 0 {
			Logger().Debug("tilegen: pending tiles dropped",
				slog.Uint64("generation", gen.id), slog.Int("tiles", n))
		}
	}
	r.mu.Unlock()

	<-gen.done
}

// Wait blocks until the current generation's workers have exited.
func (r *Renderer) Wait() {
	r.mu.Lock()
	gen := r.gen
	r.mu.Unlock()
	if gen != nil {
		<-gen.done
	}
}

// Close stops rendering. The renderer may be reused afterwards.
func (r *Renderer) Close() error {
	r.Stop()
	return nil
}
