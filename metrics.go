package tilegen

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// tilesRendered counts tiles written to a renderer output.
	tilesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tilegen_tiles_rendered_total",
		Help: "Total tiles written to the output buffer",
	})

	// renderDuration tracks the wall time of completed generations.
	renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tilegen_render_duration_seconds",
		Help:    "Duration of completed render generations in seconds",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
	})

	// renderCancelled counts generations stopped before completion.
	renderCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tilegen_render_cancelled_total",
		Help: "Total render generations cancelled before completion",
	})

	// nodesDropped counts persisted nodes and edges discarded while decoding.
	nodesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tilegen_nodes_dropped_total",
		Help: "Total persisted nodes or edges dropped while decoding by reason",
	}, []string{"reason"})
)
