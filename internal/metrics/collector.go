// Package metrics exposes the responder's counters in Prometheus text
// exposition format without pulling in the prometheus/client_golang
// dependency.
package metrics

import (
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Counter is a monotonically increasing counter.
type Counter struct {
	name  string
	help  string
	value atomic.Int64
}

// Inc increments the counter by 1.
func (c *Counter) Inc() { c.value.Add(1) }

// Add increments the counter by n.
func (c *Counter) Add(n int64) { c.value.Add(n) }

// Value returns the current counter value.
func (c *Counter) Value() int64 { return c.value.Load() }

// Histogram tracks the distribution of observed values.
type Histogram struct {
	name    string
	help    string
	mu      sync.Mutex
	count   int64
	sum     float64
	buckets []histBucket
}

type histBucket struct {
	le    float64
	count int64
}

// Observe records a value in the histogram.
func (h *Histogram) Observe(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += v
	for i := range h.buckets {
		if v <= h.buckets[i].le {
			h.buckets[i].count++
		}
	}
}

// Registry holds every registered metric and renders the exposition page.
type Registry struct {
	mu         sync.Mutex
	counters   []*Counter
	histograms []*Histogram
	startTime  time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{startTime: time.Now()}
}

// NewCounter registers a counter with the given name.
func (r *Registry) NewCounter(name, help string) *Counter {
	c := &Counter{name: name, help: help}
	r.mu.Lock()
	r.counters = append(r.counters, c)
	r.mu.Unlock()
	return c
}

// NewHistogram registers a histogram with the given bucket bounds.
func (r *Registry) NewHistogram(name, help string, buckets []float64) *Histogram {
	sort.Float64s(buckets)
	hb := make([]histBucket, 0, len(buckets)+1)
	for _, b := range buckets {
		hb = append(hb, histBucket{le: b})
	}
	hb = append(hb, histBucket{le: math.Inf(1)})
	h := &Histogram{name: name, help: help, buckets: hb}
	r.mu.Lock()
	r.histograms = append(r.histograms, h)
	r.mu.Unlock()
	return h
}

// Handler renders all registered metrics in Prometheus text format.
func (r *Registry) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

		var sb strings.Builder
		fmt.Fprintf(&sb, "# HELP spotlink_uptime_seconds Time since start in seconds\n")
		fmt.Fprintf(&sb, "# TYPE spotlink_uptime_seconds gauge\n")
		fmt.Fprintf(&sb, "spotlink_uptime_seconds %d\n", int64(time.Since(r.startTime).Seconds()))

		r.mu.Lock()
		counters := append([]*Counter(nil), r.counters...)
		histograms := append([]*Histogram(nil), r.histograms...)
		r.mu.Unlock()

		for _, c := range counters {
			fmt.Fprintf(&sb, "# HELP %s %s\n", c.name, c.help)
			fmt.Fprintf(&sb, "# TYPE %s counter\n", c.name)
			fmt.Fprintf(&sb, "%s %d\n", c.name, c.Value())
		}
		for _, h := range histograms {
			h.mu.Lock()
			fmt.Fprintf(&sb, "# HELP %s %s\n", h.name, h.help)
			fmt.Fprintf(&sb, "# TYPE %s histogram\n", h.name)
			for _, b := range h.buckets {
				le := fmt.Sprintf("%g", b.le)
				if math.IsInf(b.le, 1) {
					le = "+Inf"
				}
				fmt.Fprintf(&sb, "%s_bucket{le=%q} %d\n", h.name, le, b.count)
			}
			fmt.Fprintf(&sb, "%s_count %d\n", h.name, h.count)
			fmt.Fprintf(&sb, "%s_sum %f\n", h.name, h.sum)
			h.mu.Unlock()
		}

		w.Write([]byte(sb.String()))
	}
}
