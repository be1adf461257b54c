// Package metrics keeps process-local analysis counters and renders them in
// the Prometheus text exposition format.
package metrics

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

type collector interface {
	collect(w io.Writer)
}

var (
	analysisStarted   = &counter{name: "ats_analysis_started_total", help: "Total analyses started"}
	analysisCompleted = &counter{name: "ats_analysis_completed_total", help: "Total analyses completed"}
	analysisFailed    = &counter{name: "ats_analysis_failed_total", help: "Total analyses failed"}
	failuresByReason  = newLabeledCounter("ats_analysis_failures_by_reason_total", "Failed analyses by reason", "reason")
	cacheHits         = &counter{name: "ats_cache_hits_total", help: "Analyses served from the result cache"}
	archiveFailures   = &counter{name: "ats_archive_failures_total", help: "Reports that could not be archived"}

	analysisDuration = newHistogram("ats_analysis_duration_ms", "Analysis duration in milliseconds",
		[]float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000})
	atsScores = newHistogram("ats_score", "ATS score of completed analyses",
		[]float64{20, 40, 60, 80, 100})

	registry = []collector{
		analysisStarted, analysisCompleted, analysisFailed, failuresByReason,
		cacheHits, archiveFailures, analysisDuration, atsScores,
	}
)

func IncAnalysisStarted()   { analysisStarted.inc() }
func IncAnalysisCompleted() { analysisCompleted.inc() }
func IncCacheHit()          { cacheHits.inc() }
func IncArchiveFailure()    { archiveFailures.inc() }

// IncAnalysisFailed counts a failed analysis under a short reason label
// such as "extraction_failed".
func IncAnalysisFailed(reason string) {
	analysisFailed.inc()
	failuresByReason.inc(reason)
}

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
// Negative values are clamped to zero.
func ObserveAnalysisDurationMs(ms float64) {
	analysisDuration.observe(max(ms, 0))
}

func ObserveATSScore(score float64) { atsScores.observe(score) }

// Handler serves Render as text/plain.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/plain; version=0.0.4; charset=utf-8", []byte(Render()))
	}
}

// Render writes every registered metric in registration order.
func Render() string {
	var buf bytes.Buffer
	for _, m := range registry {
		m.collect(&buf)
	}
	return buf.String()
}

type counter struct {
	name, help string
	n          atomic.Uint64
}

func (c *counter) inc() { c.n.Add(1) }

func (c *counter) collect(w io.Writer) {
	header(w, c.name, c.help, "counter")
	fmt.Fprintf(w, "%s %d\n", c.name, c.n.Load())
}

type labeledCounter struct {
	name, help, label string

	mu     sync.Mutex
	counts map[string]uint64
}

func newLabeledCounter(name, help, label string) *labeledCounter {
	return &labeledCounter{name: name, help: help, label: label, counts: make(map[string]uint64)}
}

func (c *labeledCounter) inc(value string) {
	c.mu.Lock()
	c.counts[value]++
	c.mu.Unlock()
}

func (c *labeledCounter) collect(w io.Writer) {
	c.mu.Lock()
	values := make([]string, 0, len(c.counts))
	for v := range c.counts {
		values = append(values, v)
	}
	sort.Strings(values)
	lines := make([]string, 0, len(values))
	for _, v := range values {
		lines = append(lines, fmt.Sprintf("%s{%s=%q} %d\n", c.name, c.label, v, c.counts[v]))
	}
	c.mu.Unlock()

	header(w, c.name, c.help, "counter")
	for _, l := range lines {
		io.WriteString(w, l)
	}
}

// histogram stores cumulative bucket counts: an observation increments every
// bucket whose upper bound holds it.
type histogram struct {
	name, help string
	bounds     []float64

	mu         sync.Mutex
	cumulative []uint64
	sum        float64
	count      uint64
}

func newHistogram(name, help string, bounds []float64) *histogram {
	return &histogram{name: name, help: help, bounds: bounds, cumulative: make([]uint64, len(bounds))}
}

func (h *histogram) observe(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += v
	for i := len(h.bounds) - 1; i >= 0 && v <= h.bounds[i]; i-- {
		h.cumulative[i]++
	}
}

type histogramSnapshot struct {
	cumulative []uint64
	sum        float64
	count      uint64
}

func (h *histogram) snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		cumulative: append([]uint64(nil), h.cumulative...),
		sum:        h.sum,
		count:      h.count,
	}
}

func (h *histogram) collect(w io.Writer) {
	snap := h.snapshot()
	header(w, h.name, h.help, "histogram")
	for i, bound := range h.bounds {
		fmt.Fprintf(w, "%s_bucket{le=%q} %d\n", h.name, formatFloat(bound), snap.cumulative[i])
	}
	fmt.Fprintf(w, "%s_bucket{le=\"+Inf\"} %d\n", h.name, snap.count)
	fmt.Fprintf(w, "%s_sum %s\n", h.name, formatFloat(snap.sum))
	fmt.Fprintf(w, "%s_count %d\n", h.name, snap.count)
}

func header(w io.Writer, name, help, kind string) {
	fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
