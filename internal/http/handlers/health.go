package handlers

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is a dependency whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

const (
	readinessTimeout = 5 * time.Second
	healthTimeout    = 3 * time.Second
)

// HealthHandler serves liveness and readiness checks. Checks gate the status;
// gauges only add information (chat connections, income worker state).
type HealthHandler struct {
	checks  map[string]Pinger
	gauges  map[string]func() any
	started time.Time
	version string
}

// NewHealthHandler creates a health handler. checks is empty in memory mode.
func NewHealthHandler(version string, checks map[string]Pinger) *HealthHandler {
	if checks == nil {
		checks = map[string]Pinger{}
	}
	return &HealthHandler{
		checks:  checks,
		gauges:  map[string]func() any{},
		started: time.Now(),
		version: version,
	}
}

// WithGauge adds a value reported by /readyz.
func (h *HealthHandler) WithGauge(name string, fn func() any) *HealthHandler {
	h.gauges[name] = fn
	return h
}

type CheckResult struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

type HealthResponse struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version,omitempty"`
	Uptime    string                 `json:"uptime,omitempty"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
	Gauges    map[string]any         `json:"gauges,omitempty"`
	MemoryMB  float64                `json:"memory_alloc_mb"`
}

// runChecks pings every dependency in parallel.
func (h *HealthHandler) runChecks(ctx context.Context) (map[string]CheckResult, bool) {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string]CheckResult, len(h.checks))
		ok  = true
	)
	for name, p := range h.checks {
		wg.Add(1)
		go func(name string, p Pinger) {
			defer wg.Done()
			start := time.Now()
			err := p.Ping(ctx)
			res := CheckResult{Status: "healthy", LatencyMS: time.Since(start).Milliseconds()}
			if err != nil {
				res.Status, res.Error = "unhealthy", err.Error()
			}
			mu.Lock()
			out[name] = res
			if err != nil {
				ok = false
			}
			mu.Unlock()
		}(name, p)
	}
	wg.Wait()
	return out, ok
}

// Liveness answers as long as the process serves requests.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness reports every check, the gauges and heap usage.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	checks, ok := h.runChecks(ctx)

	gauges := make(map[string]any, len(h.gauges))
	for name, fn := range h.gauges {
		gauges[name] = fn()
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	resp := HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Gauges:    gauges,
		MemoryMB:  float64(m.Alloc) / (1 << 20),
	}
	code := http.StatusOK
	if !ok {
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}

// Health is the short form: 503 with the failing check names, else ok.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	checks, ok := h.runChecks(ctx)
	if !ok {
		var failing []string
		for name, res := range checks {
			if res.Status != "healthy" {
				failing = append(failing, name)
			}
		}
		sort.Strings(failing)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "failing": failing})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}
