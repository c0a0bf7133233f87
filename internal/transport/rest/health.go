package rest

import (
	"context"
	"net/http"
	"sync"
	"time"
)

const healthCheckTimeout = 3 * time.Second

// Overall and per-component health states.
const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusDown     = "down"
)

// HealthCheck probes one dependency. A failing Critical check takes the
// service down; any other failure only marks it degraded.
type HealthCheck struct {
	Name     string
	Critical bool
	Check    func(ctx context.Context) error
}

// HealthHandler serves the liveness, readiness and health endpoints.
type HealthHandler struct {
	version string
	checks  []HealthCheck
}

// NewHealthHandler creates a HealthHandler over the given checks.
func NewHealthHandler(version string, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{version: version, checks: checks}
}

// HealthResponse is the JSON body of /live, /ready and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the result of one HealthCheck.
type CompStatus struct {
	Status   string `json:"status"`
	Critical bool   `json:"critical"`
	Latency  string `json:"latency,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Live always answers 200 while the process can serve HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Timestamp: time.Now()})
}

// Ready runs only the critical checks. Load balancers should stop routing
// traffic here on 503.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	components := h.run(r.Context(), true)

	status := statusOK
	for _, c := range components {
		if c.Status != statusOK {
			status = statusDown
		}
	}
	writeJSON(w, httpStatusFor(status), HealthResponse{Status: status, Timestamp: time.Now()})
}

// Health runs every check and reports each component with its latency.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := h.run(r.Context(), false)

	status := statusOK
	for _, c := range components {
		switch {
		case c.Status == statusOK:
		case c.Critical:
			status = statusDown
		case status == statusOK:
			status = statusDegraded
		}
	}

	writeJSON(w, httpStatusFor(status), HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

// run executes the checks concurrently under a shared timeout.
func (h *HealthHandler) run(ctx context.Context, criticalOnly bool) map[string]CompStatus {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string]CompStatus, len(h.checks))
	)
	for _, c := range h.checks {
		if criticalOnly && !c.Critical {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			err := c.Check(ctx)
			res := CompStatus{Status: statusOK, Critical: c.Critical, Latency: time.Since(start).String()}
			if err != nil {
				res = CompStatus{Status: statusDown, Critical: c.Critical, Error: errorMessage(err)}
			}
			mu.Lock()
			out[c.Name] = res
			mu.Unlock()
		}()
	}
	wg.Wait()
	return out
}

func httpStatusFor(status string) int {
	if status == statusDown {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
